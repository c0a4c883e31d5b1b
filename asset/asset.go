// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - fungible and non-fungible assets and the vaults
// that hold them
//
// a vault is a multiset: fungible amounts merge per faucet,
// non-fungible assets are unique instances
package asset

import (
	"encoding/binary"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// tag bytes distinguishing the two asset encodings
const (
	fungibleTag    = 0x01
	nonFungibleTag = 0x02
)

// Asset - either a fungible amount or a non-fungible instance
type Asset interface {
	FaucetId() account.Identifier
	IsFungible() bool
	Digest() merkle.Digest
}

// Fungible - an amount of one faucet's fungible asset class
type Fungible struct {
	Faucet account.Identifier `json:"faucet"`
	Amount uint64             `json:"amount,string"`
}

// NonFungible - one unique asset instance
type NonFungible struct {
	Faucet     account.Identifier `json:"faucet"`
	UniqueHash merkle.Digest      `json:"uniqueHash"`
}

// NewFungible - validated fungible amount
func NewFungible(faucet account.Identifier, amount uint64) (Fungible, error) {
	if 0 == amount {
		return Fungible{}, fault.ZeroAmount
	}
	if amount > constants.MaxFungibleAmount {
		return Fungible{}, fault.FungibleAmountOverflow
	}
	return Fungible{Faucet: faucet, Amount: amount}, nil
}

// FaucetId - issuing account
func (a Fungible) FaucetId() account.Identifier { return a.Faucet }

// IsFungible - always true
func (a Fungible) IsFungible() bool { return true }

// Digest - commitment to faucet and amount
func (a Fungible) Digest() merkle.Digest {
	buffer := make([]byte, 0, 25)
	buffer = append(buffer, fungibleTag)
	buffer = append(buffer, a.Faucet.Bytes()...)
	amount := make([]byte, 8)
	binary.LittleEndian.PutUint64(amount, a.Amount)
	buffer = append(buffer, amount...)
	return merkle.NewDigest(buffer)
}

// FaucetId - issuing account
func (a NonFungible) FaucetId() account.Identifier { return a.Faucet }

// IsFungible - always false
func (a NonFungible) IsFungible() bool { return false }

// Digest - commitment to faucet and instance hash
//
// amount-free: two instances are the same asset exactly when their
// digests are equal
func (a NonFungible) Digest() merkle.Digest {
	buffer := make([]byte, 0, 49)
	buffer = append(buffer, nonFungibleTag)
	buffer = append(buffer, a.Faucet.Bytes()...)
	buffer = append(buffer, a.UniqueHash[:]...)
	return merkle.NewDigest(buffer)
}
