// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// FaucetLedger - issuance bookkeeping for one faucet account
//
// mint and burn are only reachable through the kernel by the single
// account whose identifier matches the asset's faucet id; this type
// enforces the arithmetic, the executor enforces the identity
type FaucetLedger struct {
	faucet      account.Identifier
	maxIssuance uint64
	total       uint64
	issued      map[merkle.Digest]bool
}

// NewFaucetLedger - ledger with a configured issuance cap
//
// a zero cap means the protocol maximum
func NewFaucetLedger(faucet account.Identifier, maxIssuance uint64) (*FaucetLedger, error) {
	if !faucet.IsFaucet() {
		return nil, fault.NotFaucetAccount
	}
	if 0 == maxIssuance || maxIssuance > constants.MaxFungibleAmount {
		maxIssuance = constants.MaxFungibleAmount
	}
	return &FaucetLedger{
		faucet:      faucet,
		maxIssuance: maxIssuance,
		issued:      make(map[merkle.Digest]bool),
	}, nil
}

// Mint - record new issuance
func (ledger *FaucetLedger) Mint(a Asset) error {
	if a.FaucetId() != ledger.faucet {
		return fault.WrongFaucetAccount
	}

	switch a := a.(type) {
	case Fungible:
		if 0 == a.Amount {
			return fault.ZeroAmount
		}
		if a.Amount > ledger.maxIssuance-ledger.total {
			return fault.IssuanceCapExceeded
		}
		ledger.total += a.Amount
		return nil

	case NonFungible:
		key := a.Digest()
		if ledger.issued[key] {
			return fault.DuplicateNonFungibleAsset
		}
		ledger.issued[key] = true
		return nil
	}
	return fault.InvalidCount
}

// Burn - record destruction of previously issued assets
func (ledger *FaucetLedger) Burn(a Asset) error {
	if a.FaucetId() != ledger.faucet {
		return fault.WrongFaucetAccount
	}

	switch a := a.(type) {
	case Fungible:
		if 0 == a.Amount {
			return fault.ZeroAmount
		}
		if a.Amount > ledger.total {
			return fault.InsufficientBalance
		}
		ledger.total -= a.Amount
		return nil

	case NonFungible:
		key := a.Digest()
		if !ledger.issued[key] {
			return fault.NonFungibleNotIssued
		}
		delete(ledger.issued, key)
		return nil
	}
	return fault.InvalidCount
}

// Faucet - the account this ledger issues for
func (ledger *FaucetLedger) Faucet() account.Identifier {
	return ledger.faucet
}

// TotalIssuance - outstanding fungible issuance
func (ledger *FaucetLedger) TotalIssuance() uint64 {
	return ledger.total
}

// IsIssued - check one non-fungible instance
func (ledger *FaucetLedger) IsIssued(a NonFungible) bool {
	return ledger.issued[a.Digest()]
}

// Clone - independent copy for transaction-local mutation
func (ledger *FaucetLedger) Clone() *FaucetLedger {
	issued := make(map[merkle.Digest]bool, len(ledger.issued))
	for key := range ledger.issued {
		issued[key] = true
	}
	return &FaucetLedger{
		faucet:      ledger.faucet,
		maxIssuance: ledger.maxIssuance,
		total:       ledger.total,
		issued:      issued,
	}
}
