// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"bytes"
	"sort"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Vault - multiset of assets owned by an account or attached to a note
type Vault struct {
	fungible    map[account.Identifier]uint64
	nonFungible map[merkle.Digest]NonFungible
}

// NewVault - an empty vault
func NewVault() *Vault {
	return &Vault{
		fungible:    make(map[account.Identifier]uint64),
		nonFungible: make(map[merkle.Digest]NonFungible),
	}
}

// AddAsset - merge an asset into the vault
//
// for a fungible asset the returned asset carries the new total for
// its faucet; for a non-fungible asset the asset itself is returned
func (v *Vault) AddAsset(a Asset) (Asset, error) {
	switch a := a.(type) {
	case Fungible:
		if 0 == a.Amount {
			return nil, fault.ZeroAmount
		}
		balance := v.fungible[a.Faucet]
		if a.Amount > constants.MaxFungibleAmount-balance {
			return nil, fault.FungibleAmountOverflow
		}
		balance += a.Amount
		v.fungible[a.Faucet] = balance
		return Fungible{Faucet: a.Faucet, Amount: balance}, nil

	case NonFungible:
		key := a.Digest()
		if _, ok := v.nonFungible[key]; ok {
			return nil, fault.DuplicateNonFungibleAsset
		}
		v.nonFungible[key] = a
		return a, nil
	}
	return nil, fault.InvalidCount
}

// RemoveAsset - take an asset out of the vault
func (v *Vault) RemoveAsset(a Asset) (Asset, error) {
	switch a := a.(type) {
	case Fungible:
		if 0 == a.Amount {
			return nil, fault.ZeroAmount
		}
		balance := v.fungible[a.Faucet]
		if a.Amount > balance {
			return nil, fault.InsufficientBalance
		}
		balance -= a.Amount
		if 0 == balance {
			delete(v.fungible, a.Faucet)
		} else {
			v.fungible[a.Faucet] = balance
		}
		return a, nil

	case NonFungible:
		key := a.Digest()
		if _, ok := v.nonFungible[key]; !ok {
			return nil, fault.NonFungibleAssetNotFound
		}
		delete(v.nonFungible, key)
		return a, nil
	}
	return nil, fault.InvalidCount
}

// Balance - current fungible amount for one faucet
func (v *Vault) Balance(faucet account.Identifier) uint64 {
	return v.fungible[faucet]
}

// HasNonFungible - check for one non-fungible instance
func (v *Vault) HasNonFungible(a NonFungible) bool {
	_, ok := v.nonFungible[a.Digest()]
	return ok
}

// Assets - deterministic list of vault contents
//
// sorted by asset digest so that repeated calls and separately built
// vaults with the same contents agree
func (v *Vault) Assets() []Asset {
	assets := make([]Asset, 0, len(v.fungible)+len(v.nonFungible))
	for faucet, amount := range v.fungible {
		assets = append(assets, Fungible{Faucet: faucet, Amount: amount})
	}
	for _, a := range v.nonFungible {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i int, j int) bool {
		di := assets[i].Digest()
		dj := assets[j].Digest()
		return bytes.Compare(di[:], dj[:]) < 0
	})
	return assets
}

// Count - number of distinct entries
func (v *Vault) Count() int {
	return len(v.fungible) + len(v.nonFungible)
}

// Root - order-independent commitment to the vault contents
//
// the empty vault commits to the zero digest
func (v *Vault) Root() merkle.Digest {
	var acc merkle.Digest
	for faucet, amount := range v.fungible {
		f := Fungible{Faucet: faucet, Amount: amount}
		acc = acc.Xor(f.Digest())
	}
	for _, a := range v.nonFungible {
		acc = acc.Xor(a.Digest())
	}
	return acc
}

// Clone - deep copy, for the saved views of foreign contexts
func (v *Vault) Clone() *Vault {
	clone := NewVault()
	for faucet, amount := range v.fungible {
		clone.fungible[faucet] = amount
	}
	for key, a := range v.nonFungible {
		clone.nonFungible[key] = a
	}
	return clone
}
