// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

func fungibleFaucet(seed merkle.Word) account.Identifier {
	return account.NewIdentifier(account.FungibleIssuer, seed, seed+1)
}

func nonFungibleFaucet(seed merkle.Word) account.Identifier {
	return account.NewIdentifier(account.NonFungibleIssuer, seed, seed+1)
}

func TestVaultFungibleMerge(t *testing.T) {
	faucet := fungibleFaucet(100)
	vault := asset.NewVault()

	merged, err := vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 70})
	if nil != err {
		t.Fatalf("add error: %s", err)
	}
	if merged.(asset.Fungible).Amount != 70 {
		t.Errorf("merged amount: actual: %d  expected: 70", merged.(asset.Fungible).Amount)
	}

	merged, err = vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 30})
	if nil != err {
		t.Fatalf("add error: %s", err)
	}
	if merged.(asset.Fungible).Amount != 100 {
		t.Errorf("merged amount: actual: %d  expected: 100", merged.(asset.Fungible).Amount)
	}

	if vault.Balance(faucet) != 100 {
		t.Errorf("balance: actual: %d  expected: 100", vault.Balance(faucet))
	}
}

func TestVaultFungibleOverflow(t *testing.T) {
	faucet := fungibleFaucet(200)
	vault := asset.NewVault()

	_, err := vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: constants.MaxFungibleAmount})
	if nil != err {
		t.Fatalf("add error: %s", err)
	}

	_, err = vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 1})
	if fault.FungibleAmountOverflow != err {
		t.Errorf("overflow: unexpected error: %v", err)
	}
}

func TestVaultFungibleUnderflow(t *testing.T) {
	faucet := fungibleFaucet(300)
	vault := asset.NewVault()

	_, _ = vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 50})

	_, err := vault.RemoveAsset(asset.Fungible{Faucet: faucet, Amount: 51})
	if fault.InsufficientBalance != err {
		t.Errorf("underflow: unexpected error: %v", err)
	}

	_, err = vault.RemoveAsset(asset.Fungible{Faucet: faucet, Amount: 50})
	if nil != err {
		t.Fatalf("remove error: %s", err)
	}
	if vault.Balance(faucet) != 0 {
		t.Errorf("balance after removal: actual: %d  expected: 0", vault.Balance(faucet))
	}
}

func TestVaultNonFungibleDuplicate(t *testing.T) {
	faucet := nonFungibleFaucet(400)
	instance := asset.NonFungible{
		Faucet:     faucet,
		UniqueHash: merkle.NewDigest([]byte("instance-1")),
	}

	vault := asset.NewVault()
	if _, err := vault.AddAsset(instance); nil != err {
		t.Fatalf("add error: %s", err)
	}
	if !vault.HasNonFungible(instance) {
		t.Error("added instance not found")
	}

	if _, err := vault.AddAsset(instance); fault.DuplicateNonFungibleAsset != err {
		t.Errorf("duplicate add: unexpected error: %v", err)
	}

	if _, err := vault.RemoveAsset(instance); nil != err {
		t.Fatalf("remove error: %s", err)
	}
	if _, err := vault.RemoveAsset(instance); fault.NonFungibleAssetNotFound != err {
		t.Errorf("absent remove: unexpected error: %v", err)
	}
}

// the vault root must not depend on insertion order
func TestVaultRootOrderIndependent(t *testing.T) {
	faucetA := fungibleFaucet(500)
	faucetB := fungibleFaucet(600)
	instance := asset.NonFungible{
		Faucet:     nonFungibleFaucet(700),
		UniqueHash: merkle.NewDigest([]byte("instance-2")),
	}

	first := asset.NewVault()
	_, _ = first.AddAsset(asset.Fungible{Faucet: faucetA, Amount: 10})
	_, _ = first.AddAsset(asset.Fungible{Faucet: faucetB, Amount: 20})
	_, _ = first.AddAsset(instance)

	second := asset.NewVault()
	_, _ = second.AddAsset(instance)
	_, _ = second.AddAsset(asset.Fungible{Faucet: faucetB, Amount: 20})
	_, _ = second.AddAsset(asset.Fungible{Faucet: faucetA, Amount: 10})

	if first.Root() != second.Root() {
		t.Error("vault root depends on insertion order")
	}

	if first.Root().IsZero() {
		t.Error("populated vault has zero root")
	}
	if !asset.NewVault().Root().IsZero() {
		t.Error("empty vault has non-zero root")
	}
}

func TestFaucetLedgerIssuanceCap(t *testing.T) {
	faucet := fungibleFaucet(800)
	ledger, err := asset.NewFaucetLedger(faucet, 1000)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}

	if err := ledger.Mint(asset.Fungible{Faucet: faucet, Amount: 900}); nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if err := ledger.Mint(asset.Fungible{Faucet: faucet, Amount: 101}); fault.IssuanceCapExceeded != err {
		t.Errorf("cap: unexpected error: %v", err)
	}
	if ledger.TotalIssuance() != 900 {
		t.Errorf("issuance: actual: %d  expected: 900", ledger.TotalIssuance())
	}

	if err := ledger.Burn(asset.Fungible{Faucet: faucet, Amount: 400}); nil != err {
		t.Fatalf("burn error: %s", err)
	}
	if ledger.TotalIssuance() != 500 {
		t.Errorf("issuance after burn: actual: %d  expected: 500", ledger.TotalIssuance())
	}

	// wrong faucet
	other := fungibleFaucet(900)
	if err := ledger.Mint(asset.Fungible{Faucet: other, Amount: 1}); fault.WrongFaucetAccount != err {
		t.Errorf("wrong faucet: unexpected error: %v", err)
	}
}

func TestFaucetLedgerNonFungible(t *testing.T) {
	faucet := nonFungibleFaucet(1000)
	ledger, err := asset.NewFaucetLedger(faucet, 0)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}

	instance := asset.NonFungible{
		Faucet:     faucet,
		UniqueHash: merkle.NewDigest([]byte("unique")),
	}

	if err := ledger.Mint(instance); nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if !ledger.IsIssued(instance) {
		t.Error("minted instance not recorded")
	}
	if err := ledger.Mint(instance); fault.DuplicateNonFungibleAsset != err {
		t.Errorf("duplicate mint: unexpected error: %v", err)
	}

	if err := ledger.Burn(instance); nil != err {
		t.Fatalf("burn error: %s", err)
	}
	if err := ledger.Burn(instance); fault.NonFungibleNotIssued != err {
		t.Errorf("burn absent: unexpected error: %v", err)
	}
}

func TestFaucetLedgerRequiresFaucetAccount(t *testing.T) {
	regular := account.NewIdentifier(account.Regular, 1, 2)
	if _, err := asset.NewFaucetLedger(regular, 0); fault.NotFaucetAccount != err {
		t.Errorf("regular account ledger: unexpected error: %v", err)
	}
}
