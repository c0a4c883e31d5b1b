// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
)

// ForeignHandle - token returned by StartForeignContext
//
// must be presented to EndForeignContext; ending out of order or
// without a matching start is a fatal protocol violation
type ForeignHandle uint32

// API - one method per procedure table entry
//
// this interface is the sole privileged surface handed to untrusted
// account and note scripts; everything else they can reach is
// unprivileged user code
type API interface {

	// account state accessor/mutator
	GetItem(slot uint8) (account.Value, error)
	SetItem(slot uint8, value account.Value) (account.Value, error)
	GetMapItem(slot uint8, key account.Value) (account.Value, error)
	SetMapItem(slot uint8, key account.Value, value account.Value) (account.Value, error)
	GetNonce() (uint64, error)
	IncrNonce(delta uint64) error
	GetId() (account.Identifier, error)
	GetCodeCommitment() (merkle.Digest, error)
	GetStorageCommitment() (merkle.Digest, error)
	GetVaultRoot() (merkle.Digest, error)
	GetInitialCommitment() (merkle.Digest, error)
	ComputeCurrentCommitment() (merkle.Digest, error)
	WasProcedureCalled(root merkle.Digest) (bool, error)

	// asset vault manager
	AddAsset(a asset.Asset) (asset.Asset, error)
	RemoveAsset(a asset.Asset) (asset.Asset, error)
	GetBalance(faucet account.Identifier) (uint64, error)
	HasNonFungibleAsset(a asset.NonFungible) (bool, error)

	// faucet operations, restricted to the issuing account
	MintAsset(a asset.Asset) error
	BurnAsset(a asset.Asset) error
	GetTotalIssuance() (uint64, error)
	IsNonFungibleIssued(a asset.NonFungible) (bool, error)

	// note being consumed
	GetNoteAssets() (uint32, []asset.Asset, error)
	GetNoteInputs() (uint32, []merkle.Word, error)
	GetNoteSerialNumber() (note.SerialNumber, error)
	GetNoteSender() (account.Identifier, error)
	GetNoteScriptRoot() (merkle.Digest, error)

	// note creation
	CreateNote(metadata note.Metadata, recipient note.Recipient) (uint32, error)
	AddAssetToNote(noteIndex uint32, a asset.Asset) error

	// transaction commitments and block context
	GetInputNotesCommitment() (merkle.Digest, error)
	GetOutputNotesCommitment() (merkle.Digest, error)
	GetBlockNumber() (uint64, error)
	GetBlockTimestamp() (int64, error)
	GetBlockCommitment() (merkle.Digest, error)

	// foreign context manager
	StartForeignContext(id account.Identifier) (ForeignHandle, error)
	EndForeignContext(handle ForeignHandle) error

	// transaction expiration
	GetExpiration() (uint32, error)
	UpdateExpiration(block uint32) error
}
