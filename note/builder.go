// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Builder - a note under construction during a transaction
//
// the recipient is opaque input: the creator supplies the precomputed
// hash chain and the builder never reconstructs it from components,
// so the sender learns nothing about serial number, script or inputs
type Builder struct {
	recipient Recipient
	metadata  Metadata
	assets    *asset.Vault
	finalized bool
}

// NewBuilder - start a note from its recipient and metadata
func NewBuilder(recipient Recipient, metadata Metadata) (*Builder, error) {
	if err := metadata.Validate(); nil != err {
		return nil, err
	}
	return &Builder{
		recipient: recipient,
		metadata:  metadata,
		assets:    asset.NewVault(),
	}, nil
}

// AddAsset - attach one asset
//
// fails once the note is finalized; fungible amounts from the same
// faucet merge, a duplicate non-fungible instance fails
func (b *Builder) AddAsset(a asset.Asset) error {
	if b.finalized {
		return fault.NoteAlreadyFinalized
	}
	if b.assets.Count() >= constants.MaxNoteAssets {
		return fault.TooManyNoteAssets
	}
	_, err := b.assets.AddAsset(a)
	return err
}

// Finalize - freeze the asset set
//
// idempotent: finalizing twice is harmless, mutation afterwards fails
func (b *Builder) Finalize() {
	b.finalized = true
}

// IsFinalized - check the frozen flag
func (b *Builder) IsFinalized() bool {
	return b.finalized
}

// Recipient - the opaque identifier this note was built for
func (b *Builder) Recipient() Recipient {
	return b.recipient
}

// Metadata - the routing metadata attached at creation
func (b *Builder) Metadata() Metadata {
	return b.metadata
}

// Assets - deterministic list of attached assets
func (b *Builder) Assets() []asset.Asset {
	return b.assets.Assets()
}

// AssetsCommitment - order-independent commitment to the attached assets
func (b *Builder) AssetsCommitment() merkle.Digest {
	return b.assets.Root()
}
