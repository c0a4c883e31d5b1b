// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/binary"

	"github.com/veilmark/veilmarkd/merkle"
)

// reserved storage slots used by the reference authentication
// components; a convention of those components, not kernel enforced
const (
	PublicKeySlot    = 0 // value slot: ed25519 public key
	TriggerCountSlot = 1 // value slot: count of trigger procedure roots
	TriggerRootsSlot = 2 // map slot: index word -> procedure root
)

// State - mutable per-account state without the vault
//
// the asset vault is managed separately so that vault accounting and
// account storage can evolve independently; the two are joined by the
// transaction executor and by Commitment
type State struct {
	Identifier     Identifier
	Nonce          uint64
	CodeCommitment merkle.Digest
	Storage        *Storage
}

// NewState - account state with the given storage layout
func NewState(id Identifier, codeCommitment merkle.Digest, layout []SlotKind) (*State, error) {
	storage, err := NewStorage(layout)
	if nil != err {
		return nil, err
	}
	return &State{
		Identifier:     id,
		Nonce:          0,
		CodeCommitment: codeCommitment,
		Storage:        storage,
	}, nil
}

// Commitment - commitment to the whole account
//
// hash(id ‖ nonce ‖ vault root ‖ storage commitment ‖ code commitment)
func (state *State) Commitment(vaultRoot merkle.Digest) merkle.Digest {
	buffer := make([]byte, 0, 24+3*merkle.DigestLength)
	buffer = append(buffer, state.Identifier.Bytes()...)

	nonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonce, state.Nonce)
	buffer = append(buffer, nonce...)

	buffer = append(buffer, vaultRoot[:]...)

	storageCommitment := state.Storage.Commitment()
	buffer = append(buffer, storageCommitment[:]...)
	buffer = append(buffer, state.CodeCommitment[:]...)

	return merkle.NewDigest(buffer)
}

// Clone - deep copy, for the saved views of foreign contexts
func (state *State) Clone() *State {
	return &State{
		Identifier:     state.Identifier,
		Nonce:          state.Nonce,
		CodeCommitment: state.CodeCommitment,
		Storage:        state.Storage.Clone(),
	}
}
