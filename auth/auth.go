// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auth - epilogue authentication strategies
//
// an authenticator is invoked exactly once per transaction, after the
// note loop and before the nonce advancement becomes observable; it
// either authorizes the transaction and names the nonce delta or
// rejects it outright
package auth

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/vm"
)

// State - the read-only view an authenticator gets of the transaction
//
// implemented by the executor at epilogue time; mutation is
// deliberately unreachable from here
type State interface {
	Identifier() account.Identifier
	Nonce() uint64
	InputNotesCommitment() merkle.Digest
	OutputNotesCommitment() merkle.Digest
	StorageItem(slot uint8) (account.Value, error)
	StorageMapItem(slot uint8, key account.Value) (account.Value, error)
	WasProcedureCalled(root merkle.Digest) bool
}

// Authenticator - the single capability "authorize and advance nonce"
//
// returns the nonce delta to apply; any error rejects the transaction
// with no nonce change
type Authenticator interface {
	Authorize(state State, advice *vm.AdviceProvider) (uint64, error)
}

// ComputeMessage - the digest a signer commits to
//
// hash(outputNotes, hash(inputNotes, hash(0,0,idPrefix,idSuffix,0,0,0,nonce)))
// binding account, nonce and both note sets so that a signature can
// neither be replayed on another transaction nor detached from its
// account
func ComputeMessage(id account.Identifier, nonce uint64, inputNotes merkle.Digest, outputNotes merkle.Digest) merkle.Digest {
	inner := merkle.NewDigestFromWords(
		0, 0,
		id.Prefix, id.Suffix,
		0, 0, 0,
		merkle.Word(nonce),
	)
	middle := merkle.Combine(inputNotes, inner)
	return merkle.Combine(outputNotes, middle)
}
