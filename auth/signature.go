// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auth

import (
	"golang.org/x/crypto/ed25519"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/vm"
)

// SignatureAuthenticator - unconditional signature-gated authentication
//
// the account's public key lives in the reserved storage slot; the
// signature arrives through the advice channel, supplied out-of-band
// before execution started
type SignatureAuthenticator struct{}

// Authorize - verify a signature over the transaction message
func (SignatureAuthenticator) Authorize(state State, advice *vm.AdviceProvider) (uint64, error) {
	keyValue, err := state.StorageItem(account.PublicKeySlot)
	if nil != err {
		return 0, err
	}
	if keyValue.IsZero() {
		return 0, fault.InvalidPublicKey
	}
	publicKey := ed25519.PublicKey(keyValue[:])

	message := ComputeMessage(
		state.Identifier(),
		state.Nonce(),
		state.InputNotesCommitment(),
		state.OutputNotesCommitment(),
	)

	signature, err := advice.Signature(publicKey, message)
	if nil != err {
		return 0, err
	}
	if !ed25519.Verify(publicKey, message[:], signature) {
		return 0, fault.InvalidTransactionSignature
	}
	return 1, nil
}
