// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auth

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/vm"
)

// ACLAuthenticator - trigger-list gated authentication
//
// the account stores a list of procedure roots; if none of them were
// called during the transaction the nonce advances without a
// signature, otherwise authentication falls through to the signature
// strategy
type ACLAuthenticator struct {
	Fallback Authenticator
}

// NewACLAuthenticator - ACL strategy backed by signature verification
func NewACLAuthenticator() *ACLAuthenticator {
	return &ACLAuthenticator{
		Fallback: SignatureAuthenticator{},
	}
}

// TriggerRoots - read the stored trigger procedure list
func TriggerRoots(state State) ([]account.Value, error) {
	countValue, err := state.StorageItem(account.TriggerCountSlot)
	if nil != err {
		return nil, err
	}
	count := uint64(countValue.Word())

	roots := make([]account.Value, 0, count)
	for i := uint64(0); i < count; i += 1 {
		root, err := state.StorageMapItem(account.TriggerRootsSlot, account.ValueFromWords(merkle.Word(i)))
		if nil != err {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// Authorize - OR-reduce the trigger list against the call history
//
// iteration order over the list is insignificant and every entry is
// evaluated; the reduction is a pure OR with no early termination
func (a *ACLAuthenticator) Authorize(state State, advice *vm.AdviceProvider) (uint64, error) {
	roots, err := TriggerRoots(state)
	if nil != err {
		return 0, err
	}

	triggered := false
	for _, root := range roots {
		called := state.WasProcedureCalled(root.Digest())
		triggered = triggered || called
	}

	if !triggered {
		return 1, nil
	}
	return a.Fallback.Authorize(state, advice)
}
