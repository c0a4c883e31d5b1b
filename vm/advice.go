// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vm - the boundary to the virtual machine and proof system
//
// the kernel hands the machine a program plus public inputs and a set
// of nondeterministic advice, and expects back a proof or a trap; the
// machine's instruction set and proof construction live outside this
// repository
package vm

import (
	"golang.org/x/crypto/ed25519"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// AdviceProvider - nondeterministic inputs for one transaction
//
// everything is loaded before execution starts: the kernel never
// blocks on external input mid-transaction
type AdviceProvider struct {
	signatures map[merkle.Digest][]byte
	mapValues  map[merkle.Digest]account.Value
}

// NewAdviceProvider - an empty advice set
func NewAdviceProvider() *AdviceProvider {
	return &AdviceProvider{
		signatures: make(map[merkle.Digest][]byte),
		mapValues:  make(map[merkle.Digest]account.Value),
	}
}

func signatureKey(publicKey ed25519.PublicKey, message merkle.Digest) merkle.Digest {
	buffer := make([]byte, 0, len(publicKey)+merkle.DigestLength)
	buffer = append(buffer, publicKey...)
	buffer = append(buffer, message[:]...)
	return merkle.NewDigest(buffer)
}

// AddSignature - supply a signature over a message for one key
func (advice *AdviceProvider) AddSignature(publicKey ed25519.PublicKey, message merkle.Digest, signature []byte) {
	advice.signatures[signatureKey(publicKey, message)] = signature
}

// Signature - fetch a previously supplied signature
func (advice *AdviceProvider) Signature(publicKey ed25519.PublicKey, message merkle.Digest) ([]byte, error) {
	signature, ok := advice.signatures[signatureKey(publicKey, message)]
	if !ok {
		return nil, fault.MissingSignatureAdvice
	}
	return signature, nil
}

func mapValueKey(root merkle.Digest, key account.Value) merkle.Digest {
	buffer := make([]byte, 0, merkle.DigestLength+account.ValueLength)
	buffer = append(buffer, root[:]...)
	buffer = append(buffer, key[:]...)
	return merkle.NewDigest(buffer)
}

// AddMapValue - supply one storage map value under a map root
func (advice *AdviceProvider) AddMapValue(root merkle.Digest, key account.Value, value account.Value) {
	advice.mapValues[mapValueKey(root, key)] = value
}

// MapValue - fetch a previously supplied map value
func (advice *AdviceProvider) MapValue(root merkle.Digest, key account.Value) (account.Value, bool) {
	value, ok := advice.mapValues[mapValueKey(root, key)]
	return value, ok
}
