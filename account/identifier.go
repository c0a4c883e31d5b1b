// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - account identity and per-account state
//
// an account is identified by a two word identifier whose prefix low
// bits carry the account kind; its mutable state is a nonce, a set of
// storage slots and a code commitment
package account

import (
	"bytes"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Kind - the kind of an account, encoded in the identifier prefix
type Kind byte

// enumeration of account kinds
const (
	Regular           Kind = 0x00 // ordinary asset-holding account
	FungibleIssuer    Kind = 0x01 // faucet for one fungible asset class
	NonFungibleIssuer Kind = 0x02 // faucet for non-fungible assets

	kindMask = 0x03
)

// miscellaneous constants
const (
	checksumLength   = 4
	identifierLength = 16 // two 8 byte words
)

// Identifier - immutable account identity
//
// prefix and suffix are the two words hashed into authentication
// messages; the low bits of the prefix encode the account kind
type Identifier struct {
	Prefix merkle.Word
	Suffix merkle.Word
}

// NewIdentifier - build an identifier of a given kind from seed words
func NewIdentifier(kind Kind, prefix merkle.Word, suffix merkle.Word) Identifier {
	p := (uint64(prefix) &^ uint64(kindMask)) | uint64(kind)
	return Identifier{
		Prefix: merkle.Word(p),
		Suffix: suffix,
	}
}

// Kind - extract the kind bits
func (id Identifier) Kind() Kind {
	return Kind(uint64(id.Prefix) & kindMask)
}

// IsFaucet - true for either kind of issuing account
func (id Identifier) IsFaucet() bool {
	k := id.Kind()
	return FungibleIssuer == k || NonFungibleIssuer == k
}

// IsZero - check for the unset identifier
func (id Identifier) IsZero() bool {
	return 0 == id.Prefix && 0 == id.Suffix
}

// Bytes - 16 byte little endian binary form
func (id Identifier) Bytes() []byte {
	buffer := make([]byte, identifierLength)
	binary.LittleEndian.PutUint64(buffer[0:], uint64(id.Prefix))
	binary.LittleEndian.PutUint64(buffer[8:], uint64(id.Suffix))
	return buffer
}

// String - base58 text form with checksum
func (id Identifier) String() string {
	buffer := id.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an identifier to its base58 JSON form
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert base58 text back into an identifier
func (id *Identifier) UnmarshalText(s []byte) error {
	decoded, err := base58.Decode(string(s))
	if nil != err {
		return fault.CannotDecodeIdentifier
	}
	if identifierLength+checksumLength != len(decoded) {
		return fault.CannotDecodeIdentifier
	}
	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return fault.ChecksumMismatch
	}
	id.Prefix = merkle.Word(binary.LittleEndian.Uint64(decoded[0:]))
	id.Suffix = merkle.Word(binary.LittleEndian.Uint64(decoded[8:]))
	return nil
}

// IdentifierFromBase58 - decode helper mirroring UnmarshalText
func IdentifierFromBase58(s string) (Identifier, error) {
	var id Identifier
	err := id.UnmarshalText([]byte(s))
	return id, err
}
