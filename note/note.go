// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package note - transferable bundles of assets with a consumption script
//
// a note is publicly identified only by its recipient, a one-way hash
// chain over serial number, script root and inputs commitment; the
// components stay private until the note is consumed
package note

import (
	"crypto/rand"
	"io"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// SerialNumberLength - bytes in a serial number
const SerialNumberLength = 32

// SerialNumber - owner-chosen random nonce making the recipient unlinkable
type SerialNumber [SerialNumberLength]byte

// Recipient - one-way commitment identifying a note
//
// deliberately carries no accessor back to its components: knowledge
// of a recipient must not reveal serial number, script or inputs
type Recipient merkle.Digest

// Nullifier - double-consumption detector for a consumed note
type Nullifier merkle.Digest

// NewSerialNumber - cryptographically random serial number
func NewSerialNumber() (SerialNumber, error) {
	var serial SerialNumber
	if _, err := io.ReadFull(rand.Reader, serial[:]); nil != err {
		return SerialNumber{}, err
	}
	return serial, nil
}

// InputsCommitment - commitment plus length for a note's input words
func InputsCommitment(inputs []merkle.Word) (merkle.Digest, uint32, error) {
	if len(inputs) > constants.MaxNoteInputs {
		return merkle.Digest{}, 0, fault.TooManyNoteInputs
	}
	return merkle.NewDigestFromWords(inputs...), uint32(len(inputs)), nil
}

// ComputeRecipient - the three-level hash chain
//
// hash(hash(hash(serial, 0), script_root), inputs_commitment)
func ComputeRecipient(serial SerialNumber, scriptRoot merkle.Digest, inputsCommitment merkle.Digest) Recipient {
	first := merkle.Combine(merkle.Digest(serial), merkle.Digest{})
	second := merkle.Combine(first, scriptRoot)
	return Recipient(merkle.Combine(second, inputsCommitment))
}

// String - hex text of a recipient
func (r Recipient) String() string {
	return merkle.Digest(r).String()
}

// MarshalText - convert a recipient to its hex JSON form
func (r Recipient) MarshalText() ([]byte, error) {
	return merkle.Digest(r).MarshalText()
}

// UnmarshalText - convert hex text into a recipient
func (r *Recipient) UnmarshalText(s []byte) error {
	return (*merkle.Digest)(r).UnmarshalText(s)
}

// String - hex text of a nullifier
func (n Nullifier) String() string {
	return merkle.Digest(n).String()
}

// MarshalText - convert a nullifier to its hex JSON form
func (n Nullifier) MarshalText() ([]byte, error) {
	return merkle.Digest(n).MarshalText()
}

// UnmarshalText - convert hex text into a nullifier
func (n *Nullifier) UnmarshalText(s []byte) error {
	return (*merkle.Digest)(n).UnmarshalText(s)
}

// Note - a full consumable note
//
// everything the recipient commits to, plus the assets and routing
// metadata attached at creation
type Note struct {
	Serial     SerialNumber
	ScriptRoot merkle.Digest
	Inputs     []merkle.Word
	Sender     account.Identifier
	Assets     *asset.Vault
	Metadata   Metadata
}

// Recipient - derive the public identifier of this note
func (n *Note) Recipient() (Recipient, error) {
	inputsCommitment, _, err := InputsCommitment(n.Inputs)
	if nil != err {
		return Recipient{}, err
	}
	return ComputeRecipient(n.Serial, n.ScriptRoot, inputsCommitment), nil
}

// Nullifier - the double-spend key for consumption by one account
//
// derived from the recipient and the consuming account so that the
// same note consumed by different accounts is still detected, while
// observers cannot link a nullifier to an unconsumed recipient
func (n *Note) Nullifier(consumer account.Identifier) (Nullifier, error) {
	recipient, err := n.Recipient()
	if nil != err {
		return Nullifier{}, err
	}
	return ComputeNullifier(recipient, consumer), nil
}

// ComputeNullifier - nullifier from a recipient and consuming account
func ComputeNullifier(recipient Recipient, consumer account.Identifier) Nullifier {
	buffer := make([]byte, 0, merkle.DigestLength+16)
	buffer = append(buffer, recipient[:]...)
	buffer = append(buffer, consumer.Bytes()...)
	return Nullifier(merkle.NewDigest(buffer))
}

// AssetsCommitment - order-independent commitment to the attached assets
func (n *Note) AssetsCommitment() merkle.Digest {
	return n.Assets.Root()
}
