// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the immutable result of executing one
// transaction
//
// an executed transaction carries the public commitments a verifier
// checks against its proof; it is constructed by the executor,
// consumed by the prover and never modified afterwards
package transactionrecord

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/util"
)

// InputNoteRecord - one note consumed by a transaction
type InputNoteRecord struct {
	Nullifier        note.Nullifier `json:"nullifier"`
	Recipient        note.Recipient `json:"recipient"`
	AssetsCommitment merkle.Digest  `json:"assetsCommitment"`
}

// OutputNoteRecord - one note created by a transaction
type OutputNoteRecord struct {
	Recipient        note.Recipient `json:"recipient"`
	AssetsCommitment merkle.Digest  `json:"assetsCommitment"`
	Metadata         note.Metadata  `json:"metadata"`
	Assets           []asset.Asset  `json:"-"`
}

// ExecutedTransaction - a completed, provable state transition
type ExecutedTransaction struct {
	Account               account.Identifier `json:"account"`
	InitialCommitment     merkle.Digest      `json:"initialCommitment"`
	FinalCommitment       merkle.Digest      `json:"finalCommitment"`
	NonceBefore           uint64             `json:"nonceBefore,string"`
	NonceAfter            uint64             `json:"nonceAfter,string"`
	InputNotes            []InputNoteRecord  `json:"inputNotes"`
	OutputNotes           []OutputNoteRecord `json:"outputNotes"`
	InputNotesCommitment  merkle.Digest      `json:"inputNotesCommitment"`
	OutputNotesCommitment merkle.Digest      `json:"outputNotesCommitment"`
	BlockReference        merkle.Digest      `json:"blockReference"`
	Expiration            uint32             `json:"expiration"`
}

// ComputeInputNotesCommitment - ordered hash chain over consumed notes
//
// the empty set commits to the zero digest
func ComputeInputNotesCommitment(notes []InputNoteRecord) merkle.Digest {
	if 0 == len(notes) {
		return merkle.Digest{}
	}
	var acc merkle.Digest
	for _, n := range notes {
		acc = merkle.Combine(acc, merkle.Digest(n.Nullifier), merkle.Digest(n.Recipient))
	}
	return acc
}

// ComputeOutputNotesCommitment - ordered hash chain over created notes
//
// the empty set commits to the zero digest
func ComputeOutputNotesCommitment(notes []OutputNoteRecord) merkle.Digest {
	if 0 == len(notes) {
		return merkle.Digest{}
	}
	var acc merkle.Digest
	for _, n := range notes {
		acc = merkle.Combine(acc, merkle.Digest(n.Recipient), n.AssetsCommitment, n.Metadata.Digest())
	}
	return acc
}

// Packed - packed records are just a byte slice
type Packed []byte

// Pack - canonical byte form of the transaction
//
// all digests are fixed width, counts and integers are varint64
func (tx *ExecutedTransaction) Pack() Packed {
	buffer := make(Packed, 0, 1024)

	buffer = append(buffer, tx.Account.Bytes()...)
	buffer = append(buffer, tx.InitialCommitment[:]...)
	buffer = append(buffer, tx.FinalCommitment[:]...)
	buffer = append(buffer, util.ToVarint64(tx.NonceBefore)...)
	buffer = append(buffer, util.ToVarint64(tx.NonceAfter)...)

	buffer = append(buffer, util.ToVarint64(uint64(len(tx.InputNotes)))...)
	for _, n := range tx.InputNotes {
		buffer = append(buffer, n.Nullifier[:]...)
		buffer = append(buffer, n.Recipient[:]...)
		buffer = append(buffer, n.AssetsCommitment[:]...)
	}

	buffer = append(buffer, util.ToVarint64(uint64(len(tx.OutputNotes)))...)
	for _, n := range tx.OutputNotes {
		buffer = append(buffer, n.Recipient[:]...)
		buffer = append(buffer, n.AssetsCommitment[:]...)
		metadata := n.Metadata.Digest()
		buffer = append(buffer, metadata[:]...)
	}

	buffer = append(buffer, tx.InputNotesCommitment[:]...)
	buffer = append(buffer, tx.OutputNotesCommitment[:]...)
	buffer = append(buffer, tx.BlockReference[:]...)

	expiration := make([]byte, 4)
	binary.LittleEndian.PutUint32(expiration, tx.Expiration)
	buffer = append(buffer, expiration...)

	return buffer
}

// TxId - unique identifier of a packed transaction
func (tx *ExecutedTransaction) TxId() merkle.Digest {
	return tx.Pack().MakeLink()
}

// MakeLink - create an id for a packed record
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed from its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
