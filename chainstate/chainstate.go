// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/blockrecord"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
)

// IsConsumed - check the double-consumption registry
func (d *Data) IsConsumed(n note.Nullifier) (bool, error) {
	return d.Nullifiers.Has(n[:])
}

// AccountHead - committed nonce and commitment of an account
func (d *Data) AccountHead(id account.Identifier) (uint64, merkle.Digest, error) {
	nonce, rest, err := d.Accounts.GetN(id.Bytes())
	if nil != err {
		return 0, merkle.Digest{}, err
	}
	if nil == rest {
		return 0, merkle.Digest{}, fault.AccountNotFound
	}
	if len(rest) != merkle.DigestLength {
		return 0, merkle.Digest{}, fault.InvalidCount
	}
	var commitment merkle.Digest
	copy(commitment[:], rest)
	return nonce, commitment, nil
}

// SetAccountHead - store nonce and commitment outside a batch
//
// only used for seeding; the aggregator commits through an Update
func (d *Data) SetAccountHead(id account.Identifier, nonce uint64, commitment merkle.Digest) error {
	return d.Accounts.Put(id.Bytes(), packAccountHead(nonce, commitment))
}

// HasHeader - check a block header digest is known
func (d *Data) HasHeader(digest merkle.Digest) (bool, error) {
	return d.Headers.Has(digest[:])
}

// StoreHeader - record a block header keyed by its digest
func (d *Data) StoreHeader(header *blockrecord.Header) error {
	return d.Headers.Put(packHeaderKey(header), packHeader(header))
}

// Transaction - fetch one packed transaction by id
func (d *Data) Transaction(txId merkle.Digest) (transactionrecord.Packed, error) {
	buffer, err := d.Transactions.Get(txId[:])
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.LinkNotFound
	}
	return transactionrecord.Packed(buffer), nil
}

func packAccountHead(nonce uint64, commitment merkle.Digest) []byte {
	buffer := make([]byte, 8+merkle.DigestLength)
	binary.BigEndian.PutUint64(buffer[:8], nonce)
	copy(buffer[8:], commitment[:])
	return buffer
}

func packHeaderKey(header *blockrecord.Header) []byte {
	digest := header.Digest()
	return digest[:]
}

func packHeader(header *blockrecord.Header) []byte {
	buffer := make([]byte, 16+merkle.DigestLength)
	binary.BigEndian.PutUint64(buffer[:8], header.Number)
	binary.BigEndian.PutUint64(buffer[8:16], uint64(header.Timestamp))
	copy(buffer[16:], header.PreviousBlock[:])
	return buffer
}

// Update - atomic set of chain mutations
//
// all writes queued on an update become visible together or not at
// all, so a crash can never leave a half-applied batch
type Update struct {
	data  *Data
	batch leveldb.Batch
}

// NewUpdate - start an empty update
func (d *Data) NewUpdate() *Update {
	return &Update{data: d}
}

// MarkConsumed - queue one nullifier as spent
func (u *Update) MarkConsumed(n note.Nullifier, txId merkle.Digest) {
	u.data.Nullifiers.batchPut(&u.batch, n[:], txId[:])
}

// SetAccountHead - queue an account nonce and commitment
func (u *Update) SetAccountHead(id account.Identifier, nonce uint64, commitment merkle.Digest) {
	u.data.Accounts.batchPut(&u.batch, id.Bytes(), packAccountHead(nonce, commitment))
}

// StoreTransaction - queue one packed transaction
func (u *Update) StoreTransaction(tx *transactionrecord.ExecutedTransaction) {
	txId := tx.TxId()
	u.data.Transactions.batchPut(&u.batch, txId[:], tx.Pack())
}

// Commit - apply every queued write atomically
func (u *Update) Commit() error {
	err := u.data.database.Write(&u.batch, nil)
	u.batch.Reset()
	return err
}
