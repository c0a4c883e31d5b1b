// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/veilmark/veilmarkd/fault"
)

// PoolHandle - one key namespace inside the database
//
// every key is transparently prefixed with the pool's tag byte so
// independent record kinds can share a single leveldb instance
type PoolHandle struct {
	prefix   byte
	database *leveldb.DB
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair
func (p *PoolHandle) Put(key []byte, value []byte) error {
	return p.database.Put(p.prefixKey(key), value, nil)
}

// Get - read a value for a given key
//
// returns nil if the record was not found
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// GetN - read a record and decode the first 8 bytes as big endian uint64
//
// returns the decoded number together with the remaining record
// bytes; the remainder is nil if the record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, []byte, error) {
	buffer, err := p.Get(key)
	if nil != err || nil == buffer {
		return 0, nil, err
	}
	if len(buffer) < 8 {
		return 0, nil, fault.InvalidCount
	}
	return binary.BigEndian.Uint64(buffer[:8]), buffer[8:], nil
}

// Has - check whether a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	return p.database.Has(p.prefixKey(key), nil)
}

// Delete - remove a key
func (p *PoolHandle) Delete(key []byte) error {
	return p.database.Delete(p.prefixKey(key), nil)
}

// batchPut - queue a write onto an atomic batch
func (p *PoolHandle) batchPut(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}
