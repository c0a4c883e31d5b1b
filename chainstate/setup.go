// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainstate - durable committed chain records
//
// one leveldb database split into prefixed pools: consumed
// nullifiers, account heads, block headers and packed transactions
package chainstate

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// pool tag bytes, never reuse a value
const (
	nullifierPrefix   = 'N'
	accountPrefix     = 'A'
	headerPrefix      = 'B'
	transactionPrefix = 'T'
)

// Data - the set of pools over one open database
type Data struct {
	log      *logger.L
	database *leveldb.DB

	Nullifiers   *PoolHandle
	Accounts     *PoolHandle
	Headers      *PoolHandle
	Transactions *PoolHandle
}

// New - open or create the database file
func New(name string) (*Data, error) {
	db, err := leveldb.OpenFile(name, nil)
	if nil != err {
		return nil, err
	}
	return assemble(db), nil
}

// NewMemory - volatile database for tests
func NewMemory() (*Data, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return assemble(db), nil
}

func assemble(db *leveldb.DB) *Data {
	return &Data{
		log:          logger.New("chainstate"),
		database:     db,
		Nullifiers:   &PoolHandle{prefix: nullifierPrefix, database: db},
		Accounts:     &PoolHandle{prefix: accountPrefix, database: db},
		Headers:      &PoolHandle{prefix: headerPrefix, database: db},
		Transactions: &PoolHandle{prefix: transactionPrefix, database: db},
	}
}

// Close - flush and close the database
func (d *Data) Close() error {
	return d.database.Close()
}
