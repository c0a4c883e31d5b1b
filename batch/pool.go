// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Pool - proved transactions waiting to be aggregated
//
// entries silently expire after the pool timeout: a transaction
// nobody aggregates is eventually dropped and must be re-executed
// against fresher chain state
type Pool struct {
	sync.Mutex

	log   *logger.L
	cache *cache.Cache
	order []merkle.Digest
}

// NewPool - empty pool with the protocol expiry
func NewPool() *Pool {
	return &Pool{
		log:   logger.New("batch-pool"),
		cache: cache.New(constants.BatchPoolTimeout, time.Minute),
	}
}

// Add - store one proved item
func (p *Pool) Add(item *Item) error {
	if nil == item || nil == item.Tx || nil == item.Proof {
		return fault.InvalidStructPointer
	}
	txId := item.Tx.TxId()

	p.Lock()
	defer p.Unlock()

	if err := p.cache.Add(txId.String(), item, cache.DefaultExpiration); nil != err {
		return fault.TransactionAlreadyInPool
	}
	p.order = append(p.order, txId)
	p.log.Debugf("added txid: %v", txId)
	return nil
}

// Drain - remove and return up to limit items in arrival order
//
// entries that have expired since being added are skipped
func (p *Pool) Drain(limit int) []*Item {
	p.Lock()
	defer p.Unlock()

	items := []*Item{}
	remaining := []merkle.Digest{}

	for i, txId := range p.order {
		if len(items) >= limit {
			remaining = append(remaining, p.order[i:]...)
			break
		}
		entry, ok := p.cache.Get(txId.String())
		if !ok {
			continue // expired
		}
		p.cache.Delete(txId.String())
		items = append(items, entry.(*Item))
	}
	p.order = remaining
	return items
}

// Size - count of live entries
func (p *Pool) Size() int {
	return p.cache.ItemCount()
}
