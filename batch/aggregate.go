// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package batch - aggregate proved transactions into batches
//
// a batch is only as good as its weakest member, so every cross
// transaction invariant is rechecked here: no nullifier twice, no
// nonce gap or reuse per account, and ephemeral notes created and
// consumed inside the batch must match exactly
package batch

import (
	"github.com/bitmark-inc/logger"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/chainstate"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
	"github.com/veilmark/veilmarkd/vm"
)

// Item - one proved transaction offered for aggregation
type Item struct {
	Tx    *transactionrecord.ExecutedTransaction
	Proof *vm.Proof
}

// Batch - an ordered, internally consistent set of transactions
type Batch struct {
	Transactions []*transactionrecord.ExecutedTransaction
	TxRoot       merkle.Digest
	Nullifiers   []note.Nullifier

	// notes created in this batch and not consumed by it; these
	// survive the batch and become consumable on chain
	Forwarded []transactionrecord.OutputNoteRecord
}

// Aggregator - validates and commits batches against the chain state
type Aggregator struct {
	log      *logger.L
	verifier vm.Verifier
	data     *chainstate.Data
}

// NewAggregator - aggregator over one verifier and chain state
func NewAggregator(verifier vm.Verifier, data *chainstate.Data) *Aggregator {
	return &Aggregator{
		log:      logger.New("batch"),
		verifier: verifier,
		data:     data,
	}
}

// Aggregate - check a transaction sequence and form a batch
//
// order matters: a note may only be consumed by a later transaction
// than the one creating it, and per-account nonce chains follow the
// given order
func (ag *Aggregator) Aggregate(items []*Item) (*Batch, error) {
	if 0 == len(items) {
		return nil, fault.EmptyBatch
	}

	type accountChain struct {
		nonceAfter      uint64
		finalCommitment merkle.Digest
		usedNonces      map[uint64]bool
	}

	chains := make(map[account.Identifier]*accountChain)
	spent := make(map[note.Nullifier]bool)
	created := make(map[note.Recipient]int) // recipient to forwarded index
	forwarded := []transactionrecord.OutputNoteRecord{}
	consumed := make(map[int]bool)

	transactions := make([]*transactionrecord.ExecutedTransaction, 0, len(items))
	txIds := make([]merkle.Digest, 0, len(items))
	nullifiers := []note.Nullifier{}

	for _, item := range items {
		if nil == item || nil == item.Tx {
			return nil, fault.InvalidStructPointer
		}
		tx := item.Tx

		if nil == item.Proof {
			return nil, fault.MissingProof
		}
		if err := ag.verifier.Verify(item.Proof, tx); nil != err {
			return nil, err
		}

		// nullifiers: unseen in this batch and on chain
		for _, input := range tx.InputNotes {
			if spent[input.Nullifier] {
				return nil, fault.DoubleSpendInBatch
			}
			onChain, err := ag.data.IsConsumed(input.Nullifier)
			if nil != err {
				return nil, err
			}
			if onChain {
				return nil, fault.DoubleSpendInBatch
			}
			spent[input.Nullifier] = true
			nullifiers = append(nullifiers, input.Nullifier)

			// a note created earlier in this batch: the consumed
			// contents must match the created contents exactly
			if index, ok := created[input.Recipient]; ok {
				if forwarded[index].AssetsCommitment != input.AssetsCommitment {
					return nil, fault.BatchNoteMismatch
				}
				consumed[index] = true
			}
		}

		// per-account nonce and commitment chain
		chain, ok := chains[tx.Account]
		if !ok {
			chain = &accountChain{usedNonces: make(map[uint64]bool)}
			nonce, commitment, err := ag.data.AccountHead(tx.Account)
			switch err {
			case nil:
				if nonce != tx.NonceBefore {
					if chainNonceUsed(nonce, tx.NonceBefore) {
						return nil, fault.NonceReuseInBatch
					}
					return nil, fault.NonceGapInBatch
				}
				if commitment != tx.InitialCommitment {
					return nil, fault.AccountCommitmentMismatch
				}
			case fault.AccountNotFound:
				// first ever transaction of this account
			default:
				return nil, err
			}
			chains[tx.Account] = chain
		} else {
			if chain.usedNonces[tx.NonceBefore] {
				return nil, fault.NonceReuseInBatch
			}
			if tx.NonceBefore != chain.nonceAfter {
				return nil, fault.NonceGapInBatch
			}
			if tx.InitialCommitment != chain.finalCommitment {
				return nil, fault.AccountCommitmentMismatch
			}
		}
		chain.usedNonces[tx.NonceBefore] = true
		chain.nonceAfter = tx.NonceAfter
		chain.finalCommitment = tx.FinalCommitment

		for _, output := range tx.OutputNotes {
			created[output.Recipient] = len(forwarded)
			forwarded = append(forwarded, output)
		}

		transactions = append(transactions, tx)
		txIds = append(txIds, tx.TxId())
	}

	surviving := []transactionrecord.OutputNoteRecord{}
	for i, output := range forwarded {
		if !consumed[i] {
			surviving = append(surviving, output)
		}
	}

	batch := &Batch{
		Transactions: transactions,
		TxRoot:       merkle.Root(txIds),
		Nullifiers:   nullifiers,
		Forwarded:    surviving,
	}
	ag.log.Infof("aggregated %d transactions  root: %v  forwarded notes: %d",
		len(transactions), batch.TxRoot, len(surviving))
	return batch, nil
}

// chainNonceUsed - distinguish a replayed nonce from a gap
func chainNonceUsed(committed uint64, proposed uint64) bool {
	return proposed < committed
}

// Commit - apply a validated batch to the chain state atomically
func (ag *Aggregator) Commit(batch *Batch) error {
	if nil == batch || 0 == len(batch.Transactions) {
		return fault.EmptyBatch
	}

	update := ag.data.NewUpdate()
	for _, tx := range batch.Transactions {
		txId := tx.TxId()
		for _, input := range tx.InputNotes {
			update.MarkConsumed(input.Nullifier, txId)
		}
		update.SetAccountHead(tx.Account, tx.NonceAfter, tx.FinalCommitment)
		update.StoreTransaction(tx)
	}
	if err := update.Commit(); nil != err {
		return err
	}
	ag.log.Infof("committed %d transactions", len(batch.Transactions))
	return nil
}
