// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - asynchronous proving pool
//
// proving is by far the most expensive step of the pipeline, so
// executed transactions are queued and proved by a fixed set of
// rate-limited workers while execution of further transactions
// continues
package proof

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/veilmark/veilmarkd/background"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/counter"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/transactionrecord"
	"github.com/veilmark/veilmarkd/vm"
)

// queue depth before Submit blocks
const queueSize = 256

// Result - outcome of one proving job
type Result struct {
	TxId  merkle.Digest
	Tx    *transactionrecord.ExecutedTransaction
	Proof *vm.Proof
	Err   error
}

// Pool - a running set of proving workers
type Pool struct {
	sync.Mutex

	log     *logger.L
	prover  vm.Prover
	limiter *rate.Limiter

	queue   chan *transactionrecord.ExecutedTransaction
	results chan Result
	done    chan struct{}

	workers *background.T
	stopped bool

	submitted counter.Counter
	proved    counter.Counter
	failed    counter.Counter
}

// NewPool - start workers against one prover
//
// zero workers or rate selects the defaults
func NewPool(prover vm.Prover, workers int, perSecond rate.Limit) *Pool {
	if workers <= 0 {
		workers = constants.DefaultProofWorkers
	}
	if perSecond <= 0 {
		perSecond = rate.Limit(constants.DefaultProofRate)
	}

	pool := &Pool{
		log:     logger.New("proof"),
		prover:  prover,
		limiter: rate.NewLimiter(perSecond, workers),
		queue:   make(chan *transactionrecord.ExecutedTransaction, queueSize),
		results: make(chan Result, queueSize),
		done:    make(chan struct{}),
	}

	processes := make(background.Processes, workers)
	for i := 0; i < workers; i += 1 {
		processes[i] = &worker{number: i}
	}
	pool.workers = background.Start(processes, pool)

	pool.log.Infof("started %d workers  rate: %v/s", workers, perSecond)
	return pool
}

// Submit - queue one executed transaction for proving
//
// blocks while the queue is full; fails once the pool is stopped
func (p *Pool) Submit(tx *transactionrecord.ExecutedTransaction) error {
	p.Lock()
	stopped := p.stopped
	p.Unlock()
	if stopped {
		return fault.PoolStopped
	}

	select {
	case p.queue <- tx:
		p.submitted.Increment()
		return nil
	case <-p.done:
		return fault.PoolStopped
	}
}

// Results - stream of proving outcomes
//
// closed after Stop once every in-flight job has drained
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Stop - reject new work, wait for workers, close the results stream
func (p *Pool) Stop() {
	p.Lock()
	if p.stopped {
		p.Unlock()
		return
	}
	p.stopped = true
	p.Unlock()

	close(p.done)
	p.workers.Stop()
	close(p.results)
	p.log.Infof("stopped  submitted: %d  proved: %d  failed: %d",
		p.submitted.Uint64(), p.proved.Uint64(), p.failed.Uint64())
}

// Submitted - total jobs accepted
func (p *Pool) Submitted() uint64 { return p.submitted.Uint64() }

// Proved - total jobs proved successfully
func (p *Pool) Proved() uint64 { return p.proved.Uint64() }

// Failed - total jobs that failed to prove
func (p *Pool) Failed() uint64 { return p.failed.Uint64() }

// worker - one proving goroutine
type worker struct {
	number int
}

// Run - prove queued transactions until shutdown
func (w *worker) Run(args interface{}, shutdown <-chan struct{}) {
	pool := args.(*Pool)
	log := pool.log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case tx := <-pool.queue:
			if err := pool.limiter.Wait(ctx); nil != err {
				break loop
			}
			proof, err := pool.prover.Prove(ctx, tx)
			if nil != err {
				pool.failed.Increment()
				log.Warnf("worker: %d  txid: %v  prove error: %s", w.number, tx.TxId(), err)
			} else {
				pool.proved.Increment()
			}
			select {
			case pool.results <- Result{TxId: tx.TxId(), Tx: tx, Proof: proof, Err: err}:
			case <-shutdown:
				break loop
			}
		}
	}
	log.Debugf("worker: %d  finished", w.number)
}
