// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package executor - drives one transaction through prologue, note
// loop and epilogue
//
// all work happens on transaction-local clones of the account state:
// a rejected transaction leaves no observable side effects anywhere
package executor

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/blockrecord"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
)

// Status - per-transaction state machine
type Status int

// the transaction lifecycle; Rejected is reachable from every state
const (
	Prologue Status = iota
	Executing
	EpilogueUnauthenticated
	EpilogueAuthenticated
	Proved
	Rejected
)

// AccountLoader - source of foreign account views
//
// the returned state and vault become read-only snapshots inside the
// foreign frame; the loader is never asked to store anything back
type AccountLoader interface {
	Load(id account.Identifier) (*account.State, *asset.Vault, error)
}

// foreignFrame - one saved scope on the foreign context stack
type foreignFrame struct {
	handle uint32
	id     account.Identifier
	state  *account.State
	vault  *asset.Vault
}

// Context - all transaction-scoped execution state
//
// created fresh per transaction and discarded at Proved or Rejected;
// never shared across transactions or goroutines
type Context struct {
	native *account.State
	vault  *asset.Vault
	faucet *asset.FaucetLedger

	initialCommitment merkle.Digest
	header            *blockrecord.Header
	loader            AccountLoader

	status     Status
	foreign    []foreignFrame
	nextHandle uint32

	callHistory []merkle.Digest
	callSet     map[merkle.Digest]bool

	mutated          bool
	nonceIncremented bool

	deltas *conservation

	currentNote  *note.Note
	inputRecords []transactionrecord.InputNoteRecord
	outputNotes  []*note.Builder

	expiration uint32
}

// Status - current lifecycle state
func (ctx *Context) Status() Status {
	return ctx.status
}

func (ctx *Context) reject() {
	ctx.status = Rejected
}

// foreignActive - true while any foreign frame is on the stack
func (ctx *Context) foreignActive() bool {
	return len(ctx.foreign) > 0
}

// activeState - the account targeted by accessor calls
func (ctx *Context) activeState() *account.State {
	if n := len(ctx.foreign); n > 0 {
		return ctx.foreign[n-1].state
	}
	return ctx.native
}

// activeVault - the vault targeted by balance queries
func (ctx *Context) activeVault() *asset.Vault {
	if n := len(ctx.foreign); n > 0 {
		return ctx.foreign[n-1].vault
	}
	return ctx.vault
}

// recordCall - append one procedure root to the call history
//
// only native-surface invocations are recorded: procedures reached
// through a foreign context never arm the ACL triggers
func (ctx *Context) recordCall(root merkle.Digest) {
	if ctx.foreignActive() {
		return
	}
	ctx.callHistory = append(ctx.callHistory, root)
	ctx.callSet[root] = true
}

// InvokeProcedure - the account's own call surface
//
// runs an account procedure body, recording its root in the
// transaction call history first
func (ctx *Context) InvokeProcedure(root merkle.Digest, body func() error) error {
	if Executing != ctx.status {
		return fault.TransactionNotExecuting
	}
	ctx.recordCall(root)
	return body()
}

// flowChannel - one leg of asset movement within a transaction
type flowChannel int

// sources precede flowAdded, sinks follow
const (
	flowConsumed flowChannel = iota // from input notes
	flowRemoved                     // out of the vault
	flowMinted
	flowAdded    // into the vault
	flowAttached // onto output notes
	flowBurned
	flowChannelCount
)

// conservation - running totals for the epilogue balance check
//
// each non-fungible instance may use every leg at most once, so a
// pass-through (note to vault, vault to note) is two balanced pairs
type conservation struct {
	fungible    [flowChannelCount]map[account.Identifier]uint64
	nonFungible map[merkle.Digest][flowChannelCount]bool
}

func newConservation() *conservation {
	c := &conservation{
		nonFungible: make(map[merkle.Digest][flowChannelCount]bool),
	}
	for ch := range c.fungible {
		c.fungible[ch] = make(map[account.Identifier]uint64)
	}
	return c
}

func addTotal(totals map[account.Identifier]uint64, faucet account.Identifier, amount uint64) error {
	current := totals[faucet]
	if amount > ^uint64(0)-current {
		return fault.FungibleAmountOverflow
	}
	totals[faucet] = current + amount
	return nil
}

// record - account for one asset movement on the given leg
func (c *conservation) record(channel flowChannel, a asset.Asset) error {
	switch a := a.(type) {
	case asset.Fungible:
		return addTotal(c.fungible[channel], a.Faucet, a.Amount)
	case asset.NonFungible:
		key := a.Digest()
		legs := c.nonFungible[key]
		if legs[channel] {
			return fault.DuplicateNonFungibleAsset
		}
		legs[channel] = true
		c.nonFungible[key] = legs
		return nil
	}
	return fault.InvalidCount
}

// check - the global conservation invariant
//
// per fungible faucet:
//   consumed + removed + minted == added + attached + burned
// per non-fungible instance: source legs and sink legs must pair up
func (c *conservation) check() error {
	faucets := make(map[account.Identifier]bool)
	for _, totals := range c.fungible {
		for faucet := range totals {
			faucets[faucet] = true
		}
	}

	for faucet := range faucets {
		in := c.fungible[flowConsumed][faucet] +
			c.fungible[flowRemoved][faucet] +
			c.fungible[flowMinted][faucet]
		out := c.fungible[flowAdded][faucet] +
			c.fungible[flowAttached][faucet] +
			c.fungible[flowBurned][faucet]
		if in != out {
			return fault.AssetConservationViolated
		}
	}

	for _, legs := range c.nonFungible {
		sources := 0
		sinks := 0
		for ch := flowChannel(0); ch < flowChannelCount; ch += 1 {
			if !legs[ch] {
				continue
			}
			if ch < flowAdded {
				sources += 1
			} else {
				sinks += 1
			}
		}
		if sources != sinks {
			return fault.AssetConservationViolated
		}
	}
	return nil
}

// trackMutation - flag that account or note state changed
func (ctx *Context) trackMutation() {
	ctx.mutated = true
}

// outputNoteRecords - freeze the builders into transaction records
func (ctx *Context) outputNoteRecords() []transactionrecord.OutputNoteRecord {
	records := make([]transactionrecord.OutputNoteRecord, len(ctx.outputNotes))
	for i, builder := range ctx.outputNotes {
		builder.Finalize()
		records[i] = transactionrecord.OutputNoteRecord{
			Recipient:        builder.Recipient(),
			AssetsCommitment: builder.AssetsCommitment(),
			Metadata:         builder.Metadata(),
			Assets:           builder.Assets(),
		}
	}
	return records
}

// checkLimits - prologue counts
func checkLimits(inputCount int) error {
	if inputCount > constants.MaxInputNotes {
		return fault.TooManyInputNotes
	}
	return nil
}
