// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/bitmark-inc/logger"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/auth"
	"github.com/veilmark/veilmarkd/blockrecord"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
	"github.com/veilmark/veilmarkd/vm"
)

// Script - untrusted code run against the kernel surface
//
// note scripts and transaction scripts have the same shape; what they
// may do is decided entirely by the context they receive
type Script func(ctx *Context) error

// InputNote - a note to consume together with its script
type InputNote struct {
	Note   *note.Note
	Script Script
}

// Proposal - everything needed to attempt one transaction
type Proposal struct {
	State      *account.State
	Vault      *asset.Vault
	Faucet     *asset.FaucetLedger // nil unless the account issues assets
	InputNotes []InputNote
	TxScript   Script
	Expiration uint32 // zero means no expiration
}

// Executor - turns proposals into executed transactions
type Executor struct {
	log           *logger.L
	loader        AccountLoader
	authenticator auth.Authenticator
}

// New - an executor bound to one authenticator
func New(loader AccountLoader, authenticator auth.Authenticator) *Executor {
	return &Executor{
		log:           logger.New("executor"),
		loader:        loader,
		authenticator: authenticator,
	}
}

// Execute - run one proposal to completion
//
// prologue, note loop, transaction script, epilogue; any failure at
// any stage rejects the transaction and the caller's state is
// untouched since all work happened on clones
func (ex *Executor) Execute(header *blockrecord.Header, proposal *Proposal, advice *vm.AdviceProvider) (*transactionrecord.ExecutedTransaction, error) {

	ctx, err := ex.prologue(header, proposal)
	if nil != err {
		ex.log.Warnf("prologue failed: %s", err)
		return nil, err
	}

	tx, err := ex.run(ctx, proposal, advice)
	if nil != err {
		ctx.reject()
		ex.log.Warnf("account: %s  rejected: %s", ctx.native.Identifier, err)
		return nil, err
	}

	ex.log.Infof("account: %s  nonce: %d -> %d  txid: %v",
		tx.Account, tx.NonceBefore, tx.NonceAfter, tx.TxId())
	return tx, nil
}

// prologue - validate the proposal and snapshot the account
func (ex *Executor) prologue(header *blockrecord.Header, proposal *Proposal) (*Context, error) {
	if nil == header || nil == proposal || nil == proposal.State || nil == proposal.Vault {
		return nil, fault.InvalidStructPointer
	}
	if err := checkLimits(len(proposal.InputNotes)); nil != err {
		return nil, err
	}

	expiration := proposal.Expiration
	if 0 == expiration {
		expiration = constants.UnlimitedExpiration
	}

	// issuance is bound to the single account whose identifier the
	// ledger carries; any other account holding the ledger is rejected
	// before a script ever runs
	var ledger *asset.FaucetLedger
	if nil != proposal.Faucet {
		if proposal.Faucet.Faucet() != proposal.State.Identifier {
			return nil, fault.WrongFaucetAccount
		}
		ledger = proposal.Faucet.Clone()
	}

	state := proposal.State.Clone()
	vault := proposal.Vault.Clone()

	ctx := &Context{
		native:            state,
		vault:             vault,
		faucet:            ledger,
		initialCommitment: state.Commitment(vault.Root()),
		header:            header,
		loader:            ex.loader,
		status:            Prologue,
		callSet:           make(map[merkle.Digest]bool),
		deltas:            newConservation(),
		expiration:        expiration,
	}
	return ctx, nil
}

// run - note loop and epilogue on a prepared context
func (ex *Executor) run(ctx *Context, proposal *Proposal, advice *vm.AdviceProvider) (*transactionrecord.ExecutedTransaction, error) {

	nonceBefore := ctx.native.Nonce
	ctx.status = Executing

	for i, input := range proposal.InputNotes {
		if nil == input.Note {
			return nil, fault.InvalidStructPointer
		}
		if err := ex.consumeNote(ctx, input); nil != err {
			ex.log.Debugf("note %d: %s", i, err)
			return nil, err
		}
	}

	if nil != proposal.TxScript {
		if err := proposal.TxScript(ctx); nil != err {
			return nil, err
		}
	}

	return ex.epilogue(ctx, nonceBefore, advice)
}

// consumeNote - account for one input note and run its script
func (ex *Executor) consumeNote(ctx *Context, input InputNote) error {

	recipient, err := input.Note.Recipient()
	if nil != err {
		return err
	}
	nullifier := note.ComputeNullifier(recipient, ctx.native.Identifier)

	for _, a := range input.Note.Assets.Assets() {
		if err := ctx.deltas.record(flowConsumed, a); nil != err {
			return err
		}
	}

	ctx.inputRecords = append(ctx.inputRecords, transactionrecord.InputNoteRecord{
		Nullifier:        nullifier,
		Recipient:        recipient,
		AssetsCommitment: input.Note.AssetsCommitment(),
	})

	ctx.currentNote = input.Note
	defer func() { ctx.currentNote = nil }()

	if nil == input.Script {
		return nil
	}
	return input.Script(ctx)
}

// epilogue - conservation, expiration, authentication, assembly
func (ex *Executor) epilogue(ctx *Context, nonceBefore uint64, advice *vm.AdviceProvider) (*transactionrecord.ExecutedTransaction, error) {

	ctx.status = EpilogueUnauthenticated

	if err := ctx.deltas.check(); nil != err {
		return nil, err
	}

	if ctx.header.Number > uint64(ctx.expiration) {
		return nil, fault.TransactionExpired
	}

	delta, err := ex.authenticator.Authorize(epilogueView{ctx}, advice)
	if nil != err {
		return nil, err
	}
	if ctx.mutated {
		if err := ctx.applyNonceDelta(delta); nil != err {
			return nil, err
		}
	}

	ctx.status = EpilogueAuthenticated

	inputRecords := ctx.inputRecords
	outputRecords := ctx.outputNoteRecords()

	tx := &transactionrecord.ExecutedTransaction{
		Account:               ctx.native.Identifier,
		InitialCommitment:     ctx.initialCommitment,
		FinalCommitment:       ctx.native.Commitment(ctx.vault.Root()),
		NonceBefore:           nonceBefore,
		NonceAfter:            ctx.native.Nonce,
		InputNotes:            inputRecords,
		OutputNotes:           outputRecords,
		InputNotesCommitment:  transactionrecord.ComputeInputNotesCommitment(inputRecords),
		OutputNotesCommitment: transactionrecord.ComputeOutputNotesCommitment(outputRecords),
		BlockReference:        ctx.header.Digest(),
		Expiration:            ctx.expiration,
	}
	return tx, nil
}

// epilogueView - the read-only window handed to authenticators
type epilogueView struct {
	ctx *Context
}

func (v epilogueView) Identifier() account.Identifier {
	return v.ctx.native.Identifier
}

func (v epilogueView) Nonce() uint64 {
	return v.ctx.native.Nonce
}

func (v epilogueView) InputNotesCommitment() merkle.Digest {
	return transactionrecord.ComputeInputNotesCommitment(v.ctx.inputRecords)
}

func (v epilogueView) OutputNotesCommitment() merkle.Digest {
	return transactionrecord.ComputeOutputNotesCommitment(v.ctx.liveOutputRecords())
}

func (v epilogueView) StorageItem(slot uint8) (account.Value, error) {
	return v.ctx.native.Storage.GetItem(slot)
}

func (v epilogueView) StorageMapItem(slot uint8, key account.Value) (account.Value, error) {
	return v.ctx.native.Storage.GetMapItem(slot, key)
}

func (v epilogueView) WasProcedureCalled(root merkle.Digest) bool {
	return v.ctx.callSet[root]
}

// auth.State conformance
var _ auth.State = epilogueView{}
