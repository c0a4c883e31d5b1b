// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/kernel"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
)

// ensure the full procedure table is implemented
var _ kernel.API = (*Context)(nil)

func (ctx *Context) requireExecuting() error {
	if Executing != ctx.status {
		return fault.TransactionNotExecuting
	}
	return nil
}

// requireNative - mutators are forbidden while a foreign frame is open
func (ctx *Context) requireNative() error {
	if err := ctx.requireExecuting(); nil != err {
		return err
	}
	if ctx.foreignActive() {
		return fault.MutationInForeignContext
	}
	return nil
}

// GetItem - read a value slot of the active account
func (ctx *Context) GetItem(slot uint8) (account.Value, error) {
	if err := ctx.requireExecuting(); nil != err {
		return account.Value{}, err
	}
	return ctx.activeState().Storage.GetItem(slot)
}

// SetItem - write a value slot of the native account
func (ctx *Context) SetItem(slot uint8, value account.Value) (account.Value, error) {
	if err := ctx.requireNative(); nil != err {
		return account.Value{}, err
	}
	previous, err := ctx.native.Storage.SetItem(slot, value)
	if nil != err {
		return account.Value{}, err
	}
	ctx.trackMutation()
	return previous, nil
}

// GetMapItem - read one key of a map slot of the active account
func (ctx *Context) GetMapItem(slot uint8, key account.Value) (account.Value, error) {
	if err := ctx.requireExecuting(); nil != err {
		return account.Value{}, err
	}
	return ctx.activeState().Storage.GetMapItem(slot, key)
}

// SetMapItem - write one key of a map slot of the native account
func (ctx *Context) SetMapItem(slot uint8, key account.Value, value account.Value) (account.Value, error) {
	if err := ctx.requireNative(); nil != err {
		return account.Value{}, err
	}
	previous, err := ctx.native.Storage.SetMapItem(slot, key, value)
	if nil != err {
		return account.Value{}, err
	}
	ctx.trackMutation()
	return previous, nil
}

// GetNonce - nonce of the active account
func (ctx *Context) GetNonce() (uint64, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	return ctx.activeState().Nonce, nil
}

// IncrNonce - advance the native account nonce
//
// at most one increment per transaction; the reference authenticators
// own this call, a script that claims it first will make the epilogue
// advancement fail and the transaction reject
func (ctx *Context) IncrNonce(delta uint64) error {
	if err := ctx.requireNative(); nil != err {
		return err
	}
	return ctx.applyNonceDelta(delta)
}

func (ctx *Context) applyNonceDelta(delta uint64) error {
	if ctx.nonceIncremented {
		return fault.DoubleNonceIncrement
	}
	if 0 == delta && ctx.mutated {
		return fault.NonceDeltaZeroAfterMutation
	}
	if delta > ^uint64(0)-ctx.native.Nonce {
		return fault.NonceOverflow
	}
	ctx.native.Nonce += delta
	ctx.nonceIncremented = true
	return nil
}

// GetId - identifier of the active account
func (ctx *Context) GetId() (account.Identifier, error) {
	if err := ctx.requireExecuting(); nil != err {
		return account.Identifier{}, err
	}
	return ctx.activeState().Identifier, nil
}

// GetCodeCommitment - code commitment of the active account
func (ctx *Context) GetCodeCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return ctx.activeState().CodeCommitment, nil
}

// GetStorageCommitment - storage commitment of the active account
func (ctx *Context) GetStorageCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return ctx.activeState().Storage.Commitment(), nil
}

// GetVaultRoot - vault root of the active account
func (ctx *Context) GetVaultRoot() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return ctx.activeVault().Root(), nil
}

// GetInitialCommitment - commitment the transaction started from
//
// for a foreign account the initial and current commitments coincide
// since foreign state is immutable for the whole transaction
func (ctx *Context) GetInitialCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	if ctx.foreignActive() {
		return ctx.activeState().Commitment(ctx.activeVault().Root()), nil
	}
	return ctx.initialCommitment, nil
}

// ComputeCurrentCommitment - commitment over the live state
func (ctx *Context) ComputeCurrentCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return ctx.activeState().Commitment(ctx.activeVault().Root()), nil
}

// WasProcedureCalled - membership test on the transaction call history
func (ctx *Context) WasProcedureCalled(root merkle.Digest) (bool, error) {
	if err := ctx.requireExecuting(); nil != err {
		return false, err
	}
	return ctx.callSet[root], nil
}

// AddAsset - move an asset into the native vault
func (ctx *Context) AddAsset(a asset.Asset) (asset.Asset, error) {
	if err := ctx.requireNative(); nil != err {
		return nil, err
	}
	merged, err := ctx.vault.AddAsset(a)
	if nil != err {
		return nil, err
	}
	if err := ctx.deltas.record(flowAdded, a); nil != err {
		return nil, err
	}
	ctx.trackMutation()
	return merged, nil
}

// RemoveAsset - take an asset out of the native vault
func (ctx *Context) RemoveAsset(a asset.Asset) (asset.Asset, error) {
	if err := ctx.requireNative(); nil != err {
		return nil, err
	}
	removed, err := ctx.vault.RemoveAsset(a)
	if nil != err {
		return nil, err
	}
	if err := ctx.deltas.record(flowRemoved, a); nil != err {
		return nil, err
	}
	ctx.trackMutation()
	return removed, nil
}

// GetBalance - fungible balance in the active vault
func (ctx *Context) GetBalance(faucet account.Identifier) (uint64, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	return ctx.activeVault().Balance(faucet), nil
}

// HasNonFungibleAsset - presence test on the active vault
func (ctx *Context) HasNonFungibleAsset(a asset.NonFungible) (bool, error) {
	if err := ctx.requireExecuting(); nil != err {
		return false, err
	}
	return ctx.activeVault().HasNonFungible(a), nil
}

// MintAsset - create new supply on the issuing account
//
// the minted asset enters circulation in-flight: the script must then
// place it into the vault or onto an output note before the epilogue
func (ctx *Context) MintAsset(a asset.Asset) error {
	if err := ctx.requireNative(); nil != err {
		return err
	}
	if nil == ctx.faucet {
		return fault.NotFaucetAccount
	}
	if err := ctx.faucet.Mint(a); nil != err {
		return err
	}
	if err := ctx.deltas.record(flowMinted, a); nil != err {
		return err
	}
	ctx.trackMutation()
	return nil
}

// BurnAsset - destroy supply on the issuing account
func (ctx *Context) BurnAsset(a asset.Asset) error {
	if err := ctx.requireNative(); nil != err {
		return err
	}
	if nil == ctx.faucet {
		return fault.NotFaucetAccount
	}
	if err := ctx.faucet.Burn(a); nil != err {
		return err
	}
	if err := ctx.deltas.record(flowBurned, a); nil != err {
		return err
	}
	ctx.trackMutation()
	return nil
}

// GetTotalIssuance - outstanding supply of the native faucet
func (ctx *Context) GetTotalIssuance() (uint64, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	if nil == ctx.faucet {
		return 0, fault.NotFaucetAccount
	}
	return ctx.faucet.TotalIssuance(), nil
}

// IsNonFungibleIssued - issuance test on the native faucet
func (ctx *Context) IsNonFungibleIssued(a asset.NonFungible) (bool, error) {
	if err := ctx.requireExecuting(); nil != err {
		return false, err
	}
	if nil == ctx.faucet {
		return false, fault.NotFaucetAccount
	}
	return ctx.faucet.IsIssued(a), nil
}

// GetNoteAssets - assets carried by the note being consumed
func (ctx *Context) GetNoteAssets() (uint32, []asset.Asset, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, nil, err
	}
	if nil == ctx.currentNote {
		return 0, nil, fault.TransactionNotExecuting
	}
	assets := ctx.currentNote.Assets.Assets()
	return uint32(len(assets)), assets, nil
}

// GetNoteInputs - script arguments of the note being consumed
func (ctx *Context) GetNoteInputs() (uint32, []merkle.Word, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, nil, err
	}
	if nil == ctx.currentNote {
		return 0, nil, fault.TransactionNotExecuting
	}
	inputs := ctx.currentNote.Inputs
	return uint32(len(inputs)), inputs, nil
}

// GetNoteSerialNumber - serial of the note being consumed
func (ctx *Context) GetNoteSerialNumber() (note.SerialNumber, error) {
	if err := ctx.requireExecuting(); nil != err {
		return note.SerialNumber{}, err
	}
	if nil == ctx.currentNote {
		return note.SerialNumber{}, fault.TransactionNotExecuting
	}
	return ctx.currentNote.Serial, nil
}

// GetNoteSender - account that created the note being consumed
func (ctx *Context) GetNoteSender() (account.Identifier, error) {
	if err := ctx.requireExecuting(); nil != err {
		return account.Identifier{}, err
	}
	if nil == ctx.currentNote {
		return account.Identifier{}, fault.TransactionNotExecuting
	}
	return ctx.currentNote.Sender, nil
}

// GetNoteScriptRoot - script root of the note being consumed
func (ctx *Context) GetNoteScriptRoot() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	if nil == ctx.currentNote {
		return merkle.Digest{}, fault.TransactionNotExecuting
	}
	return ctx.currentNote.ScriptRoot, nil
}

// CreateNote - open a new output note, returning its index
func (ctx *Context) CreateNote(metadata note.Metadata, recipient note.Recipient) (uint32, error) {
	if err := ctx.requireNative(); nil != err {
		return 0, err
	}
	if len(ctx.outputNotes) >= constants.MaxOutputNotes {
		return 0, fault.TooManyOutputNotes
	}
	builder, err := note.NewBuilder(recipient, metadata)
	if nil != err {
		return 0, err
	}
	ctx.outputNotes = append(ctx.outputNotes, builder)
	ctx.trackMutation()
	return uint32(len(ctx.outputNotes) - 1), nil
}

// AddAssetToNote - attach an asset to a previously created note
func (ctx *Context) AddAssetToNote(noteIndex uint32, a asset.Asset) error {
	if err := ctx.requireNative(); nil != err {
		return err
	}
	if noteIndex >= uint32(len(ctx.outputNotes)) {
		return fault.NoteIndexOutOfRange
	}
	if err := ctx.outputNotes[noteIndex].AddAsset(a); nil != err {
		return err
	}
	if err := ctx.deltas.record(flowAttached, a); nil != err {
		return err
	}
	ctx.trackMutation()
	return nil
}

// GetInputNotesCommitment - commitment over the notes consumed so far
func (ctx *Context) GetInputNotesCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return transactionrecord.ComputeInputNotesCommitment(ctx.inputRecords), nil
}

// GetOutputNotesCommitment - commitment over the notes created so far
func (ctx *Context) GetOutputNotesCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return transactionrecord.ComputeOutputNotesCommitment(ctx.liveOutputRecords()), nil
}

// liveOutputRecords - records over unfinalized builders, used when a
// script asks for the output commitment mid-transaction
func (ctx *Context) liveOutputRecords() []transactionrecord.OutputNoteRecord {
	records := make([]transactionrecord.OutputNoteRecord, len(ctx.outputNotes))
	for i, builder := range ctx.outputNotes {
		records[i] = transactionrecord.OutputNoteRecord{
			Recipient:        builder.Recipient(),
			AssetsCommitment: builder.AssetsCommitment(),
			Metadata:         builder.Metadata(),
			Assets:           builder.Assets(),
		}
	}
	return records
}

// GetBlockNumber - number of the reference block
func (ctx *Context) GetBlockNumber() (uint64, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	return ctx.header.Number, nil
}

// GetBlockTimestamp - timestamp of the reference block
func (ctx *Context) GetBlockTimestamp() (int64, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	return ctx.header.Timestamp, nil
}

// GetBlockCommitment - digest of the reference block header
func (ctx *Context) GetBlockCommitment() (merkle.Digest, error) {
	if err := ctx.requireExecuting(); nil != err {
		return merkle.Digest{}, err
	}
	return ctx.header.Digest(), nil
}

// StartForeignContext - push a read-only view of another account
func (ctx *Context) StartForeignContext(id account.Identifier) (kernel.ForeignHandle, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	if len(ctx.foreign) >= constants.MaxForeignDepth {
		return 0, fault.ForeignContextDepthExceeded
	}
	if nil == ctx.loader {
		return 0, fault.AccountNotFound
	}
	state, vault, err := ctx.loader.Load(id)
	if nil != err {
		return 0, err
	}
	ctx.nextHandle += 1
	frame := foreignFrame{
		handle: ctx.nextHandle,
		id:     id,
		state:  state.Clone(),
		vault:  vault.Clone(),
	}
	ctx.foreign = append(ctx.foreign, frame)
	return kernel.ForeignHandle(frame.handle), nil
}

// EndForeignContext - pop the innermost foreign frame
//
// frames are strictly scoped: only the handle of the innermost open
// frame is accepted
func (ctx *Context) EndForeignContext(handle kernel.ForeignHandle) error {
	if err := ctx.requireExecuting(); nil != err {
		return err
	}
	n := len(ctx.foreign)
	if 0 == n || ctx.foreign[n-1].handle != uint32(handle) {
		return fault.ForeignContextNotActive
	}
	ctx.foreign = ctx.foreign[:n-1]
	return nil
}

// GetExpiration - current transaction expiration block
func (ctx *Context) GetExpiration() (uint32, error) {
	if err := ctx.requireExecuting(); nil != err {
		return 0, err
	}
	return ctx.expiration, nil
}

// UpdateExpiration - tighten the transaction expiration
//
// expirations only ever shrink: a script cannot extend a deadline some
// earlier script already imposed
func (ctx *Context) UpdateExpiration(block uint32) error {
	if err := ctx.requireNative(); nil != err {
		return err
	}
	if block < ctx.expiration {
		ctx.expiration = block
	}
	return nil
}
