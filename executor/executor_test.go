// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executor_test

import (
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/ed25519"

	"github.com/veilmark/veilmarkd/account"
	"github.com/veilmark/veilmarkd/asset"
	"github.com/veilmark/veilmarkd/auth"
	"github.com/veilmark/veilmarkd/blockrecord"
	"github.com/veilmark/veilmarkd/executor"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/fixtures"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/note"
	"github.com/veilmark/veilmarkd/transactionrecord"
	"github.com/veilmark/veilmarkd/vm"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// in-memory account source for foreign context tests
type stubLoader struct {
	states map[account.Identifier]*account.State
	vaults map[account.Identifier]*asset.Vault
}

func (l *stubLoader) Load(id account.Identifier) (*account.State, *asset.Vault, error) {
	state, ok := l.states[id]
	if !ok {
		return nil, nil, fault.AccountNotFound
	}
	return state, l.vaults[id], nil
}

func newTestHeader() *blockrecord.Header {
	return &blockrecord.Header{
		Number:        100,
		Timestamp:     time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
		PreviousBlock: merkle.NewDigest([]byte("previous block")),
	}
}

// account with the reserved layout and nonce 5
func newTestAccount(t *testing.T, kind account.Kind, prefix merkle.Word, publicKey ed25519.PublicKey) *account.State {
	t.Helper()

	id := account.NewIdentifier(kind, prefix, 0x5678)
	state, err := account.NewState(id, merkle.NewDigest([]byte("account code")), []account.SlotKind{
		account.ValueSlot, // public key
		account.ValueSlot, // trigger count
		account.MapSlot,   // trigger roots
	})
	if nil != err {
		t.Fatalf("new state error: %s", err)
	}
	state.Nonce = 5
	if nil != publicKey {
		_, _ = state.Storage.SetItem(account.PublicKeySlot, account.ValueFromBytes(publicKey))
	}
	return state
}

func newTestNote(t *testing.T, sender account.Identifier, assets ...asset.Asset) *note.Note {
	t.Helper()

	serial, err := note.NewSerialNumber()
	if nil != err {
		t.Fatalf("new serial error: %s", err)
	}
	vault := asset.NewVault()
	for _, a := range assets {
		if _, err := vault.AddAsset(a); nil != err {
			t.Fatalf("add asset error: %s", err)
		}
	}
	return &note.Note{
		Serial:     serial,
		ScriptRoot: merkle.NewDigest([]byte("consume script")),
		Inputs:     []merkle.Word{7, 11},
		Sender:     sender,
		Assets:     vault,
		Metadata: note.Metadata{
			Tag:  1,
			Type: note.Public,
			Hint: note.ExecutionHint{Kind: note.HintAlways},
		},
	}
}

// note script moving every carried asset into the consumer's vault
func consumeAllScript(ctx *executor.Context) error {
	_, assets, err := ctx.GetNoteAssets()
	if nil != err {
		return err
	}
	for _, a := range assets {
		if _, err := ctx.AddAsset(a); nil != err {
			return err
		}
	}
	return nil
}

// sign the exact message the epilogue authenticator will check
func adviceFor(id account.Identifier, nonce uint64, in merkle.Digest, out merkle.Digest, publicKey ed25519.PublicKey, privateKey ed25519.PrivateKey) *vm.AdviceProvider {
	message := auth.ComputeMessage(id, nonce, in, out)
	advice := vm.NewAdviceProvider()
	advice.AddSignature(publicKey, message, ed25519.Sign(privateKey, message[:]))
	return advice
}

// consume a 50 unit note, forward 30 units to a new note, keep 20
func TestExecuteTransfer(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	id := state.Identifier

	faucet := account.NewIdentifier(account.FungibleIssuer, 0xaaaa, 0xbbbb)
	vault := asset.NewVault()
	_, _ = vault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 100})

	sender := account.NewIdentifier(account.Regular, 0x2222, 0x3333)
	inputNote := newTestNote(t, sender, asset.Fungible{Faucet: faucet, Amount: 50})

	outMetadata := note.Metadata{
		Tag:  2,
		Type: note.Public,
		Hint: note.ExecutionHint{Kind: note.HintAlways},
	}
	outRecipient := note.ComputeRecipient(
		note.SerialNumber(merkle.NewDigest([]byte("out serial"))),
		merkle.NewDigest([]byte("out script")),
		merkle.NewDigest([]byte("out inputs")))
	forwarded := asset.Fungible{Faucet: faucet, Amount: 30}

	// the commitments the signer must commit to, computed up front
	recipient, err := inputNote.Recipient()
	if nil != err {
		t.Fatalf("recipient error: %s", err)
	}
	inCommitment := transactionrecord.ComputeInputNotesCommitment([]transactionrecord.InputNoteRecord{{
		Nullifier:        note.ComputeNullifier(recipient, id),
		Recipient:        recipient,
		AssetsCommitment: inputNote.AssetsCommitment(),
	}})
	outVault := asset.NewVault()
	_, _ = outVault.AddAsset(forwarded)
	outCommitment := transactionrecord.ComputeOutputNotesCommitment([]transactionrecord.OutputNoteRecord{{
		Recipient:        outRecipient,
		AssetsCommitment: outVault.Root(),
		Metadata:         outMetadata,
		Assets:           outVault.Assets(),
	}})

	proposal := &executor.Proposal{
		State: state,
		Vault: vault,
		InputNotes: []executor.InputNote{{
			Note:   inputNote,
			Script: consumeAllScript,
		}},
		TxScript: func(ctx *executor.Context) error {
			if _, err := ctx.RemoveAsset(forwarded); nil != err {
				return err
			}
			index, err := ctx.CreateNote(outMetadata, outRecipient)
			if nil != err {
				return err
			}
			return ctx.AddAssetToNote(index, forwarded)
		},
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	tx, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 5, inCommitment, outCommitment, publicKey, privateKey))
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}

	if 5 != tx.NonceBefore || 6 != tx.NonceAfter {
		t.Errorf("nonce: actual: %d -> %d  expected: 5 -> 6", tx.NonceBefore, tx.NonceAfter)
	}
	if inCommitment != tx.InputNotesCommitment {
		t.Error("input notes commitment mismatch")
	}
	if outCommitment != tx.OutputNotesCommitment {
		t.Error("output notes commitment mismatch")
	}

	// expected final state: nonce 6, balance 120
	finalState := state.Clone()
	finalState.Nonce = 6
	finalVault := vault.Clone()
	_, _ = finalVault.AddAsset(asset.Fungible{Faucet: faucet, Amount: 20})
	if expected := finalState.Commitment(finalVault.Root()); expected != tx.FinalCommitment {
		t.Errorf("final commitment: actual: %v  expected: %v", tx.FinalCommitment, expected)
	}

	// the proposal's own state must be untouched
	if 5 != state.Nonce {
		t.Errorf("proposal nonce mutated: %d", state.Nonce)
	}
	if 100 != vault.Balance(faucet) {
		t.Errorf("proposal vault mutated: balance: %d", vault.Balance(faucet))
	}
}

func TestExecuteRejectsBadSignature(t *testing.T) {
	publicKey, _, _ := ed25519.GenerateKey(nil)
	_, otherPrivate, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	vault := asset.NewVault()

	proposal := &executor.Proposal{
		State: state,
		Vault: vault,
		TxScript: func(ctx *executor.Context) error {
			_, err := ctx.SetItem(account.TriggerCountSlot, account.ValueFromWords(0))
			return err
		},
	}

	zero := merkle.Digest{}
	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(state.Identifier, 5, zero, zero, publicKey, otherPrivate))
	if fault.InvalidTransactionSignature != err {
		t.Fatalf("bad signature: unexpected error: %v", err)
	}
	if 5 != state.Nonce {
		t.Errorf("rejected transaction advanced nonce: %d", state.Nonce)
	}
}

// a consumed note whose assets go nowhere must not authenticate
func TestExecuteConservationViolation(t *testing.T) {
	publicKey, _, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	faucet := account.NewIdentifier(account.FungibleIssuer, 0xaaaa, 0xbbbb)
	sender := account.NewIdentifier(account.Regular, 0x2222, 0x3333)

	proposal := &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
		InputNotes: []executor.InputNote{{
			Note: newTestNote(t, sender, asset.Fungible{Faucet: faucet, Amount: 50}),
			// no script: the 50 units are never placed anywhere
		}},
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.AssetConservationViolated != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecuteExpired(t *testing.T) {
	publicKey, _, _ := ed25519.GenerateKey(nil)
	state := newTestAccount(t, account.Regular, 0x1111, publicKey)

	proposal := &executor.Proposal{
		State:      state,
		Vault:      asset.NewVault(),
		Expiration: 50, // reference block is 100
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.TransactionExpired != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForeignContextReadOnly(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	id := state.Identifier

	foreignState := newTestAccount(t, account.Regular, 0x9999, nil)
	foreignId := foreignState.Identifier
	_, _ = foreignState.Storage.SetItem(account.TriggerCountSlot, account.ValueFromWords(42))
	foreignVault := asset.NewVault()

	loader := &stubLoader{
		states: map[account.Identifier]*account.State{foreignId: foreignState},
		vaults: map[account.Identifier]*asset.Vault{foreignId: foreignVault},
	}

	proposal := &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
		TxScript: func(ctx *executor.Context) error {
			handle, err := ctx.StartForeignContext(foreignId)
			if nil != err {
				return err
			}

			// reads are routed to the foreign account
			currentId, _ := ctx.GetId()
			if foreignId != currentId {
				t.Errorf("foreign id: actual: %v  expected: %v", currentId, foreignId)
			}
			value, err := ctx.GetItem(account.TriggerCountSlot)
			if nil != err {
				return err
			}
			if 42 != value.Word() {
				t.Errorf("foreign slot: actual: %d  expected: 42", value.Word())
			}

			// writes must be rejected
			if _, err := ctx.SetItem(account.TriggerCountSlot, account.ValueFromWords(0)); fault.MutationInForeignContext != err {
				t.Errorf("foreign write: unexpected error: %v", err)
			}
			if err := ctx.IncrNonce(1); fault.MutationInForeignContext != err {
				t.Errorf("foreign nonce: unexpected error: %v", err)
			}

			// a stale handle is not the innermost frame
			if err := ctx.EndForeignContext(handle + 1); fault.ForeignContextNotActive != err {
				t.Errorf("stale handle: unexpected error: %v", err)
			}
			if err := ctx.EndForeignContext(handle); nil != err {
				return err
			}

			// back on the native account
			currentId, _ = ctx.GetId()
			if id != currentId {
				t.Errorf("native id: actual: %v  expected: %v", currentId, id)
			}
			_, err = ctx.SetItem(account.TriggerCountSlot, account.ValueFromWords(1))
			return err
		},
	}

	zero := merkle.Digest{}
	ex := executor.New(loader, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 5, zero, zero, publicKey, privateKey))
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}

	// the loaded account was cloned, not referenced
	value, _ := foreignState.Storage.GetItem(account.TriggerCountSlot)
	if 42 != value.Word() {
		t.Errorf("foreign account mutated: %d", value.Word())
	}
}

func TestExecuteMint(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.FungibleIssuer, 0xaaaa, publicKey)
	id := state.Identifier
	ledger, err := asset.NewFaucetLedger(id, 1000)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}

	minted := asset.Fungible{Faucet: id, Amount: 40}
	vault := asset.NewVault()

	proposal := &executor.Proposal{
		State:  state,
		Vault:  vault,
		Faucet: ledger,
		TxScript: func(ctx *executor.Context) error {
			if err := ctx.MintAsset(minted); nil != err {
				return err
			}
			if _, err := ctx.AddAsset(minted); nil != err {
				return err
			}
			total, err := ctx.GetTotalIssuance()
			if nil != err {
				return err
			}
			if 40 != total {
				t.Errorf("issuance: actual: %d  expected: 40", total)
			}
			return nil
		},
	}

	zero := merkle.Digest{}
	ex := executor.New(nil, auth.SignatureAuthenticator{})
	tx, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 5, zero, zero, publicKey, privateKey))
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 6 != tx.NonceAfter {
		t.Errorf("nonce after: actual: %d  expected: 6", tx.NonceAfter)
	}

	// the proposal's ledger was cloned
	if 0 != ledger.TotalIssuance() {
		t.Errorf("proposal ledger mutated: %d", ledger.TotalIssuance())
	}
}

func TestExecuteMintOverCap(t *testing.T) {
	publicKey, _, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.FungibleIssuer, 0xaaaa, publicKey)
	ledger, _ := asset.NewFaucetLedger(state.Identifier, 30)

	proposal := &executor.Proposal{
		State:  state,
		Vault:  asset.NewVault(),
		Faucet: ledger,
		TxScript: func(ctx *executor.Context) error {
			return ctx.MintAsset(asset.Fungible{Faucet: state.Identifier, Amount: 40})
		},
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.IssuanceCapExceeded != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

// a script that claims the nonce increment starves the epilogue
func TestExecuteDoubleNonceIncrement(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	id := state.Identifier

	proposal := &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
		TxScript: func(ctx *executor.Context) error {
			if _, err := ctx.SetItem(account.TriggerCountSlot, account.ValueFromWords(9)); nil != err {
				return err
			}
			return ctx.IncrNonce(1)
		},
	}

	zero := merkle.Digest{}
	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 6, zero, zero, publicKey, privateKey))
	if fault.DoubleNonceIncrement != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

// no mutation at all: the transaction passes but the nonce stays
func TestExecuteNoMutation(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	id := state.Identifier

	proposal := &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
	}

	zero := merkle.Digest{}
	ex := executor.New(nil, auth.SignatureAuthenticator{})
	tx, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 5, zero, zero, publicKey, privateKey))
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if tx.NonceAfter != tx.NonceBefore {
		t.Errorf("nonce advanced without mutation: %d -> %d", tx.NonceBefore, tx.NonceAfter)
	}
	if tx.InitialCommitment != tx.FinalCommitment {
		t.Error("commitment changed without mutation")
	}
}

// a ledger naming another account's faucet must never reach a script
func TestExecuteMintWithForeignLedger(t *testing.T) {
	publicKey, _, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	foreignFaucet := account.NewIdentifier(account.FungibleIssuer, 0xaaaa, 0xbbbb)
	ledger, err := asset.NewFaucetLedger(foreignFaucet, 1000)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}

	scriptRan := false
	proposal := &executor.Proposal{
		State:  state,
		Vault:  asset.NewVault(),
		Faucet: ledger,
		TxScript: func(ctx *executor.Context) error {
			scriptRan = true
			if err := ctx.MintAsset(asset.Fungible{Faucet: foreignFaucet, Amount: 40}); nil != err {
				return err
			}
			_, err := ctx.AddAsset(asset.Fungible{Faucet: foreignFaucet, Amount: 40})
			return err
		},
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	_, err = ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.WrongFaucetAccount != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if scriptRan {
		t.Error("script ran with a foreign ledger")
	}
	if 5 != state.Nonce {
		t.Errorf("rejected transaction advanced nonce: %d", state.Nonce)
	}
	if 0 != ledger.TotalIssuance() {
		t.Errorf("foreign ledger mutated: %d", ledger.TotalIssuance())
	}

	// another issuer is no better than a regular account
	otherIssuer := newTestAccount(t, account.FungibleIssuer, 0xcccc, publicKey)
	proposal.State = otherIssuer
	_, err = ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.WrongFaucetAccount != err {
		t.Fatalf("other issuer: unexpected error: %v", err)
	}
}

// non-fungible consumed into the vault then forwarded onto a new note
func TestExecuteNonFungiblePassThrough(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	state := newTestAccount(t, account.Regular, 0x1111, publicKey)
	id := state.Identifier

	issuer := account.NewIdentifier(account.NonFungibleIssuer, 0xaaaa, 0xbbbb)
	gem := asset.NonFungible{Faucet: issuer, UniqueHash: merkle.NewDigest([]byte("gem"))}

	sender := account.NewIdentifier(account.Regular, 0x2222, 0x3333)
	inputNote := newTestNote(t, sender, gem)

	outMetadata := note.Metadata{
		Tag:  3,
		Type: note.Public,
		Hint: note.ExecutionHint{Kind: note.HintAlways},
	}
	outRecipient := note.ComputeRecipient(
		note.SerialNumber(merkle.NewDigest([]byte("gem serial"))),
		merkle.NewDigest([]byte("gem script")),
		merkle.NewDigest([]byte("gem inputs")))

	recipient, err := inputNote.Recipient()
	if nil != err {
		t.Fatalf("recipient error: %s", err)
	}
	inCommitment := transactionrecord.ComputeInputNotesCommitment([]transactionrecord.InputNoteRecord{{
		Nullifier:        note.ComputeNullifier(recipient, id),
		Recipient:        recipient,
		AssetsCommitment: inputNote.AssetsCommitment(),
	}})
	outVault := asset.NewVault()
	_, _ = outVault.AddAsset(gem)
	outCommitment := transactionrecord.ComputeOutputNotesCommitment([]transactionrecord.OutputNoteRecord{{
		Recipient:        outRecipient,
		AssetsCommitment: outVault.Root(),
		Metadata:         outMetadata,
		Assets:           outVault.Assets(),
	}})

	proposal := &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
		InputNotes: []executor.InputNote{{
			Note:   inputNote,
			Script: consumeAllScript,
		}},
		TxScript: func(ctx *executor.Context) error {
			held, err := ctx.HasNonFungibleAsset(gem)
			if nil != err {
				return err
			}
			if !held {
				t.Error("consumed asset missing from vault")
			}
			if _, err := ctx.RemoveAsset(gem); nil != err {
				return err
			}
			index, err := ctx.CreateNote(outMetadata, outRecipient)
			if nil != err {
				return err
			}
			return ctx.AddAssetToNote(index, gem)
		},
	}

	ex := executor.New(nil, auth.SignatureAuthenticator{})
	tx, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(id, 5, inCommitment, outCommitment, publicKey, privateKey))
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 6 != tx.NonceAfter {
		t.Errorf("nonce after: actual: %d  expected: 6", tx.NonceAfter)
	}
	if 1 != len(tx.OutputNotes) {
		t.Fatalf("output notes: actual: %d  expected: 1", len(tx.OutputNotes))
	}
	if outVault.Root() != tx.OutputNotes[0].AssetsCommitment {
		t.Error("forwarded asset commitment mismatch")
	}

	// the asset only passed through: the final vault does not hold it
	finalState := state.Clone()
	finalState.Nonce = 6
	if expected := finalState.Commitment(asset.NewVault().Root()); expected != tx.FinalCommitment {
		t.Errorf("final commitment: actual: %v  expected: %v", tx.FinalCommitment, expected)
	}
}

// a trigger root called on the account's own surface demands a
// signature; the same root inside a foreign frame does not
func TestExecuteProcedureTriggers(t *testing.T) {
	publicKey, privateKey, _ := ed25519.GenerateKey(nil)

	triggerRoot := merkle.NewDigest([]byte("guarded procedure"))

	newGuardedAccount := func() *account.State {
		state := newTestAccount(t, account.Regular, 0x1111, publicKey)
		_, _ = state.Storage.SetItem(account.TriggerCountSlot, account.ValueFromWords(1))
		_, _ = state.Storage.SetMapItem(account.TriggerRootsSlot,
			account.ValueFromWords(0),
			account.ValueFromBytes(triggerRoot[:]))
		return state
	}

	foreignState := newTestAccount(t, account.Regular, 0x9999, nil)
	foreignId := foreignState.Identifier
	loader := &stubLoader{
		states: map[account.Identifier]*account.State{foreignId: foreignState},
		vaults: map[account.Identifier]*asset.Vault{foreignId: asset.NewVault()},
	}

	nativeInvoke := func(ctx *executor.Context) error {
		err := ctx.InvokeProcedure(triggerRoot, func() error {
			_, err := ctx.SetItem(account.TriggerCountSlot, account.ValueFromWords(1))
			return err
		})
		if nil != err {
			return err
		}
		called, err := ctx.WasProcedureCalled(triggerRoot)
		if nil != err {
			return err
		}
		if !called {
			t.Error("invoked procedure missing from call history")
		}
		return nil
	}

	ex := executor.New(loader, auth.NewACLAuthenticator())
	zero := merkle.Digest{}

	// armed trigger with no signature advice
	state := newGuardedAccount()
	proposal := &executor.Proposal{State: state, Vault: asset.NewVault(), TxScript: nativeInvoke}
	_, err := ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if fault.MissingSignatureAdvice != err {
		t.Fatalf("unsigned trigger: unexpected error: %v", err)
	}
	if 5 != state.Nonce {
		t.Errorf("rejected transaction advanced nonce: %d", state.Nonce)
	}

	// armed trigger with a valid signature
	state = newGuardedAccount()
	proposal = &executor.Proposal{State: state, Vault: asset.NewVault(), TxScript: nativeInvoke}
	tx, err := ex.Execute(newTestHeader(), proposal,
		adviceFor(state.Identifier, 5, zero, zero, publicKey, privateKey))
	if nil != err {
		t.Fatalf("signed trigger: execute error: %s", err)
	}
	if 6 != tx.NonceAfter {
		t.Errorf("nonce after: actual: %d  expected: 6", tx.NonceAfter)
	}

	// the same root through a foreign frame never arms the trigger
	state = newGuardedAccount()
	proposal = &executor.Proposal{
		State: state,
		Vault: asset.NewVault(),
		TxScript: func(ctx *executor.Context) error {
			handle, err := ctx.StartForeignContext(foreignId)
			if nil != err {
				return err
			}
			err = ctx.InvokeProcedure(triggerRoot, func() error {
				_, err := ctx.GetItem(account.TriggerCountSlot)
				return err
			})
			if nil != err {
				return err
			}
			if err := ctx.EndForeignContext(handle); nil != err {
				return err
			}
			called, err := ctx.WasProcedureCalled(triggerRoot)
			if nil != err {
				return err
			}
			if called {
				t.Error("foreign invocation recorded on the call history")
			}
			// a mutation untouched by any trigger
			_, err = ctx.SetItem(account.PublicKeySlot, account.ValueFromBytes(publicKey))
			return err
		},
	}
	tx, err = ex.Execute(newTestHeader(), proposal, vm.NewAdviceProvider())
	if nil != err {
		t.Fatalf("foreign invocation: execute error: %s", err)
	}
	if 6 != tx.NonceAfter {
		t.Errorf("foreign invocation: nonce after: actual: %d  expected: 6", tx.NonceAfter)
	}
}
