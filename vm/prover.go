// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vm

import (
	"context"

	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
	"github.com/veilmark/veilmarkd/transactionrecord"
)

// ProofVersion - version of the proof binding produced by this package
const ProofVersion = 1

// PublicInputs - the claim a verifier checks against a proof
type PublicInputs struct {
	InitialAccountCommitment merkle.Digest `json:"initialAccountCommitment"`
	FinalAccountCommitment   merkle.Digest `json:"finalAccountCommitment"`
	InputNotesCommitment     merkle.Digest `json:"inputNotesCommitment"`
	OutputNotesCommitment    merkle.Digest `json:"outputNotesCommitment"`
	BlockReference           merkle.Digest `json:"blockReference"`
	Expiration               uint32        `json:"expiration"`
}

// PublicInputsFromTransaction - extract the claim of an executed transaction
func PublicInputsFromTransaction(tx *transactionrecord.ExecutedTransaction) PublicInputs {
	return PublicInputs{
		InitialAccountCommitment: tx.InitialCommitment,
		FinalAccountCommitment:   tx.FinalCommitment,
		InputNotesCommitment:     tx.InputNotesCommitment,
		OutputNotesCommitment:    tx.OutputNotesCommitment,
		BlockReference:           tx.BlockReference,
		Expiration:               tx.Expiration,
	}
}

// Digest - commitment to the whole claim
func (p PublicInputs) Digest() merkle.Digest {
	return merkle.Combine(
		p.InitialAccountCommitment,
		p.FinalAccountCommitment,
		p.InputNotesCommitment,
		p.OutputNotesCommitment,
		p.BlockReference,
		merkle.NewDigestFromWords(merkle.Word(p.Expiration), merkle.Word(ProofVersion)),
	)
}

// Proof - succinct evidence of one correct execution
type Proof struct {
	PublicInputs PublicInputs  `json:"publicInputs"`
	Seal         merkle.Digest `json:"seal"`
	Version      uint32        `json:"version"`
}

// Prover - produces a proof for one executed transaction
type Prover interface {
	Prove(ctx context.Context, tx *transactionrecord.ExecutedTransaction) (*Proof, error)
}

// Verifier - checks a proof against a transaction's commitments
type Verifier interface {
	Verify(proof *Proof, tx *transactionrecord.ExecutedTransaction) error
}

// LocalProver - reference binding in place of the external proof system
//
// the seal binds the claim digest; a real deployment substitutes a
// succinct prover behind the same interface
type LocalProver struct{}

var sealTag = []byte("veilmark.proof.v1")

func computeSeal(inputs PublicInputs) merkle.Digest {
	claim := inputs.Digest()
	return merkle.NewDigest(append(append([]byte{}, sealTag...), claim[:]...))
}

// Prove - build the digest-bound proof object
func (LocalProver) Prove(ctx context.Context, tx *transactionrecord.ExecutedTransaction) (*Proof, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	inputs := PublicInputsFromTransaction(tx)
	return &Proof{
		PublicInputs: inputs,
		Seal:         computeSeal(inputs),
		Version:      ProofVersion,
	}, nil
}

// Verify - recompute the binding and compare claims
func (LocalProver) Verify(proof *Proof, tx *transactionrecord.ExecutedTransaction) error {
	if nil == proof {
		return fault.MissingProof
	}
	if ProofVersion != proof.Version {
		return fault.ProofVerificationFailed
	}
	if PublicInputsFromTransaction(tx) != proof.PublicInputs {
		return fault.ProofVerificationFailed
	}
	if computeSeal(proof.PublicInputs) != proof.Seal {
		return fault.ProofVerificationFailed
	}
	return nil
}
