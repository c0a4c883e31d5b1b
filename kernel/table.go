// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kernel - the privileged surface exposed to untrusted code
//
// account and note scripts call the kernel only through the procedure
// table: a fixed, versioned mapping from symbolic procedure to numeric
// offset; relocating the kernel never requires recompiling account code
package kernel

import (
	"github.com/veilmark/veilmarkd/fault"
)

// Procedure - symbolic name of one privileged operation
//
// a typed enumeration: an unknown name is a compile failure in the
// caller, never a runtime lookup error
type Procedure int

// the complete procedure set
// this list is append-only: adding entries is a version bump,
// renumbering or reusing an offset silently breaks every account
// compiled against the old table
const (
	GetItem Procedure = iota
	SetItem
	GetMapItem
	SetMapItem
	GetNonce
	IncrNonce
	GetId
	GetCodeCommitment
	GetStorageCommitment
	GetVaultRoot
	GetInitialCommitment
	ComputeCurrentCommitment
	WasProcedureCalled
	AddAsset
	RemoveAsset
	GetBalance
	HasNonFungibleAsset
	MintAsset
	BurnAsset
	GetTotalIssuance
	IsNonFungibleIssued
	GetNoteAssets
	GetNoteInputs
	GetNoteSerialNumber
	GetNoteSender
	GetNoteScriptRoot
	CreateNote
	AddAssetToNote
	GetInputNotesCommitment
	GetOutputNotesCommitment
	GetBlockNumber
	GetBlockTimestamp
	GetBlockCommitment
	StartForeignContext
	EndForeignContext
	GetExpiration
	UpdateExpiration

	// this item must be last
	procedureCount
)

// TableVersion - bumped whenever a procedure is appended
const TableVersion = 1

// offsets are assigned explicitly rather than derived from the
// enumeration order so that a reordering of the source constants can
// never silently renumber the binary ABI
var procedureOffsets = [procedureCount]uint16{
	GetItem:                  0x0000,
	SetItem:                  0x0001,
	GetMapItem:               0x0002,
	SetMapItem:               0x0003,
	GetNonce:                 0x0004,
	IncrNonce:                0x0005,
	GetId:                    0x0006,
	GetCodeCommitment:        0x0007,
	GetStorageCommitment:     0x0008,
	GetVaultRoot:             0x0009,
	GetInitialCommitment:     0x000a,
	ComputeCurrentCommitment: 0x000b,
	WasProcedureCalled:       0x000c,
	AddAsset:                 0x000d,
	RemoveAsset:              0x000e,
	GetBalance:               0x000f,
	HasNonFungibleAsset:      0x0010,
	MintAsset:                0x0011,
	BurnAsset:                0x0012,
	GetTotalIssuance:         0x0013,
	IsNonFungibleIssued:      0x0014,
	GetNoteAssets:            0x0015,
	GetNoteInputs:            0x0016,
	GetNoteSerialNumber:      0x0017,
	GetNoteSender:            0x0018,
	GetNoteScriptRoot:        0x0019,
	CreateNote:               0x001a,
	AddAssetToNote:           0x001b,
	GetInputNotesCommitment:  0x001c,
	GetOutputNotesCommitment: 0x001d,
	GetBlockNumber:           0x001e,
	GetBlockTimestamp:        0x001f,
	GetBlockCommitment:       0x0020,
	StartForeignContext:      0x0021,
	EndForeignContext:        0x0022,
	GetExpiration:            0x0023,
	UpdateExpiration:         0x0024,
}

var offsetProcedures map[uint16]Procedure

func init() {
	offsetProcedures = make(map[uint16]Procedure, procedureCount)
	for p, offset := range procedureOffsets {
		if _, ok := offsetProcedures[offset]; ok {
			panic("kernel: duplicate procedure offset")
		}
		offsetProcedures[offset] = Procedure(p)
	}
}

// Offset - the ABI offset of a procedure
func (p Procedure) Offset() uint16 {
	return procedureOffsets[p]
}

// IsValid - check a procedure value from dispatch
func (p Procedure) IsValid() bool {
	return p >= 0 && p < procedureCount
}

// ProcedureFromOffset - reverse lookup for dispatch validation
func ProcedureFromOffset(offset uint16) (Procedure, error) {
	p, ok := offsetProcedures[offset]
	if !ok {
		return 0, fault.InvalidProcedureOffset
	}
	return p, nil
}

// Table - a copy of the full offset table
func Table() map[Procedure]uint16 {
	table := make(map[Procedure]uint16, procedureCount)
	for p, offset := range procedureOffsets {
		table[Procedure(p)] = offset
	}
	return table
}

// Count - number of procedures in this table version
func Count() int {
	return int(procedureCount)
}
