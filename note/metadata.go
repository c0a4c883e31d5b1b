// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Type - disclosure level of a created note
type Type byte

// enumeration of note types
const (
	Public    Type = 0x01 // full note published on chain
	Private   Type = 0x02 // only the recipient commitment published
	Encrypted Type = 0x03 // note data published encrypted to the target
)

// HintKind - when a note is expected to become consumable
type HintKind byte

// enumeration of execution hints
const (
	HintNone       HintKind = 0x00 // no advice
	HintAlways     HintKind = 0x01 // consumable immediately
	HintAfterBlock HintKind = 0x02 // consumable after a block number
	HintOnBlock    HintKind = 0x03 // consumable in one specific block slot
)

// locally routed tags carry the high bit; anything else is a
// network-wide tag and the note contents must be public to match
const localTagBit = 0x80000000

// ExecutionHint - hint kind plus its block payload
type ExecutionHint struct {
	Kind  HintKind `json:"kind"`
	Block uint32   `json:"block,omitempty"`
}

// Metadata - routing and visibility data attached at creation
type Metadata struct {
	Tag  uint32        `json:"tag"`
	Aux  merkle.Word   `json:"aux"`
	Type Type          `json:"type"`
	Hint ExecutionHint `json:"hint"`
}

// Validate - check type, tag and hint consistency
func (m Metadata) Validate() error {
	switch m.Type {
	case Public, Private, Encrypted:
	default:
		return fault.InvalidCount
	}

	switch m.Hint.Kind {
	case HintNone, HintAlways:
		if 0 != m.Hint.Block {
			return fault.InvalidCount
		}
	case HintAfterBlock, HintOnBlock:
	default:
		return fault.InvalidCount
	}

	if 0 == m.Tag&localTagBit && Public != m.Type {
		return fault.NoteTagRequiresPublicType
	}
	return nil
}

// Digest - commitment to the metadata
func (m Metadata) Digest() merkle.Digest {
	return merkle.NewDigestFromWords(
		merkle.Word(m.Tag),
		m.Aux,
		merkle.Word(m.Type),
		merkle.Word(m.Hint.Kind),
		merkle.Word(m.Hint.Block),
	)
}
