// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constants - protocol-wide limits
//
// these values are part of consensus: changing any of them is a
// protocol version change
package constants

import (
	"time"
)

// asset limits
const (
	// MaxFungibleAmount - largest representable fungible amount
	MaxFungibleAmount uint64 = 1<<63 - 1
)

// account limits
const (
	// MaxStorageSlots - slots addressable per account
	MaxStorageSlots = 255
)

// transaction limits
const (
	// MaxInputNotes - notes consumable by one transaction
	MaxInputNotes = 1024

	// MaxOutputNotes - notes creatable by one transaction
	MaxOutputNotes = 4096

	// MaxNoteInputs - words of input data attached to a note
	MaxNoteInputs = 128

	// MaxNoteAssets - assets attached to a single note
	MaxNoteAssets = 256

	// MaxForeignDepth - nested foreign context frames
	MaxForeignDepth = 64

	// UnlimitedExpiration - expiration block for transactions without a deadline
	UnlimitedExpiration uint32 = 1<<32 - 1
)

// block limits
const (
	// MaxBlockTimestampAhead - tolerated clock skew on incoming headers
	MaxBlockTimestampAhead = 2 * time.Hour
)

// aggregation defaults
const (
	// BatchPoolTimeout - proved transactions unclaimed for this long are dropped
	BatchPoolTimeout = 2 * time.Hour

	// DefaultProofWorkers - proving goroutines when not configured
	DefaultProofWorkers = 4

	// DefaultProofRate - proving submissions per second when not configured
	DefaultProofRate = 100
)
