// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockrecord - block-level context supplied to every
// transaction epilogue
package blockrecord

import (
	"encoding/binary"
	"time"

	"github.com/veilmark/veilmarkd/constants"
	"github.com/veilmark/veilmarkd/fault"
	"github.com/veilmark/veilmarkd/merkle"
)

// Header - read-only chain context for transaction execution
type Header struct {
	Number        uint64        `json:"number,string"`
	Timestamp     int64         `json:"timestamp,string"`
	PreviousBlock merkle.Digest `json:"previousBlock"`
}

// Digest - the block reference committed into every transaction
func (header *Header) Digest() merkle.Digest {
	buffer := make([]byte, 16, 16+merkle.DigestLength)
	binary.LittleEndian.PutUint64(buffer[0:], header.Number)
	binary.LittleEndian.PutUint64(buffer[8:], uint64(header.Timestamp))
	buffer = append(buffer, header.PreviousBlock[:]...)
	return merkle.NewDigest(buffer)
}

// Validate - sequencing and clock checks against the previous header
//
// previous is nil for the genesis header
func (header *Header) Validate(previous *Header, now time.Time) error {
	if nil != previous {
		if header.Number != previous.Number+1 {
			return fault.BlockNumberOutOfSequence
		}
		if header.PreviousBlock != previous.Digest() {
			return fault.BlockNumberOutOfSequence
		}
	}
	limit := now.Add(constants.MaxBlockTimestampAhead).Unix()
	if header.Timestamp > limit {
		return fault.BlockTimestampTooFarAhead
	}
	return nil
}
