// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/veilmark/veilmarkd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a digest
// stored as little endian byte array
// represented as little endian hex text for JSON encoding
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// Word - a single kernel field value
type Word uint64

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// NewDigestFromWords - create a digest from a sequence of words
// each word is encoded as 8 little endian bytes
func NewDigestFromWords(words ...Word) Digest {
	buffer := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buffer[8*i:], uint64(w))
	}
	return sha3.Sum256(buffer)
}

// Combine - hash a sequence of digests into one
//
// this is the node function of every hash chain in the kernel: the
// result depends on the order of its operands
func Combine(digests ...Digest) Digest {
	buffer := make([]byte, 0, DigestLength*len(digests))
	for _, d := range digests {
		buffer = append(buffer, d[:]...)
	}
	return sha3.Sum256(buffer)
}

// Xor - fold a second digest into this one
//
// used for the order-independent storage and vault aggregates
func (digest Digest) Xor(other Digest) Digest {
	var result Digest
	for i := 0; i < DigestLength; i += 1 {
		result[i] = digest[i] ^ other[i]
	}
	return result
}

// IsZero - check for the all-zero digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to little endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert little endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.NotLink
	}
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(digest[:], buffer[:byteCount])
	return nil
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.NotLink
	}
	copy(digest[:], buffer)
	return nil
}
