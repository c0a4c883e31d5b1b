// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Veilmark Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - digests and merkle tree roots
//
// all kernel commitments are SHA3-256 digests; the batch aggregator
// commits to its member transactions with a merkle root over their ids
package merkle

// FullMerkleTree - compute merkle tree from a set of transaction ids
//
// structure is:
//   1. N * transaction digests
//   2. level 1..m digests
//   3. merkle root digest
func FullMerkleTree(txIds []Digest) []Digest {

	// compute length of ids + all tree levels including root
	idCount := len(txIds)

	totalLength := 1 // all ids + space for the final root
	for n := idCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	// add initial ids
	tree := make([]Digest, totalLength)
	copy(tree[:], txIds)

	n := idCount
	j := 0
	for workLength := idCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = NewDigest(append(tree[j][:], tree[k][:]...))
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - merkle root over a set of transaction ids
//
// the root of an empty set is the zero digest
func Root(txIds []Digest) Digest {
	if 0 == len(txIds) {
		return Digest{}
	}
	tree := FullMerkleTree(txIds)
	return tree[len(tree)-1]
}
