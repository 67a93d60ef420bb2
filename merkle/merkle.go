// Package merkle computes the vector commitment used for compact Lamport
// public keys: a single Keccak-256 root over an ordered sequence of 32-byte
// leaves.
package merkle

import (
	"errors"

	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// ErrInvalidLeafCount indicates the leaf sequence length is not a non-zero
// power of two.
var ErrInvalidLeafCount = errors.New("merkle: leaf count must be a non-zero power of two")

// Root commits to an ordered sequence of 32-byte leaves.
//
// Leaves enter the tree as-is: they are already hash outputs and are never
// hashed again before pairing, so a single leaf is its own root. Parent
// nodes are Keccak256(left || right), computed level by level from the
// bottom. The root binds both leaf values and leaf order.
func Root(leaves [][primitives.HashSize]byte) ([primitives.HashSize]byte, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return [primitives.HashSize]byte{}, ErrInvalidLeafCount
	}

	level := leaves
	for len(level) > 1 {
		parents := make([][primitives.HashSize]byte, len(level)/2)
		for i := range parents {
			parents[i] = primitives.Keccak256Multi(level[2*i][:], level[2*i+1][:])
		}
		level = parents
	}
	return level[0], nil
}
