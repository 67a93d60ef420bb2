// Package threshold splits a Lamport private key across n parties so that
// signing requires every party's cooperation.
//
// Sharing is additive over XOR: each party holds a full-size table of
// random-looking shares, and the bytewise XOR of all n shares of an element
// recovers that element. Fewer than n shares reveal nothing about the key,
// and fewer than n partial signatures cannot be aggregated into a valid
// signature.
//
// The protocol is commit-then-reveal:
//
//  1. Every party broadcasts H(digest || partyID) committing to the digest
//     it intends to sign.
//  2. Only after all n commitments arrive and match does any party reveal
//     its partial signature.
//  3. The coordinator XORs all n partials into the final signature and
//     checks it against the public key.
//
// Revealing a partial discloses this party's shares for the digest's bit
// pattern, so a run that aborts after step 2 still spends the key.
//
// SECURITY: the shared key is as one-time as any other Lamport key. One
// protocol run per key, whether or not it completes.
package threshold

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// Config holds the parameters of a signing group.
type Config struct {
	// Parties is the group size. Aggregation needs a partial from every one.
	Parties int

	// PartyID is this party's identifier
	PartyID string
}

// Share is one party's slice of a split private key. The XOR of all n
// shares of an element equals the element.
type Share struct {
	// PartyID identifies the party holding this share
	PartyID string

	// Index is this party's position in the group (1 to n)
	Index int

	// PreimageShares holds this party's share of every element
	PreimageShares [primitives.KeyBits][2][primitives.PreimageSize]byte
}

// PartialSignature is one party's revealed contribution: its share of the
// selected element for each digest bit.
type PartialSignature struct {
	// PartyID identifies the contributing party
	PartyID string

	// Index is the contributing party's position
	Index int

	// Digest is the message digest these partials select on
	Digest [32]byte

	// PreimagePartials holds the share of the selected element per bit
	PreimagePartials [primitives.KeyBits][primitives.PreimageSize]byte
}

// DigestCommitment binds a party to a digest before anything is revealed.
type DigestCommitment struct {
	PartyID    string
	Commitment [32]byte // H(digest || partyID)
}

var (
	// ErrInvalidPartyCount indicates a group too small to split across
	ErrInvalidPartyCount = errors.New("threshold: party count must be at least 2")

	// ErrMissingPartials indicates aggregation was attempted with no partials
	ErrMissingPartials = errors.New("threshold: no partial signatures to aggregate")

	// ErrDigestMismatch indicates parties disagree on the digest being signed
	ErrDigestMismatch = errors.New("threshold: digest mismatch between parties")

	// ErrDuplicateParty indicates the same party contributed twice
	ErrDuplicateParty = errors.New("threshold: duplicate contribution from party")

	// ErrInvalidPartial indicates the aggregate failed verification, so at
	// least one partial was wrong or absent
	ErrInvalidPartial = errors.New("threshold: aggregate does not verify, partial invalid or missing")
)

// NewConfig creates a group configuration for the given size and local party.
func NewConfig(parties int, partyID string) (*Config, error) {
	if parties < 2 {
		return nil, ErrInvalidPartyCount
	}
	return &Config{Parties: parties, PartyID: partyID}, nil
}

// Commitment creates this party's binding commitment to a digest. Broadcast
// this before revealing any signing material.
func (c *Config) Commitment(digest [32]byte) DigestCommitment {
	return NewDigestCommitment(c.PartyID, digest)
}

// NewDigestCommitment commits a party to a digest.
func NewDigestCommitment(partyID string, digest [32]byte) DigestCommitment {
	return DigestCommitment{
		PartyID:    partyID,
		Commitment: primitives.Keccak256Multi(digest[:], []byte(partyID)),
	}
}

// VerifyDigestCommitment reports whether a commitment binds its party to
// the expected digest.
func VerifyDigestCommitment(commitment DigestCommitment, digest [32]byte) bool {
	expected := primitives.Keccak256Multi(digest[:], []byte(commitment.PartyID))
	return commitment.Commitment == expected
}

// GenerateShares splits a fresh private key into n shares using crypto/rand.
// The key itself never exists in one place: each element is drawn, hashed
// into the public key, split, and discarded.
func GenerateShares(n int) ([]*Share, *primitives.PublicKey, error) {
	return GenerateSharesFromReader(n, rand.Reader)
}

// GenerateSharesFromReader splits a fresh private key using the given
// random source.
func GenerateSharesFromReader(n int, random io.Reader) ([]*Share, *primitives.PublicKey, error) {
	if n < 2 {
		return nil, nil, ErrInvalidPartyCount
	}

	shares := make([]*Share, n)
	for j := range shares {
		shares[j] = &Share{
			PartyID: fmt.Sprintf("party-%d", j+1),
			Index:   j + 1,
		}
	}
	pub := &primitives.PublicKey{}

	for i := 0; i < primitives.KeyBits; i++ {
		for bit := 0; bit < 2; bit++ {
			var element [primitives.PreimageSize]byte
			if _, err := io.ReadFull(random, element[:]); err != nil {
				return nil, nil, err
			}
			pub.Hashes[i][bit] = primitives.Keccak256(element[:])

			// n-1 random shares, last share = element XOR the rest
			var sum [primitives.PreimageSize]byte
			for j := 0; j < n-1; j++ {
				if _, err := io.ReadFull(random, shares[j].PreimageShares[i][bit][:]); err != nil {
					return nil, nil, err
				}
				for k := 0; k < primitives.PreimageSize; k++ {
					sum[k] ^= shares[j].PreimageShares[i][bit][k]
				}
			}
			for k := 0; k < primitives.PreimageSize; k++ {
				shares[n-1].PreimageShares[i][bit][k] = element[k] ^ sum[k]
			}
		}
	}

	return shares, pub, nil
}

// ReconstructPreimage XORs the given shares of one element back together.
// With all n shares this yields the real preimage; with fewer it yields
// noise.
func ReconstructPreimage(shares []*Share, bitIndex, bitValue int) [primitives.PreimageSize]byte {
	var result [primitives.PreimageSize]byte
	for _, share := range shares {
		for k := 0; k < primitives.PreimageSize; k++ {
			result[k] ^= share.PreimageShares[bitIndex][bitValue][k]
		}
	}
	return result
}
