package threshold

import (
	"errors"

	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// Aggregate XORs partial signatures into one candidate signature.
//
// All partials must carry the same digest and distinct party indices: a
// duplicated partial would cancel itself out of the XOR. Aggregate does
// not know the group size, so the caller checks the result against the
// public key (or uses AggregateAndVerify) to catch missing parties.
func Aggregate(partials []*PartialSignature) (*primitives.Signature, error) {
	if len(partials) == 0 {
		return nil, ErrMissingPartials
	}

	expected := partials[0].Digest
	seen := make(map[int]bool, len(partials))
	for _, p := range partials {
		if p.Digest != expected {
			return nil, ErrDigestMismatch
		}
		if seen[p.Index] {
			return nil, ErrDuplicateParty
		}
		seen[p.Index] = true
	}

	sig := &primitives.Signature{}
	for i := 0; i < primitives.KeyBits; i++ {
		for _, partial := range partials {
			for k := 0; k < primitives.PreimageSize; k++ {
				sig.Preimages[i][k] ^= partial.PreimagePartials[i][k]
			}
		}
	}

	return sig, nil
}

// AggregateAndVerify aggregates partials and checks the result against the
// public key. A missing or corrupted partial surfaces here as
// ErrInvalidPartial: the XOR no longer reconstructs the committed elements.
func AggregateAndVerify(
	partials []*PartialSignature,
	pub *primitives.PublicKey,
	digest [32]byte,
) (*primitives.Signature, error) {
	for _, p := range partials {
		if p.Digest != digest {
			return nil, ErrDigestMismatch
		}
	}

	sig, err := Aggregate(partials)
	if err != nil {
		return nil, err
	}

	if !primitives.Verify(pub, digest, sig) {
		return nil, ErrInvalidPartial
	}

	return sig, nil
}

// Coordinator runs one commit-then-reveal signing round for a group.
type Coordinator struct {
	config *Config
	pub    *primitives.PublicKey
	digest [32]byte

	commitments map[string]DigestCommitment
	partials    map[int]*PartialSignature
	phase       int // 0: collecting commitments, 1: collecting partials, 2: done
}

// NewCoordinator starts a signing round for one digest under one group key.
func NewCoordinator(config *Config, pub *primitives.PublicKey, digest [32]byte) *Coordinator {
	return &Coordinator{
		config:      config,
		pub:         pub,
		digest:      digest,
		commitments: make(map[string]DigestCommitment, config.Parties),
		partials:    make(map[int]*PartialSignature, config.Parties),
	}
}

// AddCommitment records a party's digest commitment. It returns true once
// every party has committed and the round moves to the reveal phase.
func (c *Coordinator) AddCommitment(commitment DigestCommitment) (bool, error) {
	if c.phase != 0 {
		return false, errors.New("threshold: not in commitment phase")
	}

	if !VerifyDigestCommitment(commitment, c.digest) {
		return false, ErrDigestMismatch
	}
	if _, ok := c.commitments[commitment.PartyID]; ok {
		return false, ErrDuplicateParty
	}
	c.commitments[commitment.PartyID] = commitment

	if len(c.commitments) == c.config.Parties {
		c.phase = 1
		return true, nil
	}
	return false, nil
}

// AddPartial records a party's revealed partial. Once every party has
// revealed, it aggregates, verifies, and returns the completed signature;
// before that it returns (nil, nil).
func (c *Coordinator) AddPartial(partial *PartialSignature) (*primitives.Signature, error) {
	if c.phase != 1 {
		return nil, errors.New("threshold: not in reveal phase")
	}

	if partial.Digest != c.digest {
		return nil, ErrDigestMismatch
	}
	if _, ok := c.partials[partial.Index]; ok {
		return nil, ErrDuplicateParty
	}
	c.partials[partial.Index] = partial

	if len(c.partials) < c.config.Parties {
		return nil, nil
	}

	collected := make([]*PartialSignature, 0, len(c.partials))
	for _, p := range c.partials {
		collected = append(collected, p)
	}
	sig, err := AggregateAndVerify(collected, c.pub, c.digest)
	if err != nil {
		return nil, err
	}
	c.phase = 2
	return sig, nil
}

// Digest returns the digest this round signs.
func (c *Coordinator) Digest() [32]byte {
	return c.digest
}

// Phase returns the round's current phase.
func (c *Coordinator) Phase() int {
	return c.phase
}
