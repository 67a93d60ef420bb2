// Package scheme composes the Lamport primitives into three interoperable
// signature modes that trade off key and signature sizes.
//
// All modes share the same bit-selection core: a Keccak-256 message digest
// chooses one of two committed 32-byte elements per bit position. The modes
// differ only in how key material is represented:
//
//   - ModeNaive: full 16 KiB preimage table and full 16 KiB hash table.
//   - ModeCompactPrivate: the private key is a 48-byte seed expanded into
//     the preimage table on demand; the public key stays full size.
//   - ModeCompactPublic: the public key is a single 32-byte Merkle root
//     over the hash table; signatures double in size to carry both
//     branches per bit so verifiers can rebuild the committed sequence.
//
// SECURITY: Every mode is strictly one-time. Nothing here prevents a second
// Sign call on the same key; callers enforce single use and should Wipe
// keys once spent.
package scheme

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/Blake-Haydon/Lamport-Signatures/merkle"
	"github.com/Blake-Haydon/Lamport-Signatures/prg"
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// Mode identifies a key-representation mode. The set is closed: every
// operation switches exhaustively over these three values and rejects
// anything else with ErrUnknownMode.
type Mode uint8

const (
	// ModeNaive stores full preimage and hash tables on both sides.
	ModeNaive Mode = 1 + iota

	// ModeCompactPrivate stores the private key as a prg.Seed and expands
	// it for every operation that needs preimages.
	ModeCompactPrivate

	// ModeCompactPublic commits to the hash table with a Merkle root and
	// reveals both branches per bit in signatures.
	ModeCompactPublic
)

// Modes lists the closed set in declaration order.
var Modes = []Mode{ModeNaive, ModeCompactPrivate, ModeCompactPublic}

// String returns the mode name used by codecs and the CLI.
func (m Mode) String() string {
	switch m {
	case ModeNaive:
		return "naive"
	case ModeCompactPrivate:
		return "compact-private"
	case ModeCompactPublic:
		return "compact-public"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode maps a mode name back to its Mode value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "naive":
		return ModeNaive, nil
	case "compact-private":
		return ModeCompactPrivate, nil
	case "compact-public":
		return ModeCompactPublic, nil
	default:
		return 0, ErrUnknownMode
	}
}

var (
	// ErrUnknownMode indicates a mode outside the closed set
	ErrUnknownMode = errors.New("lamport: unknown mode")

	// ErrMalformedKey indicates a key whose representation does not match its mode
	ErrMalformedKey = errors.New("lamport: malformed key")

	// ErrMalformedSignature indicates a signature whose shape does not match its mode
	ErrMalformedSignature = errors.New("lamport: malformed signature")
)

// PrivateKey is a mode-tagged private key. Exactly one representation is
// populated: Elements for ModeNaive and ModeCompactPublic, Seed for
// ModeCompactPrivate.
type PrivateKey struct {
	Mode     Mode
	Elements *primitives.PrivateKey
	Seed     *prg.Seed
}

// PublicKey is a mode-tagged public key. Elements is populated for
// ModeNaive and ModeCompactPrivate; Root for ModeCompactPublic.
type PublicKey struct {
	Mode     Mode
	Elements *primitives.PublicKey
	Root     [primitives.HashSize]byte
}

// Signature is a mode-tagged signature. Revealed carries the 256 selected
// preimages for ModeNaive and ModeCompactPrivate; Paired carries both
// branches per bit for ModeCompactPublic.
type Signature struct {
	Mode     Mode
	Revealed *primitives.Signature
	Paired   *primitives.PairedSignature
}

// GenerateKeyPair generates a key pair for the given mode using crypto/rand.
func GenerateKeyPair(mode Mode) (*PublicKey, *PrivateKey, error) {
	return GenerateKeyPairFromReader(mode, rand.Reader)
}

// GenerateKeyPairFromReader generates a key pair for the given mode from
// the given random source.
func GenerateKeyPairFromReader(mode Mode, random io.Reader) (*PublicKey, *PrivateKey, error) {
	switch mode {
	case ModeNaive:
		kp, err := primitives.GenerateKeyPairFromReader(random)
		if err != nil {
			return nil, nil, err
		}
		pub := &PublicKey{Mode: mode, Elements: kp.Public}
		priv := &PrivateKey{Mode: mode, Elements: kp.Private}
		return pub, priv, nil

	case ModeCompactPrivate:
		seed, err := prg.NewSeedFromReader(random)
		if err != nil {
			return nil, nil, err
		}
		working, err := expandSeed(seed)
		if err != nil {
			return nil, nil, err
		}
		pub := &PublicKey{Mode: mode, Elements: working.PublicKey()}
		priv := &PrivateKey{Mode: mode, Seed: seed}
		return pub, priv, nil

	case ModeCompactPublic:
		kp, err := primitives.GenerateKeyPairFromReader(random)
		if err != nil {
			return nil, nil, err
		}
		root, err := merkle.Root(kp.Public.Leaves())
		if err != nil {
			return nil, nil, err
		}
		pub := &PublicKey{Mode: mode, Root: root}
		priv := &PrivateKey{Mode: mode, Elements: kp.Private}
		return pub, priv, nil

	default:
		return nil, nil, ErrUnknownMode
	}
}

// DerivePublicKey recomputes the public key from a private key. For
// ModeCompactPrivate this re-expands the seed, so the result is identical
// to the public key produced at generation time.
func DerivePublicKey(priv *PrivateKey) (*PublicKey, error) {
	working, err := workingKey(priv)
	if err != nil {
		return nil, err
	}

	switch priv.Mode {
	case ModeNaive, ModeCompactPrivate:
		return &PublicKey{Mode: priv.Mode, Elements: working.PublicKey()}, nil
	case ModeCompactPublic:
		root, err := merkle.Root(working.PublicKey().Leaves())
		if err != nil {
			return nil, err
		}
		return &PublicKey{Mode: priv.Mode, Root: root}, nil
	default:
		return nil, ErrUnknownMode
	}
}

// Wipe zeroes whichever representation the key holds.
func (priv *PrivateKey) Wipe() {
	if priv.Elements != nil {
		priv.Elements.Wipe()
	}
	if priv.Seed != nil {
		priv.Seed.Wipe()
	}
}

// workingKey materializes the full preimage table for any private
// representation, validating that exactly the mode's representation is
// populated.
func workingKey(priv *PrivateKey) (*primitives.PrivateKey, error) {
	if priv == nil {
		return nil, ErrMalformedKey
	}
	switch priv.Mode {
	case ModeNaive, ModeCompactPublic:
		if priv.Elements == nil || priv.Seed != nil {
			return nil, ErrMalformedKey
		}
		return priv.Elements, nil
	case ModeCompactPrivate:
		if priv.Seed == nil || priv.Elements != nil {
			return nil, ErrMalformedKey
		}
		return expandSeed(priv.Seed)
	default:
		return nil, ErrUnknownMode
	}
}

// expandSeed materializes a preimage table from a compact seed. The
// keystream fills the table in serialized order: position i's 0-branch
// then its 1-branch, positions ascending.
func expandSeed(seed *prg.Seed) (*primitives.PrivateKey, error) {
	buf := make([]byte, primitives.PrivateKeySize)
	if err := seed.Expand(buf); err != nil {
		return nil, err
	}
	working := &primitives.PrivateKey{}
	if err := working.FromBytes(buf); err != nil {
		return nil, err
	}
	return working, nil
}
