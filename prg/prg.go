// Package prg expands a compact seed into Lamport preimage material.
//
// Expansion runs AES-256 in counter mode over all-zero input, so the output
// is the raw keystream for (key, nonce) and the 16-byte nonce is the full
// initial counter block. It is a pure function of the seed: the same key
// and nonce always reproduce byte-identical output, which lets a private
// key be stored as 48 bytes and re-expanded on demand at signing and
// key-derivation time.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// NonceSize is the counter-mode IV length in bytes (one AES block).
	NonceSize = 16

	// SeedSize is the serialized seed length: key followed by nonce.
	SeedSize = KeySize + NonceSize
)

// ErrInvalidSeedLength indicates a key or nonce of the wrong width.
var ErrInvalidSeedLength = errors.New("prg: invalid seed length (key must be 32 bytes, nonce 16 bytes)")

// Seed is the compact private-key representation: an AES-256 key and the
// initial counter block.
type Seed struct {
	Key   [KeySize]byte
	Nonce [NonceSize]byte
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (*Seed, error) {
	return NewSeedFromReader(rand.Reader)
}

// NewSeedFromReader generates a random seed from the given random source.
func NewSeedFromReader(random io.Reader) (*Seed, error) {
	s := &Seed{}
	if _, err := io.ReadFull(random, s.Key[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(random, s.Nonce[:]); err != nil {
		return nil, err
	}
	return s, nil
}

// SeedFromBytes builds a seed from raw key and nonce bytes.
func SeedFromBytes(key, nonce []byte) (*Seed, error) {
	if len(key) != KeySize || len(nonce) != NonceSize {
		return nil, ErrInvalidSeedLength
	}
	s := &Seed{}
	copy(s.Key[:], key)
	copy(s.Nonce[:], nonce)
	return s, nil
}

// Expand fills out with the keystream for (key, nonce). Any prior contents
// of out are discarded. The same seed produces the same bytes for a given
// length on every call.
func Expand(out, key, nonce []byte) error {
	if len(key) != KeySize || len(nonce) != NonceSize {
		return ErrInvalidSeedLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	clear(out)
	cipher.NewCTR(block, nonce).XORKeyStream(out, out)
	return nil
}

// Expand fills out with this seed's keystream.
func (s *Seed) Expand(out []byte) error {
	return Expand(out, s.Key[:], s.Nonce[:])
}

// Bytes serializes the seed as key followed by nonce.
func (s *Seed) Bytes() []byte {
	out := make([]byte, SeedSize)
	copy(out[:KeySize], s.Key[:])
	copy(out[KeySize:], s.Nonce[:])
	return out
}

// FromBytes deserializes a seed.
func (s *Seed) FromBytes(data []byte) error {
	if len(data) != SeedSize {
		return ErrInvalidSeedLength
	}
	copy(s.Key[:], data[:KeySize])
	copy(s.Nonce[:], data[KeySize:])
	return nil
}

// Wipe zeroes the seed in place.
func (s *Seed) Wipe() {
	clear(s.Key[:])
	clear(s.Nonce[:])
}
