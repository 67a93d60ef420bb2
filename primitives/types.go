// Package primitives provides core Lamport one-time signature types and operations.
//
// Lamport signatures are hash-based and rely only on Keccak-256 preimage
// resistance - no number-theoretic assumptions. A key commits to two 32-byte
// values per message-digest bit; signing reveals the value matching each bit.
//
// SECURITY: Each Lamport key pair MUST only be used to sign ONE message.
// Signing two messages with the same key reveals preimages from both
// branches, allowing forgery. Nothing in this package blocks a second
// signature; callers enforce single use and should Wipe keys once spent.
package primitives

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/sha3"
)

const (
	// KeyBits is the number of bits in the message digest (256 for keccak256 output)
	KeyBits = 256

	// PreimageSize is the size of each private key preimage (32 bytes)
	PreimageSize = 32

	// HashSize is the size of keccak256 output (32 bytes)
	HashSize = 32

	// PrivateKeySize is the total size of a Lamport private key
	// 256 bits * 2 branches * 32 bytes = 16,384 bytes
	PrivateKeySize = KeyBits * 2 * PreimageSize

	// PublicKeySize is the total size of a Lamport public key
	// 256 bits * 2 branches * 32 bytes = 16,384 bytes
	PublicKeySize = KeyBits * 2 * HashSize

	// SignatureSize is the size of a Lamport signature
	// 256 revealed preimages * 32 bytes = 8,192 bytes
	SignatureSize = KeyBits * PreimageSize

	// PairedSignatureSize is the size of a both-branches signature
	// 256 bits * 2 branches * 32 bytes = 16,384 bytes
	PairedSignatureSize = KeyBits * 2 * PreimageSize

	// PublicKeyHashSize is 32 bytes (keccak256 of public key)
	PublicKeyHashSize = 32
)

var (
	// ErrInvalidPrivateKey indicates the private key format is invalid
	ErrInvalidPrivateKey = errors.New("lamport: invalid private key")

	// ErrInvalidPublicKey indicates the public key format is invalid
	ErrInvalidPublicKey = errors.New("lamport: invalid public key")

	// ErrInvalidSignature indicates the signature format is invalid
	ErrInvalidSignature = errors.New("lamport: invalid signature")

	// ErrInvalidMessage indicates the message format is invalid
	ErrInvalidMessage = errors.New("lamport: invalid message (must be 32 bytes)")
)

// PrivateKey represents a Lamport private key.
// It consists of 256 pairs of 32-byte preimages.
// SECURITY: This key MUST only be used to sign ONE message.
type PrivateKey struct {
	// Preimages is [256][2][32]byte - preimage[i][bit] for each bit position
	Preimages [KeyBits][2][PreimageSize]byte
}

// PublicKey represents a Lamport public key.
// It consists of 256 pairs of 32-byte hashes (keccak256 of preimages).
type PublicKey struct {
	// Hashes is [256][2][32]byte - hash[i][bit] for each bit position
	Hashes [KeyBits][2][HashSize]byte
}

// Signature represents a Lamport signature.
// It consists of 256 revealed preimages (one for each bit of the message).
type Signature struct {
	// Preimages is [256][32]byte - the revealed preimage for each bit
	Preimages [KeyBits][PreimageSize]byte
}

// PairedSignature represents a both-branches Lamport signature.
// At each bit position the branch selected by the message bit holds the raw
// preimage and the opposite branch holds its hash, so a verifier holding
// only a commitment to the public key can rebuild the full hash sequence.
type PairedSignature struct {
	// Pairs is [256][2][32]byte - pairs[i][bit] for each bit position
	Pairs [KeyBits][2][PreimageSize]byte
}

// KeyPair holds a Lamport key pair for convenience.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

// Keccak256 computes the Keccak-256 hash of data.
func Keccak256(data []byte) [HashSize]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var result [HashSize]byte
	h.Sum(result[:0])
	return result
}

// Keccak256Multi computes keccak256 of multiple byte slices.
func Keccak256Multi(parts ...[]byte) [HashSize]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var result [HashSize]byte
	h.Sum(result[:0])
	return result
}

// Bytes serializes the private key to bytes, 0-branch before 1-branch at
// each bit position.
func (priv *PrivateKey) Bytes() []byte {
	out := make([]byte, PrivateKeySize)
	for i := 0; i < KeyBits; i++ {
		copy(out[i*64:i*64+32], priv.Preimages[i][0][:])
		copy(out[i*64+32:i*64+64], priv.Preimages[i][1][:])
	}
	return out
}

// FromBytes deserializes a private key from bytes.
func (priv *PrivateKey) FromBytes(data []byte) error {
	if len(data) != PrivateKeySize {
		return ErrInvalidPrivateKey
	}
	for i := 0; i < KeyBits; i++ {
		copy(priv.Preimages[i][0][:], data[i*64:i*64+32])
		copy(priv.Preimages[i][1][:], data[i*64+32:i*64+64])
	}
	return nil
}

// PublicKey derives the public key by hashing every preimage.
func (priv *PrivateKey) PublicKey() *PublicKey {
	pub := &PublicKey{}
	for i := 0; i < KeyBits; i++ {
		for bit := 0; bit < 2; bit++ {
			pub.Hashes[i][bit] = Keccak256(priv.Preimages[i][bit][:])
		}
	}
	return pub
}

// Wipe zeroes the private key material in place. Callers uphold the
// one-time property by wiping or otherwise discarding a key after its
// single signature.
func (priv *PrivateKey) Wipe() {
	for i := range priv.Preimages {
		for bit := range priv.Preimages[i] {
			clear(priv.Preimages[i][bit][:])
		}
	}
}

// Bytes serializes the public key to bytes.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	for i := 0; i < KeyBits; i++ {
		copy(out[i*64:i*64+32], pk.Hashes[i][0][:])
		copy(out[i*64+32:i*64+64], pk.Hashes[i][1][:])
	}
	return out
}

// Hash returns the keccak256 hash of the public key (PKH).
// This is a compact fingerprint of the full table.
func (pk *PublicKey) Hash() [PublicKeyHashSize]byte {
	return Keccak256(pk.Bytes())
}

// FromBytes deserializes a public key from bytes.
func (pk *PublicKey) FromBytes(data []byte) error {
	if len(data) != PublicKeySize {
		return ErrInvalidPublicKey
	}
	for i := 0; i < KeyBits; i++ {
		copy(pk.Hashes[i][0][:], data[i*64:i*64+32])
		copy(pk.Hashes[i][1][:], data[i*64+32:i*64+64])
	}
	return nil
}

// Leaves returns the hashes as a flat ordered sequence, 0-branch before
// 1-branch at each bit position. This is the leaf order committed to by a
// Merkle root over the public key.
func (pk *PublicKey) Leaves() [][HashSize]byte {
	leaves := make([][HashSize]byte, 2*KeyBits)
	for i := 0; i < KeyBits; i++ {
		leaves[2*i] = pk.Hashes[i][0]
		leaves[2*i+1] = pk.Hashes[i][1]
	}
	return leaves
}

// Bytes serializes the signature to bytes.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	for i := 0; i < KeyBits; i++ {
		copy(out[i*32:(i+1)*32], sig.Preimages[i][:])
	}
	return out
}

// FromBytes deserializes a signature from bytes.
func (sig *Signature) FromBytes(data []byte) error {
	if len(data) != SignatureSize {
		return ErrInvalidSignature
	}
	for i := 0; i < KeyBits; i++ {
		copy(sig.Preimages[i][:], data[i*32:(i+1)*32])
	}
	return nil
}

// Bytes serializes the paired signature to bytes, 0-branch before 1-branch
// at each bit position.
func (sig *PairedSignature) Bytes() []byte {
	out := make([]byte, PairedSignatureSize)
	for i := 0; i < KeyBits; i++ {
		copy(out[i*64:i*64+32], sig.Pairs[i][0][:])
		copy(out[i*64+32:i*64+64], sig.Pairs[i][1][:])
	}
	return out
}

// FromBytes deserializes a paired signature from bytes.
func (sig *PairedSignature) FromBytes(data []byte) error {
	if len(data) != PairedSignatureSize {
		return ErrInvalidSignature
	}
	for i := 0; i < KeyBits; i++ {
		copy(sig.Pairs[i][0][:], data[i*64:i*64+32])
		copy(sig.Pairs[i][1][:], data[i*64+32:i*64+64])
	}
	return nil
}

// Leaves rebuilds the committed hash sequence for the given message digest.
// The branch matching each message bit holds a raw preimage and is promoted
// to its hash; the opposite branch is already a hash and passes through
// unchanged. The result is in public-key leaf order.
func (sig *PairedSignature) Leaves(message [32]byte) [][HashSize]byte {
	leaves := make([][HashSize]byte, 2*KeyBits)
	for i := 0; i < KeyBits; i++ {
		bit := GetBit(message, i)
		promoted := Keccak256(sig.Pairs[i][bit][:])
		leaves[2*i+bit] = promoted
		leaves[2*i+(1-bit)] = sig.Pairs[i][1-bit]
	}
	return leaves
}

// GenerateKeyPair generates a new Lamport key pair using crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	return GenerateKeyPairFromReader(rand.Reader)
}

// GenerateKeyPairFromReader generates a new Lamport key pair from the given random source.
func GenerateKeyPairFromReader(random io.Reader) (*KeyPair, error) {
	priv := &PrivateKey{}

	for i := 0; i < KeyBits; i++ {
		for bit := 0; bit < 2; bit++ {
			if _, err := io.ReadFull(random, priv.Preimages[i][bit][:]); err != nil {
				return nil, err
			}
		}
	}

	return &KeyPair{Private: priv, Public: priv.PublicKey()}, nil
}

// GetBit returns the bit at position i (0-255) of a 32-byte message.
// Bit 0 is the most significant bit of the first byte.
func GetBit(message [32]byte, i int) int {
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	return int((message[byteIdx] >> bitIdx) & 1)
}
