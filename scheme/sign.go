package scheme

import (
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// Sign signs an arbitrary-length message with the given private key. The
// message is reduced to its Keccak-256 digest and each digest bit selects
// key material according to the key's mode.
//
// SECURITY: one signature per key, in every mode. Signing a second,
// different message with the same key reveals enough preimages to forge;
// this is documented misuse and is not blocked here. Wipe the key after use.
func Sign(message []byte, priv *PrivateKey) (*Signature, error) {
	working, err := workingKey(priv)
	if err != nil {
		return nil, err
	}

	digest := primitives.Keccak256(message)

	switch priv.Mode {
	case ModeNaive, ModeCompactPrivate:
		return &Signature{Mode: priv.Mode, Revealed: primitives.Sign(working, digest)}, nil
	case ModeCompactPublic:
		return &Signature{Mode: priv.Mode, Paired: primitives.SignPaired(working, digest)}, nil
	default:
		return nil, ErrUnknownMode
	}
}
