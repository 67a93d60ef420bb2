package scheme

import (
	"github.com/Blake-Haydon/Lamport-Signatures/merkle"
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// Verify reports whether sig is a valid signature on message under pub.
//
// A forged or corrupted signature yields (false, nil): false is the
// ordinary outcome, not an error. Errors are returned only for structural
// defects - nil inputs, a signature whose mode differs from the key's, or
// a key or signature carrying the wrong representation for its mode.
func Verify(message []byte, pub *PublicKey, sig *Signature) (bool, error) {
	if pub == nil {
		return false, ErrMalformedKey
	}
	if sig == nil || sig.Mode != pub.Mode {
		return false, ErrMalformedSignature
	}

	digest := primitives.Keccak256(message)

	switch pub.Mode {
	case ModeNaive, ModeCompactPrivate:
		if pub.Elements == nil {
			return false, ErrMalformedKey
		}
		if sig.Revealed == nil || sig.Paired != nil {
			return false, ErrMalformedSignature
		}
		return primitives.Verify(pub.Elements, digest, sig.Revealed), nil

	case ModeCompactPublic:
		if pub.Elements != nil {
			return false, ErrMalformedKey
		}
		if sig.Paired == nil || sig.Revealed != nil {
			return false, ErrMalformedSignature
		}
		root, err := merkle.Root(sig.Paired.Leaves(digest))
		if err != nil {
			return false, err
		}
		return root == pub.Root, nil

	default:
		return false, ErrUnknownMode
	}
}
