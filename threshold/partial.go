package threshold

import (
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

// CreatePartialSignature reveals this party's contribution for a digest:
// for each bit i it selects the share of element (i, bit_i).
//
// SECURITY: call only after every party's digest commitment has been
// received and verified. Revealing a partial spends this share.
func CreatePartialSignature(share *Share, digest [32]byte) *PartialSignature {
	partial := &PartialSignature{
		PartyID: share.PartyID,
		Index:   share.Index,
		Digest:  digest,
	}

	for i := 0; i < primitives.KeyBits; i++ {
		bit := primitives.GetBit(digest, i)
		partial.PreimagePartials[i] = share.PreimageShares[i][bit]
	}

	return partial
}

// VerifyPartialDigest reports whether a partial was created for the
// expected digest. This checks agreement only; whether the shares are
// genuine shows up at aggregation.
func VerifyPartialDigest(partial *PartialSignature, digest [32]byte) bool {
	return partial.Digest == digest
}
