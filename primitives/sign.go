package primitives

// Sign creates a Lamport signature for a 32-byte message digest.
//
// SECURITY: This function should only be called ONCE per private key.
// Nothing here prevents a second call; reuse across two different digests
// reveals both branches at every position where they differ.
//
// The signature reveals one preimage for each bit of the message:
//   - If bit i is 0, reveal preimage[i][0]
//   - If bit i is 1, reveal preimage[i][1]
func Sign(priv *PrivateKey, message [32]byte) *Signature {
	sig := &Signature{}

	for i := 0; i < KeyBits; i++ {
		bit := GetBit(message, i)
		sig.Preimages[i] = priv.Preimages[i][bit]
	}

	return sig
}

// SignBytes signs a 32-byte message digest slice.
func SignBytes(priv *PrivateKey, message []byte) (*Signature, error) {
	if len(message) != 32 {
		return nil, ErrInvalidMessage
	}
	var msg [32]byte
	copy(msg[:], message)
	return Sign(priv, msg), nil
}

// SignPaired creates a both-branches signature for a 32-byte message digest.
//
// At each bit position the branch selected by the message bit is revealed
// raw, and the opposite branch is replaced by its hash. A verifier holding
// only a vector commitment to the public key promotes the revealed branch
// to its hash and recomputes the commitment over the full sequence.
//
// SECURITY: one call per private key, same as Sign.
func SignPaired(priv *PrivateKey, message [32]byte) *PairedSignature {
	sig := &PairedSignature{}

	for i := 0; i < KeyBits; i++ {
		bit := GetBit(message, i)
		sig.Pairs[i][bit] = priv.Preimages[i][bit]
		sig.Pairs[i][1-bit] = Keccak256(priv.Preimages[i][1-bit][:])
	}

	return sig
}
