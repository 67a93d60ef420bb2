package primitives

import "sync"

// Verify checks a Lamport signature against a public key and message digest.
//
// For each bit i of the message:
//   - If bit i is 0, check keccak256(sig[i]) == pub[i][0]
//   - If bit i is 1, check keccak256(sig[i]) == pub[i][1]
//
// Returns true if all 256 preimages hash to the correct public key values.
// NOTE: This function returns early on mismatch. For side-channel resistance,
// use VerifyConstantTime instead.
func Verify(pub *PublicKey, message [32]byte, sig *Signature) bool {
	for i := 0; i < KeyBits; i++ {
		bit := GetBit(message, i)
		expectedHash := pub.Hashes[i][bit]
		actualHash := Keccak256(sig.Preimages[i][:])

		if actualHash != expectedHash {
			return false
		}
	}
	return true
}

// VerifyConstantTime checks a Lamport signature in constant time.
// Unlike Verify, this function always checks all 256 preimages regardless
// of mismatches, preventing timing side-channel attacks.
//
// Use this when the verification result could be observed by an attacker
// (e.g., through timing analysis).
func VerifyConstantTime(pub *PublicKey, message [32]byte, sig *Signature) bool {
	var mismatch byte // Accumulate mismatches without branching

	for i := 0; i < KeyBits; i++ {
		bit := GetBit(message, i)
		expectedHash := pub.Hashes[i][bit]
		actualHash := Keccak256(sig.Preimages[i][:])

		// XOR each byte and OR into mismatch accumulator
		for j := 0; j < HashSize; j++ {
			mismatch |= expectedHash[j] ^ actualHash[j]
		}
	}

	// mismatch == 0 iff all hashes matched
	return mismatch == 0
}

// VerifyBytes verifies a signature against a 32-byte message digest slice.
func VerifyBytes(pub *PublicKey, message []byte, sig *Signature) bool {
	if len(message) != 32 {
		return false
	}
	var msg [32]byte
	copy(msg[:], message)
	return Verify(pub, msg, sig)
}

// BatchVerify verifies multiple signatures concurrently. Verifications are
// independent, so each runs in its own goroutine; results are returned in
// input order. Mismatched slice lengths yield all false.
func BatchVerify(pubs []*PublicKey, messages [][32]byte, sigs []*Signature) []bool {
	n := len(pubs)
	results := make([]bool, n)
	if len(messages) != n || len(sigs) != n {
		return results
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Verify(pubs[i], messages[i], sigs[i])
		}(i)
	}
	wg.Wait()
	return results
}
