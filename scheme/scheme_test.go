package scheme

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/Blake-Haydon/Lamport-Signatures/merkle"
	"github.com/Blake-Haydon/Lamport-Signatures/prg"
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
)

func TestRoundTripAllModes(t *testing.T) {
	messages := [][]byte{
		[]byte("Hello, world!"),
		[]byte(""),
		[]byte("a much longer message that certainly spans more than one hash block boundary"),
		{0x00, 0xFF, 0x80, 0x01},
	}

	for _, mode := range Modes {
		pub, priv, err := GenerateKeyPair(mode)
		if err != nil {
			t.Fatalf("[%s] GenerateKeyPair failed: %v", mode, err)
		}

		for _, msg := range messages {
			sig, err := Sign(msg, priv)
			if err != nil {
				t.Fatalf("[%s] Sign failed: %v", mode, err)
			}
			valid, err := Verify(msg, pub, sig)
			if err != nil {
				t.Fatalf("[%s] Verify failed: %v", mode, err)
			}
			if !valid {
				t.Errorf("[%s] Valid signature failed verification for %q", mode, msg)
			}
		}
	}
}

func TestNaiveScenario(t *testing.T) {
	message := []byte("Hello, world!")

	pub, priv, err := GenerateKeyPair(ModeNaive)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	sig, err := Sign(message, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if sig.Revealed == nil {
		t.Fatal("Naive signature should carry revealed preimages")
	}
	if len(sig.Revealed.Bytes()) != primitives.SignatureSize {
		t.Fatalf("Expected %d signature bytes (256 elements), got %d",
			primitives.SignatureSize, len(sig.Revealed.Bytes()))
	}

	valid, err := Verify(message, pub, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("Valid signature failed verification")
	}

	// Flipping any single bit of any element must break verification
	for i := 0; i < primitives.KeyBits; i++ {
		byteIdx := i % primitives.PreimageSize
		mask := byte(1) << (i % 8)
		sig.Revealed.Preimages[i][byteIdx] ^= mask

		valid, err := Verify(message, pub, sig)
		if err != nil {
			t.Fatalf("Verify failed at position %d: %v", i, err)
		}
		if valid {
			t.Errorf("Signature with flipped bit at position %d should not verify", i)
		}

		sig.Revealed.Preimages[i][byteIdx] ^= mask
	}

	// Restored signature verifies again
	valid, err = Verify(message, pub, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("Restored signature should verify")
	}
}

func TestCompactPublicScenario(t *testing.T) {
	message := []byte("Hello, world!")

	pub, priv, err := GenerateKeyPair(ModeCompactPublic)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	if pub.Elements != nil {
		t.Fatal("Compact-public key should not carry an element table")
	}

	sig, err := Sign(message, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if sig.Paired == nil {
		t.Fatal("Compact-public signature should carry branch pairs")
	}
	if len(sig.Paired.Bytes()) != primitives.PairedSignatureSize {
		t.Fatalf("Expected %d signature bytes (512 elements), got %d",
			primitives.PairedSignatureSize, len(sig.Paired.Bytes()))
	}

	// Verification reduces to recomputing the commitment over the promoted
	// leaf sequence and comparing it bit-for-bit against the public key
	digest := primitives.Keccak256(message)
	leaves := sig.Paired.Leaves(digest)
	if len(leaves) != 2*primitives.KeyBits {
		t.Fatalf("Expected %d leaves, got %d", 2*primitives.KeyBits, len(leaves))
	}
	root, err := merkle.Root(leaves)
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if root != pub.Root {
		t.Fatal("Recomputed root should equal the public key")
	}

	valid, err := Verify(message, pub, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("Valid signature failed verification")
	}

	// Tampering with either branch of a pair breaks the commitment
	sig.Paired.Pairs[42][0][5] ^= 0x20
	valid, err = Verify(message, pub, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if valid {
		t.Fatal("Tampered signature should not verify")
	}
}

func TestCompactPrivateDeterminism(t *testing.T) {
	message := []byte("expand me twice")

	pub, priv, err := GenerateKeyPair(ModeCompactPrivate)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	if priv.Seed == nil {
		t.Fatal("Compact-private key should carry a seed")
	}
	if priv.Elements != nil {
		t.Fatal("Compact-private key should not carry an element table")
	}

	sig1, err := Sign(message, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	sig2, err := Sign(message, priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !bytes.Equal(sig1.Revealed.Bytes(), sig2.Revealed.Bytes()) {
		t.Error("Signing with the same seed should be reproducible")
	}

	valid, err := Verify(message, pub, sig1)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Error("Valid signature failed verification")
	}

	// Re-deriving the public key from the seed reproduces it exactly
	derived, err := DerivePublicKey(priv)
	if err != nil {
		t.Fatalf("DerivePublicKey failed: %v", err)
	}
	if derived.Elements.Hash() != pub.Elements.Hash() {
		t.Error("Re-derived public key should match the generated one")
	}
}

func TestCompactPrivateSeedReconstruction(t *testing.T) {
	message := []byte("stored as 48 bytes")

	pub, priv, err := GenerateKeyPair(ModeCompactPrivate)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	// A key rebuilt from the serialized seed signs identically
	restored, err := prg.SeedFromBytes(priv.Seed.Key[:], priv.Seed.Nonce[:])
	if err != nil {
		t.Fatalf("SeedFromBytes failed: %v", err)
	}
	priv2 := &PrivateKey{Mode: ModeCompactPrivate, Seed: restored}

	sig, err := Sign(message, priv2)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	valid, err := Verify(message, pub, sig)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Error("Signature from the restored seed should verify")
	}
}

func TestDerivePublicKey(t *testing.T) {
	for _, mode := range Modes {
		pub, priv, err := GenerateKeyPair(mode)
		if err != nil {
			t.Fatalf("[%s] GenerateKeyPair failed: %v", mode, err)
		}

		derived, err := DerivePublicKey(priv)
		if err != nil {
			t.Fatalf("[%s] DerivePublicKey failed: %v", mode, err)
		}
		if derived.Mode != mode {
			t.Errorf("[%s] Derived key has mode %s", mode, derived.Mode)
		}

		switch mode {
		case ModeCompactPublic:
			if derived.Root != pub.Root {
				t.Errorf("[%s] Derived root should match", mode)
			}
		default:
			if derived.Elements.Hash() != pub.Elements.Hash() {
				t.Errorf("[%s] Derived table should match", mode)
			}
		}
	}
}

func TestCrossMessage(t *testing.T) {
	m1 := []byte("pay alice 10")
	m2 := []byte("pay mallory 10000")

	for _, mode := range Modes {
		pub, priv, err := GenerateKeyPair(mode)
		if err != nil {
			t.Fatalf("[%s] GenerateKeyPair failed: %v", mode, err)
		}

		sig, err := Sign(m1, priv)
		if err != nil {
			t.Fatalf("[%s] Sign failed: %v", mode, err)
		}

		valid, err := Verify(m2, pub, sig)
		if err != nil {
			t.Fatalf("[%s] Verify failed: %v", mode, err)
		}
		if valid {
			t.Errorf("[%s] Signature for m1 should not verify m2", mode)
		}
	}
}

func TestRandomForgery(t *testing.T) {
	message := []byte("forge me")
	const trials = 8

	for _, mode := range Modes {
		pub, _, err := GenerateKeyPair(mode)
		if err != nil {
			t.Fatalf("[%s] GenerateKeyPair failed: %v", mode, err)
		}

		for trial := 0; trial < trials; trial++ {
			forged := &Signature{Mode: mode}
			switch mode {
			case ModeCompactPublic:
				forged.Paired = &primitives.PairedSignature{}
				for i := range forged.Paired.Pairs {
					for bit := range forged.Paired.Pairs[i] {
						rand.Read(forged.Paired.Pairs[i][bit][:])
					}
				}
			default:
				forged.Revealed = &primitives.Signature{}
				for i := range forged.Revealed.Preimages {
					rand.Read(forged.Revealed.Preimages[i][:])
				}
			}

			valid, err := Verify(message, pub, forged)
			if err != nil {
				t.Fatalf("[%s] Verify failed: %v", mode, err)
			}
			if valid {
				t.Errorf("[%s] Random signature verified on trial %d", mode, trial)
			}
		}
	}
}

func TestVerifyStructuralErrors(t *testing.T) {
	pub, priv, err := GenerateKeyPair(ModeNaive)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	sig, err := Sign([]byte("msg"), priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := Verify([]byte("msg"), nil, sig); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for nil key, got %v", err)
	}
	if _, err := Verify([]byte("msg"), pub, nil); err != ErrMalformedSignature {
		t.Errorf("Expected ErrMalformedSignature for nil signature, got %v", err)
	}

	// Mode mismatch between key and signature
	cpub, cpriv, err := GenerateKeyPair(ModeCompactPublic)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	csig, err := Sign([]byte("msg"), cpriv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := Verify([]byte("msg"), pub, csig); err != ErrMalformedSignature {
		t.Errorf("Expected ErrMalformedSignature for mode mismatch, got %v", err)
	}
	if _, err := Verify([]byte("msg"), cpub, sig); err != ErrMalformedSignature {
		t.Errorf("Expected ErrMalformedSignature for mode mismatch, got %v", err)
	}

	// Key carrying the wrong representation for its mode
	badPub := &PublicKey{Mode: ModeNaive}
	if _, err := Verify([]byte("msg"), badPub, sig); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for missing table, got %v", err)
	}
	badPub2 := &PublicKey{Mode: ModeCompactPublic, Elements: pub.Elements, Root: cpub.Root}
	if _, err := Verify([]byte("msg"), badPub2, csig); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for stray table, got %v", err)
	}

	// Signature carrying the wrong representation for its mode
	badSig := &Signature{Mode: ModeNaive, Revealed: sig.Revealed, Paired: csig.Paired}
	if _, err := Verify([]byte("msg"), pub, badSig); err != ErrMalformedSignature {
		t.Errorf("Expected ErrMalformedSignature for double payload, got %v", err)
	}
	emptySig := &Signature{Mode: ModeCompactPublic}
	if _, err := Verify([]byte("msg"), cpub, emptySig); err != ErrMalformedSignature {
		t.Errorf("Expected ErrMalformedSignature for empty payload, got %v", err)
	}
}

func TestSignStructuralErrors(t *testing.T) {
	if _, err := Sign([]byte("msg"), nil); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for nil key, got %v", err)
	}

	if _, err := Sign([]byte("msg"), &PrivateKey{Mode: ModeNaive}); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for missing table, got %v", err)
	}
	if _, err := Sign([]byte("msg"), &PrivateKey{Mode: ModeCompactPrivate}); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for missing seed, got %v", err)
	}

	seed, err := prg.NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	both := &PrivateKey{Mode: ModeNaive, Elements: &primitives.PrivateKey{}, Seed: seed}
	if _, err := Sign([]byte("msg"), both); err != ErrMalformedKey {
		t.Errorf("Expected ErrMalformedKey for double representation, got %v", err)
	}

	if _, err := Sign([]byte("msg"), &PrivateKey{Mode: Mode(42), Elements: &primitives.PrivateKey{}}); err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestGenerateKeyPairUnknownMode(t *testing.T) {
	if _, _, err := GenerateKeyPair(Mode(0)); err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
	if _, _, err := GenerateKeyPair(Mode(99)); err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestModeNames(t *testing.T) {
	for _, mode := range Modes {
		parsed, err := ParseMode(mode.String())
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", mode.String(), err)
		}
		if parsed != mode {
			t.Errorf("ParseMode(%q) = %v, want %v", mode.String(), parsed, mode)
		}
	}

	if _, err := ParseMode("merkle-madness"); err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestPrivateKeyWipe(t *testing.T) {
	for _, mode := range Modes {
		_, priv, err := GenerateKeyPair(mode)
		if err != nil {
			t.Fatalf("[%s] GenerateKeyPair failed: %v", mode, err)
		}

		priv.Wipe()
		if priv.Seed != nil && *priv.Seed != (prg.Seed{}) {
			t.Errorf("[%s] Seed not zeroed", mode)
		}
		if priv.Elements != nil {
			var zero [primitives.PreimageSize]byte
			if priv.Elements.Preimages[0][0] != zero || priv.Elements.Preimages[primitives.KeyBits-1][1] != zero {
				t.Errorf("[%s] Preimage table not zeroed", mode)
			}
		}
	}
}

func BenchmarkGenerateKeyPairNaive(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = GenerateKeyPair(ModeNaive)
	}
}

func BenchmarkGenerateKeyPairCompactPrivate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = GenerateKeyPair(ModeCompactPrivate)
	}
}

func BenchmarkGenerateKeyPairCompactPublic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = GenerateKeyPair(ModeCompactPublic)
	}
}

func BenchmarkSignCompactPrivate(b *testing.B) {
	_, priv, _ := GenerateKeyPair(ModeCompactPrivate)
	message := []byte("Benchmark")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Sign(message, priv)
	}
}

func BenchmarkVerifyCompactPublic(b *testing.B) {
	pub, priv, _ := GenerateKeyPair(ModeCompactPublic)
	message := []byte("Benchmark")
	sig, _ := Sign(message, priv)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Verify(message, pub, sig)
	}
}

// Fuzz round-trips across every mode for arbitrary messages
func FuzzSignVerify(f *testing.F) {
	f.Add([]byte("seed1"))
	f.Add([]byte("seed2"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, mode := range Modes {
			pub, priv, err := GenerateKeyPair(mode)
			if err != nil {
				return
			}
			sig, err := Sign(data, priv)
			if err != nil {
				t.Fatalf("[%s] Sign failed: %v", mode, err)
			}
			valid, err := Verify(data, pub, sig)
			if err != nil {
				t.Fatalf("[%s] Verify failed: %v", mode, err)
			}
			if !valid {
				t.Errorf("[%s] Valid signature failed verification", mode)
			}
		}
	})
}
