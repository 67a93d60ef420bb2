// Lamport CLI - Hash-Based One-Time Signatures
//
// Usage:
//   lamport keygen [mode]            Generate a key pair
//   lamport sign [mode] [message]    Sign a message with a fresh key
//   lamport verify [mode] [message]  Round-trip a verification request
//   lamport threshold <n>            Demo n-party split signing
//   lamport benchmark                Compare the three modes
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
	"github.com/Blake-Haydon/Lamport-Signatures/scheme"
	"github.com/Blake-Haydon/Lamport-Signatures/threshold"
	"github.com/Blake-Haydon/Lamport-Signatures/wire"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "keygen":
		cmdKeygen()
	case "sign":
		cmdSign()
	case "verify":
		cmdVerify()
	case "threshold":
		cmdThreshold()
	case "benchmark":
		cmdBenchmark()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Lamport OTS - Hash-Based One-Time Signatures

Usage:
  lamport <command> [arguments]

Commands:
  keygen [mode]             Generate a key pair
  sign [mode] [message]     Sign a message with a fresh key
  verify [mode] [message]   Round-trip a self-contained verification request
  threshold <n>             Demo n-party split signing
  benchmark                 Compare the three modes
  help                      Show this help

Modes:
  naive             full-size keys and signatures (default)
  compact-private   48-byte private key, expanded on demand
  compact-public    32-byte public key, double-size signatures

Examples:
  lamport keygen compact-public
  lamport sign naive "hello world"
  lamport threshold 3
  lamport benchmark`)
}

func parseMode() scheme.Mode {
	if len(os.Args) < 3 {
		return scheme.ModeNaive
	}
	mode, err := scheme.ParseMode(os.Args[2])
	if err != nil {
		fmt.Printf("Unknown mode %q. Using default: naive\n", os.Args[2])
		return scheme.ModeNaive
	}
	return mode
}

func parseMessage(fallback string) []byte {
	if len(os.Args) > 3 {
		return []byte(strings.Join(os.Args[3:], " "))
	}
	return []byte(fallback)
}

func cmdKeygen() {
	mode := parseMode()
	fmt.Printf("Generating %s key pair...\n", mode)

	start := time.Now()
	pub, _, err := scheme.GenerateKeyPair(mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nKey generated in %v\n", elapsed)
	switch mode {
	case scheme.ModeCompactPublic:
		fmt.Printf("\nPublic Key (Merkle root): 0x%s\n", hex.EncodeToString(pub.Root[:]))
	default:
		pkh := pub.Elements.Hash()
		fmt.Printf("\nPublic Key Hash (PKH): 0x%s\n", hex.EncodeToString(pkh[:]))
	}

	pubSize, _ := wire.PublicKeyPayloadSize(mode)
	privSize, _ := wire.PrivateKeyPayloadSize(mode)
	sigSize, _ := wire.SignaturePayloadSize(mode)
	fmt.Printf("Public Key Size:  %d bytes\n", pubSize)
	fmt.Printf("Private Key Size: %d bytes\n", privSize)
	fmt.Printf("Signature Size:   %d bytes\n", sigSize)
	fmt.Printf("\n⚠️  WARNING: This key can only be used ONCE!\n")
}

func cmdSign() {
	mode := parseMode()
	message := parseMessage("Demo message")

	fmt.Printf("Signing with a fresh %s key...\n", mode)
	pub, priv, err := scheme.GenerateKeyPair(mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	sig, err := scheme.Sign(message, priv)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	digest := primitives.Keccak256(message)
	encoded, err := wire.EncodeSignature(sig)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	valid, err := scheme.Verify(message, pub, sig)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMessage digest: 0x%s\n", hex.EncodeToString(digest[:]))
	fmt.Printf("Signed in %v\n", elapsed)
	fmt.Printf("Encoded signature: %d bytes (1-byte tag + payload)\n", len(encoded))
	fmt.Printf("Verification: %v\n", valid)

	priv.Wipe()
	fmt.Printf("\n⚠️  WARNING: A key signs exactly ONE message. This key is now spent.\n")
}

func cmdVerify() {
	mode := parseMode()
	message := parseMessage("Wire round-trip demo")

	fmt.Printf("Building a self-contained %s verification request...\n", mode)
	pub, priv, err := scheme.GenerateKeyPair(mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	sig, err := scheme.Sign(message, priv)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	request, err := wire.EncodeVerifyRequest(message, pub, sig)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Request size: %d bytes\n", len(request))

	start := time.Now()
	valid, err := wire.VerifyRequest(request)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Verification: %v (in %v)\n", valid, time.Since(start))

	// Corrupt one signature byte and verify again
	request[wire.TagSize+wire.MessageLenSize+len(message)] ^= 0x01
	tampered, err := wire.VerifyRequest(request)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("After tampering one byte: %v\n", tampered)
}

func cmdThreshold() {
	n := 3
	if len(os.Args) > 2 {
		var err error
		n, err = strconv.Atoi(os.Args[2])
		if err != nil || n < 2 {
			fmt.Println("Invalid party count. Using default: 3")
			n = 3
		}
	}

	fmt.Printf("Demo: %d-party split Lamport signing\n\n", n)

	fmt.Printf("1. Splitting a fresh key into %d shares...\n", n)
	start := time.Now()
	shares, pub, err := threshold.GenerateShares(n)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   Done in %v\n", time.Since(start))

	pkh := pub.Hash()
	fmt.Printf("   PKH: 0x%s\n\n", hex.EncodeToString(pkh[:]))

	digest := primitives.Keccak256([]byte("transfer 10 coins to carol"))
	fmt.Printf("2. Digest to sign: 0x%s...\n\n", hex.EncodeToString(digest[:8]))

	config, err := threshold.NewConfig(n, "coordinator")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	coordinator := threshold.NewCoordinator(config, pub, digest)

	fmt.Printf("3. Commitment phase: every party commits to the digest...\n")
	for _, share := range shares {
		ready, err := coordinator.AddCommitment(threshold.NewDigestCommitment(share.PartyID, digest))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("   %s committed\n", share.PartyID)
		if ready {
			fmt.Printf("   -> All parties committed, revealing partials\n")
		}
	}

	fmt.Printf("\n4. Reveal phase: every party reveals its partial...\n")
	start = time.Now()
	var finalSig *primitives.Signature
	for _, share := range shares {
		sig, err := coordinator.AddPartial(threshold.CreatePartialSignature(share, digest))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("   %s revealed\n", share.PartyID)
		if sig != nil {
			finalSig = sig
			fmt.Printf("   -> Signature complete!\n")
		}
	}
	signTime := time.Since(start)

	fmt.Printf("\n5. Verifying aggregated signature...\n")
	start = time.Now()
	valid := primitives.Verify(pub, digest, finalSig)
	verifyTime := time.Since(start)

	fmt.Printf("   Valid: %v\n", valid)
	fmt.Printf("\nTiming:\n")
	fmt.Printf("   Reveal and aggregate: %v\n", signTime)
	fmt.Printf("   Verify: %v\n", verifyTime)
}

func cmdBenchmark() {
	fmt.Println("Lamport OTS Benchmarks")
	fmt.Println("======================")

	const iterations = 100
	message := []byte("Benchmark message")

	for _, mode := range scheme.Modes {
		fmt.Printf("\n[%s]\n", mode)

		var pub *scheme.PublicKey
		var priv *scheme.PrivateKey
		var err error

		start := time.Now()
		for i := 0; i < iterations; i++ {
			pub, priv, err = scheme.GenerateKeyPair(mode)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("KeyGen:  %v per operation\n", time.Since(start)/time.Duration(iterations))

		var sig *scheme.Signature
		start = time.Now()
		for i := 0; i < iterations; i++ {
			sig, err = scheme.Sign(message, priv)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sign:    %v per operation\n", time.Since(start)/time.Duration(iterations))

		start = time.Now()
		for i := 0; i < iterations; i++ {
			_, _ = scheme.Verify(message, pub, sig)
		}
		fmt.Printf("Verify:  %v per operation\n", time.Since(start)/time.Duration(iterations))

		pubSize, _ := wire.PublicKeyPayloadSize(mode)
		privSize, _ := wire.PrivateKeyPayloadSize(mode)
		sigSize, _ := wire.SignaturePayloadSize(mode)
		fmt.Printf("Sizes:   pk %d B, sk %d B, sig %d B\n", pubSize, privSize, sigSize)
	}

	// Split signing: time partial creation plus aggregation for 3 parties
	shares, pub, err := threshold.GenerateShares(3)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	digest := primitives.Keccak256(message)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		partials := make([]*threshold.PartialSignature, len(shares))
		for j, share := range shares {
			partials[j] = threshold.CreatePartialSignature(share, digest)
		}
		_, _ = threshold.Aggregate(partials)
	}
	fmt.Printf("\nThreshold: %v per operation (3 parties: partials + aggregate)\n",
		time.Since(start)/time.Duration(iterations))

	partials := make([]*threshold.PartialSignature, len(shares))
	for j, share := range shares {
		partials[j] = threshold.CreatePartialSignature(share, digest)
	}
	sig, err := threshold.Aggregate(partials)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Threshold aggregate verifies: %v\n", primitives.Verify(pub, digest, sig))
}
