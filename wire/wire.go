// Package wire provides fixed-layout binary codecs for keys, signatures,
// and self-contained verification requests.
//
// Every encoding starts with a one-byte mode tag so decoders can size the
// rest of the payload without negotiation. Payload sizes by mode:
//
//   - public key: 16384 bytes (hash table) for naive and compact-private,
//     32 bytes (Merkle root) for compact-public
//   - private key: 16384 bytes (preimage table) for naive and
//     compact-public, 48 bytes (seed) for compact-private
//   - signature: 8192 bytes (revealed elements) for naive and
//     compact-private, 16384 bytes (branch pairs) for compact-public
//
// A verification request bundles everything a verifier needs:
//
//	[0:1]    mode tag
//	[1:5]    message length (big-endian uint32)
//	[5:5+n]  message
//	then the signature payload, then the public key payload
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/Blake-Haydon/Lamport-Signatures/prg"
	"github.com/Blake-Haydon/Lamport-Signatures/primitives"
	"github.com/Blake-Haydon/Lamport-Signatures/scheme"
)

const (
	// TagSize is the size of the leading mode tag
	TagSize = 1

	// MessageLenSize is the size of the message length prefix
	MessageLenSize = 4

	// MaxMessageSize is the largest message a request can carry
	MaxMessageSize = 1<<32 - 1
)

// ErrInvalidInput indicates data that does not parse as a valid encoding
var ErrInvalidInput = errors.New("wire: invalid input")

// PublicKeyPayloadSize returns the public key payload size for a mode.
func PublicKeyPayloadSize(mode scheme.Mode) (int, error) {
	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		return primitives.PublicKeySize, nil
	case scheme.ModeCompactPublic:
		return primitives.HashSize, nil
	default:
		return 0, scheme.ErrUnknownMode
	}
}

// PrivateKeyPayloadSize returns the private key payload size for a mode.
func PrivateKeyPayloadSize(mode scheme.Mode) (int, error) {
	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPublic:
		return primitives.PrivateKeySize, nil
	case scheme.ModeCompactPrivate:
		return prg.SeedSize, nil
	default:
		return 0, scheme.ErrUnknownMode
	}
}

// SignaturePayloadSize returns the signature payload size for a mode.
func SignaturePayloadSize(mode scheme.Mode) (int, error) {
	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		return primitives.SignatureSize, nil
	case scheme.ModeCompactPublic:
		return primitives.PairedSignatureSize, nil
	default:
		return 0, scheme.ErrUnknownMode
	}
}

// EncodePublicKey encodes a public key as a tagged payload.
func EncodePublicKey(pub *scheme.PublicKey) ([]byte, error) {
	payload, err := publicKeyPayload(pub)
	if err != nil {
		return nil, err
	}
	out := make([]byte, TagSize+len(payload))
	out[0] = byte(pub.Mode)
	copy(out[TagSize:], payload)
	return out, nil
}

// DecodePublicKey decodes a tagged public key.
func DecodePublicKey(data []byte) (*scheme.PublicKey, error) {
	if len(data) < TagSize {
		return nil, ErrInvalidInput
	}
	return decodePublicKeyPayload(scheme.Mode(data[0]), data[TagSize:])
}

// EncodePrivateKey encodes a private key as a tagged payload.
func EncodePrivateKey(priv *scheme.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, scheme.ErrMalformedKey
	}

	var payload []byte
	switch priv.Mode {
	case scheme.ModeNaive, scheme.ModeCompactPublic:
		if priv.Elements == nil || priv.Seed != nil {
			return nil, scheme.ErrMalformedKey
		}
		payload = priv.Elements.Bytes()
	case scheme.ModeCompactPrivate:
		if priv.Seed == nil || priv.Elements != nil {
			return nil, scheme.ErrMalformedKey
		}
		payload = priv.Seed.Bytes()
	default:
		return nil, scheme.ErrUnknownMode
	}

	out := make([]byte, TagSize+len(payload))
	out[0] = byte(priv.Mode)
	copy(out[TagSize:], payload)
	return out, nil
}

// DecodePrivateKey decodes a tagged private key.
func DecodePrivateKey(data []byte) (*scheme.PrivateKey, error) {
	if len(data) < TagSize {
		return nil, ErrInvalidInput
	}
	mode := scheme.Mode(data[0])
	payload := data[TagSize:]

	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPublic:
		if len(payload) != primitives.PrivateKeySize {
			return nil, ErrInvalidInput
		}
		elements := &primitives.PrivateKey{}
		if err := elements.FromBytes(payload); err != nil {
			return nil, ErrInvalidInput
		}
		return &scheme.PrivateKey{Mode: mode, Elements: elements}, nil

	case scheme.ModeCompactPrivate:
		if len(payload) != prg.SeedSize {
			return nil, ErrInvalidInput
		}
		seed := &prg.Seed{}
		if err := seed.FromBytes(payload); err != nil {
			return nil, ErrInvalidInput
		}
		return &scheme.PrivateKey{Mode: mode, Seed: seed}, nil

	default:
		return nil, ErrInvalidInput
	}
}

// EncodeSignature encodes a signature as a tagged payload.
func EncodeSignature(sig *scheme.Signature) ([]byte, error) {
	payload, err := signaturePayload(sig)
	if err != nil {
		return nil, err
	}
	out := make([]byte, TagSize+len(payload))
	out[0] = byte(sig.Mode)
	copy(out[TagSize:], payload)
	return out, nil
}

// DecodeSignature decodes a tagged signature.
func DecodeSignature(data []byte) (*scheme.Signature, error) {
	if len(data) < TagSize {
		return nil, ErrInvalidInput
	}
	return decodeSignaturePayload(scheme.Mode(data[0]), data[TagSize:])
}

// EncodeVerifyRequest bundles a message, signature, and public key into a
// single self-contained request. The signature and key must share a mode.
func EncodeVerifyRequest(message []byte, pub *scheme.PublicKey, sig *scheme.Signature) ([]byte, error) {
	if pub == nil {
		return nil, scheme.ErrMalformedKey
	}
	if sig == nil || sig.Mode != pub.Mode {
		return nil, scheme.ErrMalformedSignature
	}
	if uint64(len(message)) > MaxMessageSize {
		return nil, ErrInvalidInput
	}

	sigPayload, err := signaturePayload(sig)
	if err != nil {
		return nil, err
	}
	pubPayload, err := publicKeyPayload(pub)
	if err != nil {
		return nil, err
	}

	out := make([]byte, TagSize+MessageLenSize+len(message)+len(sigPayload)+len(pubPayload))
	out[0] = byte(pub.Mode)
	binary.BigEndian.PutUint32(out[TagSize:TagSize+MessageLenSize], uint32(len(message)))

	offset := TagSize + MessageLenSize
	copy(out[offset:], message)
	offset += len(message)
	copy(out[offset:], sigPayload)
	offset += len(sigPayload)
	copy(out[offset:], pubPayload)
	return out, nil
}

// DecodeVerifyRequest splits a request back into its message, public key,
// and signature. The total length must match the mode's layout exactly.
func DecodeVerifyRequest(data []byte) ([]byte, *scheme.PublicKey, *scheme.Signature, error) {
	if len(data) < TagSize+MessageLenSize {
		return nil, nil, nil, ErrInvalidInput
	}
	mode := scheme.Mode(data[0])

	sigSize, err := SignaturePayloadSize(mode)
	if err != nil {
		return nil, nil, nil, ErrInvalidInput
	}
	pubSize, err := PublicKeyPayloadSize(mode)
	if err != nil {
		return nil, nil, nil, ErrInvalidInput
	}

	// Layout arithmetic stays in uint64: a length field of 1<<31 or more
	// would wrap a 32-bit int.
	msgLen := binary.BigEndian.Uint32(data[TagSize : TagSize+MessageLenSize])
	if uint64(len(data)) != uint64(TagSize+MessageLenSize+sigSize+pubSize)+uint64(msgLen) {
		return nil, nil, nil, ErrInvalidInput
	}

	offset := TagSize + MessageLenSize
	message := make([]byte, msgLen)
	copy(message, data[offset:offset+len(message)])
	offset += len(message)

	sig, err := decodeSignaturePayload(mode, data[offset:offset+sigSize])
	if err != nil {
		return nil, nil, nil, err
	}
	offset += sigSize

	pub, err := decodePublicKeyPayload(mode, data[offset:offset+pubSize])
	if err != nil {
		return nil, nil, nil, err
	}

	return message, pub, sig, nil
}

// VerifyRequest decodes a request and verifies it in one call.
func VerifyRequest(data []byte) (bool, error) {
	message, pub, sig, err := DecodeVerifyRequest(data)
	if err != nil {
		return false, err
	}
	return scheme.Verify(message, pub, sig)
}

func publicKeyPayload(pub *scheme.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, scheme.ErrMalformedKey
	}
	switch pub.Mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		if pub.Elements == nil {
			return nil, scheme.ErrMalformedKey
		}
		return pub.Elements.Bytes(), nil
	case scheme.ModeCompactPublic:
		if pub.Elements != nil {
			return nil, scheme.ErrMalformedKey
		}
		root := pub.Root
		return root[:], nil
	default:
		return nil, scheme.ErrUnknownMode
	}
}

func decodePublicKeyPayload(mode scheme.Mode, payload []byte) (*scheme.PublicKey, error) {
	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		if len(payload) != primitives.PublicKeySize {
			return nil, ErrInvalidInput
		}
		elements := &primitives.PublicKey{}
		if err := elements.FromBytes(payload); err != nil {
			return nil, ErrInvalidInput
		}
		return &scheme.PublicKey{Mode: mode, Elements: elements}, nil

	case scheme.ModeCompactPublic:
		if len(payload) != primitives.HashSize {
			return nil, ErrInvalidInput
		}
		pub := &scheme.PublicKey{Mode: mode}
		copy(pub.Root[:], payload)
		return pub, nil

	default:
		return nil, ErrInvalidInput
	}
}

func signaturePayload(sig *scheme.Signature) ([]byte, error) {
	if sig == nil {
		return nil, scheme.ErrMalformedSignature
	}
	switch sig.Mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		if sig.Revealed == nil || sig.Paired != nil {
			return nil, scheme.ErrMalformedSignature
		}
		return sig.Revealed.Bytes(), nil
	case scheme.ModeCompactPublic:
		if sig.Paired == nil || sig.Revealed != nil {
			return nil, scheme.ErrMalformedSignature
		}
		return sig.Paired.Bytes(), nil
	default:
		return nil, scheme.ErrUnknownMode
	}
}

func decodeSignaturePayload(mode scheme.Mode, payload []byte) (*scheme.Signature, error) {
	switch mode {
	case scheme.ModeNaive, scheme.ModeCompactPrivate:
		if len(payload) != primitives.SignatureSize {
			return nil, ErrInvalidInput
		}
		revealed := &primitives.Signature{}
		if err := revealed.FromBytes(payload); err != nil {
			return nil, ErrInvalidInput
		}
		return &scheme.Signature{Mode: mode, Revealed: revealed}, nil

	case scheme.ModeCompactPublic:
		if len(payload) != primitives.PairedSignatureSize {
			return nil, ErrInvalidInput
		}
		paired := &primitives.PairedSignature{}
		if err := paired.FromBytes(payload); err != nil {
			return nil, ErrInvalidInput
		}
		return &scheme.Signature{Mode: mode, Paired: paired}, nil

	default:
		return nil, ErrInvalidInput
	}
}
