// Package tagged implements the BIP-340 style tagged-hash domains used to
// separate the three roles SHA-256 plays in the ring signature scheme:
// hashing the public parameters, hashing challenges, and deriving nonces.
//
// Each domain is `SHA256(SHA256(tag) || SHA256(tag) || data)`. Go's
// crypto/sha256 digest implements encoding.BinaryMarshaler, so the
// `SHA256(tag) || SHA256(tag)` prefix is hashed exactly once at package
// init time and its engine state captured; every subsequent New call
// restores that captured state instead of re-hashing the tag.
package tagged

import (
	"crypto/sha256"
	"encoding"
)

const (
	paramsTag    = "CryptoConfessions-1.0/Params"
	challengeTag = "CryptoConfessions-1.0/Challenge"
	nonceTag     = "CryptoConfessions-1.0/Nonce"
)

var (
	paramsMidstate    []byte
	challengeMidstate []byte
	nonceMidstate     []byte
)

func init() {
	paramsMidstate = computeMidstate(paramsTag)
	challengeMidstate = computeMidstate(challengeTag)
	nonceMidstate = computeMidstate(nonceTag)
}

// computeMidstate feeds SHA256(tag) twice into a fresh SHA-256 engine and
// returns the engine's marshaled state, i.e. the precomputed midstate for
// the tagged-hash domain identified by tag.
func computeMidstate(tag string) []byte {
	tagHash := sha256.Sum256([]byte(tag))

	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])

	marshaler, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		panic("tagged: crypto/sha256 digest does not implement encoding.BinaryMarshaler")
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		panic("tagged: MarshalBinary: " + err.Error())
	}
	return state
}

func newFromMidstate(midstate []byte) interface {
	Write([]byte) (int, error)
	Sum([]byte) []byte
} {
	h := sha256.New()
	unmarshaler, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		panic("tagged: crypto/sha256 digest does not implement encoding.BinaryUnmarshaler")
	}
	if err := unmarshaler.UnmarshalBinary(midstate); err != nil {
		panic("tagged: UnmarshalBinary: " + err.Error())
	}
	return h
}

// Hash computes one tagged-hash domain over vals, concatenated in order,
// and returns the 32-byte digest.
func Hash(midstate []byte, vals ...[]byte) [32]byte {
	h := newFromMidstate(midstate)
	for _, v := range vals {
		h.Write(v)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Params computes the Params-domain tagged hash over vals.
func Params(vals ...[]byte) [32]byte {
	return Hash(paramsMidstate, vals...)
}

// Challenge computes the Challenge-domain tagged hash over vals.
func Challenge(vals ...[]byte) [32]byte {
	return Hash(challengeMidstate, vals...)
}

// Nonce computes the Nonce-domain tagged hash over vals.
func Nonce(vals ...[]byte) [32]byte {
	return Hash(nonceMidstate, vals...)
}

// ExpectedMidstate recomputes the feed-and-capture procedure for tag and
// returns its result, for use in tests that check the precomputed
// midstates against the documented tag strings and constants.
func ExpectedMidstate(tag string) []byte {
	return computeMidstate(tag)
}

// Tags exposes the three domain tag strings for tests and documentation.
var Tags = struct {
	Params    string
	Challenge string
	Nonce     string
}{
	Params:    paramsTag,
	Challenge: challengeTag,
	Nonce:     nonceTag,
}
