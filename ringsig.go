// Package ringsig implements an Abe-Ohkubo-Suzuki anonymous ring signature
// over Ed25519: a signer holding one secret key from a known set of public
// keys proves that some member of the set signed a message, without
// revealing which one.
package ringsig

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"filippo.io/edwards25519"

	"github.com/DavidVorick/CredibleConfessions/internal/curve"
	"github.com/DavidVorick/CredibleConfessions/internal/tagged"
	"github.com/DavidVorick/CredibleConfessions/keys"
)

// Sentinel errors for the protocol-level error taxonomy.
var (
	ErrNoPublicKeys       = errors.New("ringsig: no public keys")
	ErrProofWrongLength   = errors.New("ringsig: proof has the wrong length")
	ErrBadProof           = errors.New("ringsig: proof does not verify")
	ErrSecretKeyNotInRing = errors.New("ringsig: secret key did not match any public key")
)

// sortKeys returns a copy of pks sorted lexicographically by 32-byte
// compressed serialization. This is the canonical ring order; both
// Prove and Verify use it so callers may submit keys in any order.
func sortKeys(pks []*keys.PublicKey) []*keys.PublicKey {
	sorted := make([]*keys.PublicKey, len(pks))
	copy(sorted, pks)
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := sorted[i].Bytes(), sorted[j].Bytes()
		for k := range bi {
			if bi[k] != bj[k] {
				return bi[k] < bj[k]
			}
		}
		return false
	})
	return sorted
}

// ParamDigest computes the Params-domain tagged hash binding the sorted
// ring and the message:
//
//	Params( LE32(n) || P_1 || … || P_n || LE64(len(msg)) || msg )
//
// pksSorted must already be in canonical (sorted) order; this is exported
// directly, rather than only reachable inside Prove/Verify, as a
// conformance anchor for interoperating implementations.
func ParamDigest(pksSorted []*keys.PublicKey, message []byte) [32]byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(pksSorted)))

	parts := make([][]byte, 0, len(pksSorted)+3)
	parts = append(parts, lenBuf[:])
	for _, pk := range pksSorted {
		parts = append(parts, pk.Bytes())
	}

	var msgLenBuf [8]byte
	binary.LittleEndian.PutUint64(msgLenBuf[:], uint64(len(message)))
	parts = append(parts, msgLenBuf[:], message)

	return tagged.Params(parts...)
}

// Proof is the raw byte encoding of a ring signature: 32*(n+1) bytes, the
// first 32 being the initial challenge and the rest the per-member
// responses in sorted-ring order.
type Proof []byte

// proofLen returns the expected proof length for a ring of n keys.
func proofLen(n int) int { return 32 * (n + 1) }

// IsProofShaped reports whether proof has the length a ring of numKeys
// members would produce; it does not check cryptographic validity.
func IsProofShaped(proof []byte, numKeys int) bool {
	return len(proof) == proofLen(numKeys)
}

// blockAt returns the raw (unreduced) 32-byte slot block of proof, the
// same bytes Prove wrote as a tagged-hash digest.
func blockAt(proof []byte, block int) [32]byte {
	var arr [32]byte
	copy(arr[:], proof[32*block:32*(block+1)])
	return arr
}

// Verify checks that proof is a valid ring signature over message by some
// member of pks. pks may be supplied in any order.
func Verify(proof []byte, pks []*keys.PublicKey, message []byte) error {
	if len(pks) == 0 {
		return ErrNoPublicKeys
	}
	sorted := sortKeys(pks)

	if len(proof) != proofLen(len(sorted)) {
		return fmt.Errorf("%w: want %d, got %d", ErrProofWrongLength, proofLen(len(sorted)), len(proof))
	}

	params := ParamDigest(sorted, message)

	// e and s are the raw digest bytes Prove wrote to the proof; FromBits
	// reduces them mod ℓ only for the arithmetic below, never to rewrite
	// the bytes themselves.
	e := blockAt(proof, 0)
	for i, pk := range sorted {
		s := blockAt(proof, i+1)

		negE := edwards25519.NewScalar().Negate(curve.FromBits(&e))
		r := edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(negE, pk.Point(), curve.FromBits(&s))

		e = tagged.Challenge(r.Bytes(), params[:])
	}

	if !bytes.Equal(e[:], proof[:32]) {
		return ErrBadProof
	}
	return nil
}

// Prove constructs a ring signature over message using secretKey, whose
// public key must be present in pks. pks may be supplied in any order; the
// returned proof is always laid out against the sorted order.
func Prove(pks []*keys.PublicKey, message []byte, secretKey *keys.SecretKey) (Proof, error) {
	sorted := sortKeys(pks)

	myPub := secretKey.PublicKey()
	myIdx := -1
	for i, pk := range sorted {
		if pk.Equal(myPub) {
			myIdx = i
			break
		}
	}
	if myIdx < 0 {
		return nil, ErrSecretKeyNotInRing
	}

	params := ParamDigest(sorted, message)
	skBytes := secretKey.Bytes()

	n := len(sorted)
	proof := make([]byte, proofLen(n))

	nonceDigest := tagged.Nonce(params[:], skBytes)
	k := curve.FromBits(&nonceDigest)
	r := edwards25519.NewIdentityPoint().ScalarBaseMult(k)

	// Cyclic walk starting just past the signer, closing the loop at
	// myIdx. Deliberately a single linear pass over
	// [myIdx+1, n) ∪ [0, myIdx) rather than two separate functions.
	//
	// The bytes written into proof at each step are the raw tagged-hash
	// digests themselves, never a scalar's canonical encoding: FromBits
	// is used only to get an arithmetic operand for the point
	// multiplication below, matching the upstream Rust implementation's
	// ChallengeHash/NonceHash, which are written to the proof as-is and
	// only converted to a Scalar (via Scalar::from_bits) at the point of
	// use.
	idx := (myIdx + 1) % n
	for steps := 0; steps < n-1; steps++ {
		challengeDigest := tagged.Challenge(r.Bytes(), params[:])
		if idx == 0 {
			copy(proof[0:32], challengeDigest[:])
		}
		e := curve.FromBits(&challengeDigest)

		var idxBuf [8]byte
		binary.BigEndian.PutUint64(idxBuf[:], uint64(idx))
		respDigest := tagged.Nonce(idxBuf[:], params[:], skBytes)
		copy(proof[32*(idx+1):32*(idx+2)], respDigest[:])
		s := curve.FromBits(&respDigest)

		negE := edwards25519.NewScalar().Negate(e)
		r = edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(negE, sorted[idx].Point(), s)

		idx = (idx + 1) % n
	}

	// Close the loop at myIdx: s_my = k + e_my*s.
	challengeDigest := tagged.Challenge(r.Bytes(), params[:])
	if myIdx == 0 {
		copy(proof[0:32], challengeDigest[:])
	}
	eMy := curve.FromBits(&challengeDigest)

	// s_my = k + e_my*s. This is the only secret-dependent scalar
	// arithmetic in the whole construction; MultiplyAdd runs in constant
	// time regardless of operand values, and its result is a genuine
	// arithmetic output rather than a hash digest, so its canonical
	// Bytes() encoding is exactly what belongs in the proof here.
	sMy := edwards25519.NewScalar().MultiplyAdd(eMy, secretKey.Scalar(), k)
	copy(proof[32*(myIdx+1):32*(myIdx+2)], sMy.Bytes())

	return proof, nil
}
