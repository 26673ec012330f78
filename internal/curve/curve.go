// Package curve provides the Curve25519/Ed25519 scalar and point helpers
// shared by the keys and ringsig packages, built on top of
// filippo.io/edwards25519.
package curve

import (
	"filippo.io/edwards25519"
)

// ScalarSize is the size of a scalar or compressed point encoding, in bytes.
const ScalarSize = 32

// groupOrderBytes is the little-endian bit pattern of the prime order of the
// Ed25519 basepoint subgroup,
//
//	ℓ = 2^252 + 27742317777372353535851937790883648493
//
// in the same 32-byte little-endian layout RFC 8032 and libsodium's ref10
// use for it. Unlike every value `*edwards25519.Scalar` can hold, ℓ itself
// cannot be represented as a Scalar (it is ≡ 0 mod ℓ), so torsion checking
// works directly against this literal bit pattern instead.
var groupOrderBytes = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// MaskBits clears only bit 7 of the last byte of data and returns the
// result; it performs no modular reduction. This is the "bits-of"
// representation spec.md §4.6 requires for every hash preimage and proof
// byte string derived from a scalar: the upstream Rust implementation's
// `Scalar::from_bits` stores exactly these bytes and `as_bytes()` returns
// them unchanged, so this is what must be hashed or written to the wire,
// never the canonical reduced encoding a `*edwards25519.Scalar` carries.
func MaskBits(data *[32]byte) [32]byte {
	out := *data
	out[31] &= 0x7f
	return out
}

// Clamp applies the RFC 8032 Ed25519 scalar-clamping operation to b in
// place: clear the low three bits of byte 0, clear bit 7 of byte 31, and
// set bit 6 of byte 31.
func Clamp(b *[32]byte) {
	b[0] &= 0xf8
	b[31] &= 0x7f
	b[31] |= 0x40
}

// FromBits interprets data as a little-endian integer with only its
// top bit (bit 7 of the last byte) cleared, and reduces the result modulo
// the group order ℓ, returning a Scalar ready for point/scalar arithmetic.
// Reduction mod ℓ commutes with the scalar multiplications and additions
// this module performs afterwards, so the resulting Scalar is the correct
// arithmetic operand even though its own canonical Bytes() encoding is NOT
// the value that should be hashed or written to a proof — callers that
// need the hash-preimage or wire representation must use MaskBits instead
// and keep the raw bytes around separately.
func FromBits(data *[32]byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:32], data[:])
	wide[31] &= 0x7f

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// SetUniformBytes only errors on wrong-length input, which
		// cannot happen here.
		panic("curve: SetUniformBytes: " + err.Error())
	}
	return s
}

// IsTorsionFree reports whether p lies in the prime-order subgroup
// generated by the Ed25519 basepoint, i.e. whether [ℓ]p is the identity.
// This is safe to evaluate in variable time: it is only ever applied to
// public key material, never to a value derived from a secret.
func IsTorsionFree(p *edwards25519.Point) bool {
	acc := edwards25519.NewIdentityPoint()
	base := edwards25519.NewIdentityPoint().Set(p)

	for i := 0; i < 256; i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		if groupOrderBytes[byteIdx]&(1<<bitIdx) != 0 {
			acc.Add(acc, base)
		}
		base.Add(base, base)
	}

	return acc.Equal(edwards25519.NewIdentityPoint()) == 1
}
