// Package keys implements Ed25519 public/secret key types and the SSH
// on-disk formats they are parsed from: the single-line authorized_keys
// public-key grammar and the unencrypted OpenSSH v1 private-key container.
package keys

import (
	"crypto/sha512"
	"fmt"
	"runtime"
	"strings"

	"filippo.io/edwards25519"

	"github.com/DavidVorick/CredibleConfessions/internal/curve"
	"github.com/DavidVorick/CredibleConfessions/internal/disalloweq"
)

// Size is the length in bytes of a serialized public key, a secret key
// scalar, and a secret key seed.
const Size = 32

// PublicKey is an Ed25519 point guaranteed to lie in the prime-order
// subgroup. The zero value is not valid; construct via Parse,
// ParsePublicKeyLine, or NewPublicKeyFromPoint.
type PublicKey struct {
	_ disalloweq.DisallowEqual

	point *edwards25519.Point
}

// Bytes returns the compressed Edwards-y encoding of the key.
func (k *PublicKey) Bytes() []byte {
	return k.point.Bytes()
}

// Point returns the underlying curve point. The caller must not mutate it.
func (k *PublicKey) Point() *edwards25519.Point {
	return k.point
}

// Equal reports whether k and other encode the same point.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.point.Equal(other.point) == 1
}

// Parse decodes a 32-byte compressed Edwards-y point and checks that it is
// torsion-free. It returns ErrWrongKeyLength if data is not 32 bytes,
// ErrInvalidKey if it does not decompress to a valid point, and
// ErrTorsionKey if the point has a nonzero torsion component.
func Parse(data []byte) (*PublicKey, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrWrongKeyLength, Size, len(data))
	}

	p, err := edwards25519.NewIdentityPoint().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	if !curve.IsTorsionFree(p) {
		return nil, ErrTorsionKey
	}

	return &PublicKey{point: p}, nil
}

// NewPublicKeyFromPoint wraps an already-validated point as a PublicKey
// without re-checking torsion freedom; used internally once a scalar
// multiplication by the basepoint is known to land in the prime-order
// subgroup.
func NewPublicKeyFromPoint(p *edwards25519.Point) *PublicKey {
	return &PublicKey{point: edwards25519.NewIdentityPoint().Set(p)}
}

// ParsePublicKeyLine parses a single authorized_keys-style line:
// `<keytype> <radix64-blob> [comment]`. The keytype token must contain the
// substring "ssh-ed25519". Blank lines return ErrEmptyKey; a keytype with
// no blob returns ErrNoKey.
func ParsePublicKeyLine(line string) (*PublicKey, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyKey
	}
	if !strings.Contains(fields[0], "ssh-ed25519") {
		return nil, ErrWrongKeyType
	}
	if len(fields) < 2 {
		return nil, ErrNoKey
	}

	return parsePublicKeyArmor(fields[1])
}

// IsAcceptablePublicKeyLine reports whether line parses as a valid,
// torsion-free public key line.
func IsAcceptablePublicKeyLine(line string) bool {
	_, err := ParsePublicKeyLine(line)
	return err == nil
}

// SecretKey is an Ed25519 scalar in the prime-order subgroup's scalar
// field. Immutable after construction. rawBytes holds the "bits-of"
// representation (top bit of byte 31 cleared, no modular reduction) that
// spec.md §4.6 requires as the hash preimage and proof byte string for
// this key; scalar is the same value canonically reduced mod ℓ, kept
// alongside for point/scalar arithmetic only. seed additionally holds the
// raw seed (when derived from one) purely so Zeroize has something to
// scrub.
type SecretKey struct {
	_ disalloweq.DisallowEqual

	scalar   *edwards25519.Scalar
	rawBytes [32]byte
	seed     []byte // non-nil only when derived from an OpenSSH seed
}

// FromBytes builds a SecretKey directly from 32 raw bytes, interpreted via
// the non-canonical "bits-of" reduction (see internal/curve.MaskBits), with
// no SHA-512 hashing or clamping. This is the test/fixture path described
// by scenario 1 of the testable-properties list; real SSH-derived keys go
// through ParsePrivateKeyArmor instead.
func FromBytes(data []byte) (*SecretKey, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrWrongKeyLength, Size, len(data))
	}
	var arr [32]byte
	copy(arr[:], data)

	return &SecretKey{scalar: curve.FromBits(&arr), rawBytes: curve.MaskBits(&arr)}, nil
}

// Scalar returns the underlying scalar. The caller must not mutate it.
func (k *SecretKey) Scalar() *edwards25519.Scalar {
	return k.scalar
}

// PublicKey derives the public key s*G corresponding to k.
func (k *SecretKey) PublicKey() *PublicKey {
	p := edwards25519.NewIdentityPoint().ScalarBaseMult(k.scalar)
	return NewPublicKeyFromPoint(p)
}

// Bytes returns the "bits-of" byte representation of the underlying
// scalar: bit 7 of byte 31 cleared, otherwise unreduced. This is the exact
// value used as a hash preimage throughout this module (see
// internal/curve.MaskBits) and is deliberately NOT the canonical
// mod-ℓ encoding, which would differ for almost every real key.
func (k *SecretKey) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, k.rawBytes[:])
	return out
}

// Zeroize overwrites the seed bytes (if present), the cached raw bytes,
// and the cached scalar encoding, on a best-effort basis: Go offers no
// hard guarantee that no other copy remains (the garbage collector may
// have relocated or copied the backing array before Zeroize runs), but
// this follows the scrub-then-keep-alive idiom used elsewhere in the
// ecosystem for secret key material.
func (k *SecretKey) Zeroize() {
	if k.seed != nil {
		secureZero(k.seed)
	}
	secureZero(k.rawBytes[:])
	k.scalar.Set(edwards25519.NewScalar())
}

func secureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// deriveFromSeed implements the OpenSSH clamp-and-derive path: SHA-512 the
// 32-byte raw seed, clamp the low 32 bytes per RFC 8032, and use the
// clamped bytes both as the scalar (reduced mod ℓ, for arithmetic) and as
// the key's "bits-of" byte representation (unreduced, for hashing). The
// high 32 bytes of the hash (SSH's per-signature nonce seed) are
// discarded; this scheme has no use for them.
func deriveFromSeed(seed []byte) *SecretKey {
	h := sha512.Sum512(seed)

	var clamped [32]byte
	copy(clamped[:], h[:32])
	curve.Clamp(&clamped)

	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(clamped[:])
	if err != nil {
		panic("keys: SetBytesWithClamping: " + err.Error())
	}

	seedCopy := make([]byte, len(seed))
	copy(seedCopy, seed)

	return &SecretKey{scalar: scalar, rawBytes: clamped, seed: seedCopy}
}

// IsSecretKeyArmor reports whether armor parses as a well-formed
// unencrypted OpenSSH v1 private-key container.
func IsSecretKeyArmor(armor string) bool {
	_, err := ParsePrivateKeyArmor(armor)
	return err == nil
}
