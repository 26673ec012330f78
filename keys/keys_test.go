package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedSecretKeyBytes is scenario 1 / scenario 5's secret key scalar from
// the corpus: SecretKey(0x60, 0xb0, ...).
var fixedSecretKeyBytes = []byte{
	0x60, 0xb0, 0x7c, 0x0a, 0xb3, 0xfc, 0xc3, 0xb0, 0x29, 0x54, 0xd0, 0xee, 0x5c, 0x5b,
	0xdd, 0xe5, 0xa0, 0x7d, 0x1f, 0xd1, 0x4e, 0xf4, 0x29, 0x5f, 0xfe, 0x13, 0xec, 0x00,
	0xdd, 0xc4, 0xa8, 0x5c,
}

func TestFromBytesRoundTrip(t *testing.T) {
	sk, err := FromBytes(fixedSecretKeyBytes)
	require.NoError(t, err)
	require.Len(t, sk.Bytes(), Size)
	require.Equal(t, fixedSecretKeyBytes, sk.Bytes())
}

func TestFromBytesWrongLength(t *testing.T) {
	_, err := FromBytes(fixedSecretKeyBytes[:31])
	require.ErrorIs(t, err, ErrWrongKeyLength)
}

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	_, err := Parse(make([]byte, 31))
	require.ErrorIs(t, err, ErrWrongKeyLength)
}

func TestParsePublicKeyAcceptsDerivedKey(t *testing.T) {
	sk, err := FromBytes(fixedSecretKeyBytes)
	require.NoError(t, err)

	pk := sk.PublicKey()
	decoded, err := Parse(pk.Bytes())
	require.NoError(t, err)
	require.True(t, pk.Equal(decoded))
}

// torsionKeyLine is scenario 6: an authorized_keys line whose point has a
// nonzero torsion component and must be rejected at ingest.
const torsionKeyLine = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAII0PQoSjaDulROj7qwNNsJ1cCa+sqlWsKs3e8nemW9J+"

func TestTorsionKeyRejected(t *testing.T) {
	_, err := ParsePublicKeyLine(torsionKeyLine)
	require.ErrorIs(t, err, ErrTorsionKey)
	require.False(t, IsAcceptablePublicKeyLine(torsionKeyLine))
}

func TestParsePublicKeyLineEmptyAndNoKey(t *testing.T) {
	_, err := ParsePublicKeyLine("")
	require.ErrorIs(t, err, ErrEmptyKey)

	_, err = ParsePublicKeyLine("ssh-ed25519")
	require.ErrorIs(t, err, ErrNoKey)
}

func TestZeroizeClearsScalar(t *testing.T) {
	sk, err := FromBytes(fixedSecretKeyBytes)
	require.NoError(t, err)

	before := sk.Bytes()
	sk.Zeroize()
	after := sk.Bytes()

	require.NotEqual(t, before, after)
}
