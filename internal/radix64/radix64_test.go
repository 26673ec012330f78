package radix64

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeSmallCases(t *testing.T) {
	require.Equal(t, "", Encode(nil))
	require.Equal(t, "eA==", Encode([]byte("x")))
	require.Equal(t, "dGhpcyBpcyBhIHRlc3Qgc2VudGVuY2U=", Encode([]byte("this is a test sentence")))
}

// rfc4880Data is the worked example from RFC 4880 §6.6.
var rfc4880Data = []byte{
	0xc8, 0x38, 0x01, 0x3b, 0x6d, 0x96, 0xc4, 0x11, 0xef, 0xec, 0xef, 0x17, 0xec, 0xef,
	0xe3, 0xca, 0x00, 0x04, 0xce, 0x89, 0x79, 0xea, 0x25, 0x0a, 0x89, 0x79, 0x95, 0xf9,
	0x79, 0xa9, 0x0a, 0xd9, 0xa9, 0xa9, 0x05, 0x0a, 0x89, 0x0a, 0xc5, 0xa9, 0xc9, 0x45,
	0xa9, 0x40, 0xc1, 0xa2, 0xfc, 0xd2, 0xbc, 0x14, 0x85, 0x8c, 0xd4, 0xa2, 0x54, 0x7b,
	0x2e, 0x00,
}

const rfc4880Armor = "yDgBO22WxBHv7O8X7O/jygAEzol56iUKiXmV+XmpCtmpqQUKiQrFqclFqU" +
	"DBovzSvBSFjNSiVHsu\nAA=="

func TestRFC4880Vector(t *testing.T) {
	require.Equal(t, rfc4880Armor, Encode(rfc4880Data))
	require.Equal(t, "njUN", CRC24String(rfc4880Data))

	decoded, err := Decode(rfc4880Armor)
	require.NoError(t, err)
	require.Equal(t, rfc4880Data, decoded)
}

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x00, 0x01},
		{0x00, 0x01, 0x02},
		[]byte("a longer message that spans multiple 3-byte groups and wraps lines"),
	}
	for _, data := range cases {
		encoded := Encode(data)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		if len(data) == 0 {
			require.Empty(t, decoded)
		} else {
			require.Equal(t, data, decoded)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("non-ascii", func(t *testing.T) {
		_, err := Decode("eA==\xff")
		require.ErrorIs(t, err, ErrNonASCII)
	})
	t.Run("early eof", func(t *testing.T) {
		_, err := Decode("eA")
		require.ErrorIs(t, err, ErrEarlyEOF)
	})
	t.Run("non radix64 character", func(t *testing.T) {
		_, err := Decode("e!==")
		require.ErrorIs(t, err, ErrNonRadix64Char)
	})
	t.Run("extra data after complete padding", func(t *testing.T) {
		_, err := Decode("eA==x")
		require.ErrorIs(t, err, ErrExtraData)
	})
	t.Run("padding then data in the same quad is extra data", func(t *testing.T) {
		// Quad pattern (c, c, =, c): padding only at position 2.
		_, err := Decode("eA=A")
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		require.ErrorIs(t, err, ErrExtraData)
	})
}
