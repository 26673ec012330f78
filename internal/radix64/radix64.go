// Package radix64 implements the radix-64 codec (RFC 4880 §6 base64
// alphabet plus CRC-24 checksum) used to armor OpenSSH key material.
package radix64

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the four ways decoding can fail. Use
// errors.Is to check against these; DecodeError wraps whichever sentinel
// applies along with the offending byte, where one exists.
var (
	ErrEarlyEOF       = errors.New("radix64: string ended before a complete quad")
	ErrNonASCII       = errors.New("radix64: input is not entirely ASCII")
	ErrNonRadix64Char = errors.New("radix64: byte is not in the radix-64 alphabet")
	ErrExtraData      = errors.New("radix64: non-whitespace data after padding")
)

// DecodeError carries the offending byte alongside the sentinel it wraps.
type DecodeError struct {
	Err  error
	Byte byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: 0x%02x", e.Err, e.Byte)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// lineWrapModulus is the output length (including the just-written
// character) at which a newline is inserted: every 76 characters of
// actual output, i.e. when len(ret)%77 == 76.
const lineWrapModulus = 77

// Encode base64-encodes data using the radix-64 alphabet with `=` padding,
// wrapping output with a newline every 76 characters.
func Encode(data []byte) string {
	ret := make([]byte, 0, (len(data)*4+2)/3+len(data)/57+1)

	for len(data) > 0 {
		var three [3]byte
		var npad int
		switch {
		case len(data) == 1:
			three = [3]byte{data[0], 0, 0}
			npad = 2
			data = data[1:]
		case len(data) == 2:
			three = [3]byte{data[0], data[1], 0}
			npad = 1
			data = data[2:]
		default:
			three = [3]byte{data[0], data[1], data[2]}
			npad = 0
			data = data[3:]
		}

		sext := [4]byte{
			three[0] >> 2,
			((three[0] & 0x03) << 4) + (three[1] >> 4),
			((three[1] & 0x0f) << 2) + (three[2] >> 6),
			three[2] & 0x3f,
		}

		ret = append(ret, alphabet[sext[0]])
		switch npad {
		case 0:
			ret = append(ret, alphabet[sext[1]], alphabet[sext[2]], alphabet[sext[3]])
		case 1:
			ret = append(ret, alphabet[sext[1]], alphabet[sext[2]], '=')
		case 2:
			ret = append(ret, alphabet[sext[1]], '=', '=')
		}

		if len(ret)%lineWrapModulus == lineWrapModulus-1 {
			ret = append(ret, '\n')
		}
	}

	return string(ret)
}

const (
	crc24Init = 0x00B704CE
	crc24Poly = 0x01864CFB
)

// CRC24 computes the RFC 4880 §6.1 CRC-24 checksum of data.
func CRC24(data []byte) [3]byte {
	crc := uint32(crc24Init)
	for _, b := range data {
		crc ^= uint32(b) << 16
		for i := 0; i < 8; i++ {
			crc <<= 1
			if crc&0x01000000 != 0 {
				crc ^= crc24Poly
			}
		}
	}
	return [3]byte{
		byte(crc >> 16),
		byte(crc >> 8),
		byte(crc),
	}
}

// CRC24String computes the CRC-24 checksum of data and radix-64-encodes it.
func CRC24String(data []byte) string {
	sum := CRC24(data)
	return Encode(sum[:])
}

// decodeTable maps an ASCII byte to its 6-bit value; 0xff means "not in
// the alphabet", 0x80 (otherwise unreachable) marks '='.
var decodeTable = [128]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x3e, 0xff, 0xff, 0xff, 0x3f,
	0x34, 0x35, 0x36, 0x37, 0x38, 0x39, 0x3a, 0x3b, 0x3c, 0x3d, 0xff, 0xff, 0xff, 0x80, 0xff, 0xff,
	0xff, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
	0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28,
	0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e, 0x2f, 0x30, 0x31, 0x32, 0x33, 0xff, 0xff, 0xff, 0xff, 0xff,
}

func decodeCh(ch byte) (byte, error) {
	if ch >= 128 || decodeTable[ch] == 0xff {
		return 0, &DecodeError{Err: ErrNonRadix64Char, Byte: ch}
	}
	return decodeTable[ch], nil
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// Decode parses radix-64-encoded text, skipping ASCII whitespace, and
// returns the decoded bytes.
func Decode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return nil, ErrNonASCII
		}
	}

	filtered := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if !isASCIIWhitespace(s[i]) {
			filtered = append(filtered, s[i])
		}
	}

	ret := make([]byte, 0, (len(filtered)*3+3)/4)
	pos := 0
	next := func() (byte, bool) {
		if pos >= len(filtered) {
			return 0, false
		}
		b := filtered[pos]
		pos++
		return b, true
	}

	for {
		c0, ok := next()
		if !ok {
			break
		}
		v0, err := decodeCh(c0)
		if err != nil {
			return nil, err
		}

		c1, ok := next()
		if !ok {
			return nil, ErrEarlyEOF
		}
		v1, err := decodeCh(c1)
		if err != nil {
			return nil, err
		}

		c2, ok := next()
		if !ok {
			return nil, ErrEarlyEOF
		}
		v2, err := decodeCh(c2)
		if err != nil {
			return nil, err
		}

		c3, ok := next()
		if !ok {
			return nil, ErrEarlyEOF
		}
		v3, err := decodeCh(c3)
		if err != nil {
			return nil, err
		}

		pad2 := v2 == 0x80
		pad3 := v3 == 0x80

		var skip int
		switch {
		case !pad2 && !pad3:
			skip = 0
		case !pad2 && pad3:
			skip = 1
		case pad2 && pad3:
			skip = 2
		default: // pad2 && !pad3
			return nil, &DecodeError{Err: ErrExtraData, Byte: c3}
		}

		ret = append(ret, (v0<<2)+(v1>>4))
		if skip < 2 {
			ret = append(ret, (v1<<4)+(v2>>2))
		}
		if skip < 1 {
			ret = append(ret, (v2<<6)+v3)
		}

		if skip > 0 {
			if bad, ok := next(); ok {
				return nil, &DecodeError{Err: ErrExtraData, Byte: bad}
			}
			break
		}
	}

	return ret, nil
}
