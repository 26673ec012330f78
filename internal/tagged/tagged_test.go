package tagged

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTagMidstateLaw checks that the package's cached midstates equal the
// literal feed-and-capture procedure run fresh for each domain tag.
func TestTagMidstateLaw(t *testing.T) {
	cases := []struct {
		name     string
		tag      string
		midstate []byte
	}{
		{"Params", Tags.Params, paramsMidstate},
		{"Challenge", Tags.Challenge, challengeMidstate},
		{"Nonce", Tags.Nonce, nonceMidstate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, ExpectedMidstate(tc.tag), tc.midstate)
		})
	}
}

func TestDomainsAreDistinct(t *testing.T) {
	msg := []byte("same input, every domain")
	p := Params(msg)
	c := Challenge(msg)
	n := Nonce(msg)

	require.NotEqual(t, p, c)
	require.NotEqual(t, p, n)
	require.NotEqual(t, c, n)
}

func TestHashIsDeterministic(t *testing.T) {
	a := Challenge([]byte("a"), []byte("b"))
	b := Challenge([]byte("a"), []byte("b"))
	require.Equal(t, a, b)
}

func TestHashRespectsConcatenationNotSegmentation(t *testing.T) {
	// Challenge("ab") and Challenge("a", "b") must match: tagged hashing
	// operates on the concatenation of its inputs, not on a
	// length-prefixed framing of each argument.
	whole := Challenge([]byte("ab"))
	split := Challenge([]byte("a"), []byte("b"))
	require.Equal(t, whole, split)
}
