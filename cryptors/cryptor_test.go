package cryptors

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAndSymbol(t *testing.T) {
	assert.Equal(t, 0, Index('A'))
	assert.Equal(t, 25, Index('Z'))
	assert.Equal(t, -1, Index('a'))
	assert.Equal(t, -1, Index('5'))
	assert.Equal(t, 'Q', Symbol(Index('Q')))
	assert.True(t, IsSymbol('M'))
	assert.False(t, IsSymbol(' '))
}

func TestParseWiring(t *testing.T) {
	w, err := ParseWiring("ekmflgdqvzntowyhxuspaibrcj")
	require.NoError(t, err)
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", w.String())
	assert.Equal(t, byte(Index('E')), w[0])

	inv := w.Inverse()
	for i := range w {
		assert.Equal(t, byte(i), inv[w[i]])
	}

	tests := []struct {
		name   string
		wiring string
	}{
		{"short", "ABC"},
		{"long", Alphabet + "A"},
		{"duplicate", "AACDEFGHIJKLMNOPQRSTUVWXYZ"},
		{"not a letter", "ABCDEFGHIJKLMNOPQRSTUVWXY1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWiring(tt.wiring)
			assert.True(t, errors.Is(err, ErrInvalidSettings), "got %v", err)
		})
	}
}

func TestValidateOutOfRange(t *testing.T) {
	w := Identity()
	w[3] = 40
	assert.True(t, errors.Is(w.Validate(), ErrInvalidSettings))
	assert.False(t, w.IsInvolution())
}

func TestParsePairs(t *testing.T) {
	w, err := ParsePairs([]string{"AB", "c:d", " YZ "})
	require.NoError(t, err)
	assert.True(t, w.IsInvolution())
	assert.Equal(t, AlphabetSize-6, w.FixedPoints())
	assert.Equal(t, []string{"AB", "CD", "YZ"}, w.Pairs())
	assert.NoError(t, w.Validate())

	for _, bad := range [][]string{{"A"}, {"AA"}, {"AB", "BC"}, {"A1"}, {"ABC"}} {
		_, err := ParsePairs(bad)
		assert.True(t, errors.Is(err, ErrInvalidSettings), "pairs %v: %v", bad, err)
	}
}

func TestIdentity(t *testing.T) {
	w := Identity()
	assert.Equal(t, Alphabet, w.String())
	assert.True(t, w.IsInvolution())
	assert.Equal(t, AlphabetSize, w.FixedPoints())
	assert.Empty(t, w.Pairs())
}
