package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/bgallie/fialka/cryptors"
	"github.com/bgallie/fialka/cryptors/permutator"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("3095172846")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 9, 5, 1, 7, 2, 8, 4, 6}, order)
	assert.Equal(t, "3095172846", FormatOrder(order))

	order, err = ParseOrder("0, 1, 2, 3, 4, 5, 6, 7, 8, 9")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)

	for _, bad := range []string{"", "012345678", "01234567890", "0123456788", "012345678a", "9876-43210"} {
		_, err := ParseOrder(bad)
		assert.True(t, errors.Is(err, cryptors.ErrInvalidRotorOrder), "%q: %v", bad, err)
	}
}

func TestGenerate(t *testing.T) {
	s := Generate(permutator.New(rand.NewPCG(3, 5)))
	require.Len(t, s.Rotors, cryptors.NumberOfRotors)
	assert.NoError(t, s.Validate())
	assert.Nil(t, s.Order)
	assert.Empty(t, s.Key)

	again := Generate(permutator.New(rand.NewPCG(3, 5)))
	assert.Equal(t, s, again)
}

func TestWithOrderCopies(t *testing.T) {
	s := Generate(permutator.New(rand.NewPCG(3, 5)))
	order := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	o := s.WithOrder(order)
	order[0] = 0
	assert.Equal(t, 9, o.Order[0])
	assert.Nil(t, s.Order)

	k := o.WithKey("ABCDEFGHIJ")
	assert.Equal(t, "ABCDEFGHIJ", k.Key)
	assert.Empty(t, o.Key)
}
