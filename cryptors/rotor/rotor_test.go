package rotor

import (
	"testing"

	"github.com/bgallie/fialka/cryptors"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enigmaI = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"

func mustWiring(t *testing.T, s string) cryptors.Wiring {
	t.Helper()
	w, err := cryptors.ParseWiring(s)
	require.NoError(t, err)
	return w
}

func identityBank(t *testing.T) *Bank {
	t.Helper()
	rotors := make([]*Rotor, cryptors.NumberOfRotors)
	for i := range rotors {
		r, err := New(cryptors.Identity())
		require.NoError(t, err)
		rotors[i] = r
	}
	b, err := NewBank(rotors...)
	require.NoError(t, err)
	return b
}

// rotateLeft rotates s left by n symbols, the way the physical wheel turns.
func rotateLeft(s string, n int) string {
	n %= len(s)
	return s[n:] + s[:n]
}

func TestRotorStepMatchesRotation(t *testing.T) {
	r, err := New(mustWiring(t, enigmaI))
	require.NoError(t, err)
	assert.Equal(t, enigmaI, r.Rotated().String())

	for n := 1; n <= 2*cryptors.AlphabetSize; n++ {
		wrapped := r.Step()
		assert.Equal(t, n%cryptors.AlphabetSize == 0, wrapped, "step %d", n)
		assert.Equal(t, rotateLeft(enigmaI, n), r.Rotated().String(), "step %d", n)
	}
}

func TestRotorReverseUndoesForward(t *testing.T) {
	r, err := New(mustWiring(t, enigmaI))
	require.NoError(t, err)
	for pos := 0; pos < cryptors.AlphabetSize; pos++ {
		r.SetPosition(pos)
		for i := 0; i < cryptors.AlphabetSize; i++ {
			assert.Equal(t, i, r.Reverse(r.Forward(i)), "position %d index %d", pos, i)
		}
	}
}

func TestRotorSetPositionWraps(t *testing.T) {
	r, err := New(cryptors.Identity())
	require.NoError(t, err)
	r.SetPosition(27)
	assert.Equal(t, 1, r.Position())
	r.SetPosition(-1)
	assert.Equal(t, 25, r.Position())
}

func TestRotorRejectsBadWiring(t *testing.T) {
	w := cryptors.Identity()
	w[0] = 1
	_, err := New(w)
	assert.True(t, errors.Is(err, cryptors.ErrInvalidSettings))
}

func TestNewBankCount(t *testing.T) {
	r, err := New(cryptors.Identity())
	require.NoError(t, err)
	for _, n := range []int{0, 9, 11} {
		rotors := make([]*Rotor, n)
		for i := range rotors {
			rotors[i] = r
		}
		_, err := NewBank(rotors...)
		assert.True(t, errors.Is(err, cryptors.ErrInvalidSettings), "%d rotors", n)
	}

	rotors := make([]*Rotor, cryptors.NumberOfRotors)
	_, err = NewBank(rotors...)
	assert.True(t, errors.Is(err, cryptors.ErrInvalidSettings), "nil rotors")
}

func TestBankOdometerCarry(t *testing.T) {
	b := identityBank(t)

	b.Step()
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, b.Positions())

	for i := 1; i < cryptors.AlphabetSize; i++ {
		b.Step()
	}
	assert.Equal(t, []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}, b.Positions())

	// Rotor 1 steps once for each full turn of rotor 0 and so on up the bank.
	for i := cryptors.AlphabetSize; i < cryptors.AlphabetSize*cryptors.AlphabetSize; i++ {
		b.Step()
	}
	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, b.Positions())
}

func TestBankCarryCascade(t *testing.T) {
	b := identityBank(t)
	require.NoError(t, b.SetKey("ZZZZZZZZZZ"))
	b.Step()
	assert.Equal(t, make([]int, cryptors.NumberOfRotors), b.Positions())

	require.NoError(t, b.SetKey("ZZYAAAAAAA"))
	b.Step()
	assert.Equal(t, "AAZAAAAAAA", b.Key())
}

func TestBankCarryCounts(t *testing.T) {
	b := identityBank(t)
	steps := make([]int, cryptors.NumberOfRotors)
	prev := b.Positions()
	const letters = 3 * cryptors.AlphabetSize * cryptors.AlphabetSize
	for n := 0; n < letters; n++ {
		b.Step()
		cur := b.Positions()
		for i := range cur {
			if cur[i] != prev[i] {
				steps[i]++
			}
		}
		prev = cur
	}
	assert.Equal(t, letters, steps[0])
	assert.Equal(t, letters/cryptors.AlphabetSize, steps[1])
	assert.Equal(t, letters/(cryptors.AlphabetSize*cryptors.AlphabetSize), steps[2])
	assert.Zero(t, steps[3])
}

func TestBankSetKey(t *testing.T) {
	b := identityBank(t)
	require.NoError(t, b.SetKey("bcdefghijk"))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, b.Positions())
	assert.Equal(t, "BCDEFGHIJK", b.Key())

	for _, key := range []string{"", "ABCDEFGHI", "ABCDEFGHIJK", "ABCDE1GHIJ", "ABCDE GHIJ"} {
		err := b.SetKey(key)
		assert.True(t, errors.Is(err, cryptors.ErrInvalidKey), "key %q: %v", key, err)
	}
	// A rejected key leaves the positions alone.
	assert.Equal(t, "BCDEFGHIJK", b.Key())
}

func TestBankForwardReverse(t *testing.T) {
	rotors := make([]*Rotor, cryptors.NumberOfRotors)
	for i := range rotors {
		r, err := New(mustWiring(t, rotateLeft(enigmaI, i*3)))
		require.NoError(t, err)
		rotors[i] = r
	}
	b, err := NewBank(rotors...)
	require.NoError(t, err)
	require.NoError(t, b.SetKey("QWERTYUIOP"))

	for n := 0; n < 100; n++ {
		b.Step()
		for i := 0; i < cryptors.AlphabetSize; i++ {
			assert.Equal(t, i, b.Reverse(b.Forward(i)))
		}
	}
}

func TestBankForwardIdentityOffset(t *testing.T) {
	b := identityBank(t)
	b.Step()
	// Only rotor 0 has moved, so the bank shifts every index by one.
	assert.Equal(t, cryptors.Index('B'), b.Forward(cryptors.Index('A')))
	assert.Equal(t, cryptors.Index('Z'), b.Reverse(cryptors.Index('A')))
}
