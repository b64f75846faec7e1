// cryptors
package cryptors

import (
	"strings"

	"github.com/bgallie/fialka/cryptors/bitops"
	"github.com/cockroachdb/errors"
)

const (
	// Alphabet is the ordered set of symbols the machine works on.  A symbol's
	// position in Alphabet is its index for every wiring in the machine.
	Alphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetSize    = len(Alphabet)
	NumberOfRotors  = 10
	KeyLength       = NumberOfRotors
	PlugboardPairs  = 10
	ReflectorPairs  = AlphabetSize / 2
	fullAlphabetSet = uint32(1)<<AlphabetSize - 1
)

var (
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrInvalidKey        = errors.New("invalid key")
	ErrInvalidRotorOrder = errors.New("invalid rotor order")
)

// Crypter is a stage of the signal path.  Forward is applied on the way in
// to the reflector and Reverse on the way back out.
type Crypter interface {
	Forward(int) int
	Reverse(int) int
}

// Index returns the index of r in Alphabet or -1 if r is not a symbol.
func Index(r rune) int {
	if r < 'A' || r > 'Z' {
		return -1
	}
	return int(r - 'A')
}

// Symbol returns the symbol at index i.
func Symbol(i int) rune {
	return rune(Alphabet[i])
}

func IsSymbol(r rune) bool {
	return Index(r) >= 0
}

// Wiring maps every alphabet index to another alphabet index.
type Wiring [AlphabetSize]byte

// Identity returns the wiring that maps every symbol to itself.
func Identity() Wiring {
	var w Wiring
	for i := range w {
		w[i] = byte(i)
	}
	return w
}

// ParseWiring converts a 26 letter string into a Wiring.  Case is ignored.
// The result is checked to be a bijection over the alphabet.
func ParseWiring(s string) (Wiring, error) {
	var w Wiring
	letters := []rune(strings.ToUpper(s))
	if len(letters) != AlphabetSize {
		return w, errors.Wrapf(ErrInvalidSettings, "wiring %q has %d symbols, want %d", s, len(letters), AlphabetSize)
	}
	for i, r := range letters {
		idx := Index(r)
		if idx < 0 {
			return w, errors.Wrapf(ErrInvalidSettings, "wiring %q contains %q", s, r)
		}
		w[i] = byte(idx)
	}
	return w, w.Validate()
}

// ParsePairs builds an involution from letter pairs such as "AB" or "A:B".
// Letters not named in any pair map to themselves.
func ParsePairs(pairs []string) (Wiring, error) {
	w := Identity()
	var used uint32
	for _, p := range pairs {
		letters := []rune(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(p), ":", "")))
		if len(letters) != 2 {
			return w, errors.Wrapf(ErrInvalidSettings, "pair %q must name two letters", p)
		}
		a, b := Index(letters[0]), Index(letters[1])
		if a < 0 || b < 0 || a == b {
			return w, errors.Wrapf(ErrInvalidSettings, "pair %q must name two different letters A-Z", p)
		}
		if bitops.GetBit(used, uint(a)) || bitops.GetBit(used, uint(b)) {
			return w, errors.Wrapf(ErrInvalidSettings, "pair %q reuses a letter", p)
		}
		used = bitops.SetBit(bitops.SetBit(used, uint(a)), uint(b))
		w[a], w[b] = byte(b), byte(a)
	}
	return w, nil
}

// Validate reports whether w is a bijection over the alphabet.
func (w Wiring) Validate() error {
	var seen uint32
	for i, v := range w {
		if int(v) >= AlphabetSize {
			return errors.Wrapf(ErrInvalidSettings, "wiring maps %c outside the alphabet", Symbol(i))
		}
		seen = bitops.SetBit(seen, uint(v))
	}
	if seen != fullAlphabetSet {
		return errors.Wrapf(ErrInvalidSettings, "wiring %s is not a permutation (%d distinct symbols)",
			w, bitops.Count(seen))
	}
	return nil
}

// Inverse returns the wiring that undoes w.  w must be valid.
func (w Wiring) Inverse() Wiring {
	var inv Wiring
	for i, v := range w {
		inv[v] = byte(i)
	}
	return inv
}

func (w Wiring) IsInvolution() bool {
	for i, v := range w {
		if int(v) >= AlphabetSize || int(w[v]) != i {
			return false
		}
	}
	return true
}

// FixedPoints returns the number of symbols w maps to themselves.
func (w Wiring) FixedPoints() int {
	n := 0
	for i, v := range w {
		if int(v) == i {
			n++
		}
	}
	return n
}

// Pairs lists the swapped pairs of an involution in alphabet order, eg. "AQ".
func (w Wiring) Pairs() []string {
	pairs := make([]string, 0, ReflectorPairs)
	for i, v := range w {
		if int(v) > i {
			pairs = append(pairs, string([]rune{Symbol(i), Symbol(int(v))}))
		}
	}
	return pairs
}

func (w Wiring) String() string {
	var b strings.Builder
	b.Grow(AlphabetSize)
	for _, v := range w {
		if int(v) < AlphabetSize {
			b.WriteRune(Symbol(int(v)))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
