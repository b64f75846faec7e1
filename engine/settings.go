package engine

import (
	"strings"

	"github.com/bgallie/fialka/cryptors"
	"github.com/bgallie/fialka/cryptors/bitops"
	"github.com/bgallie/fialka/cryptors/permutator"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Settings fully determines the behaviour of an Engine.  Engines built from
// equal Settings produce equal output for equal input.
type Settings struct {
	// Rotors holds the rotor wirings in their natural (unordered) slots.
	Rotors    []cryptors.Wiring
	Reflector cryptors.Wiring
	Plugboard cryptors.Wiring
	// Order, when set, lists which of Rotors sits in each position of the
	// bank.  Order[0] is the rotor that steps on every letter.
	Order []int
	// Key, when set, holds the starting letter of each rotor in bank order.
	Key string
}

// Generate draws a complete set of machine settings from p.  Order and Key
// are left unset.
func Generate(p *permutator.Permutator) Settings {
	s := Settings{Rotors: make([]cryptors.Wiring, cryptors.NumberOfRotors)}
	for i := range s.Rotors {
		s.Rotors[i] = p.Rotor()
	}
	s.Reflector = p.Reflector()
	s.Plugboard = p.Plugboard()
	return s
}

// WithOrder returns a copy of s using the given rotor order.
func (s Settings) WithOrder(order []int) Settings {
	s.Order = append([]int(nil), order...)
	return s
}

// WithKey returns a copy of s using the given starting key.
func (s Settings) WithKey(key string) Settings {
	s.Key = key
	return s
}

// Validate checks the settings without building an engine.
func (s Settings) Validate() error {
	if len(s.Rotors) != cryptors.NumberOfRotors {
		return errors.Wrapf(cryptors.ErrInvalidSettings, "%d rotors given, want %d", len(s.Rotors), cryptors.NumberOfRotors)
	}
	for i, w := range s.Rotors {
		if err := w.Validate(); err != nil {
			return errors.Wrapf(err, "rotor %d", i)
		}
	}
	if _, err := s.order(); err != nil {
		return err
	}
	if s.Key != "" {
		if err := validateKey(s.Key); err != nil {
			return err
		}
	}
	// reflector.New and plugboard.New hold the involution rules.
	_, _, err := s.fixedWheels()
	return err
}

// order returns the effective rotor order, the identity when none is set.
func (s Settings) order() ([]int, error) {
	if s.Order == nil {
		return lo.Range(cryptors.NumberOfRotors), nil
	}
	if err := validateOrder(s.Order); err != nil {
		return nil, err
	}
	return s.Order, nil
}

func validateOrder(order []int) error {
	if len(order) != cryptors.NumberOfRotors {
		return errors.Wrapf(cryptors.ErrInvalidRotorOrder, "order %v names %d rotors, want %d", order, len(order), cryptors.NumberOfRotors)
	}
	var seen uint32
	for _, o := range order {
		if o < 0 || o >= cryptors.NumberOfRotors {
			return errors.Wrapf(cryptors.ErrInvalidRotorOrder, "order %v names rotor %d", order, o)
		}
		seen = bitops.SetBit(seen, uint(o))
	}
	if bitops.Count(seen) != cryptors.NumberOfRotors {
		return errors.Wrapf(cryptors.ErrInvalidRotorOrder, "order %v repeats a rotor", order)
	}
	return nil
}

func validateKey(key string) error {
	letters := []rune(strings.ToUpper(key))
	if len(letters) != cryptors.KeyLength {
		return errors.Wrapf(cryptors.ErrInvalidKey, "key %q has %d letters, want %d", key, len(letters), cryptors.KeyLength)
	}
	if bad, found := lo.Find(letters, func(r rune) bool { return !cryptors.IsSymbol(r) }); found {
		return errors.Wrapf(cryptors.ErrInvalidKey, "key %q contains %q", key, bad)
	}
	return nil
}

// ParseOrder converts a rotor order written as ten digits, eg. "3095172846",
// into rotor slot numbers.  Spaces and commas between digits are ignored.
func ParseOrder(s string) ([]int, error) {
	digits := lo.Filter([]rune(s), func(r rune, _ int) bool { return r != ' ' && r != ',' })
	if bad, found := lo.Find(digits, func(r rune) bool { return r < '0' || r > '9' }); found {
		return nil, errors.Wrapf(cryptors.ErrInvalidRotorOrder, "order %q contains %q", s, bad)
	}
	order := lo.Map(digits, func(r rune, _ int) int { return int(r - '0') })
	if len(lo.Uniq(order)) != len(order) {
		return nil, errors.Wrapf(cryptors.ErrInvalidRotorOrder, "order %q repeats a rotor", s)
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// FormatOrder is the inverse of ParseOrder.
func FormatOrder(order []int) string {
	return strings.Join(lo.Map(order, func(o int, _ int) string { return string(rune('0' + o)) }), "")
}
