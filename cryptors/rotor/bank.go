package rotor

import (
	"strings"

	"github.com/bgallie/fialka/cryptors"
	"github.com/cockroachdb/errors"
)

// Bank is the ordered set of rotors the signal passes through.  The order is
// fixed when the bank is created.
type Bank struct {
	rotors []*Rotor
}

// NewBank creates a bank from exactly cryptors.NumberOfRotors rotors, in the
// order given.
func NewBank(rotors ...*Rotor) (*Bank, error) {
	if len(rotors) != cryptors.NumberOfRotors {
		return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "a rotor bank needs %d rotors, got %d",
			cryptors.NumberOfRotors, len(rotors))
	}
	for i, r := range rotors {
		if r == nil {
			return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "rotor %d is missing", i)
		}
	}
	return &Bank{rotors: append([]*Rotor(nil), rotors...)}, nil
}

// Step advances the bank like an odometer.  Rotor 0 always steps; rotor i+1
// steps only when rotor i has just wrapped from the last position back to 0.
func (b *Bank) Step() {
	for _, r := range b.rotors {
		if !r.Step() {
			break
		}
	}
}

// Forward passes idx through the rotors from first to last.
func (b *Bank) Forward(idx int) int {
	for _, r := range b.rotors {
		idx = r.Forward(idx)
	}
	return idx
}

// Reverse passes idx back through the rotors from last to first.
func (b *Bank) Reverse(idx int) int {
	for i := len(b.rotors) - 1; i >= 0; i-- {
		idx = b.rotors[i].Reverse(idx)
	}
	return idx
}

// SetKey sets the starting position of every rotor from a key of one letter
// per rotor.  Nothing is changed if the key is rejected.
func (b *Bank) SetKey(key string) error {
	letters := []rune(strings.ToUpper(key))
	if len(letters) != len(b.rotors) {
		return errors.Wrapf(cryptors.ErrInvalidKey, "key %q has %d letters, want %d", key, len(letters), len(b.rotors))
	}
	positions := make([]int, len(letters))
	for i, l := range letters {
		positions[i] = cryptors.Index(l)
		if positions[i] < 0 {
			return errors.Wrapf(cryptors.ErrInvalidKey, "key %q contains %q", key, l)
		}
	}
	for i, r := range b.rotors {
		r.SetPosition(positions[i])
	}
	return nil
}

// Positions returns a copy of the rotor positions.
func (b *Bank) Positions() []int {
	p := make([]int, len(b.rotors))
	for i, r := range b.rotors {
		p[i] = r.Position()
	}
	return p
}

// Key returns the rotor positions as letters, the form SetKey accepts.
func (b *Bank) Key() string {
	var k strings.Builder
	for _, r := range b.rotors {
		k.WriteRune(cryptors.Symbol(r.Position()))
	}
	return k.String()
}
