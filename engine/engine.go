// Package engine builds a Fialka style cipher machine from its settings and
// runs text through it.
//
// The machine is reciprocal: running the output of an engine through a fresh
// engine built from the same settings gives back the original letters.  An
// engine changes state with every letter, so each message needs its own
// engine.
package engine

import (
	"strings"
	"unicode"

	"github.com/bgallie/fialka/cryptors"
	"github.com/bgallie/fialka/cryptors/plugboard"
	"github.com/bgallie/fialka/cryptors/reflector"
	"github.com/bgallie/fialka/cryptors/rotor"
	"github.com/cockroachdb/errors"
)

// Engine is one live cipher machine.  It is not safe for concurrent use.
type Engine struct {
	bank      *rotor.Bank
	reflector *reflector.Reflector
	// stages are applied in order on the way to the reflector and in
	// reverse order on the way back.
	stages []cryptors.Crypter
	count  int64
}

// New builds an engine from s.  Errors wrap cryptors.ErrInvalidSettings,
// cryptors.ErrInvalidRotorOrder or cryptors.ErrInvalidKey.
func New(s Settings) (*Engine, error) {
	if len(s.Rotors) != cryptors.NumberOfRotors {
		return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "%d rotors given, want %d", len(s.Rotors), cryptors.NumberOfRotors)
	}
	order, err := s.order()
	if err != nil {
		return nil, err
	}
	rotors := make([]*rotor.Rotor, len(order))
	for i, slot := range order {
		rotors[i], err = rotor.New(s.Rotors[slot])
		if err != nil {
			return nil, errors.Wrapf(err, "rotor %d", slot)
		}
	}
	bank, err := rotor.NewBank(rotors...)
	if err != nil {
		return nil, err
	}
	if s.Key != "" {
		if err := bank.SetKey(s.Key); err != nil {
			return nil, err
		}
	}
	refl, plug, err := s.fixedWheels()
	if err != nil {
		return nil, err
	}
	return &Engine{
		bank:      bank,
		reflector: refl,
		stages:    []cryptors.Crypter{plug, bank},
	}, nil
}

func (s Settings) fixedWheels() (*reflector.Reflector, *plugboard.Plugboard, error) {
	refl, err := reflector.New(s.Reflector)
	if err != nil {
		return nil, nil, err
	}
	plug, err := plugboard.New(s.Plugboard)
	if err != nil {
		return nil, nil, err
	}
	return refl, plug, nil
}

// ProcessLetter enciphers (or deciphers) one letter.  A rune that is not in
// cryptors.Alphabet is returned unchanged and the rotors do not move.
func (e *Engine) ProcessLetter(r rune) rune {
	idx := cryptors.Index(r)
	if idx < 0 {
		return r
	}
	e.bank.Step()
	e.count++
	for _, s := range e.stages {
		idx = s.Forward(idx)
	}
	idx = e.reflector.Reflect(idx)
	for i := len(e.stages) - 1; i >= 0; i-- {
		idx = e.stages[i].Reverse(idx)
	}
	return cryptors.Symbol(idx)
}

// Process upper cases text, drops everything that is not a letter A-Z and
// runs the remaining letters through the machine in order.
func (e *Engine) Process(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	for _, r := range strings.ToUpper(text) {
		if cryptors.IsSymbol(r) {
			out.WriteRune(e.ProcessLetter(r))
		}
	}
	return out.String()
}

// Encrypt and Decrypt are the same operation; both exist for readability at
// the call site.
func (e *Engine) Encrypt(text string) string { return e.Process(text) }
func (e *Engine) Decrypt(text string) string { return e.Process(text) }

// Positions returns the current rotor positions in bank order.
func (e *Engine) Positions() []int {
	return e.bank.Positions()
}

// Key returns the current rotor positions as letters.
func (e *Engine) Key() string {
	return e.bank.Key()
}

// Count returns the number of letters processed so far.
func (e *Engine) Count() int64 {
	return e.count
}

// Filter returns the letters of text that Process would encipher, upper
// cased, in order.
func Filter(text string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToUpper(r)
		if cryptors.IsSymbol(r) {
			return r
		}
		return -1
	}, text)
}
