// Package plugboard implements the cable board that swaps letters before the
// signal enters the rotor bank and again after it leaves.
package plugboard

import (
	"github.com/bgallie/fialka/cryptors"
	"github.com/cockroachdb/errors"
)

// Plugboard is an involution over the alphabet.  Unplugged letters map to
// themselves.  It is read only once created.
type Plugboard struct {
	wiring cryptors.Wiring
}

func New(w cryptors.Wiring) (*Plugboard, error) {
	if !w.IsInvolution() {
		return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "plugboard %s is not an involution", w)
	}
	return &Plugboard{wiring: w}, nil
}

// Plug returns the letter idx is cabled to, or idx itself if it is not
// plugged.
func (p *Plugboard) Plug(idx int) int {
	if idx < 0 || idx >= cryptors.AlphabetSize {
		return idx
	}
	return int(p.wiring[idx])
}

func (p *Plugboard) Forward(idx int) int { return p.Plug(idx) }
func (p *Plugboard) Reverse(idx int) int { return p.Plug(idx) }
