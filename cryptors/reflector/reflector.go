// Package reflector implements the fixed wheel that sends the signal back
// through the rotor bank.
package reflector

import (
	"github.com/bgallie/fialka/cryptors"
	"github.com/cockroachdb/errors"
)

// Reflector pairs every symbol with a different symbol.  It is never changed
// after New returns, so one Reflector may be shared by any number of engines.
type Reflector struct {
	wiring cryptors.Wiring
}

// New checks that w is an involution without fixed points (13 swapped pairs)
// and returns the Reflector for it.
func New(w cryptors.Wiring) (*Reflector, error) {
	if !w.IsInvolution() {
		return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "reflector %s is not an involution", w)
	}
	if n := w.FixedPoints(); n != 0 {
		return nil, errors.Wrapf(cryptors.ErrInvalidSettings, "reflector %s maps %d symbols to themselves", w, n)
	}
	return &Reflector{wiring: w}, nil
}

// Reflect returns the partner of idx.  An index outside the alphabet is
// returned as is.
func (r *Reflector) Reflect(idx int) int {
	if idx < 0 || idx >= cryptors.AlphabetSize {
		return idx
	}
	return int(r.wiring[idx])
}
