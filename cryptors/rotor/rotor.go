// rotor
package rotor

import (
	"fmt"

	"github.com/bgallie/fialka/cryptors"
)

// Rotor is one substitution wheel.  The wiring is never modified; stepping
// the rotor advances current, and the wiring is read starting at current.
// This is the same as rotating the wiring left by one symbol per step.
type Rotor struct {
	current int
	wiring  cryptors.Wiring
	inverse cryptors.Wiring
}

// New creates a rotor at position 0.  The wiring must be a permutation of the
// alphabet.
func New(wiring cryptors.Wiring) (*Rotor, error) {
	if err := wiring.Validate(); err != nil {
		return nil, err
	}
	return &Rotor{
		wiring:  wiring,
		inverse: wiring.Inverse(),
	}, nil
}

// SetPosition moves the rotor to pos, which is also the number of symbols the
// wiring is rotated by.
func (r *Rotor) SetPosition(pos int) {
	r.current = ((pos % cryptors.AlphabetSize) + cryptors.AlphabetSize) % cryptors.AlphabetSize
}

func (r *Rotor) Position() int {
	return r.current
}

// Step advances the rotor by one and reports whether it wrapped back to 0.
func (r *Rotor) Step() bool {
	r.current = (r.current + 1) % cryptors.AlphabetSize
	return r.current == 0
}

// Forward returns the symbol found at index idx of the rotated wiring.
func (r *Rotor) Forward(idx int) int {
	return int(r.wiring[(idx+r.current)%cryptors.AlphabetSize])
}

// Reverse returns the index at which idx appears in the rotated wiring.
func (r *Rotor) Reverse(idx int) int {
	return (int(r.inverse[idx]) - r.current + cryptors.AlphabetSize) % cryptors.AlphabetSize
}

// Rotated returns the wiring as it currently stands, rotated by the rotor's
// position.
func (r *Rotor) Rotated() cryptors.Wiring {
	var w cryptors.Wiring
	for i := range w {
		w[i] = byte(r.Forward(i))
	}
	return w
}

func (r *Rotor) String() string {
	return fmt.Sprintf("rotor.New(%q) @ %c", r.wiring.String(), cryptors.Symbol(r.current))
}
