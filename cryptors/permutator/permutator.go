// permutator project main.go
package permutator

import (
	crand "crypto/rand"
	"math/rand/v2"

	"github.com/bgallie/fialka/cryptors"
	"golang.org/x/crypto/blake2b"
)

// Permutator generates the random parts of a machine: rotor wirings, the
// reflector and the plugboard.  Every value it produces comes from the one
// source it was created with, so a seeded source gives repeatable machines.
type Permutator struct {
	rnd *rand.Rand
}

// New creates a Permutator that draws from src.
func New(src rand.Source) *Permutator {
	return &Permutator{rnd: rand.New(src)}
}

// NewFromSecret creates a Permutator whose source is seeded from the
// BLAKE2b-256 hash of secret.  The same secret always yields the same
// sequence of settings.
func NewFromSecret(secret []byte) *Permutator {
	return New(rand.NewChaCha8(blake2b.Sum256(secret)))
}

// NewRandom creates a Permutator seeded from the operating system's random
// number generator.
func NewRandom() *Permutator {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(err)
	}
	return New(rand.NewChaCha8(seed))
}

// shuffled returns the alphabet indices in a random order.
func (p *Permutator) shuffled() []byte {
	randp := make([]byte, cryptors.AlphabetSize)
	for i := range randp {
		randp[i] = byte(i)
	}
	p.rnd.Shuffle(len(randp), func(i, j int) {
		randp[i], randp[j] = randp[j], randp[i]
	})
	return randp
}

// Rotor returns a uniformly random permutation of the alphabet.
func (p *Permutator) Rotor() cryptors.Wiring {
	var w cryptors.Wiring
	copy(w[:], p.shuffled())
	return w
}

// Reflector shuffles the alphabet and pairs the symbols at 2k and 2k+1.
func (p *Permutator) Reflector() cryptors.Wiring {
	var w cryptors.Wiring
	randp := p.shuffled()
	for i := 0; i < len(randp); i += 2 {
		a, b := randp[i], randp[i+1]
		w[a], w[b] = b, a
	}
	return w
}

// Plugboard picks 2*cryptors.PlugboardPairs distinct symbols and swaps them
// in consecutive pairs.  The remaining symbols are left unplugged.
func (p *Permutator) Plugboard() cryptors.Wiring {
	w := cryptors.Identity()
	sample := p.rnd.Perm(cryptors.AlphabetSize)[:2*cryptors.PlugboardPairs]
	for i := 0; i < len(sample); i += 2 {
		a, b := sample[i], sample[i+1]
		w[a], w[b] = byte(b), byte(a)
	}
	return w
}

// Order returns a random rotor order, a permutation of the rotor slots.
func (p *Permutator) Order() []int {
	return p.rnd.Perm(cryptors.NumberOfRotors)
}

// Key returns a random starting key, one letter per rotor.
func (p *Permutator) Key() string {
	key := make([]rune, cryptors.KeyLength)
	for i := range key {
		key[i] = cryptors.Symbol(p.rnd.IntN(cryptors.AlphabetSize))
	}
	return string(key)
}
