// Package roller provides the random sources that drive die evaluation.
//
// Sources wrap crypto-seeded or replayable pseudo-random generators into
// the zero-argument form the notation evaluator expects, keeping the
// engine itself free of RNG policy.
package roller

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/erikjuhani/droll/internal/notation"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Default returns a source backed by a crypto-seeded PRNG. The fallback
// to the shared generator only triggers when crypto/rand is unavailable.
func Default() notation.Source {
	seed, err := NewSeed()
	if err != nil {
		return rand.Float64
	}
	return Seeded(seed)
}

// Seeded returns a deterministic source for the given seed. The same
// seed always produces the same sample sequence, which makes rolls
// replayable.
func Seeded(seed int64) notation.Source {
	rng := rand.New(rand.NewSource(seed))
	return rng.Float64
}

// Fixed returns a source that always yields the same sample. Used for
// deterministic evaluation in tests and explain flows.
func Fixed(sample float64) notation.Source {
	return func() float64 { return sample }
}
