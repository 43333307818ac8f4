// Package rng provides the single seeded random stream behind a game.
//
// Determinism contract: a Game consumes its stream in a fixed order — map
// generation first, then each turn draws hyperspace rolls for in-transit
// fleets in (owner, fleet id) order followed by rebellion rolls for
// candidate stars in map generation order. No other code may touch the
// stream; same seed and same order sequence always reproduce the same game.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// New returns a deterministic generator for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed draws a fresh seed from crypto/rand. Used at the CLI/server edge
// when the caller did not pin one; the engine itself never calls this.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
