package persistence

import (
	"fmt"

	"github.com/hollis-b/farstar/internal/engine"
	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/mapgen"
)

// Replay reconstructs a live game by re-running every recorded turn from
// the seed through the real engine, verifying the stored digest after each
// turn. The result carries a correctly positioned RNG stream and can keep
// playing from where the log ends.
func (st *Store) Replay(id string) (*game.Game, error) {
	seed, err := st.Seed(id)
	if err != nil {
		return nil, err
	}
	log, err := st.TurnLog(id)
	if err != nil {
		return nil, err
	}

	g := mapgen.NewGame(seed)
	for _, t := range log {
		rec, err := engine.Execute(g, t.Orders)
		if err != nil {
			return nil, fmt.Errorf("replay turn %d: %w", t.Turn, err)
		}
		if rec.Digest != t.Digest {
			return nil, fmt.Errorf("replay turn %d: digest %s does not match recorded %s",
				t.Turn, rec.Digest, t.Digest)
		}
	}
	return g, nil
}
