// Package game defines the data model for the Farstar simulation: stars,
// fleets, players with fog-of-war knowledge, orders, and the Game aggregate.
// All rules live in internal/engine; this package holds state and the few
// helpers the state invariants need.
package game

import (
	"fmt"
	"math/rand"
)

// Board and rule constants. These are part of the wire contract and must
// not drift: callers and saved games both depend on them.
const (
	GridWidth  = 12
	GridHeight = 10
	StarCount  = 16
	HomeRU     = 4 // home stars always produce 4 and never rebel

	HyperspaceLossChance = 0.02 // per fleet per turn, whole-fleet
	RebellionChance      = 0.5  // per undergarrisoned star per turn
)

// Chebyshev returns max(|dx|,|dy|), the travel distance in parsecs between
// two grid cells. Fleets cover one parsec per turn.
func Chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Order asks the engine to send ships from one star to another. Orders are
// ephemeral: validated, turned into fleets, then discarded.
type Order struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Ships int    `json:"ships"`
}

// Game is the complete simulation state. It exclusively owns every Star and
// Fleet; the two Players own their knowledge maps. The engine mutates a Game
// under single-writer discipline — the aggregate carries no locking itself.
type Game struct {
	Seed    int64               `json:"seed"`
	Turn    int                 `json:"turn"`
	Stars   []*Star             `json:"stars"` // stable generation order
	Fleets  []*Fleet            `json:"fleets"`
	Players map[Faction]*Player `json:"players"`
	Winner  Outcome             `json:"winner"`
	History []TurnRecord        `json:"history"` // append-only, one record per executed turn

	// Rand is the single deterministic stream behind map generation,
	// hyperspace rolls, and rebellion rolls. Excluded from serialization;
	// a loaded game is reconstructed by replaying orders from the seed.
	Rand *rand.Rand `json:"-"`

	index map[string]*Star
}

// Star returns the star with the given id, or nil.
func (g *Game) Star(id string) *Star {
	if g.index == nil {
		g.Reindex()
	}
	return g.index[id]
}

// Reindex rebuilds the id lookup. Call after replacing the star list
// (generation or load); the engine never adds or removes stars mid-game.
func (g *Game) Reindex() {
	g.index = make(map[string]*Star, len(g.Stars))
	for _, s := range g.Stars {
		g.index[s.ID] = s
	}
}

// Player returns the state for a player faction.
func (g *Game) Player(f Faction) *Player {
	return g.Players[f]
}

// FleetsOf returns the live fleets owned by a faction, in fleet-id order.
// Fleets are appended with monotonically increasing per-owner ids, so slice
// order already satisfies this.
func (g *Game) FleetsOf(f Faction) []*Fleet {
	var out []*Fleet
	for _, fl := range g.Fleets {
		if fl.Owner == f {
			out = append(out, fl)
		}
	}
	return out
}

// RemoveFleet deletes a fleet from the aggregate. The fleet's ships are
// gone (hyperspace loss) or already merged into a star.
func (g *Game) RemoveFleet(target *Fleet) {
	for i, fl := range g.Fleets {
		if fl == target {
			g.Fleets = append(g.Fleets[:i], g.Fleets[i+1:]...)
			return
		}
	}
}

// TotalShips sums a faction's ships across stars and fleets. Used by
// conservation checks in tests and by the CLI summary.
func (g *Game) TotalShips(f Faction) int {
	total := 0
	for _, s := range g.Stars {
		total += s.ShipsOf(f)
	}
	for _, fl := range g.Fleets {
		if fl.Owner == f {
			total += fl.Ships
		}
	}
	return total
}

// LastTurn returns the most recent history record, or nil before turn 1.
func (g *Game) LastTurn() *TurnRecord {
	if len(g.History) == 0 {
		return nil
	}
	return &g.History[len(g.History)-1]
}

// Validate checks structural invariants after load. It does not re-check
// rule outcomes; replay verification does that.
func (g *Game) Validate() error {
	if len(g.Stars) != StarCount {
		return fmt.Errorf("expected %d stars, have %d", StarCount, len(g.Stars))
	}
	homes := 0
	for _, s := range g.Stars {
		if s.X < 0 || s.X >= GridWidth || s.Y < 0 || s.Y >= GridHeight {
			return fmt.Errorf("star %s off grid at (%d,%d)", s.ID, s.X, s.Y)
		}
		for f, n := range s.Ships {
			if n < 0 {
				return fmt.Errorf("star %s has %d %s ships", s.ID, n, f)
			}
		}
		if s.Home.IsPlayer() {
			homes++
		}
	}
	if homes != 2 {
		return fmt.Errorf("expected 2 home stars, have %d", homes)
	}
	for _, fl := range g.Fleets {
		if fl.Ships <= 0 {
			return fmt.Errorf("fleet %s-%d has %d ships", fl.Owner, fl.ID, fl.Ships)
		}
		if fl.Distance < 0 {
			return fmt.Errorf("fleet %s-%d has negative distance", fl.Owner, fl.ID)
		}
	}
	for _, f := range PlayerFactions {
		p := g.Players[f]
		if p == nil {
			return fmt.Errorf("missing player state for %s", f)
		}
		if g.Star(p.HomeStar) == nil {
			return fmt.Errorf("%s home star %q not on map", f, p.HomeStar)
		}
	}
	return nil
}
