package engine

import (
	"math/rand"
	"testing"

	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/rng"
)

// findSeed scans for a seed whose stream satisfies pred, so tests can force
// or forbid a probabilistic event without stubbing the RNG.
func findSeed(t *testing.T, pred func(*rand.Rand) bool) int64 {
	t.Helper()
	for seed := int64(1); seed <= 10000; seed++ {
		if pred(rng.New(seed)) {
			return seed
		}
	}
	t.Fatal("no seed found within 10000 attempts")
	return 0
}

// firstRollBelow forces the first Float64 draw under p.
func firstRollBelow(t *testing.T, p float64) int64 {
	return findSeed(t, func(r *rand.Rand) bool { return r.Float64() < p })
}

// firstRollsAtLeast forces the first n Float64 draws to all be >= p.
func firstRollsAtLeast(t *testing.T, n int, p float64) int64 {
	return findSeed(t, func(r *rand.Rand) bool {
		for i := 0; i < n; i++ {
			if r.Float64() < p {
				return false
			}
		}
		return true
	})
}

// fixture builds a minimal hand-rolled game: two homes, two NPC stars, and
// a seeded stream. Stars sit far enough apart for multi-turn transits.
func fixture(seed int64) *game.Game {
	g := &game.Game{
		Seed: seed,
		Turn: 1,
		Stars: []*game.Star{
			{ID: "A", Name: "Achernar", X: 0, Y: 0, RU: game.HomeRU, Owner: game.Empire,
				Home: game.Empire, Ships: map[game.Faction]int{game.Empire: 4}},
			{ID: "B", Name: "Betelgeuse", X: 11, Y: 9, RU: game.HomeRU, Owner: game.Federation,
				Home: game.Federation, Ships: map[game.Faction]int{game.Federation: 4}},
			{ID: "C", Name: "Canopus", X: 4, Y: 4, RU: 2, Owner: game.Neutral,
				Ships: map[game.Faction]int{game.Neutral: 2}},
			{ID: "D", Name: "Deneb", X: 8, Y: 6, RU: 3, Owner: game.Neutral,
				Ships: map[game.Faction]int{game.Neutral: 3}},
		},
		Players: map[game.Faction]*game.Player{},
		Rand:    rng.New(seed),
	}
	for _, f := range game.PlayerFactions {
		home := "A"
		if f == game.Federation {
			home = "B"
		}
		p := game.NewPlayer(f, home)
		p.Observe(g.Star(home))
		g.Players[f] = p
	}
	g.Reindex()
	return g
}

func newRecord(g *game.Game) *game.TurnRecord {
	return &game.TurnRecord{
		Turn:   g.Turn,
		Orders: map[game.Faction][]game.Order{},
		Errors: map[game.Faction][]string{},
	}
}
