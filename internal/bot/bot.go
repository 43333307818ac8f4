// Package bot implements a deterministic baseline player. It decides from a
// fog.Observation alone — the same information a human gets — and exists to
// drive self-play runs and engine tests, not to play well.
//
// The bot keeps every garrison at its star's resource value so rebellions
// stay rare, and spends the surplus on the nearest star it does not hold,
// preferring unscouted stars, then NPC stars, then the opponent's.
package bot

import (
	"math/rand"
	"sort"

	"github.com/hollis-b/farstar/internal/fog"
	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/rng"
)

// minRaid is the smallest surplus worth sending anywhere.
const minRaid = 2

// Bot generates one player's orders each turn. Its RNG is private and
// independent of the engine stream, so bot randomness never perturbs the
// game's hyperspace or rebellion draws.
type Bot struct {
	r *rand.Rand
}

// New creates a bot with its own seeded stream.
func New(seed int64) *Bot {
	return &Bot{r: rng.New(seed)}
}

// Orders plans this turn's batch from the observation. The result depends
// only on the observation and the bot's stream position.
func (b *Bot) Orders(obs fog.Observation) []game.Order {
	var mine, targets []fog.StarView
	for _, s := range obs.Stars {
		if s.Owner == fog.SeenSelf {
			mine = append(mine, s)
		} else {
			targets = append(targets, s)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	var batch []game.Order
	for _, origin := range mine {
		keep := game.HomeRU
		if origin.KnownRU != nil {
			keep = *origin.KnownRU
		}
		surplus := origin.Ships - keep
		if surplus < minRaid {
			continue
		}

		dest := b.pickTarget(origin, targets)
		if dest == "" {
			continue
		}
		batch = append(batch, game.Order{From: origin.ID, To: dest, Ships: surplus})
	}
	return batch
}

// pickTarget chooses the most attractive destination for a raid from the
// given star: closest wins within a preference tier, tiers favoring
// unscouted stars over NPC stars over the opponent's. A coin flip
// occasionally drops to the next-best choice so self-play games diverge.
func (b *Bot) pickTarget(origin fog.StarView, targets []fog.StarView) string {
	ranked := append([]fog.StarView(nil), targets...)
	sort.Slice(ranked, func(i, j int) bool {
		ti, tj := tier(ranked[i]), tier(ranked[j])
		if ti != tj {
			return ti < tj
		}
		di := game.Chebyshev(origin.X, origin.Y, ranked[i].X, ranked[i].Y)
		dj := game.Chebyshev(origin.X, origin.Y, ranked[j].X, ranked[j].Y)
		if di != dj {
			return di < dj
		}
		return ranked[i].ID < ranked[j].ID
	})

	pick := 0
	if len(ranked) > 1 && b.r.Float64() < 0.25 {
		pick = 1
	}
	return ranked[pick].ID
}

func tier(s fog.StarView) int {
	switch s.Owner {
	case fog.SeenUnknown:
		return 0
	case fog.SeenNPC:
		return 1
	default:
		return 2
	}
}
