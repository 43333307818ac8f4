package engine

import (
	"log/slog"

	"github.com/hollis-b/farstar/internal/game"
)

// moveFleets runs phase one. Every in-transit fleet rolls the hyperspace
// survival check — a whole-fleet binary, never per-ship attrition — then
// survivors close one parsec and merge into their destination at zero.
//
// RNG order: fleets roll in (owner, fleet id) order. The fleet slice keeps
// per-owner id order by construction, so a grouped pass over PlayerFactions
// is sufficient and stable.
func moveFleets(g *game.Game, rec *game.TurnRecord) {
	var ordered []*game.Fleet
	for _, f := range game.PlayerFactions {
		ordered = append(ordered, g.FleetsOf(f)...)
	}

	for _, fl := range ordered {
		if g.Rand.Float64() < game.HyperspaceLossChance {
			rec.Losses = append(rec.Losses, game.HyperspaceLoss{
				FleetID: fl.ID, Owner: fl.Owner, Ships: fl.Ships,
				From: fl.From, To: fl.To,
			})
			slog.Debug("fleet lost in hyperspace",
				"owner", fl.Owner, "fleet", fl.ID, "ships", fl.Ships, "to", fl.To)
			g.RemoveFleet(fl)
			continue
		}

		fl.Distance--
		if fl.Distance > 0 {
			continue
		}

		// Arrival: ships merge into the stationed count and the owner
		// observes the star — its resource value is revealed for good.
		dest := g.Star(fl.To)
		dest.AddShips(fl.Owner, fl.Ships)
		g.Player(fl.Owner).Observe(dest)

		rec.Arrivals = append(rec.Arrivals, game.Arrival{
			FleetID: fl.ID, Owner: fl.Owner, Star: dest.ID, Ships: fl.Ships,
		})
		g.RemoveFleet(fl)
	}
}
