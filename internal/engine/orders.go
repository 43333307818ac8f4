package engine

import (
	"log/slog"

	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/orders"
)

// processOrders runs phase five: validate each player's batch against the
// post-production state and turn the survivors into fleets.
//
// Timing invariant: fleets created here hold position until next turn's
// movement phase — combat for this turn already resolved, and by departing
// before next turn's combat they will not defend their origin then either.
// Ships are deducted from the origin the moment the fleet is created.
func processOrders(g *game.Game, rec *game.TurnRecord) {
	for _, f := range game.PlayerFactions {
		p := g.Player(f)
		res := orders.Validate(g, f, rec.Orders[f])

		if res.Fatal != "" {
			p.LogOrderError(res.Fatal)
			rec.Errors[f] = append(rec.Errors[f], res.Fatal)
			slog.Debug("order batch rejected", "player", f, "reason", res.Fatal)
			continue
		}
		for _, skip := range res.Skipped {
			p.LogOrderError(skip.Reason)
			rec.Errors[f] = append(rec.Errors[f], skip.Reason)
		}

		for _, o := range res.Accepted {
			origin := g.Star(o.From)
			dest := g.Star(o.To)
			origin.AddShips(f, -o.Ships)

			p.NextFleetID++
			fl := &game.Fleet{
				ID:       p.NextFleetID,
				Owner:    f,
				Ships:    o.Ships,
				From:     o.From,
				To:       o.To,
				Distance: origin.DistanceTo(dest),
			}
			g.Fleets = append(g.Fleets, fl)
		}
	}
}
