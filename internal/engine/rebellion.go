package engine

import (
	"log/slog"

	"github.com/hollis-b/farstar/internal/game"
)

// runRebellionAndProduction runs phase four: all rebellion rolls first, then
// production. The two sub-steps never interleave — a star that rebels this
// turn produces nothing even when its owner puts the uprising down.
//
// RNG order: candidate stars roll in map generation order.
func runRebellionAndProduction(g *game.Game, rec *game.TurnRecord) {
	rebelled := make(map[string]bool)

	for _, s := range g.Stars {
		if !s.Owner.IsPlayer() || s.IsHome() {
			continue // home stars are immune, NPC stars have nobody to rebel against
		}
		if s.ShipsOf(s.Owner) >= s.RU {
			continue // garrison meets the threshold
		}
		if g.Rand.Float64() >= game.RebellionChance {
			continue
		}
		rebelled[s.ID] = true
		resolveRebellion(g, s, rec)
	}

	for _, s := range g.Stars {
		if !s.Owner.IsPlayer() || rebelled[s.ID] {
			continue
		}
		produced := s.Production()
		s.AddShips(s.Owner, produced)
		rec.Production = append(rec.Production, game.ProductionReport{
			Star: s.ID, Owner: s.Owner, Produced: produced,
		})
	}
}

// resolveRebellion spawns RU rebels and fights them against the garrison
// under the shared combat rule. A rebel win or tie reverts the star to NPC
// control with the surviving rebels as its garrison.
func resolveRebellion(g *game.Game, s *game.Star, rec *game.TurnRecord) {
	owner := s.Owner
	garrison := s.ShipsOf(owner)
	rebels := s.RU

	rebelLeft, garrisonLeft := clash(rebels, garrison)

	report := game.RebellionReport{
		Star: s.ID, Owner: owner, RU: s.RU,
		GarrisonBefore: garrison, RebelShips: rebels,
	}

	if garrisonLeft > 0 {
		// Uprising crushed; the owner keeps the star with what remains.
		s.SetShips(owner, garrisonLeft)
		report.OwnerHeld = true
		report.GarrisonAfter = garrisonLeft
	} else {
		// Rebels won or traded out the garrison: the star reverts to NPC
		// control, garrisoned by whatever rebels survived.
		s.SetShips(owner, 0)
		s.SetShips(game.Neutral, rebelLeft)
		s.Owner = game.Neutral
		report.GarrisonAfter = rebelLeft
	}

	// The owner was on the ground for the uprising either way.
	g.Player(owner).Observe(s)

	rec.Rebellions = append(rec.Rebellions, report)
	slog.Debug("rebellion", "star", s.ID, "owner", owner,
		"garrison", garrison, "rebels", rebels, "held", report.OwnerHeld)
}
