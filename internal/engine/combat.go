package engine

import (
	"log/slog"

	"github.com/hollis-b/farstar/internal/game"
)

// clash is the core combat rule, shared by player-vs-player, player-vs-NPC,
// and rebellion fights: the larger side wins and the loser is eliminated
// outright, with the winner paying ceil(loser/2) ships. Equal counts
// destroy both sides.
func clash(attacker, defender int) (attSurvivors, defSurvivors int) {
	switch {
	case attacker > defender:
		return attacker - (defender+1)/2, 0
	case defender > attacker:
		return 0, defender - (attacker+1)/2
	default:
		return 0, 0
	}
}

// resolveAllCombat runs phase two over every star in generation order.
//
// A star is contested when a player's ships sit at a star they do not
// control. When both players meet at an uncontrolled star the player fleets
// fight first and only the survivor, if any, takes on the NPC garrison.
// An undefended hostile star falls to a trivial engagement — the arriving
// side "wins combat" at no cost, which is what makes a walk-in capture of
// an abandoned home star count for victory assessment.
func resolveAllCombat(g *game.Game, rec *game.TurnRecord) {
	for _, s := range g.Stars {
		resolveStar(g, s, rec)
	}
}

func resolveStar(g *game.Game, s *game.Star, rec *game.TurnRecord) {
	emp := s.ShipsOf(game.Empire)
	fed := s.ShipsOf(game.Federation)

	// Player versus player. The star's controller defends; when neither
	// side controls the star both fleets arrived uninvited, and the report
	// lists the Empire as attacker (the rule itself is symmetric).
	if emp > 0 && fed > 0 {
		attacker, defender := game.Empire, game.Federation
		if s.Owner == game.Empire {
			attacker, defender = game.Federation, game.Empire
		}
		fight(g, s, rec, attacker, defender)
	}

	// A lone player at a star they do not control fights whatever defends
	// it: the owner's garrison (possibly none) or NPC ships.
	for _, f := range game.PlayerFactions {
		if s.ShipsOf(f) > 0 && s.Owner != f {
			defender := game.Neutral
			if s.Owner.IsPlayer() {
				defender = s.Owner
			}
			fight(g, s, rec, f, defender)
		}
	}
}

// fight resolves one engagement at a star, updates ownership and fog-of-war
// knowledge, and appends the combat report.
func fight(g *game.Game, s *game.Star, rec *game.TurnRecord, attacker, defender game.Faction) {
	attShips := s.ShipsOf(attacker)
	defShips := s.ShipsOf(defender)

	attLeft, defLeft := clash(attShips, defShips)
	s.SetShips(attacker, attLeft)
	s.SetShips(defender, defLeft)

	before := s.Owner
	switch {
	case attLeft > 0:
		// A PvP survivor at an uncontrolled star does not take control
		// while an NPC garrison still stands — that fight comes next.
		if defender == game.Neutral || s.Owner.IsPlayer() || s.ShipsOf(game.Neutral) == 0 {
			s.Owner = attacker
		}
	case defLeft > 0:
		if defender.IsPlayer() {
			s.Owner = defender
		}
	default:
		// Mutual destruction leaves the star uncontrolled.
		s.Owner = game.Neutral
	}

	rec.Combats = append(rec.Combats, game.CombatReport{
		Star:           s.ID,
		Attacker:       attacker,
		Defender:       defender,
		AttackerShips:  attShips,
		DefenderShips:  defShips,
		AttackerLosses: attShips - attLeft,
		DefenderLosses: defShips - defLeft,
		ControlBefore:  before,
		ControlAfter:   s.Owner,
	})

	// Fighting at a star is direct observation for both player sides.
	for _, f := range []game.Faction{attacker, defender} {
		if f.IsPlayer() {
			g.Player(f).Observe(s)
		}
	}

	slog.Debug("combat resolved", "star", s.ID,
		"attacker", attacker, "defender", defender,
		"attacker_ships", attShips, "defender_ships", defShips,
		"control", s.Owner)
}
