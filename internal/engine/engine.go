// Package engine executes turns. A turn is one atomic transformation of the
// Game aggregate: five phases in fixed order — movement, combat, victory
// assessment, rebellion and production, order processing — with an early
// exit when a victory or draw is decided in phase three.
//
// The engine is synchronous and does no I/O, locking, or blocking of any
// kind. A host embedding games in a concurrent process must serialize calls
// per Game itself; see cmd/farstard for the mutex-per-session pattern.
package engine

import (
	"errors"

	"github.com/hollis-b/farstar/internal/game"
)

// ErrGameOver is returned when a turn is submitted to a decided game.
var ErrGameOver = errors.New("game already has a result")

// Execute runs one full turn. Orders may be missing or empty for either
// player (a pass). The returned record is the history entry appended for
// the turn; it aliases the Game's history, callers must not mutate it.
func Execute(g *game.Game, submitted map[game.Faction][]game.Order) (*game.TurnRecord, error) {
	if g.Winner != game.Undecided {
		return nil, ErrGameOver
	}

	rec := game.TurnRecord{
		Turn:   g.Turn,
		Orders: make(map[game.Faction][]game.Order, 2),
		Errors: make(map[game.Faction][]string),
	}
	for _, f := range game.PlayerFactions {
		rec.Orders[f] = append([]game.Order(nil), submitted[f]...)
		g.Player(f).OrderErrors = nil
	}

	moveFleets(g, &rec)
	resolveAllCombat(g, &rec)

	if outcome := assessVictory(g, &rec); outcome != game.Undecided {
		g.Winner = outcome
		rec.Digest = g.Digest()
		g.History = append(g.History, rec)
		return g.LastTurn(), nil
	}

	runRebellionAndProduction(g, &rec)
	processOrders(g, &rec)

	g.Turn++
	rec.Digest = g.Digest()
	g.History = append(g.History, rec)
	return g.LastTurn(), nil
}

// assessVictory checks whether either player won combat at the opponent's
// home star this turn. Mutual capture in the same turn is a draw.
func assessVictory(g *game.Game, rec *game.TurnRecord) game.Outcome {
	captured := make(map[game.Faction]bool, 2)
	for _, f := range game.PlayerFactions {
		oppHome := g.Player(f.Opponent()).HomeStar
		for _, c := range rec.Combats {
			if c.Star == oppHome && c.ControlAfter == f {
				captured[f] = true
			}
		}
	}
	switch {
	case captured[game.Empire] && captured[game.Federation]:
		return game.Draw
	case captured[game.Empire]:
		return game.EmpireWins
	case captured[game.Federation]:
		return game.FederationWins
	default:
		return game.Undecided
	}
}
