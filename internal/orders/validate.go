// Package orders validates a player's proposed order batch against the
// current game state.
//
// Two error tiers, by design: over-committing a star's garrison rejects the
// whole batch, so a player cannot fish for partial execution by asking for
// more than they have. Every other mistake — a stale star id, an origin lost
// since planning, a zero ship count — skips just that order, because it
// reflects a race between planning and execution rather than intent.
package orders

import (
	"fmt"

	"github.com/hollis-b/farstar/internal/game"
)

// Skip pairs a rejected order with the reason it was dropped.
type Skip struct {
	Order  game.Order `json:"order"`
	Reason string     `json:"reason"`
}

// Result is the outcome of validating one player's batch. When Fatal is
// non-empty the batch was rejected wholesale and Accepted is nil; otherwise
// Accepted holds the orders to execute and Skipped the individual rejects.
type Result struct {
	Fatal    string       `json:"fatal,omitempty"`
	Accepted []game.Order `json:"accepted,omitempty"`
	Skipped  []Skip       `json:"skipped,omitempty"`
}

// Validate checks a batch for the submitting faction. It never returns an
// engine error: malformed input lands in Fatal or Skipped, and the turn
// pipeline proceeds regardless.
func Validate(g *game.Game, f game.Faction, batch []game.Order) Result {
	// Pass 1: over-commitment. Ownership is checked before summing — an
	// order from a star the player does not own is an individual error
	// below and must not poison this star's total.
	requested := make(map[string]int)
	for _, o := range batch {
		origin := g.Star(o.From)
		if origin == nil || origin.Owner != f || o.Ships <= 0 {
			continue
		}
		requested[o.From] += o.Ships
	}
	for _, s := range g.Stars {
		want, ok := requested[s.ID]
		if !ok {
			continue
		}
		have := s.ShipsOf(f)
		if want > have {
			return Result{Fatal: fmt.Sprintf(
				"orders from star %s request %d ships but only %d are stationed there",
				s.ID, want, have)}
		}
	}

	// Pass 2: per-order checks, each failure skipping only its own order.
	var res Result
	for _, o := range batch {
		if reason := checkOrder(g, f, o); reason != "" {
			res.Skipped = append(res.Skipped, Skip{Order: o, Reason: reason})
			continue
		}
		res.Accepted = append(res.Accepted, o)
	}
	return res
}

func checkOrder(g *game.Game, f game.Faction, o game.Order) string {
	origin := g.Star(o.From)
	if origin == nil {
		return fmt.Sprintf("origin star %q does not exist", o.From)
	}
	if g.Star(o.To) == nil {
		return fmt.Sprintf("destination star %q does not exist", o.To)
	}
	if origin.Owner != f {
		return fmt.Sprintf("star %s is not under your control", o.From)
	}
	if o.Ships <= 0 {
		return fmt.Sprintf("ship count %d must be positive", o.Ships)
	}
	if o.From == o.To {
		return fmt.Sprintf("origin and destination are both star %s", o.From)
	}
	return ""
}
