// Package fog projects the full Game into what one player is allowed to
// see. The projection is built only from that player's knowledge maps and
// the report entries that involve them — it never reads the opponent's
// ships, fleets, or unrevealed resource values, so there is nothing to
// leak even if a caller serializes the whole view.
package fog

import (
	"github.com/hollis-b/farstar/internal/game"
)

// Ownership tags in a player's view. The viewing player always reads as
// "self" and the opponent as "other", whichever faction they actually are.
const (
	SeenSelf    = "self"
	SeenOther   = "other"
	SeenNPC     = "npc"
	SeenUnknown = "unknown"
)

// Observation is the complete per-player view for one turn.
type Observation struct {
	Player     string           `json:"player"`
	Turn       int              `json:"turn"`
	GridWidth  int              `json:"grid_width"`
	GridHeight int              `json:"grid_height"`
	Winner     string           `json:"winner,omitempty"`
	Stars      []StarView       `json:"stars"`
	Fleets     []FleetView      `json:"fleets"`
	Combats    []CombatView     `json:"combats,omitempty"`
	Rebellions []RebellionView  `json:"rebellions,omitempty"`
	Production []ProductionView `json:"production,omitempty"`
	Arrivals   []ArrivalView    `json:"arrivals,omitempty"`
	Losses     []LossView       `json:"losses,omitempty"`
	Errors     []string         `json:"order_errors,omitempty"`
}

// StarView is one star as the player knows it. KnownRU is nil until the
// player has observed the star; Owner reflects the player's last direct
// observation and may be stale.
type StarView struct {
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	KnownRU *int   `json:"known_ru"`
	Owner   string `json:"owner_as_seen"`
	IsHome  bool   `json:"is_home"`
	Ships   int    `json:"ships,omitempty"` // own stationed ships only
}

// FleetView is one of the player's own fleets in transit.
type FleetView struct {
	ID       int    `json:"id"`
	Ships    int    `json:"ships"`
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
}

// CombatView is a last-turn engagement involving the player, with factions
// rewritten into the player's perspective.
type CombatView struct {
	Star           string `json:"star"`
	Attacker       string `json:"attacker"`
	Defender       string `json:"defender"`
	AttackerShips  int    `json:"attacker_ships"`
	DefenderShips  int    `json:"defender_ships"`
	AttackerLosses int    `json:"attacker_losses"`
	DefenderLosses int    `json:"defender_losses"`
	ControlBefore  string `json:"control_before"`
	ControlAfter   string `json:"control_after"`
}

// RebellionView is a last-turn uprising at one of the player's stars.
type RebellionView struct {
	Star           string `json:"star"`
	RU             int    `json:"ru"`
	GarrisonBefore int    `json:"garrison_before"`
	RebelShips     int    `json:"rebel_ships"`
	Held           bool   `json:"held"`
	GarrisonAfter  int    `json:"garrison_after"`
}

// ProductionView is last-turn output at one of the player's stars.
type ProductionView struct {
	Star     string `json:"star"`
	Produced int    `json:"produced"`
}

// ArrivalView is one of the player's fleets reaching its destination.
type ArrivalView struct {
	FleetID int    `json:"fleet_id"`
	Star    string `json:"star"`
	Ships   int    `json:"ships"`
}

// LossView is one of the player's fleets destroyed in hyperspace.
type LossView struct {
	FleetID int    `json:"fleet_id"`
	Ships   int    `json:"ships"`
	To      string `json:"to"`
}

// Build produces the observation for one player from the current state and
// the most recent turn record.
func Build(g *game.Game, f game.Faction) Observation {
	p := g.Player(f)
	obs := Observation{
		Player:     f.String(),
		Turn:       g.Turn,
		GridWidth:  game.GridWidth,
		GridHeight: game.GridHeight,
	}
	if g.Winner != game.Undecided {
		obs.Winner = g.Winner.String()
	}

	for _, s := range g.Stars {
		view := StarView{
			ID: s.ID, X: s.X, Y: s.Y,
			Owner:  SeenUnknown,
			IsHome: s.ID == p.HomeStar,
		}
		if ru, ok := p.KnownRU[s.ID]; ok {
			view.KnownRU = &ru
		}
		if seen, ok := p.KnownOwner[s.ID]; ok {
			view.Owner = perspective(seen, f)
		}
		if s.Owner == f {
			// Own stars are always fully visible and current.
			view.Owner = SeenSelf
			view.Ships = s.ShipsOf(f)
		}
		obs.Stars = append(obs.Stars, view)
	}

	for _, fl := range g.FleetsOf(f) {
		obs.Fleets = append(obs.Fleets, FleetView{
			ID: fl.ID, Ships: fl.Ships,
			From: fl.From, To: fl.To, Distance: fl.Distance,
		})
	}

	last := g.LastTurn()
	if last == nil {
		return obs
	}

	for _, c := range last.Combats {
		if c.Attacker != f && c.Defender != f {
			continue
		}
		obs.Combats = append(obs.Combats, CombatView{
			Star:           c.Star,
			Attacker:       perspective(c.Attacker, f),
			Defender:       perspective(c.Defender, f),
			AttackerShips:  c.AttackerShips,
			DefenderShips:  c.DefenderShips,
			AttackerLosses: c.AttackerLosses,
			DefenderLosses: c.DefenderLosses,
			ControlBefore:  perspective(c.ControlBefore, f),
			ControlAfter:   perspective(c.ControlAfter, f),
		})
	}
	for _, r := range last.Rebellions {
		if r.Owner != f {
			continue
		}
		obs.Rebellions = append(obs.Rebellions, RebellionView{
			Star: r.Star, RU: r.RU,
			GarrisonBefore: r.GarrisonBefore,
			RebelShips:     r.RebelShips,
			Held:           r.OwnerHeld,
			GarrisonAfter:  r.GarrisonAfter,
		})
	}
	for _, pr := range last.Production {
		if pr.Owner != f {
			continue
		}
		obs.Production = append(obs.Production, ProductionView{Star: pr.Star, Produced: pr.Produced})
	}
	for _, a := range last.Arrivals {
		if a.Owner != f {
			continue
		}
		obs.Arrivals = append(obs.Arrivals, ArrivalView{FleetID: a.FleetID, Star: a.Star, Ships: a.Ships})
	}
	for _, l := range last.Losses {
		if l.Owner != f {
			continue
		}
		obs.Losses = append(obs.Losses, LossView{FleetID: l.FleetID, Ships: l.Ships, To: l.To})
	}
	obs.Errors = append(obs.Errors, last.Errors[f]...)

	return obs
}

// perspective rewrites a faction into the viewing player's terms.
func perspective(seen, viewer game.Faction) string {
	switch seen {
	case viewer:
		return SeenSelf
	case viewer.Opponent():
		return SeenOther
	default:
		return SeenNPC
	}
}
