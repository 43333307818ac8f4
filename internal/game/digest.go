package game

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"lukechampine.com/blake3"
)

// digestState is the canonical projection hashed by Digest. Maps are
// flattened into sorted slices so the encoding is byte-stable.
type digestState struct {
	Seed    int64          `json:"seed"`
	Turn    int            `json:"turn"`
	Winner  Outcome        `json:"winner"`
	Stars   []digestStar   `json:"stars"`
	Fleets  []digestFleet  `json:"fleets"`
	Players []digestPlayer `json:"players"`
}

type digestStar struct {
	ID    string  `json:"id"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	RU    int     `json:"ru"`
	Owner Faction `json:"owner"`
	Home  Faction `json:"home"`
	Ships []int   `json:"ships"` // [npc, empire, federation]
}

type digestFleet struct {
	Owner    Faction `json:"owner"`
	ID       int     `json:"id"`
	Ships    int     `json:"ships"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance int     `json:"distance"`
}

type digestPlayer struct {
	Faction     Faction  `json:"faction"`
	NextFleetID int      `json:"next_fleet_id"`
	KnownRU     []string `json:"known_ru"`    // "id=ru", sorted
	KnownOwner  []string `json:"known_owner"` // "id=owner", sorted
}

// Digest returns a blake3 hash of the replay-relevant state. Two games with
// equal digests have identical stars, fleets, knowledge, and turn position;
// the persistence layer stores a digest per turn so replays can be audited.
func (g *Game) Digest() string {
	st := digestState{
		Seed:   g.Seed,
		Turn:   g.Turn,
		Winner: g.Winner,
	}

	stars := make([]digestStar, 0, len(g.Stars))
	for _, s := range g.Stars {
		stars = append(stars, digestStar{
			ID: s.ID, X: s.X, Y: s.Y, RU: s.RU, Owner: s.Owner, Home: s.Home,
			Ships: []int{s.ShipsOf(Neutral), s.ShipsOf(Empire), s.ShipsOf(Federation)},
		})
	}
	sort.Slice(stars, func(i, j int) bool { return stars[i].ID < stars[j].ID })
	st.Stars = stars

	fleets := make([]digestFleet, 0, len(g.Fleets))
	for _, fl := range g.Fleets {
		fleets = append(fleets, digestFleet{
			Owner: fl.Owner, ID: fl.ID, Ships: fl.Ships,
			From: fl.From, To: fl.To, Distance: fl.Distance,
		})
	}
	sort.Slice(fleets, func(i, j int) bool {
		if fleets[i].Owner != fleets[j].Owner {
			return fleets[i].Owner < fleets[j].Owner
		}
		return fleets[i].ID < fleets[j].ID
	})
	st.Fleets = fleets

	for _, f := range PlayerFactions {
		p := g.Players[f]
		if p == nil {
			continue
		}
		dp := digestPlayer{Faction: f, NextFleetID: p.NextFleetID}
		for id, ru := range p.KnownRU {
			dp.KnownRU = append(dp.KnownRU, fmt.Sprintf("%s=%d", id, ru))
		}
		for id, owner := range p.KnownOwner {
			dp.KnownOwner = append(dp.KnownOwner, fmt.Sprintf("%s=%d", id, owner))
		}
		sort.Strings(dp.KnownRU)
		sort.Strings(dp.KnownOwner)
		st.Players = append(st.Players, dp)
	}

	data, err := json.Marshal(st)
	if err != nil {
		// All field types above marshal without error.
		panic(err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
