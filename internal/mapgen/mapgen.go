// Package mapgen builds the opening 16-star map with balanced quadrant
// allocation and assembles a fresh Game around it.
//
// RNG draw order (fixed, part of the replay contract): star letters are
// shuffled first, then the Empire home cell, then the Federation home cell
// (re-drawn until the two homes are at least MinHomeSeparation apart), then
// each quadrant in NW, NE, SW, SE order shuffles its RU budget and places
// its NPC stars.
package mapgen

import (
	"math/rand"

	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/rng"
)

// MinHomeSeparation is the smallest allowed Chebyshev distance between the
// two home stars. The corner draws usually satisfy it on the first attempt;
// the deterministic redraw loop covers the rest.
const MinHomeSeparation = 7

// homeCornerReach bounds the uniform draw for a home star: any cell within
// this Chebyshev distance of its quadrant's outer corner.
const homeCornerReach = 3

// letters is the full id alphabet. A seeded shuffle maps letters to stars in
// generation order, so an id carries no information about where or in what
// order its star was placed.
const letters = "ABCDEFGHIJKLMNOP"

// starNames gives each letter a fixed display name.
var starNames = map[byte]string{
	'A': "Achernar", 'B': "Betelgeuse", 'C': "Canopus", 'D': "Deneb",
	'E': "Electra", 'F': "Fomalhaut", 'G': "Gienah", 'H': "Hadar",
	'I': "Izar", 'J': "Jabbah", 'K': "Kochab", 'L': "Lesath",
	'M': "Mirach", 'N': "Naos", 'O': "Okab", 'P': "Polaris",
}

// quadrant is a 6×5 region of the 12×10 grid.
type quadrant struct {
	x0, y0  int // top-left cell
	cornerX int // outer grid corner, where a home star anchors
	cornerY int
	home    game.Faction // whose home star this quadrant hosts, Neutral if none
	npcRU   []int        // RU budget for the quadrant's NPC stars
}

// quadrants in generation order: NW, NE, SW, SE. Home quadrants carry four
// NPC stars summing to 8 RU; neutral quadrants three stars summing to 6.
func quadrants() []quadrant {
	return []quadrant{
		{x0: 0, y0: 0, cornerX: 0, cornerY: 0, home: game.Empire, npcRU: []int{1, 2, 2, 3}},
		{x0: game.GridWidth / 2, y0: 0, home: game.Neutral, npcRU: []int{1, 2, 3}},
		{x0: 0, y0: game.GridHeight / 2, home: game.Neutral, npcRU: []int{1, 2, 3}},
		{x0: game.GridWidth / 2, y0: game.GridHeight / 2,
			cornerX: game.GridWidth - 1, cornerY: game.GridHeight - 1,
			home: game.Federation, npcRU: []int{1, 2, 2, 3}},
	}
}

const quadW = game.GridWidth / 2
const quadH = game.GridHeight / 2

// NewGame generates the map for a seed and assembles the full aggregate:
// stars, starting garrisons, and both players with their home stars already
// observed. The returned Game carries the live RNG stream, positioned right
// after map generation.
func NewGame(seed int64) *game.Game {
	r := rng.New(seed)
	stars, homes := generate(r)

	g := &game.Game{
		Seed:    seed,
		Turn:    1,
		Stars:   stars,
		Players: make(map[game.Faction]*game.Player, 2),
		Rand:    r,
	}
	g.Reindex()

	for _, f := range game.PlayerFactions {
		p := game.NewPlayer(f, homes[f])
		p.Observe(g.Star(homes[f]))
		g.Players[f] = p
	}
	return g
}

// generate produces the 16 stars and the home star id per player.
func generate(r *rand.Rand) ([]*game.Star, map[game.Faction]string) {
	ids := []byte(letters)
	r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	next := 0
	nextID := func() string {
		id := string(ids[next])
		next++
		return id
	}

	quads := quadrants()
	occupied := make(map[[2]int]bool)

	// Home stars first: Empire in the NW, Federation in the SE. The
	// Federation home is re-drawn until the separation holds.
	empireHome := placeHome(r, quads[0], occupied, nil)
	fedHome := placeHome(r, quads[3], occupied, empireHome)

	homes := map[game.Faction]string{}
	var stars []*game.Star
	addStar := func(x, y, ru int, owner, home game.Faction) *game.Star {
		id := nextID()
		s := &game.Star{
			ID: id, Name: starNames[id[0]],
			X: x, Y: y, RU: ru,
			Owner: owner, Home: home,
			Ships: make(map[game.Faction]int),
		}
		occupied[[2]int{x, y}] = true
		stars = append(stars, s)
		return s
	}

	s := addStar(empireHome[0], empireHome[1], game.HomeRU, game.Empire, game.Empire)
	s.SetShips(game.Empire, game.HomeRU)
	homes[game.Empire] = s.ID

	s = addStar(fedHome[0], fedHome[1], game.HomeRU, game.Federation, game.Federation)
	s.SetShips(game.Federation, game.HomeRU)
	homes[game.Federation] = s.ID

	// NPC stars per quadrant. Each quadrant's RU budget is shuffled within
	// the quadrant only, so the per-quadrant totals {8,6,6,8} always hold.
	for _, q := range quads {
		rus := append([]int(nil), q.npcRU...)
		r.Shuffle(len(rus), func(i, j int) { rus[i], rus[j] = rus[j], rus[i] })
		for _, ru := range rus {
			x, y := placeInQuadrant(r, q, occupied)
			npc := addStar(x, y, ru, game.Neutral, game.Neutral)
			npc.SetShips(game.Neutral, ru)
		}
	}

	return stars, homes
}

// placeHome draws a home cell uniformly from the cells within
// homeCornerReach of the quadrant's outer corner. When other is non-nil the
// draw repeats until the separation invariant holds.
func placeHome(r *rand.Rand, q quadrant, occupied map[[2]int]bool, other []int) []int {
	for {
		dx := r.Intn(homeCornerReach + 1)
		dy := r.Intn(homeCornerReach + 1)
		x, y := q.cornerX, q.cornerY
		if q.cornerX == 0 {
			x += dx
		} else {
			x -= dx
		}
		if q.cornerY == 0 {
			y += dy
		} else {
			y -= dy
		}
		if occupied[[2]int{x, y}] {
			continue
		}
		if other != nil && game.Chebyshev(x, y, other[0], other[1]) < MinHomeSeparation {
			continue
		}
		return []int{x, y}
	}
}

// placeInQuadrant draws an unoccupied cell uniformly within the quadrant.
func placeInQuadrant(r *rand.Rand, q quadrant, occupied map[[2]int]bool) (int, int) {
	for {
		x := q.x0 + r.Intn(quadW)
		y := q.y0 + r.Intn(quadH)
		if !occupied[[2]int{x, y}] {
			occupied[[2]int{x, y}] = true
			return x, y
		}
	}
}
