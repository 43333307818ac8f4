package mapgen

import (
	"sort"
	"testing"

	"github.com/hollis-b/farstar/internal/game"
)

func TestDeterministicGeneration(t *testing.T) {
	a := NewGame(42)
	b := NewGame(42)
	if a.Digest() != b.Digest() {
		t.Fatal("same seed must generate an identical game")
	}

	c := NewGame(43)
	if a.Digest() == c.Digest() {
		t.Fatal("different seeds should not collide on the full map layout")
	}
}

func TestStarCountAndPlacement(t *testing.T) {
	g := NewGame(7)

	if len(g.Stars) != game.StarCount {
		t.Fatalf("star count = %d, want %d", len(g.Stars), game.StarCount)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("generated game invalid: %v", err)
	}

	seen := make(map[[2]int]bool)
	for _, s := range g.Stars {
		cell := [2]int{s.X, s.Y}
		if seen[cell] {
			t.Fatalf("two stars share cell (%d,%d)", s.X, s.Y)
		}
		seen[cell] = true
	}
}

func TestQuadrantBudgets(t *testing.T) {
	g := NewGame(99)

	// NPC RU sums per quadrant must be exactly {NW:8, NE:6, SW:6, SE:8}.
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, s := range g.Stars {
		if s.IsHome() {
			continue
		}
		q := quadrantOf(s.X, s.Y)
		sums[q] += s.RU
		counts[q]++
		if s.RU < 1 || s.RU > 3 {
			t.Errorf("NPC star %s has RU %d outside 1..3", s.ID, s.RU)
		}
		if s.ShipsOf(game.Neutral) != s.RU {
			t.Errorf("NPC star %s garrison %d, want RU %d", s.ID, s.ShipsOf(game.Neutral), s.RU)
		}
	}
	want := map[string]int{"NW": 8, "NE": 6, "SW": 6, "SE": 8}
	wantCount := map[string]int{"NW": 4, "NE": 3, "SW": 3, "SE": 4}
	for q, sum := range want {
		if sums[q] != sum {
			t.Errorf("quadrant %s NPC RU sum = %d, want %d", q, sums[q], sum)
		}
		if counts[q] != wantCount[q] {
			t.Errorf("quadrant %s NPC star count = %d, want %d", q, counts[q], wantCount[q])
		}
	}
}

func TestHomeStars(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := NewGame(seed)

		empHome := g.Star(g.Player(game.Empire).HomeStar)
		fedHome := g.Star(g.Player(game.Federation).HomeStar)

		if empHome.RU != game.HomeRU || fedHome.RU != game.HomeRU {
			t.Fatalf("seed %d: home RU must be %d", seed, game.HomeRU)
		}
		if empHome.ShipsOf(game.Empire) != game.HomeRU {
			t.Fatalf("seed %d: empire home garrison = %d", seed, empHome.ShipsOf(game.Empire))
		}
		if quadrantOf(empHome.X, empHome.Y) != "NW" {
			t.Fatalf("seed %d: empire home in %s quadrant", seed, quadrantOf(empHome.X, empHome.Y))
		}
		if quadrantOf(fedHome.X, fedHome.Y) != "SE" {
			t.Fatalf("seed %d: federation home in %s quadrant", seed, quadrantOf(fedHome.X, fedHome.Y))
		}
		if d := empHome.DistanceTo(fedHome); d < MinHomeSeparation {
			t.Fatalf("seed %d: home separation %d < %d", seed, d, MinHomeSeparation)
		}
	}
}

func TestLetterAssignmentIsPermutation(t *testing.T) {
	g := NewGame(3)

	var ids []string
	for _, s := range g.Stars {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	for i, id := range ids {
		want := string(letters[i])
		if id != want {
			t.Fatalf("sorted ids[%d] = %q, want %q (not a permutation of the alphabet)", i, id, want)
		}
	}
}

func TestLetterAssignmentVariesWithSeed(t *testing.T) {
	// The id of the first generated star (the Empire home) should vary
	// across seeds if the shuffle actually decouples id from position.
	first := make(map[string]bool)
	for seed := int64(1); seed <= 40; seed++ {
		first[NewGame(seed).Stars[0].ID] = true
	}
	if len(first) < 5 {
		t.Fatalf("empire home drew only %d distinct letters over 40 seeds", len(first))
	}
}

func TestInitialKnowledge(t *testing.T) {
	g := NewGame(11)
	for _, f := range game.PlayerFactions {
		p := g.Player(f)
		home := p.HomeStar
		if p.KnownRU[home] != game.HomeRU {
			t.Fatalf("%s does not know its own home RU", f)
		}
		if p.KnownOwner[home] != f {
			t.Fatalf("%s does not know it controls its home", f)
		}
		if len(p.KnownRU) != 1 {
			t.Fatalf("%s starts knowing %d stars, want just its home", f, len(p.KnownRU))
		}
	}
}

func quadrantOf(x, y int) string {
	switch {
	case x < game.GridWidth/2 && y < game.GridHeight/2:
		return "NW"
	case x >= game.GridWidth/2 && y < game.GridHeight/2:
		return "NE"
	case x < game.GridWidth/2:
		return "SW"
	default:
		return "SE"
	}
}
