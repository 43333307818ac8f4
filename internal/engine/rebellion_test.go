package engine

import (
	"testing"

	"github.com/hollis-b/farstar/internal/game"
)

func TestRebellionRevertsStar(t *testing.T) {
	// RU 3, garrison 2: the uprising spawns exactly 3 rebels, 3 v 2 kills
	// the garrison, and the rebels keep 3 - ceil(2/2) = 2 ships.
	seed := firstRollBelow(t, game.RebellionChance)
	g := fixture(seed)
	d := g.Star("D") // RU 3
	d.Owner = game.Empire
	d.SetShips(game.Neutral, 0)
	d.SetShips(game.Empire, 2)

	rec := newRecord(g)
	runRebellionAndProduction(g, rec)

	if d.Owner != game.Neutral {
		t.Fatalf("owner = %v, want reverted to NPC", d.Owner)
	}
	if got := d.ShipsOf(game.Neutral); got != 2 {
		t.Fatalf("rebel garrison = %d, want 2", got)
	}
	if d.ShipsOf(game.Empire) != 0 {
		t.Fatal("the stationed garrison must be eliminated")
	}

	if len(rec.Rebellions) != 1 {
		t.Fatalf("recorded %d rebellions, want 1", len(rec.Rebellions))
	}
	r := rec.Rebellions[0]
	if r.RebelShips != 3 || r.GarrisonBefore != 2 || r.GarrisonAfter != 2 || r.OwnerHeld {
		t.Fatalf("rebellion report wrong: %+v", r)
	}

	// A star that rebelled produces nothing this turn.
	for _, pr := range rec.Production {
		if pr.Star == "D" {
			t.Fatal("rebelled star must not produce")
		}
	}
}

func TestHomeStarsNeverRebel(t *testing.T) {
	// An empty home star is maximally undergarrisoned; across many seeds it
	// must never roll for rebellion.
	for seed := int64(1); seed <= 200; seed++ {
		g := fixture(seed)
		g.Star("A").SetShips(game.Empire, 0)

		rec := newRecord(g)
		runRebellionAndProduction(g, rec)

		for _, r := range rec.Rebellions {
			if r.Star == "A" {
				t.Fatalf("seed %d: home star rebelled", seed)
			}
		}
	}
}

func TestGarrisonAtThresholdNeverRebels(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		g := fixture(seed)
		d := g.Star("D") // RU 3
		d.Owner = game.Empire
		d.SetShips(game.Neutral, 0)
		d.SetShips(game.Empire, 3) // exactly RU

		rec := newRecord(g)
		runRebellionAndProduction(g, rec)

		if len(rec.Rebellions) != 0 {
			t.Fatalf("seed %d: garrison == RU must not trigger a roll", seed)
		}
	}
}

func TestProduction(t *testing.T) {
	seed := firstRollsAtLeast(t, 4, game.RebellionChance)
	g := fixture(seed)
	c := g.Star("C") // RU 2
	c.Owner = game.Federation
	c.SetShips(game.Neutral, 0)
	c.SetShips(game.Federation, 5)

	rec := newRecord(g)
	runRebellionAndProduction(g, rec)

	if got := c.ShipsOf(game.Federation); got != 7 {
		t.Fatalf("garrison = %d, want 5 + RU 2", got)
	}
	if got := g.Star("A").ShipsOf(game.Empire); got != 4+game.HomeRU {
		t.Fatalf("home garrison = %d, want 4 + %d", got, game.HomeRU)
	}

	// NPC stars produce nothing.
	if got := g.Star("D").ShipsOf(game.Neutral); got != 3 {
		t.Fatalf("NPC garrison = %d, want unchanged 3", got)
	}

	wantReports := 3 // two homes plus C
	if len(rec.Production) != wantReports {
		t.Fatalf("recorded %d production reports, want %d", len(rec.Production), wantReports)
	}
}

func TestRebellionObservedByOwner(t *testing.T) {
	seed := firstRollBelow(t, game.RebellionChance)
	g := fixture(seed)
	d := g.Star("D")
	d.Owner = game.Empire
	d.SetShips(game.Neutral, 0)
	d.SetShips(game.Empire, 1)

	runRebellionAndProduction(g, newRecord(g))

	p := g.Player(game.Empire)
	if p.KnownOwner["D"] != game.Neutral {
		t.Fatalf("owner should have seen the star fall, knowledge = %v", p.KnownOwner["D"])
	}
}
