package bot

import (
	"reflect"
	"testing"

	"github.com/hollis-b/farstar/internal/fog"
	"github.com/hollis-b/farstar/internal/game"
)

func ru(n int) *int { return &n }

func testObs() fog.Observation {
	return fog.Observation{
		Player:     "empire",
		Turn:       5,
		GridWidth:  game.GridWidth,
		GridHeight: game.GridHeight,
		Stars: []fog.StarView{
			{ID: "A", X: 1, Y: 1, KnownRU: ru(4), Owner: fog.SeenSelf, IsHome: true, Ships: 9},
			{ID: "B", X: 3, Y: 2, KnownRU: ru(2), Owner: fog.SeenSelf, Ships: 2},
			{ID: "C", X: 5, Y: 4, KnownRU: ru(3), Owner: fog.SeenNPC},
			{ID: "D", X: 2, Y: 6, Owner: fog.SeenUnknown},
			{ID: "E", X: 10, Y: 8, Owner: fog.SeenOther},
		},
	}
}

func TestOrdersAreDeterministic(t *testing.T) {
	a := New(11).Orders(testObs())
	b := New(11).Orders(testObs())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed, same observation, different orders:\n%v\n%v", a, b)
	}
}

func TestKeepsGarrisonAtThreshold(t *testing.T) {
	batch := New(1).Orders(testObs())
	for _, o := range batch {
		if o.From == "B" {
			t.Fatal("star B has no surplus over its RU and must not ship out")
		}
		if o.From != "A" {
			t.Fatalf("unexpected origin %s", o.From)
		}
		if o.Ships != 9-4 {
			t.Fatalf("surplus from A = %d, want 5", o.Ships)
		}
	}
	if len(batch) != 1 {
		t.Fatalf("expected one order from the home star, got %v", batch)
	}
}

func TestTargetsOnlyForeignStars(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		for _, o := range New(seed).Orders(testObs()) {
			if o.To == "A" || o.To == "B" {
				t.Fatalf("seed %d: bot targeted its own star %s", seed, o.To)
			}
		}
	}
}

func TestNoTargetsNoOrders(t *testing.T) {
	obs := fog.Observation{
		Stars: []fog.StarView{
			{ID: "A", KnownRU: ru(4), Owner: fog.SeenSelf, Ships: 20},
		},
	}
	if batch := New(3).Orders(obs); batch != nil {
		t.Fatalf("nowhere to go, but produced %v", batch)
	}
}
