package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hollis-b/farstar/internal/fog"
)

func TestGameLifecycle(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil).Handler())
	defer srv.Close()

	// Create a seeded game.
	resp, err := http.Post(srv.URL+"/api/v1/games", "application/json",
		strings.NewReader(`{"seed": 42}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID   string `json:"id"`
		Seed int64  `json:"seed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	resp.Body.Close()
	if created.Seed != 42 || created.ID == "" {
		t.Fatalf("create response wrong: %+v", created)
	}

	base := srv.URL + "/api/v1/games/" + created.ID

	// Each player sees a fogged board.
	resp, err = http.Get(base + "/observation?player=empire")
	if err != nil {
		t.Fatalf("observation: %v", err)
	}
	var obs fog.Observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		t.Fatalf("decode observation: %v", err)
	}
	resp.Body.Close()
	if obs.Turn != 1 || len(obs.Stars) != 16 {
		t.Fatalf("observation wrong: turn %d, %d stars", obs.Turn, len(obs.Stars))
	}

	// First player stages; nothing executes yet.
	resp, err = http.Post(base+"/orders?player=empire", "application/json",
		strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("stage empire: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("staging status = %d, want 202", resp.StatusCode)
	}
	resp.Body.Close()

	// Second player stages; the turn executes.
	resp, err = http.Post(base+"/orders?player=federation", "application/json",
		strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("stage federation: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("execute status = %d, want 200", resp.StatusCode)
	}
	var executed struct {
		Executed int `json:"executed"`
		Turn     int `json:"turn"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&executed); err != nil {
		t.Fatalf("decode execute: %v", err)
	}
	resp.Body.Close()
	if executed.Executed != 1 || executed.Turn != 2 {
		t.Fatalf("turn bookkeeping wrong: %+v", executed)
	}

	// Status shows the new turn with a cleared staging area.
	resp, err = http.Get(base)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status struct {
		Turn   int             `json:"turn"`
		Staged map[string]bool `json:"staged"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	resp.Body.Close()
	if status.Turn != 2 || status.Staged["empire"] || status.Staged["federation"] {
		t.Fatalf("status wrong: %+v", status)
	}
}

func TestBadRequests(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/games/not-a-game")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing game status = %d, want 404", resp.StatusCode)
	}

	created, err := http.Post(srv.URL+"/api/v1/games", "application/json", strings.NewReader(`{"seed": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		ID string `json:"id"`
	}
	json.NewDecoder(created.Body).Decode(&out)
	created.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/games/" + out.ID + "/observation?player=klingon")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad player status = %d, want 400", resp.StatusCode)
	}
}
