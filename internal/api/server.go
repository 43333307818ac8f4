// Package api hosts games over HTTP. The engine itself is synchronous and
// unsynchronized, so the server holds one mutex per session and every read
// or write of a game happens under it — single-writer discipline, one lock
// per game, never a global lock around turn execution.
//
// Turns are simultaneous: each player stages an order batch (empty = pass)
// and the turn executes the moment both sides have staged.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hollis-b/farstar/internal/engine"
	"github.com/hollis-b/farstar/internal/fog"
	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/mapgen"
	"github.com/hollis-b/farstar/internal/persistence"
	"github.com/hollis-b/farstar/internal/rng"
)

// Server serves game sessions over HTTP.
type Server struct {
	Store *persistence.Store // nil disables saves

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one hosted game plus its order staging area.
type session struct {
	mu     sync.Mutex
	game   *game.Game
	staged map[game.Faction][]game.Order
	ready  map[game.Faction]bool // an empty batch is a valid pass, track presence separately
}

// NewServer creates a server. store may be nil for in-memory play.
func NewServer(store *persistence.Store) *Server {
	return &Server{
		Store:    store,
		sessions: make(map[string]*session),
	}
}

// Handler returns the HTTP routes, wrapped in per-IP rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games", s.handleGames)
	mux.HandleFunc("/api/v1/games/", s.handleGameRoutes)
	return RateLimit(mux)
}

// handleGames creates a game (POST) or lists sessions (GET).
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreate(w, r)
	case http.MethodGet:
		s.handleList(w)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	if r.Body != nil {
		// Absent or empty body means "pick a seed for me".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	seed := req.Seed
	if seed == 0 {
		var err error
		seed, err = rng.NewSeed()
		if err != nil {
			http.Error(w, "seed generation failed", http.StatusInternalServerError)
			return
		}
	}

	id := uuid.NewString()
	sess := &session{
		game:   mapgen.NewGame(seed),
		staged: make(map[game.Faction][]game.Order, 2),
		ready:  make(map[game.Faction]bool, 2),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if err := s.save(id, sess.game); err != nil {
		slog.Error("initial save failed", "game", id, "error", err)
	}

	slog.Info("game created", "game", id, "seed", seed)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "seed": seed})
}

func (s *Server) handleList(w http.ResponseWriter) {
	type row struct {
		ID     string `json:"id"`
		Turn   int    `json:"turn"`
		Winner string `json:"winner"`
	}
	var rows []row

	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		rows = append(rows, row{ID: id, Turn: sess.game.Turn, Winner: sess.game.Winner.String()})
		sess.mu.Unlock()
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, rows)
}

// handleGameRoutes dispatches /api/v1/games/{id}[/observation|/orders].
func (s *Server) handleGameRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/games/")
	id, sub, _ := strings.Cut(rest, "/")

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		s.handleStatus(w, sess)
	case sub == "observation" && r.Method == http.MethodGet:
		s.handleObservation(w, r, sess)
	case sub == "orders" && r.Method == http.MethodPost:
		s.handleOrders(w, r, id, sess)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// handleStatus reports public state only: turn, result, who has staged.
func (s *Server) handleStatus(w http.ResponseWriter, sess *session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	staged := make(map[string]bool, 2)
	for _, f := range game.PlayerFactions {
		staged[f.String()] = sess.ready[f]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"turn":   sess.game.Turn,
		"winner": sess.game.Winner.String(),
		"staged": staged,
	})
}

func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request, sess *session) {
	f, ok := playerParam(r)
	if !ok {
		http.Error(w, "player must be empire or federation", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	obs := fog.Build(sess.game, f)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, obs)
}

// handleOrders stages a player's batch and executes the turn once both
// players have staged. Re-staging before execution replaces the batch.
func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request, id string, sess *session) {
	f, ok := playerParam(r)
	if !ok {
		http.Error(w, "player must be empire or federation", http.StatusBadRequest)
		return
	}

	var batch []game.Order
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "invalid order list", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.game.Winner != game.Undecided {
		http.Error(w, "game already decided", http.StatusConflict)
		return
	}

	sess.staged[f] = batch
	sess.ready[f] = true

	bothReady := true
	for _, pf := range game.PlayerFactions {
		if !sess.ready[pf] {
			bothReady = false
		}
	}
	if !bothReady {
		writeJSON(w, http.StatusAccepted, map[string]any{"staged": true, "turn": sess.game.Turn})
		return
	}

	rec, err := engine.Execute(sess.game, sess.staged)
	if errors.Is(err, engine.ErrGameOver) {
		http.Error(w, "game already decided", http.StatusConflict)
		return
	}
	sess.staged = make(map[game.Faction][]game.Order, 2)
	sess.ready = make(map[game.Faction]bool, 2)

	if err := s.save(id, sess.game); err != nil {
		slog.Error("save failed", "game", id, "error", err)
	}

	slog.Info("turn executed", "game", id, "turn", rec.Turn, "winner", sess.game.Winner)
	writeJSON(w, http.StatusOK, map[string]any{
		"executed": rec.Turn,
		"turn":     sess.game.Turn,
		"winner":   sess.game.Winner.String(),
	})
}

func (s *Server) save(id string, g *game.Game) error {
	if s.Store == nil {
		return nil
	}
	return s.Store.SaveGame(id, g)
}

func playerParam(r *http.Request) (game.Faction, bool) {
	switch r.URL.Query().Get("player") {
	case game.Empire.String():
		return game.Empire, true
	case game.Federation.String():
		return game.Federation, true
	default:
		return game.Neutral, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}
