// Package persistence stores games in SQLite: a compressed snapshot of the
// current state per game plus an append-only log of each turn's orders and
// post-turn digest. The snapshot is for inspection and listing; the turn
// log plus the seed is the authoritative record, sufficient to replay a
// game bit-exact through the real engine.
package persistence

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"

	"github.com/hollis-b/farstar/internal/game"
)

// ErrNotFound is returned when a game id has no row.
var ErrNotFound = errors.New("game not found")

// ErrCorrupt is returned when a stored blob fails its digest check.
var ErrCorrupt = errors.New("snapshot digest mismatch")

// Store wraps a SQLite connection for game persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		winner INTEGER NOT NULL,
		snapshot BLOB NOT NULL,
		digest TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_turns (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		orders_json TEXT NOT NULL,
		digest TEXT NOT NULL,
		PRIMARY KEY (game_id, turn)
	);

	CREATE INDEX IF NOT EXISTS idx_game_turns_game ON game_turns(game_id);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// GameInfo is a listing row.
type GameInfo struct {
	ID        string       `db:"id"`
	Seed      int64        `db:"seed"`
	Turn      int          `db:"turn"`
	Winner    game.Outcome `db:"winner"`
	UpdatedAt string       `db:"updated_at"`
}

// SaveGame upserts the game snapshot and appends any history records not
// yet in the turn log. Safe to call after every executed turn.
func (st *Store) SaveGame(id string, g *game.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	blob := compress(raw)
	digest := hashHex(raw)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games (id, seed, turn, winner, snapshot, digest, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			turn = excluded.turn,
			winner = excluded.winner,
			snapshot = excluded.snapshot,
			digest = excluded.digest,
			updated_at = excluded.updated_at`,
		id, g.Seed, g.Turn, g.Winner, blob, digest, now, now)
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", id, err)
	}

	var maxTurn sql.NullInt64
	if err := tx.Get(&maxTurn, "SELECT MAX(turn) FROM game_turns WHERE game_id = ?", id); err != nil {
		return fmt.Errorf("read turn log: %w", err)
	}

	for _, rec := range g.History {
		if maxTurn.Valid && int64(rec.Turn) <= maxTurn.Int64 {
			continue
		}
		ordersJSON, err := json.Marshal(rec.Orders)
		if err != nil {
			return fmt.Errorf("encode turn %d orders: %w", rec.Turn, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO game_turns (game_id, turn, orders_json, digest) VALUES (?, ?, ?, ?)",
			id, rec.Turn, string(ordersJSON), rec.Digest); err != nil {
			return fmt.Errorf("append turn %d: %w", rec.Turn, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot restores a game from its stored snapshot. The result carries
// no RNG stream and is read-only: inspect it, build observations from it,
// but replay through Replay to obtain a live game.
func (st *Store) LoadSnapshot(id string) (*game.Game, error) {
	var row struct {
		Snapshot []byte `db:"snapshot"`
		Digest   string `db:"digest"`
	}
	err := st.conn.Get(&row, "SELECT snapshot, digest FROM games WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	raw, err := decompress(row.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	if hashHex(raw) != row.Digest {
		return nil, ErrCorrupt
	}

	var g game.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	g.Reindex()
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot invalid: %w", err)
	}
	return &g, nil
}

// StoredTurn is one row of the turn log.
type StoredTurn struct {
	Turn   int
	Orders map[game.Faction][]game.Order
	Digest string
}

// TurnLog returns a game's recorded turns in order.
func (st *Store) TurnLog(id string) ([]StoredTurn, error) {
	var rows []struct {
		Turn       int    `db:"turn"`
		OrdersJSON string `db:"orders_json"`
		Digest     string `db:"digest"`
	}
	err := st.conn.Select(&rows,
		"SELECT turn, orders_json, digest FROM game_turns WHERE game_id = ? ORDER BY turn", id)
	if err != nil {
		return nil, fmt.Errorf("load turn log %s: %w", id, err)
	}

	out := make([]StoredTurn, 0, len(rows))
	for _, r := range rows {
		var orders map[game.Faction][]game.Order
		if err := json.Unmarshal([]byte(r.OrdersJSON), &orders); err != nil {
			return nil, fmt.Errorf("decode turn %d orders: %w", r.Turn, err)
		}
		out = append(out, StoredTurn{Turn: r.Turn, Orders: orders, Digest: r.Digest})
	}
	return out, nil
}

// Seed returns a stored game's seed.
func (st *Store) Seed(id string) (int64, error) {
	var seed int64
	err := st.conn.Get(&seed, "SELECT seed FROM games WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load seed %s: %w", id, err)
	}
	return seed, nil
}

// ListGames returns all stored games, most recently updated first.
func (st *Store) ListGames() ([]GameInfo, error) {
	var rows []GameInfo
	err := st.conn.Select(&rows,
		"SELECT id, seed, turn, winner, updated_at FROM games ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return rows, nil
}

func compress(src []byte) []byte {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	zw.Write(src)
	zw.Close()
	return buf.Bytes()
}

func decompress(src []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func hashHex(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
