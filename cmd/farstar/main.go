// Command farstar runs seeded self-play games between two baseline bots and
// verifies recorded games by deterministic replay.
//
//	farstar -seed 42 -turns 200 -db games.db
//	farstar -db games.db -replay <game-id>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/hollis-b/farstar/internal/bot"
	"github.com/hollis-b/farstar/internal/engine"
	"github.com/hollis-b/farstar/internal/fog"
	"github.com/hollis-b/farstar/internal/game"
	"github.com/hollis-b/farstar/internal/mapgen"
	"github.com/hollis-b/farstar/internal/persistence"
	"github.com/hollis-b/farstar/internal/rng"
)

func main() {
	var (
		seed    = flag.Int64("seed", 0, "game seed (0 = random)")
		turns   = flag.Int("turns", 300, "turn cap for self-play")
		dbPath  = flag.String("db", "", "sqlite path for saving/replaying games")
		replay  = flag.String("replay", "", "game id to verify by replay (requires -db)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *replay != "" {
		if err := runReplay(*dbPath, *replay); err != nil {
			slog.Error("replay failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runSelfPlay(*seed, *turns, *dbPath); err != nil {
		slog.Error("self-play failed", "error", err)
		os.Exit(1)
	}
}

func runSelfPlay(seed int64, turnCap int, dbPath string) error {
	if seed == 0 {
		var err error
		seed, err = rng.NewSeed()
		if err != nil {
			return err
		}
	}
	slog.Info("starting self-play", "seed", seed, "turn_cap", turnCap)

	g := mapgen.NewGame(seed)
	players := map[game.Faction]*bot.Bot{
		game.Empire:     bot.New(seed + 1),
		game.Federation: bot.New(seed + 2),
	}

	for g.Winner == game.Undecided && g.Turn <= turnCap {
		submitted := make(map[game.Faction][]game.Order, 2)
		for _, f := range game.PlayerFactions {
			submitted[f] = players[f].Orders(fog.Build(g, f))
		}

		rec, err := engine.Execute(g, submitted)
		if err != nil {
			return err
		}
		slog.Debug("turn complete", "turn", rec.Turn,
			"combats", len(rec.Combats), "rebellions", len(rec.Rebellions),
			"losses", len(rec.Losses))
	}

	if dbPath != "" {
		store, err := persistence.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id := uuid.NewString()
		if err := store.SaveGame(id, g); err != nil {
			return err
		}
		slog.Info("game saved", "game", id, "db", dbPath)
	}

	printSummary(g)
	return nil
}

func printSummary(g *game.Game) {
	turnsPlayed := len(g.History)
	if g.Winner == game.Undecided {
		fmt.Printf("No decision after %d turns.\n", turnsPlayed)
	} else {
		fmt.Printf("Result on the %s turn: %s.\n", humanize.Ordinal(turnsPlayed), g.Winner)
	}
	for _, f := range game.PlayerFactions {
		held := 0
		for _, s := range g.Stars {
			if s.Owner == f {
				held++
			}
		}
		fmt.Printf("  %-10s  %2d stars, %s ships\n",
			f, held, humanize.Comma(int64(g.TotalShips(f))))
	}
}

func runReplay(dbPath, id string) error {
	if dbPath == "" {
		return fmt.Errorf("-replay requires -db")
	}
	store, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	g, err := store.Replay(id)
	if err != nil {
		return err
	}
	slog.Info("replay verified", "game", id, "turns", len(g.History),
		"winner", g.Winner, "digest", g.Digest())
	return nil
}
