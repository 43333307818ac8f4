// Command farstard hosts game sessions over HTTP. Players create a game,
// poll their fog-of-war observation, and submit simultaneous order batches;
// the server executes each turn atomically under a per-session lock.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hollis-b/farstar/internal/api"
	"github.com/hollis-b/farstar/internal/persistence"
)

type config struct {
	Port    int    `env:"FARSTAR_PORT" envDefault:"8080"`
	DBPath  string `env:"FARSTAR_DB"` // empty = in-memory only
	Verbose bool   `env:"FARSTAR_DEBUG" envDefault:"false"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var store *persistence.Store
	if cfg.DBPath != "" {
		var err error
		store, err = persistence.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("database opened", "path", cfg.DBPath)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewServer(store).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	slog.Info("farstard listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
