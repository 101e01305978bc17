// Command reviewlens-migrate applies the Postgres schema, creates the ClickHouse rollup table
// and with -command rollup reloads the rollup of the listed games from the backend
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/adapters/reviewsch"
	"reviewlens/internal/modkit/repokit"
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/platform/store"
	"reviewlens/internal/platform/store/migrate"
	accountrepo "reviewlens/internal/services/web/account/repo"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		fCommand = flag.String("command", "up", "up | status | down | rollup")
		fSteps   = flag.Int("steps", 1, "migrations to roll back per set (down)")
		fGames   = flag.String("games", "", "comma separated game ids to reload (rollup)")
	)
	flag.Parse()

	root := config.New().Prefix("REVIEWLENS_")
	logOpts := logger.FromEnv()
	logOpts.Component = "migrate"
	logger.Init(logOpts)
	l := logger.Get()

	ctx := context.Background()
	cfg := store.ConfigFrom(root, "reviewlens-migrate")
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if pg, ok := st.PG.(repokit.Pinger); ok {
		repokit.MustPing(ctx, "pg", pg)
	}

	if *fCommand == "rollup" {
		err = rollup(ctx, st, root.Prefix("BACKEND_"), *fGames, *l)
	} else {
		err = run(ctx, st, cfg.PG.URL, *fCommand, *fSteps, *l)
	}
	if err != nil {
		l.Error().Err(err).Str("command", *fCommand).Msg("migrate failed")
		os.Exit(1)
	}
}

// sets are applied in order
var sets = []migrate.Set{accountrepo.MigrationSet}

func run(ctx context.Context, st *store.Store, pgURL, command string, steps int, l logger.Logger) error {
	switch command {
	case "up", "status", "down":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	if st.PG != nil {
		for _, set := range sets {
			if err := runSet(set, pgURL, command, steps, l); err != nil {
				return err
			}
		}
	} else {
		l.Info().Msg("postgres disabled, skipping")
	}

	if st.CH != nil && command == "up" {
		if err := reviewsch.New(st.CH).EnsureSchema(ctx); err != nil {
			return err
		}
		l.Info().Str("table", reviewsch.Table).Msg("clickhouse schema ready")
	}
	return nil
}

func runSet(set migrate.Set, pgURL, command string, steps int, l logger.Logger) (err error) {
	m, err := migrate.New(set, pgURL, l)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var s migrate.Status
	switch command {
	case "status":
		s, err = m.Status()
	case "down":
		s, err = m.Down(steps)
	default:
		s, err = m.Up()
	}
	if err != nil {
		return err
	}
	if command == "status" {
		fmt.Printf("%-20s version=%d dirty=%t\n", s.Set, s.Version, s.Dirty)
		return nil
	}
	l.Info().Str("set", s.Set).Uint("version", s.Version).Msg("postgres migrations done")
	return nil
}

func rollup(ctx context.Context, st *store.Store, backendCfg config.Conf, games string, l logger.Logger) error {
	if st.CH == nil {
		return fmt.Errorf("rollup needs clickhouse enabled")
	}
	ids, err := parseIDs(games)
	if err != nil {
		return err
	}
	api, err := backend.New(backend.FromConfig(backendCfg), nil)
	if err != nil {
		return err
	}
	src := reviewsch.New(st.CH)
	for _, id := range ids {
		days, err := src.Load(ctx, api, id)
		if err != nil {
			return fmt.Errorf("game %d: %w", id, err)
		}
		l.Info().Int("game_id", id).Int("days", days).Msg("rollup reloaded")
	}
	return nil
}

func parseIDs(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("bad game id %q", part)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("-games is required")
	}
	return out, nil
}
