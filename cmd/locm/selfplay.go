package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/selfplay"
	"github.com/peterkuimelis/locm/internal/storage"
)

var (
	flagGames      int
	flagWorkers    int
	flagSeed       int64
	flagFirst      string
	flagSecond     string
	flagKeepStates bool
	flagStore      bool
	flagDB         string
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Run seeded games between two built-in choosers",
	Long: `Run a batch of games on a worker pool. Game i is played with seed
--seed + i, so a batch is reproducible whatever the worker count.

With --store every game is saved to the SQLite database under a fresh
batch id, together with its battle states when --keep-states is set.

Flags default to the selfplay section of the config file.

Examples:
  locm selfplay --games 1000
  locm selfplay --first icebox --second rules --store --keep-states`,
	Args: cobra.NoArgs,
	RunE: runSelfplay,
}

func init() {
	f := selfplayCmd.Flags()
	f.IntVar(&flagGames, "games", 0, "Number of games")
	f.IntVar(&flagWorkers, "workers", 0, "Worker goroutines (0 = one per CPU)")
	f.Int64Var(&flagSeed, "seed", 0, "Seed of the first game")
	f.StringVar(&flagFirst, "first", "", "Chooser in the first seat")
	f.StringVar(&flagSecond, "second", "", "Chooser in the second seat")
	f.BoolVar(&flagKeepStates, "keep-states", false, "Record every battle state")
	f.BoolVar(&flagStore, "store", false, "Save games to the database")
	f.StringVar(&flagDB, "db", "", "Database path (default: storage.path)")
}

func runSelfplay(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	sp := e.cfg.SelfPlay
	f := cmd.Flags()
	if f.Changed("games") {
		sp.Games = flagGames
	}
	if f.Changed("workers") {
		sp.Workers = flagWorkers
	}
	if f.Changed("seed") {
		sp.Seed = flagSeed
	}
	if f.Changed("first") {
		sp.First = flagFirst
	}
	if f.Changed("second") {
		sp.Second = flagSecond
	}
	if f.Changed("keep-states") {
		sp.KeepStates = flagKeepStates
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := selfplay.Config{
		Games:      sp.Games,
		Workers:    sp.Workers,
		Seed:       sp.Seed,
		Players:    [2]string{sp.First, sp.Second},
		Rules:      &e.cfg.Rules,
		Catalog:    e.catalog,
		KeepStates: sp.KeepStates,
		Logger:     e.logger,
	}

	sink := func(*selfplay.Record) error { return nil }
	batch := ""
	if flagStore {
		path := e.cfg.Storage.Path
		if flagDB != "" {
			path = flagDB
		}
		store, err := storage.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		batch = uuid.NewString()
		sink = func(rec *selfplay.Record) error {
			_, err := store.SaveRecord(ctx, batch, rec)
			return err
		}
		e.logger.Info("storing games", zap.String("db", path), zap.String("batch", batch))
	}

	start := time.Now()
	sum, err := selfplay.Run(ctx, cfg, sink)
	if err != nil {
		return err
	}

	fmt.Printf("%d games in %s\n", sum.Games, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  %-8s %-8s wins %5d  (%.1f%%)\n", game.PlayerFirst, sp.First, sum.Wins[game.PlayerFirst], 100*sum.WinRate(game.PlayerFirst))
	fmt.Printf("  %-8s %-8s wins %5d  (%.1f%%)\n", game.PlayerSecond, sp.Second, sum.Wins[game.PlayerSecond], 100*sum.WinRate(game.PlayerSecond))
	fmt.Printf("  draws %d\n", sum.Draws)
	if batch != "" {
		fmt.Printf("batch %s\n", batch)
	}
	return nil
}
