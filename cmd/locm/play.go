package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/agent"
	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/log"
	"github.com/peterkuimelis/locm/internal/selfplay"
)

var (
	flagPlaySeed   int64
	flagPlayFirst  string
	flagPlaySecond string
	flagPlayLog    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game",
	Long: `Play one game between two players. A player is one of:

  human          - you, at this terminal
  exec:<command> - a native agent started as a subprocess
  ` + strings.Join(selfplay.Names(), ", ") + ` - a built-in chooser

Examples:
  locm play --first human --second rules
  locm play --first "exec:python3 agent.py" --second icebox --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagPlaySeed, "seed", 0, "Game seed")
	playCmd.Flags().StringVar(&flagPlayFirst, "first", "human", "Player in the first seat")
	playCmd.Flags().StringVar(&flagPlaySecond, "second", "rules", "Player in the second seat")
	playCmd.Flags().BoolVar(&flagPlayLog, "log", false, "Print every game event")
}

func runPlay(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var events log.EventLogger = log.NewMemoryLogger()
	if flagPlayLog {
		events = log.NewTextLogger(os.Stdout)
	}
	s, err := game.NewState(game.Config{
		Seed:    flagPlaySeed,
		Rules:   &e.cfg.Rules,
		Catalog: e.catalog,
		Events:  events,
		Logger:  e.logger,
	})
	if err != nil {
		return err
	}

	var seats [2]selfplay.Chooser
	for i, who := range []string{flagPlayFirst, flagPlaySecond} {
		c, closer, err := newSeat(ctx, who, uint64(flagPlaySeed)*2+uint64(i), events, e.logger)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}
		seats[i] = c
	}

	if _, err := selfplay.PlayState(ctx, s, seats, false, 0); err != nil {
		return err
	}
	fmt.Printf("\n%s\n", s.Result())
	return nil
}

// newSeat builds the player named by who: human, exec:<command> or a chooser.
func newSeat(ctx context.Context, who string, seed uint64, events log.EventLogger, logger *zap.Logger) (selfplay.Chooser, io.Closer, error) {
	switch {
	case who == "human":
		// With --log the events are already printed as they happen.
		mem, _ := events.(*log.MemoryLogger)
		return agent.NewConsole(os.Stdin, os.Stdout, mem), nil, nil
	case strings.HasPrefix(who, "exec:"):
		argv := strings.Fields(strings.TrimPrefix(who, "exec:"))
		if len(argv) == 0 {
			return nil, nil, fmt.Errorf("exec: needs a command")
		}
		p, err := agent.StartProcess(ctx, logger, argv[0], argv[1:]...)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	default:
		c, err := selfplay.New(who, seed)
		return c, nil, err
	}
}
