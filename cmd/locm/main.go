// locm runs and inspects Legends of Code and Magic games.
//
// Usage:
//
//	locm cards [--type T]           - List the card catalog
//	locm play [--first P] [--second P] - Play one game
//	locm selfplay [--games N]       - Run seeded games on a worker pool
//	locm encode [--seed S]          - Print the native protocol text after an auto-draft
//	locm mcp                        - Serve the MCP tools over stdio
//
// Global flags:
//
//	--config <path>     - Config file (default: ./locm.yaml when present)
//	--log-level <level> - Override log.level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/config"
	"github.com/peterkuimelis/locm/internal/game"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "locm",
	Short: "Legends of Code and Magic engine",
	Long: `locm runs two-player draft-then-battle card games: a 30-round draft
followed by a battle over two lanes.

Examples:
  locm cards --type red
  locm play --first human --second rules
  locm play --first "exec:./my-agent" --second random
  locm selfplay --games 1000 --first rules --second random --store
  locm mcp`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(selfplayCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// env is what every subcommand needs from the config.
type env struct {
	cfg     *config.Config
	catalog *game.Catalog
	logger  *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, catalog: catalog, logger: logger}, nil
}
