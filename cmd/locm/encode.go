package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/protocol"
)

var (
	flagEncodeSeed  int64
	flagEncodeDraft bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the native protocol text of a state",
	Long: `Print what a native agent would read. By default both players draft
the first offer every round and the first battle state is printed.

Examples:
  locm encode --seed 42
  locm encode --draft`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().Int64Var(&flagEncodeSeed, "seed", 0, "Game seed")
	encodeCmd.Flags().BoolVar(&flagEncodeDraft, "draft", false, "Print the first draft state instead")
}

func runEncode(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	s, err := game.NewState(game.Config{
		Seed:    flagEncodeSeed,
		Rules:   &e.cfg.Rules,
		Catalog: e.catalog,
		Logger:  e.logger,
	})
	if err != nil {
		return err
	}
	for !flagEncodeDraft && s.Phase() == game.PhaseDraft {
		if err := s.Act(game.Pick(0)); err != nil {
			return err
		}
	}
	fmt.Print(protocol.Encode(s))
	return nil
}
