package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/locm/internal/game"
)

var flagCardType string

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the card catalog",
	Long: `List every card in the catalog, or only one type.

Examples:
  locm cards
  locm cards --type creature`,
	Args: cobra.NoArgs,
	RunE: runCards,
}

func init() {
	cardsCmd.Flags().StringVar(&flagCardType, "type", "", "Only cards of this type: creature, green, red, blue")
}

func runCards(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	cards := e.catalog.All()
	if flagCardType != "" {
		t, err := game.ParseCardType(flagCardType)
		if err != nil {
			return err
		}
		cards = e.catalog.OfType(t)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOST\tATK\tDEF\tKEYWORDS\tHP\tENEMY\tDRAW")
	for _, c := range cards {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%d\t%d\t%d\n",
			c.ID, c.Name, c.Type, c.Cost, c.Attack, c.Defense, c.Keywords, c.PlayerHP, c.EnemyHP, c.CardDraw)
	}
	return w.Flush()
}
