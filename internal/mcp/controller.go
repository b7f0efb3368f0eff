package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/selfplay"
)

const maxOpponentInvalid = 100

// opponentController plays one seat of an MCP game with a self-play chooser.
type opponentController struct {
	seat    game.PlayerOrder
	chooser selfplay.Chooser
}

func newOpponentController(seat game.PlayerOrder, chooser selfplay.Chooser) *opponentController {
	return &opponentController{seat: seat, chooser: chooser}
}

// playUntilYield moves for the controlled seat until the game ends or the
// other seat is to act.
func (c *opponentController) playUntilYield(ctx context.Context, s *game.State) error {
	invalid := 0
	for !s.Ended() && s.CurrentOrder() == c.seat {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := c.chooser.Choose(ctx, s, s.AvailableActions())
		if err != nil {
			return fmt.Errorf("opponent: %w", err)
		}
		if err := s.Act(a); err != nil {
			invalid++
			if invalid >= maxOpponentInvalid {
				return fmt.Errorf("opponent: %w", err)
			}
			continue
		}
		invalid = 0
	}
	return nil
}
