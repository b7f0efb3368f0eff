package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/log"
	"github.com/peterkuimelis/locm/internal/protocol"
	"github.com/peterkuimelis/locm/internal/view"
)

// Console lets a person play from a terminal. It prints the board and the
// numbered actions, then reads either a number or a native command.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	events *log.MemoryLogger // optional event feed to print between prompts
	shown  int
}

// NewConsole reads choices from in and prints to out. When events is not
// nil, new events are printed before each prompt.
func NewConsole(in io.Reader, out io.Writer, events *log.MemoryLogger) *Console {
	return &Console{in: bufio.NewReader(in), out: out, events: events}
}

// Choose implements selfplay.Chooser.
func (c *Console) Choose(ctx context.Context, s *game.State, actions []game.Action) (game.Action, error) {
	c.renderEvents(s.CurrentOrder())
	c.renderState(view.BuildStateView(s, s.CurrentOrder()))
	c.renderActions(view.Actions(s))
	for {
		if err := ctx.Err(); err != nil {
			return game.Action{}, err
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return game.Action{}, ErrClosed
		}
		if a, ok := c.parse(line, actions); ok {
			return a, nil
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d or a command such as %s\n", len(actions), actions[0])
	}
}

func (c *Console) parse(line string, actions []game.Action) (game.Action, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(actions) {
			return game.Action{}, false
		}
		return actions[n-1], true
	}
	a, err := protocol.ParseAction(line)
	if err != nil {
		return game.Action{}, false
	}
	return a, true
}

func (c *Console) renderEvents(player game.PlayerOrder) {
	if c.events == nil {
		return
	}
	all := c.events.Events()
	for _, ev := range view.EventsFor(all[c.shown:], player) {
		fmt.Fprintf(c.out, "T%-3d %-6s | %s\n", ev.Turn, ev.Phase, ev.Details)
	}
	c.shown = len(all)
}

func (c *Console) renderState(sv *view.StateView) {
	w := c.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT  HP %d  Mana %d  Rune %d  Hand %d  Deck %d\n",
		opp.HP, opp.ManaCap, opp.NextRune, opp.HandCount, opp.DeckCount)
	renderLanes(w, opp.Lanes)
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	renderLanes(w, you.Lanes)
	fmt.Fprintf(w, "║  YOU  HP %d  Mana %d/%d  Rune %d  Hand %d  Deck %d\n",
		you.HP, you.Mana, you.ManaCap, you.NextRune, you.HandCount, you.DeckCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	if sv.Phase == game.PhaseDraft.String() {
		fmt.Fprintf(w, "Draft round %d\n", sv.DraftRound)
		fmt.Fprint(w, "Offer: ")
	} else {
		fmt.Fprintf(w, "Turn %d | %s\n", sv.Turn, sv.Phase)
		fmt.Fprint(w, "Hand: ")
	}
	for _, cv := range you.Hand {
		fmt.Fprintf(w, "%s  ", formatCard(cv))
	}
	fmt.Fprintln(w)
}

func renderLanes(w io.Writer, lanes [2][]view.CardView) {
	for lane, cards := range lanes {
		fmt.Fprintf(w, "║  %-5s ", game.Lane(lane))
		if len(cards) == 0 {
			fmt.Fprint(w, "[ ]")
		}
		for _, cv := range cards {
			fmt.Fprintf(w, "%s ", formatCard(cv))
		}
		fmt.Fprintln(w)
	}
}

func formatCard(cv view.CardView) string {
	id := ""
	if cv.InstanceID != game.NoTarget {
		id = fmt.Sprintf("#%d ", cv.InstanceID)
	}
	if cv.Type == game.CardTypeCreature.String() {
		return fmt.Sprintf("[%s%s %d/%d %s (%d)]", id, cv.Name, cv.Attack, cv.Defense, cv.Keywords, cv.Cost)
	}
	return fmt.Sprintf("[%s%s %s %+d/%+d (%d)]", id, cv.Name, cv.Type, cv.Attack, cv.Defense, cv.Cost)
}

func (c *Console) renderActions(actions []view.ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}
