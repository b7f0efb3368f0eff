package agent

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/log"
	"github.com/peterkuimelis/locm/internal/selfplay"
)

// scriptedAgent reads encoded states from r and answers each with reply.
func scriptedAgent(t *testing.T, r io.Reader, w io.WriteCloser, reply func(draft bool, cards [][]string) string) <-chan int {
	states := make(chan int, 1)
	go func() {
		defer w.Close()
		br := bufio.NewReader(r)
		n := 0
		defer func() { states <- n }()
		readLine := func() ([]string, bool) {
			line, err := br.ReadString('\n')
			if err != nil {
				return nil, false
			}
			return strings.Fields(line), true
		}
		for {
			if _, ok := readLine(); !ok {
				return
			}
			readLine()
			header, _ := readLine()
			history, _ := strconv.Atoi(header[1])
			for range history {
				readLine()
			}
			countLine, _ := readLine()
			count, _ := strconv.Atoi(countLine[0])
			var cards [][]string
			draft := false
			for range count {
				fields, _ := readLine()
				if fields[1] == "-1" {
					draft = true
				}
				cards = append(cards, fields)
			}
			n++
			if _, err := fmt.Fprintln(w, reply(draft, cards)); err != nil {
				return
			}
		}
	}()
	return states
}

func TestNativePlaysAGame(t *testing.T) {
	toAgent, fromEngine := io.Pipe()
	fromAgent, toEngine := io.Pipe()
	states := scriptedAgent(t, toAgent, toEngine, func(draft bool, cards [][]string) string {
		if draft {
			return "PICK 1"
		}
		var cmds []string
		for _, c := range cards {
			if c[2] == "0" && c[3] == "0" {
				cmds = append(cmds, "SUMMON "+c[1]+" 0")
			}
			if c[2] == "1" {
				cmds = append(cmds, "ATTACK "+c[1]+" -1")
			}
		}
		// No PASS: the turn ends after the line anyway.
		return strings.Join(append(cmds, "ATTACK 999 -1"), ";")
	})

	n := NewNative(fromAgent, fromEngine, zaptest.NewLogger(t))
	s := game.NewGame(12)
	_, err := selfplay.PlayState(context.Background(), s, [2]selfplay.Chooser{n, selfplay.First()}, false, 0)
	require.NoError(t, err)
	assert.True(t, s.Ended())

	n.Close()
	fromEngine.Close()
	got := <-states
	assert.Greater(t, got, 30, "one state per pick plus one per battle turn")
}

func TestNativeForfeitsGarbledTurn(t *testing.T) {
	toAgent, fromEngine := io.Pipe()
	fromAgent, toEngine := io.Pipe()
	scriptedAgent(t, toAgent, toEngine, func(bool, [][]string) string { return "FLY ME TO THE MOON" })

	n := NewNative(fromAgent, fromEngine, zaptest.NewLogger(t))
	defer n.Close()
	s := game.NewGame(4)
	ctx := context.Background()

	a, err := n.Choose(ctx, s, s.AvailableActions())
	require.NoError(t, err)
	assert.Equal(t, game.Pick(0), a, "draft falls back to the first offer")

	for s.Phase() == game.PhaseDraft {
		require.NoError(t, s.Act(game.Pick(0)))
	}
	a, err = n.Choose(ctx, s, s.AvailableActions())
	require.NoError(t, err)
	assert.Equal(t, game.Pass(), a)
	fromEngine.Close()
}

func TestNativeClosedStream(t *testing.T) {
	n := NewNative(strings.NewReader(""), io.Discard, nil)
	s := game.NewGame(1)
	_, err := n.Choose(context.Background(), s, s.AvailableActions())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNativeHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	n := NewNative(r, io.Discard, nil)
	defer n.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s := game.NewGame(1)
	_, err := n.Choose(ctx, s, s.AvailableActions())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcessAgent(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	p, err := StartProcess(context.Background(), zaptest.NewLogger(t), "cat")
	require.NoError(t, err)
	s := game.NewGame(1)
	// cat echoes the state back, which is not a command.
	a, err := p.Choose(context.Background(), s, s.AvailableActions())
	require.NoError(t, err)
	assert.Equal(t, game.Pick(0), a)
	assert.NoError(t, p.Close())
}

func TestConsole(t *testing.T) {
	events := log.NewMemoryLogger()
	s, err := game.NewState(game.Config{Seed: 3, Events: events})
	require.NoError(t, err)
	require.NoError(t, s.Act(game.Pick(0)))

	var out bytes.Buffer
	c := NewConsole(strings.NewReader("9\nhello\n2\nPICK 2\n"), &out, events)
	ctx := context.Background()

	a, err := c.Choose(ctx, s, s.AvailableActions())
	require.NoError(t, err)
	assert.Equal(t, game.Pick(1), a)
	text := out.String()
	assert.Contains(t, text, "Draft round 1")
	assert.Contains(t, text, "Enter a number between 1 and 3")
	assert.Contains(t, text, "opponent picks a card", "the other seat's pick is hidden")

	a, err = c.Choose(ctx, s, s.AvailableActions())
	require.NoError(t, err)
	assert.Equal(t, game.Pick(2), a)

	_, err = c.Choose(ctx, s, s.AvailableActions())
	assert.ErrorIs(t, err, ErrClosed)
}
