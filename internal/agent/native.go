// Package agent connects players that live outside the engine: native
// agents speaking the line protocol over a stream or as a subprocess, and
// a person at a terminal.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/protocol"
)

// ErrClosed is returned once the agent's output stream has ended.
var ErrClosed = errors.New("agent: stream closed")

type lineResult struct {
	line string
	err  error
}

// decisionKey identifies one decision point; a command line answers all
// the decisions of one turn.
type decisionKey struct {
	phase  game.Phase
	turn   int
	round  int
	player game.PlayerOrder
}

// Native drives an agent over a stream. For every turn it writes the
// encoded state and reads back one line of ';'-separated commands, which
// it then plays out one action per Choose call. A battle turn ends with
// PASS whether or not the line asked for it.
type Native struct {
	mu     sync.Mutex
	w      io.Writer
	lines  chan lineResult
	done   chan struct{}
	once   sync.Once
	queue  []game.Action
	key    decisionKey
	asked  bool
	logger *zap.Logger
}

// NewNative reads agent output from r and writes states to w.
func NewNative(r io.Reader, w io.Writer, logger *zap.Logger) *Native {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Native{
		w:      w,
		lines:  make(chan lineResult),
		done:   make(chan struct{}),
		logger: logger,
	}
	go n.readLoop(bufio.NewReader(r))
	return n
}

// Close stops delivering agent output. It does not close the streams.
func (n *Native) Close() {
	n.once.Do(func() { close(n.done) })
}

// readLoop forwards agent lines until EOF. After Close the lines are read
// and dropped so the agent never blocks on a full pipe.
func (n *Native) readLoop(r *bufio.Reader) {
	defer close(n.lines)
	send := func(res lineResult) {
		select {
		case n.lines <- res:
		case <-n.done:
		}
	}
	for {
		line, err := r.ReadString('\n')
		if line != "" || err == nil {
			send(lineResult{line: strings.TrimSpace(line)})
		}
		if err != nil {
			if err != io.EOF {
				send(lineResult{err: err})
			}
			return
		}
	}
}

func keyOf(s *game.State) decisionKey {
	return decisionKey{phase: s.Phase(), turn: s.Turn(), round: s.DraftRound(), player: s.CurrentOrder()}
}

// Choose implements selfplay.Chooser.
func (n *Native) Choose(ctx context.Context, s *game.State, _ []game.Action) (game.Action, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := keyOf(s)
	if key != n.key {
		n.queue = nil
	}
	if len(n.queue) == 0 {
		if n.asked && key == n.key && s.Phase() == game.PhaseBattle {
			// The line for this turn is spent.
			return game.Pass(), nil
		}
		if err := n.request(ctx, s); err != nil {
			return game.Action{}, err
		}
		n.key, n.asked = key, true
	}
	a := n.queue[0]
	n.queue = n.queue[1:]
	return a, nil
}

func (n *Native) request(ctx context.Context, s *game.State) error {
	if _, err := io.WriteString(n.w, protocol.Encode(s)); err != nil {
		return fmt.Errorf("agent: write state: %w", err)
	}
	for {
		var res lineResult
		var ok bool
		select {
		case res, ok = <-n.lines:
		case <-ctx.Done():
			return ctx.Err()
		}
		if !ok {
			return ErrClosed
		}
		if res.err != nil {
			return fmt.Errorf("agent: read: %w", res.err)
		}
		if res.line == "" {
			continue
		}
		actions, err := protocol.Parse(res.line)
		if err != nil {
			// A garbled line forfeits the turn rather than the game.
			n.logger.Warn("unparsable agent output", zap.String("line", res.line), zap.Error(err))
			actions = []game.Action{game.Pass()}
			if s.Phase() == game.PhaseDraft {
				actions = []game.Action{game.Pick(0)}
			}
		}
		n.queue = actions
		return nil
	}
}
