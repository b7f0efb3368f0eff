package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/log"
	"github.com/peterkuimelis/locm/internal/protocol"
	"github.com/peterkuimelis/locm/internal/selfplay"
	"github.com/peterkuimelis/locm/internal/view"
)

// OpponentNone leaves both seats to the MCP client.
const OpponentNone = "none"

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	GameID   string            `json:"game_id"`
	Seat     string            `json:"seat"`
	Events   []view.EventView  `json:"events"`
	State    *view.StateView   `json:"state"`
	Actions  []view.ActionView `json:"actions,omitempty"`
	Native   string            `json:"native,omitempty"` // native agent encoding of the state
	GameOver bool              `json:"game_over"`
	Winner   string            `json:"winner,omitempty"`
	Result   string            `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`   // rejected command, if any
	Skipped  []string          `json:"skipped,omitempty"` // commands not played
}

// GameSession is one game driven through MCP. The client plays seat; the
// other seat is played by opponent, or also by the client when opponent
// is nil.
type GameSession struct {
	mu       sync.Mutex
	id       uuid.UUID
	state    *game.State
	events   *log.MemoryLogger
	sent     int // events already returned to the client
	seat     game.PlayerOrder
	opponent *opponentController
}

// Manager owns the running sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*GameSession
	rules    *game.Rules
	catalog  *game.Catalog
	logger   *zap.Logger
}

// NewManager creates a session manager. Nil rules or catalog mean the
// defaults; a nil logger discards.
func NewManager(rules *game.Rules, catalog *game.Catalog, logger *zap.Logger) *Manager {
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*GameSession),
		rules:    rules,
		catalog:  catalog,
		logger:   logger,
	}
}

// NewGameSession starts a game and plays the opponent until it is the
// client's turn.
func (m *Manager) NewGameSession(ctx context.Context, seed int64, opponent string, seat game.PlayerOrder) (*GameSession, error) {
	if seat != game.PlayerFirst && seat != game.PlayerSecond {
		return nil, fmt.Errorf("seat must be 0 or 1, got %d", seat)
	}
	events := log.NewMemoryLogger()
	s, err := game.NewState(game.Config{
		Seed:    seed,
		Rules:   m.rules,
		Catalog: m.catalog,
		Events:  events,
		Logger:  m.logger,
	})
	if err != nil {
		return nil, err
	}

	sess := &GameSession{
		id:     uuid.New(),
		state:  s,
		events: events,
		seat:   seat,
	}
	if opponent != OpponentNone {
		c, err := selfplay.New(opponent, uint64(seed))
		if err != nil {
			return nil, err
		}
		sess.opponent = newOpponentController(seat.Opponent(), c)
	}
	if err := sess.advance(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()
	m.logger.Info("game started",
		zap.String("game_id", sess.id.String()),
		zap.Int64("seed", seed),
		zap.String("opponent", opponent),
		zap.Stringer("seat", seat))
	return sess, nil
}

// Session looks up a running or finished session.
func (m *Manager) Session(id string) (*GameSession, error) {
	gid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid game_id %q: %w", id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[gid]
	if !ok {
		return nil, fmt.Errorf("no game with id %s", id)
	}
	return sess, nil
}

// ActIndex plays the index-th legal action.
func (s *GameSession) ActIndex(ctx context.Context, index int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTurn(); err != nil {
		return nil, err
	}
	actions := s.state.AvailableActions()
	if index < 0 || index >= len(actions) {
		return nil, fmt.Errorf("invalid index %d, must be 0-%d", index, len(actions)-1)
	}
	if err := s.act(ctx, actions[index]); err != nil {
		return nil, err
	}
	return s.response(), nil
}

// ActCommand plays a line of native commands such as "SUMMON 3 0;PASS".
// Commands run in order until one is rejected or the turn or phase
// changes; what is left of the line is reported as skipped. When a command
// is rejected the response still describes the game, with the rejection
// in Error, and the error is returned alongside it.
func (s *GameSession) ActCommand(ctx context.Context, line string) (*ToolResponse, error) {
	actions, err := protocol.Parse(line)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTurn(); err != nil {
		return nil, err
	}

	turn, phase := s.state.Turn(), s.state.Phase()
	for i, a := range actions {
		if s.state.Ended() || s.state.Turn() != turn || s.state.Phase() != phase {
			resp := s.response()
			resp.Skipped = commands(actions[i:])
			return resp, nil
		}
		if err := s.act(ctx, a); err != nil {
			resp := s.response()
			resp.Error = fmt.Sprintf("%s: %v", a, err)
			resp.Skipped = commands(actions[i+1:])
			return resp, err
		}
	}
	return s.response(), nil
}

func commands(actions []game.Action) []string {
	if len(actions) == 0 {
		return nil
	}
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

// Snapshot returns the current state without acting.
func (s *GameSession) Snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response()
}

// checkTurn reports whether the client may act now. Must hold s.mu.
func (s *GameSession) checkTurn() error {
	if s.state.Ended() {
		return fmt.Errorf("game is over: %s", s.state.Result())
	}
	if s.opponent != nil && s.state.CurrentOrder() != s.seat {
		return fmt.Errorf("not your turn")
	}
	return nil
}

func (s *GameSession) act(ctx context.Context, a game.Action) error {
	if err := s.state.Act(a); err != nil {
		return err
	}
	return s.advance(ctx)
}

// advance lets the opponent move until the client is to act.
func (s *GameSession) advance(ctx context.Context) error {
	if s.opponent == nil {
		return nil
	}
	return s.opponent.playUntilYield(ctx, s.state)
}

// viewer is the seat the client sees the board from.
func (s *GameSession) viewer() game.PlayerOrder {
	if s.opponent == nil && !s.state.Ended() {
		return s.state.CurrentOrder()
	}
	return s.seat
}

// response builds the envelope with events since the last call. Must hold s.mu.
func (s *GameSession) response() *ToolResponse {
	all := s.events.Events()
	fresh := all[s.sent:]
	s.sent = len(all)

	viewer := s.viewer()
	resp := &ToolResponse{
		GameID:   s.id.String(),
		Seat:     viewer.String(),
		Events:   view.EventsFor(fresh, viewer),
		State:    view.BuildStateView(s.state, viewer),
		GameOver: s.state.Ended(),
	}
	if s.opponent == nil {
		// Both seats are the client's; hide nothing.
		resp.Events = view.Events(fresh)
	}
	if s.state.Ended() {
		resp.Winner = s.state.Winner().String()
		resp.Result = s.state.Result()
		return resp
	}
	if s.state.CurrentOrder() == viewer {
		resp.Actions = view.Actions(s.state)
		resp.Native = protocol.Encode(s.state)
	}
	return resp
}

// respondJSON marshals a value to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
