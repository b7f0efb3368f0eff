// Package mcp exposes the game to MCP clients over stdio: one tool per
// agent operation, JSON results.
package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/locm/internal/game"
	"github.com/peterkuimelis/locm/internal/selfplay"
	"github.com/peterkuimelis/locm/internal/view"
)

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, m *Manager) {
	s.AddTool(newGameTool(), m.handleNewGame)
	s.AddTool(getStateTool(), m.handleGetState)
	s.AddTool(takeActionTool(), m.handleTakeAction)
	s.AddTool(listCardsTool(), m.handleListCards)
}

// --- Tool definitions ---

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new game: a 30-round draft followed by a lane battle. "+
			"Returns the game id, your view of the state and the numbered legal actions when it is your turn."),
		mcp.WithNumber("seed", mcp.Description("Random seed; the same seed and the same actions replay the same game")),
		mcp.WithString("opponent", mcp.Description("Who plays the other seat: "+strings.Join(selfplay.Names(), ", ")+
			", or 'none' to play both seats yourself. Default 'rules'.")),
		mcp.WithNumber("seat", mcp.Description("Your seat: 0 = plays first, 1 = plays second. Default 0.")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current state, new events and legal actions without acting. Read-only."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Id returned by new_game")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Act in a game, either by action index or by a native command line "+
			"such as 'SUMMON 12 0;ATTACK 12 -1;PASS'. A command line stops at the end of the turn, and at the first rejected command "+
			"(the response then carries the error and the skipped commands). The opponent then moves until it is your turn again."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("Id returned by new_game")),
		mcp.WithNumber("index", mcp.Description("0-based index into the actions list")),
		mcp.WithString("command", mcp.Description("';'-separated commands: PICK i, SUMMON id lane, ATTACK id target, USE id target, PASS")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the card catalog."),
		mcp.WithString("type", mcp.Description("Only cards of this type: creature, green, red or blue")),
	)
}

// --- Tool handlers ---

func (m *Manager) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := int64(request.GetInt("seed", 0))
	opponent := request.GetString("opponent", "rules")
	seat := game.PlayerOrder(request.GetInt("seat", 0))

	sess, err := m.NewGameSession(ctx, seed, opponent, seat)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

func (m *Manager) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := m.Session(request.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

func (m *Manager) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := m.Session(request.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp *ToolResponse
	if command := strings.TrimSpace(request.GetString("command", "")); command != "" {
		resp, err = sess.ActCommand(ctx, command)
	} else {
		index := request.GetInt("index", -1)
		if index < 0 {
			return mcp.NewToolResultError("Give either index or command."), nil
		}
		resp, err = sess.ActIndex(ctx, index)
	}
	if err != nil && resp != nil {
		return mcp.NewToolResultError(respondJSON(resp)), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Action rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (m *Manager) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards := m.catalog.All()
	if name := request.GetString("type", ""); name != "" {
		t, err := game.ParseCardType(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cards = m.catalog.OfType(t)
	}
	views := make([]view.CardView, len(cards))
	for i, c := range cards {
		views[i] = view.Definition(c)
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}
