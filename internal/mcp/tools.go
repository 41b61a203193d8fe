package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/basetcg/internal/game"
)

// Tools serves one game at a time to an MCP client.
type Tools struct {
	DecksFile string
	Catalog   *game.Catalog // nil = built-in card list
	Port      string        // TCP port for a human opponent
	Seed      int64
	MaxTurns  int

	mu      sync.Mutex
	session *GameSession
}

// RegisterTools adds the game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(listDecksTool(), t.handleListDecks)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Base Set match. Returns the opening state and your first pending decision. "+
			"Against a human opponent the call blocks until they run `basetcg-cli join --addr localhost:<port> --deck N`."),
		mcp.WithNumber("deck", mcp.Required(), mcp.Description("Your deck number (1-indexed, see list_decks)")),
		mcp.WithNumber("player", mcp.Description("Your seat: 0 or 1. The opening coin flip decides who goes first.")),
		mcp.WithString("opponent", mcp.Enum(OpponentAI, OpponentHuman), mcp.Description("Who plays the other seat (default ai)")),
		mcp.WithNumber("opponent_deck", mcp.Description("Deck number for the ai opponent (default 2)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Returns the events since your last decision and the next one."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the decks available to start_game."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil && !t.session.Over() {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	deck := request.GetInt("deck", 0)
	player := request.GetInt("player", 0)
	if deck < 1 {
		return mcp.NewToolResultError("deck must be >= 1"), nil
	}
	if player != 0 && player != 1 {
		return mcp.NewToolResultError("player must be 0 or 1"), nil
	}

	sess, err := NewGameSession(SessionOptions{
		DecksFile:    t.DecksFile,
		Catalog:      t.Catalog,
		Deck:         deck,
		Player:       player,
		Opponent:     request.GetString("opponent", OpponentAI),
		OpponentDeck: request.GetInt("opponent_deck", 0),
		Port:         t.Port,
		Seed:         t.Seed,
		MaxTurns:     t.MaxTurns,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	t.session = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if sess.human != nil {
		resp.Port = t.Port
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess := t.session
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	pending := sess.current
	if pending == nil || pending.Type == DecisionGameOver {
		return mcp.NewToolResultError("No pending decision."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	select {
	case sess.ctrl.responseCh <- index:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.session.snapshot())), nil
}

// DeckInfo describes one entry of list_decks.
type DeckInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Size   int    `json:"size"`
}

func (t *Tools) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	df, err := game.ReadDeckFile(t.DecksFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read decks: %v", err), nil
	}
	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		decks = append(decks, DeckInfo{Number: i + 1, Name: d.Name, Size: d.Size()})
	}
	return mcp.NewToolResultText(respondJSON(decks)), nil
}
