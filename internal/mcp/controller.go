package mcp

import (
	"context"

	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
	tcgnet "github.com/peterkuimelis/basetcg/internal/net"
)

// MCPController implements match.Controller by publishing each decision to
// the session and blocking until a tool call answers it.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan int
}

// NewMCPController creates a controller for the given seat.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseAction implements match.Controller.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	views := make([]tcgnet.ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, tcgnet.ActionView{Index: i, Type: a.Type.String(), Desc: a.String()})
	}

	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   tcgnet.BuildStateView(state, c.player),
		Actions: views,
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var index int
	select {
	case index = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
	if index < 0 || index >= len(actions) {
		return actions[0], nil
	}
	return actions[index], nil
}

// Notify implements match.Controller. Every event is buffered for the
// next tool response.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(*tcgnet.NewEventView(event))
	return nil
}
