package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
)

// NetworkController implements match.Controller over a TCP connection.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which player this controller is (0 or 1)
	mu     sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, player int) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of the given player.
// The opponent's hand is reduced to a count.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	sv := &StateView{
		Turn:       state.TurnNumber,
		Phase:      state.Phase.String(),
		IsYourTurn: state.CurrentTurn == player && state.Phase != game.PhaseSetup,
		You:        buildPlayerView(state, me),
		Opponent:   buildPlayerView(state, opp),
	}
	for _, id := range me.Hand {
		sv.You.Hand = append(sv.You.Hand, state.Card(id).Name())
	}
	return sv
}

func buildPlayerView(state *game.GameState, p *game.Player) PlayerView {
	pv := PlayerView{
		HandCount:    p.HandCount(),
		Active:       CreatureZoneView(state, state.Card(p.Active)),
		PrizeCount:   len(p.Prizes),
		DiscardCount: len(p.Discard),
		DeckCount:    p.DeckCount(),
	}
	for i, id := range p.Bench {
		pv.Bench[i] = CreatureZoneView(state, state.Card(id))
	}
	return pv
}

// CreatureZoneView creates a CreatureView for an active or bench slot.
func CreatureZoneView(state *game.GameState, ci *game.CardInstance) CreatureView {
	if ci == nil {
		return CreatureView{Empty: true}
	}
	cv := CreatureView{
		Name:   ci.Name(),
		HP:     ci.Def().HP,
		Damage: ci.Damage,
	}
	if ci.Status != game.StatusNone {
		cv.Status = ci.Status.String()
	}
	for _, id := range ci.Attached {
		cv.Energy = append(cv.Energy, state.Card(id).Name())
	}
	return cv
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements match.Controller.
func (nc *NetworkController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Type: a.Type.String(), Desc: a.String()})
	}

	msg := ServerMessage{
		Type:    MsgChooseAction,
		Actions: views,
		State:   BuildStateView(state, nc.player),
	}
	if err := nc.send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return game.Action{}, fmt.Errorf("recv action: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(actions) {
		return actions[0], nil // fallback to first action
	}
	return actions[resp.Index], nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(matchID string, winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, MatchID: matchID, Winner: winner, Result: result})
}

// Notify implements match.Controller.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	return nc.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// NewEventView converts a log record for the wire.
func NewEventView(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
