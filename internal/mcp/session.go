package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"sync"

	"github.com/peterkuimelis/basetcg/internal/ai"
	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
	"github.com/peterkuimelis/basetcg/internal/match"
	tcgnet "github.com/peterkuimelis/basetcg/internal/net"
)

// DecisionType identifies what the match is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// Opponent kinds accepted by start_game.
const (
	OpponentAI    = "ai"
	OpponentHuman = "human"
)

// PendingDecision is a decision the match is blocked on.
type PendingDecision struct {
	Type    DecisionType        `json:"type"`
	Player  int                 `json:"player"`
	State   *tcgnet.StateView   `json:"state"`
	Actions []tcgnet.ActionView `json:"actions,omitempty"`
}

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	MatchID  string             `json:"match_id,omitempty"`
	Events   []tcgnet.EventView `json:"events"`
	State    *tcgnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView       `json:"pending,omitempty"`
	GameOver bool               `json:"game_over"`
	Winner   int                `json:"winner"`
	Result   string             `json:"result,omitempty"`
	Port     string             `json:"port,omitempty"`
}

// PendingView is the pending decision as shown to the agent.
type PendingView struct {
	Type      DecisionType        `json:"type"`
	ForPlayer string              `json:"for_player"`
	Actions   []tcgnet.ActionView `json:"actions,omitempty"`
}

// SessionOptions configures a new game session.
type SessionOptions struct {
	DecksFile    string
	Catalog      *game.Catalog
	Deck         int    // agent's deck number (1-indexed)
	Player       int    // agent's seat: 0 or 1
	Opponent     string // OpponentAI or OpponentHuman
	OpponentDeck int    // deck for the AI opponent; a human picks their own
	Port         string // TCP port a human opponent joins on
	Listener     stdnet.Listener
	Seed         int64
	MaxTurns     int
}

// GameSession holds one match played by the agent through tool calls.
type GameSession struct {
	match  *match.Match
	ctrl   *MCPController
	human  *tcgnet.NetworkController
	player int
	cancel context.CancelFunc

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh chan *PendingDecision
	current   *PendingDecision

	mu       sync.Mutex
	events   []tcgnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewGameSession loads the decks, seats the opponent and starts the match
// in the background. With a human opponent it blocks until they join.
func NewGameSession(opts SessionOptions) (*GameSession, error) {
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = game.DefaultCatalog(); err != nil {
			return nil, err
		}
	}
	if opts.Player != 0 && opts.Player != 1 {
		return nil, fmt.Errorf("player must be 0 or 1, got %d", opts.Player)
	}

	_, agentCards, err := game.DeckByNumber(opts.DecksFile, opts.Deck, cat)
	if err != nil {
		return nil, fmt.Errorf("load agent deck: %w", err)
	}

	sess := &GameSession{
		player:    opts.Player,
		pendingCh: make(chan *PendingDecision, 1),
		winner:    -1,
	}
	sess.ctrl = NewMCPController(opts.Player, sess)

	other := 1 - opts.Player
	var otherCards []*game.Card
	var otherCtrl match.Controller

	switch opts.Opponent {
	case "", OpponentAI:
		deck := opts.OpponentDeck
		if deck == 0 {
			deck = 2
		}
		if _, otherCards, err = game.DeckByNumber(opts.DecksFile, deck, cat); err != nil {
			return nil, fmt.Errorf("load opponent deck: %w", err)
		}
		otherCtrl = ai.New(other)

	case OpponentHuman:
		if otherCards, err = sess.acceptHuman(opts, cat); err != nil {
			return nil, err
		}
		sess.human = tcgnet.NewNetworkController(sess.humanConn, other)
		otherCtrl = sess.human

	default:
		return nil, fmt.Errorf("unknown opponent %q (want %q or %q)", opts.Opponent, OpponentAI, OpponentHuman)
	}

	cfg := match.Config{
		Logger:   log.NewMemoryLogger(),
		Seed:     opts.Seed,
		MaxTurns: opts.MaxTurns,
	}
	var ctrl0, ctrl1 match.Controller
	if opts.Player == 0 {
		cfg.Deck0, cfg.Deck1 = agentCards, otherCards
		ctrl0, ctrl1 = sess.ctrl, otherCtrl
	} else {
		cfg.Deck0, cfg.Deck1 = otherCards, agentCards
		ctrl0, ctrl1 = otherCtrl, sess.ctrl
	}
	sess.match = match.New(cfg, ctrl0, ctrl1)

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	go sess.run(ctx)

	return sess, nil
}

// acceptHuman waits for one `join` on the configured listener and loads the
// deck the human asked for.
func (s *GameSession) acceptHuman(opts SessionOptions, cat *game.Catalog) ([]*game.Card, error) {
	ln := opts.Listener
	if ln == nil {
		var err error
		if ln, err = stdnet.Listen("tcp", ":"+opts.Port); err != nil {
			return nil, fmt.Errorf("listen on port %s: %w", opts.Port, err)
		}
	}
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	var join tcgnet.ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	deck := join.DeckNumber
	if deck == 0 {
		deck = 2
	}
	_, cards, err := game.DeckByNumber(opts.DecksFile, deck, cat)
	if err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("load human deck: %w", err)
	}
	s.listener = ln
	s.humanConn = conn
	return cards, nil
}

func (s *GameSession) run(ctx context.Context) {
	winner, err := s.match.Run(ctx)
	result := s.match.Result()
	switch {
	case err != nil:
		winner = -1
		result = fmt.Sprintf("error: %v", err)
	case result == "":
		result = fmt.Sprintf("Game over. Winner: %d", winner)
	}

	if s.human != nil {
		_ = s.human.SendGameOver(s.match.ID, winner, result)
		s.humanConn.Close()
		s.listener.Close()
	}

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	over := &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  tcgnet.BuildStateView(s.match.State, s.player),
	}
	select {
	case s.pendingCh <- over:
	case <-ctx.Done():
	}
}

// Close abandons the match.
func (s *GameSession) Close() {
	s.cancel()
	if s.humanConn != nil {
		s.humanConn.Close()
	}
}

// Over reports whether the match has finished.
func (s *GameSession) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

func (s *GameSession) appendEvent(ev tcgnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns the accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []tcgnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []tcgnet.EventView{}
	}
	return events
}

// waitForPending blocks until the match needs the agent again or ends.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.current = pending
	return s.snapshot(), nil
}

// snapshot builds a response from the current decision without consuming
// anything but the event buffer.
func (s *GameSession) snapshot() *ToolResponse {
	resp := &ToolResponse{
		MatchID: s.match.ID,
		Events:  s.drainEvents(),
		Winner:  -1,
	}
	pending := s.current
	if pending == nil {
		return resp
	}
	resp.State = pending.State

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp
	}
	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
		Actions:   pending.Actions,
	}
	return resp
}

func (s *GameSession) playerLabel(player int) string {
	if player == s.player {
		return "you"
	}
	return "opponent"
}

func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
