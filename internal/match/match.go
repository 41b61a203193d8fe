// Package match drives a game between two controllers. The engine decides
// what is legal; controllers only ever pick from the engine's action list.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
)

// DefaultMaxTurns is the safety limit when Config.MaxTurns is zero.
const DefaultMaxTurns = 200

// maxRejected bounds how many refused actions a controller may send in a
// row before its turn is ended for it.
const maxRejected = 10

// Controller is implemented by everything that can play one side: the
// heuristic policy, a remote terminal and the MCP bridge.
type Controller interface {
	// ChooseAction presents the legal actions and waits for one of them.
	ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error)

	// Notify sends a game event (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// ErrStalled is returned when a turn makes no progress.
var ErrStalled = errors.New("match stalled")

// Config holds configuration for creating a new match.
type Config struct {
	Deck0     []*game.Card // Player 0's deck, bottom first
	Deck1     []*game.Card // Player 1's deck, bottom first
	Logger    log.EventLogger
	Seed      int64     // RNG seed (0 for random)
	Rand      game.Rand // overrides Seed when set
	Clock     game.Clock
	Trainers  *game.TrainerRegistry
	NoShuffle bool // skip deck shuffle (for deterministic tests)
	MaxTurns  int  // stop after this many turns (0 = DefaultMaxTurns)
}

// Match orchestrates an entire game between two players.
type Match struct {
	ID          string
	Engine      *game.Engine
	State       *game.GameState
	Controllers [2]Controller
	Logger      log.EventLogger

	ctx      context.Context
	maxTurns int
	seq      int
}

// New creates a match from the given config and controllers. Every event
// the engine logs is forwarded to both controllers.
func New(cfg Config, p0, p1 Controller) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	m := &Match{
		ID:          uuid.NewString(),
		Controllers: [2]Controller{p0, p1},
		Logger:      logger,
		ctx:         context.Background(),
		maxTurns:    maxTurns,
	}
	m.Engine = game.NewEngine(game.Config{
		Deck0:     cfg.Deck0,
		Deck1:     cfg.Deck1,
		Logger:    notifyLogger{EventLogger: logger, m: m},
		Rand:      cfg.Rand,
		Seed:      cfg.Seed,
		Clock:     cfg.Clock,
		Trainers:  cfg.Trainers,
		NoShuffle: cfg.NoShuffle,
	})
	m.State = m.Engine.State
	return m
}

// Run plays the match to the end. Returns the winner (0, 1, or -1 when
// the match stopped without one).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	e := m.Engine
	gs := m.State

	if err := e.Setup(); err != nil {
		return -1, fmt.Errorf("setup: %w", err)
	}
	for p := 0; p < 2; p++ {
		if err := m.placeOpening(p); err != nil {
			return -1, err
		}
	}
	if _, ok := e.FlipForFirst(); !ok {
		return -1, fmt.Errorf("%w: both players need an active creature", ErrStalled)
	}

	for !gs.Over() {
		if gs.TurnNumber >= m.maxTurns {
			e.Stop(fmt.Sprintf("turn limit reached (%d turns)", m.maxTurns))
			break
		}
		if err := m.promotions(); err != nil {
			return -1, err
		}
		if !e.StartTurn() {
			return -1, fmt.Errorf("%w: turn %d could not start", ErrStalled, gs.TurnNumber+1)
		}
		if err := m.runTurn(); err != nil {
			return -1, err
		}
		if err := m.ctx.Err(); err != nil {
			return -1, err
		}
	}

	return gs.Winner, nil
}

// Result returns the game-over line, or "" while the match is running.
func (m *Match) Result() string {
	if !m.State.Over() {
		return ""
	}
	return m.State.Result
}

// placeOpening lets a player put Basics into play until they pick Ready.
func (m *Match) placeOpening(player int) error {
	e := m.Engine
	rejected := 0
	for {
		actions := e.SetupActions(player)
		if len(actions) == 0 {
			return fmt.Errorf("%w: %s has nothing to place", ErrStalled, game.PlayerName(player))
		}
		a, err := m.choose(player, actions)
		if err != nil {
			return err
		}
		ok := e.Perform(a)
		if ok && a.Type == game.ActionSetupDone {
			return nil
		}
		if !ok {
			rejected++
			if rejected >= maxRejected {
				return fmt.Errorf("%w: %s rejected %d setup choices", ErrStalled, game.PlayerName(player), rejected)
			}
		}
	}
}

// promotions asks each player with an empty active slot to fill it.
func (m *Match) promotions() error {
	for p := 0; p < 2; p++ {
		for m.Engine.NeedsPromotion(p) {
			actions := m.Engine.PromotionActions(p)
			a, err := m.choose(p, actions)
			if err != nil {
				return err
			}
			if !m.Engine.Perform(a) {
				// fall back to the first bench creature
				if !m.Engine.Perform(actions[0]) {
					return fmt.Errorf("%w: %s cannot promote", ErrStalled, game.PlayerName(p))
				}
			}
		}
	}
	return nil
}

// runTurn offers the turn player actions until the turn passes.
func (m *Match) runTurn() error {
	e := m.Engine
	gs := m.State
	rejected := 0
	for e.InTurn() && !gs.Over() {
		// a trainer can knock out a creature mid-turn
		if err := m.promotions(); err != nil {
			return err
		}
		actions := e.LegalActions()
		if len(actions) == 0 {
			return fmt.Errorf("%w: no actions for %s", ErrStalled, game.PlayerName(gs.CurrentTurn))
		}
		a, err := m.choose(gs.CurrentTurn, actions)
		if err != nil {
			return err
		}
		if e.Perform(a) {
			rejected = 0
			continue
		}
		rejected++
		if rejected >= maxRejected && !e.EndTurn() {
			return fmt.Errorf("%w: %s cannot end the turn", ErrStalled, game.PlayerName(gs.CurrentTurn))
		}
	}
	return nil
}

func (m *Match) choose(player int, actions []game.Action) (game.Action, error) {
	a, err := m.Controllers[player].ChooseAction(m.ctx, m.State, actions)
	if err != nil {
		return game.Action{}, fmt.Errorf("%s: %w", game.PlayerName(player), err)
	}
	return a, nil
}

// notifyLogger numbers and records an event, then forwards it to both
// controllers.
type notifyLogger struct {
	log.EventLogger
	m *Match
}

func (l notifyLogger) Log(event log.GameEvent) {
	l.m.seq++
	event.Seq = l.m.seq
	l.EventLogger.Log(event)
	for _, c := range l.m.Controllers {
		// notifications are best effort
		_ = c.Notify(l.m.ctx, event)
	}
}
