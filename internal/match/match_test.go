package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
)

// scriptedController picks with a fixed rule and records notifications.
type scriptedController struct {
	pick   func(actions []game.Action) game.Action
	err    error
	events []log.GameEvent
}

func (s *scriptedController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	if s.err != nil {
		return game.Action{}, s.err
	}
	return s.pick(actions), nil
}

func (s *scriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	s.events = append(s.events, event)
	return nil
}

// passive places one creature, never attacks and ends every turn.
func passive() *scriptedController {
	return &scriptedController{pick: func(actions []game.Action) game.Action {
		return actions[len(actions)-1]
	}}
}

// benchAll fills the bench during setup and otherwise passes.
func benchAll() *scriptedController {
	return &scriptedController{pick: func(actions []game.Action) game.Action {
		switch actions[0].Type {
		case game.ActionSetupPlace, game.ActionPromote:
			return actions[0]
		}
		return actions[len(actions)-1]
	}}
}

// aggressive attacks whenever it can.
func aggressive() *scriptedController {
	return &scriptedController{pick: func(actions []game.Action) game.Action {
		for _, a := range actions {
			if a.Type == game.ActionAttack {
				return a
			}
		}
		return actions[len(actions)-1]
	}}
}

func basicDeck(n int) []*game.Card {
	mon := &game.Card{
		Name:     "Rattata",
		Category: game.CategoryCreature,
		Stage:    game.StageBasic,
		HP:       30,
		Types:    []game.EnergyType{game.Colorless},
		Attacks:  []game.Attack{{Name: "Bite", Damage: "30"}},
	}
	deck := make([]*game.Card, n)
	for i := range deck {
		deck[i] = mon
	}
	return deck
}

func testConfig(deckSize, maxTurns int) (Config, *log.MemoryLogger) {
	logger := log.NewMemoryLogger()
	return Config{
		Deck0:     basicDeck(deckSize),
		Deck1:     basicDeck(deckSize),
		Logger:    logger,
		Rand:      game.NewScriptedRand(true),
		Clock:     game.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		NoShuffle: true,
		MaxTurns:  maxTurns,
	}, logger
}

func TestTurnLimitStopsWithoutWinner(t *testing.T) {
	cfg, logger := testConfig(60, 6)
	p0, p1 := passive(), passive()
	m := New(cfg, p0, p1)

	winner, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, -1, winner)
	assert.Equal(t, 6, m.State.TurnNumber)
	assert.Contains(t, m.Result(), "turn limit")
	assert.Equal(t, log.EventDrawGame, logger.LastEvent().Type)
	assert.NotEmpty(t, m.ID)

	// both sides hear every event
	assert.Len(t, p0.events, len(logger.Events()))
	assert.Len(t, p1.events, len(logger.Events()))
}

func TestControllersSeeNumberedEvents(t *testing.T) {
	cfg, logger := testConfig(60, 4)
	p0, p1 := passive(), passive()
	m := New(cfg, p0, p1)

	_, err := m.Run(context.Background())
	require.NoError(t, err)

	logged := logger.Events()
	require.NotEmpty(t, p0.events)
	for _, c := range []*scriptedController{p0, p1} {
		require.Len(t, c.events, len(logged))
		for i, ev := range c.events {
			assert.Equal(t, i+1, ev.Seq)
			assert.Equal(t, logged[i].Seq, ev.Seq)
		}
	}
}

func TestDeckOutEndsMatch(t *testing.T) {
	// 20 cards: 7 in hand, 6 prizes, 7 to draw
	cfg, logger := testConfig(20, 0)
	m := New(cfg, passive(), passive())

	winner, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, winner)
	assert.Equal(t, 15, m.State.TurnNumber)
	assert.Len(t, logger.EventsOfType(log.EventDeckOut), 1)
	assert.Contains(t, m.Result(), "decked out")
}

func TestKnockoutWithEmptyBenchWins(t *testing.T) {
	cfg, _ := testConfig(30, 0)
	m := New(cfg, aggressive(), passive())

	winner, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, winner)
	assert.Contains(t, m.Result(), "no creatures")
}

func TestPromotionAfterEachKnockout(t *testing.T) {
	cfg, logger := testConfig(30, 0)
	m := New(cfg, aggressive(), benchAll())

	winner, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, winner)
	assert.Len(t, logger.EventsOfType(log.EventKnockout), 6)
	assert.Len(t, logger.EventsOfType(log.EventPromote), 5)
	assert.Empty(t, m.State.Players[0].Prizes)
	assert.Contains(t, m.Result(), "prizes")
}

func TestControllerErrorStopsMatch(t *testing.T) {
	boom := errors.New("connection lost")
	cfg, _ := testConfig(30, 0)
	p1 := passive()
	p1.err = boom
	m := New(cfg, passive(), p1)

	_, err := m.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "P2")
}

func TestCancelledContextStopsMatch(t *testing.T) {
	cfg, _ := testConfig(60, 0)
	m := New(cfg, passive(), passive())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.State.Over())
}

func TestSetupFailsWithoutBasics(t *testing.T) {
	cfg, _ := testConfig(30, 0)
	energy := &game.Card{Name: "Fire Energy", Category: game.CategoryResource, Provides: game.Fire}
	cfg.Deck1 = []*game.Card{energy, energy, energy, energy, energy, energy, energy, energy}
	m := New(cfg, passive(), passive())

	_, err := m.Run(context.Background())
	assert.ErrorContains(t, err, "setup")
}

func TestRejectedActionsForceEndTurn(t *testing.T) {
	cfg, _ := testConfig(60, 4)
	bogus := &scriptedController{pick: func(actions []game.Action) game.Action {
		if actions[0].Type == game.ActionSetupPlace || actions[0].Type == game.ActionSetupDone {
			return actions[len(actions)-1]
		}
		// an action for a card nobody holds
		return game.Action{Type: game.ActionPlayBasic, Player: actions[0].Player, Card: 9999}
	}}
	m := New(cfg, bogus, passive())

	winner, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, winner)
	assert.Equal(t, 4, m.State.TurnNumber)
}
