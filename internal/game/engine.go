package game

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/basetcg/internal/log"
)

const (
	PoisonDamage    = 10
	ConfusionDamage = 30
	ResistanceValue = 30
)

// ErrSetupDone is returned when Setup runs twice.
var ErrSetupDone = errors.New("setup already performed")

// Config holds configuration for creating a new engine.
type Config struct {
	Deck0     []*Card // Player 0's deck, bottom first
	Deck1     []*Card // Player 1's deck, bottom first
	Logger    log.EventLogger
	Rand      Rand  // overrides Seed when set
	Seed      int64 // RNG seed (0 for random)
	Clock     Clock
	Trainers  *TrainerRegistry
	NoShuffle bool // skip the initial deck shuffle (for deterministic tests)
}

// Engine owns the game state and is the only writer to it. Callers must
// serialize calls; there is no internal locking.
type Engine struct {
	State    *GameState
	Logger   log.EventLogger
	Rand     Rand
	Clock    Clock
	Trainers *TrainerRegistry

	dealt       bool
	firstChosen bool
}

// NewEngine builds both players from their deck lists and shuffles the decks.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		State:    NewGameState(cfg.Deck0, cfg.Deck1),
		Logger:   cfg.Logger,
		Rand:     cfg.Rand,
		Clock:    cfg.Clock,
		Trainers: cfg.Trainers,
	}
	if e.Logger == nil {
		e.Logger = log.NewMemoryLogger()
	}
	if e.Rand == nil {
		e.Rand = NewSeededRand(cfg.Seed)
	}
	if e.Clock == nil {
		e.Clock = RealClock{}
	}
	if e.Trainers == nil {
		e.Trainers = NewTrainerRegistry()
	}
	if !cfg.NoShuffle {
		for _, p := range e.State.Players {
			p.ShuffleDeck(e.Rand)
		}
	}
	return e
}

// log stamps an event and appends it to the game log.
func (e *Engine) log(ev log.GameEvent) {
	ev.Time = e.Clock.Now()
	e.Logger.Log(ev)
}

// stamp returns the turn number and phase name for log events.
func (e *Engine) stamp() (int, string) {
	return e.State.TurnNumber, e.State.Phase.String()
}

func (e *Engine) flip(player int, reason string) bool {
	heads := e.Rand.Heads()
	t, ph := e.stamp()
	e.log(log.NewCoinFlipEvent(t, ph, player, reason, heads))
	return heads
}

// --- Setup ---

// Setup deals opening hands, runs mulligans and sets prizes. It fails only
// when a deck can never produce a Basic creature.
func (e *Engine) Setup() error {
	gs := e.State
	if e.dealt || gs.Phase != PhaseSetup {
		return ErrSetupDone
	}
	for i, p := range gs.Players {
		if !deckHasBasic(gs.Cards, p.Deck) {
			return fmt.Errorf("%s's deck has no Basic creature", PlayerName(i))
		}
	}

	for i, p := range gs.Players {
		p.DrawCards(HandSize)
		e.log(log.NewSetupEvent(i, len(p.Hand)))
	}

	for i, p := range gs.Players {
		for !p.HasBasicInHand() {
			p.Mulligans++
			e.log(log.NewMulliganEvent(i, p.Mulligans))
			// hand goes under the deck so a non-shuffling source still progresses
			hand := p.Hand
			p.Hand = nil
			for _, id := range hand {
				gs.Card(id).Zone = ZoneDeck
			}
			p.Deck = append(append([]CardID(nil), hand...), p.Deck...)
			p.ShuffleDeck(e.Rand)
			e.log(log.NewShuffleEvent(0, "setup", i))
			p.DrawCards(HandSize)
		}
	}

	for i, p := range gs.Players {
		other := gs.Players[gs.Opponent(i)]
		if other.Mulligans > 0 {
			drawn := p.DrawCards(other.Mulligans)
			e.log(log.NewMulliganBonusEvent(i, len(drawn)))
		}
	}

	for i, p := range gs.Players {
		for n := 0; n < PrizeCount && len(p.Deck) > 0; n++ {
			id := p.Deck[len(p.Deck)-1]
			p.Deck = p.Deck[:len(p.Deck)-1]
			gs.Card(id).Zone = ZonePrizes
			p.Prizes = append(p.Prizes, id)
		}
		e.log(log.NewPrizesSetEvent(i, len(p.Prizes)))
	}

	e.dealt = true
	return nil
}

func deckHasBasic(a *Arena, deck []CardID) bool {
	for _, id := range deck {
		if a.Get(id).Card.IsBasic() {
			return true
		}
	}
	return false
}

// CanSetupPlace reports whether a Basic creature can be placed before the
// first turn.
func (e *Engine) CanSetupPlace(player int, id CardID) bool {
	gs := e.State
	if !e.dealt || e.firstChosen || gs.Phase != PhaseSetup {
		return false
	}
	p := gs.Players[player]
	ci := gs.Card(id)
	if ci == nil || !p.InHand(id) || !ci.Card.IsBasic() {
		return false
	}
	return p.Active == 0 || p.FirstEmptyBench() != -1
}

// SetupPlace puts a Basic creature from hand into play: active slot first,
// then the bench.
func (e *Engine) SetupPlace(player int, id CardID) bool {
	if !e.CanSetupPlace(player, id) {
		return false
	}
	p := e.State.Players[player]
	p.RemoveFromHand(id)
	active := p.Active == 0
	p.PlaceInPlay(id)
	e.log(log.NewPlayBasicEvent(0, "setup", player, e.State.Card(id).Name(), active))
	return true
}

// SetupComplete reports whether both players have an active creature.
func (e *Engine) SetupComplete() bool {
	gs := e.State
	return e.dealt && gs.Players[0].Active != 0 && gs.Players[1].Active != 0
}

// FlipForFirst picks the first player with a fair coin: heads is player 0.
func (e *Engine) FlipForFirst() (int, bool) {
	gs := e.State
	if e.firstChosen || gs.Phase != PhaseSetup || !e.SetupComplete() {
		return 0, false
	}
	heads := e.Rand.Heads()
	gs.CurrentTurn = 0
	if !heads {
		gs.CurrentTurn = 1
	}
	e.firstChosen = true
	e.log(log.NewFirstPlayerEvent(gs.CurrentTurn, heads))
	return gs.CurrentTurn, true
}

// --- Turn flow ---

// StartTurn begins the next turn: counter, flags, modifiers, then the draw.
// It refuses while a promotion is pending or a turn is already running.
func (e *Engine) StartTurn() bool {
	gs := e.State
	switch {
	case gs.Phase == PhaseSetup && e.firstChosen:
	case gs.Phase == PhaseMain && !gs.Turn.Started:
	default:
		return false
	}
	if e.NeedsPromotion(0) || e.NeedsPromotion(1) {
		return false
	}

	gs.TurnNumber++
	p := gs.CurrentPlayer()
	p.EnergyAttached = false
	for _, c := range p.InPlay() {
		c.ResetTurnFlags()
	}
	gs.Turn = TurnContext{Started: true}
	e.log(log.NewTurnEvent(gs.TurnNumber, gs.CurrentTurn))

	gs.Phase = PhaseDraw
	card := p.DrawCard()
	if card == nil {
		e.log(log.NewDeckOutEvent(gs.TurnNumber, gs.CurrentTurn))
		e.declareWinner(gs.Opponent(gs.CurrentTurn), "opponent decked out")
		return true
	}
	e.log(log.NewDrawEvent(gs.TurnNumber, gs.Phase.String(), gs.CurrentTurn, card.Name()))
	gs.Phase = PhaseMain
	return true
}

// InTurn reports whether the turn player may take main-phase actions.
func (e *Engine) InTurn() bool {
	gs := e.State
	return gs.Phase == PhaseMain && gs.Turn.Started
}

// canAct gates every main-phase action of the turn player.
func (e *Engine) canAct() bool {
	gs := e.State
	return e.InTurn() && gs.CurrentPlayer().Active != 0 && !e.NeedsPromotion(gs.CurrentTurn)
}

// EndTurn passes without attacking.
func (e *Engine) EndTurn() bool {
	if !e.canAct() {
		return false
	}
	t, ph := e.stamp()
	e.log(log.NewEndTurnEvent(t, ph, e.State.CurrentTurn))
	e.betweenTurns()
	return true
}

// betweenTurns applies poison and the sleep check to the turn player's
// active creature, then hands the turn over.
func (e *Engine) betweenTurns() {
	gs := e.State
	gs.Phase = PhaseBetweenTurns
	tp := gs.CurrentTurn
	p := gs.CurrentPlayer()

	if a := gs.Card(p.Active); a != nil && a.Status == StatusPoisoned {
		a.Damage += PoisonDamage
		hp, _ := a.RemainingHP()
		e.log(log.NewPoisonEvent(gs.TurnNumber, gs.Phase.String(), tp, a.Name(), PoisonDamage, hp))
		if a.KnockedOut() {
			e.knockout(a)
		}
	}

	if gs.Over() {
		return
	}

	if a := gs.Card(p.Active); a != nil && a.Status == StatusAsleep {
		woke := e.flip(tp, "sleep check")
		if woke {
			a.Status = StatusNone
		}
		e.log(log.NewSleepCheckEvent(gs.TurnNumber, gs.Phase.String(), tp, a.Name(), woke))
	}

	gs.FirstTurn = false
	gs.CurrentTurn = gs.Opponent(tp)
	gs.Phase = PhaseMain
	gs.Turn.Started = false
}

// --- Promotion ---

// NeedsPromotion reports an empty active slot with creatures on the bench.
func (e *Engine) NeedsPromotion(player int) bool {
	gs := e.State
	if gs.Over() || !e.firstChosen {
		return false
	}
	p := gs.Players[player]
	return p.Active == 0 && p.BenchCount() > 0
}

// Promote moves a bench creature into the empty active slot.
func (e *Engine) Promote(player int, slot int) bool {
	if !e.NeedsPromotion(player) || slot < 0 || slot >= BenchSize {
		return false
	}
	p := e.State.Players[player]
	id := p.Bench[slot]
	if id == 0 {
		return false
	}
	p.Bench[slot] = 0
	p.Active = id
	e.State.Card(id).Zone = ZoneActive
	t, ph := e.stamp()
	e.log(log.NewPromoteEvent(t, ph, player, e.State.Card(id).Name()))
	return true
}

// --- Game end ---

func (e *Engine) declareWinner(winner int, reason string) {
	gs := e.State
	if gs.Over() {
		return
	}
	gs.Winner = winner
	gs.Result = fmt.Sprintf("%s wins: %s", PlayerName(winner), reason)
	t, ph := e.stamp()
	gs.Phase = PhaseGameOver
	e.log(log.NewWinEvent(t, ph, winner, reason))
}

// Stop ends the match without a winner, e.g. on a turn limit.
func (e *Engine) Stop(reason string) bool {
	gs := e.State
	if gs.Over() {
		return false
	}
	gs.Winner = -1
	gs.Result = "No winner: " + reason
	t, ph := e.stamp()
	gs.Phase = PhaseGameOver
	e.log(log.NewDrawGameEvent(t, ph, reason))
	return true
}
