package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if event.Seq == 0 {
		l.seq++
		event.Seq = l.seq
	} else {
		l.seq = event.Seq
	}
	l.events = append(l.events, event)
}

// Events returns a copy of the log so far.
func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	events := l.Events()
	if len(events) == 0 {
		return GameEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %-13s | %s", e.Turn, e.Phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewSetupEvent(player int, handSize int) GameEvent {
	return GameEvent{
		Phase:   "setup",
		Player:  player,
		Type:    EventSetup,
		Details: fmt.Sprintf("%s draws an opening hand of %d", playerName(player), handSize),
	}
}

func NewMulliganEvent(player int, count int) GameEvent {
	return GameEvent{
		Phase:   "setup",
		Player:  player,
		Type:    EventMulligan,
		Details: fmt.Sprintf("%s has no Basic creature, mulligan #%d", playerName(player), count),
	}
}

func NewMulliganBonusEvent(player int, drawn int) GameEvent {
	return GameEvent{
		Phase:   "setup",
		Player:  player,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d extra card(s) for the opponent's mulligans", playerName(player), drawn),
	}
}

func NewPrizesSetEvent(player int, count int) GameEvent {
	return GameEvent{
		Phase:   "setup",
		Player:  player,
		Type:    EventPrizesSet,
		Details: fmt.Sprintf("%s sets %d prize cards", playerName(player), count),
	}
}

func NewCoinFlipEvent(turn int, phase string, player int, reason string, heads bool) GameEvent {
	face := "tails"
	if heads {
		face = "heads"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCoinFlip,
		Details: fmt.Sprintf("Coin flip (%s): %s", reason, face),
	}
}

func NewFirstPlayerEvent(player int, heads bool) GameEvent {
	face := "tails"
	if heads {
		face = "heads"
	}
	return GameEvent{
		Phase:   "setup",
		Player:  player,
		Type:    EventCoinFlip,
		Details: fmt.Sprintf("Coin flip: %s! %s goes first", face, playerName(player)),
	}
}

func NewTurnEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewDeckOutEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "draw",
		Player:  player,
		Type:    EventDeckOut,
		Details: fmt.Sprintf("%s cannot draw, the deck is empty", playerName(player)),
	}
}

func NewPlayBasicEvent(turn int, phase string, player int, cardName string, active bool) GameEvent {
	where := "on the Bench"
	if active {
		where = "as the Active creature"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayBasic,
		Card:    cardName,
		Details: fmt.Sprintf("%s places %s %s", playerName(player), cardName, where),
	}
}

func NewEvolveEvent(turn int, phase string, player int, fromName, toName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEvolve,
		Card:    toName,
		Details: fmt.Sprintf("%s evolves %s into %s", playerName(player), fromName, toName),
	}
}

func NewAttachEnergyEvent(turn int, phase string, player int, energyName, targetName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttachEnergy,
		Card:    energyName,
		Details: fmt.Sprintf("%s attaches %s to %s", playerName(player), energyName, targetName),
	}
}

func NewRetreatEvent(turn int, phase string, player int, oldName, newName string, paid int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventRetreat,
		Card:    oldName,
		Details: fmt.Sprintf("%s retreats %s and sends out %s (discarded %d energy)", playerName(player), oldName, newName, paid),
	}
}

func NewPromoteEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPromote,
		Card:    cardName,
		Details: fmt.Sprintf("%s promotes %s to the Active position", playerName(player), cardName),
	}
}

func NewPlayTrainerEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPlayTrainer,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s", playerName(player), cardName),
	}
}

func NewTrainerEffectEvent(turn int, phase string, player int, cardName string, detail string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTrainerEffect,
		Card:    cardName,
		Details: fmt.Sprintf("%s: %s", cardName, detail),
	}
}

func NewTrainerFailedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTrainerFailed,
		Card:    cardName,
		Details: fmt.Sprintf("%s has no valid target, returned to hand", cardName),
	}
}

func NewAttackDeclareEvent(turn int, phase string, player int, attackerName, attackName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attackerName,
		Details: fmt.Sprintf("%s uses %s!", attackerName, attackName),
	}
}

func NewConfusionEvent(turn int, phase string, player int, cardName string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventConfusion,
		Card:    cardName,
		Details: fmt.Sprintf("%s hurt itself in confusion for %d damage", cardName, damage),
	}
}

func NewDamageEvent(turn int, phase string, player int, cardName string, damage, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s took %d damage! (%d HP remaining)", cardName, damage, remaining),
	}
}

func NewSelfDamageEvent(turn int, phase string, player int, cardName string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSelfDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s did %d damage to itself", cardName, damage),
	}
}

func NewStatusEvent(turn int, phase string, player int, cardName string, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatus,
		Card:    cardName,
		Details: fmt.Sprintf("%s is now %s", cardName, status),
	}
}

func NewHealEvent(turn int, phase string, player int, cardName string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeal,
		Card:    cardName,
		Details: fmt.Sprintf("%s healed %d damage", cardName, amount),
	}
}

func NewDiscardEnergyEvent(turn int, phase string, player int, cardName string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscardEnergy,
		Card:    cardName,
		Details: fmt.Sprintf("%s discarded %d Energy card(s)", cardName, count),
	}
}

func NewKnockoutEvent(turn int, phase string, owner int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  owner,
		Type:    EventKnockout,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s was Knocked Out!", playerName(owner), cardName),
	}
}

func NewPrizeEvent(turn int, phase string, player int, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPrize,
		Details: fmt.Sprintf("%s takes a prize card (%d remaining)", playerName(player), remaining),
	}
}

func NewPoisonEvent(turn int, phase string, player int, cardName string, damage, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPoison,
		Card:    cardName,
		Details: fmt.Sprintf("%s took %d poison damage (%d HP)", cardName, damage, remaining),
	}
}

func NewSleepCheckEvent(turn int, phase string, player int, cardName string, woke bool) GameEvent {
	result := "stays asleep"
	if woke {
		result = "woke up"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSleepCheck,
		Card:    cardName,
		Details: fmt.Sprintf("Sleep check: %s %s", cardName, result),
	}
}

func NewEndTurnEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends the turn", playerName(player)),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck", playerName(player)),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewDrawGameEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventDrawGame,
		Details: fmt.Sprintf("Game ends without a winner (%s)", reason),
	}
}
