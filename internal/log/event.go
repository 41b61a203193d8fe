package log

import "time"

// EventType enumerates all observable game events.
type EventType int

const (
	EventSetup EventType = iota
	EventMulligan
	EventPrizesSet
	EventCoinFlip
	EventNewTurn
	EventDraw
	EventDeckOut
	EventPlayBasic
	EventEvolve
	EventAttachEnergy
	EventRetreat
	EventPromote
	EventPlayTrainer
	EventTrainerEffect
	EventTrainerFailed
	EventAttackDeclare
	EventConfusion
	EventDamage
	EventSelfDamage
	EventStatus
	EventHeal
	EventDiscardEnergy
	EventKnockout
	EventPrize
	EventPoison
	EventSleepCheck
	EventEndTurn
	EventShuffle
	EventWin
	EventDrawGame // no winner
)

func (e EventType) String() string {
	switch e {
	case EventSetup:
		return "Setup"
	case EventMulligan:
		return "Mulligan"
	case EventPrizesSet:
		return "PrizesSet"
	case EventCoinFlip:
		return "CoinFlip"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventDeckOut:
		return "DeckOut"
	case EventPlayBasic:
		return "PlayBasic"
	case EventEvolve:
		return "Evolve"
	case EventAttachEnergy:
		return "AttachEnergy"
	case EventRetreat:
		return "Retreat"
	case EventPromote:
		return "Promote"
	case EventPlayTrainer:
		return "PlayTrainer"
	case EventTrainerEffect:
		return "TrainerEffect"
	case EventTrainerFailed:
		return "TrainerFailed"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventConfusion:
		return "Confusion"
	case EventDamage:
		return "Damage"
	case EventSelfDamage:
		return "SelfDamage"
	case EventStatus:
		return "Status"
	case EventHeal:
		return "Heal"
	case EventDiscardEnergy:
		return "DiscardEnergy"
	case EventKnockout:
		return "Knockout"
	case EventPrize:
		return "Prize"
	case EventPoison:
		return "Poison"
	case EventSleepCheck:
		return "SleepCheck"
	case EventEndTurn:
		return "EndTurn"
	case EventShuffle:
		return "Shuffle"
	case EventWin:
		return "Win"
	case EventDrawGame:
		return "DrawGame"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn number (0 during setup)
	Phase   string    // phase name at the time of the event
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
	Time    time.Time // wall-clock stamp
}
