package game

import "fmt"

// --- Enums ---

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDraw
	PhaseMain
	PhaseAttack
	PhaseBetweenTurns
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseDraw:
		return "draw"
	case PhaseMain:
		return "main"
	case PhaseAttack:
		return "attack"
	case PhaseBetweenTurns:
		return "between_turns"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Status is the single special condition a creature can carry.
type Status int

const (
	StatusNone Status = iota
	StatusPoisoned
	StatusConfused
	StatusParalyzed
	StatusAsleep
	StatusBurned
)

func (s Status) String() string {
	switch s {
	case StatusPoisoned:
		return "poisoned"
	case StatusConfused:
		return "confused"
	case StatusParalyzed:
		return "paralyzed"
	case StatusAsleep:
		return "asleep"
	case StatusBurned:
		return "burned"
	default:
		return "none"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "none":
		*s = StatusNone
	case "poisoned", "poison":
		*s = StatusPoisoned
	case "confused", "confusion":
		*s = StatusConfused
	case "paralyzed", "paralysis":
		*s = StatusParalyzed
	case "asleep", "sleep":
		*s = StatusAsleep
	case "burned", "burn":
		*s = StatusBurned
	default:
		return fmt.Errorf("unknown status %q", string(b))
	}
	return nil
}

// Category is the card supertype.
type Category int

const (
	CategoryCreature Category = iota
	CategoryResource
	CategoryAction
)

func (c Category) String() string {
	switch c {
	case CategoryCreature:
		return "creature"
	case CategoryResource:
		return "resource"
	case CategoryAction:
		return "action"
	default:
		return "unknown"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts both the engine names and the printed supertypes.
func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "creature", "Pokémon", "Pokemon":
		*c = CategoryCreature
	case "resource", "Energy":
		*c = CategoryResource
	case "action", "Trainer":
		*c = CategoryAction
	default:
		return fmt.Errorf("unknown category %q", string(b))
	}
	return nil
}

type Stage int

const (
	StageNone Stage = iota
	StageBasic
	Stage1
	Stage2
)

func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "basic"
	case Stage1:
		return "stage1"
	case Stage2:
		return "stage2"
	default:
		return ""
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*s = StageNone
	case "basic", "Basic":
		*s = StageBasic
	case "stage1", "Stage 1":
		*s = Stage1
	case "stage2", "Stage 2":
		*s = Stage2
	default:
		return fmt.Errorf("unknown stage %q", string(b))
	}
	return nil
}

// EnergyType is an elemental type as printed on cards and costs.
type EnergyType string

const (
	Colorless EnergyType = "Colorless"
	Fire      EnergyType = "Fire"
	Water     EnergyType = "Water"
	Grass     EnergyType = "Grass"
	Lightning EnergyType = "Lightning"
	Psychic   EnergyType = "Psychic"
	Fighting  EnergyType = "Fighting"
)

// --- Zone types ---

type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneActive
	ZoneBench
	ZonePrizes
	ZoneDiscard
	ZoneAttached  // resource attached to a creature in play
	ZoneLineage   // predecessor held under an evolved creature
	ZoneResolving // action card between hand and discard
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneActive:
		return "Active"
	case ZoneBench:
		return "Bench"
	case ZonePrizes:
		return "Prizes"
	case ZoneDiscard:
		return "Discard"
	case ZoneAttached:
		return "Attached"
	case ZoneLineage:
		return "Lineage"
	case ZoneResolving:
		return "Resolving"
	default:
		return "Unknown"
	}
}

// --- Action types ---

type ActionType int

const (
	ActionSetupPlace ActionType = iota
	ActionSetupDone
	ActionPromote
	ActionPlayBasic
	ActionEvolve
	ActionAttachEnergy
	ActionRetreat
	ActionPlayTrainer
	ActionAttack
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionSetupPlace:
		return "Place"
	case ActionSetupDone:
		return "Ready"
	case ActionPromote:
		return "Promote"
	case ActionPlayBasic:
		return "Play Basic"
	case ActionEvolve:
		return "Evolve"
	case ActionAttachEnergy:
		return "Attach Energy"
	case ActionRetreat:
		return "Retreat"
	case ActionPlayTrainer:
		return "Play Trainer"
	case ActionAttack:
		return "Attack"
	case ActionEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Action represents a player action with all necessary details.
type Action struct {
	Type   ActionType
	Player int
	Card   CardID // card being played from hand
	Target CardID // creature receiving energy or evolution
	Slot   int    // bench slot for retreat/promote
	Attack int    // attack index on the active creature
	Desc   string // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}
