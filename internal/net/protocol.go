package net

// Message types for the JSON protocol over TCP.

const (
	MsgNotify       = "notify"
	MsgChooseAction = "choose_action"
	MsgGameOver     = "game_over"
	MsgJoin         = "join"
	MsgAction       = "action"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over"
	MatchID string `json:"match_id,omitempty"`
	Winner  int    `json:"winner"`
	Result  string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq,omitempty"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	HandCount    int             `json:"hand_count"`
	Hand         []string        `json:"hand,omitempty"` // card names (only for "you")
	Active       CreatureView    `json:"active"`
	Bench        [5]CreatureView `json:"bench"`
	PrizeCount   int             `json:"prize_count"`
	DiscardCount int             `json:"discard_count"`
	DeckCount    int             `json:"deck_count"`
}

// CreatureView describes a creature in play.
type CreatureView struct {
	Empty  bool     `json:"empty,omitempty"`
	Name   string   `json:"name,omitempty"`
	HP     int      `json:"hp,omitempty"`
	Damage int      `json:"damage,omitempty"`
	Status string   `json:"status,omitempty"`
	Energy []string `json:"energy,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	DeckNumber int `json:"deck_number,omitempty"`
}
