package game

import "fmt"

const (
	HandSize   = 7
	BenchSize  = 5
	PrizeCount = 6
)

// Player represents one player's zones. Zones hold card IDs; the arena
// holds the instances.
type Player struct {
	Index   int
	Deck    []CardID // top of deck is last element (pop from end)
	Hand    []CardID
	Active  CardID
	Bench   [BenchSize]CardID
	Prizes  []CardID // top is last element
	Discard []CardID

	EnergyAttached bool // a resource was attached this turn
	Mulligans      int

	arena *Arena
}

func (p *Player) card(id CardID) *CardInstance {
	return p.arena.Get(id)
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns the drawn card, or nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	id := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.addToHand(id)
	return p.card(id)
}

// DrawCards draws up to n cards, stopping early on an empty deck.
func (p *Player) DrawCards(n int) []*CardInstance {
	var drawn []*CardInstance
	for i := 0; i < n; i++ {
		c := p.DrawCard()
		if c == nil {
			break
		}
		drawn = append(drawn, c)
	}
	return drawn
}

func (p *Player) addToHand(id CardID) {
	p.card(id).Zone = ZoneHand
	p.Hand = append(p.Hand, id)
}

// RemoveFromHand removes a card from the hand and returns its former
// position, or -1 if it was not there.
func (p *Player) RemoveFromHand(id CardID) int {
	for i, h := range p.Hand {
		if h == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return i
		}
	}
	return -1
}

// InsertInHand puts a card back into the hand at position i.
func (p *Player) InsertInHand(id CardID, i int) {
	if i < 0 || i > len(p.Hand) {
		i = len(p.Hand)
	}
	p.Hand = append(p.Hand, 0)
	copy(p.Hand[i+1:], p.Hand[i:])
	p.Hand[i] = id
	p.card(id).Zone = ZoneHand
}

// InHand reports whether the card is in this player's hand.
func (p *Player) InHand(id CardID) bool {
	for _, h := range p.Hand {
		if h == id {
			return true
		}
	}
	return false
}

// SendToDiscard moves a card to the discard pile and wipes its battle state.
func (p *Player) SendToDiscard(id CardID) {
	ci := p.card(id)
	resetBattleState(ci)
	ci.Zone = ZoneDiscard
	p.Discard = append(p.Discard, id)
}

// RemoveFromDiscard takes a card out of the discard pile.
func (p *Player) RemoveFromDiscard(id CardID) bool {
	for i, d := range p.Discard {
		if d == id {
			p.Discard = append(p.Discard[:i], p.Discard[i+1:]...)
			return true
		}
	}
	return false
}

// PutOnDeck places a card on top of the deck.
func (p *Player) PutOnDeck(id CardID) {
	ci := p.card(id)
	resetBattleState(ci)
	ci.Zone = ZoneDeck
	p.Deck = append(p.Deck, id)
}

func resetBattleState(ci *CardInstance) {
	ci.Damage = 0
	ci.Attached = nil
	ci.AttachedTo = 0
	ci.Status = StatusNone
	ci.EvolvedFrom = 0
	ci.EvolvedThisTurn = false
	ci.PlayedThisTurn = false
	ci.TurnsParalyzed = 0
	ci.override = nil
}

// FirstEmptyBench returns the index of the first empty bench slot, or -1.
func (p *Player) FirstEmptyBench() int {
	for i, b := range p.Bench {
		if b == 0 {
			return i
		}
	}
	return -1
}

// FirstOccupiedBench returns the index of the first filled bench slot, or -1.
func (p *Player) FirstOccupiedBench() int {
	for i, b := range p.Bench {
		if b != 0 {
			return i
		}
	}
	return -1
}

// BenchCount returns the number of benched creatures.
func (p *Player) BenchCount() int {
	n := 0
	for _, b := range p.Bench {
		if b != 0 {
			n++
		}
	}
	return n
}

// InPlay returns the active creature followed by the bench, left to right.
func (p *Player) InPlay() []*CardInstance {
	var out []*CardInstance
	if p.Active != 0 {
		out = append(out, p.card(p.Active))
	}
	for _, b := range p.Bench {
		if b != 0 {
			out = append(out, p.card(b))
		}
	}
	return out
}

// HasCreatureInPlay reports whether any creature remains on the board.
func (p *Player) HasCreatureInPlay() bool {
	return p.Active != 0 || p.BenchCount() > 0
}

// HasBasicInHand reports whether the hand holds a basic creature.
func (p *Player) HasBasicInHand() bool {
	for _, id := range p.Hand {
		if p.card(id).Card.IsBasic() {
			return true
		}
	}
	return false
}

// PlaceInPlay puts a creature in the active slot if empty, else the first
// empty bench slot. Returns false when the board is full.
func (p *Player) PlaceInPlay(id CardID) bool {
	ci := p.card(id)
	if p.Active == 0 {
		p.Active = id
		ci.Zone = ZoneActive
		return true
	}
	slot := p.FirstEmptyBench()
	if slot == -1 {
		return false
	}
	p.Bench[slot] = id
	ci.Zone = ZoneBench
	return true
}

// SlotOf locates a creature in play. slot is -1 for the active position.
func (p *Player) SlotOf(id CardID) (slot int, ok bool) {
	if id == 0 {
		return 0, false
	}
	if p.Active == id {
		return -1, true
	}
	for i, b := range p.Bench {
		if b == id {
			return i, true
		}
	}
	return 0, false
}

// ReplaceInPlay swaps a creature in play for another in the same position.
func (p *Player) ReplaceInPlay(oldID, newID CardID) bool {
	slot, ok := p.SlotOf(oldID)
	if !ok {
		return false
	}
	if slot == -1 {
		p.Active = newID
		p.card(newID).Zone = ZoneActive
	} else {
		p.Bench[slot] = newID
		p.card(newID).Zone = ZoneBench
	}
	return true
}

// RemoveFromPlay empties whichever position the creature occupies.
func (p *Player) RemoveFromPlay(id CardID) bool {
	slot, ok := p.SlotOf(id)
	if !ok {
		return false
	}
	if slot == -1 {
		p.Active = 0
	} else {
		p.Bench[slot] = 0
	}
	return true
}

// SwapActive exchanges the active creature with the one on a bench slot.
func (p *Player) SwapActive(slot int) bool {
	if slot < 0 || slot >= BenchSize || p.Bench[slot] == 0 || p.Active == 0 {
		return false
	}
	p.Active, p.Bench[slot] = p.Bench[slot], p.Active
	p.card(p.Active).Zone = ZoneActive
	p.card(p.Bench[slot]).Zone = ZoneBench
	return true
}

// Attach moves a resource onto a creature.
func (p *Player) Attach(energy, target CardID) {
	e := p.card(energy)
	t := p.card(target)
	e.Zone = ZoneAttached
	e.AttachedTo = target
	t.Attached = append(t.Attached, energy)
}

// DetachToDiscard moves up to n resources from the front of the creature's
// attached list to the discard pile. n < 0 detaches all of them.
func (p *Player) DetachToDiscard(ci *CardInstance, n int) []CardID {
	if n < 0 || n > len(ci.Attached) {
		n = len(ci.Attached)
	}
	removed := append([]CardID(nil), ci.Attached[:n]...)
	ci.Attached = append([]CardID(nil), ci.Attached[n:]...)
	for _, id := range removed {
		p.SendToDiscard(id)
	}
	return removed
}

// DetachLastToDiscard removes the most recently attached resource.
func (p *Player) DetachLastToDiscard(ci *CardInstance) CardID {
	if len(ci.Attached) == 0 {
		return 0
	}
	id := ci.Attached[len(ci.Attached)-1]
	ci.Attached = ci.Attached[:len(ci.Attached)-1]
	p.SendToDiscard(id)
	return id
}

// ShuffleDeck randomizes the deck order.
func (p *Player) ShuffleDeck(r Rand) {
	r.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// --- GameState ---

// TurnContext holds modifiers that live for a single turn.
type TurnContext struct {
	DamageBonus     int // added to the turn player's attack
	DamageReduction int // subtracted from damage dealt this turn
	Started         bool
}

// GameState holds the complete state of a match.
type GameState struct {
	Cards       *Arena
	Players     [2]*Player
	CurrentTurn int // 0 or 1: whose turn it is
	Phase       Phase
	TurnNumber  int
	FirstTurn   bool
	Turn        TurnContext

	// Game result
	Winner int // 0, 1, or -1 (no winner yet)
	Result string
}

// NewGameState creates a fresh match state with both decks in the arena.
// Deck slices are ordered bottom first: the last card is drawn first.
func NewGameState(deck0, deck1 []*Card) *GameState {
	gs := &GameState{
		Cards:     NewArena(),
		Phase:     PhaseSetup,
		FirstTurn: true,
		Winner:    -1,
	}
	for i, deck := range [2][]*Card{deck0, deck1} {
		p := &Player{Index: i, arena: gs.Cards}
		for _, c := range deck {
			ci := gs.Cards.New(c, i)
			p.Deck = append(p.Deck, ci.ID)
		}
		gs.Players[i] = p
	}
	return gs
}

// Card looks up an instance by ID.
func (gs *GameState) Card(id CardID) *CardInstance {
	return gs.Cards.Get(id)
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the Player struct for the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.CurrentTurn]
}

// OpponentPlayer returns the Player struct for the non-turn player.
func (gs *GameState) OpponentPlayer() *Player {
	return gs.Players[gs.Opponent(gs.CurrentTurn)]
}

// Over reports whether the match reached game_over.
func (gs *GameState) Over() bool {
	return gs.Phase == PhaseGameOver
}

// ActiveCard returns the player's active creature, or nil.
func (gs *GameState) ActiveCard(player int) *CardInstance {
	return gs.Cards.Get(gs.Players[player].Active)
}

// PlayerName returns "P1" or "P2" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}
