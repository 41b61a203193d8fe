package game

import (
	"testing"
	"time"

	"github.com/peterkuimelis/basetcg/internal/log"
)

// --- Test card helpers ---

func creature(name string, hp int, typ EnergyType, attacks ...Attack) *Card {
	return &Card{
		Name:     name,
		Category: CategoryCreature,
		Stage:    StageBasic,
		HP:       hp,
		Types:    []EnergyType{typ},
		Attacks:  attacks,
	}
}

func evolution(name, from string, stage Stage, hp int, typ EnergyType, attacks ...Attack) *Card {
	c := creature(name, hp, typ, attacks...)
	c.Stage = stage
	c.EvolvesFrom = from
	return c
}

func energy(t EnergyType) *Card {
	return &Card{Name: string(t) + " Energy", Category: CategoryResource, Provides: t}
}

func trainer(name string) *Card {
	return &Card{Name: name, Category: CategoryAction}
}

func attack(name string, damage string, cost ...EnergyType) Attack {
	return Attack{Name: name, Cost: cost, Damage: damage}
}

var fillerEnergy = &Card{Name: "Filler Energy", Category: CategoryResource, Provides: Colorless}

// makePaddedDeck creates a deck with specified cards on top (drawn first) and filler to reach a minimum size.
// topCards are ordered so that index 0 is drawn first.
func makePaddedDeck(topCards []*Card, minSize int) []*Card {
	deck := make([]*Card, 0, minSize)

	// Filler goes at bottom (drawn last)
	for i := 0; i < minSize-len(topCards); i++ {
		deck = append(deck, fillerEnergy)
	}

	// Top cards go at end of slice; reverse order so index 0 is drawn first
	for i := len(topCards) - 1; i >= 0; i-- {
		deck = append(deck, topCards[i])
	}
	return deck
}

// newTestEngine builds a deterministic engine: decks in the given order,
// scripted coin flips, a fixed clock.
func newTestEngine(t *testing.T, deck0, deck1 []*Card, flips ...bool) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(Config{
		Deck0:     deck0,
		Deck1:     deck1,
		Logger:    logger,
		Rand:      NewScriptedRand(flips...),
		Clock:     NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		NoShuffle: true,
	})
	return e, logger
}

// beginMatch runs setup, places the first Basic of each hand as the active
// creature, gives player 0 the first turn and starts it.
func beginMatch(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	for p := 0; p < 2; p++ {
		for _, id := range append([]CardID(nil), e.State.Players[p].Hand...) {
			if e.State.Card(id).Card.IsBasic() {
				if !e.SetupPlace(p, id) {
					t.Fatalf("SetupPlace failed for P%d", p+1)
				}
				break
			}
		}
	}
	scripted := e.Rand
	e.Rand = NewScriptedRand(true)
	if first, ok := e.FlipForFirst(); !ok || first != 0 {
		t.Fatalf("FlipForFirst = %d, %v; want 0, true", first, ok)
	}
	e.Rand = scripted
	if !e.StartTurn() {
		t.Fatal("StartTurn failed")
	}
}

// startedMatch returns an engine in P1's first main phase with the given
// active creatures. Both decks hold only filler energy below the actives.
func startedMatch(t *testing.T, active0, active1 *Card, flips ...bool) (*Engine, *log.MemoryLogger) {
	t.Helper()
	deck0 := makePaddedDeck([]*Card{active0}, 30)
	deck1 := makePaddedDeck([]*Card{active1}, 30)
	e, logger := newTestEngine(t, deck0, deck1, flips...)
	beginMatch(t, e)
	return e, logger
}

// give adds a fresh instance of c to the player's hand.
func give(e *Engine, player int, c *Card) CardID {
	ci := e.State.Cards.New(c, player)
	e.State.Players[player].addToHand(ci.ID)
	return ci.ID
}

// field puts a fresh creature into play: active slot first, then bench.
func field(e *Engine, player int, c *Card) *CardInstance {
	ci := e.State.Cards.New(c, player)
	e.State.Players[player].PlaceInPlay(ci.ID)
	return ci
}

// attachNew attaches fresh resource instances to a creature in play.
func attachNew(e *Engine, target *CardInstance, cards ...*Card) {
	for _, c := range cards {
		ci := e.State.Cards.New(c, target.Owner)
		e.State.Players[target.Owner].Attach(ci.ID, target.ID)
	}
}

// discardNew puts a fresh instance of c straight into the discard pile.
func discardNew(e *Engine, player int, c *Card) CardID {
	ci := e.State.Cards.New(c, player)
	e.State.Players[player].SendToDiscard(ci.ID)
	return ci.ID
}

// passTurn ends the current turn and starts the next one.
func passTurn(t *testing.T, e *Engine) {
	t.Helper()
	if !e.EndTurn() {
		t.Fatal("EndTurn failed")
	}
	if !e.StartTurn() {
		t.Fatal("StartTurn failed")
	}
}

func handNames(e *Engine, player int) []string {
	var names []string
	for _, id := range e.State.Players[player].Hand {
		names = append(names, e.State.Card(id).Name())
	}
	return names
}

func discardCount(e *Engine, player int, name string) int {
	n := 0
	for _, id := range e.State.Players[player].Discard {
		if e.State.Card(id).Name() == name {
			n++
		}
	}
	return n
}

// checkZones verifies every card instance sits in exactly one place and
// that its zone field agrees with where it was found.
func checkZones(t *testing.T, e *Engine) {
	t.Helper()
	gs := e.State
	seen := make(map[CardID]ZoneType)
	mark := func(id CardID, z ZoneType) {
		if prev, dup := seen[id]; dup {
			t.Errorf("card %d (%s) found in %s and %s", id, gs.Card(id).Name(), prev, z)
			return
		}
		seen[id] = z
		if got := gs.Card(id).Zone; got != z {
			t.Errorf("card %d (%s) zone = %s, found in %s", id, gs.Card(id).Name(), got, z)
		}
	}

	for _, p := range gs.Players {
		for _, id := range p.Deck {
			mark(id, ZoneDeck)
		}
		for _, id := range p.Hand {
			mark(id, ZoneHand)
		}
		for _, id := range p.Prizes {
			mark(id, ZonePrizes)
		}
		for _, id := range p.Discard {
			mark(id, ZoneDiscard)
		}
		for _, c := range p.InPlay() {
			if c.ID == p.Active {
				mark(c.ID, ZoneActive)
			} else {
				mark(c.ID, ZoneBench)
			}
			if c.KnockedOut() {
				t.Errorf("%s is still in play while knocked out", c.Name())
			}
			for _, a := range c.Attached {
				mark(a, ZoneAttached)
				if gs.Card(a).AttachedTo != c.ID {
					t.Errorf("resource %d attached to %d, recorded %d", a, c.ID, gs.Card(a).AttachedTo)
				}
			}
			for pre := c.EvolvedFrom; pre != 0; pre = gs.Card(pre).EvolvedFrom {
				mark(pre, ZoneLineage)
			}
		}
	}

	if len(seen) != gs.Cards.Len() {
		t.Errorf("accounted for %d of %d card instances", len(seen), gs.Cards.Len())
	}
}
