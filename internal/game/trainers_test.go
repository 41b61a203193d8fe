package game

import (
	"reflect"
	"testing"

	"github.com/peterkuimelis/basetcg/internal/log"
)

// boardSnapshot captures everything a trainer may touch.
type boardSnapshot struct {
	Deck, Hand, Prizes, Discard [2][]CardID
	Active                      [2]CardID
	Bench                       [2][BenchSize]CardID
	Damage                      map[CardID]int
	Attached                    map[CardID][]CardID
	Status                      map[CardID]Status
	Turn                        TurnContext
}

func snapshot(e *Engine) boardSnapshot {
	s := boardSnapshot{
		Damage:   make(map[CardID]int),
		Attached: make(map[CardID][]CardID),
		Status:   make(map[CardID]Status),
		Turn:     e.State.Turn,
	}
	for i, p := range e.State.Players {
		s.Deck[i] = append([]CardID(nil), p.Deck...)
		s.Hand[i] = append([]CardID(nil), p.Hand...)
		s.Prizes[i] = append([]CardID(nil), p.Prizes...)
		s.Discard[i] = append([]CardID(nil), p.Discard...)
		s.Active[i] = p.Active
		s.Bench[i] = p.Bench
	}
	for _, c := range e.State.Cards.All() {
		s.Damage[c.ID] = c.Damage
		s.Attached[c.ID] = append([]CardID(nil), c.Attached...)
		s.Status[c.ID] = c.Status
	}
	return s
}

// trainerMatch starts a match and strips P1's hand down to the given
// number of filler cards.
func trainerMatch(t *testing.T, keep int) *Engine {
	t.Helper()
	e, _ := startedMatch(t, creature("Rattata", 40, Colorless), creature("Pidgey", 40, Colorless))
	p := e.State.Players[0]
	for len(p.Hand) > keep {
		id := p.Hand[len(p.Hand)-1]
		p.RemoveFromHand(id)
		p.PutOnDeck(id)
	}
	return e
}

func playTrainer(t *testing.T, e *Engine, name string) CardID {
	t.Helper()
	id := give(e, 0, trainer(name))
	if !e.PlayTrainer(id) {
		t.Fatalf("%s failed to resolve", name)
	}
	if e.State.Card(id).Zone == ZoneResolving {
		t.Fatalf("%s left in the resolving zone", name)
	}
	return id
}

func TestProfessorOakDiscardsHandAndDrawsSeven(t *testing.T) {
	e := trainerMatch(t, 4)
	p := e.State.Players[0]
	others := append([]CardID(nil), p.Hand...)

	oak := playTrainer(t, e, "Professor Oak")

	if p.HandCount() != HandSize {
		t.Fatalf("hand = %d, want %d", p.HandCount(), HandSize)
	}
	for _, id := range others {
		if e.State.Card(id).Zone != ZoneDiscard {
			t.Errorf("card %d should be discarded", id)
		}
	}
	if e.State.Card(oak).Zone != ZoneDiscard {
		t.Error("Professor Oak itself should be discarded")
	}
	if len(p.Discard) != 5 {
		t.Errorf("discard = %d, want 5", len(p.Discard))
	}
	checkZones(t, e)
}

func TestBillDrawsTwo(t *testing.T) {
	e := trainerMatch(t, 3)
	playTrainer(t, e, "Bill")
	if n := e.State.Players[0].HandCount(); n != 5 {
		t.Errorf("hand = %d, want 5", n)
	}
	checkZones(t, e)
}

func TestFailedTrainerChangesNothing(t *testing.T) {
	names := []string{
		"Energy Removal", "Super Energy Removal", "Gust of Wind", "Switch",
		"Potion", "Super Potion", "Full Heal", "Revive", "Item Finder",
		"Pokémon Trader", "Pokémon Breeder", "Pokémon Center", "Scoop Up",
		"Devolution Spray",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			e, logger := startedMatch(t, creature("Rattata", 40, Colorless), creature("Pidgey", 40, Colorless))
			id := give(e, 0, trainer(name))
			// put the card mid-hand so a restore to the end would show
			p := e.State.Players[0]
			p.RemoveFromHand(id)
			p.InsertInHand(id, 2)

			if e.TrainerReady(id) {
				t.Fatalf("%s should not be ready on an empty board", name)
			}
			for _, a := range e.LegalActions() {
				if a.Card == id {
					t.Fatalf("%s offered as a legal action", name)
				}
			}

			before := snapshot(e)
			if e.PlayTrainer(id) {
				t.Fatalf("%s resolved with nothing to do", name)
			}
			if after := snapshot(e); !reflect.DeepEqual(before, after) {
				t.Errorf("state changed by a failed %s", name)
			}
			if p.Hand[2] != id || e.State.Card(id).Zone != ZoneHand {
				t.Errorf("%s not restored to its hand position", name)
			}
			if len(logger.EventsOfType(log.EventTrainerFailed)) != 1 {
				t.Error("expected a TrainerFailed event")
			}
			checkZones(t, e)
		})
	}
}

func TestUnknownTrainerIsDiscarded(t *testing.T) {
	e := trainerMatch(t, 2)
	id := playTrainer(t, e, "Pokédex")
	if e.State.Card(id).Zone != ZoneDiscard {
		t.Error("an unknown action card is discarded")
	}
}

func TestEnergyRemoval(t *testing.T) {
	e := trainerMatch(t, 0)
	opp := e.State.ActiveCard(1)
	attachNew(e, opp, energy(Water), energy(Fire))

	playTrainer(t, e, "Energy Removal")
	if len(opp.Attached) != 1 || discardCount(e, 1, "Fire Energy") != 1 {
		t.Errorf("attached=%d, want the last resource removed", len(opp.Attached))
	}
	checkZones(t, e)
}

func TestSuperEnergyRemoval(t *testing.T) {
	e := trainerMatch(t, 0)
	mine := e.State.ActiveCard(0)
	opp := e.State.ActiveCard(1)
	attachNew(e, mine, energy(Fire))
	attachNew(e, opp, energy(Water), energy(Water), energy(Water))

	playTrainer(t, e, "Super Energy Removal")
	if len(mine.Attached) != 0 {
		t.Error("the cost comes from your own creature")
	}
	if len(opp.Attached) != 1 {
		t.Errorf("opponent attached = %d, want 1", len(opp.Attached))
	}
	checkZones(t, e)
}

func TestGustOfWindKeepsStatus(t *testing.T) {
	e := trainerMatch(t, 0)
	old := e.State.ActiveCard(1)
	old.Status = StatusAsleep
	benched := field(e, 1, creature("Abra", 30, Psychic))

	playTrainer(t, e, "Gust of Wind")
	p1 := e.State.Players[1]
	if p1.Active != benched.ID || p1.Bench[0] != old.ID {
		t.Fatalf("active=%d bench0=%d", p1.Active, p1.Bench[0])
	}
	if old.Status != StatusAsleep {
		t.Error("Gust of Wind leaves conditions in place")
	}
}

func TestSwitchClearsStatus(t *testing.T) {
	e := trainerMatch(t, 0)
	old := e.State.ActiveCard(0)
	old.Status = StatusConfused
	benched := field(e, 0, creature("Abra", 30, Psychic))

	playTrainer(t, e, "Switch")
	if e.State.Players[0].Active != benched.ID {
		t.Fatal("bench creature should be active")
	}
	if old.Status != StatusNone {
		t.Errorf("status = %s, want none", old.Status)
	}
}

func TestHealingTrainers(t *testing.T) {
	t.Run("potion", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		a.Damage = 30
		playTrainer(t, e, "Potion")
		if a.Damage != 10 {
			t.Errorf("damage = %d, want 10", a.Damage)
		}
	})
	t.Run("potion does not overheal", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		a.Damage = 10
		playTrainer(t, e, "Potion")
		if a.Damage != 0 {
			t.Errorf("damage = %d, want 0", a.Damage)
		}
	})
	t.Run("super potion", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		a.Damage = 30
		attachNew(e, a, energy(Colorless))
		playTrainer(t, e, "Super Potion")
		if a.Damage != 0 || len(a.Attached) != 0 {
			t.Errorf("damage=%d attached=%d, want 0/0", a.Damage, len(a.Attached))
		}
		checkZones(t, e)
	})
	t.Run("full heal", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		a.Status = StatusParalyzed
		playTrainer(t, e, "Full Heal")
		if a.Status != StatusNone {
			t.Errorf("status = %s", a.Status)
		}
	})
	t.Run("pokemon center", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		b := field(e, 0, creature("Abra", 30, Psychic))
		a.Damage, b.Damage = 20, 10
		attachNew(e, a, energy(Colorless), energy(Colorless))
		playTrainer(t, e, "Pokémon Center")
		if a.Damage != 0 || b.Damage != 0 || len(a.Attached) != 0 {
			t.Errorf("a=%d b=%d attached=%d", a.Damage, b.Damage, len(a.Attached))
		}
		checkZones(t, e)
	})
}

func TestTurnModifierTrainers(t *testing.T) {
	e := trainerMatch(t, 0)
	playTrainer(t, e, "PlusPower")
	playTrainer(t, e, "PlusPower")
	playTrainer(t, e, "Defender")
	if e.State.Turn.DamageBonus != 2*PlusPowerBonus || e.State.Turn.DamageReduction != DefenderBonus {
		t.Errorf("turn context = %+v", e.State.Turn)
	}
	passTurn(t, e)
	if e.State.Turn.DamageBonus != 0 || e.State.Turn.DamageReduction != 0 {
		t.Error("turn modifiers must reset at the next turn")
	}
}

func TestRevive(t *testing.T) {
	e := trainerMatch(t, 0)
	gone := discardNew(e, 0, creature("Machop", 50, Fighting))

	playTrainer(t, e, "Revive")
	c := e.State.Card(gone)
	if c.Zone != ZoneBench || c.Damage != 25 {
		t.Errorf("zone=%s damage=%d, want Bench/25", c.Zone, c.Damage)
	}
	checkZones(t, e)
}

func TestHandCycleTrainers(t *testing.T) {
	t.Run("maintenance", func(t *testing.T) {
		e := trainerMatch(t, 3)
		playTrainer(t, e, "Maintenance")
		// 3 others: 2 shuffled in, 1 drawn
		if n := e.State.Players[0].HandCount(); n != 2 {
			t.Errorf("hand = %d, want 2", n)
		}
		checkZones(t, e)
	})
	t.Run("computer search", func(t *testing.T) {
		e := trainerMatch(t, 3)
		playTrainer(t, e, "Computer Search")
		p := e.State.Players[0]
		if p.HandCount() != 2 || len(p.Discard) != 3 {
			t.Errorf("hand=%d discard=%d, want 2/3", p.HandCount(), len(p.Discard))
		}
		checkZones(t, e)
	})
	t.Run("computer search needs two others", func(t *testing.T) {
		e := trainerMatch(t, 1)
		id := give(e, 0, trainer("Computer Search"))
		if e.TrainerReady(id) || e.PlayTrainer(id) {
			t.Error("Computer Search needs two other cards to discard")
		}
	})
	t.Run("item finder", func(t *testing.T) {
		e := trainerMatch(t, 2)
		potion := discardNew(e, 0, trainer("Potion"))
		playTrainer(t, e, "Item Finder")
		p := e.State.Players[0]
		if !p.InHand(potion) || p.HandCount() != 1 {
			t.Errorf("hand = %v", handNames(e, 0))
		}
		checkZones(t, e)
	})
	t.Run("lass", func(t *testing.T) {
		e := trainerMatch(t, 1)
		give(e, 0, trainer("Bill"))
		give(e, 1, trainer("Switch"))
		give(e, 1, trainer("Potion"))
		oppHand := e.State.Players[1].HandCount()
		playTrainer(t, e, "Lass")
		if e.State.Players[0].HandCount() != 1 {
			t.Errorf("P1 hand = %v", handNames(e, 0))
		}
		if e.State.Players[1].HandCount() != oppHand-2 {
			t.Errorf("P2 hand = %v", handNames(e, 1))
		}
		checkZones(t, e)
	})
	t.Run("imposter oak", func(t *testing.T) {
		e := trainerMatch(t, 0)
		opp := e.State.Players[1]
		deckBefore := opp.DeckCount()
		// hand of 6 goes back, 7 come out
		playTrainer(t, e, "Imposter Professor Oak")
		if opp.HandCount() != HandSize || opp.DeckCount() != deckBefore-1 {
			t.Errorf("hand=%d deck=%d", opp.HandCount(), opp.DeckCount())
		}
		checkZones(t, e)
	})
}

func TestPokemonTrader(t *testing.T) {
	e := trainerMatch(t, 0)
	p := e.State.Players[0]
	given := give(e, 0, creature("Abra", 30, Psychic))
	wanted := e.State.Cards.New(creature("Machop", 50, Fighting), 0)
	p.PutOnDeck(wanted.ID)

	playTrainer(t, e, "Pokémon Trader")
	if !p.InHand(wanted.ID) || p.InHand(given) {
		t.Errorf("hand = %v", handNames(e, 0))
	}
	if e.State.Card(given).Zone != ZoneDeck {
		t.Error("the traded creature goes into the deck")
	}
	checkZones(t, e)
}

func TestPokemonBreederSkipsStage(t *testing.T) {
	basic := creature("Charmander", 50, Fire)
	basic.EvolvesTo = []string{"Charmeleon"}
	e, _ := startedMatch(t, basic, creature("Pidgey", 40, Colorless))
	a := e.State.ActiveCard(0)
	a.Damage = 10
	attachNew(e, a, energy(Fire))
	stage2 := give(e, 0, evolution("Charizard", "Charmeleon", Stage2, 120, Fire))

	playTrainer(t, e, "Pokémon Breeder")
	c := e.State.ActiveCard(0)
	if c.ID != stage2 || c.EvolvedFrom != a.ID {
		t.Fatalf("active = %s", c)
	}
	if c.Damage != 10 || len(c.Attached) != 1 {
		t.Errorf("damage=%d attached=%d", c.Damage, len(c.Attached))
	}
	checkZones(t, e)
}

func TestScoopUp(t *testing.T) {
	t.Run("bench", func(t *testing.T) {
		e := trainerMatch(t, 0)
		b := field(e, 0, creature("Abra", 30, Psychic))
		b.Damage = 10
		attachNew(e, b, energy(Psychic))
		playTrainer(t, e, "Scoop Up")
		p := e.State.Players[0]
		if !p.InHand(b.ID) || p.HandCount() != 2 || b.Damage != 0 {
			t.Errorf("hand = %v damage=%d", handNames(e, 0), b.Damage)
		}
		checkZones(t, e)
	})
	t.Run("active promotes", func(t *testing.T) {
		e := trainerMatch(t, 0)
		a := e.State.ActiveCard(0)
		a.Damage = 10
		b := field(e, 0, creature("Abra", 30, Psychic))
		playTrainer(t, e, "Scoop Up")
		p := e.State.Players[0]
		if p.Active != b.ID || !p.InHand(a.ID) {
			t.Errorf("active=%d hand=%v", p.Active, handNames(e, 0))
		}
		checkZones(t, e)
	})
}

func TestDevolutionSpray(t *testing.T) {
	basic := creature("Charmander", 50, Fire)
	e, _ := startedMatch(t, basic, creature("Pidgey", 40, Colorless))
	p := e.State.Players[0]
	a := e.State.ActiveCard(0)
	evo := e.State.Card(give(e, 0, evolution("Charmeleon", "Charmander", Stage1, 80, Fire)))
	p.RemoveFromHand(evo.ID)
	e.evolveInto(p, a, evo)
	evo.Damage = 60
	field(e, 0, creature("Abra", 30, Psychic))

	playTrainer(t, e, "Devolution Spray")
	// 60 damage knocks out the 50 HP basic
	if a.Zone != ZoneDiscard {
		t.Errorf("Charmander zone = %s, want Discard", a.Zone)
	}
	if !p.InHand(evo.ID) {
		t.Error("the evolution card returns to hand")
	}
	if len(e.State.Players[1].Prizes) != PrizeCount-1 {
		t.Error("the opponent takes a prize for the knockout")
	}
	checkZones(t, e)
}

func TestClefairyDollPlaysAsCreature(t *testing.T) {
	e := trainerMatch(t, 0)
	doll := playTrainer(t, e, "Clefairy Doll")
	c := e.State.Card(doll)
	if c.Zone != ZoneBench {
		t.Fatalf("doll zone = %s, want Bench", c.Zone)
	}
	if hp, ok := c.RemainingHP(); !ok || hp != DollHP {
		t.Errorf("doll HP = %d, %v", hp, ok)
	}
	if !c.Def().IsBasic() || c.Card.IsCreature() {
		t.Error("the doll plays as a Basic while its printed card stays an action")
	}
	checkZones(t, e)
}

func TestTrainerBlockedOutsideMainPhase(t *testing.T) {
	e := trainerMatch(t, 0)
	id := give(e, 1, trainer("Bill"))
	if e.CanPlayTrainer(id) {
		t.Error("P2 cannot play trainers during P1's turn")
	}
	e.Stop("test")
	own := give(e, 0, trainer("Bill"))
	if e.PlayTrainer(own) {
		t.Error("no trainers after the game ended")
	}
}

func TestTrainerRegistry(t *testing.T) {
	r := NewTrainerRegistry()
	if len(r.Names()) != 24 {
		t.Errorf("registered = %d, want 24", len(r.Names()))
	}
	called := false
	r.Register(Trainer{Name: "Pokédex", Resolve: func(e *Engine, player int, card *CardInstance) bool {
		called = true
		return true
	}})

	mon := creature("Rattata", 40, Colorless)
	deck := makePaddedDeck([]*Card{mon}, 20)
	e := NewEngine(Config{Deck0: deck, Deck1: deck, Rand: NewScriptedRand(true), Trainers: r, NoShuffle: true})
	beginMatch(t, e)
	playTrainer(t, e, "Pokédex")
	if !called {
		t.Error("registered effect was not used")
	}
}
