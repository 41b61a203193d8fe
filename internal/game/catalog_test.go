package game

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return cat
}

func TestDefaultCatalogLoads(t *testing.T) {
	cat := testCatalog(t)

	zard, ok := cat.Lookup("Charizard")
	if !ok {
		t.Fatal("Charizard missing")
	}
	if zard.Stage != Stage2 || zard.EvolvesFrom != "Charmeleon" || zard.HP != 120 {
		t.Errorf("Charizard = %+v", zard)
	}
	if zard.Images.Small != "https://images.pokemontcg.io/base1/4.png" {
		t.Errorf("image = %q", zard.Images.Small)
	}

	dce, ok := cat.Lookup("Double Colorless Energy")
	if !ok || !dce.IsResource() || !dce.AnyType {
		t.Errorf("Double Colorless Energy = %+v", dce)
	}

	// every registered trainer has a card
	for _, name := range NewTrainerRegistry().Names() {
		c, ok := cat.Lookup(name)
		if !ok || !c.IsAction() {
			t.Errorf("trainer %q missing from the catalog", name)
		}
	}
}

func TestCatalogDerivesEffects(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		card   string
		attack int
		want   []AttackEffect
	}{
		{"Charmander", 1, []AttackEffect{{Kind: EffectDiscardEnergy, Amount: 1}}},
		{"Nidoran♂", 0, []AttackEffect{{Kind: EffectCoinGate}}},
		{"Zapdos", 1, []AttackEffect{{Kind: EffectDiscardEnergy, All: true}}},
		{"Pikachu", 1, []AttackEffect{{Kind: EffectSelfDamage, Amount: 10}}},
		{"Ivysaur", 1, []AttackEffect{{Kind: EffectInflictStatus, Status: StatusPoisoned}}},
		{"Doduo", 0, []AttackEffect{{Kind: EffectPerHeads, Amount: 2}}},
		{"Starmie", 0, []AttackEffect{{Kind: EffectHealSelf, All: true}, {Kind: EffectDiscardEnergy, Amount: 1}}},
		{"Squirtle", 1, []AttackEffect{}},
		{"Charmander", 0, nil},
	}
	for _, tt := range tests {
		c, ok := cat.Lookup(tt.card)
		if !ok {
			t.Fatalf("%s missing", tt.card)
		}
		got := c.Attacks[tt.attack].Effects
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s/%s effects = %+v, want %+v", tt.card, c.Attacks[tt.attack].Name, got, tt.want)
		}
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "cards: ["},
		{"no name", "cards:\n  - category: creature\n"},
		{"duplicate", "cards:\n  - {name: A, category: action}\n  - {name: A, category: action}\n"},
		{"bad category", "cards:\n  - {name: A, category: spell}\n"},
		{"bad status", "cards:\n  - name: A\n    attacks:\n      - name: X\n        effects: [{kind: inflict_status, status: frozen}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseCatalogPrintedNames(t *testing.T) {
	data := `
cards:
  - name: Mew
    category: Pokémon
    stage: Basic
    hp: 50
    types: [Psychic]
  - name: Boost
    category: Energy
    provides: Fire
`
	cat, err := LoadCatalog(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	mew, _ := cat.Lookup("Mew")
	if !mew.IsBasic() || mew.Images.Small != "" {
		t.Errorf("Mew = %+v", mew)
	}
	boost, _ := cat.Lookup("Boost")
	if boost.ProvidedType() != Fire {
		t.Errorf("provides = %s", boost.ProvidedType())
	}
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"Boost", "Mew"}) {
		t.Errorf("names = %v", got)
	}
}

func TestDefaultDecksAreComplete(t *testing.T) {
	cat := testCatalog(t)
	df, err := ParseDecks(nil)
	if err != nil {
		t.Fatalf("ParseDecks: %v", err)
	}
	if len(df.Decks) != 4 {
		t.Fatalf("decks = %d, want 4", len(df.Decks))
	}
	for _, d := range df.Decks {
		if d.Size() != DeckSize {
			t.Errorf("%s has %d cards, want %d", d.Name, d.Size(), DeckSize)
		}
		cards, err := d.Build(cat)
		if err != nil {
			t.Errorf("%s: %v", d.Name, err)
			continue
		}
		if !deckHasBasicCard(cards) {
			t.Errorf("%s has no Basic creature", d.Name)
		}
	}
}

func deckHasBasicCard(cards []*Card) bool {
	for _, c := range cards {
		if c.IsBasic() {
			return true
		}
	}
	return false
}

func TestDeckFileFromDisk(t *testing.T) {
	cat := testCatalog(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "decks.yaml")
	data := "decks:\n  - name: Tiny\n    cards:\n      - {name: Pikachu, count: 2}\n      - {name: Lightning Energy, count: 3}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	name, cards, err := DeckByNumber(path, 1, cat)
	if err != nil {
		t.Fatalf("DeckByNumber: %v", err)
	}
	if name != "Tiny" || len(cards) != 5 {
		t.Errorf("deck %q has %d cards", name, len(cards))
	}
	if _, _, err := DeckByNumber(path, 2, cat); err == nil {
		t.Error("expected an error for a missing deck number")
	}

	// a missing file falls back to the built-in decks
	decks, err := ParseDeckFile(filepath.Join(dir, "none.yaml"), cat)
	if err != nil {
		t.Fatalf("ParseDeckFile: %v", err)
	}
	if _, ok := decks["Blaze"]; !ok {
		t.Error("expected the built-in decks")
	}
}

func TestDeckUnknownCard(t *testing.T) {
	cat := testCatalog(t)
	d := DeckEntry{Name: "Bad", Cards: []CardEntry{{Name: "Missingno", Count: 1}}}
	if _, err := d.Build(cat); err == nil {
		t.Fatal("expected an error for an unknown card")
	}
}

func TestRandomDeck(t *testing.T) {
	cat := testCatalog(t)
	for seed := int64(1); seed <= 5; seed++ {
		deck, err := RandomDeck(cat, NewSeededRand(seed))
		if err != nil {
			t.Fatalf("RandomDeck: %v", err)
		}
		if len(deck) != DeckSize {
			t.Fatalf("deck size = %d", len(deck))
		}
		basics, trainers := 0, 0
		for _, c := range deck {
			switch {
			case c.IsBasic():
				basics++
			case c.IsAction():
				trainers++
			case c.IsCreature():
				t.Errorf("evolution %s in a quick-play deck", c.Name)
			}
		}
		if basics < 10 || basics > 14 || trainers < 8 || trainers > 12 {
			t.Errorf("seed %d: basics=%d trainers=%d", seed, basics, trainers)
		}
	}
}

func TestDeriveAttackEffects(t *testing.T) {
	tests := []struct {
		text string
		want []AttackEffect
	}{
		{"", nil},
		{"Flip a coin. If tails, this attack does nothing.", []AttackEffect{{Kind: EffectCoinGate}}},
		{"Flip 2 coins. This attack does 30 damage times the number of heads.", nil},
		{"Flip 2 coins. This attack does 20 damage for each heads.", []AttackEffect{{Kind: EffectPerHeads, Amount: 2}}},
		{"Does 10 damage times the number of Energy cards attached.", []AttackEffect{{Kind: EffectEnergyMultiplier}}},
		{"Raichu does 30 damage to itself.", []AttackEffect{{Kind: EffectSelfDamage, Amount: 30}}},
		{"The Defending Pokémon is now Confused.", []AttackEffect{{Kind: EffectInflictStatus, Status: StatusConfused}}},
		{"Remove 2 damage counters from this Pokémon.", []AttackEffect{{Kind: EffectHealSelf, Amount: 20}}},
		{"Remove a damage counter.", []AttackEffect{{Kind: EffectHealSelf, Amount: 10}}},
		{"Discard 2 Energy cards attached to this Pokémon.", []AttackEffect{{Kind: EffectDiscardEnergy, Amount: 2}}},
		{"Discard all Energy cards attached.", []AttackEffect{{Kind: EffectDiscardEnergy, All: true}}},
		{"The Defending Pokémon is now Paralyzed and Poisoned.", []AttackEffect{
			{Kind: EffectInflictStatus, Status: StatusParalyzed},
			{Kind: EffectInflictStatus, Status: StatusPoisoned},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := DeriveAttackEffects(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBaseDamage(t *testing.T) {
	for in, want := range map[string]int{"30": 30, "10×": 10, "40+": 40, "50-": 50, "": 0} {
		if got := (Attack{Damage: in}).BaseDamage(); got != want {
			t.Errorf("BaseDamage(%q) = %d, want %d", in, got, want)
		}
	}
}
