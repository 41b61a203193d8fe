package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/decks.yaml
var defaultDecksYAML []byte

const DeckSize = 60

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name" json:"name"`
	Cards []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// Size returns the total card count of the entry.
func (d DeckEntry) Size() int {
	n := 0
	for _, c := range d.Cards {
		n += c.Count
	}
	return n
}

// ParseDecks decodes deck YAML. Nil or empty data yields the built-in decks.
func ParseDecks(data []byte) (*DeckFile, error) {
	if len(data) == 0 {
		data = defaultDecksYAML
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// ReadDeckFile reads deck YAML from path. A missing file yields the
// built-in decks.
func ReadDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ParseDecks(nil)
		}
		return nil, err
	}
	return ParseDecks(data)
}

// Build resolves a deck entry against the catalog. Unknown names are errors.
func (d DeckEntry) Build(cat *Catalog) ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		card, ok := cat.Lookup(entry.Name)
		if !ok {
			return nil, fmt.Errorf("deck %q: card %q not in catalog", d.Name, entry.Name)
		}
		for i := 0; i < entry.Count; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → card slice.
func ParseDeckFile(path string, cat *Catalog) (map[string][]*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}
	decks := make(map[string][]*Card)
	for _, deck := range df.Decks {
		cards, err := deck.Build(cat)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, cat *Catalog) (string, []*Card, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	deck := df.Decks[n-1]
	cards, err := deck.Build(cat)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// Intn is the slice of a random source the deck builder needs.
type Intn interface {
	Intn(n int) int
}

// RandomDeck builds a quick-play deck: 10 to 14 Basic creatures, 8 to 12
// trainers, and basic energy of the creatures' types up to DeckSize.
func RandomDeck(cat *Catalog, r Intn) ([]*Card, error) {
	basics := cat.Filter(func(c *Card) bool { return c.IsBasic() })
	trainers := cat.Filter(func(c *Card) bool { return c.IsAction() })
	energies := cat.Filter(func(c *Card) bool { return c.IsResource() && !c.AnyType })
	if len(basics) == 0 || len(energies) == 0 {
		return nil, fmt.Errorf("catalog lacks basic creatures or energy")
	}

	var deck []*Card
	typeCount := make(map[EnergyType]int)
	nBasics := 10 + r.Intn(5)
	for i := 0; i < nBasics; i++ {
		c := basics[r.Intn(len(basics))]
		deck = append(deck, c)
		for _, t := range c.Types {
			typeCount[t]++
		}
	}
	if len(trainers) > 0 {
		nTrainers := 8 + r.Intn(5)
		for i := 0; i < nTrainers; i++ {
			deck = append(deck, trainers[r.Intn(len(trainers))])
		}
	}

	var pool []*Card
	for _, en := range energies {
		if typeCount[en.ProvidedType()] > 0 {
			pool = append(pool, en)
		}
	}
	if len(pool) == 0 {
		pool = energies
	}
	for len(deck) < DeckSize {
		deck = append(deck, pool[r.Intn(len(pool))])
	}
	return deck, nil
}
