package game

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/basecards.yaml
var defaultCatalogYAML []byte

// CatalogFile represents the top-level catalog YAML structure.
type CatalogFile struct {
	Cards []*Card `yaml:"cards"`
}

// Catalog is a read-only collection of card definitions keyed by name.
type Catalog struct {
	byName map[string]*Card
	order  []string
}

// ParseCatalog decodes a catalog and fills in derived data: attack effects
// from printed text when none were authored, and default image links.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	c := &Catalog{byName: make(map[string]*Card)}
	for i, card := range cf.Cards {
		if card == nil || card.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if _, dup := c.byName[card.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", card.Name)
		}
		if card.IsCreature() && card.Stage == StageNone {
			card.Stage = StageBasic
		}
		for j := range card.Attacks {
			if card.Attacks[j].Effects == nil {
				card.Attacks[j].Effects = DeriveAttackEffects(card.Attacks[j].Text)
			}
		}
		if card.Images.Small == "" {
			card.Images = defaultImages(card.ID)
		}
		c.byName[card.Name] = card
		c.order = append(c.order, card.Name)
	}
	return c, nil
}

// LoadCatalog reads a catalog from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// LoadCatalogFile reads a catalog file. An empty path selects the
// embedded Base Set catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// DefaultCatalog returns a fresh copy of the embedded Base Set catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// defaultImages links set-number IDs such as "base1-4" to the public scans.
func defaultImages(id string) Images {
	set, num, ok := strings.Cut(id, "-")
	if !ok || set == "" || num == "" {
		return Images{}
	}
	base := fmt.Sprintf("https://images.pokemontcg.io/%s/%s", set, num)
	return Images{Small: base + ".png", Large: base + "_hires.png"}
}

// Lookup finds a card definition by name.
func (c *Catalog) Lookup(name string) (*Card, bool) {
	card, ok := c.byName[name]
	return card, ok
}

// Cards returns every definition in catalog order.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}

// Names returns the sorted card names.
func (c *Catalog) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

// Filter returns definitions matching pred in catalog order.
func (c *Catalog) Filter(pred func(*Card) bool) []*Card {
	var out []*Card
	for _, card := range c.Cards() {
		if pred(card) {
			out = append(out, card)
		}
	}
	return out
}
