package game

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Card definition (static, from the catalog) ---

type Attack struct {
	Name    string         `yaml:"name" json:"name"`
	Cost    []EnergyType   `yaml:"cost" json:"cost"`
	Damage  string         `yaml:"damage,omitempty" json:"damage,omitempty"` // printed power, e.g. "30", "10×", "40+"
	Text    string         `yaml:"text,omitempty" json:"text,omitempty"`
	Effects []AttackEffect `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// BaseDamage parses the digits of the printed power, ignoring decorations.
func (a Attack) BaseDamage() int {
	var digits strings.Builder
	for _, r := range a.Damage {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// TypeModifier is a weakness or resistance entry.
type TypeModifier struct {
	Type  EnergyType `yaml:"type" json:"type"`
	Value string     `yaml:"value,omitempty" json:"value,omitempty"` // "×2", "-30"
}

type Ability struct {
	Name string `yaml:"name" json:"name"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

type Images struct {
	Small string `yaml:"small,omitempty" json:"small,omitempty"`
	Large string `yaml:"large,omitempty" json:"large,omitempty"`
}

type Card struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Category    Category       `yaml:"category" json:"category"`
	Stage       Stage          `yaml:"stage,omitempty" json:"stage,omitempty"`
	HP          int            `yaml:"hp,omitempty" json:"hp,omitempty"`
	Types       []EnergyType   `yaml:"types,omitempty" json:"types,omitempty"`
	EvolvesFrom string         `yaml:"evolves_from,omitempty" json:"evolvesFrom,omitempty"`
	EvolvesTo   []string       `yaml:"evolves_to,omitempty" json:"evolvesTo,omitempty"`
	Attacks     []Attack       `yaml:"attacks,omitempty" json:"attacks,omitempty"`
	Abilities   []Ability      `yaml:"abilities,omitempty" json:"abilities,omitempty"`
	Weaknesses  []TypeModifier `yaml:"weaknesses,omitempty" json:"weaknesses,omitempty"`
	Resistances []TypeModifier `yaml:"resistances,omitempty" json:"resistances,omitempty"`
	RetreatCost int            `yaml:"retreat_cost,omitempty" json:"retreatCost"`

	// Resource cards
	Provides EnergyType `yaml:"provides,omitempty" json:"provides,omitempty"`
	AnyType  bool       `yaml:"any_type,omitempty" json:"anyType,omitempty"` // counts toward every typed cost

	Number string `yaml:"number,omitempty" json:"number,omitempty"`
	Rarity string `yaml:"rarity,omitempty" json:"rarity,omitempty"`
	Images Images `yaml:"images,omitempty" json:"images,omitempty"`
}

func (c *Card) String() string {
	return c.Name
}

func (c *Card) IsCreature() bool { return c.Category == CategoryCreature }
func (c *Card) IsResource() bool { return c.Category == CategoryResource }
func (c *Card) IsAction() bool   { return c.Category == CategoryAction }

// IsBasic reports whether the card is a creature that can be played directly.
func (c *Card) IsBasic() bool {
	return c.IsCreature() && c.Stage == StageBasic
}

// HasType reports whether the card carries the given elemental type.
func (c *Card) HasType(t EnergyType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// ProvidedType is the type a resource card pays for. Untyped resources are Colorless.
func (c *Card) ProvidedType() EnergyType {
	if c.Provides != "" {
		return c.Provides
	}
	if len(c.Types) > 0 {
		return c.Types[0]
	}
	return Colorless
}

// --- CardInstance (runtime card in any zone) ---

// CardID identifies a card instance for the whole match. Zero means "no card".
type CardID int

type CardInstance struct {
	ID    CardID
	Card  *Card
	Owner int // player index (0 or 1)
	Zone  ZoneType

	// Battle state
	Damage      int
	Attached    []CardID // resources, in attach order
	AttachedTo  CardID   // for a resource: the creature carrying it
	Status      Status
	EvolvedFrom CardID // predecessor held under this creature

	// Per-turn tracking
	EvolvedThisTurn bool
	PlayedThisTurn  bool
	TurnsParalyzed  int

	// stand-in definition while an action card is in play as a creature
	override *Card
}

// Def returns the definition the instance currently plays as.
func (ci *CardInstance) Def() *Card {
	if ci.override != nil {
		return ci.override
	}
	return ci.Card
}

func (ci *CardInstance) Name() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	if !ci.Def().IsCreature() {
		return ci.Card.Name
	}
	s := fmt.Sprintf("%s (%d/%d HP", ci.Card.Name, ci.Def().HP-ci.Damage, ci.Def().HP)
	if ci.Status != StatusNone {
		s += ", " + ci.Status.String()
	}
	return s + ")"
}

// RemainingHP returns vitality minus damage. ok is false for cards with no vitality.
func (ci *CardInstance) RemainingHP() (hp int, ok bool) {
	def := ci.Def()
	if def.HP == 0 {
		return 0, false
	}
	return def.HP - ci.Damage, true
}

// KnockedOut reports damage >= vitality. Damage is never clamped.
func (ci *CardInstance) KnockedOut() bool {
	def := ci.Def()
	return def.HP > 0 && ci.Damage >= def.HP
}

// CanAct reports whether the status allows attacking and retreating.
func (ci *CardInstance) CanAct() bool {
	return ci.Status != StatusParalyzed && ci.Status != StatusAsleep
}

// ResetTurnFlags clears per-turn flags at the start of the owner's turn.
// Paralysis survives the first owner turn after it was applied and is
// cleared at the start of the next one.
func (ci *CardInstance) ResetTurnFlags() {
	ci.EvolvedThisTurn = false
	ci.PlayedThisTurn = false
	if ci.Status == StatusParalyzed {
		if ci.TurnsParalyzed >= 1 {
			ci.Status = StatusNone
			ci.TurnsParalyzed = 0
		} else {
			ci.TurnsParalyzed++
		}
	}
}

// EnergyCount counts attached resources. An empty type counts all of them;
// an any-type resource counts toward every type.
func (ci *CardInstance) EnergyCount(a *Arena, t EnergyType) int {
	if t == "" {
		return len(ci.Attached)
	}
	n := 0
	for _, id := range ci.Attached {
		e := a.Get(id)
		if e.Card.AnyType || e.Card.ProvidedType() == t {
			n++
		}
	}
	return n
}

// CanUseAttack checks the attack cost against attached resources. Typed
// requirements are satisfied first, exact matches before any-type
// resources; whatever is left must cover the Colorless requirement.
func (ci *CardInstance) CanUseAttack(a *Arena, idx int) bool {
	attacks := ci.Def().Attacks
	if idx < 0 || idx >= len(attacks) {
		return false
	}
	return costSatisfied(a, ci.Attached, attacks[idx].Cost)
}

func costSatisfied(a *Arena, attached []CardID, cost []EnergyType) bool {
	exact := make(map[EnergyType]int)
	wild := 0
	for _, id := range attached {
		e := a.Get(id)
		if e.Card.AnyType {
			wild++
			continue
		}
		exact[e.Card.ProvidedType()]++
	}

	need := make(map[EnergyType]int)
	var order []EnergyType
	colorless := 0
	for _, c := range cost {
		if c == Colorless {
			colorless++
			continue
		}
		if need[c] == 0 {
			order = append(order, c)
		}
		need[c]++
	}

	used := 0
	for _, t := range order {
		n := need[t]
		have := exact[t]
		if have >= n {
			used += n
			continue
		}
		short := n - have
		if wild < short {
			return false
		}
		wild -= short
		used += n
	}
	return len(attached)-used >= colorless
}

// CanRetreat reports enough resources for the retreat cost and a status
// that allows moving.
func (ci *CardInstance) CanRetreat() bool {
	return len(ci.Attached) >= ci.Def().RetreatCost && ci.CanAct()
}

// --- Arena ---

// Arena owns every card instance of a match. Zones hold IDs only.
type Arena struct {
	cards []*CardInstance // index = ID; slot 0 unused
}

func NewArena() *Arena {
	return &Arena{cards: []*CardInstance{nil}}
}

// New creates an instance with the next identity. IDs are never reused.
func (a *Arena) New(card *Card, owner int) *CardInstance {
	ci := &CardInstance{
		ID:    CardID(len(a.cards)),
		Card:  card,
		Owner: owner,
		Zone:  ZoneDeck,
	}
	a.cards = append(a.cards, ci)
	return ci
}

// Get returns the instance for id, or nil for 0 or an unknown id.
func (a *Arena) Get(id CardID) *CardInstance {
	if id <= 0 || int(id) >= len(a.cards) {
		return nil
	}
	return a.cards[id]
}

func (a *Arena) Len() int {
	return len(a.cards) - 1
}

// All returns every instance in identity order.
func (a *Arena) All() []*CardInstance {
	return a.cards[1:]
}
