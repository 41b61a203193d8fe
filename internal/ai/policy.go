// Package ai is a heuristic opponent. It sees only the engine's legal
// action list and the public game state, the same as a human controller.
package ai

import (
	"context"
	"errors"
	"sort"

	"github.com/peterkuimelis/basetcg/internal/game"
	"github.com/peterkuimelis/basetcg/internal/log"
)

// trainerPriority is the order in which action cards are considered.
// Cards not listed are never played by the policy.
var trainerPriority = []string{
	"Bill", "Professor Oak", "Computer Search",
	"PlusPower", "Energy Removal", "Super Energy Removal",
	"Gust of Wind", "Full Heal", "Potion", "Super Potion",
	"Switch", "Defender",
}

var errNoActions = errors.New("no actions offered")

// Policy plays one side of a match.
type Policy struct {
	Player int

	retreatedOn int // turn number of the last retreat
}

// New returns a policy for the given player index.
func New(player int) *Policy {
	return &Policy{Player: player, retreatedOn: -1}
}

// ChooseAction picks one of the offered actions. Main-phase actions are
// taken in a fixed order: basics, one attachment, evolutions, trainers,
// retreat, then the strongest attack or the end of the turn.
func (p *Policy) ChooseAction(ctx context.Context, gs *game.GameState, actions []game.Action) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	if len(actions) == 0 {
		return game.Action{}, errNoActions
	}
	switch actions[0].Type {
	case game.ActionSetupPlace, game.ActionSetupDone:
		return p.chooseSetup(gs, actions), nil
	case game.ActionPromote:
		return p.choosePromotion(gs, actions), nil
	}
	return p.chooseMain(gs, actions), nil
}

// Notify is a no-op: the policy reads the state it is handed.
func (p *Policy) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// chooseSetup puts the sturdiest Basic in the active slot and benches the
// rest.
func (p *Policy) chooseSetup(gs *game.GameState, actions []game.Action) game.Action {
	places := filter(actions, game.ActionSetupPlace)
	if len(places) == 0 {
		return actions[len(actions)-1]
	}
	sort.SliceStable(places, func(i, j int) bool {
		return gs.Card(places[i].Card).Card.HP > gs.Card(places[j].Card).Card.HP
	})
	return places[0]
}

func (p *Policy) choosePromotion(gs *game.GameState, actions []game.Action) game.Action {
	best, bestScore := actions[0], -1
	for _, a := range actions {
		c := gs.Card(a.Card)
		score := remaining(c)
		if canUseAnyAttack(gs, c) {
			score += 100
		}
		if len(c.Attached) > 0 {
			score += 30
		}
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}

func (p *Policy) chooseMain(gs *game.GameState, actions []game.Action) game.Action {
	if plays := filter(actions, game.ActionPlayBasic); len(plays) > 0 {
		return plays[0]
	}
	if a, ok := p.chooseAttachment(gs, actions); ok {
		return a
	}
	if evos := filter(actions, game.ActionEvolve); len(evos) > 0 {
		return evos[0]
	}
	if a, ok := p.chooseTrainer(gs, actions); ok {
		return a
	}
	if a, ok := p.chooseRetreat(gs, actions); ok {
		p.retreatedOn = gs.TurnNumber
		return a
	}
	if a, ok := chooseAttack(gs, actions); ok {
		return a
	}
	return actions[len(actions)-1]
}

// chooseAttachment scores every creature in play and attaches the resource
// that matches what the best target still needs.
func (p *Policy) chooseAttachment(gs *game.GameState, actions []game.Action) (game.Action, bool) {
	attaches := filter(actions, game.ActionAttachEnergy)
	if len(attaches) == 0 {
		return game.Action{}, false
	}
	me := gs.Players[p.Player]

	var target *game.CardInstance
	bestScore := -1
	for _, c := range me.InPlay() {
		score := energyTargetScore(gs.Cards, me, c)
		if score > bestScore {
			target, bestScore = c, score
		}
	}
	if target == nil {
		return game.Action{}, false
	}

	needed := neededTypes(gs.Cards, target)
	var fallback *game.Action
	for i, a := range attaches {
		if a.Target != target.ID {
			continue
		}
		if fallback == nil {
			fallback = &attaches[i]
		}
		if needed[gs.Card(a.Card).Card.ProvidedType()] {
			return a, true
		}
	}
	if fallback == nil {
		return attaches[0], true
	}
	return *fallback, true
}

func energyTargetScore(a *game.Arena, me *game.Player, c *game.CardInstance) int {
	score := 0
	if c.ID == me.Active {
		score += 50
	}
	attached := c.EnergyCount(a, "")
	for _, atk := range c.Def().Attacks {
		switch need := len(atk.Cost) - attached; {
		case need == 1:
			score += 30
		case need <= 0:
			score += 5
		default:
			score += max(0, 20-need*5)
		}
	}
	return score + c.Def().HP/10
}

// neededTypes returns the non-Colorless types the creature's attacks ask
// for that its attached resources do not already cover.
func neededTypes(a *game.Arena, c *game.CardInstance) map[game.EnergyType]bool {
	types := make(map[game.EnergyType]bool)
	for _, atk := range c.Def().Attacks {
		want := make(map[game.EnergyType]int)
		for _, t := range atk.Cost {
			if t != game.Colorless {
				want[t]++
			}
		}
		for t, n := range want {
			if c.EnergyCount(a, t) < n {
				types[t] = true
			}
		}
	}
	return types
}

func (p *Policy) chooseTrainer(gs *game.GameState, actions []game.Action) (game.Action, bool) {
	trainers := filter(actions, game.ActionPlayTrainer)
	if len(trainers) == 0 {
		return game.Action{}, false
	}
	for _, name := range trainerPriority {
		for _, a := range trainers {
			if gs.Card(a.Card).Name() == name && p.wantsTrainer(gs, name) {
				return a, true
			}
		}
	}
	return game.Action{}, false
}

// wantsTrainer holds the per-card conditions on top of the engine's own
// readiness check.
func (p *Policy) wantsTrainer(gs *game.GameState, name string) bool {
	me := gs.Players[p.Player]
	opp := gs.Players[gs.Opponent(p.Player)]
	active := gs.Card(me.Active)

	switch name {
	case "Bill":
		return me.HandCount() < 6
	case "Professor Oak":
		return me.HandCount() <= 2
	case "Energy Removal", "Super Energy Removal":
		for _, c := range opp.InPlay() {
			if len(c.Attached) > 0 {
				return true
			}
		}
		return false
	case "PlusPower":
		return active != nil && len(active.Def().Attacks) > 0
	case "Gust of Wind":
		for _, id := range opp.Bench {
			if id != 0 && remaining(gs.Card(id)) < 40 {
				return true
			}
		}
		return false
	case "Full Heal":
		return active != nil && active.Status != game.StatusNone
	case "Potion", "Super Potion":
		for _, c := range me.InPlay() {
			if c.Damage > 0 {
				return true
			}
		}
		return false
	case "Switch":
		if active == nil || remaining(active) >= 30 {
			return false
		}
		for _, id := range me.Bench {
			if id != 0 && remaining(gs.Card(id)) > 30 {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// chooseRetreat swaps out an active creature that is nearly knocked out,
// badly confused or unable to attack. It retreats at most once per turn.
func (p *Policy) chooseRetreat(gs *game.GameState, actions []game.Action) (game.Action, bool) {
	retreats := filter(actions, game.ActionRetreat)
	if len(retreats) == 0 || p.retreatedOn == gs.TurnNumber {
		return game.Action{}, false
	}
	active := gs.Card(gs.Players[p.Player].Active)
	hp := remaining(active)
	should := hp <= 20 ||
		(active.Status == game.StatusConfused && hp <= 40) ||
		(!canUseAnyAttack(gs, active) && len(active.Attached) >= active.Def().RetreatCost)
	if !should {
		return game.Action{}, false
	}

	var best game.Action
	bestScore := -1
	for _, a := range retreats {
		c := gs.Card(gs.Players[p.Player].Bench[a.Slot])
		score := remaining(c)
		if canUseAnyAttack(gs, c) {
			score += 50
		}
		if len(c.Attached) > 0 {
			score += 20
		}
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	if bestScore <= 30 {
		return game.Action{}, false
	}
	return best, true
}

// chooseAttack picks the usable attack with the highest printed damage.
func chooseAttack(gs *game.GameState, actions []game.Action) (game.Action, bool) {
	var best game.Action
	bestDamage := -1
	for _, a := range filter(actions, game.ActionAttack) {
		dmg := gs.Card(a.Card).Def().Attacks[a.Attack].BaseDamage()
		if dmg > bestDamage {
			best, bestDamage = a, dmg
		}
	}
	return best, bestDamage >= 0
}

func filter(actions []game.Action, t game.ActionType) []game.Action {
	var out []game.Action
	for _, a := range actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func remaining(c *game.CardInstance) int {
	hp, _ := c.RemainingHP()
	return hp
}

func canUseAnyAttack(gs *game.GameState, c *game.CardInstance) bool {
	for i := range c.Def().Attacks {
		if c.CanUseAttack(gs.Cards, i) {
			return true
		}
	}
	return false
}
