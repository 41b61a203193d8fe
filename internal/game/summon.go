package game

import (
	"github.com/peterkuimelis/basetcg/internal/log"
)

// CanPlayBasic checks that a Basic creature in hand has somewhere to go.
func (e *Engine) CanPlayBasic(id CardID) bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	ci := gs.Card(id)
	if ci == nil || !p.InHand(id) || !ci.Card.IsBasic() {
		return false
	}
	return p.Active == 0 || p.FirstEmptyBench() != -1
}

// PlayBasic places a Basic creature, active slot first, then the first
// empty bench slot.
func (e *Engine) PlayBasic(id CardID) bool {
	if !e.CanPlayBasic(id) {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	ci := gs.Card(id)

	p.RemoveFromHand(id)
	active := p.Active == 0
	p.PlaceInPlay(id)
	ci.PlayedThisTurn = true

	t, ph := e.stamp()
	e.log(log.NewPlayBasicEvent(t, ph, gs.CurrentTurn, ci.Name(), active))
	return true
}

// CanEvolve checks the evolution rules: not on the first turn, not onto a
// creature played or evolved this turn, and an exact name match.
func (e *Engine) CanEvolve(cardID, targetID CardID) bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	if gs.FirstTurn {
		return false
	}
	p := gs.CurrentPlayer()
	card := gs.Card(cardID)
	target := gs.Card(targetID)
	if card == nil || target == nil || !p.InHand(cardID) {
		return false
	}
	if !card.Card.IsCreature() || card.Card.EvolvesFrom == "" {
		return false
	}
	if _, ok := p.SlotOf(targetID); !ok {
		return false
	}
	if target.PlayedThisTurn || target.EvolvedThisTurn {
		return false
	}
	return target.Name() == card.Card.EvolvesFrom
}

// Evolve replaces a creature in play with the evolution card from hand.
func (e *Engine) Evolve(cardID, targetID CardID) bool {
	if !e.CanEvolve(cardID, targetID) {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	card := gs.Card(cardID)
	target := gs.Card(targetID)

	p.RemoveFromHand(cardID)
	e.evolveInto(p, target, card)

	t, ph := e.stamp()
	e.log(log.NewEvolveEvent(t, ph, gs.CurrentTurn, target.Name(), card.Name()))
	return true
}

// evolveInto moves damage and attached resources onto the evolution card,
// which takes the target's place. The target becomes its lineage.
func (e *Engine) evolveInto(p *Player, target, card *CardInstance) {
	card.EvolvedFrom = target.ID
	card.Attached = target.Attached
	for _, id := range card.Attached {
		e.State.Card(id).AttachedTo = card.ID
	}
	card.Damage = target.Damage
	card.Status = target.Status
	card.TurnsParalyzed = target.TurnsParalyzed
	card.EvolvedThisTurn = true
	clearStatus(card, OnEvolve)

	p.ReplaceInPlay(target.ID, card.ID)

	target.Attached = nil
	target.Damage = 0
	target.Status = StatusNone
	target.TurnsParalyzed = 0
	target.Zone = ZoneLineage
}
