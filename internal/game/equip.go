package game

import (
	"github.com/peterkuimelis/basetcg/internal/log"
)

// CanAttachEnergy checks the once-per-turn attachment onto one of the turn
// player's creatures.
func (e *Engine) CanAttachEnergy(energyID, targetID CardID) bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	if p.EnergyAttached {
		return false
	}
	energy := gs.Card(energyID)
	if energy == nil || !p.InHand(energyID) || !energy.Card.IsResource() {
		return false
	}
	_, ok := p.SlotOf(targetID)
	return ok
}

// AttachEnergy attaches a resource card from hand to a creature in play.
func (e *Engine) AttachEnergy(energyID, targetID CardID) bool {
	if !e.CanAttachEnergy(energyID, targetID) {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	p.RemoveFromHand(energyID)
	p.Attach(energyID, targetID)
	p.EnergyAttached = true

	t, ph := e.stamp()
	e.log(log.NewAttachEnergyEvent(t, ph, gs.CurrentTurn, gs.Card(energyID).Name(), gs.Card(targetID).Name()))
	return true
}
