package game

import (
	"github.com/peterkuimelis/basetcg/internal/log"
)

// CanRetreat checks the retreat cost, the active creature's status and
// that the bench has someone to send out.
func (e *Engine) CanRetreat() bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	return gs.Card(p.Active).CanRetreat() && p.BenchCount() > 0
}

// Retreat pays the retreat cost from the front of the attached list and
// swaps the active creature with the one on the given bench slot.
func (e *Engine) Retreat(slot int) bool {
	if !e.CanRetreat() || slot < 0 || slot >= BenchSize {
		return false
	}
	gs := e.State
	p := gs.CurrentPlayer()
	if p.Bench[slot] == 0 {
		return false
	}
	old := gs.Card(p.Active)
	paid := p.DetachToDiscard(old, old.Def().RetreatCost)
	p.SwapActive(slot)
	clearStatus(old, OnRetreat)

	t, ph := e.stamp()
	e.log(log.NewRetreatEvent(t, ph, gs.CurrentTurn, old.Name(), gs.Card(p.Active).Name(), len(paid)))
	return true
}
