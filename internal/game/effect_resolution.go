package game

import (
	"github.com/peterkuimelis/basetcg/internal/log"
)

// CanPlayTrainer checks that an action card in the turn player's hand may
// be played now. It does not check the card's own targets.
func (e *Engine) CanPlayTrainer(id CardID) bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	ci := gs.Card(id)
	return ci != nil && ci.Card.IsAction() && gs.CurrentPlayer().InHand(id)
}

// TrainerReady reports whether playing the card would resolve.
func (e *Engine) TrainerReady(id CardID) bool {
	if !e.CanPlayTrainer(id) {
		return false
	}
	ci := e.State.Card(id)
	t, ok := e.Trainers.Lookup(ci.Card.Name)
	if !ok || t.Ready == nil {
		return true
	}
	return t.Ready(e, e.State.CurrentTurn, ci)
}

// PlayTrainer removes the card from hand and resolves its effect. On
// success the card is discarded unless the effect put it somewhere else;
// on failure it goes back to its original place in hand and nothing else
// has changed. Unknown action cards are discarded without effect.
func (e *Engine) PlayTrainer(id CardID) bool {
	if !e.CanPlayTrainer(id) {
		return false
	}
	gs := e.State
	tp := gs.CurrentTurn
	p := gs.CurrentPlayer()
	ci := gs.Card(id)
	t, ph := e.stamp()

	idx := p.RemoveFromHand(id)
	ci.Zone = ZoneResolving
	e.log(log.NewPlayTrainerEvent(t, ph, tp, ci.Name()))

	trainer, ok := e.Trainers.Lookup(ci.Card.Name)
	if !ok {
		e.log(log.NewTrainerEffectEvent(t, ph, tp, ci.Name(), "no effect"))
		p.SendToDiscard(id)
		return true
	}

	if trainer.Resolve(e, tp, ci) {
		if ci.Zone == ZoneResolving {
			p.SendToDiscard(id)
		}
		return true
	}

	p.InsertInHand(id, idx)
	e.log(log.NewTrainerFailedEvent(t, ph, tp, ci.Name()))
	return false
}

// trainerLog records the outcome of a trainer effect.
func (e *Engine) trainerLog(player int, card *CardInstance, detail string) {
	t, ph := e.stamp()
	e.log(log.NewTrainerEffectEvent(t, ph, player, card.Name(), detail))
}
