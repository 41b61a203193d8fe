package game

import "fmt"

// SetupActions lists the placements available to a player before the
// first turn. Ready is offered once the player has an active creature.
func (e *Engine) SetupActions(player int) []Action {
	gs := e.State
	p := gs.Players[player]
	var actions []Action
	for _, id := range p.Hand {
		if e.CanSetupPlace(player, id) {
			where := "Bench"
			if p.Active == 0 {
				where = "Active"
			}
			actions = append(actions, Action{
				Type:   ActionSetupPlace,
				Player: player,
				Card:   id,
				Desc:   fmt.Sprintf("Place %s (%s)", gs.Card(id).Name(), where),
			})
		}
	}
	if e.dealt && !e.firstChosen && p.Active != 0 {
		actions = append(actions, Action{Type: ActionSetupDone, Player: player, Desc: "Ready"})
	}
	return actions
}

// PromotionActions lists the bench creatures a player may promote.
func (e *Engine) PromotionActions(player int) []Action {
	if !e.NeedsPromotion(player) {
		return nil
	}
	gs := e.State
	var actions []Action
	for slot, id := range gs.Players[player].Bench {
		if id == 0 {
			continue
		}
		actions = append(actions, Action{
			Type:   ActionPromote,
			Player: player,
			Card:   id,
			Slot:   slot,
			Desc:   fmt.Sprintf("Promote %s", gs.Card(id)),
		})
	}
	return actions
}

// LegalActions lists every main-phase action the turn player can take.
// Trainers are listed only when their effect would resolve.
func (e *Engine) LegalActions() []Action {
	if !e.canAct() {
		return nil
	}
	gs := e.State
	tp := gs.CurrentTurn
	p := gs.CurrentPlayer()
	inPlay := p.InPlay()
	var actions []Action

	for _, id := range p.Hand {
		ci := gs.Card(id)
		switch {
		case ci.Card.IsBasic():
			if e.CanPlayBasic(id) {
				actions = append(actions, Action{
					Type:   ActionPlayBasic,
					Player: tp,
					Card:   id,
					Desc:   fmt.Sprintf("Play %s", ci.Name()),
				})
			}
		case ci.Card.IsCreature():
			for _, t := range inPlay {
				if e.CanEvolve(id, t.ID) {
					actions = append(actions, Action{
						Type:   ActionEvolve,
						Player: tp,
						Card:   id,
						Target: t.ID,
						Desc:   fmt.Sprintf("Evolve %s into %s", t.Name(), ci.Name()),
					})
				}
			}
		case ci.Card.IsResource():
			for _, t := range inPlay {
				if e.CanAttachEnergy(id, t.ID) {
					actions = append(actions, Action{
						Type:   ActionAttachEnergy,
						Player: tp,
						Card:   id,
						Target: t.ID,
						Desc:   fmt.Sprintf("Attach %s to %s", ci.Name(), t.Name()),
					})
				}
			}
		case ci.Card.IsAction():
			if e.TrainerReady(id) {
				actions = append(actions, Action{
					Type:   ActionPlayTrainer,
					Player: tp,
					Card:   id,
					Desc:   fmt.Sprintf("Play %s", ci.Name()),
				})
			}
		}
	}

	if e.CanRetreat() {
		for slot, id := range p.Bench {
			if id == 0 {
				continue
			}
			actions = append(actions, Action{
				Type:   ActionRetreat,
				Player: tp,
				Card:   p.Active,
				Slot:   slot,
				Desc:   fmt.Sprintf("Retreat %s for %s", gs.Card(p.Active).Name(), gs.Card(id).Name()),
			})
		}
	}

	active := gs.Card(p.Active)
	for i, atk := range active.Def().Attacks {
		if e.CanAttack(i) {
			desc := fmt.Sprintf("Attack: %s", atk.Name)
			if atk.Damage != "" {
				desc += fmt.Sprintf(" (%s)", atk.Damage)
			}
			actions = append(actions, Action{
				Type:   ActionAttack,
				Player: tp,
				Card:   active.ID,
				Attack: i,
				Desc:   desc,
			})
		}
	}

	actions = append(actions, Action{Type: ActionEndTurn, Player: tp, Desc: "End turn"})
	return actions
}

// Perform applies an action through its legality-checked entry point.
func (e *Engine) Perform(a Action) bool {
	switch a.Type {
	case ActionSetupPlace:
		return e.SetupPlace(a.Player, a.Card)
	case ActionSetupDone:
		return e.dealt && e.State.Players[a.Player].Active != 0
	case ActionPromote:
		return e.Promote(a.Player, a.Slot)
	}

	if a.Player != e.State.CurrentTurn {
		return false
	}
	switch a.Type {
	case ActionPlayBasic:
		return e.PlayBasic(a.Card)
	case ActionEvolve:
		return e.Evolve(a.Card, a.Target)
	case ActionAttachEnergy:
		return e.AttachEnergy(a.Card, a.Target)
	case ActionRetreat:
		return e.Retreat(a.Slot)
	case ActionPlayTrainer:
		return e.PlayTrainer(a.Card)
	case ActionAttack:
		return e.Attack(a.Attack)
	case ActionEndTurn:
		return e.EndTurn()
	default:
		return false
	}
}
