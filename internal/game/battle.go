package game

import (
	"github.com/peterkuimelis/basetcg/internal/log"
)

// CanAttack checks that the active creature may attack with the given attack.
func (e *Engine) CanAttack(idx int) bool {
	if !e.canAct() {
		return false
	}
	gs := e.State
	a := gs.ActiveCard(gs.CurrentTurn)
	return a.CanAct() && a.CanUseAttack(gs.Cards, idx)
}

// Attack resolves one attack and ends the turn.
func (e *Engine) Attack(idx int) bool {
	if !e.CanAttack(idx) {
		return false
	}
	gs := e.State
	tp := gs.CurrentTurn
	attacker := gs.ActiveCard(tp)
	defender := gs.ActiveCard(gs.Opponent(tp))
	atk := attacker.Def().Attacks[idx]

	gs.Phase = PhaseAttack
	e.log(log.NewAttackDeclareEvent(gs.TurnNumber, gs.Phase.String(), tp, attacker.Name(), atk.Name))

	e.resolveAttack(attacker, defender, atk)

	// self-inflicted damage can knock out the attacker too
	if !gs.Over() && attacker.Zone == ZoneActive && attacker.KnockedOut() {
		e.knockout(attacker)
	}
	if !gs.Over() {
		e.betweenTurns()
	}
	return true
}

// resolveAttack runs the damage pipeline: confusion, base damage, attack
// effects, turn modifiers, weakness and resistance, then application.
func (e *Engine) resolveAttack(attacker, defender *CardInstance, atk Attack) {
	gs := e.State
	tp := attacker.Owner

	if attacker.Status == StatusConfused {
		if !e.flip(tp, "confusion") {
			attacker.Damage += ConfusionDamage
			e.log(log.NewConfusionEvent(gs.TurnNumber, gs.Phase.String(), tp, attacker.Name(), ConfusionDamage))
			return
		}
	}

	damage := e.applyAttackEffects(attacker, defender, atk, atk.BaseDamage())
	damage += gs.Turn.DamageBonus

	if defender == nil {
		return
	}
	if damage > 0 {
		damage = e.typeAdjusted(attacker, defender, damage)
	} else {
		damage = 0
	}

	defender.Damage += damage
	hp, _ := defender.RemainingHP()
	e.log(log.NewDamageEvent(gs.TurnNumber, gs.Phase.String(), defender.Owner, defender.Name(), damage, hp))
	if defender.KnockedOut() {
		e.knockout(defender)
	}
}

// typeAdjusted applies the first matching weakness (×2), the first matching
// resistance (-30) and the turn's damage reduction, floored at zero.
func (e *Engine) typeAdjusted(attacker, defender *CardInstance, damage int) int {
	atkTypes := attacker.Def().Types
	for _, w := range defender.Def().Weaknesses {
		if containsType(atkTypes, w.Type) {
			damage *= 2
			break
		}
	}
	for _, r := range defender.Def().Resistances {
		if containsType(atkTypes, r.Type) {
			damage -= ResistanceValue
			break
		}
	}
	damage -= e.State.Turn.DamageReduction
	if damage < 0 {
		damage = 0
	}
	return damage
}

func containsType(types []EnergyType, t EnergyType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// applyAttackEffects resolves tagged effects in their fixed order and
// returns the damage for the modifier step. A failed coin gate zeroes the
// damage and skips every later effect.
func (e *Engine) applyAttackEffects(attacker, defender *CardInstance, atk Attack, base int) int {
	gs := e.State
	tp := attacker.Owner
	owner := gs.Players[tp]
	damage := base

	for _, eff := range orderedEffects(atk.Effects) {
		t, ph := e.stamp()
		switch eff.Kind {
		case EffectCoinGate:
			if !e.flip(tp, atk.Name) {
				return 0
			}
		case EffectPerHeads:
			coins := eff.Amount
			if coins <= 0 {
				coins = 2
			}
			heads := 0
			for i := 0; i < coins; i++ {
				if e.flip(tp, atk.Name) {
					heads++
				}
			}
			damage = heads * base
		case EffectEnergyMultiplier:
			damage = base * len(attacker.Attached)
		case EffectSelfDamage:
			attacker.Damage += eff.Amount
			e.log(log.NewSelfDamageEvent(t, ph, tp, attacker.Name(), eff.Amount))
		case EffectInflictStatus:
			if defender != nil && eff.Status != StatusNone {
				inflictStatus(defender, eff.Status)
				e.log(log.NewStatusEvent(t, ph, defender.Owner, defender.Name(), eff.Status.String()))
			}
		case EffectHealSelf:
			amount := eff.Amount
			if eff.All || amount > attacker.Damage {
				amount = attacker.Damage
			}
			attacker.Damage -= amount
			e.log(log.NewHealEvent(t, ph, tp, attacker.Name(), amount))
		case EffectDiscardEnergy:
			n := eff.Amount
			if eff.All {
				n = -1
			} else if n <= 0 {
				n = 1
			}
			removed := owner.DetachToDiscard(attacker, n)
			e.log(log.NewDiscardEnergyEvent(t, ph, tp, attacker.Name(), len(removed)))
		}
	}
	return damage
}

// knockout moves a knocked-out creature, its resources and its evolution
// lineage to the owner's discard, awards a prize, and checks both win
// conditions.
func (e *Engine) knockout(ci *CardInstance) {
	gs := e.State
	owner := gs.Players[ci.Owner]
	other := gs.Players[gs.Opponent(ci.Owner)]
	t, ph := e.stamp()

	e.log(log.NewKnockoutEvent(t, ph, ci.Owner, ci.Name()))

	owner.RemoveFromPlay(ci.ID)
	owner.DetachToDiscard(ci, -1)
	lineage := ci.EvolvedFrom
	owner.SendToDiscard(ci.ID)
	for lineage != 0 {
		pre := gs.Card(lineage)
		lineage = pre.EvolvedFrom
		owner.SendToDiscard(pre.ID)
	}

	if len(other.Prizes) > 0 {
		id := other.Prizes[len(other.Prizes)-1]
		other.Prizes = other.Prizes[:len(other.Prizes)-1]
		other.addToHand(id)
		e.log(log.NewPrizeEvent(t, ph, other.Index, len(other.Prizes)))
		if len(other.Prizes) == 0 {
			e.declareWinner(other.Index, "all prizes collected")
		}
	}

	if !owner.HasCreatureInPlay() {
		e.declareWinner(other.Index, "opponent has no creatures left")
	}
}
