package game

import "fmt"

const (
	PotionHeal      = 20
	SuperPotionHeal = 40
	PlusPowerBonus  = 10
	DefenderBonus   = 20
	DollHP          = 10
)

func baseTrainers() []Trainer {
	return []Trainer{
		{Name: "Bill", Resolve: bill},
		{Name: "Professor Oak", Resolve: professorOak},
		{Name: "Energy Removal", Ready: energyRemovalReady, Resolve: energyRemoval},
		{Name: "Super Energy Removal", Ready: superEnergyRemovalReady, Resolve: superEnergyRemoval},
		{Name: "Gust of Wind", Ready: gustOfWindReady, Resolve: gustOfWind},
		{Name: "Switch", Ready: switchReady, Resolve: switchActive},
		{Name: "Potion", Ready: potionReady, Resolve: potion},
		{Name: "Super Potion", Ready: superPotionReady, Resolve: superPotion},
		{Name: "PlusPower", Resolve: plusPower},
		{Name: "Defender", Resolve: defender},
		{Name: "Full Heal", Ready: fullHealReady, Resolve: fullHeal},
		{Name: "Revive", Ready: reviveReady, Resolve: revive},
		{Name: "Maintenance", Ready: maintenanceReady, Resolve: maintenance},
		{Name: "Computer Search", Ready: computerSearchReady, Resolve: computerSearch},
		{Name: "Item Finder", Ready: itemFinderReady, Resolve: itemFinder},
		{Name: "Pokémon Trader", Ready: traderReady, Resolve: trader},
		{Name: "Pokémon Breeder", Ready: breederReady, Resolve: breeder},
		{Name: "Pokémon Center", Ready: centerReady, Resolve: center},
		{Name: "Scoop Up", Ready: scoopUpReady, Resolve: scoopUp},
		{Name: "Lass", Resolve: lass},
		{Name: "Imposter Professor Oak", Resolve: imposterOak},
		{Name: "Devolution Spray", Ready: devolutionReady, Resolve: devolution},
		{Name: "Clefairy Doll", Ready: dollReady, Resolve: doll},
		{Name: "Mysterious Fossil", Ready: dollReady, Resolve: doll},
	}
}

// --- helpers ---

// othersInHand lists hand cards other than the trainer being played.
func othersInHand(p *Player, self CardID) []CardID {
	var out []CardID
	for _, id := range p.Hand {
		if id != self {
			out = append(out, id)
		}
	}
	return out
}

// lastOthers picks n cards from the end of the hand, skipping self.
func lastOthers(p *Player, self CardID, n int) []CardID {
	others := othersInHand(p, self)
	var out []CardID
	for i := len(others) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, others[i])
	}
	return out
}

// firstInPlay returns the first creature, active then bench, matching pred.
func firstInPlay(p *Player, pred func(*CardInstance) bool) *CardInstance {
	for _, c := range p.InPlay() {
		if pred(c) {
			return c
		}
	}
	return nil
}

func hasEnergy(c *CardInstance) bool { return len(c.Attached) > 0 }
func isDamaged(c *CardInstance) bool { return c.Damage > 0 }

// returnToHand sends a card back to hand with its battle state wiped.
func (p *Player) returnToHand(id CardID) {
	resetBattleState(p.card(id))
	p.addToHand(id)
}

func (e *Engine) players(player int) (*Player, *Player) {
	return e.State.Players[player], e.State.Players[e.State.Opponent(player)]
}

// --- draw and hand effects ---

func bill(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	drawn := p.DrawCards(2)
	e.trainerLog(player, card, fmt.Sprintf("drew %d cards", len(drawn)))
	return true
}

func professorOak(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	others := othersInHand(p, card.ID)
	for _, id := range others {
		p.RemoveFromHand(id)
		p.SendToDiscard(id)
	}
	drawn := p.DrawCards(HandSize)
	e.trainerLog(player, card, fmt.Sprintf("discarded %d cards, drew %d", len(others), len(drawn)))
	return true
}

func maintenanceReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return len(othersInHand(p, card.ID)) >= 2
}

func maintenance(e *Engine, player int, card *CardInstance) bool {
	if !maintenanceReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	for _, id := range lastOthers(p, card.ID, 2) {
		p.RemoveFromHand(id)
		p.PutOnDeck(id)
	}
	p.ShuffleDeck(e.Rand)
	p.DrawCard()
	e.trainerLog(player, card, "shuffled 2 cards into the deck, drew 1")
	return true
}

func computerSearchReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return len(othersInHand(p, card.ID)) >= 2 && len(p.Deck) > 0
}

func computerSearch(e *Engine, player int, card *CardInstance) bool {
	if !computerSearchReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	for _, id := range lastOthers(p, card.ID, 2) {
		p.RemoveFromHand(id)
		p.SendToDiscard(id)
	}
	found := p.DrawCard()
	e.trainerLog(player, card, fmt.Sprintf("discarded 2, found %s", found.Name()))
	return true
}

func firstDiscardedAction(p *Player) *CardInstance {
	for _, id := range p.Discard {
		if c := p.card(id); c.Card.IsAction() {
			return c
		}
	}
	return nil
}

func itemFinderReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return len(othersInHand(p, card.ID)) >= 2 && firstDiscardedAction(p) != nil
}

func itemFinder(e *Engine, player int, card *CardInstance) bool {
	if !itemFinderReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	// chosen before paying so the cost cannot be retrieved
	found := firstDiscardedAction(p)
	for _, id := range lastOthers(p, card.ID, 2) {
		p.RemoveFromHand(id)
		p.SendToDiscard(id)
	}
	p.RemoveFromDiscard(found.ID)
	p.addToHand(found.ID)
	e.trainerLog(player, card, fmt.Sprintf("retrieved %s from the discard pile", found.Name()))
	return true
}

func lass(e *Engine, player int, card *CardInstance) bool {
	p, opp := e.players(player)
	moved := 0
	for _, pl := range []*Player{p, opp} {
		for _, id := range othersInHand(pl, card.ID) {
			if pl.card(id).Card.IsAction() {
				pl.RemoveFromHand(id)
				pl.PutOnDeck(id)
				moved++
			}
		}
		pl.ShuffleDeck(e.Rand)
	}
	e.trainerLog(player, card, fmt.Sprintf("shuffled %d trainer cards back into the decks", moved))
	return true
}

func imposterOak(e *Engine, player int, card *CardInstance) bool {
	_, opp := e.players(player)
	for _, id := range append([]CardID(nil), opp.Hand...) {
		opp.RemoveFromHand(id)
		opp.PutOnDeck(id)
	}
	opp.ShuffleDeck(e.Rand)
	drawn := opp.DrawCards(HandSize)
	e.trainerLog(player, card, fmt.Sprintf("opponent shuffled their hand away and drew %d", len(drawn)))
	return true
}

// --- energy effects ---

func energyRemovalReady(e *Engine, player int, card *CardInstance) bool {
	_, opp := e.players(player)
	return firstInPlay(opp, hasEnergy) != nil
}

func energyRemoval(e *Engine, player int, card *CardInstance) bool {
	_, opp := e.players(player)
	target := firstInPlay(opp, hasEnergy)
	if target == nil {
		return false
	}
	removed := opp.DetachLastToDiscard(target)
	e.trainerLog(player, card, fmt.Sprintf("removed %s from %s", e.State.Card(removed).Name(), target.Name()))
	return true
}

func superEnergyRemovalReady(e *Engine, player int, card *CardInstance) bool {
	p, opp := e.players(player)
	return firstInPlay(p, hasEnergy) != nil && firstInPlay(opp, hasEnergy) != nil
}

func superEnergyRemoval(e *Engine, player int, card *CardInstance) bool {
	p, opp := e.players(player)
	mine := firstInPlay(p, hasEnergy)
	theirs := firstInPlay(opp, hasEnergy)
	if mine == nil || theirs == nil {
		return false
	}
	p.DetachLastToDiscard(mine)
	removed := opp.DetachToDiscard(theirs, 2)
	e.trainerLog(player, card, fmt.Sprintf("discarded 1 own energy, removed %d from %s", len(removed), theirs.Name()))
	return true
}

// --- switching effects ---

func gustOfWindReady(e *Engine, player int, card *CardInstance) bool {
	_, opp := e.players(player)
	return opp.Active != 0 && opp.FirstOccupiedBench() != -1
}

func gustOfWind(e *Engine, player int, card *CardInstance) bool {
	if !gustOfWindReady(e, player, card) {
		return false
	}
	_, opp := e.players(player)
	opp.SwapActive(opp.FirstOccupiedBench())
	e.trainerLog(player, card, fmt.Sprintf("%s is now the Active creature", e.State.Card(opp.Active).Name()))
	return true
}

func switchReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return p.Active != 0 && p.FirstOccupiedBench() != -1
}

func switchActive(e *Engine, player int, card *CardInstance) bool {
	if !switchReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	old := e.State.Card(p.Active)
	p.SwapActive(p.FirstOccupiedBench())
	clearStatus(old, OnSwitch)
	e.trainerLog(player, card, fmt.Sprintf("swapped %s with %s", old.Name(), e.State.Card(p.Active).Name()))
	return true
}

// --- healing effects ---

func potionReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return firstInPlay(p, isDamaged) != nil
}

func potion(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	target := firstInPlay(p, isDamaged)
	if target == nil {
		return false
	}
	healed := min(PotionHeal, target.Damage)
	target.Damage -= healed
	e.trainerLog(player, card, fmt.Sprintf("healed %d damage from %s", healed, target.Name()))
	return true
}

func damagedWithEnergy(c *CardInstance) bool {
	return isDamaged(c) && hasEnergy(c)
}

func superPotionReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return firstInPlay(p, damagedWithEnergy) != nil
}

func superPotion(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	target := firstInPlay(p, damagedWithEnergy)
	if target == nil {
		return false
	}
	removed := p.DetachLastToDiscard(target)
	healed := min(SuperPotionHeal, target.Damage)
	target.Damage -= healed
	e.trainerLog(player, card, fmt.Sprintf("discarded %s, healed %d from %s", e.State.Card(removed).Name(), healed, target.Name()))
	return true
}

func fullHealReady(e *Engine, player int, card *CardInstance) bool {
	a := e.State.ActiveCard(player)
	return a != nil && a.Status != StatusNone && OnFullHeal.Clears(a.Status)
}

func fullHeal(e *Engine, player int, card *CardInstance) bool {
	if !fullHealReady(e, player, card) {
		return false
	}
	a := e.State.ActiveCard(player)
	was := a.Status
	clearStatus(a, OnFullHeal)
	e.trainerLog(player, card, fmt.Sprintf("cured %s of %s", a.Name(), was))
	return true
}

func centerReady(e *Engine, player int, card *CardInstance) bool {
	return potionReady(e, player, card)
}

func center(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	healed := 0
	for _, c := range p.InPlay() {
		if !isDamaged(c) {
			continue
		}
		c.Damage = 0
		p.DetachToDiscard(c, -1)
		healed++
	}
	if healed == 0 {
		return false
	}
	e.trainerLog(player, card, fmt.Sprintf("healed %d creatures and discarded their energy", healed))
	return true
}

// --- board effects ---

func firstDiscardedBasic(p *Player) *CardInstance {
	for _, id := range p.Discard {
		if c := p.card(id); c.Card.IsBasic() {
			return c
		}
	}
	return nil
}

func reviveReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return firstDiscardedBasic(p) != nil && p.FirstEmptyBench() != -1
}

func revive(e *Engine, player int, card *CardInstance) bool {
	if !reviveReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	basic := firstDiscardedBasic(p)
	slot := p.FirstEmptyBench()
	p.RemoveFromDiscard(basic.ID)
	p.Bench[slot] = basic.ID
	basic.Zone = ZoneBench
	basic.Damage = basic.Card.HP / 2
	basic.PlayedThisTurn = true
	hp, _ := basic.RemainingHP()
	e.trainerLog(player, card, fmt.Sprintf("%s returned to the Bench with %d HP", basic.Name(), hp))
	return true
}

func creatureInHand(p *Player, self CardID, pred func(*Card) bool) []*CardInstance {
	var out []*CardInstance
	for _, id := range othersInHand(p, self) {
		if c := p.card(id); c.Card.IsCreature() && pred(c.Card) {
			out = append(out, c)
		}
	}
	return out
}

func anyCreature(*Card) bool { return true }

func firstDeckCreature(p *Player) int {
	for i, id := range p.Deck {
		if p.card(id).Card.IsCreature() {
			return i
		}
	}
	return -1
}

func traderReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return len(creatureInHand(p, card.ID, anyCreature)) > 0 && firstDeckCreature(p) != -1
}

func trader(e *Engine, player int, card *CardInstance) bool {
	if !traderReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	given := creatureInHand(p, card.ID, anyCreature)[0]
	i := firstDeckCreature(p)
	taken := p.Deck[i]
	p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)

	p.RemoveFromHand(given.ID)
	p.PutOnDeck(given.ID)
	p.addToHand(taken)
	p.ShuffleDeck(e.Rand)
	e.trainerLog(player, card, fmt.Sprintf("traded %s for %s", given.Name(), e.State.Card(taken).Name()))
	return true
}

// breederPair finds a Stage 2 in hand and a Basic in play it can skip onto.
func breederPair(e *Engine, player int, self CardID) (stage2, target *CardInstance) {
	p, _ := e.players(player)
	isStage2 := func(c *Card) bool { return c.Stage == Stage2 && c.EvolvesFrom != "" }
	for _, s := range creatureInHand(p, self, isStage2) {
		t := firstInPlay(p, func(c *CardInstance) bool {
			if !c.Def().IsBasic() || c.PlayedThisTurn {
				return false
			}
			for _, name := range c.Def().EvolvesTo {
				if name == s.Card.EvolvesFrom {
					return true
				}
			}
			return false
		})
		if t != nil {
			return s, t
		}
	}
	return nil, nil
}

func breederReady(e *Engine, player int, card *CardInstance) bool {
	s, _ := breederPair(e, player, card.ID)
	return s != nil
}

func breeder(e *Engine, player int, card *CardInstance) bool {
	stage2, target := breederPair(e, player, card.ID)
	if stage2 == nil {
		return false
	}
	p, _ := e.players(player)
	from := target.Name()
	p.RemoveFromHand(stage2.ID)
	e.evolveInto(p, target, stage2)
	e.trainerLog(player, card, fmt.Sprintf("evolved %s directly into %s", from, stage2.Name()))
	return true
}

// scoopUpTarget prefers a damaged bench creature, then a damaged active
// creature when the bench can replace it.
func scoopUpTarget(p *Player) *CardInstance {
	for _, id := range p.Bench {
		if id != 0 && p.card(id).Damage > 0 {
			return p.card(id)
		}
	}
	if a := p.card(p.Active); a != nil && a.Damage > 0 && p.BenchCount() > 0 {
		return a
	}
	return nil
}

func scoopUpReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return scoopUpTarget(p) != nil
}

func scoopUp(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	target := scoopUpTarget(p)
	if target == nil {
		return false
	}
	wasActive := p.Active == target.ID
	p.RemoveFromPlay(target.ID)
	clearStatus(target, OnScoopUp)

	for _, id := range target.Attached {
		p.returnToHand(id)
	}
	for id := target.EvolvedFrom; id != 0; {
		next := p.card(id).EvolvedFrom
		p.returnToHand(id)
		id = next
	}
	p.returnToHand(target.ID)
	e.trainerLog(player, card, fmt.Sprintf("returned %s to hand", target.Name()))

	if wasActive {
		if slot := p.FirstOccupiedBench(); slot != -1 {
			e.Promote(player, slot)
		}
	}
	return true
}

func devolutionReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return firstInPlay(p, func(c *CardInstance) bool { return c.EvolvedFrom != 0 }) != nil
}

func devolution(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	evolved := firstInPlay(p, func(c *CardInstance) bool { return c.EvolvedFrom != 0 })
	if evolved == nil {
		return false
	}
	pre := e.State.Card(evolved.EvolvedFrom)
	pre.Attached = evolved.Attached
	for _, id := range pre.Attached {
		e.State.Card(id).AttachedTo = pre.ID
	}
	pre.Damage = evolved.Damage
	pre.Status = evolved.Status
	clearStatus(pre, OnDevolve)
	p.ReplaceInPlay(evolved.ID, pre.ID)

	evolved.Attached = nil
	p.returnToHand(evolved.ID)
	e.trainerLog(player, card, fmt.Sprintf("%s devolved back to %s", evolved.Name(), pre.Name()))

	if pre.KnockedOut() {
		e.knockout(pre)
	}
	return true
}

func dollReady(e *Engine, player int, card *CardInstance) bool {
	p, _ := e.players(player)
	return p.Active == 0 || p.FirstEmptyBench() != -1
}

// doll puts the action card into play as a 10 HP Basic creature. The card
// leaves the resolving zone, so it is not discarded afterwards.
func doll(e *Engine, player int, card *CardInstance) bool {
	if !dollReady(e, player, card) {
		return false
	}
	p, _ := e.players(player)
	card.override = &Card{
		ID:       card.Card.ID,
		Name:     card.Card.Name,
		Category: CategoryCreature,
		Stage:    StageBasic,
		HP:       DollHP,
		Types:    []EnergyType{Colorless},
		Number:   card.Card.Number,
		Rarity:   card.Card.Rarity,
		Images:   card.Card.Images,
	}
	p.PlaceInPlay(card.ID)
	e.trainerLog(player, card, "placed on the field")
	return true
}

// --- turn modifiers ---

func plusPower(e *Engine, player int, card *CardInstance) bool {
	e.State.Turn.DamageBonus += PlusPowerBonus
	e.trainerLog(player, card, fmt.Sprintf("attacks do %d more damage this turn", PlusPowerBonus))
	return true
}

func defender(e *Engine, player int, card *CardInstance) bool {
	e.State.Turn.DamageReduction += DefenderBonus
	e.trainerLog(player, card, fmt.Sprintf("damage is reduced by %d this turn", DefenderBonus))
	return true
}
