package game

// StatusTrigger names a game action that can cure special conditions.
type StatusTrigger int

const (
	OnEvolve StatusTrigger = iota
	OnRetreat
	OnSwitch
	OnFullHeal
	OnScoopUp
	OnDevolve
)

var allConditions = []Status{StatusPoisoned, StatusConfused, StatusParalyzed, StatusAsleep, StatusBurned}

// statusClearRules lists, per action, which conditions the action cures.
// Gust of Wind leaves conditions in place.
var statusClearRules = map[StatusTrigger][]Status{
	OnEvolve:   allConditions,
	OnRetreat:  allConditions,
	OnSwitch:   allConditions,
	OnFullHeal: allConditions,
	OnScoopUp:  allConditions,
	OnDevolve:  allConditions,
}

// Clears reports whether the trigger cures status s.
func (t StatusTrigger) Clears(s Status) bool {
	for _, c := range statusClearRules[t] {
		if c == s {
			return true
		}
	}
	return false
}

// clearStatus applies the rule table. Returns true if a condition was removed.
func clearStatus(ci *CardInstance, t StatusTrigger) bool {
	if ci.Status == StatusNone || !t.Clears(ci.Status) {
		return false
	}
	ci.Status = StatusNone
	ci.TurnsParalyzed = 0
	return true
}

// inflictStatus sets the single status field; the last condition applied wins.
func inflictStatus(ci *CardInstance, s Status) {
	ci.Status = s
	if s == StatusParalyzed {
		ci.TurnsParalyzed = 0
	}
}
