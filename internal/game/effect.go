package game

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// EffectKind names one attack effect variant.
type EffectKind string

const (
	EffectCoinGate         EffectKind = "coin_gate"         // tails: the attack does nothing
	EffectPerHeads         EffectKind = "per_heads"         // damage = heads × base
	EffectEnergyMultiplier EffectKind = "energy_multiplier" // damage = base × attached resources
	EffectSelfDamage       EffectKind = "self_damage"
	EffectInflictStatus    EffectKind = "inflict_status"
	EffectHealSelf         EffectKind = "heal_self"
	EffectDiscardEnergy    EffectKind = "discard_energy"
)

// rank is the fixed resolution order of effect kinds.
func (k EffectKind) rank() int {
	switch k {
	case EffectCoinGate:
		return 0
	case EffectPerHeads:
		return 1
	case EffectEnergyMultiplier:
		return 2
	case EffectSelfDamage:
		return 3
	case EffectInflictStatus:
		return 4
	case EffectHealSelf:
		return 5
	case EffectDiscardEnergy:
		return 6
	default:
		return 7
	}
}

// AttackEffect is a tagged effect attached to an attack at authoring time.
type AttackEffect struct {
	Kind   EffectKind `yaml:"kind" json:"kind"`
	Amount int        `yaml:"amount,omitempty" json:"amount,omitempty"` // coins, damage points, or cards
	Status Status     `yaml:"status,omitempty" json:"status,omitempty"`
	All    bool       `yaml:"all,omitempty" json:"all,omitempty"`
}

// orderedEffects returns the effects sorted into resolution order.
func orderedEffects(effects []AttackEffect) []AttackEffect {
	out := make([]AttackEffect, len(effects))
	copy(out, effects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind.rank() < out[j].Kind.rank()
	})
	return out
}

var (
	selfDamageRe = regexp.MustCompile(`does (\d+) damage to itself`)
	healRe       = regexp.MustCompile(`remove (\d+) damage`)
	discardRe    = regexp.MustCompile(`discard (\d+)`)
)

// DeriveAttackEffects reads printed attack text into tagged effects using
// keyword rules. Text that matches nothing yields no effects.
func DeriveAttackEffects(text string) []AttackEffect {
	t := strings.ToLower(text)
	var out []AttackEffect

	if strings.Contains(t, "flip a coin") || strings.Contains(t, "flip 2 coins") {
		if strings.Contains(t, "tails, this attack does nothing") {
			out = append(out, AttackEffect{Kind: EffectCoinGate})
		}
		if strings.Contains(t, "flip 2 coins") && strings.Contains(t, "damage for each heads") {
			out = append(out, AttackEffect{Kind: EffectPerHeads, Amount: 2})
		}
	}

	if strings.Contains(t, "times the number of") && strings.Contains(t, "energy") {
		out = append(out, AttackEffect{Kind: EffectEnergyMultiplier})
	}

	if strings.Contains(t, "does") && strings.Contains(t, "damage to itself") {
		if m := selfDamageRe.FindStringSubmatch(t); m != nil {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				out = append(out, AttackEffect{Kind: EffectSelfDamage, Amount: n})
			}
		}
	}

	// Status is a single field, so the last keyword present wins.
	if strings.Contains(t, "paralyz") {
		out = append(out, AttackEffect{Kind: EffectInflictStatus, Status: StatusParalyzed})
	}
	if strings.Contains(t, "poison") {
		out = append(out, AttackEffect{Kind: EffectInflictStatus, Status: StatusPoisoned})
	}
	if strings.Contains(t, "confus") {
		out = append(out, AttackEffect{Kind: EffectInflictStatus, Status: StatusConfused})
	}
	if strings.Contains(t, "sleep") {
		out = append(out, AttackEffect{Kind: EffectInflictStatus, Status: StatusAsleep})
	}

	if strings.Contains(t, "remove") && strings.Contains(t, "damage counter") {
		counters := 1
		if m := healRe.FindStringSubmatch(t); m != nil {
			counters, _ = strconv.Atoi(m[1])
		}
		out = append(out, AttackEffect{Kind: EffectHealSelf, Amount: counters * 10})
	}

	if strings.Contains(t, "discard") && strings.Contains(t, "energy") {
		if strings.Contains(t, "all") {
			out = append(out, AttackEffect{Kind: EffectDiscardEnergy, All: true})
		} else {
			n := 1
			if m := discardRe.FindStringSubmatch(t); m != nil {
				if v, _ := strconv.Atoi(m[1]); v > 0 {
					n = v
				}
			}
			out = append(out, AttackEffect{Kind: EffectDiscardEnergy, Amount: n})
		}
	}

	return out
}
