package engine

import (
	"math"

	"github.com/ericogr/pocket-arena/internal/game"
)

const (
	critChanceDenominator = 16 // 6.25%
	critMultiplier        = 2.0
)

type DamageDetails struct {
	Damage        int
	Critical      float64
	Effectiveness float64
	Random        float64
}

// calculateDamage rolls crit and the random factor, then applies
// ComputeDamage. Nothing is mutated.
func calculateDamage(r game.Rand, spec *game.MoveSpec, attacker, defender *game.Creature) DamageDetails {
	d := DamageDetails{Critical: 1, Effectiveness: defender.Species.TypeEffectiveness(spec.Type)}
	if r.IntN(critChanceDenominator) == 0 {
		d.Critical = critMultiplier
	}
	d.Random = 0.85 + float64(r.IntN(16))/100
	d.Damage = ComputeDamage(spec, attacker, defender, d.Critical*d.Effectiveness*d.Random)
	return d
}

// ComputeDamage is floor(((2*level/5+2) * power * atk/def / 50 + 2) * modifiers)
// using the category's boosted attack and defense stats. A damaging move
// deals at least 1 unless the modifiers are zero.
func ComputeDamage(spec *game.MoveSpec, attacker, defender *game.Creature, modifiers float64) int {
	if spec.Category == game.CategoryStatus || modifiers == 0 {
		return 0
	}
	atk, def := float64(attacker.Attack()), float64(defender.Defense())
	if spec.Category == game.CategorySpecial {
		atk, def = float64(attacker.SpAttack()), float64(defender.SpDefense())
	}
	if def <= 0 {
		def = 1
	}
	base := (2*float64(attacker.Level)/5+2)*float64(spec.Power)*(atk/def)/50 + 2
	return max(1, int(math.Floor(base*modifiers)))
}
