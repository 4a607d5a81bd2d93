package engine

import (
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

// resolveMove runs one move of side's active creature against the other
// side's active creature.
func (s *Session) resolveMove(side Side, idx int) {
	foe := side.Other()
	attacker, defender := s.creature(side), s.creature(foe)

	before := s.observe(side)
	canMove := attacker.OnBeforeMove(s.rng, s.say)
	s.reportChanges(side, before)
	if !canMove {
		if attacker.Fainted() {
			s.next(s.faintSteps(side)...)
		}
		return
	}

	move := &attacker.Moves[idx]
	move.PP--
	spec := move.Spec
	s.say(fmt.Sprintf("%s used %s", attacker.Name(), spec.Name))

	if !moveHits(s.rng, spec, attacker, defender) {
		s.say(fmt.Sprintf("%s's attack missed", attacker.Name()))
		return
	}

	if spec.Category == game.CategoryStatus {
		s.applyEffects(side, spec.Effects, spec.Target)
	} else {
		dmg := calculateDamage(s.rng, spec, attacker, defender)
		if dmg.Effectiveness == 0 {
			s.say(fmt.Sprintf("It doesn't affect %s...", defender.Name()))
			return
		}
		defender.TakeHP(dmg.Damage)
		s.emitHP(foe)
		s.reportDamage(dmg)
	}

	for _, sec := range spec.Secondaries {
		if defender.Fainted() {
			break
		}
		if s.rng.IntN(100)+1 <= sec.Chance {
			s.applyEffects(side, sec.MoveEffects, sec.Target)
		}
	}

	if defender.Fainted() {
		s.next(s.faintSteps(foe)...)
	}
}

// moveHits draws in [1,100] against accuracy scaled by the attacker's
// accuracy stage over the defender's evasion stage.
func moveHits(r game.Rand, spec *game.MoveSpec, attacker, defender *game.Creature) bool {
	if spec.AlwaysHits {
		return true
	}
	acc := float64(spec.Accuracy) *
		game.BoostFactor(attacker.Stages[game.StatAccuracy]) /
		game.BoostFactor(defender.Stages[game.StatEvasion])
	return float64(r.IntN(100)+1) <= acc
}

// applyEffects applies a bundle from side's point of view. Boosts go to
// the bundle target, conditions always go to the foe.
func (s *Session) applyEffects(side Side, e game.MoveEffects, target game.MoveTarget) {
	foe := side.Other()
	if len(e.Boosts) > 0 {
		recipient := foe
		if target == game.TargetSelf {
			recipient = side
		}
		for _, msg := range s.creature(recipient).ApplyBoosts(e.Boosts) {
			s.say(msg)
		}
	}
	c := s.creature(foe)
	if e.Status != game.ConditionNone && c.SetStatus(e.Status, s.rng) {
		s.say(c.Name() + " " + game.LookupCondition(e.Status).StartMessage)
		s.emit(StatusChanged{Ref: s.ref(foe), Status: c.Status})
	}
	if e.Volatile != game.ConditionNone && c.SetVolatile(e.Volatile, s.rng) {
		s.say(c.Name() + " " + game.LookupCondition(e.Volatile).StartMessage)
	}
}

func (s *Session) reportDamage(d DamageDetails) {
	if d.Critical > 1 {
		s.say("A critical hit!")
	}
	switch {
	case d.Effectiveness > 1:
		s.say("It's super effective!")
	case d.Effectiveness < 1:
		s.say("It's not very effective...")
	}
}
