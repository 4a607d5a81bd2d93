package engine

import (
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

// turnAction is the round-scoped record of what a side does. The actor is
// captured when the round starts so later steps can tell whether it is
// still the one in battle.
type turnAction struct {
	side   Side
	action Action
	actor  *game.Creature
}

func (t turnAction) priority() int {
	if t.action.Kind != ActionUseMove || t.action.Index < 0 || t.action.Index >= len(t.actor.Moves) {
		return 0
	}
	return t.actor.Moves[t.action.Index].Spec.Priority
}

// actsBefore reports whether a resolves before b: non-move actions first,
// then higher priority, then higher speed. Exact ties go to a.
func actsBefore(a, b turnAction) bool {
	if a.action.Kind != ActionUseMove {
		return true
	}
	if b.action.Kind != ActionUseMove {
		return false
	}
	if pa, pb := a.priority(), b.priority(); pa != pb {
		return pa > pb
	}
	return a.actor.Speed() >= b.actor.Speed()
}

// turnOrder sorts the submitted actions. The player is passed as a so the
// player wins exact ties.
func (s *Session) turnOrder() (first, second turnAction) {
	p := turnAction{side: SidePlayer, action: *s.actions[SidePlayer], actor: s.creature(SidePlayer)}
	o := turnAction{side: SideOpponent, action: *s.actions[SideOpponent], actor: s.creature(SideOpponent)}
	if actsBefore(p, o) {
		return p, o
	}
	return o, p
}

func (s *Session) resolveRound() {
	s.state = StateRunningTurn
	first, second := s.turnOrder()
	s.then(
		s.performStep(first),
		s.afterTurnStep(first),
		s.performStep(second),
		s.afterTurnStep(second),
	)
	s.run()
}

// canAct is false once the actor left the field or fainted. A replacement
// sent in mid-round is a valid target.
func (s *Session) canAct(t turnAction) bool {
	return t.actor == s.creature(t.side) && !t.actor.Fainted()
}

func (s *Session) performStep(t turnAction) step {
	return func(s *Session) bool {
		if !s.canAct(t) {
			return true
		}
		switch t.action.Kind {
		case ActionUseMove:
			if t.action.Index < 0 {
				s.say(fmt.Sprintf("%s has no moves left!", t.actor.Name()))
				return true
			}
			s.resolveMove(t.side, t.action.Index)
		case ActionSwitchTo:
			s.switchIn(t.side, t.action.Index)
		case ActionUseItem:
			s.throwBall()
		case ActionRun:
			s.tryToEscape()
		}
		return true
	}
}

// afterTurnStep runs the end-of-turn status hook of a side that used a
// move this round.
func (s *Session) afterTurnStep(t turnAction) step {
	return func(s *Session) bool {
		if t.action.Kind != ActionUseMove || t.actor != s.creature(t.side) || t.actor.Fainted() {
			return true
		}
		snap := s.observe(t.side)
		t.actor.OnAfterTurn(s.rng, s.say)
		s.reportChanges(t.side, snap)
		if t.actor.Fainted() {
			s.next(s.faintSteps(t.side)...)
		}
		return true
	}
}

// switchIn withdraws the active creature of side and sends out idx.
func (s *Session) switchIn(side Side, idx int) {
	out := s.creature(side)
	if !out.Fainted() {
		s.say("Come back " + out.Name())
	}
	out.ResetBattleState()
	s.active[side] = idx
	s.say(fmt.Sprintf("Go %s!", s.creature(side).Name()))
	s.emitSwitchIn(side)
}

func (s *Session) sendOutTrainerCreature(idx int) {
	s.creature(SideOpponent).ResetBattleState()
	s.active[SideOpponent] = idx
	s.say(fmt.Sprintf("%s sent out %s", s.trainerName, s.creature(SideOpponent).Name()))
	s.emitSwitchIn(SideOpponent)
}

// chooseOpponentMove picks uniformly among moves with PP left. Index -1
// means the creature has nothing to use.
func chooseOpponentMove(c *game.Creature, r game.Rand) Action {
	return UseMove(c.RandomMoveIndex(r))
}

// creatureSnap records what reportChanges compares against.
type creatureSnap struct {
	hp     int
	status game.ConditionID
}

func (s *Session) observe(side Side) creatureSnap {
	c := s.creature(side)
	return creatureSnap{hp: c.HP, status: c.Status}
}

func (s *Session) reportChanges(side Side, before creatureSnap) {
	c := s.creature(side)
	if c.HP != before.hp {
		s.emitHP(side)
	}
	if c.Status != before.status {
		s.emit(StatusChanged{Ref: s.ref(side), Status: c.Status})
	}
}
