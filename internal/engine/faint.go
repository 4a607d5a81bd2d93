package engine

import (
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

const trainerExpBonus = 1.5

// ExpGain is floor(yield * level * bonus / 7), bonus 1.5 against trainers.
func ExpGain(fainted *game.Creature, trainer bool) int {
	bonus := 1.0
	if trainer {
		bonus = trainerExpBonus
	}
	return int(float64(fainted.Species.ExpYield*fainted.Level) * bonus / 7)
}

// faintSteps is the cascade run when the active creature of side drops to
// 0 HP: narration, exp and level-ups for the player, then continuation.
func (s *Session) faintSteps(side Side) []step {
	steps := []step{func(s *Session) bool {
		c := s.creature(side)
		s.say(c.Name() + " fainted")
		if side == SideOpponent {
			s.awardExp(c)
		}
		return true
	}}
	if side == SideOpponent {
		steps = append(steps, levelUpStep)
	}
	return append(steps, func(s *Session) bool { return s.checkBattleOver(side) })
}

func (s *Session) awardExp(fainted *game.Creature) {
	winner := s.creature(SidePlayer)
	if winner.Fainted() {
		return
	}
	gain := ExpGain(fainted, s.kind == KindTrainer)
	winner.GainExp(gain)
	s.say(fmt.Sprintf("%s gained %d exp", winner.Name(), gain))
	s.emit(ExpChanged{Ref: s.ref(SidePlayer), Exp: winner.Exp, Fraction: winner.ExpFraction()})
}

// levelUpStep raises the player's active creature one level at a time and
// requeues itself, with a move-learning step in between, until exp no
// longer reaches the next threshold.
func levelUpStep(s *Session) bool {
	c := s.creature(SidePlayer)
	if c.Fainted() || !c.CheckForLevelUp() {
		return true
	}
	s.emit(LevelChanged{Ref: s.ref(SidePlayer), Level: c.Level})
	s.say(fmt.Sprintf("%s grew to level %d", c.Name(), c.Level))
	s.emitHP(SidePlayer)
	s.emit(ExpChanged{Ref: s.ref(SidePlayer), Exp: c.Exp, Fraction: c.ExpFraction()})
	s.next(learnMoveStep, levelUpStep)
	return true
}

func learnMoveStep(s *Session) bool {
	c := s.creature(SidePlayer)
	mv := c.LearnableMoveAtCurrentLevel()
	if mv == nil {
		return true
	}
	if err := c.LearnMove(mv); err == nil {
		s.say(fmt.Sprintf("%s learned %s", c.Name(), mv.Name))
		return true
	}
	s.say(fmt.Sprintf("%s is trying to learn %s", c.Name(), mv.Name))
	s.say(fmt.Sprintf("But it cannot learn more than %d moves", game.MaxNumMoves))
	opts := make([]string, 0, len(c.Moves)+1)
	for _, m := range c.Moves {
		opts = append(opts, m.Spec.Name)
	}
	opts = append(opts, mv.Name)
	req := ChoiceRequest{
		Kind:    ChoiceForgetMove,
		Prompt:  fmt.Sprintf("Choose a move to forget for %s", mv.Name),
		Options: opts,
	}
	return s.suspend(StateMoveToForget, req, func(s *Session, ch Choice) error {
		switch {
		case ch.Index == -1 || ch.Index == len(c.Moves):
			s.say(fmt.Sprintf("%s did not learn %s", c.Name(), mv.Name))
		case ch.Index >= 0 && ch.Index < len(c.Moves):
			old, err := c.ReplaceMove(ch.Index, mv)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidChoice, err)
			}
			s.say(fmt.Sprintf("%s forgot %s and learned %s", c.Name(), old.Name, mv.Name))
		default:
			return fmt.Errorf("%w: move slot %d out of range", ErrInvalidChoice, ch.Index)
		}
		return nil
	})
}

// checkBattleOver decides what follows a faint on side.
func (s *Session) checkBattleOver(side Side) bool {
	if side == SidePlayer {
		if !s.parties[SidePlayer].HasHealthy() {
			s.end(OutcomeLost)
			return true
		}
		return s.requestReplacement()
	}
	if s.kind == KindWild {
		s.end(OutcomeWon)
		return true
	}
	next := s.parties[SideOpponent].FirstHealthy()
	if next < 0 {
		s.say(fmt.Sprintf("%s was defeated", s.trainerName))
		s.end(OutcomeWon)
		return true
	}
	if s.parties[SidePlayer].NextHealthy(s.active[SidePlayer]) < 0 {
		s.sendOutTrainerCreature(next)
		return true
	}
	return s.aboutToUse(next)
}

// requestReplacement forces the player to pick the next creature.
func (s *Session) requestReplacement() bool {
	req := ChoiceRequest{
		Kind:    ChoicePartyMember,
		Prompt:  "Choose the next creature",
		Options: partyOptions(s.parties[SidePlayer]),
	}
	return s.suspend(StatePartySelection, req, func(s *Session, ch Choice) error {
		if err := s.validatePartyChoice(ch.Index); err != nil {
			return err
		}
		s.switchIn(SidePlayer, ch.Index)
		return nil
	})
}

// aboutToUse offers the player a switch before the trainer sends out next.
func (s *Session) aboutToUse(next int) bool {
	name := s.parties[SideOpponent].Members[next].Name()
	req := ChoiceRequest{
		Kind:    ChoiceYesNo,
		Prompt:  fmt.Sprintf("%s is about to use %s. Do you want to change creature?", s.trainerName, name),
		Options: []string{"yes", "no"},
	}
	s.say(req.Prompt)
	return s.suspend(StateAboutToUse, req, func(s *Session, ch Choice) error {
		if !ch.Yes {
			s.sendOutTrainerCreature(next)
			return nil
		}
		sw := ChoiceRequest{
			Kind:        ChoicePartyMember,
			Prompt:      "Choose a creature",
			Options:     partyOptions(s.parties[SidePlayer]),
			Cancellable: true,
		}
		s.suspend(StatePartySelection, sw, func(s *Session, ch Choice) error {
			if !ch.Cancel {
				if err := s.validatePartyChoice(ch.Index); err != nil {
					return err
				}
				s.switchIn(SidePlayer, ch.Index)
			}
			s.sendOutTrainerCreature(next)
			return nil
		})
		return nil
	})
}

func (s *Session) validatePartyChoice(i int) error {
	if err := s.validateSwitch(i); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChoice, unwrapReason(err))
	}
	return nil
}

// unwrapReason strips the ErrInvalidAction prefix so the reason can be
// re-wrapped under another sentinel.
func unwrapReason(err error) string {
	msg := err.Error()
	prefix := ErrInvalidAction.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
