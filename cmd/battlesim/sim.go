package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
)

// maxSteps bounds one simulated battle; a battle needing more inputs is
// reported as stalled.
const maxSteps = 10000

var errStalled = errors.New("battle did not finish")

type simConfig struct {
	player *game.Species
	wild   *game.Species
	level  int
	catch  bool
}

// tally counts outcomes by name, plus the rounds they took.
type tally struct {
	outcomes map[engine.Outcome]int
	rounds   int
	battles  int
}

func newTally() *tally { return &tally{outcomes: map[engine.Outcome]int{}} }

func (t *tally) add(o engine.Outcome, rounds int) {
	t.outcomes[o]++
	t.rounds += rounds
	t.battles++
}

func (t *tally) meanRounds() float64 {
	if t.battles == 0 {
		return 0
	}
	return float64(t.rounds) / float64(t.battles)
}

// simulate plays one wild battle to the end with a scripted player.
func simulate(cfg simConfig, seed, index uint64) (engine.Outcome, int, error) {
	s, err := engine.Begin(engine.Setup{
		PlayerName: "Sim",
		Player:     game.NewParty(game.NewCreature(cfg.player, cfg.level)),
		Wild:       game.NewCreature(cfg.wild, cfg.level),
		Rand:       rand.New(rand.NewPCG(seed, index)),
	})
	if err != nil {
		return engine.OutcomeNone, 0, err
	}
	for step := 0; step < maxSteps && !s.Over(); step++ {
		s.Events()
		if err := answer(s, cfg.catch); err != nil {
			return engine.OutcomeNone, s.Round(), err
		}
	}
	if !s.Over() {
		return engine.OutcomeNone, s.Round(), errStalled
	}
	return s.Outcome(), s.Round(), nil
}

// answer gives the input the session waits for: an action while
// selecting, otherwise a reply to the pending request.
func answer(s *engine.Session, catch bool) error {
	req := s.Pending()
	if req == nil {
		switch s.State() {
		case engine.StateActionSelection, engine.StateMoveSelection:
			return s.SubmitAction(engine.SidePlayer, pickAction(s, catch))
		}
		return fmt.Errorf("%w: nothing to answer in state %s", errStalled, s.State())
	}
	switch req.Kind {
	case engine.ChoicePartyMember:
		active, _ := s.Active(engine.SidePlayer)
		next := s.Party(engine.SidePlayer).NextHealthy(active)
		if next < 0 {
			if req.Cancellable {
				return s.ProvideChoice(engine.CancelChoice())
			}
			return fmt.Errorf("%w: no creature to send out", errStalled)
		}
		return s.ProvideChoice(engine.PartyMember(next))
	case engine.ChoiceYesNo:
		return s.ProvideChoice(engine.No())
	case engine.ChoiceForgetMove:
		return s.ProvideChoice(engine.KeepMoves())
	}
	return fmt.Errorf("%w: unexpected request %s", errStalled, req.Kind)
}

// pickAction throws a ball once the wild creature is below half HP when
// catching, and otherwise uses the strongest move with PP left.
func pickAction(s *engine.Session, catch bool) engine.Action {
	if catch {
		if _, foe := s.Active(engine.SideOpponent); foe.HP*2 < foe.MaxHP() {
			return engine.UseItem()
		}
	}
	_, c := s.Active(engine.SidePlayer)
	best, bestPower := -1, -1
	for i, m := range c.Moves {
		if m.PP > 0 && m.Spec.Power > bestPower {
			best, bestPower = i, m.Spec.Power
		}
	}
	if best < 0 {
		return engine.Run()
	}
	return engine.UseMove(best)
}
