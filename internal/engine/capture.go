package engine

import (
	"fmt"
	"math"

	"github.com/ericogr/pocket-arena/internal/game"
)

// CaptureValue is a = (3*max - 2*hp) * catchRate * statusBonus / (3*max).
func CaptureValue(c *game.Creature) float64 {
	maxHP := float64(c.MaxHP())
	if maxHP <= 0 {
		return 0
	}
	rate := c.Species.CatchRate
	if rate <= 0 {
		rate = game.DefaultCatchRate
	}
	bonus := 1.0
	if cond := game.LookupCondition(c.Status); cond != nil {
		bonus = cond.CaptureBonus
	}
	return (3*maxHP - 2*float64(c.HP)) * float64(rate) * bonus / (3 * maxHP)
}

// ShakeCount returns 4 when a >= 255. Otherwise it counts consecutive draws
// in [0,65535) below b = 1048560/sqrt(sqrt(16711680/a)), stopping at the
// first failure or at 4.
func ShakeCount(a float64, r game.Rand) int {
	if a >= 255 {
		return 4
	}
	if a <= 0 {
		return 0
	}
	b := 1048560 / math.Sqrt(math.Sqrt(16711680/a))
	shakes := 0
	for shakes < 4 && float64(r.IntN(65535)) < b {
		shakes++
	}
	return shakes
}

// EscapeOdds is floor(ps*128/es) + 30*attempts, modulo 256.
func EscapeOdds(playerSpeed, enemySpeed, attempts int) int {
	if enemySpeed <= 0 {
		enemySpeed = 1
	}
	f := playerSpeed*128/enemySpeed + 30*attempts
	return f % 256
}

func (s *Session) throwBall() {
	s.state = StateItemUse
	defer func() {
		if !s.over {
			s.state = StateRunningTurn
		}
	}()
	if s.kind == KindTrainer {
		s.say("You can't steal the trainer's creature!")
		return
	}

	target := s.creature(SideOpponent)
	s.say(fmt.Sprintf("%s threw a capture ball!", s.playerName))
	shakes := ShakeCount(CaptureValue(target), s.rng)
	if shakes < 4 {
		if shakes < 2 {
			s.say(fmt.Sprintf("%s broke free", target.Name()))
		} else {
			s.say("Almost caught it")
		}
		return
	}

	s.say(fmt.Sprintf("%s was caught", target.Name()))
	target.ResetBattleState()
	s.captured = target
	if err := s.parties[SidePlayer].Add(target); err != nil {
		s.stored = append(s.stored, target)
		s.say(fmt.Sprintf("%s was sent to storage", target.Name()))
	} else {
		s.say(fmt.Sprintf("%s has been added to your party", target.Name()))
	}
	s.end(OutcomeCaptured)
}

// tryToEscape counts the attempt and then applies EscapeOdds, so the first
// try already carries the 30 point bonus. A slower enemy can never stop
// the escape.
func (s *Session) tryToEscape() {
	if s.kind == KindTrainer {
		s.say("You can't run from trainer battles!")
		return
	}
	s.escapeAttempts++
	ps := s.creature(SidePlayer).Speed()
	es := s.creature(SideOpponent).Speed()
	if es < ps || s.rng.IntN(256) < EscapeOdds(ps, es, s.escapeAttempts) {
		s.say("Ran away safely!")
		s.end(OutcomeEscaped)
		return
	}
	s.say("Can't escape!")
}
