package engine

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/game"
)

// highRand always draws the top of the range: no crits, full damage roll,
// accuracy-100 moves hit, captures and contested escapes fail.
type highRand struct{}

func (highRand) IntN(n int) int { return n - 1 }

// scriptRand replays vals (capped to n-1) and then behaves like highRand.
type scriptRand struct{ vals []int }

func (r *scriptRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return n - 1
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return min(v, n-1)
}

func newPCG(seed uint64) game.Rand { return rand.New(rand.NewPCG(seed, seed)) }

var (
	tackle      = &game.MoveSpec{Key: "tackle", Name: "Tackle", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100, PP: 35}
	quickAttack = &game.MoveSpec{Key: "quick_attack", Name: "Quick Attack", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100, PP: 30, Priority: 1}
	wildSwing   = &game.MoveSpec{Key: "wild_swing", Name: "Wild Swing", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 80, Accuracy: 50, PP: 10}
	harden      = &game.MoveSpec{
		Key: "harden", Name: "Harden", Type: game.TypeNormal, Category: game.CategoryStatus, AlwaysHits: true, PP: 30,
		Target: game.TargetSelf, Effects: game.MoveEffects{Boosts: []game.StatBoost{{Stat: game.StatDefense, Boost: 1}}},
	}
	splash = &game.MoveSpec{Key: "splash", Name: "Splash", Type: game.TypeWater, Category: game.CategoryStatus, AlwaysHits: true, PP: 40, Target: game.TargetSelf}
	ember  = &game.MoveSpec{
		Key: "ember", Name: "Ember", Type: game.TypeFire, Category: game.CategorySpecial, Power: 40, Accuracy: 100, PP: 25,
		Secondaries: []game.SecondaryEffect{{MoveEffects: game.MoveEffects{Status: game.ConditionBurn}, Chance: 100}},
	}
	nuzzle = &game.MoveSpec{
		Key: "nuzzle", Name: "Nuzzle", Type: game.TypeElectric, Category: game.CategoryPhysical, Power: 20, Accuracy: 100, PP: 20,
		Secondaries: []game.SecondaryEffect{{MoveEffects: game.MoveEffects{Status: game.ConditionParalysis}, Chance: 10}},
	}
	slash = &game.MoveSpec{Key: "slash", Name: "Slash", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 70, Accuracy: 100, PP: 20}
)

// newSpecies builds a species with base 50 everywhere except speed; every
// move is learnable at level 1.
func newSpecies(name string, speed int, moves ...*game.MoveSpec) *game.Species {
	sp := &game.Species{
		Key:        strings.ToLower(name),
		Name:       name,
		Type1:      game.TypeNormal,
		BaseStats:  game.BaseStats{HP: 50, Attack: 50, Defense: 50, SpAttack: 50, SpDefense: 50, Speed: speed},
		ExpYield:   64,
		GrowthRate: game.GrowthMediumFast,
		CatchRate:  game.DefaultCatchRate,
	}
	for _, m := range moves {
		sp.LearnableMoves = append(sp.LearnableMoves, game.LearnableMove{Move: m, Key: m.Key, Level: 1})
	}
	return sp
}

func newCreature(name string, speed, level int, moves ...*game.MoveSpec) *game.Creature {
	return game.NewCreature(newSpecies(name, speed, moves...), level)
}

func beginWild(t *testing.T, r game.Rand, wild *game.Creature, party ...*game.Creature) *Session {
	t.Helper()
	s, err := Begin(Setup{PlayerName: "Ash", Player: game.NewParty(party...), Wild: wild, Rand: r})
	require.NoError(t, err)
	s.Events()
	return s
}

func beginTrainer(t *testing.T, r game.Rand, trainer []*game.Creature, party ...*game.Creature) *Session {
	t.Helper()
	s, err := Begin(Setup{PlayerName: "Ash", Player: game.NewParty(party...), TrainerName: "Red", Trainer: game.NewParty(trainer...), Rand: r})
	require.NoError(t, err)
	s.Events()
	return s
}

func narration(events []Event) []string {
	var out []string
	for _, e := range events {
		if n, ok := e.(Narration); ok {
			out = append(out, n.Text)
		}
	}
	return out
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func levelsReached(events []Event) []int {
	var out []int
	for _, e := range events {
		if lc, ok := e.(LevelChanged); ok {
			out = append(out, lc.Level)
		}
	}
	return out
}

func lastEvent[T Event](events []Event) (T, bool) {
	var zero T
	for i := len(events) - 1; i >= 0; i-- {
		if e, ok := events[i].(T); ok {
			return e, true
		}
	}
	return zero, false
}
