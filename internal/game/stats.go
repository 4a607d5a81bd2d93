package game

import (
	"fmt"
	"strings"
)

const (
	MaxLevel    = 100
	MinStage    = -6
	MaxStage    = 6
	MaxNumMoves = 4
)

// Stat identifies a boostable stat. Accuracy and Evasion only exist as
// stages and have no base value.
type Stat int

const (
	StatAttack Stat = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy
	StatEvasion

	NumStats
)

var statNames = [NumStats]string{"attack", "defense", "sp_attack", "sp_defense", "speed", "accuracy", "evasion"}

var statLabels = [NumStats]string{"attack", "defense", "sp. attack", "sp. defense", "speed", "accuracy", "evasion"}

func (s Stat) String() string {
	if s < 0 || s >= NumStats {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statNames[s]
}

// Label is the human-readable stat name used in narration.
func (s Stat) Label() string {
	if s < 0 || s >= NumStats {
		return s.String()
	}
	return statLabels[s]
}

func ParseStat(s string) (Stat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range statNames {
		if n == s {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", s)
}

func (s Stat) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stat) UnmarshalText(b []byte) error {
	v, err := ParseStat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// BaseStats are the species' base values.
type BaseStats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"sp_attack"`
	SpDefense int `yaml:"sp_defense" json:"sp_defense"`
	Speed     int `yaml:"speed" json:"speed"`
}

func (b BaseStats) value(s Stat) int {
	switch s {
	case StatAttack:
		return b.Attack
	case StatDefense:
		return b.Defense
	case StatSpAttack:
		return b.SpAttack
	case StatSpDefense:
		return b.SpDefense
	case StatSpeed:
		return b.Speed
	}
	return 0
}

// StatStages holds the in-battle stage of every boostable stat.
type StatStages [NumStats]int

// Apply adds delta to the stage of s, clamped to [MinStage, MaxStage], and
// returns the change actually applied.
func (st *StatStages) Apply(s Stat, delta int) int {
	before := st[s]
	st[s] = ClampStage(before + delta)
	return st[s] - before
}

func (st *StatStages) Reset() { *st = StatStages{} }

func ClampStage(n int) int {
	if n < MinStage {
		return MinStage
	}
	if n > MaxStage {
		return MaxStage
	}
	return n
}

// BoostFactor is the multiplier for a stat stage: (2+n)/2 when n >= 0,
// 2/(2-n) otherwise.
func BoostFactor(stage int) float64 {
	stage = ClampStage(stage)
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// GrowthRate selects the experience curve of a species.
type GrowthRate int

const (
	GrowthMediumFast GrowthRate = iota
	GrowthFast
	GrowthMediumSlow
	GrowthSlow
)

var growthNames = [...]string{"medium_fast", "fast", "medium_slow", "slow"}

func (g GrowthRate) String() string {
	if g < 0 || int(g) >= len(growthNames) {
		return fmt.Sprintf("growth(%d)", int(g))
	}
	return growthNames[g]
}

func ParseGrowthRate(s string) (GrowthRate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return GrowthMediumFast, nil
	}
	for i, n := range growthNames {
		if n == s {
			return GrowthRate(i), nil
		}
	}
	return 0, fmt.Errorf("unknown growth rate %q", s)
}

func (g GrowthRate) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *GrowthRate) UnmarshalText(b []byte) error {
	v, err := ParseGrowthRate(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ExpForLevel is the total experience needed to reach level n.
func (g GrowthRate) ExpForLevel(n int) int {
	if n <= 1 {
		return 0
	}
	n3 := n * n * n
	var v int
	switch g {
	case GrowthFast:
		v = 4 * n3 / 5
	case GrowthMediumSlow:
		v = 6*n3/5 - 15*n*n + 100*n - 140
	case GrowthSlow:
		v = 5 * n3 / 4
	default:
		v = n3
	}
	if v < 0 {
		return 0
	}
	return v
}
