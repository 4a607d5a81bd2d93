package game

import (
	"fmt"
	"strings"
)

// MoveCategory decides which stats a move uses, or that it deals no damage.
type MoveCategory int

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

var categoryNames = [...]string{"physical", "special", "status"}

func (c MoveCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

func ParseMoveCategory(s string) (MoveCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == s {
			return MoveCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown move category %q", s)
}

func (c MoveCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MoveTarget says who receives stat boosts of an effect bundle.
type MoveTarget int

const (
	TargetFoe MoveTarget = iota
	TargetSelf
)

func (t MoveTarget) String() string {
	if t == TargetSelf {
		return "self"
	}
	return "foe"
}

func ParseMoveTarget(s string) (MoveTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "foe", "enemy":
		return TargetFoe, nil
	case "self":
		return TargetSelf, nil
	}
	return 0, fmt.Errorf("unknown move target %q", s)
}

func (t MoveTarget) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

type StatBoost struct {
	Stat  Stat `json:"stat"`
	Boost int  `json:"boost"`
}

// MoveEffects is a bundle of boosts and conditions. Boosts go to the
// bundle's target; Status and Volatile always land on the foe.
type MoveEffects struct {
	Boosts   []StatBoost `json:"boosts,omitempty"`
	Status   ConditionID `json:"status,omitempty"`
	Volatile ConditionID `json:"volatile,omitempty"`
}

func (e MoveEffects) Empty() bool {
	return len(e.Boosts) == 0 && e.Status == ConditionNone && e.Volatile == ConditionNone
}

// SecondaryEffect fires after a hit with the given percent chance.
type SecondaryEffect struct {
	MoveEffects
	Chance int        `json:"chance"`
	Target MoveTarget `json:"target"`
}

// MoveSpec is the immutable catalog definition of a move.
type MoveSpec struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        Type              `json:"type"`
	Category    MoveCategory      `json:"category"`
	Power       int               `json:"power"`
	Accuracy    int               `json:"accuracy"`
	AlwaysHits  bool              `json:"always_hits"`
	PP          int               `json:"pp"`
	Priority    int               `json:"priority"`
	Target      MoveTarget        `json:"target"`
	Effects     MoveEffects       `json:"effects"`
	Secondaries []SecondaryEffect `json:"secondaries,omitempty"`
}

// Move is a move slot of a creature: a spec plus remaining PP.
type Move struct {
	Spec *MoveSpec
	PP   int
}

func NewMove(spec *MoveSpec) Move {
	return Move{Spec: spec, PP: spec.PP}
}

func (m Move) MaxPP() int { return m.Spec.PP }
