package game

import (
	"fmt"
	"strings"
)

// ConditionID is the closed set of status conditions. Persistent statuses
// (poison, burn, sleep, paralysis, freeze) occupy the single status slot of
// a creature; volatile ones (confusion) are tracked separately and cleared
// on withdrawal.
type ConditionID int

const (
	ConditionNone ConditionID = iota
	ConditionPoison
	ConditionBurn
	ConditionSleep
	ConditionParalysis
	ConditionFreeze
	ConditionConfusion

	numConditions
)

// Rand is the randomness the battle rules draw from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Condition describes one status and its hooks. Hooks report narration
// through the given callback; HP changes are observed by the caller.
type Condition struct {
	ID           ConditionID
	Key          string
	Name         string
	Description  string
	StartMessage string
	Volatile     bool
	CaptureBonus float64

	OnStart      func(c *Creature, r Rand)
	OnBeforeMove func(c *Creature, r Rand, report func(string)) bool
	OnAfterTurn  func(c *Creature, r Rand, report func(string))
}

var conditionTable [numConditions]Condition

func init() {
	conditionTable = [numConditions]Condition{
		ConditionNone: {ID: ConditionNone, Key: "none", Name: "None", CaptureBonus: 1},
		ConditionPoison: {
			ID: ConditionPoison, Key: "psn", Name: "Poison",
			Description:  "Loses 1/8 of max HP after every turn.",
			StartMessage: "has been poisoned", CaptureBonus: 1.5,
			OnAfterTurn: func(c *Creature, _ Rand, report func(string)) {
				c.TakeHP(max(1, c.MaxHP()/8))
				report(c.Name() + " hurt itself due to poison")
			},
		},
		ConditionBurn: {
			ID: ConditionBurn, Key: "brn", Name: "Burn",
			Description:  "Loses 1/16 of max HP after every turn.",
			StartMessage: "has been burned", CaptureBonus: 1.5,
			OnAfterTurn: func(c *Creature, _ Rand, report func(string)) {
				c.TakeHP(max(1, c.MaxHP()/16))
				report(c.Name() + " hurt itself due to burn")
			},
		},
		ConditionSleep: {
			ID: ConditionSleep, Key: "slp", Name: "Sleep",
			Description:  "Cannot move for 1 to 3 turns.",
			StartMessage: "has fallen asleep", CaptureBonus: 2,
			OnStart: func(c *Creature, r Rand) {
				c.StatusTime = r.IntN(3) + 1
			},
			OnBeforeMove: func(c *Creature, _ Rand, report func(string)) bool {
				if c.StatusTime <= 0 {
					c.CureStatus()
					report(c.Name() + " woke up!")
					return true
				}
				c.StatusTime--
				report(c.Name() + " is sleeping")
				return false
			},
		},
		ConditionParalysis: {
			ID: ConditionParalysis, Key: "par", Name: "Paralyzed",
			Description:  "Has a 1 in 4 chance of being unable to move.",
			StartMessage: "has been paralyzed", CaptureBonus: 1.5,
			OnBeforeMove: func(c *Creature, r Rand, report func(string)) bool {
				if r.IntN(4) == 0 {
					report(c.Name() + "'s paralyzed and can't move")
					return false
				}
				return true
			},
		},
		ConditionFreeze: {
			ID: ConditionFreeze, Key: "frz", Name: "Freeze",
			Description:  "Cannot move until it thaws, 1 in 4 chance per turn.",
			StartMessage: "has been frozen", CaptureBonus: 2,
			OnBeforeMove: func(c *Creature, r Rand, report func(string)) bool {
				if r.IntN(4) == 0 {
					c.CureStatus()
					report(c.Name() + " is not frozen anymore")
					return true
				}
				report(c.Name() + " is frozen solid")
				return false
			},
		},
		ConditionConfusion: {
			ID: ConditionConfusion, Key: "confusion", Name: "Confusion",
			Description:  "For 1 to 4 turns, has a 1 in 2 chance of hurting itself instead of moving.",
			StartMessage: "has been confused", Volatile: true, CaptureBonus: 1,
			OnStart: func(c *Creature, r Rand) {
				c.Volatiles[ConditionConfusion] = r.IntN(4) + 1
			},
			OnBeforeMove: func(c *Creature, r Rand, report func(string)) bool {
				if c.Volatiles[ConditionConfusion] <= 0 {
					c.CureVolatile(ConditionConfusion)
					report(c.Name() + " kicked out of confusion!")
					return true
				}
				c.Volatiles[ConditionConfusion]--
				if r.IntN(2) == 0 {
					return true
				}
				report(c.Name() + " is confused")
				c.TakeHP(max(1, c.MaxHP()/8))
				report("It hurt itself due to confusion")
				return false
			},
		},
	}
}

// LookupCondition returns the handler entry for id, or nil when id is out
// of range.
func LookupCondition(id ConditionID) *Condition {
	if id < 0 || id >= numConditions {
		return nil
	}
	return &conditionTable[id]
}

// AllConditions lists every condition except ConditionNone.
func AllConditions() []ConditionID {
	out := make([]ConditionID, 0, numConditions-1)
	for id := ConditionNone + 1; id < numConditions; id++ {
		out = append(out, id)
	}
	return out
}

func (id ConditionID) Volatile() bool {
	if c := LookupCondition(id); c != nil {
		return c.Volatile
	}
	return false
}

func (id ConditionID) String() string {
	if c := LookupCondition(id); c != nil {
		return c.Key
	}
	return fmt.Sprintf("condition(%d)", int(id))
}

// ParseCondition accepts the short key ("psn") or the full name ("poison").
func ParseCondition(s string) (ConditionID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ConditionNone, nil
	}
	for id := ConditionNone; id < numConditions; id++ {
		c := &conditionTable[id]
		if c.Key == s || strings.ToLower(c.Name) == s {
			return id, nil
		}
	}
	switch s {
	case "poisoned":
		return ConditionPoison, nil
	case "burned":
		return ConditionBurn, nil
	case "asleep":
		return ConditionSleep, nil
	case "paralysis":
		return ConditionParalysis, nil
	case "frozen":
		return ConditionFreeze, nil
	case "confused":
		return ConditionConfusion, nil
	}
	return ConditionNone, fmt.Errorf("unknown condition %q", s)
}

func (id ConditionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ConditionID) UnmarshalText(b []byte) error {
	v, err := ParseCondition(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
