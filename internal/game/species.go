package game

// LearnableMove is a move a species learns on reaching Level.
type LearnableMove struct {
	Move  *MoveSpec `json:"-"`
	Key   string    `json:"move"`
	Level int       `json:"level"`
}

// Species is the immutable catalog definition shared by every creature of
// its kind.
type Species struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Type1          Type            `json:"type1"`
	Type2          Type            `json:"type2"`
	BaseStats      BaseStats       `json:"base_stats"`
	ExpYield       int             `json:"exp_yield"`
	GrowthRate     GrowthRate      `json:"growth_rate"`
	CatchRate      int             `json:"catch_rate"`
	LearnableMoves []LearnableMove `json:"learnable_moves"`
}

// DefaultCatchRate is used when a species does not set one.
const DefaultCatchRate = 255

// TypeEffectiveness combines the chart value against both types.
func (s *Species) TypeEffectiveness(attack Type) float64 {
	return Effectiveness(attack, s.Type1) * Effectiveness(attack, s.Type2)
}

// MoveAtLevel returns the move learned at exactly level, if any.
func (s *Species) MoveAtLevel(level int) *LearnableMove {
	for i := range s.LearnableMoves {
		if s.LearnableMoves[i].Level == level {
			return &s.LearnableMoves[i]
		}
	}
	return nil
}
