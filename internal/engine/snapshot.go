package engine

import "github.com/ericogr/pocket-arena/internal/game"

// Snapshot is a read-only copy of the battle state for presentation.
type Snapshot struct {
	Kind           Kind           `json:"kind"`
	State          State          `json:"state"`
	Round          int            `json:"round"`
	EscapeAttempts int            `json:"escape_attempts"`
	Over           bool           `json:"over"`
	Outcome        Outcome        `json:"outcome,omitempty"`
	Winner         *Side          `json:"winner,omitempty"`
	Pending        *ChoiceRequest `json:"pending,omitempty"`
	Player         SideView       `json:"player"`
	Opponent       SideView       `json:"opponent"`
}

type SideView struct {
	Name    string         `json:"name"`
	Active  int            `json:"active"`
	Members []CreatureView `json:"members"`
}

type CreatureView struct {
	Species     string             `json:"species"`
	Name        string             `json:"name"`
	Level       int                `json:"level"`
	HP          int                `json:"hp"`
	MaxHP       int                `json:"max_hp"`
	Exp         int                `json:"exp"`
	ExpFraction float64            `json:"exp_fraction"`
	Status      game.ConditionID   `json:"status"`
	Volatiles   []game.ConditionID `json:"volatiles,omitempty"`
	Stages      map[string]int     `json:"stages,omitempty"`
	Moves       []MoveView         `json:"moves"`
}

type MoveView struct {
	Key   string    `json:"key"`
	Name  string    `json:"name"`
	Type  game.Type `json:"type"`
	PP    int       `json:"pp"`
	MaxPP int       `json:"max_pp"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:           s.kind,
		State:          s.state,
		Round:          s.round,
		EscapeAttempts: s.escapeAttempts,
		Over:           s.over,
		Outcome:        s.outcome,
		Pending:        s.Pending(),
		Player:         s.sideView(SidePlayer, s.playerName),
	}
	if s.over {
		w := s.winner
		snap.Winner = &w
	}
	oppName := s.trainerName
	if s.kind == KindWild {
		oppName = "wild " + s.creature(SideOpponent).Name()
	}
	snap.Opponent = s.sideView(SideOpponent, oppName)
	return snap
}

func (s *Session) sideView(side Side, name string) SideView {
	p := s.parties[side]
	v := SideView{Name: name, Active: s.active[side], Members: make([]CreatureView, 0, p.Len())}
	for _, c := range p.Members {
		v.Members = append(v.Members, viewCreature(c))
	}
	return v
}

func viewCreature(c *game.Creature) CreatureView {
	v := CreatureView{
		Species:     c.Species.Key,
		Name:        c.Name(),
		Level:       c.Level,
		HP:          c.HP,
		MaxHP:       c.MaxHP(),
		Exp:         c.Exp,
		ExpFraction: c.ExpFraction(),
		Status:      c.Status,
		Moves:       make([]MoveView, 0, len(c.Moves)),
	}
	for _, id := range game.AllConditions() {
		if _, ok := c.Volatiles[id]; ok {
			v.Volatiles = append(v.Volatiles, id)
		}
	}
	for st := game.StatAttack; st < game.NumStats; st++ {
		if n := c.Stages[st]; n != 0 {
			if v.Stages == nil {
				v.Stages = map[string]int{}
			}
			v.Stages[st.String()] = n
		}
	}
	for _, m := range c.Moves {
		v.Moves = append(v.Moves, MoveView{Key: m.Spec.Key, Name: m.Spec.Name, Type: m.Spec.Type, PP: m.PP, MaxPP: m.MaxPP()})
	}
	return v
}
