package engine

import "github.com/ericogr/pocket-arena/internal/game"

// Side identifies one of the two parties in a battle.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) Other() Side { return 1 - s }

func (s Side) String() string {
	if s == SideOpponent {
		return "opponent"
	}
	return "player"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Ref points at a party member of one side.
type Ref struct {
	Side  Side `json:"side"`
	Index int  `json:"index"`
}

// Event is an outbound notification. The set of implementations is closed.
type Event interface {
	Kind() string
	isEvent()
}

type Narration struct {
	Text string `json:"text"`
}

type HPChanged struct {
	Ref      Ref     `json:"ref"`
	HP       int     `json:"hp"`
	MaxHP    int     `json:"max_hp"`
	Fraction float64 `json:"fraction"`
}

type StatusChanged struct {
	Ref    Ref              `json:"ref"`
	Status game.ConditionID `json:"status"`
}

type ExpChanged struct {
	Ref      Ref     `json:"ref"`
	Exp      int     `json:"exp"`
	Fraction float64 `json:"fraction"`
}

type LevelChanged struct {
	Ref   Ref `json:"ref"`
	Level int `json:"level"`
}

// SwitchedIn is emitted whenever a creature becomes the active one of its
// side, including the initial send-out.
type SwitchedIn struct {
	Ref  Ref    `json:"ref"`
	Name string `json:"name"`
}

type ChoiceRequested struct {
	Request ChoiceRequest `json:"request"`
}

type BattleEnded struct {
	Winner  Side    `json:"winner"`
	Outcome Outcome `json:"outcome"`
}

func (Narration) Kind() string       { return "narration" }
func (HPChanged) Kind() string       { return "hp_changed" }
func (StatusChanged) Kind() string   { return "status_changed" }
func (ExpChanged) Kind() string      { return "exp_changed" }
func (LevelChanged) Kind() string    { return "level_changed" }
func (SwitchedIn) Kind() string      { return "switched_in" }
func (ChoiceRequested) Kind() string { return "choice_requested" }
func (BattleEnded) Kind() string     { return "battle_ended" }

func (Narration) isEvent()       {}
func (HPChanged) isEvent()       {}
func (StatusChanged) isEvent()   {}
func (ExpChanged) isEvent()      {}
func (LevelChanged) isEvent()    {}
func (SwitchedIn) isEvent()      {}
func (ChoiceRequested) isEvent() {}
func (BattleEnded) isEvent()     {}
