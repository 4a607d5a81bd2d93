package engine

import "fmt"

type ActionKind string

const (
	// Turn-consuming actions.
	ActionUseMove  ActionKind = "use_move"
	ActionSwitchTo ActionKind = "switch_to"
	ActionUseItem  ActionKind = "use_item"
	ActionRun      ActionKind = "run"

	// Menu navigation; these change the selection state only.
	ActionFight ActionKind = "fight"
	ActionParty ActionKind = "party"
	ActionBack  ActionKind = "back"
)

// Action is what a side submits for a round.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Index int        `json:"index"`
}

func UseMove(i int) Action  { return Action{Kind: ActionUseMove, Index: i} }
func SwitchTo(i int) Action { return Action{Kind: ActionSwitchTo, Index: i} }
func UseItem() Action       { return Action{Kind: ActionUseItem} }
func Run() Action           { return Action{Kind: ActionRun} }
func OpenMoves() Action     { return Action{Kind: ActionFight} }
func OpenParty() Action     { return Action{Kind: ActionParty} }
func Back() Action          { return Action{Kind: ActionBack} }

// ConsumesTurn reports whether the action resolves a round rather than
// navigating the menus.
func (a Action) ConsumesTurn() bool {
	switch a.Kind {
	case ActionUseMove, ActionSwitchTo, ActionUseItem, ActionRun:
		return true
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case ActionUseMove, ActionSwitchTo:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Index)
	}
	return string(a.Kind)
}

type ChoiceKind string

const (
	ChoiceAction      ChoiceKind = "action"
	ChoiceMove        ChoiceKind = "move"
	ChoicePartyMember ChoiceKind = "party_member"
	ChoiceYesNo       ChoiceKind = "yes_no"
	ChoiceForgetMove  ChoiceKind = "forget_move"
)

// ChoiceRequest describes what input the session waits for. Action and
// Move requests are answered with SubmitAction, the others with
// ProvideChoice.
type ChoiceRequest struct {
	Kind        ChoiceKind `json:"kind"`
	Prompt      string     `json:"prompt,omitempty"`
	Options     []string   `json:"options"`
	Cancellable bool       `json:"cancellable"`
}

// Choice answers a pending ChoiceRequest.
type Choice struct {
	Kind   ChoiceKind `json:"kind"`
	Index  int        `json:"index"`
	Yes    bool       `json:"yes"`
	Cancel bool       `json:"cancel"`
}

func PartyMember(i int) Choice { return Choice{Kind: ChoicePartyMember, Index: i} }
func Yes() Choice              { return Choice{Kind: ChoiceYesNo, Yes: true} }
func No() Choice               { return Choice{Kind: ChoiceYesNo} }

// ForgetMove picks the move slot to overwrite. Index MaxNumMoves (the new
// move itself) keeps the current moves.
func ForgetMove(i int) Choice { return Choice{Kind: ChoiceForgetMove, Index: i} }

// KeepMoves declines to learn the offered move.
func KeepMoves() Choice { return Choice{Kind: ChoiceForgetMove, Index: -1} }

// CancelChoice backs out of a cancellable party selection.
func CancelChoice() Choice { return Choice{Kind: ChoicePartyMember, Cancel: true} }
