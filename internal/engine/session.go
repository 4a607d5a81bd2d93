package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/ericogr/pocket-arena/internal/game"
)

type State string

const (
	StateSetup           State = "setup"
	StateActionSelection State = "action_selection"
	StateMoveSelection   State = "move_selection"
	StatePartySelection  State = "party_selection"
	StateItemUse         State = "item_use"
	StateRunningTurn     State = "running_turn"
	StateAboutToUse      State = "about_to_use"
	StateMoveToForget    State = "move_to_forget"
	StateBattleOver      State = "battle_over"
)

type Kind string

const (
	KindWild    Kind = "wild"
	KindTrainer Kind = "trainer"
)

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeEscaped   Outcome = "escaped"
	OutcomeCaptured  Outcome = "captured"
	OutcomeForfeited Outcome = "forfeited"
)

// Setup describes one encounter. Exactly one of Wild or Trainer must be
// set.
type Setup struct {
	PlayerName  string
	Player      *game.Party
	Wild        *game.Creature
	TrainerName string
	Trainer     *game.Party
	// ExternalOpponent makes the opponent submit its moves through
	// SubmitAction instead of the built-in random picker.
	ExternalOpponent bool
	// Rand defaults to a randomly seeded PCG source.
	Rand game.Rand
}

// Session is one battle. It is single threaded: callers serialize access.
type Session struct {
	rng         game.Rand
	kind        Kind
	playerName  string
	trainerName string
	external    bool

	parties [2]*game.Party
	active  [2]int

	state          State
	round          int
	escapeAttempts int
	over           bool
	outcome        Outcome
	winner         Side

	actions  [2]*Action
	captured *game.Creature
	stored   []*game.Creature

	pending *pendingChoice
	queue   []step
	events  []Event
}

// Begin validates the setup, sends out the first healthy creature of each
// side and waits for the player's first action.
func Begin(cfg Setup) (*Session, error) {
	if cfg.Player == nil || !cfg.Player.HasHealthy() {
		return nil, fmt.Errorf("%w: player has no creature able to battle", ErrInvalidPartyState)
	}
	s := &Session{
		rng:        cfg.Rand,
		playerName: cfg.PlayerName,
		external:   cfg.ExternalOpponent,
		state:      StateSetup,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.playerName == "" {
		s.playerName = "Player"
	}
	switch {
	case cfg.Wild != nil && cfg.Trainer != nil:
		return nil, fmt.Errorf("%w: a battle is either wild or against a trainer", ErrInvalidPartyState)
	case cfg.Wild != nil:
		if cfg.Wild.Fainted() {
			return nil, fmt.Errorf("%w: wild creature has no HP", ErrInvalidPartyState)
		}
		s.kind = KindWild
		s.parties[SideOpponent] = game.NewParty(cfg.Wild)
	case cfg.Trainer != nil:
		if !cfg.Trainer.HasHealthy() {
			return nil, fmt.Errorf("%w: trainer has no creature able to battle", ErrInvalidPartyState)
		}
		s.kind = KindTrainer
		s.trainerName = cfg.TrainerName
		if s.trainerName == "" {
			s.trainerName = "Trainer"
		}
		s.parties[SideOpponent] = cfg.Trainer
	default:
		return nil, fmt.Errorf("%w: no opponent", ErrInvalidPartyState)
	}
	s.parties[SidePlayer] = cfg.Player
	s.active[SidePlayer] = cfg.Player.FirstHealthy()
	s.active[SideOpponent] = s.parties[SideOpponent].FirstHealthy()

	if s.kind == KindWild {
		s.say(fmt.Sprintf("A wild %s appeared.", s.creature(SideOpponent).Name()))
		s.emitSwitchIn(SideOpponent)
		s.emitSwitchIn(SidePlayer)
	} else {
		s.say(s.trainerName + " would like to battle")
		s.say(fmt.Sprintf("%s sent out %s", s.trainerName, s.creature(SideOpponent).Name()))
		s.emitSwitchIn(SideOpponent)
		s.say(fmt.Sprintf("Go %s!", s.creature(SidePlayer).Name()))
		s.emitSwitchIn(SidePlayer)
	}
	s.startRound()
	return s, nil
}

func (s *Session) Kind() Kind          { return s.kind }
func (s *Session) State() State        { return s.state }
func (s *Session) Round() int          { return s.round }
func (s *Session) Over() bool          { return s.over }
func (s *Session) Outcome() Outcome    { return s.outcome }
func (s *Session) Winner() Side        { return s.winner }
func (s *Session) EscapeAttempts() int { return s.escapeAttempts }
func (s *Session) PlayerName() string  { return s.playerName }
func (s *Session) TrainerName() string { return s.trainerName }

// Captured is the creature caught in this battle, if any.
func (s *Session) Captured() *game.Creature { return s.captured }

// Stored lists captured creatures that did not fit in the party.
func (s *Session) Stored() []*game.Creature { return s.stored }

func (s *Session) Party(side Side) *game.Party { return s.parties[side] }

func (s *Session) Active(side Side) (int, *game.Creature) {
	return s.active[side], s.creature(side)
}

// Pending returns the request the session is blocked on, if any.
func (s *Session) Pending() *ChoiceRequest {
	if s.pending == nil {
		return nil
	}
	req := s.pending.request
	return &req
}

// Events drains and returns the events produced since the last call.
// Draining acknowledges the narration it contains.
func (s *Session) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// SubmitAction registers a side's action for the round and, once every side
// has acted, resolves the round up to the next required input.
func (s *Session) SubmitAction(side Side, a Action) error {
	if s.over {
		return ErrBattleOver
	}
	if s.pending != nil {
		return fmt.Errorf("%w: waiting for a %s choice", ErrInvalidAction, s.pending.request.Kind)
	}
	if side == SideOpponent {
		return s.submitOpponent(a)
	}
	if side != SidePlayer {
		return fmt.Errorf("%w: unknown side %d", ErrInvalidAction, side)
	}
	if s.actions[SidePlayer] != nil {
		return fmt.Errorf("%w: action already submitted for this round", ErrInvalidAction)
	}

	switch a.Kind {
	case ActionFight:
		if s.state != StateActionSelection {
			return s.wrongState(a)
		}
		s.state = StateMoveSelection
		s.emit(ChoiceRequested{Request: ChoiceRequest{Kind: ChoiceMove, Options: moveOptions(s.creature(SidePlayer)), Cancellable: true}})
		return nil
	case ActionParty:
		if s.state != StateActionSelection {
			return s.wrongState(a)
		}
		s.state = StatePartySelection
		s.emit(ChoiceRequested{Request: ChoiceRequest{Kind: ChoicePartyMember, Options: partyOptions(s.parties[SidePlayer]), Cancellable: true}})
		return nil
	case ActionBack:
		if s.state != StateMoveSelection && s.state != StatePartySelection {
			return s.wrongState(a)
		}
		s.beginActionSelection()
		return nil
	case ActionUseMove:
		if s.state != StateActionSelection && s.state != StateMoveSelection {
			return s.wrongState(a)
		}
		if err := s.validateMove(SidePlayer, a.Index); err != nil {
			return err
		}
	case ActionSwitchTo:
		if s.state != StateActionSelection && s.state != StatePartySelection {
			return s.wrongState(a)
		}
		if err := s.validateSwitch(a.Index); err != nil {
			return err
		}
	case ActionUseItem, ActionRun:
		if s.state != StateActionSelection {
			return s.wrongState(a)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, a.Kind)
	}

	act := a
	s.actions[SidePlayer] = &act
	if !s.external {
		ai := chooseOpponentMove(s.creature(SideOpponent), s.rng)
		s.actions[SideOpponent] = &ai
	}
	if s.actions[SideOpponent] != nil {
		s.resolveRound()
	}
	return nil
}

func (s *Session) submitOpponent(a Action) error {
	if !s.external {
		return fmt.Errorf("%w: opponent is controlled by the engine", ErrInvalidAction)
	}
	if a.Kind != ActionUseMove {
		return fmt.Errorf("%w: opponent can only use moves", ErrInvalidAction)
	}
	if s.actions[SideOpponent] != nil {
		return fmt.Errorf("%w: action already submitted for this round", ErrInvalidAction)
	}
	switch s.state {
	case StateActionSelection, StateMoveSelection, StatePartySelection:
	default:
		return fmt.Errorf("%w: not accepting actions in state %s", ErrInvalidAction, s.state)
	}
	if err := s.validateMove(SideOpponent, a.Index); err != nil {
		return err
	}
	act := a
	s.actions[SideOpponent] = &act
	if s.actions[SidePlayer] != nil {
		s.resolveRound()
	}
	return nil
}

func (s *Session) wrongState(a Action) error {
	return fmt.Errorf("%w: %s not allowed in state %s", ErrInvalidAction, a.Kind, s.state)
}

func (s *Session) validateMove(side Side, i int) error {
	c := s.creature(side)
	if i < 0 || i >= len(c.Moves) {
		return fmt.Errorf("%w: move index %d out of range", ErrInvalidAction, i)
	}
	if c.Moves[i].PP <= 0 {
		return fmt.Errorf("%w: %s has no PP left", ErrInvalidAction, c.Moves[i].Spec.Name)
	}
	return nil
}

func (s *Session) validateSwitch(i int) error {
	c, err := s.parties[SidePlayer].Get(i)
	if err != nil {
		return fmt.Errorf("%w: party index %d out of range", ErrInvalidAction, i)
	}
	if c.Fainted() {
		return fmt.Errorf("%w: can't send out a fainted creature", ErrInvalidAction)
	}
	if i == s.active[SidePlayer] {
		return fmt.Errorf("%w: %s is already in battle", ErrInvalidAction, c.Name())
	}
	return nil
}

// ProvideChoice resumes a session suspended on a party, yes/no or
// forget-move request.
func (s *Session) ProvideChoice(c Choice) error {
	if s.over {
		return ErrBattleOver
	}
	if s.pending == nil {
		return ErrNoPendingChoice
	}
	p := s.pending
	if c.Cancel {
		if !p.request.Cancellable {
			return fmt.Errorf("%w: this choice can't be cancelled", ErrInvalidChoice)
		}
	} else if c.Kind != p.request.Kind {
		return fmt.Errorf("%w: expected a %s choice", ErrInvalidChoice, p.request.Kind)
	}
	if err := p.resolve(s, c); err != nil {
		return err
	}
	if s.pending == p {
		s.pending = nil
	}
	if s.pending != nil {
		return nil
	}
	s.state = StateRunningTurn
	s.run()
	return nil
}

// Forfeit ends the battle in the opponent's favour.
func (s *Session) Forfeit() error {
	if s.over {
		return ErrBattleOver
	}
	s.say(s.playerName + " forfeited the battle")
	s.end(OutcomeForfeited)
	return nil
}

func (s *Session) creature(side Side) *game.Creature {
	return s.parties[side].Members[s.active[side]]
}

func (s *Session) ref(side Side) Ref { return Ref{Side: side, Index: s.active[side]} }

func (s *Session) emit(e Event) { s.events = append(s.events, e) }

func (s *Session) say(text string) { s.emit(Narration{Text: text}) }

func (s *Session) emitHP(side Side) {
	c := s.creature(side)
	s.emit(HPChanged{Ref: s.ref(side), HP: c.HP, MaxHP: c.MaxHP(), Fraction: c.HPFraction()})
}

func (s *Session) emitSwitchIn(side Side) {
	c := s.creature(side)
	s.emit(SwitchedIn{Ref: s.ref(side), Name: c.Name()})
	s.emitHP(side)
}

func (s *Session) startRound() {
	s.round++
	s.actions = [2]*Action{}
	s.beginActionSelection()
}

func (s *Session) beginActionSelection() {
	s.state = StateActionSelection
	s.emit(ChoiceRequested{Request: ChoiceRequest{
		Kind:    ChoiceAction,
		Prompt:  "Choose an action",
		Options: []string{string(ActionFight), "bag", string(ActionParty), string(ActionRun)},
	}})
}

func (s *Session) end(outcome Outcome) {
	s.over = true
	s.outcome = outcome
	s.winner = SidePlayer
	if outcome == OutcomeLost || outcome == OutcomeForfeited {
		s.winner = SideOpponent
	}
	s.state = StateBattleOver
	s.pending = nil
	s.queue = nil
	for _, p := range s.parties {
		p.ResetBattleState()
	}
	s.emit(BattleEnded{Winner: s.winner, Outcome: outcome})
}

func moveOptions(c *game.Creature) []string {
	out := make([]string, len(c.Moves))
	for i, m := range c.Moves {
		out[i] = fmt.Sprintf("%s %d/%d", m.Spec.Name, m.PP, m.MaxPP())
	}
	return out
}

func partyOptions(p *game.Party) []string {
	out := make([]string, len(p.Members))
	for i, m := range p.Members {
		out[i] = fmt.Sprintf("%s Lv%d %d/%d", m.Name(), m.Level, m.HP, m.MaxHP())
	}
	return out
}
