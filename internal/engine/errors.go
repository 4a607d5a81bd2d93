package engine

import "errors"

var (
	// ErrInvalidAction is returned when an action is illegal for the
	// current state or side. The session is left unchanged.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidPartyState is returned by Begin when a side cannot field a
	// healthy creature.
	ErrInvalidPartyState = errors.New("invalid party state")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrNoPendingChoice   = errors.New("no pending choice")
	ErrBattleOver        = errors.New("battle is over")
)
