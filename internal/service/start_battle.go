package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
)

// CreatureSpec describes a creature to build from the catalog. Without
// Moves the creature knows the last four moves its species learns by
// Level.
type CreatureSpec struct {
	Species  string   `json:"species"`
	Level    int      `json:"level"`
	Moves    []string `json:"moves,omitempty"`
	Nickname string   `json:"nickname,omitempty"`
}

// StartBattleRequest sets up a wild encounter (Wild) or a trainer battle
// (Trainer). Seed makes the battle reproducible.
type StartBattleRequest struct {
	Party       []CreatureSpec `json:"party"`
	Wild        *CreatureSpec  `json:"wild,omitempty"`
	TrainerName string         `json:"trainer_name,omitempty"`
	Trainer     []CreatureSpec `json:"trainer,omitempty"`
	Seed        *uint64        `json:"seed,omitempty"`
}

// StartBattle builds both sides from the catalog and begins a session
// owned by who.
func (m *Manager) StartBattle(ctx context.Context, who Identity, req StartBattleRequest) (*BattleView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	party, err := m.buildParty(req.Party)
	if err != nil {
		return nil, fmt.Errorf("party: %w", err)
	}
	setup := engine.Setup{PlayerName: who.Name, Player: party}
	if req.Seed != nil {
		setup.Rand = rand.New(rand.NewPCG(*req.Seed, *req.Seed^0x9e3779b97f4a7c15))
	}

	opponent := ""
	if req.Wild != nil {
		if setup.Wild, err = m.buildCreature(*req.Wild); err != nil {
			return nil, fmt.Errorf("wild: %w", err)
		}
		opponent = "wild " + setup.Wild.Name()
	}
	if len(req.Trainer) > 0 {
		if setup.Trainer, err = m.buildParty(req.Trainer); err != nil {
			return nil, fmt.Errorf("trainer: %w", err)
		}
		setup.TrainerName = strings.TrimSpace(req.TrainerName)
		opponent = setup.TrainerName
		if opponent == "" {
			opponent = "Trainer"
		}
	}

	s, err := engine.Begin(setup)
	if err != nil {
		return nil, err
	}
	b := &battle{
		id:         uuid.NewString(),
		owner:      who,
		session:    s,
		opponent:   opponent,
		lastActive: m.now(),
		subs:       map[chan struct{}]struct{}{},
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.collect()

	m.mu.Lock()
	m.battles[b.id] = b
	m.mu.Unlock()

	logging.Info("battle started", logging.Fields{constants.LogFieldBattleID: b.id, "kind": string(s.Kind()), "opponent": opponent})
	return b.view(events), nil
}

func (m *Manager) buildParty(specs []CreatureSpec) (*game.Party, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty party", engine.ErrInvalidPartyState)
	}
	if len(specs) > game.MaxPartySize {
		return nil, fmt.Errorf("%w: at most %d creatures", engine.ErrInvalidPartyState, game.MaxPartySize)
	}
	members := make([]*game.Creature, 0, len(specs))
	for i, cs := range specs {
		c, err := m.buildCreature(cs)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i+1, err)
		}
		members = append(members, c)
	}
	return game.NewParty(members...), nil
}

func (m *Manager) buildCreature(cs CreatureSpec) (*game.Creature, error) {
	sp, err := m.catalog.Species(cs.Species)
	if err != nil {
		return nil, err
	}
	if cs.Level < 1 || cs.Level > game.MaxLevel {
		return nil, fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidLevel, cs.Level, game.MaxLevel)
	}
	c := game.NewCreature(sp, cs.Level)
	c.Nickname = strings.TrimSpace(cs.Nickname)
	if len(cs.Moves) == 0 {
		return c, nil
	}
	if len(cs.Moves) > game.MaxNumMoves {
		return nil, fmt.Errorf("%w: at most %d moves", ErrInvalidMoveSet, game.MaxNumMoves)
	}
	c.Moves = nil
	for _, key := range cs.Moves {
		mv, err := m.catalog.Move(key)
		if err != nil {
			return nil, err
		}
		if c.KnowsMove(mv.Key) {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidMoveSet, mv.Key)
		}
		if err := c.LearnMove(mv); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMoveSet, err)
		}
	}
	return c, nil
}
