package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ericogr/pocket-arena/internal/catalog"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/storage"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrNotParticipant = errors.New("not a participant of this battle")
	ErrInvalidLevel   = errors.New("invalid level")
	ErrInvalidMoveSet = errors.New("invalid move set")

	ErrUnknownSpecies = catalog.ErrUnknownSpecies
	ErrUnknownMove    = catalog.ErrUnknownMove
)

// OutcomeAbandoned is recorded for battles that expired while idle.
const OutcomeAbandoned = storage.OutcomeAbandoned

// summaryLines is how much of the closing narration a record keeps.
const summaryLines = 8

// BattleRepo is the part of storage.Repository the manager writes to.
type BattleRepo interface {
	SaveBattleRecord(rec *storage.BattleRecord) error
	UpdateStatsOnBattleEnd(rec *storage.BattleRecord) error
}

// Identity is the authenticated trainer driving a battle.
type Identity struct {
	Email string
	Name  string
}

// EventEnvelope is an engine event with its position in the battle log.
type EventEnvelope struct {
	Seq  int          `json:"seq"`
	Kind string       `json:"kind"`
	Data engine.Event `json:"data"`
}

// BattleView is what callers get back after every operation: the current
// snapshot plus the events it produced.
type BattleView struct {
	ID       string          `json:"id"`
	Snapshot engine.Snapshot `json:"snapshot"`
	Events   []EventEnvelope `json:"events"`
}

type battle struct {
	mu         sync.Mutex
	id         string
	owner      Identity
	session    *engine.Session
	opponent   string
	log        []EventEnvelope
	narration  []string
	lastActive time.Time
	finished   bool
	abandoned  bool
	subs       map[chan struct{}]struct{}
}

// Manager owns the live battle sessions. Sessions are single threaded, so
// every access goes through the battle's mutex.
type Manager struct {
	catalog     *catalog.Catalog
	repo        BattleRepo
	idleTimeout time.Duration
	now         func() time.Time

	mu      sync.RWMutex
	battles map[string]*battle
}

func NewManager(cat *catalog.Catalog, repo BattleRepo, idleTimeout time.Duration) *Manager {
	return &Manager{
		catalog:     cat,
		repo:        repo,
		idleTimeout: idleTimeout,
		now:         time.Now,
		battles:     map[string]*battle{},
	}
}

// Len reports how many battles are held in memory.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.battles)
}

func (m *Manager) get(id string, who Identity) (*battle, error) {
	m.mu.RLock()
	b, ok := m.battles[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrBattleNotFound
	}
	if b.owner.Email != who.Email {
		return nil, ErrNotParticipant
	}
	return b, nil
}

// collect drains the session's events into the log and wakes subscribers.
// Callers hold b.mu.
func (b *battle) collect() []EventEnvelope {
	events := b.session.Events()
	if len(events) == 0 {
		return nil
	}
	out := make([]EventEnvelope, 0, len(events))
	for _, e := range events {
		env := EventEnvelope{Seq: len(b.log) + 1, Kind: e.Kind(), Data: e}
		b.log = append(b.log, env)
		out = append(out, env)
		if n, ok := e.(engine.Narration); ok {
			b.narration = append(b.narration, n.Text)
			if len(b.narration) > summaryLines {
				b.narration = b.narration[len(b.narration)-summaryLines:]
			}
		}
	}
	b.notify()
	return out
}

func (b *battle) notify() {
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (b *battle) view(events []EventEnvelope) *BattleView {
	if events == nil {
		events = []EventEnvelope{}
	}
	return &BattleView{ID: b.id, Snapshot: b.session.Snapshot(), Events: events}
}
