package service

import (
	"strings"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
)

// SubmitAction forwards the trainer's action or menu navigation to the
// session. Engine errors are returned unchanged so callers can match them
// with errors.Is.
func (m *Manager) SubmitAction(id string, who Identity, a engine.Action) (*BattleView, error) {
	return m.drive(id, who, func(s *engine.Session) error {
		if err := s.SubmitAction(engine.SidePlayer, a); err != nil {
			return err
		}
		if a.ConsumesTurn() {
			logging.Debug("action submitted", logging.Fields{constants.LogFieldBattleID: id, "action": a.String(), "round": s.Round()})
		}
		return nil
	})
}

// ProvideChoice answers the request the session is suspended on.
func (m *Manager) ProvideChoice(id string, who Identity, c engine.Choice) (*BattleView, error) {
	return m.drive(id, who, func(s *engine.Session) error { return s.ProvideChoice(c) })
}

// Forfeit ends the battle in the opponent's favour.
func (m *Manager) Forfeit(id string, who Identity) (*BattleView, error) {
	return m.drive(id, who, func(s *engine.Session) error { return s.Forfeit() })
}

func (m *Manager) drive(id string, who Identity, fn func(s *engine.Session) error) (*BattleView, error) {
	b, err := m.get(id, who)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.abandoned {
		return nil, engine.ErrBattleOver
	}
	if err := fn(b.session); err != nil {
		return nil, err
	}
	b.lastActive = m.now()
	events := b.collect()
	if b.session.Over() {
		m.finish(b, string(b.session.Outcome()))
	}
	return b.view(events), nil
}

// finish persists the record once. Storage failures are logged; the
// battle result stands.
func (m *Manager) finish(b *battle, outcome string) {
	if b.finished {
		return
	}
	b.finished = true
	rec := b.record(outcome)
	if err := m.repo.SaveBattleRecord(rec); err != nil {
		logging.Error("failed to save battle record", err, logging.Fields{constants.LogFieldBattleID: b.id})
	}
	if err := m.repo.UpdateStatsOnBattleEnd(rec); err != nil {
		logging.Error("failed to update trainer stats", err, logging.Fields{constants.LogFieldBattleID: b.id})
	}
	logging.Info("battle finished", logging.Fields{constants.LogFieldBattleID: b.id, "outcome": outcome, "rounds": b.session.Round()})
}

func (b *battle) record(outcome string) *storage.BattleRecord {
	rec := &storage.BattleRecord{
		SessionID:    b.id,
		TrainerEmail: b.owner.Email,
		TrainerName:  b.owner.Name,
		Kind:         string(b.session.Kind()),
		Opponent:     b.opponent,
		Outcome:      outcome,
		Rounds:       b.session.Round(),
		Summary:      strings.Join(b.narration, "\n"),
	}
	if c := b.session.Captured(); c != nil {
		rec.CapturedSpecies = c.Species.Key
	}
	return rec
}
