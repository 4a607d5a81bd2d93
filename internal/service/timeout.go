package service

import (
	"context"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
)

// ExpireIdle drops battles that saw no input for longer than the idle
// timeout. Battles still running are recorded as abandoned first.
// Returns how many battles were dropped.
func (m *Manager) ExpireIdle(now time.Time) int {
	m.mu.RLock()
	candidates := make([]*battle, 0, len(m.battles))
	for _, b := range m.battles {
		candidates = append(candidates, b)
	}
	m.mu.RUnlock()

	expired := 0
	for _, b := range candidates {
		b.mu.Lock()
		idle := now.Sub(b.lastActive) > m.idleTimeout
		if idle {
			if !b.session.Over() && !b.abandoned {
				b.abandoned = true
				m.finish(b, OutcomeAbandoned)
				logging.Info("battle abandoned after inactivity", logging.Fields{constants.LogFieldBattleID: b.id})
			}
			b.notify()
		}
		b.mu.Unlock()
		if !idle {
			continue
		}
		m.mu.Lock()
		delete(m.battles, b.id)
		m.mu.Unlock()
		expired++
	}
	return expired
}

// RunSweeper calls ExpireIdle every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if n := m.ExpireIdle(t); n > 0 {
				logging.Info("expired idle battles", logging.Fields{"count": n, "remaining": m.Len()})
			}
		}
	}
}
