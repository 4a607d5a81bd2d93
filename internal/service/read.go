package service

// Snapshot returns the current state without events.
func (m *Manager) Snapshot(id string, who Identity) (*BattleView, error) {
	b, err := m.get(id, who)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view(nil), nil
}

// Events returns the logged events with a sequence number above since.
// over reports whether the battle can produce no more events.
func (m *Manager) Events(id string, who Identity, since int) (events []EventEnvelope, over bool, err error) {
	b, err := m.get(id, who)
	if err != nil {
		return nil, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.since(since), b.finished || b.abandoned, nil
}

func (b *battle) since(seq int) []EventEnvelope {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(b.log) {
		return []EventEnvelope{}
	}
	out := make([]EventEnvelope, len(b.log)-seq)
	copy(out, b.log[seq:])
	return out
}

// Subscribe returns a channel that receives a signal whenever the battle
// logs new events or expires. The signal carries no data; read the events
// with Events. cancel must be called to release the subscription.
func (m *Manager) Subscribe(id string, who Identity) (signal <-chan struct{}, cancel func(), err error) {
	b, err := m.get(id, who)
	if err != nil {
		return nil, nil, err
	}
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	cancel = func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel, nil
}
