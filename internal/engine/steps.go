package engine

// step is one unit of turn resolution. It returns false when it suspended
// the session on a choice; the remaining queue runs once the choice is
// provided.
type step func(s *Session) bool

type pendingChoice struct {
	request ChoiceRequest
	resolve func(s *Session, c Choice) error
}

// then appends steps to the end of the queue.
func (s *Session) then(steps ...step) {
	s.queue = append(s.queue, steps...)
}

// next inserts steps ahead of everything still queued.
func (s *Session) next(steps ...step) {
	q := make([]step, 0, len(steps)+len(s.queue))
	q = append(q, steps...)
	s.queue = append(q, s.queue...)
}

// suspend parks the session on req and reports the request as an event.
func (s *Session) suspend(state State, req ChoiceRequest, resolve func(s *Session, c Choice) error) bool {
	s.state = state
	s.pending = &pendingChoice{request: req, resolve: resolve}
	s.emit(ChoiceRequested{Request: req})
	return false
}

// run executes queued steps until the queue drains, a step suspends or the
// battle ends. A drained queue starts the next round.
func (s *Session) run() {
	for !s.over && len(s.queue) > 0 {
		st := s.queue[0]
		s.queue = s.queue[1:]
		if !st(s) {
			return
		}
	}
	if s.over {
		return
	}
	s.startRound()
}
