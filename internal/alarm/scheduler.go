// Package alarm provides an in-process wall-clock alarm. It fires a
// callback at an absolute instant whether or not anything is ticking in
// the foreground, which is the role an OS alarm plays on a phone.
package alarm

import (
	"sync"
	"time"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Compile-time interface check.
var _ domain.AlarmScheduler = (*Scheduler)(nil)

// Scheduler keeps at most one pending alarm per id.
type Scheduler struct {
	mu      sync.Mutex
	clock   domain.Clock
	log     *logger.Logger
	pending map[string]*entry
	closed  bool
}

type entry struct {
	t  *time.Timer
	at time.Time
}

// NewScheduler creates a scheduler measuring delays against clock.
func NewScheduler(clock domain.Clock, log *logger.Logger) *Scheduler {
	return &Scheduler{
		clock:   clock,
		log:     log,
		pending: make(map[string]*entry),
	}
}

// Schedule arranges for fire to run at the given instant, replacing any
// alarm already pending for id. Instants in the past fire immediately.
func (s *Scheduler) Schedule(id string, at time.Time, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Warn("schedule %s after close ignored", id)
		return
	}
	if old, ok := s.pending[id]; ok {
		old.t.Stop()
	}

	delay := at.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}

	e := &entry{at: at}
	e.t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		current, ok := s.pending[id]
		if !ok || current != e {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()

		s.log.Debug("alarm %s fired (due %s)", id, at.Format(time.TimeOnly))
		fire()
	})
	s.pending[id] = e
	s.log.Debug("alarm %s scheduled in %s", id, delay.Round(time.Second))
}

// Cancel drops the pending alarm for id. Unknown ids are ignored.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.pending[id]; ok {
		e.t.Stop()
		delete(s.pending, id)
		s.log.Debug("alarm %s cancelled", id)
	}
}

// Pending reports when the alarm for id is due.
func (s *Scheduler) Pending(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[id]
	if !ok {
		return time.Time{}, false
	}
	return e.at, true
}

// Close cancels every pending alarm. Later Schedule calls are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.pending {
		e.t.Stop()
		delete(s.pending, id)
	}
	s.closed = true
}
