package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor checks timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated notifications.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which the supervisor stops nagging.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithReminderInterval sets how often running timers send periodic reminders.
// Zero disables reminders.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.reminderInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to expiry a timer must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// Supervisor runs in the background, ticks every watched countdown, and
// sends reminders and post-completion nags. Completion itself is
// delivered by the Countdown, so a missed tick never loses it.
type Supervisor struct {
	notifier            domain.Notifier
	log                 *logger.Logger
	tickInterval        time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	reminderInterval    time.Duration // periodic "X remaining" reminders
	almostDoneThreshold time.Duration // "almost done" warning threshold

	mu         sync.Mutex
	countdowns map[string]*Countdown
	running    bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// New creates a timer supervisor with the given dependencies and options.
func New(notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		notifier:            notifier,
		log:                 log,
		tickInterval:        1 * time.Second,
		notifyCooldown:      15 * time.Second,
		maxEscalation:       3,
		reminderInterval:    5 * time.Minute,
		almostDoneThreshold: 1 * time.Minute,
		countdowns:          make(map[string]*Countdown),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Watch adds a countdown to the supervised set.
func (s *Supervisor) Watch(c *Countdown) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdowns[c.ID()] = c
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.loop(childCtx, s.done)

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop shuts down the supervisor and waits for the loop to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("timer supervisor stopped")
}

// loop is the main tick loop.
func (s *Supervisor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle over every watched countdown.
func (s *Supervisor) tick(ctx context.Context) {
	s.mu.Lock()
	watched := make([]*Countdown, 0, len(s.countdowns))
	for _, c := range s.countdowns {
		watched = append(watched, c)
	}
	s.mu.Unlock()

	for _, c := range watched {
		s.process(ctx, c)
	}
}

// process advances one countdown and decides what, if anything, to say.
func (s *Supervisor) process(ctx context.Context, c *Countdown) {
	if _, err := c.Tick(ctx); err != nil {
		s.log.Error("supervisor: ticking timer %s: %v", c.ID(), err)
	}

	var msg string
	urgent := false

	c.mu.Lock()
	ts := &c.state
	now := c.clock.Now()

	switch ts.Status {
	case domain.TimerRunning:
		rem := c.remainingLocked()

		// "Almost done" warning, once, when remaining crosses the threshold.
		if !ts.WarnedAlmost && rem <= s.almostDoneThreshold && ts.Duration > s.almostDoneThreshold*2 {
			ts.WarnedAlmost = true
			ts.LastRemindedAt = now
			msg = fmt.Sprintf("[Timer] %s, almost done: %s left.", ts.Label, formatRemaining(rem))
			break
		}

		// Periodic reminder every reminderInterval.
		if s.reminderInterval > 0 && ts.Duration > s.reminderInterval {
			last := ts.LastRemindedAt
			if last.IsZero() {
				// First reminder after reminderInterval from start.
				if ts.Duration-rem < s.reminderInterval {
					break
				}
			} else if now.Sub(last) < s.reminderInterval {
				break
			}
			ts.LastRemindedAt = now
			msg = fmt.Sprintf("[Timer] %s, %s remaining.", ts.Label, formatRemaining(rem))
		}

	case domain.TimerFinished:
		if ts.Dismissed || ts.EscalationLevel > s.maxEscalation {
			break // Stop nagging.
		}
		if !ts.LastNotified.IsZero() && now.Sub(ts.LastNotified) < s.notifyCooldown {
			break // Cooldown active.
		}
		msg = escalationMessage(ts.Label, ts.EscalationLevel)
		urgent = true
		ts.LastNotified = now
		ts.EscalationLevel++
	}
	if msg != "" {
		if err := c.saveLocked(ctx); err != nil {
			s.log.Error("supervisor: %v", err)
		}
	}
	c.mu.Unlock()

	if msg == "" {
		return
	}

	notify := s.notifier.Notify
	if urgent {
		notify = s.notifier.NotifyUrgent
	}
	if err := notify(ctx, msg); err != nil {
		s.log.Error("supervisor: notify: %v", err)
	}
}

// escalationMessage returns a message based on the escalation level.
func escalationMessage(label string, level int) string {
	switch level {
	case 0:
		return fmt.Sprintf("[Timer] %s is done.", label)
	case 1:
		return fmt.Sprintf("[Timer] %s is done. Check the basket now.", label)
	case 2:
		return fmt.Sprintf("[Timer] %s. It's been done a while.", label)
	default:
		return fmt.Sprintf("[Timer] %s.", label)
	}
}

// formatRemaining returns a human-friendly duration for timer reminders.
// Rounds to the nearest minute once there's at least 1 minute left.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	// Round to nearest minute.
	m := (totalSec + 30) / 60
	if m <= 0 {
		m = 1
	}
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
