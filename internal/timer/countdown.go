// Package timer implements the cook-along countdown state machine and the
// background supervisor that ticks it and nags when it completes.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Completion paths, reported to the Recorder.
const (
	PathTick    = "tick"
	PathAlarm   = "alarm"
	PathRestore = "restore"
)

// Recorder receives timer events for metrics. The zero value of a
// Countdown uses a no-op recorder.
type Recorder interface {
	RecordTimerTransition(to domain.TimerStatus)
	RecordTimerCompletion(path string)
}

type nopRecorder struct{}

func (nopRecorder) RecordTimerTransition(domain.TimerStatus) {}
func (nopRecorder) RecordTimerCompletion(string)             {}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithClock replaces the wall clock.
func WithClock(c domain.Clock) CountdownOption {
	return func(cd *Countdown) {
		cd.clock = c
	}
}

// WithStore persists every transition to store.
func WithStore(s domain.TimerStore) CountdownOption {
	return func(cd *Countdown) {
		cd.store = s
	}
}

// WithRecorder reports transitions and completions to r.
func WithRecorder(r Recorder) CountdownOption {
	return func(cd *Countdown) {
		cd.rec = r
	}
}

// Countdown is an idle / running / paused / finished timer driven by a
// wall-clock deadline. While running, the deadline is the source of truth
// and an alarm is scheduled for it, so completion is observed whether the
// foreground keeps ticking or not.
type Countdown struct {
	mu       sync.Mutex
	state    domain.TimerState
	clock    domain.Clock
	alarms   domain.AlarmScheduler
	notifier domain.Notifier
	store    domain.TimerStore
	rec      Recorder
	log      *logger.Logger
}

// NewCountdown creates an idle countdown of duration d. An empty id gets a
// random one.
func NewCountdown(id, label string, d time.Duration, alarms domain.AlarmScheduler, notifier domain.Notifier, log *logger.Logger, opts ...CountdownOption) *Countdown {
	if id == "" {
		id = uuid.NewString()
	}
	c := newCountdown(domain.TimerState{
		ID:        id,
		Label:     label,
		Duration:  d,
		Remaining: d,
		Status:    domain.TimerIdle,
	}, alarms, notifier, log, opts)
	c.state.UpdatedAt = c.clock.Now()
	return c
}

func newCountdown(state domain.TimerState, alarms domain.AlarmScheduler, notifier domain.Notifier, log *logger.Logger, opts []CountdownOption) *Countdown {
	c := &Countdown{
		state:    state,
		clock:    domain.SystemClock{},
		alarms:   alarms,
		notifier: notifier,
		rec:      nopRecorder{},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore rebuilds the countdown stored under id. A timer that was running
// when the previous process exited either has its alarm rescheduled or,
// if the deadline already passed, finishes now and notifies.
func Restore(ctx context.Context, store domain.TimerStore, id string, alarms domain.AlarmScheduler, notifier domain.Notifier, log *logger.Logger, opts ...CountdownOption) (*Countdown, error) {
	state, err := store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading timer %s: %w", id, err)
	}

	opts = append([]CountdownOption{WithStore(store)}, opts...)
	c := newCountdown(*state, alarms, notifier, log, opts)

	if c.state.Status != domain.TimerRunning {
		log.Debug("restored timer %s (%s, %s left)", id, c.state.Status, c.state.Remaining)
		return c, nil
	}

	if !c.clock.Now().Before(c.state.Deadline) {
		log.Info("timer %s expired while not running", id)
		return c, c.finish(ctx, PathRestore)
	}

	c.mu.Lock()
	c.scheduleLocked(ctx)
	c.mu.Unlock()
	log.Info("restored running timer %s, due %s", id, c.state.Deadline.Format(time.TimeOnly))
	return c, nil
}

// ID returns the timer id.
func (c *Countdown) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ID
}

// Snapshot returns a copy of the state with Remaining brought up to date.
func (c *Countdown) Snapshot() domain.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Status == domain.TimerRunning {
		s.Remaining = c.remainingLocked()
	}
	return s
}

// Start begins counting down from Idle, or restarts a Finished timer from
// its full duration.
func (c *Countdown) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Status {
	case domain.TimerIdle:
	case domain.TimerFinished:
		c.state.Remaining = c.state.Duration
	default:
		return c.badTransition("start")
	}
	if c.state.Remaining <= 0 {
		return fmt.Errorf("%w: timer %s has no duration", domain.ErrInvalidTransition, c.state.ID)
	}

	c.clearNagsLocked()
	c.state.Status = domain.TimerRunning
	c.state.Deadline = c.clock.Now().Add(c.state.Remaining)
	c.scheduleLocked(ctx)

	c.log.Info("timer %s started (%s)", c.state.ID, c.state.Remaining)
	return c.commitLocked(ctx)
}

// Pause freezes the remaining time of a running timer.
func (c *Countdown) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != domain.TimerRunning {
		return c.badTransition("pause")
	}

	rem := c.remainingLocked()
	if rem <= 0 {
		// The deadline beat the pause; let the tick or alarm finish it.
		return c.badTransition("pause")
	}

	c.alarms.Cancel(c.state.ID)
	c.state.Remaining = rem
	c.state.Status = domain.TimerPaused
	c.state.Deadline = time.Time{}

	c.log.Info("timer %s paused (%s left)", c.state.ID, rem)
	return c.commitLocked(ctx)
}

// Resume continues a paused timer from where it was frozen.
func (c *Countdown) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != domain.TimerPaused {
		return c.badTransition("resume")
	}

	c.state.Status = domain.TimerRunning
	c.state.Deadline = c.clock.Now().Add(c.state.Remaining)
	c.scheduleLocked(ctx)

	c.log.Info("timer %s resumed (%s left)", c.state.ID, c.state.Remaining)
	return c.commitLocked(ctx)
}

// Reset returns to Idle with the full duration. Valid from any state.
func (c *Countdown) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.log.Info("timer %s reset (%s)", c.state.ID, c.state.Duration)
	return c.commitLocked(ctx)
}

// Retarget resets the timer to a new duration and label, as happens when a
// new conversion replaces the previous one.
func (c *Countdown) Retarget(ctx context.Context, d time.Duration, label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Duration = d
	if label != "" {
		c.state.Label = label
	}
	c.resetLocked()
	c.log.Info("timer %s retargeted to %s (%s)", c.state.ID, d, c.state.Label)
	return c.commitLocked(ctx)
}

// Tick is the foreground observation of a running timer. It finishes the
// timer once the deadline is reached and reports whether it did.
func (c *Countdown) Tick(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state.Status != domain.TimerRunning {
		c.mu.Unlock()
		return false, nil
	}
	rem := c.remainingLocked()
	c.state.Remaining = rem
	c.mu.Unlock()

	if rem > 0 {
		return false, nil
	}
	err := c.finish(ctx, PathTick)
	if errors.Is(err, errAlreadyFinished) {
		return false, nil
	}
	return err == nil, err
}

// OnAlarm is the background alarm callback. It finishes the timer if it is
// still running and its deadline has been reached.
func (c *Countdown) OnAlarm(ctx context.Context) {
	c.mu.Lock()
	running := c.state.Status == domain.TimerRunning
	due := running && c.remainingLocked() <= 0
	if running && !due {
		// Fired early, e.g. the wall clock was set back. Re-arm.
		c.scheduleLocked(ctx)
		c.log.Debug("alarm for timer %s fired early, re-armed for %s", c.state.ID, c.state.Deadline.Format(time.TimeOnly))
	} else if !running {
		c.log.Debug("alarm for timer %s ignored (status=%s)", c.state.ID, c.state.Status)
	}
	c.mu.Unlock()

	if !due {
		return
	}
	if err := c.finish(ctx, PathAlarm); err != nil && !errors.Is(err, errAlreadyFinished) {
		c.log.Error("finishing timer from alarm: %v", err)
	}
}

// Dismiss acknowledges a finished timer so the supervisor stops nagging.
func (c *Countdown) Dismiss(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != domain.TimerFinished {
		return c.badTransition("dismiss")
	}
	if c.state.Dismissed {
		return nil
	}
	c.state.Dismissed = true
	c.log.Info("timer %s dismissed", c.state.ID)
	return c.commitLocked(ctx)
}

var errAlreadyFinished = errors.New("timer already finished")

// finish moves a running timer to Finished and delivers the completion
// signal. Only the first caller wins; later ones get errAlreadyFinished.
func (c *Countdown) finish(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.state.Status != domain.TimerRunning {
		c.mu.Unlock()
		return errAlreadyFinished
	}

	c.alarms.Cancel(c.state.ID)
	now := c.clock.Now()
	c.state.Status = domain.TimerFinished
	c.state.Remaining = 0
	c.state.Deadline = time.Time{}
	c.state.LastNotified = now
	c.state.EscalationLevel = 1
	label := c.state.Label
	id := c.state.ID
	saveErr := c.commitLocked(ctx)
	c.mu.Unlock()

	c.rec.RecordTimerCompletion(path)
	c.log.Info("timer %s finished (via %s)", id, path)

	if err := c.notifier.NotifyUrgent(ctx, escalationMessage(label, 0)); err != nil {
		c.log.Error("notifying timer completion: %v", err)
	}
	return saveErr
}

func (c *Countdown) resetLocked() {
	c.alarms.Cancel(c.state.ID)
	c.clearNagsLocked()
	c.state.Status = domain.TimerIdle
	c.state.Remaining = c.state.Duration
	c.state.Deadline = time.Time{}
}

func (c *Countdown) clearNagsLocked() {
	c.state.WarnedAlmost = false
	c.state.LastRemindedAt = time.Time{}
	c.state.LastNotified = time.Time{}
	c.state.EscalationLevel = 0
	c.state.Dismissed = false
}

// scheduleLocked arms the alarm for the current deadline.
func (c *Countdown) scheduleLocked(ctx context.Context) {
	c.alarms.Schedule(c.state.ID, c.state.Deadline, func() {
		c.OnAlarm(ctx)
	})
}

// remainingLocked is the whole-second time left before the deadline,
// rounded up so a display never shows 0:00 while time remains.
func (c *Countdown) remainingLocked() time.Duration {
	rem := c.state.Deadline.Sub(c.clock.Now())
	if rem <= 0 {
		return 0
	}
	if frac := rem % time.Second; frac != 0 {
		rem += time.Second - frac
	}
	return rem
}

// commitLocked records a transition and persists the current state.
func (c *Countdown) commitLocked(ctx context.Context) error {
	c.rec.RecordTimerTransition(c.state.Status)
	return c.saveLocked(ctx)
}

// saveLocked stamps and persists the current state without counting a
// transition. Reminder and escalation bookkeeping goes through here.
func (c *Countdown) saveLocked(ctx context.Context) error {
	c.state.UpdatedAt = c.clock.Now()
	if c.store == nil {
		return nil
	}
	snapshot := c.state
	if err := c.store.Save(ctx, &snapshot); err != nil {
		return fmt.Errorf("saving timer %s: %w", c.state.ID, err)
	}
	return nil
}

func (c *Countdown) badTransition(op string) error {
	return fmt.Errorf("%w: cannot %s a %s timer", domain.ErrInvalidTransition, op, c.state.Status)
}
