package domain

import (
	"context"
	"time"
)

// Clock supplies wall-clock time. Tests inject a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// AlarmScheduler fires a callback at a wall-clock instant, independent of
// whether anything is ticking in the foreground. Scheduling an id that is
// already pending replaces it.
type AlarmScheduler interface {
	Schedule(id string, at time.Time, fire func())
	Cancel(id string)
}

// TimerStore persists countdowns so they survive process restarts.
// Implementations can be in-memory, file-based, or any other backend.
type TimerStore interface {
	Save(ctx context.Context, state *TimerState) error
	Load(ctx context.Context, id string) (*TimerState, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*TimerState, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout, play an alarm tone, or both.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
