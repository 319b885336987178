package domain

import "time"

// TimerState is the persisted form of a cook-along countdown.
type TimerState struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`
	// Remaining is authoritative while Idle or Paused. While Running the
	// Deadline is, and Remaining is the value last observed.
	Remaining time.Duration `json:"remaining"`
	Status    TimerStatus   `json:"status"`
	Deadline  time.Time     `json:"deadline,omitzero"`
	UpdatedAt time.Time     `json:"updated_at"`

	WarnedAlmost    bool      `json:"warned_almost,omitempty"`
	LastRemindedAt  time.Time `json:"last_reminded_at,omitzero"`
	LastNotified    time.Time `json:"last_notified,omitzero"`
	EscalationLevel int       `json:"escalation_level,omitempty"`
	Dismissed       bool      `json:"dismissed,omitempty"`
}

// TimerStatus represents the state of a countdown.
type TimerStatus int

const (
	TimerIdle TimerStatus = iota
	TimerRunning
	TimerPaused
	TimerFinished
)

// String returns a human-readable timer status.
func (t TimerStatus) String() string {
	switch t {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerFinished:
		return "finished"
	default:
		return "unknown"
	}
}
