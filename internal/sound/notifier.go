package sound

import (
	"context"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*AlarmNotifier)(nil)

// Alarm plays the completion tone. *Player satisfies it.
type Alarm interface {
	PlayAlarm() error
}

// AlarmNotifier wraps a text notifier and also sounds the alarm for urgent
// messages. The tone plays in the background so delivery never blocks on
// the audio device.
type AlarmNotifier struct {
	text  domain.Notifier
	alarm Alarm
	log   *logger.Logger
	done  chan struct{} // signalled after each tone, for tests
}

// NewAlarmNotifier creates a notifier that prints and rings.
func NewAlarmNotifier(text domain.Notifier, alarm Alarm, log *logger.Logger) *AlarmNotifier {
	return &AlarmNotifier{
		text:  text,
		alarm: alarm,
		log:   log,
	}
}

// Notify passes the message through to the text notifier.
func (n *AlarmNotifier) Notify(ctx context.Context, message string) error {
	return n.text.Notify(ctx, message)
}

// NotifyUrgent prints the message and starts the alarm tone.
func (n *AlarmNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	go func() {
		if err := n.alarm.PlayAlarm(); err != nil {
			n.log.Error("playing alarm tone: %v", err)
		}
		if n.done != nil {
			n.done <- struct{}{}
		}
	}()
	return nil
}
