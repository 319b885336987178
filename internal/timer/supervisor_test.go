package timer

import (
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/airfryer/internal/domain"
)

func TestSupervisorFinishesTimer(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(2 * time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(3 * time.Minute)

	// Create supervisor with fast tick.
	sup := New(f.notifier, f.log, WithTickInterval(20*time.Millisecond))
	sup.Watch(c)
	sup.Start(f.ctx)
	defer sup.Stop()

	// Wait for the timer to fire.
	time.Sleep(150 * time.Millisecond)

	if f.notifier.urgentCount() == 0 {
		t.Fatal("expected at least one urgent notification for finished timer")
	}
	if s := c.Snapshot(); s.Status != domain.TimerFinished {
		t.Fatalf("expected timer finished, got %s", s.Status)
	}
}

func TestSupervisorRespectsMaxEscalation(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Minute)

	sup := New(f.notifier, f.log, WithNotifyCooldown(0), WithMaxEscalation(3))
	for i := 0; i < 10; i++ {
		sup.process(f.ctx, c)
	}

	// One completion alert plus escalation levels 1..3.
	if n := f.notifier.urgentCount(); n != 4 {
		t.Fatalf("expected 4 urgent notifications, got %d", n)
	}
}

func TestSupervisorCooldown(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Minute)

	sup := New(f.notifier, f.log, WithNotifyCooldown(15*time.Second))
	sup.process(f.ctx, c)
	sup.process(f.ctx, c)
	if n := f.notifier.urgentCount(); n != 1 {
		t.Fatalf("expected only the completion alert inside cooldown, got %d", n)
	}

	f.clock.Advance(15 * time.Second)
	sup.process(f.ctx, c)
	if n := f.notifier.urgentCount(); n != 2 {
		t.Fatalf("expected a nag after cooldown, got %d", n)
	}
	f.notifier.mu.Lock()
	last := f.notifier.urgent[len(f.notifier.urgent)-1]
	f.notifier.mu.Unlock()
	if !strings.Contains(last, "Check the basket") {
		t.Fatalf("unexpected escalation message %q", last)
	}
}

func TestSupervisorStopsAfterDismiss(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Minute)

	sup := New(f.notifier, f.log, WithNotifyCooldown(15*time.Second))
	sup.process(f.ctx, c)
	if err := c.Dismiss(f.ctx); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	f.clock.Advance(time.Minute)
	sup.process(f.ctx, c)
	sup.process(f.ctx, c)

	if n := f.notifier.urgentCount(); n != 1 {
		t.Fatalf("expected no nags after dismiss, got %d urgent", n)
	}
}

func TestSupervisorAlmostDoneOnce(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(10 * time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	sup := New(f.notifier, f.log, WithAlmostDoneThreshold(time.Minute), WithReminderInterval(0))
	sup.process(f.ctx, c)
	if f.notifier.messageCount() != 0 {
		t.Fatal("unexpected early message")
	}

	f.clock.Advance(9*time.Minute + 30*time.Second)
	sup.process(f.ctx, c)
	sup.process(f.ctx, c)

	if n := f.notifier.messageCount(); n != 1 {
		t.Fatalf("expected one almost-done warning, got %d", n)
	}
	f.notifier.mu.Lock()
	msg := f.notifier.messages[0]
	f.notifier.mu.Unlock()
	if !strings.Contains(msg, "almost done") || !strings.Contains(msg, "30 seconds") {
		t.Fatalf("unexpected warning %q", msg)
	}
}

func TestSupervisorReminders(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(20 * time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	sup := New(f.notifier, f.log, WithReminderInterval(5*time.Minute), WithAlmostDoneThreshold(time.Minute))

	f.clock.Advance(4 * time.Minute)
	sup.process(f.ctx, c)
	if f.notifier.messageCount() != 0 {
		t.Fatal("reminder sent before the interval elapsed")
	}

	f.clock.Advance(time.Minute)
	sup.process(f.ctx, c)
	sup.process(f.ctx, c)
	if n := f.notifier.messageCount(); n != 1 {
		t.Fatalf("expected one reminder, got %d", n)
	}

	f.clock.Advance(5 * time.Minute)
	sup.process(f.ctx, c)
	if n := f.notifier.messageCount(); n != 2 {
		t.Fatalf("expected a second reminder, got %d", n)
	}
}

func TestSupervisorSkipsPausedTimers(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(10 * time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Minute)
	if err := c.Pause(f.ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}

	sup := New(f.notifier, f.log, WithReminderInterval(time.Minute))
	f.clock.Advance(time.Hour)
	sup.process(f.ctx, c)

	if f.notifier.messageCount()+f.notifier.urgentCount() > 0 {
		t.Fatal("expected no notifications for a paused timer")
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{time.Second, "1 second"},
		{45 * time.Second, "45 seconds"},
		{89 * time.Second, "1 minute"},
		{90 * time.Second, "2 minutes"},
		{23 * time.Minute, "23 minutes"},
	}
	for _, tt := range tests {
		if got := formatRemaining(tt.in); got != tt.want {
			t.Errorf("formatRemaining(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSupervisorPersistsEscalation(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(time.Minute)

	sup := New(f.notifier, f.log, WithNotifyCooldown(0), WithMaxEscalation(3))
	for i := 0; i < 10; i++ {
		sup.process(f.ctx, c)
	}

	stored, err := f.store.Load(f.ctx, "cook")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.EscalationLevel != 4 {
		t.Fatalf("expected persisted escalation level 4, got %d", stored.EscalationLevel)
	}

	// A later process picks the timer up hours afterwards and stays quiet.
	f.clock.Advance(5 * time.Hour)
	notifier := &mockNotifier{}
	restored, err := Restore(f.ctx, f.store, "cook", newFakeScheduler(), notifier, f.log, WithClock(f.clock))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	next := New(notifier, f.log, WithNotifyCooldown(0), WithMaxEscalation(3))
	for i := 0; i < 5; i++ {
		next.process(f.ctx, restored)
	}
	if n := notifier.urgentCount(); n != 0 {
		t.Fatalf("expected no nags after the cap was reached, got %d", n)
	}
}

func TestSupervisorPersistsReminders(t *testing.T) {
	f := newFixture(t)
	c := f.countdown(20 * time.Minute)
	if err := c.Start(f.ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.Advance(5 * time.Minute)

	sup := New(f.notifier, f.log, WithReminderInterval(5*time.Minute))
	sup.process(f.ctx, c)
	if f.notifier.messageCount() != 1 {
		t.Fatalf("expected one reminder, got %d", f.notifier.messageCount())
	}

	stored, err := f.store.Load(f.ctx, "cook")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !stored.LastRemindedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected reminder time persisted, got %s", stored.LastRemindedAt)
	}
}
