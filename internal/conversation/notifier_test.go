package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/airfryer/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var lines []string
	printFn := func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	}
	ctx := context.Background()

	n := NewCLINotifier(logger.New(logger.LevelOff, nil), printFn, WithBell())
	if err := n.Notify(ctx, "[Timer] 5 minutes remaining."); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "[Timer] Frozen Foods is done."); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], bell) {
		t.Fatal("normal notification should not ring the bell")
	}
	if !strings.HasPrefix(lines[1], bell) || !strings.Contains(lines[1], red) {
		t.Fatalf("expected bell and red for urgent, got %q", lines[1])
	}
}
