package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// exerciseStore runs the same CRUD sequence against any TimerStore.
func exerciseStore(t *testing.T, store domain.TimerStore) {
	t.Helper()
	ctx := context.Background()

	deadline := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	state := &domain.TimerState{
		ID:        "timer-1",
		Label:     "Frozen Foods",
		Duration:  10 * time.Minute,
		Remaining: 7 * time.Minute,
		Status:    domain.TimerRunning,
		Deadline:  deadline,
	}

	// Save.
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	state.Status = domain.TimerPaused

	// Load.
	loaded, err := store.Load(ctx, "timer-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Status != domain.TimerRunning {
		t.Fatalf("expected stored status running, got %s", loaded.Status)
	}
	if !loaded.Deadline.Equal(deadline) {
		t.Fatalf("expected deadline %s, got %s", deadline, loaded.Deadline)
	}
	if loaded.Remaining != 7*time.Minute {
		t.Fatalf("expected remaining 7m, got %s", loaded.Remaining)
	}

	// Load nonexistent.
	_, err = store.Load(ctx, "nonexistent")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// List.
	if err := store.Save(ctx, &domain.TimerState{ID: "timer-0", Status: domain.TimerIdle}); err != nil {
		t.Fatalf("save second: %v", err)
	}
	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "timer-0" {
		t.Fatalf("expected 2 timers ordered by id, got %+v", all)
	}

	// Delete.
	if err := store.Delete(ctx, "timer-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = store.Load(ctx, "timer-1")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Delete nonexistent.
	if err := store.Delete(ctx, "nonexistent"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	exerciseStore(t, NewMemoryStore(logger.New(logger.LevelOff, nil)))
}
