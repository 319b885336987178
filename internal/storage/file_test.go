package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

func TestFileStoreCRUD(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	first, err := NewFileStore(dir, log)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	state := &domain.TimerState{
		ID:        "cook",
		Label:     "Raw Meats",
		Duration:  25 * time.Minute,
		Remaining: 23 * time.Minute,
		Status:    domain.TimerPaused,
	}
	if err := first.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A second store over the same directory stands in for a new process.
	second, err := NewFileStore(dir, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	loaded, err := second.Load(ctx, "cook")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if loaded.Status != domain.TimerPaused || loaded.Remaining != 23*time.Minute {
		t.Fatalf("unexpected state after reopen: %+v", loaded)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if _, err := store.List(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt state file")
	}
}
