package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hammamikhairi/airfryer/internal/domain"
	"github.com/hammamikhairi/airfryer/internal/logger"
)

// Compile-time interface check.
var _ domain.TimerStore = (*FileStore)(nil)

// StateFileName is the document FileStore keeps inside its directory.
const StateFileName = "timers.json"

// FileStore keeps all timers in a single JSON document so a countdown
// survives the process exiting. Every write replaces the file atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

type stateDoc struct {
	Version int                  `json:"version"`
	Timers  []*domain.TimerState `json:"timers"`
}

// NewFileStore creates a store rooted at dir, creating dir if needed.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, StateFileName), log: log}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Save persists a timer. Overwrites if it already exists.
func (s *FileStore) Save(ctx context.Context, state *domain.TimerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.read()
	if err != nil {
		return err
	}
	cp := *state
	timers[state.ID] = &cp

	s.log.Debug("saving timer %s (status=%s) to %s", state.ID, state.Status, s.path)
	return s.write(timers)
}

// Load retrieves a timer by ID.
func (s *FileStore) Load(ctx context.Context, id string) (*domain.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.read()
	if err != nil {
		return nil, err
	}
	ts, ok := timers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ts, nil
}

// Delete removes a timer by ID.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := timers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(timers, id)
	s.log.Debug("deleted timer %s", id)
	return s.write(timers)
}

// List returns all stored timers ordered by ID.
func (s *FileStore) List(ctx context.Context) ([]*domain.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.TimerState, 0, len(timers))
	for _, ts := range timers {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// read loads the document. A missing file is an empty store.
func (s *FileStore) read() (map[string]*domain.TimerState, error) {
	timers := make(map[string]*domain.TimerState)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return timers, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	for _, ts := range doc.Timers {
		if ts != nil && ts.ID != "" {
			timers[ts.ID] = ts
		}
	}
	return timers, nil
}

func (s *FileStore) write(timers map[string]*domain.TimerState) error {
	doc := stateDoc{Version: 1, Timers: make([]*domain.TimerState, 0, len(timers))}
	for _, ts := range timers {
		doc.Timers = append(doc.Timers, ts)
	}
	sort.Slice(doc.Timers, func(i, j int) bool { return doc.Timers[i].ID < doc.Timers[j].ID })

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding timers: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".timers-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
