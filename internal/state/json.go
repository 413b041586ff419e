package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"sync"

	"stockcli/internal/errors"
	"stockcli/internal/files"
)

// JSONStore keeps all entries in one JSON object keyed by gate key. Every Put
// rewrites the file atomically.
type JSONStore struct {
	path   string
	files  *files.Manager
	logger *slog.Logger
	mu     sync.Mutex
}

// NewJSONStore creates a store backed by path. The file is created on the
// first Put.
func NewJSONStore(path string, manager *files.Manager, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	return &JSONStore{path: path, files: manager, logger: logger}
}

func (s *JSONStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := entries[key]
	return e, ok, nil
}

func (s *JSONStore) Put(ctx context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	entries[key] = entry

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to encode state", err)
	}
	return s.files.WriteFile(s.path, append(data, '\n'))
}

func (s *JSONStore) Close() error { return nil }

// load reads the state file. A missing file is empty state; an unreadable
// one is reported and then treated as empty, so the next run rebuilds it.
func (s *JSONStore) load(ctx context.Context) (map[string]Entry, error) {
	entries := make(map[string]Entry)

	data, err := s.files.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.WarnContext(ctx, "state file is corrupt, ignoring it",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return make(map[string]Entry), nil
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	return entries, nil
}
