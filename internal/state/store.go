package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stockcli/internal/config"
	"stockcli/internal/errors"
	"stockcli/internal/files"
)

// Entry is the last successful run recorded under a gate key.
type Entry struct {
	Signature string    `json:"signature"`
	RunID     string    `json:"run_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists one Entry per gate key.
type Store interface {
	// Get returns the entry for key. ok is false when nothing was recorded.
	Get(ctx context.Context, key string) (entry Entry, ok bool, err error)
	// Put replaces the entry for key.
	Put(ctx context.Context, key string, entry Entry) error
	Close() error
}

// Backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the store configured by cfg, stored at path. A disabled state
// section yields a nil Store, which Gate treats as "always run".
func Open(cfg config.StateConfig, path string, logger *slog.Logger) (Store, error) {
	if cfg.Disabled {
		return nil, nil
	}
	switch cfg.Backend {
	case "", BackendJSON:
		return NewJSONStore(path, files.NewManager(logger), logger), nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown state backend %q", cfg.Backend), nil)
	}
}
