package state

import (
	"context"
	"log/slog"
	"time"

	"stockcli/internal/files"
)

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// Decision is the outcome of a gate check.
type Decision struct {
	Key       string
	Signature string
	// Unchanged is set when the input matches the last successful run and
	// the run was not forced.
	Unchanged bool
}

// Gate skips work whose input has not changed since the last successful run.
// The signature is recorded only after the caller reports success, so a
// failed run is retried next time.
type Gate struct {
	store  Store
	logger *slog.Logger
	force  bool
}

// NewGate creates a gate over store. A nil store disables gating.
func NewGate(logger *slog.Logger, store Store, force bool) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, logger: logger, force: force}
}

// Check hashes input and compares it with the entry stored under key.
func (g *Gate) Check(ctx context.Context, key, input string) (Decision, error) {
	sig, err := files.Signature(input)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{Key: key, Signature: sig}

	if g.store == nil {
		return d, nil
	}

	prev, ok, err := g.store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	if ok && prev.Signature == sig {
		if g.force {
			g.logger.InfoContext(ctx, "input unchanged, running anyway (forced)", slog.String("key", key))
			return d, nil
		}
		d.Unchanged = true
		g.logger.InfoContext(ctx, "input unchanged since last run, skipping",
			slog.String("key", key),
			slog.String("previous_run_id", prev.RunID),
			slog.Time("previous_run_at", prev.UpdatedAt))
	}
	return d, nil
}

// Commit records d as the last successful run.
func (g *Gate) Commit(ctx context.Context, d Decision, runID string) error {
	if g.store == nil {
		return nil
	}
	err := g.store.Put(ctx, d.Key, Entry{Signature: d.Signature, RunID: runID, UpdatedAt: now()})
	if err != nil {
		return err
	}
	g.logger.DebugContext(ctx, "run recorded", slog.String("key", d.Key), slog.String("signature", d.Signature))
	return nil
}
