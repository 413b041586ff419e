package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"stockcli/pkg/contracts/domain"
)

// EngineConfig parameterizes a run. It replaces per-variant constants: one
// engine serves every ledger layout.
type EngineConfig struct {
	Normalizer NormalizerConfig
	Exclusions []Rule

	// EmptyStreakLimit stops the fold after that many consecutive
	// structurally empty rows. It is a performance heuristic for sheets with
	// a long formatted tail; rows after the streak are never read. 0 (the
	// default) reads the whole source.
	EmptyStreakLimit int
}

// DefaultEngineConfig returns the stock ledger configuration with early exit
// disabled.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Normalizer: DefaultNormalizerConfig(),
		Exclusions: DefaultRules(),
	}
}

// Engine runs normalization, filtering, aggregation and roll-up over a
// RowSource.
type Engine struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	normalizer *Normalizer
	filter     *Filter
	limit      int
}

// NewEngine creates an engine. A nil logger uses slog.Default and a nil
// tracer disables spans.
func NewEngine(logger *slog.Logger, tracer trace.Tracer, cfg EngineConfig) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	filter, err := NewFilter(cfg.Exclusions)
	if err != nil {
		return nil, err
	}

	limit := cfg.EmptyStreakLimit
	if limit < 0 {
		limit = 0
	}

	return &Engine{
		logger:     logger,
		tracer:     tracer,
		normalizer: NewNormalizer(cfg.Normalizer),
		filter:     filter,
		limit:      limit,
	}, nil
}

// Run consumes src and returns the completed Summary. The caller keeps
// ownership of src and closes it.
func (e *Engine) Run(ctx context.Context, src RowSource) (*domain.Summary, error) {
	agg, stats, err := e.fold(ctx, src)
	if err != nil {
		return nil, err
	}

	_, span := e.tracer.Start(ctx, "totalize")
	locations, global := Totalize(agg.Groups())
	span.SetAttributes(
		attribute.Int("groups", len(agg.Groups())),
		attribute.Int("locations", len(locations)),
	)
	span.End()

	summary := &domain.Summary{
		Groups:         agg.Groups(),
		Locations:      locations,
		Global:         global,
		LatestMutation: agg.Latest(),
		Stats:          stats,
	}

	e.logger.InfoContext(ctx, "stock summary built",
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("rows_empty", stats.EmptyRows),
		slog.Int("rows_excluded", stats.ExcludedRows),
		slog.Int("records", stats.Records),
		slog.Int("groups", len(summary.Groups)),
		slog.Int("locations", len(summary.Locations)),
		slog.String("latest_mutation", summary.LatestMutation.String()))

	return summary, nil
}

// Summarize runs the engine over rows held in memory.
func (e *Engine) Summarize(ctx context.Context, rows []domain.RawRow) (*domain.Summary, error) {
	return e.Run(ctx, NewSliceSource(rows))
}

func (e *Engine) fold(ctx context.Context, src RowSource) (agg *Aggregator, stats domain.RunStats, err error) {
	ctx, span := e.tracer.Start(ctx, "read+aggregate")
	defer func() {
		span.SetAttributes(
			attribute.Int("rows_read", stats.RowsRead),
			attribute.Int("records", stats.Records),
			attribute.Bool("stopped_early", stats.StoppedEarly),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	agg = NewAggregator()
	streak := 0

	for src.Next() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.RowsRead++

		rec, ok := e.normalizer.Normalize(src.Row())
		if !ok {
			stats.EmptyRows++
			streak++
			if e.limit > 0 && streak >= e.limit {
				stats.StoppedEarly = true
				e.logger.WarnContext(ctx, "stopping after consecutive empty rows",
					slog.Int("empty_streak_limit", e.limit),
					slog.Int("rows_read", stats.RowsRead))
				break
			}
			continue
		}
		streak = 0

		if e.filter.Excluded(rec.Location) {
			stats.ExcludedRows++
			e.logger.DebugContext(ctx, "row excluded",
				slog.String("identifier", rec.Identifier),
				slog.String("location", rec.Location))
			continue
		}

		agg.Add(rec)
	}
	if err := src.Err(); err != nil {
		return nil, stats, fmt.Errorf("read rows: %w", err)
	}

	stats.Records = agg.Records()
	return agg, stats, nil
}
