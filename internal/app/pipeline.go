package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockcli/internal/config"
	"stockcli/internal/dataprocessing"
	"stockcli/internal/errors"
	"stockcli/internal/exporter"
	"stockcli/internal/files"
	"stockcli/internal/infrastructure"
	"stockcli/internal/state"
	"stockcli/pkg/contracts/domain"
)

// Result describes what a command did
type Result struct {
	RunID  string
	Source string
	// Skipped is set when the input was unchanged since the last successful
	// run.
	Skipped bool
	// NoData is set when no record survived filtering.
	NoData bool
	// Rows is the number of data rows written by a range dump.
	Rows int
}

// ExportStock summarizes the ledger and writes the stock table and digest.
// Outputs are written, and the input signature recorded, only when the
// whole run succeeds.
func (a *Application) ExportStock(ctx context.Context) (res Result, err error) {
	ctx, span := a.start(ctx, "export")
	defer func() { a.finish(ctx, span, res, err) }()
	res.RunID = infrastructure.GetRunID(ctx)

	source, err := a.resolveSource()
	if err != nil {
		return res, err
	}
	res.Source = source

	gate, decision, store, err := a.checkGate(ctx, config.GateKeyStock, source)
	if err != nil {
		return res, err
	}
	if store != nil {
		defer store.Close()
	}
	if decision.Unchanged {
		res.Skipped = true
		return res, nil
	}

	summary, err := a.summarize(ctx, source)
	if err != nil {
		return res, err
	}
	a.Metrics.ObserveSummary(summary)
	res.NoData = summary.Empty()

	if err := a.Validator.ValidateOutputDirectory(a.Paths.ReportsDir); err != nil {
		return res, err
	}

	table := exporter.NewTableRenderer(a.component("table"), a.Tracing.Tracer).Render(ctx, summary)
	if err := a.writeTable(ctx, table); err != nil {
		return res, err
	}
	if err := a.publishDigest(ctx, domain.ViewOf(summary)); err != nil {
		return res, err
	}

	if res.NoData {
		a.Logger.WarnContext(ctx, "Export finished without data", slog.String("reason", errors.ErrNoData.Error()))
	}
	return res, gate.Commit(ctx, decision, res.RunID)
}

// DigestFromTable re-reads the stock table and publishes the digest. A
// missing table is a NOT_FOUND error.
func (a *Application) DigestFromTable(ctx context.Context) (res Result, err error) {
	ctx, span := a.start(ctx, "digest")
	defer func() { a.finish(ctx, span, res, err) }()
	res.RunID = infrastructure.GetRunID(ctx)
	res.Source = a.Paths.TableFile

	if a.Config.Output.Format != "csv" {
		return res, errors.NewConfigError("the digest is read from a csv stock table, set output.format to csv", nil)
	}

	view, err := dataprocessing.NewStockTableReader(a.component("table")).ReadFile(ctx, a.Paths.TableFile)
	if err != nil {
		return res, err
	}
	res.NoData = view.Empty()
	return res, a.publishDigest(ctx, view)
}

// DumpRange copies the configured sheet range to CSV, gated by its own key
func (a *Application) DumpRange(ctx context.Context) (res Result, err error) {
	ctx, span := a.start(ctx, "dump")
	defer func() { a.finish(ctx, span, res, err) }()
	res.RunID = infrastructure.GetRunID(ctx)

	opts, err := DumpOptions(a.Config)
	if err != nil {
		return res, err
	}

	source, err := a.resolveSource()
	if err != nil {
		return res, err
	}
	res.Source = source
	if err := a.Validator.ValidateWorkbook(source); err != nil {
		return res, err
	}

	gate, decision, store, err := a.checkGate(ctx, config.GateKeyDump, source)
	if err != nil {
		return res, err
	}
	if store != nil {
		defer store.Close()
	}
	if decision.Unchanged {
		res.Skipped = true
		return res, nil
	}

	src, err := dataprocessing.OpenWorkbook(source, opts)
	if err != nil {
		return res, err
	}
	defer src.Close()

	dumper := exporter.NewRangeDumper(a.component("dump"), a.Files, exporter.DefaultDumpInvalidIdentifiers())
	res.Rows, err = dumper.DumpFile(ctx, src, a.Paths.DumpFile)
	if err != nil {
		return res, err
	}
	res.NoData = res.Rows == 0
	return res, gate.Commit(ctx, decision, res.RunID)
}

func (a *Application) start(ctx context.Context, command string) (context.Context, trace.Span) {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := a.Tracing.Tracer.Start(ctx, command,
		trace.WithAttributes(attribute.String("run_id", infrastructure.GetRunID(ctx))))
	a.Logger.InfoContext(ctx, "Run started",
		slog.String("command", command),
		slog.String("version", config.AppVersion))
	return ctx, span
}

func (a *Application) finish(ctx context.Context, span trace.Span, res Result, err error) {
	defer span.End()

	span.SetAttributes(
		attribute.Bool("skipped", res.Skipped),
		attribute.Bool("no_data", res.NoData),
	)
	a.Metrics.Finish(a.started, res.Skipped, err == nil && !res.Skipped)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Run failed",
			slog.String("source", res.Source),
			slog.Duration("elapsed", time.Since(a.started)))
		return
	}
	a.Logger.InfoContext(ctx, "Run finished",
		slog.String("source", res.Source),
		slog.Bool("skipped", res.Skipped),
		slog.Bool("no_data", res.NoData),
		slog.Duration("elapsed", time.Since(a.started)))
}

// resolveSource picks the input file: the configured path itself, or the
// newest workbook in it when it is a directory.
func (a *Application) resolveSource() (string, error) {
	discovery := files.NewDiscovery(config.WorkbookExtension, config.LockFilePrefix)
	source, err := discovery.Resolve(a.Paths.Source)
	if err != nil {
		return "", err
	}
	if source != a.Paths.Source {
		a.Logger.Info("Using most recent workbook", slog.String("file", source), slog.String("dir", a.Paths.Source))
	}
	return source, nil
}

func (a *Application) checkGate(ctx context.Context, key, source string) (*state.Gate, state.Decision, state.Store, error) {
	store, err := a.OpenState()
	if err != nil {
		return nil, state.Decision{}, nil, err
	}
	gate := state.NewGate(a.component("gate"), store, a.force)
	decision, err := gate.Check(ctx, key, source)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, state.Decision{}, nil, err
	}
	return gate, decision, store, nil
}

func (a *Application) summarize(ctx context.Context, source string) (*domain.Summary, error) {
	if err := a.Validator.ValidateSource(source, a.Config.Source.Format); err != nil {
		return nil, err
	}

	engineCfg, err := EngineConfig(a.Config)
	if err != nil {
		return nil, err
	}
	engine, err := dataprocessing.NewEngine(a.component("engine"), a.Tracing.Tracer, engineCfg)
	if err != nil {
		return nil, err
	}

	var src dataprocessing.RowSource
	switch a.Config.Source.Format {
	case "csv":
		src, err = dataprocessing.OpenCSV(source, a.Config.Source.MinRow, a.Config.Source.MaxRow)
	default:
		var opts dataprocessing.XLSXOptions
		if opts, err = LedgerOptions(a.Config); err == nil {
			src, err = dataprocessing.OpenWorkbook(source, opts)
		}
	}
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return engine.Run(ctx, src)
}

func (a *Application) writeTable(ctx context.Context, table exporter.Table) error {
	switch a.Config.Output.Format {
	case "xlsx":
		return exporter.NewXLSXWriter(a.component("xlsx"), a.Files).WriteTable(ctx, a.Paths.TableFile, table)
	default:
		return exporter.NewCSVWriter(a.component("csv"), a.Files).WriteTable(ctx, a.Paths.TableFile, table, a.Config.Output.BOM)
	}
}

// publishDigest writes the digest file (when configured) and stdout copy.
func (a *Application) publishDigest(ctx context.Context, view domain.StockView) error {
	_, span := a.Tracing.Tracer.Start(ctx, "render.digest")
	text := exporter.NewDigestRenderer(DigestOptions(a.Config.Digest)).Render(view)
	span.SetAttributes(attribute.Int("locations", len(view.Locations)))
	span.End()

	if a.Paths.DigestFile != "" {
		if err := a.Files.WriteFile(a.Paths.DigestFile, []byte(text)); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "Digest written", slog.String("file", a.Paths.DigestFile))
	}
	if a.Config.Digest.Stdout {
		if _, err := io.WriteString(a.stdout, text); err != nil {
			return fmt.Errorf("failed to print digest: %w", err)
		}
	}
	return nil
}
