package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stockcli/internal/config"
	"stockcli/internal/files"
	"stockcli/internal/infrastructure"
	"stockcli/internal/state"
	"stockcli/internal/validation"
)

// Options configures NewApplication
type Options struct {
	// ConfigPath is an explicit YAML file; empty searches the usual places.
	ConfigPath string
	// BaseDir resolves relative paths; empty is the working directory.
	BaseDir string
	// Stdout receives the digest, Stderr the console log.
	Stdout io.Writer
	Stderr io.Writer
	// Force runs even when the input is unchanged.
	Force bool
}

// Application wires configuration, logging, tracing and metrics for one
// command invocation
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Tracing   *infrastructure.Tracing
	Metrics   *infrastructure.RunMetrics
	Files     *files.Manager
	Validator *validation.FileValidator

	stdout  io.Writer
	force   bool
	started time.Time
	logFile *os.File
}

// NewApplication loads the configuration and initializes the ambient stack
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return newApplication(cfg, opts)
}

// NewApplicationWithConfig initializes the ambient stack around an already
// loaded configuration
func NewApplicationWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newApplication(cfg, opts)
}

func newApplication(cfg *config.Config, opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	paths, err := config.NewPaths(cfg, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	logCfg.FilePath = paths.LogFile
	logger, logFile, err := infrastructure.NewLogger(logCfg, opts.Stderr)
	if err != nil {
		return nil, err
	}

	traceCfg := cfg.Tracing
	if traceCfg.File != "" {
		traceCfg.File = resolve(paths.BaseDir, traceCfg.File)
	}
	tracing, err := infrastructure.InitializeTracing(traceCfg, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	var metrics *infrastructure.RunMetrics
	if cfg.Metrics.Textfile != "" {
		metrics = infrastructure.NewRunMetrics()
	}

	logger.Debug("Application initialized",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("base_dir", paths.BaseDir),
		slog.String("source", paths.Source))

	return &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Tracing:   tracing,
		Metrics:   metrics,
		Files:     files.NewManager(logger),
		Validator: validation.NewFileValidator(logger),
		stdout:    opts.Stdout,
		force:     opts.Force,
		started:   time.Now(),
		logFile:   logFile,
	}, nil
}

func (a *Application) component(name string) *slog.Logger {
	return infrastructure.WithComponent(a.Logger, name)
}

// OpenState opens the configured change-gate store; nil when disabled
func (a *Application) OpenState() (state.Store, error) {
	return state.Open(a.Config.State, a.Paths.StateFile, a.component("state"))
}

// Shutdown flushes metrics and spans and closes the log file. It is safe to
// call once per Application.
func (a *Application) Shutdown(ctx context.Context) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if a.Metrics != nil {
		path := resolve(a.Paths.BaseDir, a.Config.Metrics.Textfile)
		if err := a.Metrics.WriteTextfile(path); err != nil {
			a.Logger.ErrorContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
			keep(err)
		}
	}
	keep(a.Tracing.Shutdown(ctx))
	if a.logFile != nil {
		keep(a.logFile.Close())
		a.logFile = nil
	}
	return first
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
