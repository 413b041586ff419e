package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location a run reads or writes.
// This is the single source of truth for file paths in the application.
type Paths struct {
	BaseDir    string
	Source     string
	ReportsDir string
	LogsDir    string

	TableFile  string
	DigestFile string // empty when the digest file is disabled
	DumpFile   string
	StateFile  string
	LogFile    string
}

// NewPaths resolves the configured locations against baseDir. An empty
// baseDir means the current working directory.
func NewPaths(cfg *Config, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	reportsDir := resolve(cfg.Output.Dir)
	inReports := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(reportsDir, name)
	}

	paths := &Paths{
		BaseDir:    baseDir,
		Source:     resolve(cfg.Source.Path),
		ReportsDir: reportsDir,
		TableFile:  inReports(cfg.Output.Table),
		DigestFile: inReports(cfg.Digest.File),
		DumpFile:   inReports(cfg.Dump.Output),
		StateFile:  resolve(cfg.State.Path),
		LogFile:    resolve(cfg.Logging.FilePath),
	}
	if paths.LogFile != "" {
		paths.LogsDir = filepath.Dir(paths.LogFile)
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.ReportsDir}
	for _, file := range []string{p.TableFile, p.DigestFile, p.DumpFile, p.StateFile} {
		if file != "" {
			directories = append(directories, filepath.Dir(file))
		}
	}

	logger := slog.Default()

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("path", dir))
	}

	return nil
}

// EnsureLogsDir creates the log directory when file logging is enabled
func (p *Paths) EnsureLogsDir() error {
	if p.LogsDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.LogsDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", p.LogsDir, err)
	}
	return nil
}
