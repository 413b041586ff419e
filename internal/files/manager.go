package files

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"stockcli/internal/errors"
)

// Manager writes output files atomically: content goes to a temporary file in
// the target directory which is then renamed over the target.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// FileExists checks if a regular file exists at path
func (m *Manager) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDirectory creates a directory with all parent directories
func (m *Manager) EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create directory %s", path), err)
	}
	return nil
}

// WriteAtomic streams the output of write into path. On any error the
// previous content of path is left untouched.
func (m *Manager) WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := m.EnsureDirectory(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create temporary file for %s", path), err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to sync %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to close %s", path), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to set permissions on %s", path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to replace %s", path), err)
	}

	m.logger.Debug("File written", slog.String("path", path))
	return nil
}

// WriteFile atomically replaces path with data
func (m *Manager) WriteFile(path string, data []byte) error {
	return m.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ReadFile reads the file content
func (m *Manager) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}
	return data, nil
}
