package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stockcli/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds input workbooks
type Discovery struct {
	extension  string
	lockPrefix string
}

// NewDiscovery creates a discovery for files with extension, ignoring names
// that start with lockPrefix (office lock files).
func NewDiscovery(extension, lockPrefix string) *Discovery {
	return &Discovery{extension: strings.ToLower(extension), lockPrefix: lockPrefix}
}

// FindWorkbooks lists matching files in dir, oldest first
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read directory %s", dir), err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if d.lockPrefix != "" && strings.HasPrefix(name, d.lockPrefix) {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), d.extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// Resolve returns path itself when it is a file, or the most recently
// modified workbook when it is a directory.
func (d *Discovery) Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError(fmt.Sprintf("input %s", path))
		}
		return "", errors.NewStorageError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if !info.IsDir() {
		return path, nil
	}

	files, err := d.FindWorkbooks(path)
	if err != nil {
		return "", err
	}
	latest, ok := GetLatestFile(files)
	if !ok {
		return "", errors.NewNotFoundError(fmt.Sprintf("%s file in %s", d.extension, path))
	}
	return latest.Path, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if !file.ModTime.Before(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
