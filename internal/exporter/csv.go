package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"stockcli/internal/files"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
	files  *files.Manager
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger, manager *files.Manager) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	return &CSVWriter{logger: logger, files: manager}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV atomically replaces path with the given header and records
func (w *CSVWriter) WriteCSV(ctx context.Context, path string, options WriteOptions) error {
	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", len(options.Records)))

	return w.files.WriteAtomic(path, func(out io.Writer) error {
		return EncodeCSV(out, options)
	})
}

// WriteTable writes a rendered table
func (w *CSVWriter) WriteTable(ctx context.Context, path string, table Table, bom bool) error {
	return w.WriteCSV(ctx, path, WriteOptions{
		Headers:   table.Header,
		Records:   table.Rows,
		BOMPrefix: bom,
	})
}

// EncodeCSV writes the header (if any) and records to out. Empty records are
// written as blank lines.
func EncodeCSV(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
