package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"stockcli/internal/dataprocessing"
	"stockcli/internal/files"
	"stockcli/pkg/contracts/domain"
)

// RangeDumper copies sheet rows to CSV, skipping rows whose first cell is an
// invalid identifier.
type RangeDumper struct {
	logger  *slog.Logger
	files   *files.Manager
	invalid map[string]struct{}
}

// DefaultDumpInvalidIdentifiers are the first-cell values that mark a row as
// empty. Unlike the stock ledger, "-" is a valid identifier here.
func DefaultDumpInvalidIdentifiers() []string {
	return []string{"0", "0.0"}
}

// NewRangeDumper creates a dumper. Blank and native zero first cells are
// always invalid; invalid lists the additional text literals.
func NewRangeDumper(logger *slog.Logger, manager *files.Manager, invalid []string) *RangeDumper {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	set := make(map[string]struct{}, len(invalid))
	for _, v := range invalid {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return &RangeDumper{logger: logger, files: manager, invalid: set}
}

// DumpFile atomically replaces path with the rows of src and returns the
// number of rows written. Writing nothing is not an error but is logged.
func (d *RangeDumper) DumpFile(ctx context.Context, src dataprocessing.RowSource, path string) (int, error) {
	var written int
	err := d.files.WriteAtomic(path, func(out io.Writer) error {
		n, err := d.Dump(ctx, src, out)
		written = n
		return err
	})
	if err != nil {
		return 0, err
	}

	if written == 0 {
		d.logger.WarnContext(ctx, "no data rows in range after identifier filter", slog.String("output", path))
	} else {
		d.logger.InfoContext(ctx, "range exported", slog.String("output", path), slog.Int("rows", written))
	}
	return written, nil
}

// Dump writes the surviving rows of src to out. Cells are trimmed text, a
// lone "=" is written as an empty field.
func (d *RangeDumper) Dump(ctx context.Context, src dataprocessing.RowSource, out io.Writer) (int, error) {
	w := csv.NewWriter(out)
	written := 0

	for src.Next() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		row := src.Row()
		if !d.valid(row.At(0)) {
			continue
		}

		record := make([]string, len(row))
		for i, c := range row {
			record[i] = dataprocessing.CellText(c, true)
		}
		if err := w.Write(record); err != nil {
			return written, fmt.Errorf("failed to write row: %w", err)
		}
		written++
	}
	if err := src.Err(); err != nil {
		return written, err
	}

	w.Flush()
	return written, w.Error()
}

func (d *RangeDumper) valid(first domain.Cell) bool {
	switch first.Kind {
	case domain.CellEmpty:
		return false
	case domain.CellNumber:
		return first.Number != 0
	}
	s := strings.TrimSpace(first.String())
	if s == "" {
		return false
	}
	_, bad := d.invalid[s]
	return !bad
}
