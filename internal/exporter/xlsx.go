package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"stockcli/internal/files"
)

// TableSheet is the worksheet name of XLSX table exports.
const TableSheet = "STOCK"

// XLSXWriter encodes tables as workbooks
type XLSXWriter struct {
	logger *slog.Logger
	files  *files.Manager
}

// NewXLSXWriter creates a new XLSX writer instance
func NewXLSXWriter(logger *slog.Logger, manager *files.Manager) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	return &XLSXWriter{logger: logger, files: manager}
}

// WriteTable atomically replaces path with a one-sheet workbook holding the
// table. Count and volume columns are stored as numbers; blank separator
// rows stay empty.
func (w *XLSXWriter) WriteTable(ctx context.Context, path string, table Table) error {
	w.logger.InfoContext(ctx, "Writing XLSX file",
		slog.String("file_path", path),
		slog.Int("record_count", len(table.Rows)))

	return w.files.WriteAtomic(path, func(out io.Writer) error {
		return EncodeXLSX(out, table)
	})
}

// EncodeXLSX writes table as a workbook to out
func EncodeXLSX(out io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TableSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(TableSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range table.Rows {
		if len(record) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, xlsxValues(record)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// xlsxValues converts the count and volume columns to numbers.
func xlsxValues(record []string) []interface{} {
	values := make([]interface{}, len(record))
	for i, v := range record {
		values[i] = v
		switch i {
		case countColumn:
			if n, err := strconv.Atoi(v); err == nil {
				values[i] = n
			}
		case volumeColumn:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				values[i] = f
			}
		}
	}
	return values
}
