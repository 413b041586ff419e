package dataprocessing

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"stockcli/internal/errors"
	"stockcli/pkg/contracts/domain"
)

// Table columns of the tabular report.
const (
	ColLocation       = "location"
	ColSizeClass      = "size_class"
	ColType           = "type"
	ColCount          = "count"
	ColVolume         = "volume_m3"
	ColLastMutation   = "last_mutation_location"
	ColGlobalMutation = "last_mutation_global"
)

// TableHeader is the header row of the tabular report.
var TableHeader = []string{ColLocation, ColSizeClass, ColType, ColCount, ColVolume, ColLastMutation, ColGlobalMutation}

// headerAliases maps legacy header names onto TableHeader names.
var headerAliases = map[string]string{
	"posisi":                 ColLocation,
	"kelas_diameter":         ColSizeClass,
	"jenis":                  ColType,
	"btg":                    ColCount,
	"mutasi_terakhir_posisi": ColLastMutation,
	"mutasi_terakhir_global": ColGlobalMutation,
}

var requiredTableColumns = []string{ColLocation, ColType, ColCount, ColVolume}

// StockTableReader re-reads a tabular report into a StockView.
type StockTableReader struct {
	logger *slog.Logger
}

// NewStockTableReader creates a reader. A nil logger uses slog.Default.
func NewStockTableReader(logger *slog.Logger) *StockTableReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockTableReader{logger: logger}
}

// ReadFile reads the report at path. A missing file is a NOT_FOUND error.
func (r *StockTableReader) ReadFile(ctx context.Context, path string) (domain.StockView, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return domain.StockView{}, errors.NewNotFoundError(fmt.Sprintf("stock table %s", path))
		}
		return domain.StockView{}, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	return r.Read(ctx, f)
}

// Read parses a report. Header names are matched trimmed and
// case-insensitively; TOTAL, GLOBAL and separator rows carry no type and are
// skipped. Missing required columns are a configuration error.
func (r *StockTableReader) Read(ctx context.Context, in io.Reader) (domain.StockView, error) {
	src := NewCSVSource(in, 1, 0)
	if !src.Next() {
		if err := src.Err(); err != nil {
			return domain.StockView{}, err
		}
		return domain.StockView{}, errors.NewConfigError("stock table has no header row", nil)
	}

	cols := mapHeader(src.Row())
	var missing []string
	for _, name := range requiredTableColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.StockView{}, errors.NewConfigError(
			fmt.Sprintf("stock table is missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	at := func(row domain.RawRow, name string) string {
		idx, ok := cols[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row.At(idx).String())
	}

	b := domain.NewViewBuilder()
	lines, skipped := 0, 0
	for src.Next() {
		row := src.Row()
		last, _ := domain.ParseDate(at(row, ColLastMutation), []string{domain.ReportDateFormat})
		// TOTAL, GLOBAL and separator rows have no type and are rejected here.
		if !b.Add(at(row, ColLocation), at(row, ColType), parseCount(at(row, ColCount)), Volume(domain.TextCell(at(row, ColVolume))), last) {
			skipped++
			continue
		}
		lines++
	}
	if err := src.Err(); err != nil {
		return domain.StockView{}, err
	}

	r.logger.DebugContext(ctx, "stock table read",
		slog.Int("detail_rows", lines),
		slog.Int("skipped_rows", skipped))

	return b.View(), nil
}

func mapHeader(row domain.RawRow) map[string]int {
	cols := make(map[string]int, len(row))
	for i, c := range row {
		name := strings.ToLower(strings.TrimSpace(c.String()))
		if alias, ok := headerAliases[name]; ok {
			name = alias
		}
		if _, dup := cols[name]; !dup && name != "" {
			cols[name] = i
		}
	}
	return cols
}

// parseCount accepts integer text as well as "3.0"; anything else is 0.
func parseCount(s string) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil && d.IsPositive() {
		return int(d.IntPart())
	}
	return 0
}
