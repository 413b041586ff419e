package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"stockcli/internal/errors"
	"stockcli/pkg/contracts/domain"
)

// XLSXOptions selects the sheet range a workbook source yields.
type XLSXOptions struct {
	Sheet string
	// MinRow and MaxRow are 1-based and inclusive. MaxRow 0 reads to the
	// last row of the sheet.
	MinRow, MaxRow int
	// MinCol and MaxCol are 1-based and inclusive. Rows are re-based so that
	// MinCol is index 0. MaxCol 0 keeps every column.
	MinCol, MaxCol int
	// DateColumns are 0-based indexes (after re-basing) whose numeric cells
	// hold Excel date serials.
	DateColumns []int
}

// XLSXSource streams rows of one worksheet using raw cell values.
type XLSXSource struct {
	file     *excelize.File
	rows     *excelize.Rows
	opts     XLSXOptions
	date1904 bool
	dateCols map[int]struct{}

	rowNum int
	row    domain.RawRow
	err    error
	done   bool
}

// OpenWorkbook opens path and positions a source on opts.Sheet. A missing
// sheet is a configuration error naming the sheets that exist.
func OpenWorkbook(path string, opts XLSXOptions) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open workbook %s", path), err)
	}

	src, err := NewXLSXSource(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// NewXLSXSource wraps an open workbook. Close closes f.
func NewXLSXSource(f *excelize.File, opts XLSXOptions) (*XLSXSource, error) {
	if idx, err := f.GetSheetIndex(opts.Sheet); err != nil || idx < 0 {
		return nil, errors.NewConfigError(
			fmt.Sprintf("sheet %q not found, available: %s", opts.Sheet, strings.Join(f.GetSheetList(), ", ")), err).
			WithContext("sheet", opts.Sheet)
	}
	if opts.MinRow < 1 {
		opts.MinRow = 1
	}
	if opts.MinCol < 1 {
		opts.MinCol = 1
	}

	rows, err := f.Rows(opts.Sheet)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", opts.Sheet), err)
	}

	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dateCols := make(map[int]struct{}, len(opts.DateColumns))
	for _, c := range opts.DateColumns {
		dateCols[c] = struct{}{}
	}

	return &XLSXSource{
		file:     f,
		rows:     rows,
		opts:     opts,
		date1904: date1904,
		dateCols: dateCols,
	}, nil
}

// Next advances to the next row of the range.
func (s *XLSXSource) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	for s.rows.Next() {
		s.rowNum++
		if s.rowNum < s.opts.MinRow {
			continue
		}
		if s.opts.MaxRow > 0 && s.rowNum > s.opts.MaxRow {
			break
		}
		values, err := s.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			s.err = errors.NewParsingError(fmt.Sprintf("failed to read row %d", s.rowNum), err)
			return false
		}
		s.row = s.convert(values)
		return true
	}
	if err := s.rows.Error(); err != nil && s.err == nil {
		s.err = errors.NewParsingError(fmt.Sprintf("failed to iterate sheet %q", s.opts.Sheet), err)
	}
	s.done = true
	return false
}

// RowNumber returns the 1-based sheet row of the current row.
func (s *XLSXSource) RowNumber() int { return s.rowNum }

func (s *XLSXSource) Row() domain.RawRow { return s.row }

func (s *XLSXSource) Err() error { return s.err }

// Close releases the row iterator and the workbook.
func (s *XLSXSource) Close() error {
	var err error
	if s.rows != nil {
		err = s.rows.Close()
	}
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *XLSXSource) convert(values []string) domain.RawRow {
	start := s.opts.MinCol - 1
	end := len(values)
	if s.opts.MaxCol > 0 {
		end = s.opts.MaxCol
	}

	width := end - start
	if width < 0 {
		width = 0
	}
	row := make(domain.RawRow, width)
	for i := 0; i < width; i++ {
		idx := start + i
		if idx >= len(values) {
			break
		}
		_, isDate := s.dateCols[i]
		row[i] = s.cell(values[idx], isDate)
	}
	return row
}

func (s *XLSXSource) cell(raw string, isDate bool) domain.Cell {
	if raw == "" {
		return domain.Cell{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.TextCell(raw)
	}
	if isDate {
		if t, err := excelize.ExcelDateToTime(f, s.date1904); err == nil {
			return domain.DateCell(t)
		}
	}
	return domain.NumberCell(f, raw)
}
