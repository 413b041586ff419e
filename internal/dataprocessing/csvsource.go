package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"stockcli/internal/errors"
	"stockcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource yields the rows of a delimited export as text cells. Numbers and
// dates are left to the Normalizer.
type CSVSource struct {
	closer io.Closer
	reader *csv.Reader
	minRow int
	maxRow int

	rowNum int
	row    domain.RawRow
	err    error
}

// OpenCSV opens path for reading rows minRow..maxRow (1-based, maxRow 0 for
// all rows).
func OpenCSV(path string, minRow, maxRow int) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	src := NewCSVSource(f, minRow, maxRow)
	src.closer = f
	return src, nil
}

// NewCSVSource reads from r. A leading UTF-8 BOM is skipped.
func NewCSVSource(r io.Reader, minRow, maxRow int) *CSVSource {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if minRow < 1 {
		minRow = 1
	}
	return &CSVSource{reader: reader, minRow: minRow, maxRow: maxRow}
}

func (s *CSVSource) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			s.err = errors.NewParsingError("failed to read csv row", err)
			return false
		}
		s.rowNum++
		if s.rowNum < s.minRow {
			continue
		}
		if s.maxRow > 0 && s.rowNum > s.maxRow {
			return false
		}
		row := make(domain.RawRow, len(record))
		for i, v := range record {
			row[i] = domain.TextCell(v)
		}
		s.row = row
		return true
	}
}

func (s *CSVSource) Row() domain.RawRow { return s.row }

func (s *CSVSource) Err() error { return s.err }

func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
