package dataprocessing

import "stockcli/pkg/contracts/domain"

// RowSource iterates over the raw rows of one bounded batch.
//
//	for src.Next() {
//	    row := src.Row()
//	}
//	if err := src.Err(); err != nil { ... }
type RowSource interface {
	Next() bool
	Row() domain.RawRow
	Err() error
	Close() error
}

// SliceSource serves rows held in memory.
type SliceSource struct {
	rows []domain.RawRow
	pos  int
}

// NewSliceSource returns a RowSource over rows.
func NewSliceSource(rows []domain.RawRow) *SliceSource {
	return &SliceSource{rows: rows, pos: -1}
}

func (s *SliceSource) Next() bool {
	if s.pos+1 >= len(s.rows) {
		s.pos = len(s.rows)
		return false
	}
	s.pos++
	return true
}

func (s *SliceSource) Row() domain.RawRow {
	if s.pos < 0 || s.pos >= len(s.rows) {
		return nil
	}
	return s.rows[s.pos]
}

func (s *SliceSource) Err() error   { return nil }
func (s *SliceSource) Close() error { return nil }
