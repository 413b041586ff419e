package domain

import (
	"strconv"
	"time"
)

// CellKind identifies the native type a row source reported for a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is a single loosely-typed value read from a row source.
//
// Number cells may keep the source's own text representation in Text so that
// pass-through exports reproduce what the sheet stored.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

// TextCell returns a text cell, or an empty cell for "".
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell. raw is the source text, if any.
func NumberCell(f float64, raw string) Cell {
	return Cell{Kind: CellNumber, Number: f, Text: raw}
}

// DateCell returns a native date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// IsEmpty reports whether the cell carries no value at all.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String renders the cell the way a spreadsheet export would show it.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		if c.Text != "" {
			return c.Text
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// RawRow is an ordered tuple of cells as delivered by a row source.
type RawRow []Cell

// At returns the cell at the 0-based index i, or an empty cell when the row is
// shorter than i.
func (r RawRow) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}
