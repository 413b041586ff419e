package dataprocessing

import (
	"strings"

	"github.com/shopspring/decimal"

	"stockcli/pkg/contracts/domain"
)

// Columns maps each record field to a 0-based cell index of a RawRow.
type Columns struct {
	Identifier int
	Type       int
	Volume     int
	SizeClass  int
	Date       int
	Location   int
}

// NormalizerConfig holds the field mapping and the cleaning rules.
type NormalizerConfig struct {
	Columns Columns

	// EqualsAsEmpty reads a lone "=" in a text field as absent.
	EqualsAsEmpty bool
	// IdentifierEqualsAsEmpty does the same for the identifier before its
	// validity check.
	IdentifierEqualsAsEmpty bool

	InvalidIdentifiers []string
	DateLayouts        []string
}

// DefaultNormalizerConfig returns the rules of the stock ledger.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		Columns: Columns{
			Identifier: 1,  // B
			Type:       7,  // H
			Volume:     12, // M
			SizeClass:  17, // R
			Date:       18, // S
			Location:   19, // T
		},
		EqualsAsEmpty:      true,
		InvalidIdentifiers: []string{"0", "0.0", "-"},
		DateLayouts:        []string{"2006-1-2", "2/1/2006", "2-1-2006"},
	}
}

// Normalizer converts raw rows into records.
type Normalizer struct {
	cfg     NormalizerConfig
	invalid map[string]struct{}
}

// NewNormalizer creates a Normalizer for cfg.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	invalid := make(map[string]struct{}, len(cfg.InvalidIdentifiers))
	for _, v := range cfg.InvalidIdentifiers {
		invalid[strings.TrimSpace(v)] = struct{}{}
	}
	return &Normalizer{cfg: cfg, invalid: invalid}
}

// Normalize returns the record held by row. ok is false when the row is
// structurally empty, in which case no field besides the identifier is read.
func (n *Normalizer) Normalize(row domain.RawRow) (rec domain.NormalizedRecord, ok bool) {
	id, ok := n.Identifier(row.At(n.cfg.Columns.Identifier))
	if !ok {
		return domain.NormalizedRecord{}, false
	}

	return domain.NormalizedRecord{
		Identifier: id,
		Type:       n.text(row.At(n.cfg.Columns.Type)),
		Volume:     Volume(row.At(n.cfg.Columns.Volume)),
		SizeClass:  n.text(row.At(n.cfg.Columns.SizeClass)),
		Date:       n.date(row.At(n.cfg.Columns.Date)),
		Location:   n.text(row.At(n.cfg.Columns.Location)),
	}, true
}

// Identifier returns the trimmed identifier of c and whether it is valid.
func (n *Normalizer) Identifier(c domain.Cell) (string, bool) {
	if c.Kind == domain.CellNumber && c.Number == 0 {
		return "", false
	}
	id := CellText(c, n.cfg.IdentifierEqualsAsEmpty)
	if id == "" {
		return "", false
	}
	if _, bad := n.invalid[id]; bad {
		return "", false
	}
	if v, err := decimal.NewFromString(strings.Replace(id, ",", ".", 1)); err == nil && v.IsZero() {
		return "", false
	}
	return id, true
}

func (n *Normalizer) text(c domain.Cell) string {
	return CellText(c, n.cfg.EqualsAsEmpty)
}

func (n *Normalizer) date(c domain.Cell) domain.Date {
	switch c.Kind {
	case domain.CellDate:
		return domain.DateOf(c.Time)
	case domain.CellText:
		d, _ := domain.ParseDate(c.Text, n.cfg.DateLayouts)
		return d
	default:
		return domain.Date{}
	}
}

// CellText renders c as trimmed text. With equalsAsEmpty a lone "=" reads
// as "".
func CellText(c domain.Cell, equalsAsEmpty bool) string {
	s := strings.TrimSpace(c.String())
	if equalsAsEmpty && s == "=" {
		return ""
	}
	return s
}

// Volume reads c as a non-negative decimal. Text accepts a decimal comma.
// Anything unparsable, and any negative value, reads as zero.
func Volume(c domain.Cell) decimal.Decimal {
	var v decimal.Decimal
	switch c.Kind {
	case domain.CellNumber:
		// The source text avoids binary float noise when it is available.
		if parsed, err := decimal.NewFromString(strings.TrimSpace(c.Text)); err == nil {
			v = parsed
		} else {
			v = decimal.NewFromFloat(c.Number)
		}
	case domain.CellText:
		s := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", ".")
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		v = parsed
	default:
		return decimal.Zero
	}
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
