package domain

import "github.com/shopspring/decimal"

// NormalizedRecord is one validated inventory line after normalization.
type NormalizedRecord struct {
	Identifier string
	Type       string
	Volume     decimal.Decimal
	SizeClass  string
	Date       Date
	Location   string
}

// Key returns the group the record contributes to.
func (r NormalizedRecord) Key() GroupKey {
	return GroupKey{Location: r.Location, SizeClass: r.SizeClass, Type: r.Type}
}
