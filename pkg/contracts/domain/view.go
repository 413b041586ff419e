package domain

import "github.com/shopspring/decimal"

// TypeTotal is the count and volume of one item type within a location, all
// size classes merged.
type TypeTotal struct {
	Type   string
	Count  int
	Volume decimal.Decimal
}

// LocationView is one location of a StockView.
type LocationView struct {
	Location string
	Total    Aggregate
	// Types are kept in first-seen order; renderers apply their own ordering.
	Types []TypeTotal
}

// StockView is the location -> type projection the digest is rendered from.
// It can be built from an in-memory Summary or re-read from the tabular
// report, and both paths go through ViewBuilder so they agree: lines without
// a location or item type are left out on either path.
type StockView struct {
	Global    Aggregate
	Locations []LocationView
}

// Empty reports whether the view holds no location.
func (v StockView) Empty() bool { return len(v.Locations) == 0 }

// ViewBuilder accumulates detail lines into a StockView.
type ViewBuilder struct {
	index map[string]int
	types []map[string]int
	view  StockView
}

// NewViewBuilder returns an empty builder.
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{index: make(map[string]int)}
}

// Add records one detail line for location and item type. Lines with an
// empty location or type are ignored and Add reports false.
func (b *ViewBuilder) Add(location, itemType string, count int, volume decimal.Decimal, last Date) bool {
	if location == "" || itemType == "" {
		return false
	}
	li, ok := b.index[location]
	if !ok {
		li = len(b.view.Locations)
		b.index[location] = li
		b.view.Locations = append(b.view.Locations, LocationView{Location: location})
		b.types = append(b.types, make(map[string]int))
	}
	loc := &b.view.Locations[li]

	ti, ok := b.types[li][itemType]
	if !ok {
		ti = len(loc.Types)
		b.types[li][itemType] = ti
		loc.Types = append(loc.Types, TypeTotal{Type: itemType})
	}
	loc.Types[ti].Count += count
	loc.Types[ti].Volume = loc.Types[ti].Volume.Add(volume)

	loc.Total.Merge(Aggregate{Count: count, Volume: volume, LastDate: last})
	return true
}

// View returns the accumulated view with the global total derived from the
// locations.
func (b *ViewBuilder) View() StockView {
	v := b.view
	v.Global = Aggregate{}
	for _, loc := range v.Locations {
		v.Global.Merge(loc.Total)
	}
	return v
}

// VolumePlaces is the number of decimals volumes are published with.
const VolumePlaces = 3

// ViewOf projects a Summary onto a StockView, visiting groups in sorted key
// order. Group volumes are rounded the way the tabular report publishes them,
// so a view re-read from the report is identical.
func ViewOf(s *Summary) StockView {
	b := NewViewBuilder()
	if s == nil {
		return b.View()
	}
	for _, k := range s.SortedKeys() {
		g := s.Groups[k]
		b.Add(k.Location, k.Type, g.Count, g.Volume.Round(VolumePlaces), g.LastDate)
	}
	return b.View()
}
