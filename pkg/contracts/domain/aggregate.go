package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Labels used by the roll-up rows of the tabular report.
const (
	TotalMarker    = "TOTAL"
	GlobalLocation = "GLOBAL"
)

// GroupKey identifies a group: one location, size class and item type.
// Comparison is case-sensitive.
type GroupKey struct {
	Location  string
	SizeClass string
	Type      string
}

// Less orders keys by location, then size class, then type.
func (k GroupKey) Less(o GroupKey) bool {
	if k.Location != o.Location {
		return k.Location < o.Location
	}
	if k.SizeClass != o.SizeClass {
		return k.SizeClass < o.SizeClass
	}
	return k.Type < o.Type
}

// Aggregate accumulates a count, a volume sum and the latest date seen.
// It only ever grows: counts and volumes are added, LastDate only moves to a
// strictly later date.
type Aggregate struct {
	Count    int
	Volume   decimal.Decimal
	LastDate Date
}

// Observe adds a single record to the aggregate.
func (a *Aggregate) Observe(volume decimal.Decimal, on Date) {
	a.Count++
	a.Volume = a.Volume.Add(volume)
	if on.After(a.LastDate) {
		a.LastDate = on
	}
}

// Merge folds another aggregate into a.
func (a *Aggregate) Merge(o Aggregate) {
	a.Count += o.Count
	a.Volume = a.Volume.Add(o.Volume)
	if o.LastDate.After(a.LastDate) {
		a.LastDate = o.LastDate
	}
}

// RunStats counts what happened to the rows of one run.
type RunStats struct {
	RowsRead     int
	EmptyRows    int
	ExcludedRows int
	Records      int
	StoppedEarly bool
}

// Summary is the complete result of one aggregation run: the group map, the
// per-location roll-ups and the global total. It is read-only once built.
type Summary struct {
	Groups    map[GroupKey]*Aggregate
	Locations map[string]*Aggregate
	Global    Aggregate

	// LatestMutation is the latest record date seen during the fold, tracked
	// independently of grouping. It always equals Global.LastDate.
	LatestMutation Date

	Stats RunStats
}

// Empty reports whether no record survived filtering.
func (s *Summary) Empty() bool { return s == nil || len(s.Groups) == 0 }

// SortedKeys returns the group keys in ascending (location, size class, type)
// order.
func (s *Summary) SortedKeys() []GroupKey {
	keys := make([]GroupKey, 0, len(s.Groups))
	for k := range s.Groups {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
