package dataprocessing

import (
	"github.com/shopspring/decimal"

	"stockcli/pkg/contracts/domain"
)

// Aggregator folds records into groups keyed by (location, size class, type).
// The result does not depend on the order records are added in.
type Aggregator struct {
	groups map[domain.GroupKey]*domain.Aggregate
	latest domain.Date
	count  int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[domain.GroupKey]*domain.Aggregate)}
}

// Add folds one record in and advances the global latest date.
func (a *Aggregator) Add(rec domain.NormalizedRecord) {
	key := rec.Key()
	g, ok := a.groups[key]
	if !ok {
		g = &domain.Aggregate{Volume: decimal.Zero}
		a.groups[key] = g
	}
	g.Observe(rec.Volume, rec.Date)
	a.latest = domain.Latest(a.latest, rec.Date)
	a.count++
}

// Groups hands off the group map. The Aggregator must not be used afterwards.
func (a *Aggregator) Groups() map[domain.GroupKey]*domain.Aggregate { return a.groups }

// Latest returns the latest record date seen so far.
func (a *Aggregator) Latest() domain.Date { return a.latest }

// Records returns the number of records added.
func (a *Aggregator) Records() int { return a.count }
