package dataprocessing

import "stockcli/pkg/contracts/domain"

// Totalize rolls the finished group map up into one aggregate per location
// and one global aggregate. Absent dates never override present ones.
func Totalize(groups map[domain.GroupKey]*domain.Aggregate) (map[string]*domain.Aggregate, domain.Aggregate) {
	locations := make(map[string]*domain.Aggregate)
	for key, g := range groups {
		loc, ok := locations[key.Location]
		if !ok {
			loc = &domain.Aggregate{}
			locations[key.Location] = loc
		}
		loc.Merge(*g)
	}

	var global domain.Aggregate
	for _, g := range groups {
		global.Merge(*g)
	}
	return locations, global
}
