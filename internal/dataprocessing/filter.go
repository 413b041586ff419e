package dataprocessing

import (
	"fmt"
	"strings"

	"stockcli/internal/errors"
)

// MatchKind selects how an exclusion rule compares locations.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchContains MatchKind = "contains"
)

// Rule excludes locations equal to, or containing, Value.
type Rule struct {
	Match MatchKind
	Value string
}

// DefaultRules returns the terminal locations of the stock ledger.
func DefaultRules() []Rule {
	return []Rule{
		{Match: MatchExact, Value: "DKDS"},
		{Match: MatchContains, Value: "MILIR"},
	}
}

// Filter decides whether a normalized location takes part in the summary.
// Comparison is case-insensitive on the trimmed location.
type Filter struct {
	exact    map[string]struct{}
	contains []string
}

// NewFilter compiles rules. Unknown match kinds and blank values are
// configuration errors.
func NewFilter(rules []Rule) (*Filter, error) {
	f := &Filter{exact: make(map[string]struct{})}
	for i, r := range rules {
		value := strings.ToUpper(strings.TrimSpace(r.Value))
		if value == "" {
			return nil, errors.NewConfigError(fmt.Sprintf("exclusion rule %d has an empty value", i), nil)
		}
		switch r.Match {
		case MatchExact:
			f.exact[value] = struct{}{}
		case MatchContains:
			f.contains = append(f.contains, value)
		default:
			return nil, errors.NewConfigError(fmt.Sprintf("exclusion rule %d has unknown match %q", i, r.Match), nil)
		}
	}
	return f, nil
}

// Excluded reports whether location must be dropped: it is empty or matches
// one of the rules.
func (f *Filter) Excluded(location string) bool {
	loc := strings.ToUpper(strings.TrimSpace(location))
	if loc == "" {
		return true
	}
	if _, ok := f.exact[loc]; ok {
		return true
	}
	for _, v := range f.contains {
		if strings.Contains(loc, v) {
			return true
		}
	}
	return false
}
