package app

import (
	"fmt"

	"stockcli/internal/config"
	"stockcli/internal/dataprocessing"
	"stockcli/internal/errors"
	"stockcli/internal/exporter"
)

// EngineConfig translates the configuration into engine options
func EngineConfig(cfg *config.Config) (dataprocessing.EngineConfig, error) {
	cols, err := columns(cfg.Columns)
	if err != nil {
		return dataprocessing.EngineConfig{}, err
	}

	return dataprocessing.EngineConfig{
		Normalizer: dataprocessing.NormalizerConfig{
			Columns:                 cols,
			EqualsAsEmpty:           cfg.Normalize.EqualsAsEmpty,
			IdentifierEqualsAsEmpty: cfg.Normalize.IdentifierEqualsAsEmpty,
			InvalidIdentifiers:      cfg.Normalize.InvalidIdentifiers,
			DateLayouts:             cfg.Normalize.DateLayouts,
		},
		Exclusions:       ExclusionRules(cfg.Exclusions),
		EmptyStreakLimit: cfg.Aggregate.EmptyStreakLimit,
	}, nil
}

// ExclusionRules flattens the exact and contains lists, exact first
func ExclusionRules(ex config.ExclusionsConfig) []dataprocessing.Rule {
	rules := make([]dataprocessing.Rule, 0, len(ex.Exact)+len(ex.Contains))
	for _, v := range ex.Exact {
		rules = append(rules, dataprocessing.Rule{Match: dataprocessing.MatchExact, Value: v})
	}
	for _, v := range ex.Contains {
		rules = append(rules, dataprocessing.Rule{Match: dataprocessing.MatchContains, Value: v})
	}
	return rules
}

// LedgerOptions returns the sheet window of the stock ledger. The date
// column is flagged so numeric date serials become dates.
func LedgerOptions(cfg *config.Config) (dataprocessing.XLSXOptions, error) {
	date, err := config.ColumnIndex(cfg.Columns.Date)
	if err != nil {
		return dataprocessing.XLSXOptions{}, errors.NewConfigError(fmt.Sprintf("invalid date column %q", cfg.Columns.Date), err)
	}
	return dataprocessing.XLSXOptions{
		Sheet:       cfg.Source.Sheet,
		MinRow:      cfg.Source.MinRow,
		MaxRow:      cfg.Source.MaxRow,
		DateColumns: []int{date},
	}, nil
}

// DumpOptions returns the sheet window of the range dump
func DumpOptions(cfg *config.Config) (dataprocessing.XLSXOptions, error) {
	r, err := config.ParseRange(cfg.Dump.Range)
	if err != nil {
		return dataprocessing.XLSXOptions{}, errors.NewConfigError(fmt.Sprintf("invalid dump range %q", cfg.Dump.Range), err)
	}
	return dataprocessing.XLSXOptions{
		Sheet:  cfg.Dump.Sheet,
		MinRow: r.MinRow,
		MaxRow: r.MaxRow,
		MinCol: r.MinCol,
		MaxCol: r.MaxCol,
	}, nil
}

// DigestOptions translates the digest section
func DigestOptions(cfg config.DigestConfig) exporter.DigestOptions {
	l := cfg.Labels
	return exporter.DigestOptions{
		PriorityLocation: cfg.PriorityLocation,
		LocationOrder:    exporter.LocationOrder(cfg.LocationOrder),
		TypeOrder:        exporter.TypeOrder(cfg.TypeOrder),
		MaxTypeWidth:     cfg.MaxTypeWidth,
		Labels: exporter.Labels{
			Title:          l.Title,
			LastUpdate:     l.LastUpdate,
			GlobalHeading:  l.GlobalHeading,
			Count:          l.Count,
			Volume:         l.Volume,
			LocationUpdate: l.LocationUpdate,
			LocationTotal:  l.LocationTotal,
			NoData:         l.NoData,
			CountUnit:      l.CountUnit,
			VolumeUnit:     l.VolumeUnit,
		},
	}
}

func columns(c config.ColumnsConfig) (dataprocessing.Columns, error) {
	var out dataprocessing.Columns
	for _, f := range []struct {
		ref string
		dst *int
	}{
		{c.Identifier, &out.Identifier},
		{c.Type, &out.Type},
		{c.Volume, &out.Volume},
		{c.SizeClass, &out.SizeClass},
		{c.Date, &out.Date},
		{c.Location, &out.Location},
	} {
		idx, err := config.ColumnIndex(f.ref)
		if err != nil {
			return dataprocessing.Columns{}, errors.NewConfigError(fmt.Sprintf("invalid column %q", f.ref), err)
		}
		*f.dst = idx
	}
	return out, nil
}
