package exporter

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"stockcli/internal/dataprocessing"
	"stockcli/pkg/contracts/domain"
)

// Positions of the numeric columns in table rows.
const (
	countColumn  = 3
	volumeColumn = 4
)

// Table is a rendered tabular report. A nil or empty row is a blank
// separator line.
type Table struct {
	Header []string
	Rows   [][]string
	// NoData is set when no record survived filtering. The table then holds
	// only the header and a zero GLOBAL TOTAL row.
	NoData bool
}

// TableRenderer lays a Summary out as detail rows with per-location
// subtotals.
type TableRenderer struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewTableRenderer creates a renderer. A nil tracer disables spans.
func NewTableRenderer(logger *slog.Logger, tracer trace.Tracer) *TableRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &TableRenderer{logger: logger, tracer: tracer}
}

// Render builds the table. Detail rows are sorted by (location, size class,
// type); every location is closed by its TOTAL row and a blank line; the last
// row is the GLOBAL TOTAL. Detail rows carry their group's last date, every
// row carries the global last date.
func (r *TableRenderer) Render(ctx context.Context, s *domain.Summary) Table {
	ctx, span := r.tracer.Start(ctx, "render.table")
	defer span.End()

	header := append([]string(nil), dataprocessing.TableHeader...)

	var global domain.Aggregate
	var latest domain.Date
	if s != nil {
		global = s.Global
		latest = s.LatestMutation
	}
	globalDate := formatDate(latest)

	if s.Empty() {
		r.logger.WarnContext(ctx, "no data rows after filtering, writing empty stock table")
		return Table{
			Header: header,
			Rows:   [][]string{globalRow(domain.Aggregate{}, globalDate)},
			NoData: true,
		}
	}

	keys := s.SortedKeys()
	rows := make([][]string, 0, len(keys)+3*len(s.Locations)+1)

	closeLocation := func(location string) {
		loc := s.Locations[location]
		rows = append(rows,
			[]string{location, domain.TotalMarker, "", formatInt(loc.Count), formatVolume(loc.Volume), formatDate(loc.LastDate), globalDate},
			nil,
		)
	}

	current := ""
	for i, k := range keys {
		if i > 0 && k.Location != current {
			closeLocation(current)
		}
		current = k.Location

		g := s.Groups[k]
		rows = append(rows, []string{
			k.Location, k.SizeClass, k.Type,
			formatInt(g.Count), formatVolume(g.Volume), formatDate(g.LastDate), globalDate,
		})
	}
	closeLocation(current)
	rows = append(rows, globalRow(global, globalDate))

	span.SetAttributes(attribute.Int("rows", len(rows)))
	return Table{Header: header, Rows: rows}
}

func globalRow(g domain.Aggregate, globalDate string) []string {
	return []string{
		domain.GlobalLocation, domain.TotalMarker, "",
		formatInt(g.Count), formatVolume(g.Volume), globalDate, globalDate,
	}
}
