package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stockcli/internal/dataprocessing"
	"stockcli/pkg/contracts/domain"
)

// stockRow lays text cells out in the default B/H/M/R/S/T ledger columns.
func stockRow(id, itemType, volume, sizeClass, date, location string) domain.RawRow {
	row := make(domain.RawRow, 20)
	row[1] = domain.TextCell(id)
	row[7] = domain.TextCell(itemType)
	row[12] = domain.TextCell(volume)
	row[17] = domain.TextCell(sizeClass)
	row[18] = domain.TextCell(date)
	row[19] = domain.TextCell(location)
	return row
}

func yardA() []domain.RawRow {
	return []domain.RawRow{
		stockRow("L-001", "OAK", "1.5", "20", "01/01/2025", "YARD-A"),
		stockRow("L-002", "OAK", "2.0", "20", "05/01/2025", "YARD-A"),
		stockRow("L-003", "PINE", "3.0", "25", "02/01/2025", "YARD-A"),
	}
}

func summarize(t *testing.T, rows []domain.RawRow) *domain.Summary {
	t.Helper()
	engine, err := dataprocessing.NewEngine(nil, nil, dataprocessing.DefaultEngineConfig())
	require.NoError(t, err)
	s, err := engine.Summarize(context.Background(), rows)
	require.NoError(t, err)
	return s
}
