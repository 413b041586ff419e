package exporter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeDumpWorkbook writes a DATA_UKUR sheet with data in Y:AA from row 2.
func writeDumpWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("DATA_UKUR")
	require.NoError(t, err)

	rows := map[string][]any{
		"Y1": {"nobtg", "jenis", "vol"},
		"Y2": {101, "OAK", 1.25},
		"Y3": {0, "PINE", 2},
		"Y4": {103, "=", 3},
	}
	for cell, values := range rows {
		require.NoError(t, f.SetSheetRow("DATA_UKUR", cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
}
