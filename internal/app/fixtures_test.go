package app

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockcli/internal/config"
)

const ledgerSheet = "POSISI TERAKHIR"

// writeLedger writes a workbook with the YARD-A stock ledger in columns
// B/H/M/R/S/T from row 3 and a DATA_UKUR measurement sheet in Y:AA.
func writeLedger(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", ledgerSheet))
	rows := [][]any{
		{"L-001", "OAK", 1.5, "20", "01/01/2025", "YARD-A"},
		{"L-002", "OAK", 2, "20", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "YARD-A"},
		{"L-003", "PINE", 3, "25", "02-01-2025", "YARD-A"},
		{"L-004", "OAK", 9, "20", "06/01/2025", "DKDS"},
		{"0", "OAK", 9, "20", "06/01/2025", "YARD-A"},
		{"L-005", "TEAK", 4, "30", "07/01/2025", "Milir-03"},
	}
	cols := []string{"B", "H", "M", "R", "S", "T"}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.JoinCellName(cols[j], i+3)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(ledgerSheet, cell, v))
		}
	}

	_, err := f.NewSheet("DATA_UKUR")
	require.NoError(t, err)
	dump := map[string][]any{
		"Y1": {"nobtg", "jenis", "vol"},
		"Y2": {101, "OAK", 1.25},
		"Y3": {0, "PINE", 2},
		"Y4": {"-", "=", 3},
	}
	for cell, values := range dump {
		require.NoError(t, f.SetSheetRow("DATA_UKUR", cell, &values))
	}

	require.NoError(t, f.SaveAs(path))
}

type testEnv struct {
	dir    string
	cfg    *config.Config
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	writeLedger(t, filepath.Join(dir, "ledger.xlsx"))

	cfg := config.Default()
	cfg.Source.Path = "ledger.xlsx"
	cfg.Output.Dir = "reports"
	cfg.State.Path = ".sync_state.json"
	cfg.Logging.Output = "console"

	return &testEnv{dir: dir, cfg: cfg, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
}

func (e *testEnv) app(t *testing.T, force bool) *Application {
	t.Helper()
	a, err := NewApplicationWithConfig(e.cfg, Options{
		BaseDir: e.dir,
		Stdout:  e.stdout,
		Stderr:  e.stderr,
		Force:   force,
	})
	require.NoError(t, err)
	return a
}

func (e *testEnv) path(elem ...string) string {
	return filepath.Join(append([]string{e.dir}, elem...)...)
}
