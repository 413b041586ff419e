package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockcli/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "yaml overrides defaults",
			file: `
source:
  path: ledger.xlsx
  sheet: STOCK
  max_row: 500
exclusions:
  exact: [DKDS, SOLD]
aggregate:
  empty_streak_limit: 250
digest:
  location_order: first_seen
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ledger.xlsx", cfg.Source.Path)
				assert.Equal(t, "STOCK", cfg.Source.Sheet)
				assert.Equal(t, 3, cfg.Source.MinRow)
				assert.Equal(t, 500, cfg.Source.MaxRow)
				assert.Equal(t, []string{"DKDS", "SOLD"}, cfg.Exclusions.Exact)
				assert.Equal(t, []string{"MILIR"}, cfg.Exclusions.Contains)
				assert.Equal(t, 250, cfg.Aggregate.EmptyStreakLimit)
				assert.Equal(t, "first_seen", cfg.Digest.LocationOrder)
				assert.Equal(t, "volume_desc", cfg.Digest.TypeOrder)
			},
		},
		{
			name: "environment overrides yaml",
			file: "source:\n  sheet: FROM_FILE\n",
			env: map[string]string{
				"STOCK_SOURCE_SHEET":        "FROM_ENV",
				"STOCK_EXCLUSIONS_CONTAINS": "MILIR,TRANSIT",
				"STOCK_LOGGING_LEVEL":       "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "FROM_ENV", cfg.Source.Sheet)
				assert.Equal(t, []string{"MILIR", "TRANSIT"}, cfg.Exclusions.Contains)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid column letter",
			file:    "columns:\n  location: \"1A\"\n",
			wantErr: true,
		},
		{
			name:    "inverted row range",
			file:    "source:\n  min_row: 50\n  max_row: 10\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "source: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfigFile(t, tt.file)

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := writeConfigFile(t, "output:\n  format: xlsx\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.Output.Format)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "POSISI TERAKHIR", cfg.Source.Sheet)
	assert.Equal(t, 3, cfg.Source.MinRow)
	assert.Equal(t, 10000, cfg.Source.MaxRow)
	assert.Equal(t, ColumnsConfig{
		Identifier: "B", Type: "H", Volume: "M",
		SizeClass: "R", Date: "S", Location: "T",
	}, cfg.Columns)
	assert.Equal(t, []string{"DKDS"}, cfg.Exclusions.Exact)
	assert.Equal(t, []string{"MILIR"}, cfg.Exclusions.Contains)
	assert.Zero(t, cfg.Aggregate.EmptyStreakLimit, "early exit must be off by default")
	assert.Equal(t, "BLOK", cfg.Digest.PriorityLocation)
	assert.Equal(t, 18, cfg.Digest.MaxTypeWidth)
	assert.Equal(t, "Y2:AH10000", cfg.Dump.Range)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "numeric column", mutate: func(c *Config) { c.Columns.Type = "8" }},
		{name: "lowercase column", mutate: func(c *Config) { c.Columns.Type = "h" }},
		{name: "missing sheet for xlsx", mutate: func(c *Config) { c.Source.Sheet = "" }, wantErr: true},
		{name: "csv source needs no sheet", mutate: func(c *Config) { c.Source.Format = "csv"; c.Source.Sheet = "" }},
		{name: "missing column mapping", mutate: func(c *Config) { c.Columns.Volume = "" }, wantErr: true},
		{name: "zero column number", mutate: func(c *Config) { c.Columns.Volume = "0" }, wantErr: true},
		{name: "unknown location order", mutate: func(c *Config) { c.Digest.LocationOrder = "random" }, wantErr: true},
		{name: "unknown type order", mutate: func(c *Config) { c.Digest.TypeOrder = "count" }, wantErr: true},
		{name: "negative streak limit", mutate: func(c *Config) { c.Aggregate.EmptyStreakLimit = -1 }, wantErr: true},
		{name: "bad dump range", mutate: func(c *Config) { c.Dump.Range = "Y2" }, wantErr: true},
		{name: "blank exclusion", mutate: func(c *Config) { c.Exclusions.Contains = []string{" "} }, wantErr: true},
		{name: "no date layouts", mutate: func(c *Config) { c.Normalize.DateLayouts = nil }, wantErr: true},
		{name: "state path optional when disabled", mutate: func(c *Config) { c.State.Disabled = true; c.State.Path = "" }},
		{name: "state path required", mutate: func(c *Config) { c.State.Path = "" }, wantErr: true},
		{name: "unknown output format", mutate: func(c *Config) { c.Output.Format = "json" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{ref: "A", want: 0},
		{ref: "B", want: 1},
		{ref: "t", want: 19},
		{ref: "AH", want: 33},
		{ref: " 20 ", want: 19},
		{ref: "", wantErr: true},
		{ref: "-1", wantErr: true},
		{ref: "A1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ColumnIndex(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("Y2:AH10000")
	require.NoError(t, err)
	assert.Equal(t, CellRange{MinCol: 25, MinRow: 2, MaxCol: 34, MaxRow: 10000}, r)

	_, err = ParseRange("AH2:Y10")
	assert.Error(t, err)

	_, err = ParseRange("nonsense")
	assert.Error(t, err)
}
