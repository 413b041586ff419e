package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	apperrors "stockcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Source     SourceConfig     `yaml:"source" envconfig:"SOURCE"`
	Columns    ColumnsConfig    `yaml:"columns" envconfig:"COLUMNS"`
	Normalize  NormalizeConfig  `yaml:"normalize" envconfig:"NORMALIZE"`
	Exclusions ExclusionsConfig `yaml:"exclusions" envconfig:"EXCLUSIONS"`
	Aggregate  AggregateConfig  `yaml:"aggregate" envconfig:"AGGREGATE"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Digest     DigestConfig     `yaml:"digest" envconfig:"DIGEST"`
	Dump       DumpConfig       `yaml:"dump" envconfig:"DUMP"`
	State      StateConfig      `yaml:"state" envconfig:"STATE"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Metrics    MetricsConfig    `yaml:"metrics" envconfig:"METRICS"`
	Tracing    TracingConfig    `yaml:"tracing" envconfig:"TRACING"`
}

// SourceConfig locates the ledger workbook and the rows to read from it
type SourceConfig struct {
	// Path is a workbook/CSV file, or a directory in which the most recent
	// workbook is picked.
	Path   string `yaml:"path" envconfig:"PATH" validate:"required"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx csv"`
	Sheet  string `yaml:"sheet" envconfig:"SHEET" validate:"required_if=Format xlsx"`
	MinRow int    `yaml:"min_row" envconfig:"MIN_ROW" validate:"min=1"`
	MaxRow int    `yaml:"max_row" envconfig:"MAX_ROW" validate:"gtefield=MinRow"`
}

// ColumnsConfig maps record fields to spreadsheet columns. Columns are given
// as letters ("B") or 1-based numbers ("2").
type ColumnsConfig struct {
	Identifier string `yaml:"identifier" envconfig:"IDENTIFIER" validate:"required,column"`
	Type       string `yaml:"type" envconfig:"TYPE" validate:"required,column"`
	Volume     string `yaml:"volume" envconfig:"VOLUME" validate:"required,column"`
	SizeClass  string `yaml:"size_class" envconfig:"SIZE_CLASS" validate:"required,column"`
	Date       string `yaml:"date" envconfig:"DATE" validate:"required,column"`
	Location   string `yaml:"location" envconfig:"LOCATION" validate:"required,column"`
}

// NormalizeConfig tunes how raw cells become record fields
type NormalizeConfig struct {
	// EqualsAsEmpty treats a text cell holding only "=" as absent.
	EqualsAsEmpty bool `yaml:"equals_as_empty" envconfig:"EQUALS_AS_EMPTY"`
	// IdentifierEqualsAsEmpty applies the same substitution to the identifier
	// before its validity check.
	IdentifierEqualsAsEmpty bool     `yaml:"identifier_equals_as_empty" envconfig:"IDENTIFIER_EQUALS_AS_EMPTY"`
	InvalidIdentifiers      []string `yaml:"invalid_identifiers" envconfig:"INVALID_IDENTIFIERS"`
	DateLayouts             []string `yaml:"date_layouts" envconfig:"DATE_LAYOUTS" validate:"min=1"`
}

// ExclusionsConfig lists locations that never take part in the summary.
// Matching is case-insensitive on the trimmed location.
type ExclusionsConfig struct {
	Exact    []string `yaml:"exact" envconfig:"EXACT"`
	Contains []string `yaml:"contains" envconfig:"CONTAINS"`
}

// AggregateConfig contains fold options
type AggregateConfig struct {
	// EmptyStreakLimit stops reading after that many consecutive empty rows.
	// 0 disables the heuristic and reads the whole range.
	EmptyStreakLimit int `yaml:"empty_streak_limit" envconfig:"EMPTY_STREAK_LIMIT" validate:"min=0"`
}

// OutputConfig contains tabular report output options
type OutputConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Table  string `yaml:"table" envconfig:"TABLE" validate:"required"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx"`
	BOM    bool   `yaml:"bom" envconfig:"BOM"`
}

// DigestConfig contains text digest options
type DigestConfig struct {
	File             string       `yaml:"file" envconfig:"FILE"`
	Stdout           bool         `yaml:"stdout" envconfig:"STDOUT"`
	PriorityLocation string       `yaml:"priority_location" envconfig:"PRIORITY_LOCATION"`
	LocationOrder    string       `yaml:"location_order" envconfig:"LOCATION_ORDER" validate:"oneof=alphabetical first_seen"`
	TypeOrder        string       `yaml:"type_order" envconfig:"TYPE_ORDER" validate:"oneof=volume_desc alphabetical"`
	MaxTypeWidth     int          `yaml:"max_type_width" envconfig:"MAX_TYPE_WIDTH" validate:"min=1"`
	Labels           LabelsConfig `yaml:"labels" envconfig:"LABELS"`
}

// LabelsConfig holds the fixed wording of the digest
type LabelsConfig struct {
	Title          string `yaml:"title" envconfig:"TITLE"`
	LastUpdate     string `yaml:"last_update" envconfig:"LAST_UPDATE"`
	GlobalHeading  string `yaml:"global_heading" envconfig:"GLOBAL_HEADING"`
	Count          string `yaml:"count" envconfig:"COUNT"`
	Volume         string `yaml:"volume" envconfig:"VOLUME"`
	LocationUpdate string `yaml:"location_update" envconfig:"LOCATION_UPDATE"`
	LocationTotal  string `yaml:"location_total" envconfig:"LOCATION_TOTAL"`
	NoData         string `yaml:"no_data" envconfig:"NO_DATA"`
	CountUnit      string `yaml:"count_unit" envconfig:"COUNT_UNIT"`
	VolumeUnit     string `yaml:"volume_unit" envconfig:"VOLUME_UNIT"`
}

// DumpConfig configures the raw range export
type DumpConfig struct {
	Sheet  string `yaml:"sheet" envconfig:"SHEET"`
	Range  string `yaml:"range" envconfig:"RANGE" validate:"omitempty,cellrange"`
	Output string `yaml:"output" envconfig:"OUTPUT"`
}

// StateConfig configures the change-detection store
type StateConfig struct {
	Disabled bool   `yaml:"disabled" envconfig:"DISABLED"`
	Backend  string `yaml:"backend" envconfig:"BACKEND" validate:"oneof=json sqlite"`
	Path     string `yaml:"path" envconfig:"PATH" validate:"required_unless=Disabled true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// MetricsConfig contains batch metrics configuration
type MetricsConfig struct {
	// Textfile is a node_exporter textfile-collector path. Empty disables metrics.
	Textfile string `yaml:"textfile" envconfig:"TEXTFILE"`
}

// TracingConfig contains stage tracing configuration
type TracingConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
	// File receives the span dump; stderr when empty.
	File string `yaml:"file" envconfig:"FILE"`
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first one found in the usual locations), an optional .env file and the
// STOCK_* environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = getConfigFilePath()
	} else {
		explicit = true
	}

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config file %s", path), err)
			}
		}
	}

	// .env is optional; it never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigError("failed to load .env file", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"stockcli.yaml",
		"configs/stockcli.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Validate checks the configuration and returns a CONFIG error describing
// every invalid field.
func (c *Config) Validate() error {
	v := validator.New()
	_ = v.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		_, err := ColumnIndex(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("cellrange", func(fl validator.FieldLevel) bool {
		_, err := ParseRange(fl.Field().String())
		return err == nil
	})

	if err := v.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.NewConfigError("config validation failed", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return apperrors.NewConfigError("config validation failed", errors.New(strings.Join(msgs, "; ")))
	}

	for _, value := range append(append([]string{}, c.Exclusions.Exact...), c.Exclusions.Contains...) {
		if strings.TrimSpace(value) == "" {
			return apperrors.NewConfigError("config validation failed", errors.New("exclusion values must not be blank"))
		}
	}

	return nil
}

// ColumnIndex converts a column reference ("T" or "20") to a 0-based index.
func ColumnIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, errors.New("empty column reference")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("column number %d out of range", n)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(ref))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// CellRange is a rectangular, 1-based, inclusive sheet range.
type CellRange struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// ParseRange parses a reference such as "Y2:AH10000".
func ParseRange(ref string) (CellRange, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return CellRange{}, fmt.Errorf("range %q must look like A1:B2", ref)
	}
	minCol, minRow, err := excelize.CellNameToCoordinates(strings.ToUpper(from))
	if err != nil {
		return CellRange{}, err
	}
	maxCol, maxRow, err := excelize.CellNameToCoordinates(strings.ToUpper(to))
	if err != nil {
		return CellRange{}, err
	}
	if maxCol < minCol || maxRow < minRow {
		return CellRange{}, fmt.Errorf("range %q is inverted", ref)
	}
	return CellRange{MinCol: minCol, MinRow: minRow, MaxCol: maxCol, MaxRow: maxRow}, nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path:   "INPUT_ANGKUTAN_STOCK_NEW.xlsx",
			Format: "xlsx",
			Sheet:  "POSISI TERAKHIR",
			MinRow: 3,
			MaxRow: 10000,
		},
		Columns: ColumnsConfig{
			Identifier: "B",
			Type:       "H",
			Volume:     "M",
			SizeClass:  "R",
			Date:       "S",
			Location:   "T",
		},
		Normalize: NormalizeConfig{
			EqualsAsEmpty:           true,
			IdentifierEqualsAsEmpty: false,
			InvalidIdentifiers:      []string{"0", "0.0", "-"},
			DateLayouts:             []string{"2006-1-2", "2/1/2006", "2-1-2006"},
		},
		Exclusions: ExclusionsConfig{
			Exact:    []string{"DKDS"},
			Contains: []string{"MILIR"},
		},
		Output: OutputConfig{
			Dir:    DefaultReportsDir,
			Table:  "stock.csv",
			Format: "csv",
		},
		Digest: DigestConfig{
			File:             "stock_digest.txt",
			Stdout:           true,
			PriorityLocation: "BLOK",
			LocationOrder:    "alphabetical",
			TypeOrder:        "volume_desc",
			MaxTypeWidth:     18,
			Labels: LabelsConfig{
				Title:          "📦 STOCK UPDATE",
				LastUpdate:     "Last update (mutation)",
				GlobalHeading:  "GLOBAL STOCK",
				Count:          "Count",
				Volume:         "Volume",
				LocationUpdate: "Last mutation",
				LocationTotal:  "Total",
				NoData:         "No data in stock table",
				CountUnit:      "pcs",
				VolumeUnit:     "m³",
			},
		},
		Dump: DumpConfig{
			Sheet:  "DATA_UKUR",
			Range:  "Y2:AH10000",
			Output: "loglist1.csv",
		},
		State: StateConfig{
			Backend: "json",
			Path:    DefaultStateFile,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/stockcli.log",
		},
	}
}
