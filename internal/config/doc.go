// Package config provides configuration management for stockcli.
// It loads configuration from several sources, validates it, and exposes
// a typed Config that is passed explicitly to every component.
//
// # Configuration Sources
//
// Sources are applied in order, later ones overriding earlier ones:
//
//	1. Default values
//	2. YAML file (-config flag, STOCK_CONFIG, ./stockcli.yaml, ./configs/stockcli.yaml)
//	3. .env file in the working directory (optional)
//	4. Environment variables
//
// # Environment Variables
//
// Variables follow the pattern STOCK_<SECTION>_<FIELD>:
//
//	STOCK_SOURCE_PATH=ledger/INPUT.xlsx
//	STOCK_SOURCE_SHEET="POSISI TERAKHIR"
//	STOCK_EXCLUSIONS_CONTAINS=MILIR,TRANSIT
//	STOCK_AGGREGATE_EMPTY_STREAK_LIMIT=250
//	STOCK_LOGGING_LEVEL=debug
//
// # Validation
//
// Validate rejects missing sheets and column mappings, unknown sort
// policies, invalid column letters and inverted row ranges. Every failure is
// a CONFIG AppError.
//
// # Path Management
//
// Paths resolves every output location of a Config against a base
// directory and creates the directories they need:
//
//	paths, err := config.NewPaths(cfg, "")
//	if err != nil {
//	    return err
//	}
//	if err := paths.EnsureDirectories(); err != nil {
//	    return err
//	}
package config
