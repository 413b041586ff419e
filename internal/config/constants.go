package config

import "stockcli/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "stockcli"
	AppVersion = contracts.Version

	// Environment
	EnvPrefix     = "STOCK"
	EnvConfigFile = "STOCK_CONFIG"

	// File Paths (relative to the working directory unless absolute)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "data/reports"
	DefaultStateFile  = "data/.sync_state.json"

	// Workbook discovery
	WorkbookExtension = ".xlsx"
	LockFilePrefix    = "~$"

	// Change-gate keys, one per command producing outputs
	GateKeyStock = "stock"
	GateKeyDump  = "dump"
)
