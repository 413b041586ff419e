// Package app wires one stockcli invocation together.
//
// NewApplication loads the configuration and builds the ambient stack
// (logger, tracing, run metrics, file manager). The pipeline methods then
// run a command end to end:
//
//	ExportStock     ledger -> Summary -> stock table + digest, change-gated
//	DigestFromTable stock table -> digest
//	DumpRange       sheet range -> CSV, change-gated under its own key
//
// Every method derives a run id, opens a root span named after the command
// and records the outcome in the run metrics. Call Shutdown when done so the
// metrics textfile and pending spans are flushed.
package app
