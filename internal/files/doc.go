// Package files provides the file system plumbing of a run.
//
// Discovery picks the input workbook: a configured file is used as is, a
// directory yields its most recently modified workbook (office lock files
// are ignored).
//
// Manager writes outputs atomically through a temporary file and a rename,
// so readers never observe a half-written report.
//
// Signature computes the SHA-256 content hash the change gate compares.
//
//	discovery := files.NewDiscovery(".xlsx", "~$")
//	input, err := discovery.Resolve("ledger/")
//
//	sig, err := files.Signature(input)
package files
