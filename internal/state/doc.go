// Package state remembers the input signature of the last successful run per
// command so unchanged workbooks are not reprocessed.
//
// Two Store backends exist: a JSON file rewritten atomically, and SQLite with
// an append-only run history. Gate combines a Store with files.Signature.
package state
