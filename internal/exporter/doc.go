// Package exporter renders a stock Summary into its published forms.
//
// This package contains four main components:
//
// TableRenderer: builds the subtotal-annotated table (sorted detail rows, a
// TOTAL row and a blank separator after every location, a closing GLOBAL
// TOTAL row).
//
// CSVWriter and XLSXWriter: encode a Table to disk through atomic writes.
//
// DigestRenderer: formats a StockView as a compact text message with named
// location and type ordering policies.
//
// RangeDumper: copies a rectangular sheet range to CSV.
//
// Example usage:
//
//	table := exporter.NewTableRenderer(logger, tracer).Render(ctx, summary)
//	err := exporter.NewCSVWriter(logger, manager).WriteTable(ctx, path, table, false)
//
//	digest := exporter.NewDigestRenderer(opts).Render(domain.ViewOf(summary))
package exporter
