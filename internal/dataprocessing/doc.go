// Package dataprocessing turns ledger rows into a stock Summary.
//
// # Architecture
//
// A run is a single pass over a RowSource followed by a roll-up:
//
//  1. Normalizer: raw cells to a NormalizedRecord, or "structurally empty"
//  2. Filter: drops rows whose location is empty or matches an exclusion rule
//  3. Aggregator: folds records into per (location, size class, type) groups
//  4. Totalize: per-location and global totals from the finished group map
//
// Engine wires the four together and records run statistics, spans and logs.
//
// # Row Sources
//
// XLSXSource streams a sheet range with excelize; CSVSource reads a delimited
// export with the same column mapping. StockTableReader re-reads the tabular
// report so the digest can be rendered as a decoupled second stage.
//
// # Usage
//
//	engine, err := dataprocessing.NewEngine(logger, tracer, cfg)
//	if err != nil {
//	    return err
//	}
//	src, err := dataprocessing.OpenWorkbook(path, opts)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	summary, err := engine.Run(ctx, src)
//
// # Error Handling
//
// Malformed numbers and dates never fail a run: they read as zero and "no
// date". Missing sheets and table columns are CONFIG errors, unreadable
// files are STORAGE errors.
package dataprocessing
