// Package shared holds helpers used by more than one package's tests.
//
// The testutil subpackage captures slog records in memory so tests can
// assert on warnings without parsing console output:
//
//	logger, logs := testutil.NewTestLogger(t)
//	dumper := exporter.NewRangeDumper(logger, nil, nil)
//	...
//	assert.True(t, logs.Contains(slog.LevelWarn, "no data rows in range after identifier filter"))
//
// Nothing in this tree is imported by production code.
package shared
