package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v2"

	"stockcli/internal/app"
	"stockcli/internal/config"
	"stockcli/pkg/contracts"
)

type exportCmd struct {
	g     *Globals
	force bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "summarize the ledger into the stock table and digest" }
func (*exportCmd) Usage() string {
	return `stockcli export [-force]

  Reads the stock ledger workbook, groups records by location, size class
  and type, and writes the stock table and the text digest. The run is
  skipped when the workbook has not changed since the last successful export.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Run even if the input is unchanged.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return c.g.runPipeline(ctx, c.force, (*app.Application).ExportStock)
}

type digestCmd struct {
	g *Globals
}

func (*digestCmd) Name() string     { return "digest" }
func (*digestCmd) Synopsis() string { return "render the text digest from an existing stock table" }
func (*digestCmd) Usage() string {
	return `stockcli digest

  Re-reads the stock table CSV written by "export" and prints the digest.
  A missing stock table is an error.
`
}

func (*digestCmd) SetFlags(*flag.FlagSet) {}

func (c *digestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return c.g.runPipeline(ctx, false, (*app.Application).DigestFromTable)
}

type dumpCmd struct {
	g     *Globals
	force bool
}

func (*dumpCmd) Name() string     { return "dump" }
func (*dumpCmd) Synopsis() string { return "export a raw sheet range to CSV" }
func (*dumpCmd) Usage() string {
	return `stockcli dump [-force]

  Copies the configured sheet range (default DATA_UKUR!Y2:AH10000) to CSV,
  skipping rows without an identifier in the first column.
`
}

func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Run even if the input is unchanged.")
}

func (c *dumpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return c.g.runPipeline(ctx, c.force, (*app.Application).DumpRange)
}

type checkConfigCmd struct {
	g *Globals
}

func (*checkConfigCmd) Name() string     { return "check-config" }
func (*checkConfigCmd) Synopsis() string { return "validate the configuration and print the effective values" }
func (*checkConfigCmd) Usage() string {
	return `stockcli check-config

  Loads the configuration the way every command does (defaults, YAML file,
  .env, STOCK_* variables), validates it and prints it with resolved paths.
`
}

func (*checkConfigCmd) SetFlags(*flag.FlagSet) {}

func (c *checkConfigCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(c.g.ConfigPath)
	if err != nil {
		fmt.Fprintln(c.g.Stderr, err)
		return subcommands.ExitFailure
	}
	paths, err := config.NewPaths(cfg, c.g.BaseDir)
	if err != nil {
		fmt.Fprintln(c.g.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := yaml.Marshal(struct {
		Config *config.Config `yaml:"config"`
		Paths  *config.Paths  `yaml:"paths"`
	}{cfg, paths})
	if err != nil {
		fmt.Fprintln(c.g.Stderr, err)
		return subcommands.ExitFailure
	}
	c.g.Stdout.Write(out)
	return subcommands.ExitSuccess
}

type versionCmd struct {
	g *Globals
}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print version information" }
func (*versionCmd) Usage() string          { return "stockcli version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (c *versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Fprintln(c.g.Stdout, contracts.GetFullVersionString())
	return subcommands.ExitSuccess
}
