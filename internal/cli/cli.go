package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"stockcli/internal/app"
	"stockcli/internal/config"
)

// Globals are the flags shared by every command
type Globals struct {
	ConfigPath string
	BaseDir    string

	Stdout io.Writer
	Stderr io.Writer
}

// Run parses args (without the program name) and executes the selected
// command. It returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	g := &Globals{Stdout: stdout, Stderr: stderr}
	fs.StringVar(&g.ConfigPath, "config", "", "Path to the YAML configuration file (default: $STOCK_CONFIG, ./stockcli.yaml, ./configs/stockcli.yaml)")
	fs.StringVar(&g.BaseDir, "dir", "", "Base directory for relative paths (default: working directory)")

	commander := subcommands.NewCommander(fs, config.AppName)
	commander.Output = stdout
	commander.Error = stderr
	Register(commander, g)

	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	return int(commander.Execute(ctx))
}

// Register adds the stockcli commands to c
func Register(c *subcommands.Commander, g *Globals) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&exportCmd{g: g}, "stock")
	c.Register(&digestCmd{g: g}, "stock")
	c.Register(&dumpCmd{g: g}, "stock")

	c.Register(&checkConfigCmd{g: g}, "")
	c.Register(&versionCmd{g: g}, "")
}

// newApp builds the application for one command
func (g *Globals) newApp(force bool) (*app.Application, error) {
	return app.NewApplication(app.Options{
		ConfigPath: g.ConfigPath,
		BaseDir:    g.BaseDir,
		Stdout:     g.Stdout,
		Stderr:     g.Stderr,
		Force:      force,
	})
}

// runPipeline runs one pipeline method and maps the outcome to an exit code
func (g *Globals) runPipeline(ctx context.Context, force bool, run func(*app.Application, context.Context) (app.Result, error)) subcommands.ExitStatus {
	a, err := g.newApp(force)
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return subcommands.ExitFailure
	}

	res, err := run(a, ctx)
	if serr := a.Shutdown(ctx); serr != nil && err == nil {
		err = serr
	}
	if err != nil {
		fmt.Fprintln(g.Stderr, err)
		return subcommands.ExitFailure
	}
	if res.Skipped {
		fmt.Fprintf(g.Stderr, "%s unchanged; skip (use -force to run anyway)\n", res.Source)
	}
	return subcommands.ExitSuccess
}
