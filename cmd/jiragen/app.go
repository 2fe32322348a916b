package main

import (
	"io"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/viant/afs"

	"jiragen/internal/cli"
	"jiragen/internal/config"
)

const defaultIssuesLocation = "./issues.csv"

// globalOptions are parsed before the subcommand name.
type globalOptions struct {
	configLocation string
	issuesLocation string
	verbose        bool
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afs.Service

	global globalOptions

	// newLogger builds the logger once the global flags are known.
	newLogger func(verbose bool) *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		fs:        afs.New(),
		newLogger: cli.NewLogger,
	}
}

func (a *app) logger(command string) *slog.Logger {
	return a.newLogger(a.global.verbose).With("command", command)
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:    "jiragen",
		Summary: "Create Jira issues in bulk from a CSV or spreadsheet file.",
		Description: `Create Jira issues in bulk from a CSV or spreadsheet file.

The first row of the issues file names the Jira field of each column:
"summary", "issuetype.id", "labels[]", "fixVersions[].id". Repeating a
column adds another array element. The second row is a label row and is
ignored; every following row becomes one issue.`,
		Output: a.stderr,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("jiragen", pflag.ContinueOnError)
			fs.StringVarP(&a.global.configLocation, "config", "c", config.DefaultLocation, "path or URL of the config file")
			fs.StringVarP(&a.global.issuesLocation, "issues", "i", defaultIssuesLocation, "path or URL of the issues file (.csv, .xlsx or .xls)")
			fs.BoolVarP(&a.global.verbose, "verbose", "v", false, "log debug output")
			return fs
		},
		Subcommands: []*cli.Command{
			a.initCommand(),
			a.pushCommand(),
			a.infoCommand(),
		},
	}
}
