package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/pflag"

	"jiragen/internal/cli"
	"jiragen/internal/config"
	"jiragen/internal/convert"
	"jiragen/internal/jira"
	"jiragen/internal/render"
	"jiragen/internal/source"
)

var errNoIssues = errors.New("no issues to create")

type pushOptions struct {
	link       string
	dryRun     bool
	workers    int
	omitEmpty  bool
	quietSkips bool
}

func (a *app) pushCommand() *cli.Command {
	var opts pushOptions

	return &cli.Command{
		Name:    "push",
		Summary: "Create the issues of the issues file in Jira",
		Description: `Convert every row of the issues file into an issue and create them all
in one bulk request. Rows that cannot be converted are skipped and
reported. Issues Jira rejects are listed and make the command fail.`,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("push", pflag.ContinueOnError)
			fs.StringVarP(&opts.link, "link", "l", "", "link every new issue to this issue key with \"relates to\"")
			fs.BoolVar(&opts.dryRun, "dry-run", false, "print the request instead of sending it")
			fs.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "rows converted in parallel")
			fs.BoolVar(&opts.omitEmpty, "omit-empty", false, "leave empty cells out of the issue instead of sending \"\"")
			fs.BoolVar(&opts.quietSkips, "quiet-skips", false, "log skipped rows at debug level only")
			return fs
		},
		Examples: []cli.Example{
			{Command: "jiragen push"},
			{
				Description: "Link the new issues to an epic and check the request first",
				Command:     "jiragen push --link PROJ-42 --dry-run",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("push takes no arguments, got %q", args)
			}

			return a.runPush(ctx, opts)
		},
	}
}

func (a *app) runPush(ctx context.Context, opts pushOptions) error {
	logger := a.logger("push")

	// A dry run needs no credentials.
	var client *jira.Client
	if !opts.dryRun {
		var err error
		if client, err = a.newClient(ctx, "push"); err != nil {
			return err
		}
	}

	table, err := source.Load(ctx, a.fs, a.global.issuesLocation)
	if err != nil {
		return err
	}

	empty := convert.EmptyKeep
	if opts.omitEmpty {
		empty = convert.EmptyOmit
	}

	res, err := convert.Convert(ctx, table.Header, table.Rows, convert.Options{
		Empty:      empty,
		Workers:    opts.workers,
		QuietSkips: opts.quietSkips,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", a.global.issuesLocation, err)
	}

	logger.Info("converted issues file",
		"file", a.global.issuesLocation,
		"issues", len(res.Documents),
		"skipped", len(res.Skipped),
		"reasons", res.Diagnostics.CountByCode(),
	)

	if len(res.Documents) == 0 {
		return fmt.Errorf("%s: %w (%d rows skipped)", a.global.issuesLocation, errNoIssues, len(res.Skipped))
	}

	var update *jira.Update
	if opts.link != "" {
		update = jira.RelatesTo(opts.link)
	}

	req := jira.NewBulkCreateRequest(res.Fields(), update)

	if opts.dryRun {
		data, err := json.Marshal(req, jsontext.WithIndent("  "))
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		_, err = fmt.Fprintf(a.stdout, "%s\n", data)

		return err
	}

	resp, err := client.CreateIssues(ctx, req)
	if resp == nil {
		return a.explainAPIError(err)
	}

	if len(resp.Issues) > 0 {
		fmt.Fprintf(a.stdout, "Issues created successfully:\n\n")

		if err := render.CreatedIssues(a.stdout, resp.Issues); err != nil {
			return err
		}
	}

	if len(resp.Errors) > 0 {
		lines := make([]int, len(res.Documents))
		for i, d := range res.Documents {
			lines[i] = d.Line
		}

		fmt.Fprintf(a.stdout, "Jira rejected %d issues:\n\n", len(resp.Errors))

		if err := render.BulkErrors(a.stdout, resp.Errors, lines); err != nil {
			return err
		}

		logger.Error("some issues were not created", "failed", len(resp.Errors), "created", len(resp.Issues))

		return &cli.ExitError{Code: 1}
	}

	return err
}

// newClient loads and validates the config and builds a Jira client.
func (a *app) newClient(ctx context.Context, command string) (*jira.Client, error) {
	cfg, err := config.Load(ctx, a.fs, a.global.configLocation)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", a.global.configLocation, err)
	}

	return jira.NewClient(jira.Config{
		BaseURL: cfg.URL,
		User:    cfg.User,
		APIKey:  cfg.Key,
		Logger:  a.logger(command),
	})
}

// explainAPIError points at the config file when Jira rejects the
// credentials.
func (a *app) explainAPIError(err error) error {
	if jira.IsUnauthorized(err) {
		return fmt.Errorf("%w\n\nCheck jira_user and jira_key in %s.", err, a.global.configLocation)
	}

	return err
}
