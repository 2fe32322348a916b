package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"jiragen/internal/cli"
	"jiragen/internal/config"
	"jiragen/internal/source"
)

var (
	templateHeader = []string{"project.key", "summary", "description", "issuetype.id", "labels[]", "assignee.name"}
	templateLabels = []string{"Project", "Summary", "Description", "Issue Type", "Labels", "Assignee"}
)

func (a *app) initCommand() *cli.Command {
	var force bool

	return &cli.Command{
		Name:    "init",
		Summary: "Write a config file and an issues template",
		Description: `Write an empty config file and an issues template holding a header
row and a label row. Existing files are left alone unless --force is set.`,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("init", pflag.ContinueOnError)
			fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")
			return fs
		},
		Examples: []cli.Example{
			{Command: "jiragen init"},
			{
				Description: "Use custom locations",
				Command:     "jiragen --config ./conf/jira.yaml --issues ./conf/issues.csv init",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("init takes no arguments, got %q", args)
			}

			return a.runInit(ctx, force)
		},
	}
}

func (a *app) runInit(ctx context.Context, force bool) error {
	logger := a.logger("init")

	if !force {
		for _, location := range []string{a.global.configLocation, a.global.issuesLocation} {
			exists, err := a.fs.Exists(ctx, location)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", location, err)
			}

			if exists {
				return fmt.Errorf("%s already exists (use --force to overwrite)", location)
			}
		}
	}

	if err := config.WriteFile(ctx, a.fs, a.global.configLocation, &config.Config{}); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Wrote config: %s\n", a.global.configLocation)

	if err := source.WriteTemplate(ctx, a.fs, a.global.issuesLocation, templateHeader, templateLabels); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Wrote issues: %s\n", a.global.issuesLocation)
	logger.Debug("templates written", "config", a.global.configLocation, "issues", a.global.issuesLocation)

	return nil
}
