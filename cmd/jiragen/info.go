package main

import (
	"context"
	"fmt"

	"jiragen/internal/cli"
	"jiragen/internal/jira"
	"jiragen/internal/render"
)

func (a *app) infoCommand() *cli.Command {
	return &cli.Command{
		Name:        "info",
		Summary:     "Show the components, issue types and roles of a project",
		Description: "Show the IDs needed to fill the issues file: components, issue types and roles of a project.",
		Usage:       "jiragen info <PROJECT>",
		Examples: []cli.Example{
			{Command: "jiragen info PROJ"},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("info takes exactly one project key, got %d arguments", len(args))
			}

			return a.runInfo(ctx, args[0])
		},
	}
}

func (a *app) runInfo(ctx context.Context, projectKey string) error {
	client, err := a.newClient(ctx, "info")
	if err != nil {
		return err
	}

	project, err := client.GetProject(ctx, projectKey)
	if jira.IsNotFound(err) {
		return fmt.Errorf("unknown project %q: %w", projectKey, err)
	}

	if err != nil {
		return a.explainAPIError(err)
	}

	return render.Project(a.stdout, project)
}
