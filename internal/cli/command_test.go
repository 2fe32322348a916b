package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(out *bytes.Buffer, verbose *bool, called *string, received *[]string) *Command {
	return &Command{
		Name:   "jiragen",
		Output: out,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("jiragen", pflag.ContinueOnError)
			fs.BoolVarP(verbose, "verbose", "v", false, "verbose output")
			return fs
		},
		Subcommands: []*Command{
			{
				Name:    "push",
				Summary: "Create issues",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("push", pflag.ContinueOnError)
					fs.Bool("dry-run", false, "print instead of sending")
					return fs
				},
				Run: func(_ context.Context, args []string) error {
					*called = "push"
					*received = args
					return nil
				},
			},
			{
				Name:    "info",
				Summary: "Show a project",
				Run: func(_ context.Context, args []string) error {
					*called = "info"
					*received = args
					return nil
				},
			},
		},
	}
}

func TestExecuteDispatchesToSubcommand(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	require.NoError(t, root.Execute(context.Background(), []string{"info", "PROJ"}))

	assert.Equal(t, "info", called)
	assert.Equal(t, []string{"PROJ"}, received)
	assert.False(t, verbose)
}

func TestExecuteParsesGlobalFlagsBeforeSubcommand(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	require.NoError(t, root.Execute(context.Background(), []string{"-v", "push", "--dry-run", "extra"}))

	assert.True(t, verbose)
	assert.Equal(t, "push", called)
	assert.Equal(t, []string{"extra"}, received)
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	err := root.Execute(context.Background(), []string{"psuh"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown command "psuh" (did you mean "push"?)`)
	assert.Empty(t, called)
}

func TestExecuteUnknownCommandWithoutSuggestion(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	err := root.Execute(context.Background(), []string{"reconfigure"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown command "reconfigure"`)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	err := root.Execute(context.Background(), []string{"push", "--dry-rn"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "did you mean --dry-run?")
	assert.Contains(t, err.Error(), "Run 'jiragen push --help' for usage.")
	assert.Empty(t, called)
}

func TestExecuteWithoutSubcommandPrintsHelp(t *testing.T) {
	var (
		out      bytes.Buffer
		verbose  bool
		called   string
		received []string
	)

	root := newTestTree(&out, &verbose, &called, &received)
	err := root.Execute(context.Background(), nil)
	require.ErrorIs(t, err, ErrSubcommandRequired)

	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "push")
	assert.Contains(t, out.String(), "Show a project")
}

func TestExecuteHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"root help word", []string{"help"}, "Run 'jiragen <command> --help'"},
		{"root long flag", []string{"--help"}, "--verbose"},
		{"subcommand help", []string{"push", "-h"}, "--dry-run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				out      bytes.Buffer
				verbose  bool
				called   string
				received []string
			)

			root := newTestTree(&out, &verbose, &called, &received)
			require.NoError(t, root.Execute(context.Background(), tt.args))

			assert.Contains(t, out.String(), tt.want)
			assert.Empty(t, called)
		})
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 2}

	assert.Equal(t, "exit code 2", err.Error())
	assert.Equal(t, 2, err.ExitCode())
}
