package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"jiragen/internal/match"
)

// maxSuggestDistance is the largest edit distance for which a mistyped
// command or flag gets a suggestion.
const maxSuggestDistance = 3

// ErrSubcommandRequired is returned when a command that only groups
// subcommands is run without one.
var ErrSubcommandRequired = errors.New("subcommand required")

// Command is a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user.
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is shown in the command's own help output.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Flags returns the flag set of this command. It is called each time
	// the flags are needed, so it must return a fresh set bound to the same
	// variables. Flags of a command with subcommands are parsed before the
	// subcommand name.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run executes the command with the positional args left after flag
	// parsing. When Subcommands are set too, Run is used if no subcommand
	// is named.
	Run func(ctx context.Context, args []string) error

	// Output receives help text. Subcommands inherit it from their parent;
	// os.Stderr is used when no command in the chain sets it.
	Output io.Writer

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute parses args and dispatches to the matching subcommand or to Run.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.output())
		return nil
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		flagSet.SetInterspersed(len(c.Subcommands) == 0)

		if err := flagSet.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.PrintHelp(c.output())
				return nil
			}

			if suggestion := suggestFlag(err, c.Flags()); suggestion != "" {
				return fmt.Errorf("%w (did you mean %s?)\n\nRun '%s --help' for usage.",
					err, suggestion, c.fullName())
			}

			return fmt.Errorf("%w\n\nRun '%s --help' for usage.", err, c.fullName())
		}

		args = flagSet.Args()
	}

	if len(c.Subcommands) > 0 && len(args) > 0 {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(ctx, args[1:])
			}
		}

		if c.Run == nil {
			if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
				return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
					name, suggestion, c.fullName())
			}

			return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
		}
	}

	if c.Run != nil {
		return c.Run(ctx, args)
	}

	c.PrintHelp(c.output())

	return ErrSubcommandRequired
}

// PrintHelp writes the help output of the command to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s [flags] <command>\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")

		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}

		_ = tw.Flush()
	}

	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usages)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")

		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}

			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) output() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.Output != nil {
			return cmd.Output
		}
	}

	return os.Stderr
}

// fullName returns the command path, e.g. "jiragen push".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}

	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}

	name, _ := match.Closest(unknown, names, maxSuggestDistance)

	return name
}

// suggestFlag extracts the unknown long flag from a pflag parse error and
// returns the closest defined flag, formatted with its "--" prefix.
func suggestFlag(parseErr error, flagSet *pflag.FlagSet) string {
	const prefix = "unknown flag: --"

	msg := parseErr.Error()
	if !strings.HasPrefix(msg, prefix) {
		return ""
	}

	unknown := strings.TrimPrefix(msg, prefix)

	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	name, ok := match.Closest(unknown, defined, maxSuggestDistance)
	if !ok {
		return ""
	}

	return "--" + name
}
