// Package cli implements the command tree of the jiragen binary: flag
// parsing with pflag, subcommand dispatch with "did you mean" suggestions,
// help output, and the command logger.
package cli
