// Command jiragen creates Jira issues in bulk from a CSV or spreadsheet file.
//
// The first row of the issues file names the Jira field each column fills,
// using dotted paths for nested objects and a "[]" suffix for arrays. The
// second row holds human-readable labels and is ignored. Every following
// row becomes one issue.
//
//	jiragen init
//	jiragen push --link PROJ-1
//	jiragen info PROJ
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp(os.Stdout, os.Stderr).root().Execute(ctx, os.Args[1:])

	stop()

	if err != nil {
		// Commands that already printed their own report only set the code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
