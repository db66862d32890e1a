// Command slngen locates the MSBuild installation SlnGen loads.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/johnarthur1/slngen/internal/cli"
	"github.com/johnarthur1/slngen/pkg/version"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, os.LookupEnv))
}

// run executes the CLI and returns the process exit code. Failures are printed
// once as "Error: <message>".
func run(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmdWithArgs(version.GetVersion(), args, lookupEnv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if len(args) > 0 {
		root.SetArgs(args[1:])
	}

	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an execution error to a process exit code.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
