package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agnivade/levenshtein"

	"github.com/erraggy/oasmerge"
	"github.com/erraggy/oasmerge/cmd/oasmerge/commands"
	"github.com/erraggy/oasmerge/internal/cliutil"
)

// commandNames lists the subcommands in usage order.
var commandNames = []string{"merge", "mcp", "version", "help"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return cliutil.ExitUnexpected
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		cliutil.Writef(stdout, "oasmerge v%s (%s)\n", oasmerge.Version(), oasmerge.Commit())
	case "help", "-h", "--help":
		printUsage(stdout)
	case "merge":
		err = commands.HandleMerge(args[1:], stdout, stderr)
	case "mcp":
		err = commands.HandleMCP(ctx, args[1:], stderr)
	default:
		cliutil.Writef(stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(stderr, "\n")
		printUsage(stderr)
		return cliutil.ExitUnexpected
	}

	if err != nil {
		cliutil.Writef(stderr, "Error: %v\n", err)
	}
	return cliutil.ExitCode(err)
}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "" when nothing is that close.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein.ComputeDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func printUsage(w io.Writer) {
	usage := `oasmerge - merge OpenAPI 3.x documents into one

Usage:
  oasmerge <command> [options]

Commands:
  merge      Merge documents from a configuration file or the command line
  mcp        Serve the merge tools over the Model Context Protocol (stdio)
  version    Show version information
  help       Show this help message

Examples:
  oasmerge merge --config oasmerge.yaml
  oasmerge merge --title Platform --version 1.0.0 -o merged.yaml users.yaml:/users billing.yaml:/billing
  oasmerge version

Run 'oasmerge <command> --help' for more information on a command.
`
	_, _ = fmt.Fprint(w, usage)
}
