package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/erraggy/oasmerge/internal/cliutil"
	"github.com/erraggy/oasmerge/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	level := fs.String("log-level", "warn", "diagnostic log level on stderr: debug, info, warn, error")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmerge mcp [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve the merge and parse tools over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nMerge defaults come from %s_TITLE, %s_VERSION, %s_SERVERS,\n", EnvVarPrefix, EnvVarPrefix, EnvVarPrefix)
		cliutil.Writef(fs.Output(), "%s_SCHEMA_CONFLICT and %s_VALIDATE.\n", EnvVarPrefix, EnvVarPrefix)
	}
	return fs, level
}

// HandleMCP runs the MCP server until ctx is cancelled or the client
// disconnects.
func HandleMCP(ctx context.Context, args []string, stderr io.Writer) error {
	fs, levelFlag := SetupMCPFlags()
	fs.SetOutput(stderr)
	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	level, err := parseLogLevel(*levelFlag)
	if err != nil {
		return err
	}
	return mcpserver.Run(ctx, level)
}
