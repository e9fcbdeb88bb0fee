// Package commands provides CLI command handlers for oasmerge.
package commands

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"github.com/erraggy/oasmerge/oaserrors"
	"github.com/erraggy/oasmerge/parser"
)

// EnvVarPrefix is the prefix of environment variables that set flag
// defaults, e.g. OASMERGE_SCHEMA_CONFLICT for --schema-conflict.
const EnvVarPrefix = "OASMERGE"

// parseFlags parses args into fs, reading unset flags from OASMERGE_*
// environment variables. Flag errors are reported as configuration errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvVarPrefix))
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return &oaserrors.ConfigError{Option: "flags", Cause: err}
}

// setFlags returns the names of the flags given on the command line or
// through the environment.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// parseLogLevel converts a --log-level value into a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, &oaserrors.ConfigError{Option: "log-level", Value: s, Message: "must be one of debug, info, warn, error"}
	}
	return level, nil
}

// newLogger builds the text logger used for diagnostics on w.
func newLogger(w io.Writer, level slog.Level) parser.Logger {
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
