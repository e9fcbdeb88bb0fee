package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasmerge/internal/cliutil"
	"github.com/erraggy/oasmerge/internal/config"
	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/merger"
	"github.com/erraggy/oasmerge/oaserrors"
	"github.com/erraggy/oasmerge/parser"
)

// serverFlag collects repeated --server values of the form "URL" or
// "URL description".
type serverFlag []merger.Server

// String returns the string representation of the flag value
func (s *serverFlag) String() string {
	if s == nil {
		return ""
	}
	urls := make([]string, len(*s))
	for i, srv := range *s {
		urls[i] = srv.URL
	}
	return strings.Join(urls, ",")
}

// Set parses one server and appends it.
func (s *serverFlag) Set(value string) error {
	url, description, _ := strings.Cut(strings.TrimSpace(value), " ")
	if url == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	*s = append(*s, merger.Server{URL: url, Description: strings.TrimSpace(description)})
	return nil
}

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Config         string
	Title          string
	Version        string
	Description    string
	Servers        serverFlag
	SchemaConflict string
	Output         string
	Quiet          bool
	Validate       bool
	LogLevel       string
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Config, "config", "", "merge configuration file (YAML or JSON)")
	fs.StringVar(&flags.Title, "title", "", "info.title of the merged document")
	fs.StringVar(&flags.Version, "version", "", "info.version of the merged document")
	fs.StringVar(&flags.Description, "description", "", "info.description of the merged document")
	fs.Var(&flags.Servers, "server", "server of the merged document as \"URL [description]\" (repeatable)")
	fs.StringVar(&flags.SchemaConflict, "schema-conflict", "", "how differing schemas with the same name are resolved: rename (default), first-wins, fail")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress warnings and the summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress warnings and the summary")
	fs.BoolVar(&flags.Validate, "validate", false, "validate each input against the OpenAPI 3.0 specification before merging")
	fs.StringVar(&flags.LogLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmerge merge [flags] [file[:pathPrefix[:operationIdPrefix]]...]\n\n")
		cliutil.Writef(fs.Output(), "Merge OpenAPI 3.x documents into a single document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEvery flag can also be set through an %s_* environment variable,\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "e.g. %s_SCHEMA_CONFLICT=first-wins. Flags override the configuration file.\n", EnvVarPrefix)
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasmerge merge --config oasmerge.yaml\n")
		cliutil.Writef(fs.Output(), "  oasmerge merge --title Platform --version 1.0.0 users.yaml:/users billing.yaml:/billing:billing_\n")
		cliutil.Writef(fs.Output(), "  oasmerge merge --config oasmerge.yaml --schema-conflict fail -o merged.json\n")
		cliutil.Writef(fs.Output(), "\nExit codes:\n")
		cliutil.Writef(fs.Output(), "  0  success\n")
		cliutil.Writef(fs.Output(), "  1  unexpected error\n")
		cliutil.Writef(fs.Output(), "  2  configuration error\n")
		cliutil.Writef(fs.Output(), "  3  input parse or validation error\n")
		cliutil.Writef(fs.Output(), "  4  schema conflict under --schema-conflict fail\n")
	}

	return fs, flags
}

// ParseInputArg parses a positional "file[:pathPrefix[:operationIdPrefix]]"
// argument.
func ParseInputArg(arg string) (config.Input, error) {
	parts := strings.SplitN(arg, ":", 3)
	in := config.Input{Path: strings.TrimSpace(parts[0])}
	if in.Path == "" {
		return config.Input{}, &oaserrors.ConfigError{Option: "input", Value: arg, Message: "file path cannot be empty"}
	}
	if len(parts) > 1 {
		in.PathPrefix = parts[1]
	}
	if len(parts) > 2 {
		in.OperationIDPrefix = parts[2]
	}
	return in, nil
}

// buildConfig combines the configuration file, the flags that were set
// and the positional inputs. Flags override file values; positional inputs
// follow the file's inputs.
func buildConfig(flags *MergeFlags, set map[string]bool, args []string) (*config.File, error) {
	f := &config.File{}
	if flags.Config != "" {
		loaded, err := config.Load(flags.Config)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	if set["title"] {
		f.Info.Title = flags.Title
	}
	if set["version"] {
		f.Info.Version = flags.Version
	}
	if set["description"] {
		f.Info.Description = flags.Description
	}
	if set["server"] {
		f.Servers = flags.Servers
	}
	if set["schema-conflict"] {
		strategy, err := merger.ParseStrategy(flags.SchemaConflict)
		if err != nil {
			return nil, err
		}
		f.SchemaConflict = strategy
	}
	// Paths from the command line are relative to the working directory,
	// not to the configuration file.
	if set["o"] || set["output"] {
		f.Output = absPath(flags.Output)
	}
	for _, arg := range args {
		in, err := ParseInputArg(arg)
		if err != nil {
			return nil, err
		}
		in.Path = absPath(in.Path)
		f.Inputs = append(f.Inputs, in)
	}
	return f, f.Validate()
}

// HandleMerge executes the merge command. The merged document goes to
// stdout unless an output file is configured; warnings and the summary go
// to stderr.
func HandleMerge(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupMergeFlags()
	fs.SetOutput(stderr)

	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level, err := parseLogLevel(flags.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, level)

	f, err := buildConfig(flags, setFlags(fs), fs.Args())
	if err != nil {
		return err
	}

	outputPath, err := checkOutputPath(f)
	if err != nil {
		return err
	}

	startTime := time.Now()
	sources, err := f.LoadSources(parser.WithValidation(flags.Validate), parser.WithLogger(logger))
	if err != nil {
		return err
	}

	m := merger.New(f.MergerConfig())
	m.Logger = logger
	result, err := m.Merge(sources)
	if err != nil {
		return err
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		if summary := result.Warnings.Summary(); summary != "" {
			cliutil.Writef(stderr, "%s\n", summary)
		}
		cliutil.WriteList(stderr, "Dropped components (first definition kept)", result.DroppedComponents)
	}

	if outputPath == "" {
		data, err := parser.Marshal(result.Document, parser.SourceFormatYAML)
		if err != nil {
			return fmt.Errorf("marshaling merged document: %w", err)
		}
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing merged document to stdout: %w", err)
		}
	} else if err := parser.WriteFile(result.Document, outputPath); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	if !flags.Quiet {
		cliutil.Writef(stderr, "Merged %d source(s): %d paths, %d schemas, %d warning(s) in %v\n",
			result.SourceCount, len(result.Document.Paths), schemaCount(result.Document), len(result.Warnings), totalTime)
		if outputPath != "" {
			cliutil.Writef(stderr, "Output written to: %s\n", outputPath)
		}
	}
	return nil
}

// checkOutputPath returns the cleaned output path, or "" for stdout. The
// path must not be a symlink, a directory or one of the inputs.
func checkOutputPath(f *config.File) (string, error) {
	outputPath := f.OutputPath()
	if outputPath == "" {
		return "", nil
	}
	inputs, err := f.ExpandInputs()
	if err != nil {
		return "", err
	}
	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}
	cleanPath, err := pathutil.SanitizeOutputPath(outputPath, paths...)
	if err != nil {
		return "", &oaserrors.ConfigError{Option: "output", Value: outputPath, Cause: err}
	}
	return cleanPath, nil
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func schemaCount(doc *parser.Document) int {
	if doc.Components == nil {
		return 0
	}
	return len(doc.Components.Schemas)
}
