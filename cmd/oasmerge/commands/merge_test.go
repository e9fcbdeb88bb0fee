package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmerge/internal/cliutil"
	"github.com/erraggy/oasmerge/merger"
	"github.com/erraggy/oasmerge/oaserrors"
)

var (
	svc1Path   = filepath.Join("..", "..", "..", "testdata", "svc1.yaml")
	svc2Path   = filepath.Join("..", "..", "..", "testdata", "svc2.yaml")
	configPath = filepath.Join("..", "..", "..", "testdata", "merge-config.yaml")
)

func TestParseInputArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		prefix  string
		opID    string
		wantErr bool
	}{
		{arg: "users.yaml", want: "users.yaml"},
		{arg: "users.yaml:/users", want: "users.yaml", prefix: "/users"},
		{arg: "users.yaml:/users:users_", want: "users.yaml", prefix: "/users", opID: "users_"},
		{arg: "users.yaml::users_", want: "users.yaml", opID: "users_"},
		{arg: "users.yaml:/a:b:c", want: "users.yaml", prefix: "/a", opID: "b:c"},
		{arg: ":/users", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			in, err := ParseInputArg(tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, oaserrors.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Path)
			assert.Equal(t, tt.prefix, in.PathPrefix)
			assert.Equal(t, tt.opID, in.OperationIDPrefix)
		})
	}
}

func TestServerFlag(t *testing.T) {
	var s serverFlag
	require.NoError(t, s.Set("https://api.example.com"))
	require.NoError(t, s.Set("https://staging.example.com  Staging environment"))
	assert.Error(t, s.Set("  "))

	assert.Equal(t, []merger.Server{
		{URL: "https://api.example.com"},
		{URL: "https://staging.example.com", Description: "Staging environment"},
	}, []merger.Server(s))
	assert.Equal(t, "https://api.example.com,https://staging.example.com", s.String())
}

func TestHandleMergeConfigToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := HandleMerge([]string{"--config", configPath, "--title", "Overridden"}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "title: Overridden")
	assert.Contains(t, out, "/svc1/users:")
	assert.Contains(t, out, "/svc2/accounts:")
	assert.Contains(t, out, "svc2_User:")
	assert.Contains(t, out, "operationId: svc2_createAccount")
	assert.Contains(t, out, "https://api.example.com")

	assert.Contains(t, stderr.String(), "1 warning(s):")
	assert.Contains(t, stderr.String(), "SchemaRenamed")
	assert.Contains(t, stderr.String(), "Merged 2 source(s): 5 paths, 4 schemas, 1 warning(s)")
}

func TestHandleMergeToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.json")

	var stdout, stderr bytes.Buffer
	err := HandleMerge([]string{
		"--title", "Platform",
		"--version", "1.0.0",
		"--server", "https://api.example.com Production",
		"-o", out,
		svc1Path + ":/svc1",
		svc2Path + ":/svc2:svc2_",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Output written to: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"openapi": "3.0.3"`)
	assert.Contains(t, string(data), `"svc2_User"`)
	assert.Contains(t, string(data), `"description": "Production"`)
}

func TestHandleMergeQuiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := HandleMerge([]string{"-q", "--config", configPath}, &stdout, &stderr)
	require.NoError(t, err)
	assert.NotEmpty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestHandleMergeEnvOverride(t *testing.T) {
	t.Setenv("OASMERGE_SCHEMA_CONFLICT", "first-wins")

	var stdout, stderr bytes.Buffer
	err := HandleMerge([]string{"--config", configPath}, &stdout, &stderr)
	require.NoError(t, err)
	assert.NotContains(t, stdout.String(), "svc2_User")
	assert.Contains(t, stderr.String(), "SchemaConflict")
}

func TestHandleMergeHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, HandleMerge([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Exit codes:")
}

func TestHandleMergeErrors(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "svc1.yaml")
	data, err := os.ReadFile(svc1Path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, data, 0o600))

	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains string
	}{
		{
			name:     "no inputs",
			args:     []string{"--title", "t", "--version", "1"},
			wantCode: cliutil.ExitConfig,
			contains: "inputs",
		},
		{
			name:     "bad strategy",
			args:     []string{"--title", "t", "--version", "1", "--schema-conflict", "merge", svc1Path},
			wantCode: cliutil.ExitConfig,
			contains: "schemaConflict",
		},
		{
			name:     "bad log level",
			args:     []string{"--log-level", "loud", "--config", configPath},
			wantCode: cliutil.ExitConfig,
			contains: "log-level",
		},
		{
			name:     "missing config file",
			args:     []string{"--config", filepath.Join(tmp, "nope.yaml")},
			wantCode: cliutil.ExitConfig,
			contains: "config",
		},
		{
			name:     "output overwrites input",
			args:     []string{"--title", "t", "--version", "1", "-o", input, input},
			wantCode: cliutil.ExitConfig,
			contains: "would overwrite input",
		},
		{
			name:     "output is a directory",
			args:     []string{"--title", "t", "--version", "1", "-o", tmp, input},
			wantCode: cliutil.ExitConfig,
			contains: "output",
		},
		{
			name:     "unreadable input",
			args:     []string{"--title", "t", "--version", "1", filepath.Join(tmp, "missing.yaml")},
			wantCode: cliutil.ExitInput,
			contains: "missing.yaml",
		},
		{
			name:     "schema conflict",
			args:     []string{"--title", "t", "--version", "1", "--schema-conflict", "fail", svc1Path + ":/a", svc2Path + ":/b"},
			wantCode: cliutil.ExitSchemaConflict,
			contains: `"User"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := HandleMerge(tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cliutil.ExitCode(err))
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestHandleMergeReportsDroppedComponents(t *testing.T) {
	const spec = `openapi: 3.0.3
info: {title: %s, version: '1'}
paths:
  /items:
    get:
      parameters:
        - $ref: '#/components/parameters/Limit'
      responses:
        '200': {description: ok}
components:
  parameters:
    Limit: {name: limit, in: %s, schema: {type: integer}}
`
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, fmt.Appendf(nil, spec, "first", "query"), 0o600))
	require.NoError(t, os.WriteFile(second, fmt.Appendf(nil, spec, "second", "header"), 0o600))

	var stdout, stderr bytes.Buffer
	err := HandleMerge([]string{"--title", "t", "--version", "1", first + ":/a", second + ":/b:b_"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "Dropped components (first definition kept) (1):")
	assert.Contains(t, stderr.String(), "parameters/Limit from second")
	assert.Contains(t, stdout.String(), "in: query")
	assert.NotContains(t, stdout.String(), "in: header")
}
