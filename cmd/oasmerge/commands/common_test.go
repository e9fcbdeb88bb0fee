package commands

import (
	"bytes"
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmerge/oaserrors"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: " warn ", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, oaserrors.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsEnv(t *testing.T) {
	t.Setenv("OASMERGE_TITLE", "From Env")

	fs, flags := SetupMergeFlags()
	fs.SetOutput(&bytes.Buffer{})
	require.NoError(t, parseFlags(fs, []string{"--version", "2.0.0"}))

	assert.Equal(t, "From Env", flags.Title)
	assert.Equal(t, "2.0.0", flags.Version)
	set := setFlags(fs)
	assert.True(t, set["title"])
	assert.True(t, set["version"])
	assert.False(t, set["description"])
}

func TestParseFlagsErrors(t *testing.T) {
	fs, _ := SetupMergeFlags()
	fs.SetOutput(&bytes.Buffer{})

	err := parseFlags(fs, []string{"--no-such-flag"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	fs, _ = SetupMergeFlags()
	fs.SetOutput(&bytes.Buffer{})
	err = parseFlags(fs, []string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}
