package cliutil

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasmerge/oaserrors"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d items", "Status", 42)
	assert.Equal(t, "Status: 42 items", buf.String())
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(errorWriter{}, "This will fail") })
}

func TestWriteList(t *testing.T) {
	var buf bytes.Buffer
	WriteList(&buf, "Warnings", nil)
	assert.Empty(t, buf.String())

	WriteList(&buf, "Warnings", []string{"one", "two"})
	assert.Equal(t, "Warnings (2):\n  - one\n  - two\n", buf.String())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"unexpected", errors.New("boom"), ExitUnexpected},
		{"config", fmt.Errorf("merger: %w", &oaserrors.ConfigError{Missing: []string{"info.title"}}), ExitConfig},
		{"parse", &oaserrors.ParseError{Path: "a.yaml"}, ExitInput},
		{"validation", fmt.Errorf("loading: %w", &oaserrors.ValidationError{Path: "a.yaml"}), ExitInput},
		{"schema conflict", fmt.Errorf("merger: %w", &oaserrors.SchemaConflictError{Schema: "User", Source: "b"}), ExitSchemaConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
