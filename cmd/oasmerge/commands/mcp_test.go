package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmerge/oaserrors"
)

func TestHandleMCPHelp(t *testing.T) {
	var stderr bytes.Buffer
	require.NoError(t, HandleMCP(context.Background(), []string{"-h"}, &stderr))
	assert.Contains(t, stderr.String(), "Usage: oasmerge mcp")
	assert.Contains(t, stderr.String(), "OASMERGE_SCHEMA_CONFLICT")
}

func TestHandleMCPBadLogLevel(t *testing.T) {
	var stderr bytes.Buffer
	err := HandleMCP(context.Background(), []string{"--log-level", "chatty"}, &stderr)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
