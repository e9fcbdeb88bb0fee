package cliutil

import (
	"errors"

	"github.com/erraggy/oasmerge/oaserrors"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitUnexpected     = 1
	ExitConfig         = 2
	ExitInput          = 3
	ExitSchemaConflict = 4
)

// ExitCode maps an error to the process exit code that reports it.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, oaserrors.ErrSchemaConflict):
		return ExitSchemaConflict
	case errors.Is(err, oaserrors.ErrConfig):
		return ExitConfig
	case errors.Is(err, oaserrors.ErrParse), errors.Is(err, oaserrors.ErrValidation):
		return ExitInput
	default:
		return ExitUnexpected
	}
}
