package parser

import (
	"context"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oasmerge/oaserrors"
)

// validateConformance checks data against the OpenAPI 3.0 specification.
// External references are not followed. OpenAPI 3.1+ documents are only
// decoded, since the validator targets the 3.0 schema.
func validateConformance(ctx context.Context, data []byte, sourcePath, version string, log Logger) error {
	if !strings.HasPrefix(version, "3.0.") {
		log.Warn("skipping conformance validation", "path", sourcePath, "version", version)
		return nil
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return &oaserrors.ValidationError{Path: sourcePath, Message: "failed to load document", Cause: err}
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return &oaserrors.ValidationError{Path: sourcePath, Message: "document does not conform to OpenAPI 3.0", Cause: err}
	}
	log.Debug("validated document", "path", sourcePath)
	return nil
}
