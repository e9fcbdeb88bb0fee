package merger

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmerge/internal/severity"
)

// WarningType identifies the kind of non-fatal issue a merge ran into.
type WarningType string

const (
	// PathConflict indicates an incoming path item was dropped because an
	// earlier source already produced the same final path.
	PathConflict WarningType = "PathConflict"
	// SchemaConflict indicates a differing schema was discarded under the
	// first-wins strategy.
	SchemaConflict WarningType = "SchemaConflict"
	// SchemaRenamed indicates a differing schema was registered under a new
	// name under the rename strategy.
	SchemaRenamed WarningType = "SchemaRenamed"
	// OperationIdConflict indicates two operations share a final operation id.
	// Both operations are kept. "Id" rather than "ID" matches the type value.
	OperationIdConflict WarningType = "OperationIdConflict"
	// SecuritySchemeConflict indicates a differing security scheme was
	// discarded in favor of the first definition.
	SecuritySchemeConflict WarningType = "SecuritySchemeConflict"
)

// Warning is a structured, non-fatal diagnostic produced during a merge.
type Warning struct {
	// Type identifies the kind of warning.
	Type WarningType `json:"type"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Source is the name of the source that triggered the warning, if any.
	Source string `json:"source,omitempty"`
	// Severity indicates warning severity.
	Severity severity.Severity `json:"severity"`
	// Context provides additional details.
	Context map[string]any `json:"context,omitempty"`
}

// String returns the warning message prefixed with its type.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Type, w.Message)
}

func newPathConflictWarning(path, source string) *Warning {
	return &Warning{
		Type:     PathConflict,
		Message:  fmt.Sprintf("path '%s' from %s already exists; incoming path item dropped", path, source),
		Source:   source,
		Severity: severity.SeverityWarning,
		Context: map[string]any{
			"path": path,
		},
	}
}

func newSchemaConflictWarning(name, source string) *Warning {
	return &Warning{
		Type:     SchemaConflict,
		Message:  fmt.Sprintf("schema '%s' from %s differs from an earlier definition; kept the first", name, source),
		Source:   source,
		Severity: severity.SeverityWarning,
		Context: map[string]any{
			"schema": name,
		},
	}
}

func newSchemaRenamedWarning(originalName, newName, source string) *Warning {
	return &Warning{
		Type:     SchemaRenamed,
		Message:  fmt.Sprintf("schema '%s' from %s renamed to '%s'", originalName, source, newName),
		Source:   source,
		Severity: severity.SeverityInfo,
		Context: map[string]any{
			"original_name": originalName,
			"new_name":      newName,
		},
	}
}

func newOperationIDConflictWarning(operationID, method, path, source string) *Warning {
	return &Warning{
		Type: OperationIdConflict,
		Message: fmt.Sprintf("operationId '%s' on %s %s from %s is already used by another operation",
			operationID, method, path, source),
		Source:   source,
		Severity: severity.SeverityWarning,
		Context: map[string]any{
			"operation_id": operationID,
			"method":       method,
			"path":         path,
		},
	}
}

func newSecuritySchemeConflictWarning(name, source string) *Warning {
	return &Warning{
		Type:     SecuritySchemeConflict,
		Message:  fmt.Sprintf("security scheme '%s' from %s differs from an earlier definition; kept the first", name, source),
		Source:   source,
		Severity: severity.SeverityWarning,
		Context: map[string]any{
			"scheme": name,
		},
	}
}

// Warnings is an ordered collection of Warning.
type Warnings []*Warning

// Strings returns the formatted warning messages.
func (ws Warnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByType filters warnings by type.
func (ws Warnings) ByType(t WarningType) Warnings {
	var result Warnings
	for _, w := range ws {
		if w.Type == t {
			result = append(result, w)
		}
	}
	return result
}

// BySeverity filters warnings by severity.
func (ws Warnings) BySeverity(sev severity.Severity) Warnings {
	var result Warnings
	for _, w := range ws {
		if w.Severity == sev {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws Warnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warning(s):\n", len(ws))
	for _, line := range ws.Strings() {
		sb.WriteString("  - ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
