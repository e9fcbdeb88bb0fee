// Package severity provides the severity levels attached to merge warnings.
//
// The levels are ordered from least to most severe: Info < Warning.
// Info marks a change the merge made on purpose (for example a schema that was
// renamed to keep both definitions); Warning marks something that was dropped
// or left ambiguous and likely needs a human to look at it.
package severity

import "fmt"

// Severity indicates how much attention a merge warning deserves.
type Severity int

const (
	// SeverityInfo indicates an intentional, lossless adjustment.
	SeverityInfo Severity = iota

	// SeverityWarning indicates dropped input or an unresolved ambiguity.
	SeverityWarning
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its string form.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Parse converts a string produced by String back into a Severity.
func Parse(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", s)
	}
}
