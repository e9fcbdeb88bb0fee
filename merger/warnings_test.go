package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasmerge/internal/severity"
)

func TestWarningConstructors(t *testing.T) {
	tests := []struct {
		name     string
		warning  *Warning
		wantType WarningType
		wantSev  severity.Severity
		contains []string
	}{
		{"path", newPathConflictWarning("/svc/users", "svc2"), PathConflict, severity.SeverityWarning, []string{"/svc/users", "svc2"}},
		{"schema conflict", newSchemaConflictWarning("User", "svc2"), SchemaConflict, severity.SeverityWarning, []string{"User", "svc2"}},
		{"renamed", newSchemaRenamedWarning("User", "svc2_User", "svc2"), SchemaRenamed, severity.SeverityInfo, []string{"'User'", "svc2", "'svc2_User'"}},
		{"operation id", newOperationIDConflictWarning("list", "GET", "/a", "svc2"), OperationIdConflict, severity.SeverityWarning, []string{"list", "GET /a"}},
		{"security", newSecuritySchemeConflictWarning("auth", "svc2"), SecuritySchemeConflict, severity.SeverityWarning, []string{"auth", "svc2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.warning.Type)
			assert.Equal(t, tt.wantSev, tt.warning.Severity)
			assert.Equal(t, "svc2", tt.warning.Source)
			for _, s := range tt.contains {
				assert.Contains(t, tt.warning.Message, s)
			}
			assert.Contains(t, tt.warning.String(), string(tt.wantType)+": ")
		})
	}
}

func TestWarningsFilters(t *testing.T) {
	ws := Warnings{
		newSchemaRenamedWarning("User", "b_User", "b"),
		newPathConflictWarning("/x", "b"),
		newPathConflictWarning("/y", "c"),
	}

	assert.Len(t, ws.ByType(PathConflict), 2)
	assert.Empty(t, ws.ByType(SchemaConflict))
	assert.Len(t, ws.BySeverity(severity.SeverityInfo), 1)
	assert.Len(t, ws.Strings(), 3)

	summary := ws.Summary()
	assert.Contains(t, summary, "3 warning(s):")
	assert.Contains(t, summary, "  - PathConflict: path '/y'")
	assert.Empty(t, Warnings(nil).Summary())
}
