package merger

import (
	"maps"

	"github.com/erraggy/oasmerge/parser"
)

// SecuritySchemeMerger consolidates security schemes by name. The first
// definition of a name wins; later equivalent definitions are accepted
// silently and differing ones produce a SecuritySchemeConflict warning.
type SecuritySchemeMerger struct {
	logger   parser.Logger
	schemes  map[string]*parser.SecurityScheme
	owners   map[string]string
	warnings Warnings
}

// NewSecuritySchemeMerger creates an empty security scheme merger.
func NewSecuritySchemeMerger(logger parser.Logger) *SecuritySchemeMerger {
	return &SecuritySchemeMerger{
		logger:  parser.OrNop(logger),
		schemes: make(map[string]*parser.SecurityScheme),
		owners:  make(map[string]string),
	}
}

// Add registers scheme under name on behalf of sourceName.
func (m *SecuritySchemeMerger) Add(name string, scheme *parser.SecurityScheme, sourceName string) {
	existing, ok := m.schemes[name]
	if !ok {
		m.schemes[name] = cloneSecurityScheme(scheme)
		m.owners[name] = sourceName
		return
	}
	if SecuritySchemesEquivalent(existing, scheme) {
		return
	}
	m.logger.Debug("kept first security scheme", "scheme", name, "source", sourceName, "owner", m.owners[name])
	m.warnings = append(m.warnings, newSecuritySchemeConflictWarning(name, sourceName))
}

// Schemes returns the merged security schemes.
func (m *SecuritySchemeMerger) Schemes() map[string]*parser.SecurityScheme {
	return m.schemes
}

// Warnings returns the warnings recorded so far, in order.
func (m *SecuritySchemeMerger) Warnings() Warnings {
	return m.warnings
}

// SecuritySchemesEquivalent reports whether two schemes describe the same
// authentication: same type, same name and location for apiKey, same scheme
// and bearer format for http, same OpenID Connect URL, and for oauth2 the
// same URLs and scope map per flow. Descriptions and extensions are ignored.
func SecuritySchemesEquivalent(a, b *parser.SecurityScheme) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Ref != "" || b.Ref != "" {
		return a.Ref == b.Ref
	}
	return a.Type == b.Type &&
		a.Name == b.Name &&
		a.In == b.In &&
		a.Scheme == b.Scheme &&
		a.BearerFormat == b.BearerFormat &&
		a.OpenIDConnectURL == b.OpenIDConnectURL &&
		oauthFlowsEquivalent(a.Flows, b.Flows)
}

func oauthFlowsEquivalent(a, b *parser.OAuthFlows) bool {
	if a == nil || b == nil {
		return a == b
	}
	return oauthFlowEquivalent(a.Implicit, b.Implicit) &&
		oauthFlowEquivalent(a.Password, b.Password) &&
		oauthFlowEquivalent(a.ClientCredentials, b.ClientCredentials) &&
		oauthFlowEquivalent(a.AuthorizationCode, b.AuthorizationCode)
}

func oauthFlowEquivalent(a, b *parser.OAuthFlow) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AuthorizationURL == b.AuthorizationURL &&
		a.TokenURL == b.TokenURL &&
		a.RefreshURL == b.RefreshURL &&
		maps.Equal(a.Scopes, b.Scopes)
}
