package merger

import (
	"maps"
	"strings"

	"github.com/erraggy/oasmerge/internal/pathutil"
	"github.com/erraggy/oasmerge/parser"
)

// cloner deep-copies document subtrees while rewriting schema references
// through one source's rename map (original name -> final name).
//
// Every schema-bearing location funnels through schema(), so a rename is
// applied wherever a reference can occur.
type cloner struct {
	renames map[string]string
}

func newCloner(renames map[string]string) *cloner {
	return &cloner{renames: renames}
}

// ref rewrites a local schema reference. References to other component
// kinds, external references and unknown names are returned unchanged.
func (c *cloner) ref(ref string) string {
	kind, name, ok := pathutil.ParseRef(ref)
	if !ok || kind != pathutil.KindSchemas {
		return ref
	}
	if final, found := c.renames[name]; found && final != name {
		return pathutil.SchemaRef(final)
	}
	return ref
}

// mappingValue rewrites a discriminator mapping value, which is either a
// full reference or a bare schema name.
func (c *cloner) mappingValue(value string) string {
	if strings.Contains(value, "/") || strings.Contains(value, "#") {
		return c.ref(value)
	}
	if final, found := c.renames[value]; found {
		return final
	}
	return value
}

// schema clones s. A node carrying $ref is copied with its reference
// rewritten and is not descended into.
func (c *cloner) schema(s *parser.Schema) *parser.Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Extra = cloneExtra(s.Extra)
	if s.Ref != "" {
		out.Ref = c.ref(s.Ref)
		return &out
	}

	out.Default = cloneValue(s.Default)
	out.Example = cloneValue(s.Example)
	out.Type = cloneValue(s.Type)
	out.ExclusiveMinimum = cloneValue(s.ExclusiveMinimum)
	out.ExclusiveMaximum = cloneValue(s.ExclusiveMaximum)
	out.Enum = cloneValues(s.Enum)
	out.MultipleOf = clonePtr(s.MultipleOf)
	out.Minimum = clonePtr(s.Minimum)
	out.Maximum = clonePtr(s.Maximum)
	out.MinLength = clonePtr(s.MinLength)
	out.MaxLength = clonePtr(s.MaxLength)
	out.MinItems = clonePtr(s.MinItems)
	out.MaxItems = clonePtr(s.MaxItems)
	out.MinProperties = clonePtr(s.MinProperties)
	out.MaxProperties = clonePtr(s.MaxProperties)
	out.Required = cloneSlice(s.Required)

	out.Items = c.schema(s.Items)
	out.Not = c.schema(s.Not)
	out.AllOf = c.schemas(s.AllOf)
	out.AnyOf = c.schemas(s.AnyOf)
	out.OneOf = c.schemas(s.OneOf)
	if s.Properties != nil {
		out.Properties = make(map[string]*parser.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = c.schema(prop)
		}
	}
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = &parser.AdditionalProperties{
			Allowed: s.AdditionalProperties.Allowed,
			Schema:  c.schema(s.AdditionalProperties.Schema),
		}
	}
	if s.Discriminator != nil {
		d := *s.Discriminator
		d.Extra = cloneExtra(s.Discriminator.Extra)
		if s.Discriminator.Mapping != nil {
			d.Mapping = make(map[string]string, len(s.Discriminator.Mapping))
			for k, v := range s.Discriminator.Mapping {
				d.Mapping[k] = c.mappingValue(v)
			}
		}
		out.Discriminator = &d
	}
	if s.XML != nil {
		x := *s.XML
		x.Extra = cloneExtra(s.XML.Extra)
		out.XML = &x
	}
	out.ExternalDocs = cloneExternalDocs(s.ExternalDocs)
	return &out
}

func (c *cloner) schemas(in []*parser.Schema) []*parser.Schema {
	if in == nil {
		return nil
	}
	out := make([]*parser.Schema, len(in))
	for i, s := range in {
		out[i] = c.schema(s)
	}
	return out
}

func (c *cloner) pathItem(p *parser.PathItem) *parser.PathItem {
	if p == nil {
		return nil
	}
	out := *p
	out.Extra = cloneExtra(p.Extra)
	out.Get = c.operation(p.Get)
	out.Put = c.operation(p.Put)
	out.Post = c.operation(p.Post)
	out.Delete = c.operation(p.Delete)
	out.Options = c.operation(p.Options)
	out.Head = c.operation(p.Head)
	out.Patch = c.operation(p.Patch)
	out.Trace = c.operation(p.Trace)
	out.Servers = cloneServers(p.Servers)
	out.Parameters = c.parameters(p.Parameters)
	return &out
}

func (c *cloner) operation(op *parser.Operation) *parser.Operation {
	if op == nil {
		return nil
	}
	out := *op
	out.Extra = cloneExtra(op.Extra)
	out.Tags = cloneSlice(op.Tags)
	out.ExternalDocs = cloneExternalDocs(op.ExternalDocs)
	out.Parameters = c.parameters(op.Parameters)
	out.RequestBody = c.requestBody(op.RequestBody)
	out.Responses = c.responses(op.Responses)
	if op.Callbacks != nil {
		out.Callbacks = make(map[string]*parser.Callback, len(op.Callbacks))
		for name, cb := range op.Callbacks {
			out.Callbacks[name] = c.callback(cb)
		}
	}
	out.Security = cloneSecurity(op.Security)
	out.Servers = cloneServers(op.Servers)
	return &out
}

func (c *cloner) callback(cb *parser.Callback) *parser.Callback {
	if cb == nil {
		return nil
	}
	out := make(parser.Callback, len(*cb))
	for expr, item := range *cb {
		out[expr] = c.pathItem(item)
	}
	return &out
}

func (c *cloner) parameters(in []*parser.Parameter) []*parser.Parameter {
	if in == nil {
		return nil
	}
	out := make([]*parser.Parameter, len(in))
	for i, p := range in {
		out[i] = c.parameter(p)
	}
	return out
}

func (c *cloner) parameter(p *parser.Parameter) *parser.Parameter {
	if p == nil {
		return nil
	}
	out := *p
	out.Extra = cloneExtra(p.Extra)
	out.Explode = clonePtr(p.Explode)
	out.Schema = c.schema(p.Schema)
	out.Example = cloneValue(p.Example)
	out.Examples = c.examples(p.Examples)
	out.Content = c.content(p.Content)
	return &out
}

func (c *cloner) requestBody(rb *parser.RequestBody) *parser.RequestBody {
	if rb == nil {
		return nil
	}
	out := *rb
	out.Extra = cloneExtra(rb.Extra)
	out.Content = c.content(rb.Content)
	return &out
}

func (c *cloner) responses(in parser.Responses) parser.Responses {
	if in == nil {
		return nil
	}
	out := make(parser.Responses, len(in))
	for code, r := range in {
		out[code] = c.response(r)
	}
	return out
}

func (c *cloner) response(r *parser.Response) *parser.Response {
	if r == nil {
		return nil
	}
	out := *r
	out.Extra = cloneExtra(r.Extra)
	out.Headers = c.headers(r.Headers)
	out.Content = c.content(r.Content)
	if r.Links != nil {
		out.Links = make(map[string]*parser.Link, len(r.Links))
		for name, l := range r.Links {
			out.Links[name] = cloneLink(l)
		}
	}
	return &out
}

func (c *cloner) headers(in map[string]*parser.Header) map[string]*parser.Header {
	if in == nil {
		return nil
	}
	out := make(map[string]*parser.Header, len(in))
	for name, h := range in {
		out[name] = c.header(h)
	}
	return out
}

func (c *cloner) header(h *parser.Header) *parser.Header {
	if h == nil {
		return nil
	}
	out := *h
	out.Extra = cloneExtra(h.Extra)
	out.Explode = clonePtr(h.Explode)
	out.Schema = c.schema(h.Schema)
	out.Example = cloneValue(h.Example)
	out.Examples = c.examples(h.Examples)
	out.Content = c.content(h.Content)
	return &out
}

func (c *cloner) content(in map[string]*parser.MediaType) map[string]*parser.MediaType {
	if in == nil {
		return nil
	}
	out := make(map[string]*parser.MediaType, len(in))
	for mt, m := range in {
		out[mt] = c.mediaType(m)
	}
	return out
}

func (c *cloner) mediaType(m *parser.MediaType) *parser.MediaType {
	if m == nil {
		return nil
	}
	out := *m
	out.Extra = cloneExtra(m.Extra)
	out.Schema = c.schema(m.Schema)
	out.Example = cloneValue(m.Example)
	out.Examples = c.examples(m.Examples)
	if m.Encoding != nil {
		out.Encoding = make(map[string]*parser.Encoding, len(m.Encoding))
		for name, e := range m.Encoding {
			out.Encoding[name] = c.encoding(e)
		}
	}
	return &out
}

func (c *cloner) encoding(e *parser.Encoding) *parser.Encoding {
	if e == nil {
		return nil
	}
	out := *e
	out.Extra = cloneExtra(e.Extra)
	out.Explode = clonePtr(e.Explode)
	out.Headers = c.headers(e.Headers)
	return &out
}

func (c *cloner) examples(in map[string]*parser.Example) map[string]*parser.Example {
	if in == nil {
		return nil
	}
	out := make(map[string]*parser.Example, len(in))
	for name, ex := range in {
		out[name] = cloneExample(ex)
	}
	return out
}

func cloneExample(ex *parser.Example) *parser.Example {
	if ex == nil {
		return nil
	}
	out := *ex
	out.Extra = cloneExtra(ex.Extra)
	out.Value = cloneValue(ex.Value)
	return &out
}

func cloneLink(l *parser.Link) *parser.Link {
	if l == nil {
		return nil
	}
	out := *l
	out.Extra = cloneExtra(l.Extra)
	out.Parameters = cloneExtra(l.Parameters)
	out.RequestBody = cloneValue(l.RequestBody)
	out.Server = cloneServer(l.Server)
	return &out
}

func cloneServers(in []*parser.Server) []*parser.Server {
	if in == nil {
		return nil
	}
	out := make([]*parser.Server, len(in))
	for i, s := range in {
		out[i] = cloneServer(s)
	}
	return out
}

func cloneServer(s *parser.Server) *parser.Server {
	if s == nil {
		return nil
	}
	out := *s
	out.Extra = cloneExtra(s.Extra)
	if s.Variables != nil {
		out.Variables = make(map[string]*parser.ServerVariable, len(s.Variables))
		for name, v := range s.Variables {
			if v == nil {
				out.Variables[name] = nil
				continue
			}
			vc := *v
			vc.Enum = cloneSlice(v.Enum)
			vc.Extra = cloneExtra(v.Extra)
			out.Variables[name] = &vc
		}
	}
	return &out
}

func cloneSecurity(in []parser.SecurityRequirement) []parser.SecurityRequirement {
	if in == nil {
		return nil
	}
	out := make([]parser.SecurityRequirement, len(in))
	for i, req := range in {
		if req == nil {
			continue
		}
		r := make(parser.SecurityRequirement, len(req))
		for name, scopes := range req {
			r[name] = cloneSlice(scopes)
		}
		out[i] = r
	}
	return out
}

func cloneExternalDocs(d *parser.ExternalDocs) *parser.ExternalDocs {
	if d == nil {
		return nil
	}
	out := *d
	out.Extra = cloneExtra(d.Extra)
	return &out
}

func cloneTag(t *parser.Tag) *parser.Tag {
	if t == nil {
		return nil
	}
	out := *t
	out.Extra = cloneExtra(t.Extra)
	out.ExternalDocs = cloneExternalDocs(t.ExternalDocs)
	return &out
}

func cloneSecurityScheme(s *parser.SecurityScheme) *parser.SecurityScheme {
	if s == nil {
		return nil
	}
	out := *s
	out.Extra = cloneExtra(s.Extra)
	if s.Flows != nil {
		flows := *s.Flows
		flows.Extra = cloneExtra(s.Flows.Extra)
		flows.Implicit = cloneOAuthFlow(s.Flows.Implicit)
		flows.Password = cloneOAuthFlow(s.Flows.Password)
		flows.ClientCredentials = cloneOAuthFlow(s.Flows.ClientCredentials)
		flows.AuthorizationCode = cloneOAuthFlow(s.Flows.AuthorizationCode)
		out.Flows = &flows
	}
	return &out
}

func cloneOAuthFlow(f *parser.OAuthFlow) *parser.OAuthFlow {
	if f == nil {
		return nil
	}
	out := *f
	out.Scopes = maps.Clone(f.Scopes)
	out.Extra = cloneExtra(f.Extra)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneExtra(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValues(in []any) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies decoded YAML/JSON values. Scalars are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneExtra(t)
	case []any:
		return cloneValues(t)
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
