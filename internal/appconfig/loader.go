package appconfig

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/portway/mapping-core/internal/expr"
)

// Config is a compiled, immutable mapping configuration.
type Config struct {
	createMissingRelatedEntities bool
	deleteDependentEntities      bool
	resources                    []*Resource
	byKind                       map[string][]*Resource
}

// Resource is one compiled ResourceConfig: a kind, its selector, and its
// entity mapping expressions. Blueprint is always a literal constant.
type Resource struct {
	kind       string
	jql        string
	query      *expr.Expr
	identifier *expr.Expr
	title      *expr.Expr
	team       *expr.Expr
	blueprint  string
	properties map[string]*expr.Expr
	relations  map[string]*expr.Expr
}

// LoadFile reads and compiles a mapping configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping config %s: %w", path, err)
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load parses and compiles a mapping configuration document. Any YAML or
// expression syntax error is fatal; the error names the offending resource
// kind and field.
func Load(data []byte) (*Config, error) {
	var raw rawAppConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("invalid YAML: %w", err)}
	}
	if len(raw.Resources) == 0 {
		return nil, &ConfigError{Err: errors.New("no resources defined")}
	}

	cfg := &Config{
		createMissingRelatedEntities: raw.CreateMissingRelatedEntities,
		deleteDependentEntities:      raw.DeleteDependentEntities,
		byKind:                       make(map[string][]*Resource),
	}

	for i := range raw.Resources {
		res, err := compileResource(&raw.Resources[i])
		if err != nil {
			return nil, err
		}
		cfg.resources = append(cfg.resources, res)
		cfg.byKind[res.kind] = append(cfg.byKind[res.kind], res)
	}
	return cfg, nil
}

func compileResource(raw *rawResource) (*Resource, error) {
	if raw.Kind == "" {
		return nil, &ConfigError{Err: errors.New("resource is missing a kind")}
	}

	res := &Resource{
		kind:       raw.Kind,
		jql:        raw.Selector.JQL,
		properties: make(map[string]*expr.Expr, len(raw.Port.Entity.Mappings.Properties)),
		relations:  make(map[string]*expr.Expr, len(raw.Port.Entity.Mappings.Relations)),
	}

	// An absent selector keeps every record.
	query := raw.Selector.Query
	if query == "" {
		query = "true"
	}

	var err error
	if res.query, err = compileField(raw.Kind, "selector.query", query); err != nil {
		return nil, err
	}

	m := &raw.Port.Entity.Mappings
	if m.Identifier == "" {
		return nil, &ConfigError{Kind: raw.Kind, Field: "identifier", Err: errors.New("mapping is required")}
	}
	if res.identifier, err = compileField(raw.Kind, "identifier", m.Identifier); err != nil {
		return nil, err
	}

	if m.Title != "" {
		if res.title, err = compileField(raw.Kind, "title", m.Title); err != nil {
			return nil, err
		}
	}

	if m.Team != "" {
		if res.team, err = compileField(raw.Kind, "team", m.Team); err != nil {
			return nil, err
		}
	}

	if m.Blueprint == "" {
		return nil, &ConfigError{Kind: raw.Kind, Field: "blueprint", Err: errors.New("mapping is required")}
	}
	blueprintExpr, err := compileField(raw.Kind, "blueprint", m.Blueprint)
	if err != nil {
		return nil, err
	}
	blueprint, ok := blueprintExpr.StringLiteral()
	if !ok || blueprint == "" {
		return nil, &ConfigError{
			Kind:  raw.Kind,
			Field: "blueprint",
			Err:   fmt.Errorf("must be a non-empty string constant, got %q", string(m.Blueprint)),
		}
	}
	res.blueprint = blueprint

	for name, src := range m.Properties {
		e, err := compileField(raw.Kind, "properties."+name, src)
		if err != nil {
			return nil, err
		}
		res.properties[name] = e
	}
	for name, src := range m.Relations {
		e, err := compileField(raw.Kind, "relations."+name, src)
		if err != nil {
			return nil, err
		}
		res.relations[name] = e
	}
	return res, nil
}

func compileField(kind, field string, src exprString) (*expr.Expr, error) {
	e, err := expr.Parse(string(src))
	if err != nil {
		return nil, &ConfigError{Kind: kind, Field: field, Err: err}
	}
	return e, nil
}

// --- Config accessors ---

// CreateMissingRelatedEntities reports the top-level flag of the same name.
func (c *Config) CreateMissingRelatedEntities() bool { return c.createMissingRelatedEntities }

// DeleteDependentEntities reports the top-level flag of the same name.
func (c *Config) DeleteDependentEntities() bool { return c.deleteDependentEntities }

// Resources returns the configured resources in document order.
func (c *Config) Resources() []*Resource {
	out := make([]*Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// ResourcesForKind returns the resources configured for a record kind, in
// document order. Several resources may map the same kind.
func (c *Config) ResourcesForKind(kind string) []*Resource {
	rs := c.byKind[kind]
	out := make([]*Resource, len(rs))
	copy(out, rs)
	return out
}

// Kinds returns the distinct configured kinds, sorted.
func (c *Config) Kinds() []string {
	kinds := make([]string, 0, len(c.byKind))
	for k := range c.byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// --- Resource accessors ---

// Kind returns the upstream record kind this resource maps.
func (r *Resource) Kind() string { return r.kind }

// JQL returns the opaque upstream filter, empty when unset. It narrows what
// is fetched, not what is mapped.
func (r *Resource) JQL() string { return r.jql }

// Query returns the compiled selector expression.
func (r *Resource) Query() *expr.Expr { return r.query }

// Identifier returns the compiled identifier expression.
func (r *Resource) Identifier() *expr.Expr { return r.identifier }

// Title returns the compiled title expression, nil when unmapped.
func (r *Resource) Title() *expr.Expr { return r.title }

// Team returns the compiled team expression, nil when unmapped.
func (r *Resource) Team() *expr.Expr { return r.team }

// Blueprint returns the constant target blueprint name.
func (r *Resource) Blueprint() string { return r.blueprint }

// Properties returns the compiled property expressions keyed by property name.
func (r *Resource) Properties() map[string]*expr.Expr {
	out := make(map[string]*expr.Expr, len(r.properties))
	for k, v := range r.properties {
		out[k] = v
	}
	return out
}

// Relations returns the compiled relation expressions keyed by relation name.
func (r *Resource) Relations() map[string]*expr.Expr {
	out := make(map[string]*expr.Expr, len(r.relations))
	for k, v := range r.relations {
		out[k] = v
	}
	return out
}
