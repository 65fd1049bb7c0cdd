package appconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// exprString is an expression field in the YAML document. Scalar nodes of any
// YAML type are accepted verbatim, so `query: true` and `query: "true"` both
// yield the expression text "true".
type exprString string

func (s *exprString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar expression, got %s", node.Line, yamlKindName(node.Kind))
	}
	*s = exprString(node.Value)
	return nil
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "unknown node"
}

// --- Raw document shapes (YAML wire format) ---

type rawAppConfig struct {
	CreateMissingRelatedEntities bool          `yaml:"createMissingRelatedEntities"`
	DeleteDependentEntities      bool          `yaml:"deleteDependentEntities"`
	Resources                    []rawResource `yaml:"resources"`
}

type rawResource struct {
	Kind     string      `yaml:"kind"`
	Selector rawSelector `yaml:"selector"`
	Port     rawPort     `yaml:"port"`
}

type rawSelector struct {
	Query exprString `yaml:"query"`

	// JQL narrows what the upstream source fetches. It is opaque to this
	// subsystem and never evaluated locally.
	JQL string `yaml:"jql"`
}

type rawPort struct {
	Entity rawEntity `yaml:"entity"`
}

type rawEntity struct {
	Mappings rawMappings `yaml:"mappings"`
}

type rawMappings struct {
	Identifier exprString            `yaml:"identifier"`
	Title      exprString            `yaml:"title"`
	Blueprint  exprString            `yaml:"blueprint"`
	Team       exprString            `yaml:"team"`
	Properties map[string]exprString `yaml:"properties"`
	Relations  map[string]exprString `yaml:"relations"`
}

// ConfigError reports a configuration problem found at load time, located by
// resource kind and field.
type ConfigError struct {
	Kind  string // resource kind, empty for document-level problems
	Field string // e.g. "identifier", "properties.url"
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Kind == "":
		return fmt.Sprintf("mapping config: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("resource %q: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("resource %q: %s: %v", e.Kind, e.Field, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }
