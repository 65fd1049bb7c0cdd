// Package appconfig loads and compiles the declarative resource-mapping
// configuration (port-app-config.yaml).
//
// The file declares, per resource kind, a selector that filters fetched
// records and a set of field expressions that project a raw record onto a
// target entity. All expressions are compiled at load time; a malformed
// expression is fatal and is reported with the offending kind and field.
//
// Structure:
//
//	types.go    - raw YAML document shapes
//	loader.go   - parse + compile into the immutable Config
//	registry.go - process-wide, load-once configuration holder
//
// A loaded Config is immutable and safe for concurrent readers.
package appconfig
