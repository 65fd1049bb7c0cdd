// Package entity defines the catalog entity produced by resource mapping and
// pure set operations over entities: diffing two states, ordering by
// relation dependencies, and planning safe deletions.
//
// Nothing in this package performs I/O; persisting entities to the catalog
// is the host pipeline's job.
package entity

// Entity is the output of applying an entity mapping to one raw record.
type Entity struct {
	Identifier string         `json:"identifier"`
	Title      string         `json:"title,omitempty"`
	Blueprint  string         `json:"blueprint"`
	Team       string         `json:"team,omitempty"`
	Properties map[string]any `json:"properties"`

	// Relations values are a single target identifier or a list of them.
	Relations map[string]any `json:"relations,omitempty"`
}

// Ref identifies an entity within the catalog: blueprint plus identifier.
type Ref struct {
	Identifier string `json:"identifier"`
	Blueprint  string `json:"blueprint"`
}

// Ref returns the entity's catalog reference.
func (e *Entity) Ref() Ref {
	return Ref{Identifier: e.Identifier, Blueprint: e.Blueprint}
}

// Same reports whether two entities denote the same catalog object.
func Same(a, b *Entity) bool {
	return a.Identifier == b.Identifier && a.Blueprint == b.Blueprint
}

// RelationTargets flattens the entity's relation values into the list of
// referenced identifiers, skipping nulls.
func (e *Entity) RelationTargets() []string {
	var targets []string
	for _, v := range e.Relations {
		switch t := v.(type) {
		case string:
			if t != "" {
				targets = append(targets, t)
			}
		case []string:
			for _, s := range t {
				if s != "" {
					targets = append(targets, s)
				}
			}
		case []any:
			for _, elem := range t {
				if s, ok := elem.(string); ok && s != "" {
					targets = append(targets, s)
				}
			}
		}
	}
	return targets
}
