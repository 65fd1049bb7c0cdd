package mapper

import (
	"fmt"
	"log/slog"

	"github.com/portway/mapping-core/internal/appconfig"
	"github.com/portway/mapping-core/internal/expr"
	"github.com/portway/mapping-core/pkg/entity"
)

// Builder applies one compiled resource mapping to records.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a Builder. A nil logger falls back to slog.Default().
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Matches evaluates the resource's selector.query against a record. A
// runtime evaluation error drops the record and is returned for reporting.
func (b *Builder) Matches(res *appconfig.Resource, record Record) (bool, error) {
	v, err := res.Query().Eval(record)
	if err != nil {
		return false, fmt.Errorf("kind %q: selector.query: %w", res.Kind(), err)
	}
	return expr.Truthy(v), nil
}

// Build maps one record to an entity. It returns a *RejectedError when the
// identifier does not resolve to a non-empty string; failures on individual
// properties or relations null out just that field and are logged.
func (b *Builder) Build(res *appconfig.Resource, record Record) (*entity.Entity, error) {
	identifier, err := b.requiredString(res, "identifier", res.Identifier(), record)
	if err != nil {
		return nil, err
	}

	e := &entity.Entity{
		Identifier: identifier,
		Blueprint:  res.Blueprint(), // constant per resource, validated at load
		Properties: make(map[string]any, len(res.Properties())),
	}

	if title := res.Title(); title != nil {
		e.Title = b.optionalString(res, "title", title, record)
	}
	if team := res.Team(); team != nil {
		e.Team = b.optionalString(res, "team", team, record)
	}

	for name, pe := range res.Properties() {
		e.Properties[name] = b.evalOptional(res, "properties."+name, pe, record)
	}

	relations := res.Relations()
	if len(relations) > 0 {
		e.Relations = make(map[string]any, len(relations))
		for name, re := range relations {
			e.Relations[name] = b.relationValue(res, name, re, record)
		}
	}
	return e, nil
}

// requiredString evaluates an expression that must yield a non-empty string
// for the record to be ingested at all.
func (b *Builder) requiredString(res *appconfig.Resource, field string, e *expr.Expr, record Record) (string, error) {
	reject := func(reason string) error {
		return &RejectedError{Kind: res.Kind(), RawKey: rawKey(record), Reason: reason}
	}

	v, err := e.Eval(record)
	if err != nil {
		return "", reject(fmt.Sprintf("%s: %v", field, err))
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", reject(fmt.Sprintf("%s resolved to %s, need a non-empty string", field, describeValue(v)))
	}
	return s, nil
}

// optionalString evaluates an optional top-level string field, degrading a
// non-string result to empty.
func (b *Builder) optionalString(res *appconfig.Resource, field string, e *expr.Expr, record Record) string {
	v := b.evalOptional(res, field, e, record)
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		b.fieldDegraded(res, field, fmt.Errorf("expected string, got %T", v))
		return ""
	}
	return s
}

// evalOptional evaluates an optional field expression, degrading any runtime
// type mismatch to null.
func (b *Builder) evalOptional(res *appconfig.Resource, field string, e *expr.Expr, record Record) any {
	v, err := e.Eval(record)
	if err != nil {
		b.fieldDegraded(res, field, err)
		return nil
	}
	return v
}

// relationValue evaluates a relation mapping and keeps only the shapes a
// relation may take: null, a target identifier, or a list of them.
func (b *Builder) relationValue(res *appconfig.Resource, name string, e *expr.Expr, record Record) any {
	v := b.evalOptional(res, "relations."+name, e, record)
	switch t := v.(type) {
	case nil, string:
		return t
	case []any:
		targets := make([]any, len(t))
		for i, elem := range t {
			switch elem.(type) {
			case nil, string:
				targets[i] = elem
			default:
				b.fieldDegraded(res, "relations."+name, fmt.Errorf("relation target must be a string, got %T", elem))
				targets[i] = nil
			}
		}
		return targets
	default:
		b.fieldDegraded(res, "relations."+name, fmt.Errorf("relation must resolve to a string or list of strings, got %T", v))
		return nil
	}
}

func (b *Builder) fieldDegraded(res *appconfig.Resource, field string, err error) {
	b.logger.Warn("field degraded to null",
		slog.String("kind", res.Kind()),
		slog.String("field", field),
		slog.String("error", err.Error()),
	)
}

// rawKey pulls the record's natural "key" for error reporting, when present.
func rawKey(record Record) string {
	if k, ok := record["key"].(string); ok {
		return k
	}
	if id, ok := record["id"].(string); ok {
		return id
	}
	return ""
}

func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "an empty string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
