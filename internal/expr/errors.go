package expr

import "fmt"

// ParseError reports a syntactically invalid expression. It is returned at
// configuration load time and is expected to abort startup.
type ParseError struct {
	Src     string
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d in %q: %s", e.Pos, e.Src, e.Message)
}

// TypeError reports a runtime type mismatch, e.g. split applied to a number.
// Callers are expected to degrade the affected field to null rather than
// abort the batch.
type TypeError struct {
	Op      string
	Message string
}

func (e *TypeError) Error() string {
	return e.Op + ": " + e.Message
}

func typeErrorf(op, format string, args ...any) *TypeError {
	return &TypeError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// typeName returns a human-readable name for a JSON-like value's type.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
