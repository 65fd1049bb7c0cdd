package expr

import (
	"strconv"
	"strings"
)

// node is one variant of the expression AST. Each node transforms an input
// value into an output value.
type node interface {
	// String reconstructs a canonical form of the node, used in error
	// messages and for config round-trip debugging.
	String() string
}

// identityNode is the bare '.' expression: output == input.
type identityNode struct{}

func (identityNode) String() string { return "." }

// fieldNode accesses a single object field (.name or ."quoted name").
type fieldNode struct {
	name string
}

func (n fieldNode) String() string {
	if isBareField(n.name) {
		return "." + n.name
	}
	return `."` + n.name + `"`
}

// indexNode accesses a single array element (.[0], .[-1]).
type indexNode struct {
	index int
}

func (n indexNode) String() string { return ".[" + strconv.Itoa(n.index) + "]" }

// sliceNode takes a subsequence of an array or string (.[1:3], .[:3], .[2:]).
// Nil bounds are open.
type sliceNode struct {
	lo *int
	hi *int
}

func (n sliceNode) String() string {
	var sb strings.Builder
	sb.WriteString(".[")
	if n.lo != nil {
		sb.WriteString(strconv.Itoa(*n.lo))
	}
	sb.WriteString(":")
	if n.hi != nil {
		sb.WriteString(strconv.Itoa(*n.hi))
	}
	sb.WriteString("]")
	return sb.String()
}

// literalNode is a constant string, number, boolean, or null.
type literalNode struct {
	value any
}

func (n literalNode) String() string {
	switch v := n.value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return "?"
	}
}

// pipeNode feeds the output of left into right. Dotted paths like .a.b are
// desugared into pipes of single field accesses.
type pipeNode struct {
	left  node
	right node
}

func (n pipeNode) String() string {
	l, r := n.left.String(), n.right.String()
	// Collapse chained field/index access into jq path form: .a | .b => .a.b
	if isPathNode(n.left) && isPathNode(n.right) && strings.HasPrefix(r, ".") {
		return l + strings.TrimPrefix(r, ".")
	}
	return l + " | " + r
}

// concatNode is the '+' operator over strings and arrays.
type concatNode struct {
	left  node
	right node
}

func (n concatNode) String() string { return n.left.String() + " + " + n.right.String() }

// callNode invokes a builtin function: split("s"), join("s"), map(f),
// first, last.
type callNode struct {
	name string
	args []node
}

func (n callNode) String() string {
	if len(n.args) == 0 {
		return n.name
	}
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.name + "(" + strings.Join(parts, "; ") + ")"
}

func isPathNode(n node) bool {
	switch nn := n.(type) {
	case fieldNode, indexNode, sliceNode:
		return true
	case pipeNode:
		return isPathNode(nn.left) && isPathNode(nn.right)
	}
	return false
}

func isBareField(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return true
}
