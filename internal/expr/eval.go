package expr

import "strings"

// Eval evaluates the expression against a JSON-like value (maps, slices,
// scalars, nil). Missing fields short-circuit to nil; genuine type
// mismatches return a *TypeError.
func (e *Expr) Eval(input any) (any, error) {
	return eval(e.root, input)
}

// Truthy reports whether an evaluated value passes a selector: anything but
// null and false.
func Truthy(v any) bool {
	return v != nil && v != false
}

func eval(n node, input any) (any, error) {
	switch nn := n.(type) {
	case identityNode:
		return input, nil
	case fieldNode:
		return evalField(nn, input)
	case indexNode:
		return evalIndex(nn, input)
	case sliceNode:
		return evalSlice(nn, input)
	case literalNode:
		return nn.value, nil
	case pipeNode:
		out, err := eval(nn.left, input)
		if err != nil {
			return nil, err
		}
		return eval(nn.right, out)
	case concatNode:
		return evalConcat(nn, input)
	case callNode:
		return evalCall(nn, input)
	}
	return nil, typeErrorf("eval", "unhandled node %T", n)
}

func evalField(n fieldNode, input any) (any, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v[n.name], nil
	}
	return nil, typeErrorf("field", "cannot access field %q of %s", n.name, typeName(input))
}

func evalIndex(n indexNode, input any) (any, error) {
	arr, ok := input.([]any)
	if !ok {
		if input == nil {
			return nil, nil
		}
		return nil, typeErrorf("index", "cannot index %s", typeName(input))
	}
	i := n.index
	if i < 0 {
		i += len(arr)
	}
	if i < 0 || i >= len(arr) {
		return nil, nil
	}
	return arr[i], nil
}

func evalSlice(n sliceNode, input any) (any, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case []any:
		lo, hi := sliceBounds(n, len(v))
		out := make([]any, hi-lo)
		copy(out, v[lo:hi])
		return out, nil
	case string:
		lo, hi := sliceBounds(n, len(v))
		return v[lo:hi], nil
	}
	return nil, typeErrorf("slice", "cannot slice %s", typeName(input))
}

// sliceBounds normalizes negative and out-of-range bounds the way jq does.
func sliceBounds(n sliceNode, length int) (int, int) {
	lo, hi := 0, length
	if n.lo != nil {
		lo = clampBound(*n.lo, length)
	}
	if n.hi != nil {
		hi = clampBound(*n.hi, length)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clampBound(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func evalConcat(n concatNode, input any) (any, error) {
	left, err := eval(n.left, input)
	if err != nil {
		return nil, err
	}
	right, err := eval(n.right, input)
	if err != nil {
		return nil, err
	}

	// Null is the identity for +.
	if left == nil {
		return right, nil
	}
	if right == nil {
		return left, nil
	}

	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, typeErrorf("+", "cannot add string and %s", typeName(right))
		}
		return ls + rs, nil
	}
	if la, ok := left.([]any); ok {
		ra, ok := right.([]any)
		if !ok {
			return nil, typeErrorf("+", "cannot add array and %s", typeName(right))
		}
		out := make([]any, 0, len(la)+len(ra))
		out = append(out, la...)
		out = append(out, ra...)
		return out, nil
	}
	return nil, typeErrorf("+", "cannot add %s and %s", typeName(left), typeName(right))
}

func evalCall(n callNode, input any) (any, error) {
	switch n.name {
	case "split":
		return evalSplit(n, input)
	case "join":
		return evalJoin(n, input)
	case "map":
		return evalMap(n, input)
	case "first":
		return evalIndex(indexNode{index: 0}, input)
	case "last":
		return evalIndex(indexNode{index: -1}, input)
	}
	return nil, typeErrorf(n.name, "unknown function")
}

func evalSplit(n callNode, input any) (any, error) {
	if input == nil {
		return nil, nil
	}
	s, ok := input.(string)
	if !ok {
		return nil, typeErrorf("split", "cannot split %s", typeName(input))
	}
	sep, err := stringArg(n, input)
	if err != nil {
		return nil, err
	}
	parts := splitString(s, sep)
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func evalJoin(n callNode, input any) (any, error) {
	if input == nil {
		return nil, nil
	}
	arr, ok := input.([]any)
	if !ok {
		return nil, typeErrorf("join", "cannot join %s", typeName(input))
	}
	sep, err := stringArg(n, input)
	if err != nil {
		return nil, err
	}
	out := ""
	for i, elem := range arr {
		if i > 0 {
			out += sep
		}
		switch e := elem.(type) {
		case nil:
			// jq renders null elements as empty strings
		case string:
			out += e
		default:
			return nil, typeErrorf("join", "cannot join array containing %s", typeName(elem))
		}
	}
	return out, nil
}

func evalMap(n callNode, input any) (any, error) {
	if input == nil {
		return nil, nil
	}
	arr, ok := input.([]any)
	if !ok {
		return nil, typeErrorf("map", "cannot map over %s", typeName(input))
	}
	out := make([]any, len(arr))
	for i, elem := range arr {
		v, err := eval(n.args[0], elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// stringArg evaluates a call's single argument against the current input and
// requires a string result.
func stringArg(n callNode, input any) (string, error) {
	v, err := eval(n.args[0], input)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeErrorf(n.name, "separator must be a string, got %s", typeName(v))
	}
	return s, nil
}

// splitString matches jq: "" | split(x) yields [], not [""].
func splitString(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
