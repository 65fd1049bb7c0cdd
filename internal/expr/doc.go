// Package expr implements the pipeline expression language used by mapping
// configurations to project raw source records onto entity fields.
//
// Expressions are a small jq-style subset: field access (.a.b, ."48x48"),
// array indexing and slicing (.[0], .[:3]), split/join/map, string
// concatenation with +, string/boolean/null literals, and composition via |.
//
// Structure:
//
//	token.go   - token types and lexer
//	ast.go     - tagged-variant AST nodes
//	parser.go  - recursive-descent parser, load-time validation
//	eval.go    - pure per-record evaluation
//	errors.go  - ParseError, TypeError
//
// Expressions are parsed once at configuration load and evaluated many times.
// Evaluation is pure and safe for concurrent use.
package expr
