package expr

import (
	"fmt"
	"strconv"
)

// builtins maps supported function names to their arity. Anything else is a
// load-time error so misconfigured mappings fail at startup instead of
// silently producing nulls.
var builtins = map[string]int{
	"split": 1,
	"join":  1,
	"map":   1,
	"first": 0,
	"last":  0,
}

// Expr is a compiled expression. Compile once at configuration load, then
// evaluate per record; evaluation is pure and safe for concurrent use.
type Expr struct {
	src  string
	root node
}

// Parse compiles an expression string. A malformed expression returns a
// *ParseError.
func Parse(src string) (*Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokenEOF); err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root}, nil
}

// MustParse is Parse for statically known expressions; it panics on error.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.src }

func (e *Expr) String() string { return e.root.String() }

// StringLiteral reports whether the expression is a bare string constant and
// returns its value. Blueprint mappings are required to be of this form.
func (e *Expr) StringLiteral() (string, bool) {
	lit, ok := e.root.(literalNode)
	if !ok {
		return "", false
	}
	s, ok := lit.value.(string)
	return s, ok
}

// --- Parser ---

type parser struct {
	src    string
	tokens []token
	pos    int
}

func newParser(src string) (*parser, error) {
	lex := newLexer(src)
	var tokens []token
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokenEOF {
			break
		}
	}
	return &parser{src: src, tokens: tokens}, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.peek()
	if tok.kind != kind {
		return p.errorAt(tok, "expected %s, found %s", kind, tok.kind)
	}
	p.advance()
	return nil
}

func (p *parser) errorAt(tok token, format string, args ...any) error {
	return &ParseError{Src: p.src, Pos: tok.pos, Message: fmt.Sprintf(format, args...)}
}

// parsePipeline := concat ( '|' concat )*
func (p *parser) parsePipeline() (node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenPipe {
		p.advance()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = pipeNode{left: left, right: right}
	}
	return left, nil
}

// parseConcat := term ( '+' term )*
func (p *parser) parseConcat() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenPlus {
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = concatNode{left: left, right: right}
	}
	return left, nil
}

// parseTerm := primary suffix*
func (p *parser) parseTerm() (node, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseSuffixes(prim)
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenDot:
		return p.parsePath()
	case tokenString:
		p.advance()
		return literalNode{value: tok.text}, nil
	case tokenNumber:
		p.advance()
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %q", tok.text)
		}
		return literalNode{value: n}, nil
	case tokenIdent:
		return p.parseIdent()
	case tokenLParen:
		p.advance()
		inner, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errorAt(tok, "expected expression, found %s", tok.kind)
}

// parsePath parses '.' followed by any chain of field and bracket accesses.
// A bare '.' is the identity expression.
func (p *parser) parsePath() (node, error) {
	if err := p.expect(tokenDot); err != nil {
		return nil, err
	}

	var result node = identityNode{}
	expectField := true // the leading dot may introduce a field name

	for {
		tok := p.peek()
		switch {
		case expectField && tok.kind == tokenIdent:
			p.advance()
			result = chain(result, fieldNode{name: tok.text})
		case expectField && tok.kind == tokenString:
			p.advance()
			result = chain(result, fieldNode{name: tok.text})
		case tok.kind == tokenLBracket:
			access, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			result = chain(result, access)
		case tok.kind == tokenDot:
			p.advance()
			next := p.peek()
			if next.kind != tokenIdent && next.kind != tokenString && next.kind != tokenLBracket {
				return nil, p.errorAt(next, "expected field name after '.', found %s", next.kind)
			}
			expectField = true
			continue
		default:
			return result, nil
		}
		expectField = false
	}
}

// parseBracket parses '[' index-or-slice ']'.
func (p *parser) parseBracket() (node, error) {
	if err := p.expect(tokenLBracket); err != nil {
		return nil, err
	}

	var lo *int
	tok := p.peek()
	if tok.kind == tokenNumber {
		p.advance()
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, p.errorAt(tok, "invalid index %q", tok.text)
		}
		lo = &n
	}

	switch p.peek().kind {
	case tokenRBracket:
		p.advance()
		if lo == nil {
			return nil, p.errorAt(tok, "empty brackets: expected index or slice")
		}
		return indexNode{index: *lo}, nil
	case tokenColon:
		p.advance()
		var hi *int
		if t := p.peek(); t.kind == tokenNumber {
			p.advance()
			n, err := strconv.Atoi(t.text)
			if err != nil {
				return nil, p.errorAt(t, "invalid index %q", t.text)
			}
			hi = &n
		}
		if err := p.expect(tokenRBracket); err != nil {
			return nil, err
		}
		if lo == nil && hi == nil {
			return nil, p.errorAt(tok, "slice needs at least one bound")
		}
		return sliceNode{lo: lo, hi: hi}, nil
	}
	return nil, p.errorAt(p.peek(), "expected ']' or ':', found %s", p.peek().kind)
}

// parseIdent parses keyword literals and builtin function calls.
func (p *parser) parseIdent() (node, error) {
	tok := p.advance()
	switch tok.text {
	case "true":
		return literalNode{value: true}, nil
	case "false":
		return literalNode{value: false}, nil
	case "null":
		return literalNode{value: nil}, nil
	}

	arity, ok := builtins[tok.text]
	if !ok {
		return nil, p.errorAt(tok, "unknown function %q", tok.text)
	}

	if arity == 0 {
		if p.peek().kind == tokenLParen {
			return nil, p.errorAt(p.peek(), "%s takes no arguments", tok.text)
		}
		return callNode{name: tok.text}, nil
	}

	if err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	arg, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokenRParen); err != nil {
		return nil, err
	}
	return callNode{name: tok.text, args: []node{arg}}, nil
}

// parseSuffixes applies trailing bracket/field accesses to non-path primaries,
// e.g. (.self | split("/"))[0] or map(.key)[:2].
func (p *parser) parseSuffixes(target node) (node, error) {
	for {
		switch p.peek().kind {
		case tokenLBracket:
			access, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			target = chain(target, access)
		case tokenDot:
			// A field path applied to the current value.
			path, err := p.parsePath()
			if err != nil {
				return nil, err
			}
			target = chain(target, path)
		default:
			return target, nil
		}
	}
}

// chain composes two accesses, eliding identity.
func chain(left, right node) node {
	if _, ok := left.(identityNode); ok {
		return right
	}
	if _, ok := right.(identityNode); ok {
		return left
	}
	return pipeNode{left: left, right: right}
}
