package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenDot
	tokenIdent
	tokenString
	tokenNumber
	tokenPipe
	tokenPlus
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of expression"
	case tokenDot:
		return "'.'"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenPipe:
		return "'|'"
	case tokenPlus:
		return "'+'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string // identifier name, decoded string value, or number text
	pos  int    // byte offset in the source
}

// lexer turns an expression string into a token stream.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

// next returns the next token, skipping whitespace.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch c {
	case '.':
		l.pos++
		return token{kind: tokenDot, pos: start}, nil
	case '|':
		l.pos++
		return token{kind: tokenPipe, pos: start}, nil
	case '+':
		l.pos++
		return token{kind: tokenPlus, pos: start}, nil
	case '(':
		l.pos++
		return token{kind: tokenLParen, pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokenRParen, pos: start}, nil
	case '[':
		l.pos++
		return token{kind: tokenLBracket, pos: start}, nil
	case ']':
		l.pos++
		return token{kind: tokenRBracket, pos: start}, nil
	case ':':
		l.pos++
		return token{kind: tokenColon, pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokenComma, pos: start}, nil
	case '"':
		return l.lexString()
	}

	if c == '-' || isDigit(c) {
		return l.lexNumber()
	}
	if isIdentStart(rune(c)) {
		return l.lexIdent()
	}

	return token{}, &ParseError{Src: l.src, Pos: start, Message: fmt.Sprintf("unexpected character %q", c)}
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tokenString, text: sb.String(), pos: start}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, &ParseError{Src: l.src, Pos: l.pos, Message: "unterminated escape sequence"}
			}
			l.pos++
			switch l.src[l.pos] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, &ParseError{Src: l.src, Pos: l.pos, Message: fmt.Sprintf("unsupported escape %q", l.src[l.pos])}
			}
			l.pos++
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, &ParseError{Src: l.src, Pos: start, Message: "unterminated string literal"}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			return token{}, &ParseError{Src: l.src, Pos: start, Message: "'-' must be followed by digits"}
		}
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokenNumber, text: l.src[start:l.pos], pos: start}, nil
}

func (l *lexer) lexIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
		l.pos++
	}
	return token{kind: tokenIdent, text: l.src[start:l.pos], pos: start}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
