// Package parser implements a recursive-descent parser with explicit
// operator precedence over the token stream produced by internal/lexer.
package parser

import (
	"fmt"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/lexer"
	"github.com/waxlang/waxc/internal/token"
)

// ErrorKind distinguishes the parse-error taxonomy named in the
// language's error handling design.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	Unknown
)

// Error is the parser's single error type, tagged by ErrorKind. Found
// is populated for UnexpectedToken; Message is populated for Unknown.
type Error struct {
	Kind    ErrorKind
	Found   token.Token
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "unexpected end of input"
	case Unknown:
		return e.Message
	default:
		return fmt.Sprintf("unexpected token %s", e.Found)
	}
}

func errUnexpected(found token.Token) *Error {
	return &Error{Kind: UnexpectedToken, Found: found}
}

func errEOF() *Error {
	return &Error{Kind: UnexpectedEOF}
}

func errUnknown(format string, args ...interface{}) *Error {
	return &Error{Kind: Unknown, Message: fmt.Sprintf(format, args...)}
}

// Parser consumes a lexer's token stream and produces an AST.
type Parser struct {
	lex *lexer.Lexer
}

// New creates a parser over the given lexer.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseProgram parses a complete top-level program: a sequence of
// statements read until EOF.
func ParseProgram(src string) (ast.Block, error) {
	p := New(lexer.New(src))
	return p.parseBlock(false)
}

func (p *Parser) peek() token.Token {
	return p.lex.Peek()
}

func (p *Parser) next() token.Token {
	return p.lex.Next()
}

// expect consumes the next token if it has kind k, or returns a
// parser *Error wrapping the lexer's mismatch/EOF classification.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	t, err := p.lex.Expect(k)
	if err == nil {
		return t, nil
	}
	lexErr := err.(*lexer.Error)
	if lexErr.EOF {
		return t, errEOF()
	}
	return t, errUnexpected(lexErr.Found)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}
