// Package parser builds idk syntax trees from a token stream.
//
// Every construct has a parse method following one protocol: it returns a
// nil node and no error when the next token cannot start the construct,
// having consumed nothing; once it has consumed its introducing token any
// mismatch is an error. expectNode turns an absent node into an error.
// Parsing stops at the first error and no partial tree is returned.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger receiving debug records for each top-level
// declaration.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// restriction disables suffixes that would otherwise swallow the token
// following an expression.
type restriction struct {
	// `{` opens a body, not a call argument.
	noScopeCall bool
	// `->` ends a match pattern or a return type.
	noArrow bool
}

// Parser is a recursive-descent parser with one token of lookahead. It
// owns its Tokenizer exclusively.
type Parser struct {
	tok    *lexer.Tokenizer
	logger *slog.Logger
	res    restriction
}

// New creates a Parser reading from tok.
func New(tok *lexer.Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		tok:    tok,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// File parses declarations until the input is exhausted.
func (p *Parser) File(name string) (*ast.File, error) {
	f := &ast.File{Name: name}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Tok.Kind == lexer.EOF {
			return f, nil
		}
		d, err := expectNode(p, "declaration", p.parseDecl)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("parsed declaration",
			slog.String("file", name),
			slog.String("kind", nodeKind(d)),
			slog.String("pos", d.Pos().String()))
		f.Decls = append(f.Decls, d)
	}
}

// Decl parses one declaration.
func (p *Parser) Decl() (ast.Decl, error) { return expectNode(p, "declaration", p.parseDecl) }

// Stmt parses one statement.
func (p *Parser) Stmt() (ast.Stmt, error) { return expectNode(p, "statement", p.parseStmt) }

// Expr parses one expression.
func (p *Parser) Expr() (ast.Expr, error) { return expectNode(p, "expression", p.parseExpr) }

// ParseFile parses a whole source file read from r.
func ParseFile(name string, r io.Reader, opts ...Option) (*ast.File, error) {
	return New(lexer.New(r), opts...).File(name)
}

// ParseDecl parses the first declaration read from r.
func ParseDecl(r io.Reader, opts ...Option) (ast.Decl, error) {
	return New(lexer.New(r), opts...).Decl()
}

// ParseStmt parses the first statement read from r.
func ParseStmt(r io.Reader, opts ...Option) (ast.Stmt, error) {
	return New(lexer.New(r), opts...).Stmt()
}

// ParseExpr parses the first expression read from r.
func ParseExpr(r io.Reader, opts ...Option) (ast.Expr, error) {
	return New(lexer.New(r), opts...).Expr()
}

// peek returns the next token, or an EOF token positioned at the end of
// input.
func (p *Parser) peek() (lexer.SrcToken, error) {
	t, err := p.tok.Peek()
	if err != nil {
		return lexer.SrcToken{}, err
	}
	if t == nil {
		return lexer.SrcToken{Tok: lexer.Fixed(lexer.EOF), Pos: p.tok.Pos()}, nil
	}
	return *t, nil
}

// skip consumes a token that has already been peeked.
func (p *Parser) skip() {
	_, _ = p.tok.Next()
}

// accept consumes the next token if it is of kind k.
func (p *Parser) accept(k lexer.Kind) (lexer.SrcToken, bool, error) {
	t, err := p.peek()
	if err != nil || t.Tok.Kind != k {
		return t, false, err
	}
	p.skip()
	return t, true, nil
}

func (p *Parser) expect(k lexer.Kind) (lexer.SrcToken, error) {
	return p.tok.Expect(lexer.Fixed(k))
}

// expected reports that the next token cannot start what.
func (p *Parser) expected(what string) error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.Tok.Kind == lexer.EOF {
		return lexer.Errorf(lexer.KindExhausted, t.Pos, "expected %s, found end of input", what)
	}
	return lexer.Errorf(lexer.KindUnexpectedToken, t.Pos, "expected %s, found %s", what, t.Tok.Describe())
}

// restricted runs parse under r and restores the previous restriction.
func restricted[T any](p *Parser, r restriction, parse func() (T, error)) (T, error) {
	saved := p.res
	p.res = r
	defer func() { p.res = saved }()
	return parse()
}

// delimited runs parse with every restriction lifted, for content between
// brackets.
func delimited[T any](p *Parser, parse func() (T, error)) (T, error) {
	return restricted(p, restriction{}, parse)
}

func nodeKind(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
