package parser

import (
	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/position"
)

// expectNode runs parse and reports an error naming what when the node is
// absent.
func expectNode[T comparable](p *Parser, what string, parse func() (T, error)) (T, error) {
	var none T
	n, err := parse()
	if err != nil {
		return none, err
	}
	if n == none {
		return none, p.expected(what)
	}
	return n, nil
}

// firstMatch tries each alternative in order and returns the first present
// node. Alternatives must not consume input when they decline.
func firstMatch[T comparable](alts ...func() (T, error)) func() (T, error) {
	return func() (T, error) {
		var none T
		for _, alt := range alts {
			n, err := alt()
			if err != nil || n != none {
				return n, err
			}
		}
		return none, nil
	}
}

// chain extends base with suffixes until none of them applies. A suffix
// returns the zero node to decline.
func chain[T comparable](base T, suffixes ...func(T) (T, error)) (T, error) {
	var none T
	for {
		extended := false
		for _, suffix := range suffixes {
			next, err := suffix(base)
			if err != nil {
				return none, err
			}
			if next != none {
				base = next
				extended = true
				break
			}
		}
		if !extended {
			return base, nil
		}
	}
}

// exprAlt, stmtAlt and declAlt widen a concrete node parser into its
// family, keeping an absent node absent.
func exprAlt[N interface {
	comparable
	ast.Expr
}](parse func() (N, error)) func() (ast.Expr, error) {
	return func() (ast.Expr, error) {
		var none N
		n, err := parse()
		if err != nil || n == none {
			return nil, err
		}
		return n, nil
	}
}

func stmtAlt[N interface {
	comparable
	ast.Stmt
}](parse func() (N, error)) func() (ast.Stmt, error) {
	return func() (ast.Stmt, error) {
		var none N
		n, err := parse()
		if err != nil || n == none {
			return nil, err
		}
		return n, nil
	}
}

func declAlt[N interface {
	comparable
	ast.Decl
}](parse func() (N, error)) func() (ast.Decl, error) {
	return func() (ast.Decl, error) {
		var none N
		n, err := parse()
		if err != nil || n == none {
			return nil, err
		}
		return n, nil
	}
}

// parseList parses items separated by commas up to and including close.
// A trailing comma is allowed; trailing reports whether one was present.
func parseList[T comparable](p *Parser, what string, close lexer.Kind, item func() (T, error)) (items []T, trailing bool, err error) {
	for {
		if _, ok, err := p.accept(close); err != nil || ok {
			return items, trailing, err
		}
		n, err := expectNode(p, what, item)
		if err != nil {
			return nil, false, err
		}
		items = append(items, n)
		_, trailing, err = p.accept(lexer.Comma)
		if err != nil {
			return nil, false, err
		}
		if !trailing {
			_, err := p.expect(close)
			return items, false, err
		}
	}
}

// parseScope parses `{ item* }`. It returns ok=false without consuming
// anything when the next token is not `{`.
func parseScope[T comparable](p *Parser, what string, item func() (T, error)) (at position.Position, items []T, ok bool, err error) {
	open, ok, err := p.accept(lexer.LBrace)
	if err != nil || !ok {
		return at, nil, false, err
	}
	items, err = delimited(p, func() ([]T, error) {
		var items []T
		for {
			t, err := p.peek()
			if err != nil {
				return nil, err
			}
			switch t.Tok.Kind {
			case lexer.RBrace:
				p.skip()
				return items, nil
			case lexer.EOF:
				return nil, lexer.Errorf(lexer.KindExhausted, t.Pos, "expected '}' to close scope opened at %s", open.Pos)
			}
			n, err := expectNode(p, what, item)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
	})
	if err != nil {
		return at, nil, true, err
	}
	return open.Pos, items, true, nil
}
