package parser

import (
	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
)

func (p *Parser) parseDecl() (ast.Decl, error) {
	return firstMatch(
		declAlt(p.parseVisDecl),
		declAlt(p.parseAliasDecl),
		declAlt(p.parseFnDecl),
		declAlt(p.parseIfaceDecl),
		declAlt(p.parseModDecl),
		declAlt(p.parseUseDecl),
		declAlt(p.parseAnnotation),
	)()
}

// parseVisibility parses `pub` and its `:scope` and `:access` qualifiers,
// each given at most once.
func (p *Parser) parseVisibility() (ast.Visibility, error) {
	var vis ast.Visibility
	if _, err := p.expect(lexer.Pub); err != nil {
		return vis, err
	}
	for {
		_, ok, err := p.accept(lexer.Colon)
		if err != nil || !ok {
			return vis, err
		}
		t, err := p.peek()
		if err != nil {
			return vis, err
		}
		switch t.Tok.Kind {
		case lexer.Pkg, lexer.Mod:
			if vis.Scope != ast.VisScopeNone {
				return vis, lexer.Errorf(lexer.KindSyntax, t.Pos, "expected unique scope or access alias")
			}
			vis.Scope = ast.VisScopePkg
			if t.Tok.Kind == lexer.Mod {
				vis.Scope = ast.VisScopeMod
			}
		case lexer.Get, lexer.Set:
			if vis.Access != ast.AccessNone {
				return vis, lexer.Errorf(lexer.KindSyntax, t.Pos, "expected unique scope or access alias")
			}
			vis.Access = ast.AccessGet
			if t.Tok.Kind == lexer.Set {
				vis.Access = ast.AccessSet
			}
		default:
			return vis, p.expected("scope or access alias")
		}
		p.skip()
	}
}

func (p *Parser) parseVisDecl() (*ast.VisDecl, error) {
	t, err := p.peek()
	if err != nil || t.Tok.Kind != lexer.Pub {
		return nil, err
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}
	d, err := expectNode(p, "declaration", p.parseDecl)
	if err != nil {
		return nil, err
	}
	return &ast.VisDecl{At: t.Pos, Vis: vis, Decl: d}, nil
}

// parseBound parses an optional `: expr`.
func (p *Parser) parseBound() (ast.Expr, error) {
	_, ok, err := p.accept(lexer.Colon)
	if err != nil || !ok {
		return nil, err
	}
	return expectNode(p, "type", p.parseExpr)
}

// parseHeadBound parses an optional `: expr` that a body may follow.
func (p *Parser) parseHeadBound() (ast.Expr, error) {
	return restricted(p, head, p.parseBound)
}

// parseInit parses an optional `= expr`.
func (p *Parser) parseInit() (ast.Expr, error) {
	_, ok, err := p.accept(lexer.Equal)
	if err != nil || !ok {
		return nil, err
	}
	return expectNode(p, "expression", p.parseExpr)
}

func (p *Parser) parseAliasDecl() (*ast.AliasDecl, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	eval, ok := binders[t.Tok.Kind]
	if !ok {
		return nil, nil
	}
	p.skip()
	d := &ast.AliasDecl{At: t.Pos, Eval: eval}
	if d.Name, err = expectNode(p, "alias", p.parseAlias); err != nil {
		return nil, err
	}
	if d.Bound, err = p.parseBound(); err != nil {
		return nil, err
	}
	if d.Value, err = p.parseInit(); err != nil {
		return nil, err
	}
	if d.Bound == nil && d.Value == nil {
		return nil, p.expected("':' or '='")
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseFnDecl() (*ast.FnDecl, error) {
	t, ok, err := p.accept(lexer.Fn)
	if err != nil || !ok {
		return nil, err
	}
	d := &ast.FnDecl{At: t.Pos}
	if d.Name, err = expectNode(p, "function alias", p.parseAlias); err != nil {
		return nil, err
	}
	if d.Sig, err = p.parseHeadBound(); err != nil {
		return nil, err
	}
	if d.Body, err = p.parseExecScope(); err != nil {
		return nil, err
	}
	if d.Body == nil {
		if err := p.expectForward(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// expectForward ends a declaration without a body.
func (p *Parser) expectForward() error {
	_, ok, err := p.accept(lexer.Semicolon)
	if err != nil {
		return err
	}
	if !ok {
		return p.expected("'{' or ';'")
	}
	return nil
}

func (p *Parser) parseIfaceDecl() (*ast.IfaceDecl, error) {
	t, ok, err := p.accept(lexer.Iface)
	if err != nil || !ok {
		return nil, err
	}
	d := &ast.IfaceDecl{At: t.Pos}
	if d.Name, err = expectNode(p, "interface alias", p.parseAlias); err != nil {
		return nil, err
	}
	if d.Bound, err = p.parseHeadBound(); err != nil {
		return nil, err
	}
	if d.Body, err = expectNode(p, "'{'", p.parseConstScope); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseModDecl() (*ast.ModDecl, error) {
	t, ok, err := p.accept(lexer.Mod)
	if err != nil || !ok {
		return nil, err
	}
	return p.parseModBody(t)
}

// parseModBody parses a module declaration after its `mod` keyword t.
func (p *Parser) parseModBody(t lexer.SrcToken) (*ast.ModDecl, error) {
	var err error
	d := &ast.ModDecl{At: t.Pos}
	if d.Name, err = expectNode(p, "module alias", p.parseAlias); err != nil {
		return nil, err
	}
	if d.Bound, err = p.parseHeadBound(); err != nil {
		return nil, err
	}
	if d.Body, err = p.parseConstScope(); err != nil {
		return nil, err
	}
	if d.Body == nil {
		if err := p.expectForward(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (p *Parser) parseUseDecl() (*ast.UseDecl, error) {
	t, ok, err := p.accept(lexer.Use)
	if err != nil || !ok {
		return nil, err
	}
	d := &ast.UseDecl{At: t.Pos}
	if d.Path, err = expectNode(p, "path", p.parseExpr); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return d, nil
}

// parseAnnotation parses `![tag] decl` and `![tag = expr]`.
func (p *Parser) parseAnnotation() (*ast.Annotation, error) {
	t, ok, err := p.accept(lexer.Bang)
	if err != nil || !ok {
		return nil, err
	}
	if _, err := p.expect(lexer.LBracket); err != nil {
		return nil, err
	}
	a := &ast.Annotation{At: t.Pos}
	if a.Tag, err = expectNode(p, "annotation tag", p.parseAlias); err != nil {
		return nil, err
	}

	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch next.Tok.Kind {
	case lexer.RBracket:
		p.skip()
		if a.Decl, err = expectNode(p, "declaration", p.parseDecl); err != nil {
			return nil, err
		}
	case lexer.Equal:
		p.skip()
		a.Value, err = delimited(p, func() (ast.Expr, error) {
			return expectNode(p, "expression", p.parseExpr)
		})
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
	default:
		return nil, p.expected("']' or '='")
	}
	return a, nil
}
