package parser

import (
	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
)

var ctrlOps = map[lexer.Kind]ast.CtrlOp{
	lexer.Return:   ast.CtrlReturn,
	lexer.Defer:    ast.CtrlDefer,
	lexer.Continue: ast.CtrlContinue,
	lexer.Break:    ast.CtrlBreak,
}

// head is the restriction for expressions directly followed by a body.
var head = restriction{noScopeCall: true}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Tok.Kind {
	case lexer.Return, lexer.Defer, lexer.Continue, lexer.Break:
		return stmtAlt(p.parseCtrlStmt)()
	case lexer.If:
		return stmtAlt(p.parseIfStmt)()
	case lexer.While:
		return stmtAlt(p.parseWhileStmt)()
	case lexer.Match:
		return stmtAlt(p.parseMatchStmt)()
	case lexer.Mod:
		return p.parseModStmt()
	case lexer.LBrace:
		return p.parseBlockStmt()
	}

	d, err := p.parseDecl()
	if err != nil {
		return nil, err
	}
	if d != nil {
		return &ast.DeclStmt{Decl: d}, nil
	}
	x, err := p.parseExpr()
	if err != nil || x == nil {
		return nil, err
	}
	return p.parseExprStmt(x)
}

// parseBlockStmt parses a scope in statement position. The block ends at
// its `}`, so a following `(`, `[` or `{` starts the next statement.
func (p *Parser) parseBlockStmt() (ast.Stmt, error) {
	body, err := p.parseExecScope()
	if err != nil {
		return nil, err
	}
	if _, _, err := p.accept(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: body}, nil
}

// parseModStmt resolves `mod` at statement start: followed by an alias it
// declares a module, otherwise it is the module scope alias beginning an
// expression.
func (p *Parser) parseModStmt() (ast.Stmt, error) {
	t, err := p.expect(lexer.Mod)
	if err != nil {
		return nil, err
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Tok.Kind == lexer.Alias {
		d, err := p.parseModBody(t)
		if err != nil {
			return nil, err
		}
		return &ast.DeclStmt{Decl: d}, nil
	}
	x, err := p.parseSuffixes(&ast.ScopeAlias{At: t.Pos, Scope: ast.ScopeMod})
	if err != nil {
		return nil, err
	}
	if x, err = p.parseInfix(x, LOWEST); err != nil {
		return nil, err
	}
	return p.parseExprStmt(x)
}

// parseExprStmt finishes a statement that began with the expression x:
// an assignment when `=` follows, otherwise an expression statement.
func (p *Parser) parseExprStmt(x ast.Expr) (ast.Stmt, error) {
	_, assign, err := p.accept(lexer.Equal)
	if err != nil {
		return nil, err
	}
	if assign {
		value, err := expectNode(p, "expression", p.parseExpr)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: x, Value: value}, nil
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

func (p *Parser) parseCtrlStmt() (*ast.CtrlStmt, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	op, ok := ctrlOps[t.Tok.Kind]
	if !ok {
		return nil, nil
	}
	p.skip()
	s := &ast.CtrlStmt{At: t.Pos, Op: op}
	switch op {
	case ast.CtrlReturn:
		s.Value, err = p.parseExpr()
	case ast.CtrlDefer:
		s.Value, err = expectNode(p, "expression", p.parseExpr)
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return s, nil
}

// parseCond parses the head of an if, while or match statement.
func (p *Parser) parseCond(what string) (ast.Expr, error) {
	return restricted(p, head, func() (ast.Expr, error) {
		return expectNode(p, what, p.parseExpr)
	})
}

func (p *Parser) parseBody() (*ast.ExecScope, error) {
	return expectNode(p, "'{'", p.parseExecScope)
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	t, ok, err := p.accept(lexer.If)
	if err != nil || !ok {
		return nil, err
	}
	s := &ast.IfStmt{At: t.Pos}
	if s.Cond, err = p.parseCond("condition"); err != nil {
		return nil, err
	}
	if s.Body, err = p.parseBody(); err != nil {
		return nil, err
	}

	_, ok, err = p.accept(lexer.Else)
	if err != nil || !ok {
		return s, err
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Tok.Kind == lexer.If {
		if s.Else, err = p.parseIfStmt(); err != nil {
			return nil, err
		}
		return s, nil
	}
	body, err := expectNode(p, "'if' or '{' after 'else'", p.parseExecScope)
	if err != nil {
		return nil, err
	}
	s.Else = body
	return s, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	t, ok, err := p.accept(lexer.While)
	if err != nil || !ok {
		return nil, err
	}
	s := &ast.WhileStmt{At: t.Pos}
	if s.Cond, err = p.parseCond("condition"); err != nil {
		return nil, err
	}
	if s.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseMatchStmt parses `match value { pattern -> result, ... }`. Branches
// are separated by commas; the last may carry one too.
func (p *Parser) parseMatchStmt() (*ast.MatchStmt, error) {
	t, ok, err := p.accept(lexer.Match)
	if err != nil || !ok {
		return nil, err
	}
	s := &ast.MatchStmt{At: t.Pos}
	if s.Value, err = p.parseCond("match value"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	s.Branches, err = delimited(p, func() ([]*ast.MatchBranch, error) {
		branches, _, err := parseList(p, "match branch", lexer.RBrace, p.parseMatchBranch)
		return branches, err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseMatchBranch() (*ast.MatchBranch, error) {
	pattern, err := restricted(p, restriction{noScopeCall: true, noArrow: true}, p.parseExpr)
	if err != nil || pattern == nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Arrow); err != nil {
		return nil, err
	}
	result, err := expectNode(p, "branch result", p.parseExpr)
	if err != nil {
		return nil, err
	}
	return &ast.MatchBranch{Pattern: pattern, Result: result}, nil
}
