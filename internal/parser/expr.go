package parser

import (
	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
)

// Precedence orders the infix operators that combine chains.
type Precedence int

const (
	_ Precedence = iota
	LOWEST
	CAST // x as T
)

var precedences = map[lexer.Kind]Precedence{
	lexer.As: CAST,
}

var primitives = map[lexer.Kind]bool{
	lexer.Bool:  true,
	lexer.Char:  true,
	lexer.Str:   true,
	lexer.Isize: true,
	lexer.I8:    true,
	lexer.I16:   true,
	lexer.I24:   true,
	lexer.I32:   true,
	lexer.I64:   true,
	lexer.Usize: true,
	lexer.U8:    true,
	lexer.U16:   true,
	lexer.U24:   true,
	lexer.U32:   true,
	lexer.U64:   true,
	lexer.F32:   true,
	lexer.F64:   true,
}

var scopeAliases = map[lexer.Kind]ast.ScopeKind{
	lexer.Pkg: ast.ScopePkg,
	lexer.Mod: ast.ScopeMod,
	lexer.Std: ast.ScopeStd,
	lexer.Ext: ast.ScopeExt,
}

var binders = map[lexer.Kind]ast.EvalKind{
	lexer.Let:   ast.EvalLet,
	lexer.Var:   ast.EvalVar,
	lexer.Const: ast.EvalConst,
	lexer.Type:  ast.EvalType,
}

func (p *Parser) peekPrecedence() (Precedence, error) {
	t, err := p.peek()
	if err != nil {
		return LOWEST, err
	}
	if prec, ok := precedences[t.Tok.Kind]; ok {
		return prec, nil
	}
	return LOWEST, nil
}

// parseExpr parses a chain followed by any infix operators.
func (p *Parser) parseExpr() (ast.Expr, error) {
	x, err := p.parseChain()
	if err != nil || x == nil {
		return x, err
	}
	return p.parseInfix(x, LOWEST)
}

// parseInfix folds left-associative operators binding tighter than prec
// onto left.
func (p *Parser) parseInfix(left ast.Expr, prec Precedence) (ast.Expr, error) {
	for {
		next, err := p.peekPrecedence()
		if err != nil {
			return nil, err
		}
		if next <= prec {
			return left, nil
		}
		p.skip()
		right, err := expectNode(p, "type", p.parseChain)
		if err != nil {
			return nil, err
		}
		if right, err = p.parseInfix(right, next); err != nil {
			return nil, err
		}
		left = &ast.Cast{X: left, Type: right}
	}
}

// parseChain parses a primary expression and its suffixes.
func (p *Parser) parseChain() (ast.Expr, error) {
	base, err := p.parsePrimary()
	if err != nil || base == nil {
		return base, err
	}
	return p.parseSuffixes(base)
}

func (p *Parser) parseSuffixes(base ast.Expr) (ast.Expr, error) {
	return chain(base,
		p.parseEvalSuffix,
		p.parseExecSuffix,
		p.parseBracketSuffix,
		p.parseCallSuffix,
		p.parseArrowSuffix,
	)
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	return firstMatch(
		exprAlt(p.parseExecScope),
		exprAlt(p.parseScopeAlias),
		exprAlt(p.parseAlias),
		exprAlt(p.parseWildcard),
		exprAlt(p.parseBoolLit),
		exprAlt(p.parseNumLit),
		exprAlt(p.parseCharLit),
		exprAlt(p.parseStrLit),
		exprAlt(p.parseArrayLit),
		exprAlt(p.parsePrimitiveType),
		exprAlt(p.parseInfer),
		exprAlt(p.parseRefType),
		exprAlt(p.parseUnionType),
		exprAlt(p.parseStructLit),
	)()
}

func (p *Parser) parseAlias() (*ast.Alias, error) {
	t, ok, err := p.accept(lexer.Alias)
	if err != nil || !ok {
		return nil, err
	}
	return &ast.Alias{At: t.Pos, Name: t.Tok.Text}, nil
}

func (p *Parser) parseScopeAlias() (*ast.ScopeAlias, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	scope, ok := scopeAliases[t.Tok.Kind]
	if !ok {
		return nil, nil
	}
	p.skip()
	return &ast.ScopeAlias{At: t.Pos, Scope: scope}, nil
}

func (p *Parser) parseWildcard() (*ast.Wildcard, error) {
	t, ok, err := p.accept(lexer.Underscore)
	if err != nil || !ok {
		return nil, err
	}
	return &ast.Wildcard{At: t.Pos}, nil
}

func (p *Parser) parsePrimitiveType() (*ast.PrimitiveType, error) {
	t, err := p.peek()
	if err != nil || !primitives[t.Tok.Kind] {
		return nil, err
	}
	p.skip()
	name, _ := t.Tok.Kind.Spelling()
	return &ast.PrimitiveType{At: t.Pos, Name: name}, nil
}

func (p *Parser) parseInfer() (*ast.Infer, error) {
	t, ok, err := p.accept(lexer.Infer)
	if err != nil || !ok {
		return nil, err
	}
	return &ast.Infer{At: t.Pos}, nil
}

// parseRefOp parses `&`, an optional `^source` and an optional binder.
func (p *Parser) parseRefOp() (*ast.RefOp, error) {
	t, ok, err := p.accept(lexer.Ampersand)
	if err != nil || !ok {
		return nil, err
	}
	ref := &ast.RefOp{At: t.Pos}
	if _, ok, err := p.accept(lexer.Caret); err != nil {
		return nil, err
	} else if ok {
		if ref.Src, err = expectNode(p, "source alias", p.parseAlias); err != nil {
			return nil, err
		}
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if binder, ok := binders[next.Tok.Kind]; ok {
		p.skip()
		ref.Binder = binder
	}
	return ref, nil
}

func (p *Parser) parseRefType() (*ast.RefType, error) {
	ref, err := p.parseRefOp()
	if err != nil || ref == nil {
		return nil, err
	}
	elem, err := expectNode(p, "referenced type", p.parseChain)
	if err != nil {
		return nil, err
	}
	return &ast.RefType{Ref: ref, Elem: elem}, nil
}

func (p *Parser) parseUnionType() (*ast.UnionType, error) {
	t, ok, err := p.accept(lexer.Union)
	if err != nil || !ok {
		return nil, err
	}
	fields, err := expectNode(p, "'('", p.parseStructLit)
	if err != nil {
		return nil, err
	}
	return &ast.UnionType{At: t.Pos, Fields: fields}, nil
}

// parseEvalSuffix parses `::` followed by a construction argument or a
// path member.
func (p *Parser) parseEvalSuffix(base ast.Expr) (ast.Expr, error) {
	_, ok, err := p.accept(lexer.DoubleColon)
	if err != nil || !ok {
		return nil, err
	}
	arg, err := firstMatch(
		exprAlt(p.parseExecScope),
		exprAlt(p.parseArrayLit),
		exprAlt(p.parseStructLit),
	)()
	if err != nil {
		return nil, err
	}
	if arg != nil {
		return &ast.Construct{Type: base, Arg: arg}, nil
	}
	member, err := expectNode(p, "path member", p.parsePrimary)
	if err != nil {
		return nil, err
	}
	return &ast.EvalPath{Rcv: base, Member: member}, nil
}

// parseExecSuffix parses `.` followed by a reference, `*`, an alias or a
// scope.
func (p *Parser) parseExecSuffix(base ast.Expr) (ast.Expr, error) {
	_, ok, err := p.accept(lexer.Dot)
	if err != nil || !ok {
		return nil, err
	}
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	var member ast.ExecMember
	switch t.Tok.Kind {
	case lexer.Ampersand:
		if member, err = p.parseRefOp(); err != nil {
			return nil, err
		}
	case lexer.Asterisk:
		p.skip()
		member = &ast.Deref{At: t.Pos}
	case lexer.Alias:
		if member, err = p.parseAlias(); err != nil {
			return nil, err
		}
	case lexer.LBrace:
		if member, err = p.parseExecScope(); err != nil {
			return nil, err
		}
	default:
		return nil, p.expected("alias, reference, '*' or scope after '.'")
	}
	return &ast.ExecPath{Rcv: base, Member: member}, nil
}

// parseBracketSuffix parses `[]` and `[len]` as array types and any other
// bracketed list as a call with an array argument.
func (p *Parser) parseBracketSuffix(base ast.Expr) (ast.Expr, error) {
	open, ok, err := p.accept(lexer.LBracket)
	if err != nil || !ok {
		return nil, err
	}
	elems, trailing, err := p.parseArrayElems()
	if err != nil {
		return nil, err
	}
	switch {
	case len(elems) == 0:
		return &ast.ArrayType{Elem: base}, nil
	case len(elems) == 1 && !trailing:
		if _, spread := elems[0].(*ast.Spread); !spread {
			return &ast.ArrayType{Elem: base, Len: elems[0]}, nil
		}
	}
	return &ast.Call{Fn: base, Arg: &ast.ArrayLit{At: open.Pos, Elems: elems}}, nil
}

// parseCallSuffix applies base to a directly following scope or struct.
func (p *Parser) parseCallSuffix(base ast.Expr) (ast.Expr, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	var arg ast.Expr
	switch {
	case t.Tok.Kind == lexer.LBrace && !p.res.noScopeCall:
		arg, err = exprAlt(p.parseExecScope)()
	case t.Tok.Kind == lexer.LParen:
		arg, err = exprAlt(p.parseStructLit)()
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ast.Call{Fn: base, Arg: arg}, nil
}

// parseArrowSuffix parses `-> ret` and `-> arg -> ret`. In the second form
// base becomes the receiver.
func (p *Parser) parseArrowSuffix(base ast.Expr) (ast.Expr, error) {
	if p.res.noArrow {
		return nil, nil
	}
	t, ok, err := p.accept(lexer.Arrow)
	if err != nil || !ok {
		return nil, err
	}
	if _, done := base.(*ast.FnType); done {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "function type takes at most two arrows")
	}

	inner := p.res
	inner.noArrow = true
	first, err := restricted(p, inner, func() (ast.Expr, error) {
		return expectNode(p, "return type", p.parseChain)
	})
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.accept(lexer.Arrow); err != nil {
		return nil, err
	} else if !ok {
		return &ast.FnType{Arg: base, Ret: first}, nil
	}
	ret, err := restricted(p, inner, func() (ast.Expr, error) {
		return expectNode(p, "return type", p.parseChain)
	})
	if err != nil {
		return nil, err
	}
	return &ast.FnType{Rcv: base, Arg: first, Ret: ret}, nil
}
