package parser

import (
	"github.com/paratym/idk/internal/ast"
)

func (p *Parser) parseExecScope() (*ast.ExecScope, error) {
	at, stmts, ok, err := parseScope(p, "statement", p.parseStmt)
	if err != nil || !ok {
		return nil, err
	}
	return &ast.ExecScope{At: at, Stmts: stmts}, nil
}

func (p *Parser) parseConstScope() (*ast.ConstScope, error) {
	at, decls, ok, err := parseScope(p, "declaration", p.parseDecl)
	if err != nil || !ok {
		return nil, err
	}
	return &ast.ConstScope{At: at, Decls: decls}, nil
}
