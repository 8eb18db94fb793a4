package parser

import (
	"strings"
	"testing"

	"github.com/paratym/idk/internal/ast"
)

func TestStmtRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x;", "x;"},
		{"x = 1;", "x = 1;"},
		{"a.b = c.d;", "a.b = c.d;"},
		{"return;", "return;"},
		{"return a;", "return a;"},
		{"defer close();", "defer close();"},
		{"break;", "break;"},
		{"continue;", "continue;"},
		{"if a { x; } else if b { y; } else { z; }", "if a { x; } else if b { y; } else { z; }"},
		{"if ready(x) { go(); }", "if ready(x) { go(); }"},
		{"while running { tick(); }", "while running { tick(); }"},
		{"match x { 1 -> a, _ -> b, }", "match x { 1 -> a, _ -> b }"},
		{"match x { 1 -> a }", "match x { 1 -> a }"},
		{"match x {}", "match x {}"},
		{"{ let x = 1; }", "{ let x = 1; }"},
		{"{ x; };", "{ x; }"},
		{"mod::helper();", "mod::helper();"},
		{"mod inner;", "mod inner;"},
		{"let y: &var i32 = x.&;", "let y: &var i32 = x.&;"},
		{"pub fn f;", "pub fn f;"},
	}

	for i, tt := range tests {
		s, err := ParseStmt(strings.NewReader(tt.input))
		if err != nil {
			t.Fatalf("tests[%d] - %q: %v", i, tt.input, err)
		}
		if got := s.String(); got != tt.want {
			t.Fatalf("tests[%d] - %q rendered wrong. expected=%q, got=%q", i, tt.input, tt.want, got)
		}
	}
}

func TestIfHeadDoesNotCallBody(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("if flag { x; }"))
	if err != nil {
		t.Fatal(err)
	}
	is, ok := s.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", s)
	}
	if _, ok := is.Cond.(*ast.Alias); !ok {
		t.Fatalf("condition swallowed the body: %s", is.Cond)
	}
	if is.Else != nil {
		t.Fatalf("unexpected else %s", is.Else)
	}
}

func TestElseChain(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("if a {} else if b {} else {}"))
	if err != nil {
		t.Fatal(err)
	}
	first := s.(*ast.IfStmt)
	second, ok := first.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected else-if, got %T", first.Else)
	}
	if _, ok := second.Else.(*ast.ExecScope); !ok {
		t.Fatalf("expected terminal else scope, got %T", second.Else)
	}
}

func TestModStmt(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("mod inner { let x = 1; }"))
	if err != nil {
		t.Fatal(err)
	}
	ds, ok := s.(*ast.DeclStmt)
	if !ok {
		t.Fatalf("expected *ast.DeclStmt, got %T", s)
	}
	if m, ok := ds.Decl.(*ast.ModDecl); !ok || m.Name.Name != "inner" || m.Body == nil {
		t.Fatalf("module wrong: %s", ds.Decl)
	}

	s, err = ParseStmt(strings.NewReader("mod::x = 2;"))
	if err != nil {
		t.Fatal(err)
	}
	as, ok := s.(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", s)
	}
	path, ok := as.Target.(*ast.EvalPath)
	if !ok {
		t.Fatalf("expected *ast.EvalPath, got %T", as.Target)
	}
	if root, ok := path.Rcv.(*ast.ScopeAlias); !ok || root.Scope != ast.ScopeMod {
		t.Fatalf("path root wrong: %s", path.Rcv)
	}
}

func TestMatchPatternsStopAtArrow(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("match shape { (w, h) -> w, _ -> 0 }"))
	if err != nil {
		t.Fatal(err)
	}
	m := s.(*ast.MatchStmt)
	if len(m.Branches) != 2 {
		t.Fatalf("got %d branches", len(m.Branches))
	}
	if _, ok := m.Branches[0].Pattern.(*ast.StructLit); !ok {
		t.Fatalf("pattern wrong: %T", m.Branches[0].Pattern)
	}
}

func TestBlockStmtEndsAtBrace(t *testing.T) {
	d, err := ParseDecl(strings.NewReader("fn f { { a; } [x] = 1; { b; } (y); {} }"))
	if err != nil {
		t.Fatal(err)
	}
	body := d.(*ast.FnDecl).Body
	if len(body.Stmts) != 5 {
		t.Fatalf("got %d statements, expected 5: %s", len(body.Stmts), body)
	}

	tests := []struct {
		check func(ast.Stmt) bool
		want  string
	}{
		{isBlock, "block"},
		{func(s ast.Stmt) bool {
			as, ok := s.(*ast.AssignStmt)
			if !ok {
				return false
			}
			_, ok = as.Target.(*ast.ArrayLit)
			return ok
		}, "assignment to an array literal"},
		{isBlock, "block"},
		{func(s ast.Stmt) bool {
			es, ok := s.(*ast.ExprStmt)
			if !ok {
				return false
			}
			_, ok = es.X.(*ast.StructLit)
			return ok
		}, "struct expression"},
		{isBlock, "block"},
	}
	for i, tt := range tests {
		if !tt.check(body.Stmts[i]) {
			t.Fatalf("tests[%d] - expected %s, got %T %s", i, tt.want, body.Stmts[i], body.Stmts[i])
		}
	}
}

func isBlock(s ast.Stmt) bool {
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		return false
	}
	_, ok = es.X.(*ast.ExecScope)
	return ok
}
