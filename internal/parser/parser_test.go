package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/position"
)

func pos(line, col uint) position.Position { return position.Position{Line: line, Column: col} }

func TestVisibleAliasDecl(t *testing.T) {
	d, err := ParseDecl(strings.NewReader("pub:get let x : i32 = 42;"))
	if err != nil {
		t.Fatalf("ParseDecl: %v", err)
	}

	vis, ok := d.(*ast.VisDecl)
	if !ok {
		t.Fatalf("expected *ast.VisDecl, got %T", d)
	}
	if vis.Vis.Access != ast.AccessGet || vis.Vis.Scope != ast.VisScopeNone {
		t.Fatalf("visibility wrong: %+v", vis.Vis)
	}
	alias, ok := vis.Decl.(*ast.AliasDecl)
	if !ok {
		t.Fatalf("expected *ast.AliasDecl, got %T", vis.Decl)
	}
	if alias.Eval != ast.EvalLet || alias.Name.Name != "x" {
		t.Fatalf("alias wrong: %s", alias)
	}
	bound, ok := alias.Bound.(*ast.PrimitiveType)
	if !ok || bound.Name != "i32" {
		t.Fatalf("bound wrong: %#v", alias.Bound)
	}
	num, ok := alias.Value.(*ast.NumLit)
	if !ok {
		t.Fatalf("expected *ast.NumLit, got %T", alias.Value)
	}
	if num.Whole != 42 || num.Frac != 0 || num.Negative {
		t.Fatalf("value wrong: %+v", num)
	}
}

func TestFnDecl(t *testing.T) {
	d, err := ParseDecl(strings.NewReader("fn add: (a: i32, b: i32) -> i32 { return a; }"))
	if err != nil {
		t.Fatalf("ParseDecl: %v", err)
	}

	fn, ok := d.(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", d)
	}
	if fn.Name.Name != "add" {
		t.Fatalf("name wrong: %s", fn.Name)
	}
	sig, ok := fn.Sig.(*ast.FnType)
	if !ok {
		t.Fatalf("expected *ast.FnType, got %T", fn.Sig)
	}
	if sig.Rcv != nil {
		t.Fatalf("unexpected receiver %s", sig.Rcv)
	}
	params, ok := sig.Arg.(*ast.StructLit)
	if !ok || len(params.Fields) != 2 {
		t.Fatalf("parameters wrong: %s", sig.Arg)
	}
	for i, name := range []string{"a", "b"} {
		field, ok := params.Fields[i].(*ast.FieldDef)
		if !ok || field.Name.Name != name || field.Type.String() != "i32" {
			t.Fatalf("params[%d] wrong: %s", i, params.Fields[i])
		}
	}
	if ret, ok := sig.Ret.(*ast.PrimitiveType); !ok || ret.Name != "i32" {
		t.Fatalf("return type wrong: %s", sig.Ret)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("body wrong: %v", fn.Body)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.CtrlStmt)
	if !ok || ret.Op != ast.CtrlReturn {
		t.Fatalf("expected return, got %s", fn.Body.Stmts[0])
	}
	if a, ok := ret.Value.(*ast.Alias); !ok || a.Name != "a" {
		t.Fatalf("return value wrong: %s", ret.Value)
	}
}

func TestMissingAlias(t *testing.T) {
	_, err := ParseDecl(strings.NewReader("let = 1;"))
	var perr *lexer.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if perr.Pos != pos(0, 4) {
		t.Fatalf("position wrong: %s", perr.Pos)
	}
	if !perr.IsSyntax() || !strings.Contains(perr.Msg, "expected alias") {
		t.Fatalf("message wrong: %v", perr)
	}
}

func TestAssignmentDisambiguation(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("x;"))
	if err != nil {
		t.Fatal(err)
	}
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", s)
	}

	s, err = ParseStmt(strings.NewReader("x = 1;"))
	if err != nil {
		t.Fatal(err)
	}
	as, ok := s.(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", s)
	}
	if as.Target.String() != es.X.String() || as.Target.Pos() != es.X.Pos() {
		t.Fatalf("targets differ: %s at %s vs %s at %s", as.Target, as.Target.Pos(), es.X, es.X.Pos())
	}
}

func TestBalancedScope(t *testing.T) {
	s, err := ParseStmt(strings.NewReader("{ let x = 1; }"))
	if err != nil {
		t.Fatal(err)
	}
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", s)
	}
	scope, ok := es.X.(*ast.ExecScope)
	if !ok || len(scope.Stmts) != 1 {
		t.Fatalf("scope wrong: %s", es.X)
	}
	ds, ok := scope.Stmts[0].(*ast.DeclStmt)
	if !ok {
		t.Fatalf("expected *ast.DeclStmt, got %T", scope.Stmts[0])
	}
	if _, ok := ds.Decl.(*ast.AliasDecl); !ok {
		t.Fatalf("expected *ast.AliasDecl, got %T", ds.Decl)
	}

	_, err = ParseStmt(strings.NewReader("{ let x = 1; "))
	var perr *lexer.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if perr.Pos != pos(0, 13) || perr.Kind != lexer.KindExhausted {
		t.Fatalf("error wrong: %s (%s)", perr, perr.Kind)
	}
}

func TestParseFile(t *testing.T) {
	src := `# geometry
use std::math;

pub type Point = (x: f64, y: f64);

pub:pkg fn dist: (a: Point, b: Point) -> f64 {
	let dx = b.x;
	return dx;
}

mod shapes {
	iface Shape {
		fn area: (self: &Self) -> f64;
	}
}
`
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f, err := ParseFile("geometry.idk", strings.NewReader(src), WithLogger(logger))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if f.Name != "geometry.idk" || len(f.Decls) != 4 {
		t.Fatalf("got %d declarations", len(f.Decls))
	}

	wantPos := []position.Position{pos(1, 0), pos(3, 0), pos(5, 0), pos(10, 0)}
	for i, want := range wantPos {
		if got := f.Decls[i].Pos(); got != want {
			t.Fatalf("decls[%d] at %s, expected %s", i, got, want)
		}
	}
	if got := strings.Count(logs.String(), "parsed declaration"); got != 4 {
		t.Fatalf("logged %d declarations:\n%s", got, logs.String())
	}
	if !strings.Contains(logs.String(), "kind=UseDecl") {
		t.Fatalf("missing kind attribute:\n%s", logs.String())
	}
}

func TestParseEmptyFile(t *testing.T) {
	f, err := ParseFile("empty.idk", strings.NewReader("  # nothing\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Decls) != 0 {
		t.Fatalf("got %d declarations", len(f.Decls))
	}
}

func TestFileRejectsStatements(t *testing.T) {
	_, err := ParseFile("bad.idk", strings.NewReader("let a = 1;\nreturn a;"))
	var perr *lexer.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if perr.Pos != pos(1, 0) || !strings.Contains(perr.Msg, "expected declaration") {
		t.Fatalf("error wrong: %v", perr)
	}
}

func TestReaderErrorPropagates(t *testing.T) {
	cause := errors.New("boom")
	_, err := ParseFile("x.idk", errReader{cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
