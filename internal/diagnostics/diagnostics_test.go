package diagnostics

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/modules"
	"github.com/paratym/idk/internal/parser"
	"github.com/paratym/idk/internal/position"
)

func TestRenderSyntaxError(t *testing.T) {
	src := "let a = 1;\nlet = 2;\n"
	_, err := parser.ParseFile("main.idk", strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a parse error")
	}

	r := &Renderer{Context: 1}
	r.AddSource("main.idk", src)
	var buf bytes.Buffer
	n, werr := r.Render(&buf, &modules.FileError{Path: "main.idk", Err: err})
	if werr != nil || n != 1 {
		t.Fatalf("Render() = %d, %v", n, werr)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		"main.idk:2:5: unexpected-token error: expected alias, found '='",
		"   1 | let a = 1;",
		"   2 | let = 2;",
		"     |     ^",
		"1 error",
	}
	if len(lines) != len(want) {
		t.Fatalf("output has %d lines, expected %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d wrong. expected=%q, got=%q", i, want[i], lines[i])
		}
	}
}

func TestCollect(t *testing.T) {
	syntax := lexer.Errorf(lexer.KindSyntax, position.Position{Line: 2, Column: 1}, "unterminated string literal")
	resolve := &modules.PathError{Pos: position.Position{Line: 0, Column: 4}, Path: "pkg::x", Msg: "no source directory"}
	cycle := &modules.CycleError{Dirs: []string{"a", "b", "a"}}
	io := &lexer.Error{Kind: lexer.KindIO, Msg: "read failed", Err: errors.New("disk gone")}

	err := errors.Join(
		&modules.FileError{Path: "a.idk", Err: syntax},
		&modules.FileError{Path: "b.idk", Err: resolve},
		cycle,
		io,
		errors.New("plain"),
	)

	tests := []struct {
		location string
		category string
		message  string
	}{
		{"a.idk:3:2", "syntax", "unterminated string literal"},
		{"b.idk:1:5", "resolve", "cannot resolve pkg::x: no source directory"},
		{"", "cycle", "use cycle: a -> b -> a"},
		{"1:1", "io", "read failed: disk gone"},
		{"", "", "plain"},
	}

	diags := Collect(err)
	if len(diags) != len(tests) {
		t.Fatalf("Collect() returned %d diagnostics, expected %d", len(diags), len(tests))
	}
	for i, tt := range tests {
		d := diags[i]
		if d.Location() != tt.location {
			t.Fatalf("tests[%d] - location wrong. expected=%q, got=%q", i, tt.location, d.Location())
		}
		if d.Category != tt.category {
			t.Fatalf("tests[%d] - category wrong. expected=%q, got=%q", i, tt.category, d.Category)
		}
		if d.Message != tt.message {
			t.Fatalf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, d.Message)
		}
	}
}

func TestRenderReadsSourcesFromDisk(t *testing.T) {
	path := t.TempDir() + "/x.idk"
	if err := os.WriteFile(path, []byte("use 1 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := &modules.FileError{Path: path, Err: lexer.Errorf(lexer.KindUnexpectedToken, position.Position{Column: 6}, "expected ';', found numeric literal 2")}

	var buf bytes.Buffer
	if _, werr := (&Renderer{}).Render(&buf, err); werr != nil {
		t.Fatal(werr)
	}
	if !strings.Contains(buf.String(), "   1 | use 1 2;\n     |       ^\n") {
		t.Fatalf("missing excerpt:\n%s", buf.String())
	}
}

func TestRenderNil(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&Renderer{}).Render(&buf, nil)
	if n != 0 || err != nil || buf.Len() != 0 {
		t.Fatalf("Render(nil) = %d, %v, %q", n, err, buf.String())
	}
}

func TestRenderColorKeepsText(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Color: true, Width: 40}
	if _, err := r.Render(&buf, errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "boom") || !strings.Contains(buf.String(), "1 error") {
		t.Fatalf("styled output lost text: %q", buf.String())
	}
}
