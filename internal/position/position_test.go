package position

import (
	"strings"
	"testing"
)

func TestPositionAdvance(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Position
	}{
		{name: "empty", input: "", expected: Position{}},
		{name: "single line", input: "let x", expected: Position{Line: 0, Column: 5}},
		{name: "newline resets column", input: "ab\ncd", expected: Position{Line: 1, Column: 2}},
		{name: "trailing newline", input: "ab\n", expected: Position{Line: 1, Column: 0}},
		{name: "multibyte counts once", input: "äö", expected: Position{Line: 0, Column: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Position{}.AdvanceString(tt.input)
			if got != tt.expected {
				t.Errorf("AdvanceString(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 0, Column: 4}).String(); got != "1:5" {
		t.Errorf("String() = %q, want %q", got, "1:5")
	}

	src := NewSource("main.idk", "")
	if got := src.Locate(Position{Line: 2, Column: 0}); got != "main.idk:3:1" {
		t.Errorf("Locate() = %q, want %q", got, "main.idk:3:1")
	}
}

func TestSourceExcerpt(t *testing.T) {
	src := NewSource("main.idk", "let a = 1;\n\tlet = 2;\n")

	got := src.Excerpt(Position{Line: 1, Column: 5}, 1)
	want := "   1 | let a = 1;\n   2 | \tlet = 2;\n     | \t    ^\n"
	if got != want {
		t.Errorf("Excerpt mismatch\n got: %q\nwant: %q", got, want)
	}

	if src.Excerpt(Position{Line: 10}, 1) != "" {
		t.Errorf("expected empty excerpt for out-of-range line")
	}

	if !strings.Contains(src.Excerpt(Position{Line: 0, Column: 0}, 3), "   1 | let a") {
		t.Errorf("context larger than the file must clamp to the first line")
	}
}
