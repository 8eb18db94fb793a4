// Package position tracks source coordinates for the idk toolchain.
package position

import (
	"fmt"
	"strings"
)

// Position is a zero-based (line, column) coordinate. Columns count
// characters, not bytes.
type Position struct {
	Line   uint
	Column uint
}

// String renders the position one-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Advance moves the position past r.
func (p Position) Advance(r rune) Position {
	if r == '\n' {
		return Position{Line: p.Line + 1}
	}
	return Position{Line: p.Line, Column: p.Column + 1}
}

// AdvanceString moves the position past every character of s.
func (p Position) AdvanceString(s string) Position {
	for _, r := range s {
		p = p.Advance(r)
	}
	return p
}

// Source holds the text of one file split into lines for excerpts.
type Source struct {
	Name  string
	Lines []string
}

// NewSource indexes content by line.
func NewSource(name, content string) *Source {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &Source{
		Name:  name,
		Lines: strings.Split(content, "\n"),
	}
}

// Line returns the zero-based line n, or "" when out of range.
func (s *Source) Line(n uint) string {
	if n >= uint(len(s.Lines)) {
		return ""
	}
	return s.Lines[n]
}

// Locate renders "name:line:col", omitting the name when empty.
func (s *Source) Locate(p Position) string {
	if s == nil || s.Name == "" {
		return p.String()
	}
	return s.Name + ":" + p.String()
}
