package position

import (
	"fmt"
	"strings"
)

// Excerpt renders the lines around pos with a caret under its column:
//
//	   2 | let x = ;
//	     |         ^
//
// context is the number of lines shown before pos.
func (s *Source) Excerpt(pos Position, context uint) string {
	if s == nil || pos.Line >= uint(len(s.Lines)) {
		return ""
	}

	var b strings.Builder
	first := uint(0)
	if pos.Line > context {
		first = pos.Line - context
	}

	for n := first; n <= pos.Line; n++ {
		fmt.Fprintf(&b, "%4d | %s\n", n+1, s.Line(n))
	}

	b.WriteString("     | ")
	writeCaret(&b, s.Line(pos.Line), pos.Column)
	b.WriteString("\n")

	return b.String()
}

// writeCaret pads to column col of line, keeping tabs so the caret lines up
// with the rendered text.
func writeCaret(b *strings.Builder, line string, col uint) {
	runes := []rune(line)
	for i := uint(0); i < col; i++ {
		if i < uint(len(runes)) && runes[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
}
