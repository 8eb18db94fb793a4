package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/lexer"
)

func (p *Parser) parseBoolLit() (*ast.BoolLit, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Tok.Kind {
	case lexer.True:
		p.skip()
		return &ast.BoolLit{At: t.Pos, Value: true}, nil
	case lexer.False:
		p.skip()
		return &ast.BoolLit{At: t.Pos, Value: false}, nil
	}
	return nil, nil
}

func (p *Parser) parseNumLit() (*ast.NumLit, error) {
	t, ok, err := p.accept(lexer.NumLit)
	if err != nil || !ok {
		return nil, err
	}
	return evalNum(t)
}

// evalNum splits a numeric literal into sign, radix and the magnitudes of
// its digit runs.
func evalNum(t lexer.SrcToken) (*ast.NumLit, error) {
	n := &ast.NumLit{At: t.Pos, Raw: t.Tok.Text, Radix: 10}
	digits := t.Tok.Text
	if digits == "" {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "empty numeric literal")
	}
	switch digits[0] {
	case '-':
		n.Negative = true
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'b':
			n.Radix = 2
		case 'o':
			n.Radix = 8
		case 'x':
			n.Radix = 16
		}
		if n.Radix != 10 {
			digits = digits[2:]
		}
	}

	whole, frac, hasFrac := strings.Cut(digits, ".")
	var err error
	if n.Whole, err = strconv.ParseUint(whole, n.Radix, 64); err != nil {
		return nil, numError(t, err)
	}
	if hasFrac {
		if n.Frac, err = strconv.ParseUint(frac, n.Radix, 64); err != nil {
			return nil, numError(t, err)
		}
		n.FracDigits = len(frac)
	}
	return n, nil
}

func numError(t lexer.SrcToken, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return lexer.Errorf(lexer.KindSyntax, t.Pos, "numeric literal %s does not fit in 64 bits", t.Tok.Text)
	}
	return lexer.Errorf(lexer.KindSyntax, t.Pos, "malformed numeric literal %s", t.Tok.Text)
}

func (p *Parser) parseCharLit() (*ast.CharLit, error) {
	t, ok, err := p.accept(lexer.CharLit)
	if err != nil || !ok {
		return nil, err
	}
	raw := t.Tok.Text
	if raw == "" {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "empty character literal")
	}
	r, _, tail, err := unquoteChar(raw)
	if err != nil {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "invalid escape in character literal '%s'", raw)
	}
	if tail != "" {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "character literal '%s' holds more than one character", raw)
	}
	return &ast.CharLit{At: t.Pos, Raw: raw, Value: r}, nil
}

func (p *Parser) parseStrLit() (*ast.StrLit, error) {
	t, ok, err := p.accept(lexer.StrLit)
	if err != nil || !ok {
		return nil, err
	}
	value, err := unquote(t.Tok.Text)
	if err != nil {
		return nil, lexer.Errorf(lexer.KindSyntax, t.Pos, "invalid escape in string literal")
	}
	return &ast.StrLit{At: t.Pos, Raw: t.Tok.Text, Value: value}, nil
}

// unquoteChar decodes the first character of s with Go escape rules,
// except that both \' and \" are accepted whichever quote delimits s.
func unquoteChar(s string) (rune, bool, string, error) {
	if len(s) >= 2 && s[0] == '\\' && (s[1] == '\'' || s[1] == '"') {
		return rune(s[1]), false, s[2:], nil
	}
	return strconv.UnquoteChar(s, 0)
}

// unquote decodes the escapes of a string literal body. Raw newlines are
// kept.
func unquote(raw string) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}
	var b strings.Builder
	for s := raw; s != ""; {
		r, multibyte, tail, err := unquoteChar(s)
		if err != nil {
			return "", err
		}
		if r < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(r))
		} else {
			b.WriteRune(r)
		}
		s = tail
	}
	return b.String(), nil
}

func (p *Parser) parseArrayLit() (*ast.ArrayLit, error) {
	open, ok, err := p.accept(lexer.LBracket)
	if err != nil || !ok {
		return nil, err
	}
	elems, _, err := p.parseArrayElems()
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLit{At: open.Pos, Elems: elems}, nil
}

// parseArrayElems parses the elements after an opening `[`.
func (p *Parser) parseArrayElems() ([]ast.Expr, bool, error) {
	saved := p.res
	p.res = restriction{}
	defer func() { p.res = saved }()
	return parseList(p, "array element", lexer.RBracket, p.parseArrayElem)
}

func (p *Parser) parseArrayElem() (ast.Expr, error) {
	t, ok, err := p.accept(lexer.Ellipsis)
	if err != nil {
		return nil, err
	}
	if !ok {
		return p.parseExpr()
	}
	x, err := expectNode(p, "expression", p.parseExpr)
	if err != nil {
		return nil, err
	}
	return &ast.Spread{At: t.Pos, X: x}, nil
}

func (p *Parser) parseStructLit() (*ast.StructLit, error) {
	open, ok, err := p.accept(lexer.LParen)
	if err != nil || !ok {
		return nil, err
	}
	fields, err := delimited(p, func() ([]ast.StructField, error) {
		fields, _, err := parseList(p, "struct field", lexer.RParen, p.parseField)
		return fields, err
	})
	if err != nil {
		return nil, err
	}
	return &ast.StructLit{At: open.Pos, Fields: fields}, nil
}

func (p *Parser) parseField() (ast.StructField, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Tok.Kind {
	case lexer.Ellipsis:
		p.skip()
		x, err := expectNode(p, "expression", p.parseExpr)
		if err != nil {
			return nil, err
		}
		return &ast.FieldSpread{At: t.Pos, X: x}, nil
	case lexer.Dot:
		p.skip()
		name, err := expectNode(p, "alias", p.parseAlias)
		if err != nil {
			return nil, err
		}
		return &ast.FieldInherit{At: t.Pos, Name: name}, nil
	case lexer.Pub:
		vis, err := p.parseVisibility()
		if err != nil {
			return nil, err
		}
		_, all, err := p.accept(lexer.Asterisk)
		if err != nil {
			return nil, err
		}
		if all {
			return &ast.FieldVisAll{At: t.Pos, Vis: vis}, nil
		}
		name, err := expectNode(p, "field alias or '*'", p.parseAlias)
		if err != nil {
			return nil, err
		}
		return p.parseFieldDef(&ast.FieldDef{At: t.Pos, Vis: &vis, Name: name})
	}

	x, err := p.parseExpr()
	if err != nil || x == nil {
		return nil, err
	}
	if name, ok := x.(*ast.Alias); ok {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Tok.Kind == lexer.Colon || next.Tok.Kind == lexer.Equal {
			return p.parseFieldDef(&ast.FieldDef{At: name.At, Name: name})
		}
	}
	return &ast.FieldValue{X: x}, nil
}

// parseFieldDef parses the optional `: type` and `= default` of a named
// field.
func (p *Parser) parseFieldDef(f *ast.FieldDef) (ast.StructField, error) {
	var err error
	if f.Type, err = p.parseBound(); err != nil {
		return nil, err
	}
	if f.Value, err = p.parseInit(); err != nil {
		return nil, err
	}
	return f, nil
}
