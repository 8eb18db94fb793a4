package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/paratym/idk/internal/position"
)

func alias(s string) Token { return Token{Kind: Alias, Text: s} }
func num(s string) Token   { return Token{Kind: NumLit, Text: s} }

func collect(t *testing.T, src string, opts ...Option) []Token {
	t.Helper()
	toks, err := NewString(src, opts...).Tokens()
	if err != nil {
		t.Fatalf("tokenizing %q: %v", src, err)
	}
	out := make([]Token, len(toks))
	for i, tok := range toks {
		out[i] = tok.Tok
	}
	return out
}

func assertTokens(t *testing.T, src string, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%q - token count wrong. expected=%v, got=%v", src, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q - tokens[%d] wrong. expected=%s, got=%s", src, i, want[i].Describe(), got[i].Describe())
		}
	}
}

func TestFixedSpellingsRoundTrip(t *testing.T) {
	for _, k := range FixedKinds() {
		spelling, ok := k.Spelling()
		if !ok {
			t.Fatalf("kind %d has no spelling", k)
		}
		if back, ok := Lookup(spelling); !ok || back != k {
			t.Fatalf("Lookup(%q) = %v, %v; expected %v", spelling, back, ok, k)
		}
		tok, err := NewString(spelling).Next()
		if err != nil {
			t.Fatalf("tokenizing %q: %v", spelling, err)
		}
		if tok.Tok != Fixed(k) {
			t.Fatalf("tokenizing %q gave %s", spelling, tok.Tok.Describe())
		}
		if tok.Tok.String() != spelling {
			t.Fatalf("rendering %v gave %q", k, tok.Tok.String())
		}
	}
}

func TestMaxLexemeLen(t *testing.T) {
	if got := MaxLexemeLen(); got != len("continue") {
		t.Fatalf("MaxLexemeLen() = %d", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"::", []Token{Fixed(DoubleColon)}},
		{": :", []Token{Fixed(Colon), Fixed(Colon)}},
		{"->", []Token{Fixed(Arrow)}},
		{"...", []Token{Fixed(Ellipsis)}},
		{"..", []Token{Fixed(Dot), Fixed(Dot)}},
		{"let letter", []Token{Fixed(Let), alias("letter")}},
		{"_ _x x_1", []Token{Fixed(Underscore), alias("_x"), alias("x_1")}},
		{"größe", []Token{alias("größe")}},
		{"pub:get let x : i32 = 42;", []Token{
			Fixed(Pub), Fixed(Colon), Fixed(Get), Fixed(Let), alias("x"),
			Fixed(Colon), Fixed(I32), Fixed(Equal), num("42"), Fixed(Semicolon),
		}},
		{"a -> b", []Token{alias("a"), Fixed(Arrow), alias("b")}},
		{"- x", []Token{Fixed(Hyphen), alias("x")}},
		{"f(-1)", []Token{alias("f"), Fixed(LParen), num("-1"), Fixed(RParen)}},
	}

	for i, tt := range tests {
		got := collect(t, tt.input)
		if len(got) != len(tt.want) {
			t.Fatalf("tests[%d] - token count wrong. expected=%v, got=%v", i, tt.want, got)
		}
		for j := range tt.want {
			if got[j] != tt.want[j] {
				t.Fatalf("tests[%d] - tokens[%d] wrong. expected=%s, got=%s",
					i, j, tt.want[j].Describe(), got[j].Describe())
			}
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"42", []Token{num("42")}},
		{"-7", []Token{num("-7")}},
		{"+3", []Token{num("+3")}},
		{"0x1F", []Token{num("0x1F")}},
		{"0b101", []Token{num("0b101")}},
		{"0o17", []Token{num("0o17")}},
		{"3.14", []Token{num("3.14")}},
		{"0x1F.8", []Token{num("0x1F.8")}},
		{"0b2", []Token{num("0"), alias("b2")}},
		{"0x", []Token{num("0"), alias("x")}},
		{"1.", []Token{num("1"), Fixed(Dot)}},
		{"1.a", []Token{num("1"), Fixed(Dot), alias("a")}},
		{"0b1.2", []Token{num("0b1"), Fixed(Dot), num("2")}},
		{"1.2.3", []Token{num("1.2"), Fixed(Dot), num("3")}},
	}

	for _, tt := range tests {
		assertTokens(t, tt.input, collect(t, tt.input), tt.want)
	}
}

func TestQuotedLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  Token
	}{
		{`"hello"`, Token{Kind: StrLit, Text: "hello"}},
		{`"a\"b"`, Token{Kind: StrLit, Text: `a\"b`}},
		{"\"two\nlines\"", Token{Kind: StrLit, Text: "two\nlines"}},
		{`""`, Token{Kind: StrLit}},
		{`'x'`, Token{Kind: CharLit, Text: "x"}},
		{`'\''`, Token{Kind: CharLit, Text: `\'`}},
		{`'\n'`, Token{Kind: CharLit, Text: `\n`}},
	}

	for _, tt := range tests {
		assertTokens(t, tt.input, collect(t, tt.input), []Token{tt.want})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
		pos   position.Position
	}{
		{`let s = "open`, KindSyntax, position.Position{Column: 8}},
		{"'a\nb'", KindSyntax, position.Position{Column: 2}},
		{"x @", KindUnexpectedChar, position.Position{Column: 2}},
		{"+ 1", KindUnexpectedChar, position.Position{}},
		{"a \xff", KindUTF8, position.Position{Column: 2}},
	}

	for i, tt := range tests {
		_, err := NewString(tt.input).Tokens()
		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("tests[%d] - expected *Error, got %v", i, err)
		}
		if lexErr.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.kind, lexErr.Kind)
		}
		if lexErr.Pos != tt.pos {
			t.Fatalf("tests[%d] - position wrong. expected=%s, got=%s", i, tt.pos, lexErr.Pos)
		}
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	tk := NewString("let x")
	first, err := tk.Peek()
	if err != nil || first == nil {
		t.Fatalf("Peek() = %v, %v", first, err)
	}
	pos := tk.Pos()
	second, err := tk.Peek()
	if err != nil || second == nil {
		t.Fatalf("Peek() = %v, %v", second, err)
	}
	if *first != *second {
		t.Fatalf("peeks differ: %s vs %s", first, second)
	}
	if tk.Pos() != pos {
		t.Fatalf("second Peek moved the reader from %s to %s", pos, tk.Pos())
	}
	next, err := tk.Next()
	if err != nil || next != *first {
		t.Fatalf("Next() = %s, %v; expected %s", next, err, first)
	}
}

func TestEndOfInput(t *testing.T) {
	tk := NewString("  \n ")
	tok, err := tk.Peek()
	if tok != nil || err != nil {
		t.Fatalf("Peek() at end = %v, %v", tok, err)
	}
	_, err = tk.Next()
	if !IsExhausted(err) {
		t.Fatalf("Next() at end = %v, expected exhausted", err)
	}
	if !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("errors.Is(%v, ErrStreamExhausted) = false", err)
	}
	if want := (position.Position{Line: 1, Column: 1}); tk.Pos() != want {
		t.Fatalf("Pos() = %s, expected %s", tk.Pos(), want)
	}
}

func TestExpect(t *testing.T) {
	tk := NewString("let = ")
	if _, err := tk.Expect(Fixed(Let)); err != nil {
		t.Fatalf("Expect(let): %v", err)
	}
	_, err := tk.Expect(Fixed(Semicolon))
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Kind != KindUnexpectedToken {
		t.Fatalf("Expect(;) = %v", err)
	}
	if lexErr.Pos != (position.Position{Column: 4}) {
		t.Fatalf("error position = %s", lexErr.Pos)
	}
	if !strings.Contains(lexErr.Error(), "expected ';', found '='") {
		t.Fatalf("message = %q", lexErr.Error())
	}
	if _, err := tk.Expect(Fixed(Semicolon)); !IsExhausted(err) {
		t.Fatalf("Expect at end = %v", err)
	}
}

func TestComments(t *testing.T) {
	src := "# heading\nlet x # trailing\n"
	assertTokens(t, src, collect(t, src), []Token{Fixed(Let), alias("x")})
	assertTokens(t, src, collect(t, src, WithComments()), []Token{
		{Kind: Comment, Text: " heading"}, Fixed(Let), alias("x"), {Kind: Comment, Text: " trailing"},
	})
}

func TestPositions(t *testing.T) {
	toks, err := NewString("let x\n  = 'é';").Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []position.Position{
		{Line: 0, Column: 0},
		{Line: 0, Column: 4},
		{Line: 1, Column: 2},
		{Line: 1, Column: 4},
		{Line: 1, Column: 7},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, expected %d", len(toks), len(want))
	}
	for i, p := range want {
		if toks[i].Pos != p {
			t.Fatalf("tokens[%d] at %s, expected %s", i, toks[i].Pos, p)
		}
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReaderFailure(t *testing.T) {
	cause := errors.New("disk gone")
	_, err := New(failingReader{cause}).Next()
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Kind != KindIO {
		t.Fatalf("Next() = %v, expected io error", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("io error does not wrap its cause: %v", err)
	}
	if lexErr.IsSyntax() {
		t.Fatal("io error reported as syntax")
	}
}

func TestReaderEOFIsExhaustion(t *testing.T) {
	_, err := New(failingReader{io.EOF}).Next()
	if !IsExhausted(err) {
		t.Fatalf("Next() = %v", err)
	}
}
