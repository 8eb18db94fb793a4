// Package lexer turns idk source text into a stream of positioned tokens.
package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/paratym/idk/internal/position"
)

const readerSize = 4096

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithComments makes the Tokenizer emit Comment tokens instead of
// discarding them.
func WithComments() Option {
	return func(t *Tokenizer) { t.comments = true }
}

// Tokenizer reads tokens from a buffered character source with one token
// of lookahead. It is not safe for concurrent use.
type Tokenizer struct {
	r        *bufio.Reader
	pos      position.Position
	peeked   *SrcToken
	comments bool
}

// New creates a Tokenizer reading from r.
func New(r io.Reader, opts ...Option) *Tokenizer {
	t := &Tokenizer{r: bufio.NewReaderSize(r, readerSize)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewString creates a Tokenizer over an in-memory source.
func NewString(src string, opts ...Option) *Tokenizer {
	return New(strings.NewReader(src), opts...)
}

// Pos returns the position of the next unread character.
func (t *Tokenizer) Pos() position.Position { return t.pos }

// Peek returns the next token without consuming it. It returns nil and no
// error once the input is exhausted.
func (t *Tokenizer) Peek() (*SrcToken, error) {
	if t.peeked != nil {
		return t.peeked, nil
	}
	tok, err := t.Next()
	if err != nil {
		if IsExhausted(err) {
			return nil, nil
		}
		return nil, err
	}
	t.peeked = &tok
	return t.peeked, nil
}

// Next consumes and returns the next token. At the end of input it fails
// with a KindExhausted error.
func (t *Tokenizer) Next() (SrcToken, error) {
	if t.peeked != nil {
		tok := *t.peeked
		t.peeked = nil
		return tok, nil
	}
	for {
		tok, err := t.scan()
		if err != nil {
			return SrcToken{}, err
		}
		if tok.Tok.Kind == Comment && !t.comments {
			continue
		}
		return tok, nil
	}
}

// Expect consumes the next token and checks that it equals want.
func (t *Tokenizer) Expect(want Token) (SrcToken, error) {
	tok, err := t.Next()
	if err != nil {
		if IsExhausted(err) {
			return SrcToken{}, Errorf(KindExhausted, t.pos, "expected %s, found end of input", want.Describe())
		}
		return SrcToken{}, err
	}
	if tok.Tok != want {
		return tok, Errorf(KindUnexpectedToken, tok.Pos, "expected %s, found %s", want.Describe(), tok.Tok.Describe())
	}
	return tok, nil
}

// Tokens drains the Tokenizer.
func (t *Tokenizer) Tokens() ([]SrcToken, error) {
	var toks []SrcToken
	for {
		tok, err := t.Next()
		if err != nil {
			if IsExhausted(err) {
				return toks, nil
			}
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func (t *Tokenizer) scan() (SrcToken, error) {
	if err := t.skipSpace(); err != nil {
		return SrcToken{}, err
	}
	start := t.pos
	r, err := t.peekRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return SrcToken{}, Errorf(KindExhausted, start, "unexpected end of input")
		}
		return SrcToken{}, err
	}

	var tok Token
	switch {
	case r == '#':
		tok, err = t.readComment()
	case r == '_' || unicode.IsLetter(r):
		tok, err = t.readAlias()
	case isDecimal(r) || (r == '+' || r == '-') && t.signedNumber():
		tok = t.readNumber()
	case r == '"':
		tok, err = t.readString(start)
	case r == '\'':
		tok, err = t.readChar(start)
	default:
		var ok bool
		if tok, ok = t.readLexeme(); !ok {
			return SrcToken{}, Errorf(KindUnexpectedChar, start, "unexpected character %q", r)
		}
	}
	if err != nil {
		return SrcToken{}, err
	}
	return SrcToken{Tok: tok, Pos: start}, nil
}

func (t *Tokenizer) skipSpace() error {
	for {
		r, err := t.peekRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !unicode.IsSpace(r) {
			return nil
		}
		if _, err := t.readRune(); err != nil {
			return err
		}
	}
}

// peekRune decodes the next rune without consuming it. It returns io.EOF
// unwrapped at the end of input.
func (t *Tokenizer) peekRune() (rune, error) {
	r, size, err := t.r.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, &Error{Kind: KindIO, Pos: t.pos, Msg: "read failed", Err: err}
	}
	_ = t.r.UnreadRune()
	if r == utf8.RuneError && size == 1 {
		return 0, Errorf(KindUTF8, t.pos, "invalid utf-8 sequence")
	}
	return r, nil
}

func (t *Tokenizer) readRune() (rune, error) {
	r, err := t.peekRune()
	if err != nil {
		return 0, err
	}
	_, _, _ = t.r.ReadRune()
	t.pos = t.pos.Advance(r)
	return r, nil
}

// peekByte looks i bytes ahead. Reader failures are reported by the next
// readRune, so here they only end the lookahead.
func (t *Tokenizer) peekByte(i int) (byte, bool) {
	buf, _ := t.r.Peek(i + 1)
	if len(buf) <= i {
		return 0, false
	}
	return buf[i], true
}

// take consumes n single-byte characters into b.
func (t *Tokenizer) take(b *strings.Builder, n int) {
	buf, _ := t.r.Peek(n)
	b.Write(buf)
	t.pos = t.pos.AdvanceString(string(buf))
	_, _ = t.r.Discard(len(buf))
}

func (t *Tokenizer) readComment() (Token, error) {
	if _, err := t.readRune(); err != nil {
		return Token{}, err
	}
	var b strings.Builder
	for {
		r, err := t.peekRune()
		if errors.Is(err, io.EOF) || r == '\n' {
			break
		}
		if err != nil {
			return Token{}, err
		}
		_, _ = t.readRune()
		b.WriteRune(r)
	}
	return Token{Kind: Comment, Text: strings.TrimSuffix(b.String(), "\r")}, nil
}

func (t *Tokenizer) readAlias() (Token, error) {
	var b strings.Builder
	for {
		r, err := t.peekRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		_, _ = t.readRune()
		b.WriteRune(r)
	}
	text := b.String()
	if k, ok := spellings[text]; ok {
		return Fixed(k), nil
	}
	return Token{Kind: Alias, Text: text}, nil
}

func (t *Tokenizer) signedNumber() bool {
	c, ok := t.peekByte(1)
	return ok && isDecimal(rune(c))
}

// readNumber lexes an optional sign, an optional radix prefix, digits and an
// optional fraction. A prefix or a '.' is only taken when a digit valid in
// the radix follows it.
func (t *Tokenizer) readNumber() Token {
	var b strings.Builder
	if c, _ := t.peekByte(0); c == '+' || c == '-' {
		t.take(&b, 1)
	}
	var radix byte
	if c, _ := t.peekByte(0); c == '0' {
		if p, ok := t.peekByte(1); ok && isRadixMarker(p) {
			if d, ok := t.peekByte(2); ok && isValidDigit(p, d) {
				t.take(&b, 2)
				radix = p
			}
		}
	}
	t.takeDigits(&b, radix)
	if c, _ := t.peekByte(0); c == '.' {
		if d, ok := t.peekByte(1); ok && isValidDigit(radix, d) {
			t.take(&b, 1)
			t.takeDigits(&b, radix)
		}
	}
	return Token{Kind: NumLit, Text: b.String()}
}

func (t *Tokenizer) takeDigits(b *strings.Builder, radix byte) {
	for {
		d, ok := t.peekByte(0)
		if !ok || !isValidDigit(radix, d) {
			return
		}
		t.take(b, 1)
	}
}

func (t *Tokenizer) readString(start position.Position) (Token, error) {
	text, err := t.readQuoted(start, '"', true)
	return Token{Kind: StrLit, Text: text}, err
}

func (t *Tokenizer) readChar(start position.Position) (Token, error) {
	text, err := t.readQuoted(start, '\'', false)
	return Token{Kind: CharLit, Text: text}, err
}

// readQuoted returns the undecoded text between two quote characters.
// A backslash protects the following character from ending the literal.
func (t *Tokenizer) readQuoted(start position.Position, quote rune, multiline bool) (string, error) {
	if _, err := t.readRune(); err != nil {
		return "", err
	}
	var b strings.Builder
	escaped := false
	for {
		at := t.pos
		r, err := t.readRune()
		if errors.Is(err, io.EOF) {
			return "", Errorf(KindSyntax, start, "unterminated %s", literalName(quote))
		}
		if err != nil {
			return "", err
		}
		if r == '\n' && !multiline {
			return "", Errorf(KindSyntax, at, "newline in %s", literalName(quote))
		}
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

func literalName(quote rune) string {
	if quote == '"' {
		return "string literal"
	}
	return "character literal"
}

// readLexeme consumes the longest fixed punctuation spelling at the cursor.
func (t *Tokenizer) readLexeme() (Token, bool) {
	buf, _ := t.r.Peek(maxLexemeLen)
	for n := len(buf); n > 0; n-- {
		if k, ok := spellings[string(buf[:n])]; ok {
			var b strings.Builder
			t.take(&b, n)
			return Fixed(k), true
		}
	}
	return Token{}, false
}

func isDecimal(r rune) bool { return '0' <= r && r <= '9' }

func isRadixMarker(c byte) bool { return c == 'b' || c == 'o' || c == 'x' }

// isValidDigit reports whether c is a digit of the radix named by marker;
// a zero marker means decimal.
func isValidDigit(marker, c byte) bool {
	switch marker {
	case 'b':
		return c == '0' || c == '1'
	case 'o':
		return '0' <= c && c <= '7'
	case 'x':
		return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
	default:
		return '0' <= c && c <= '9'
	}
}
