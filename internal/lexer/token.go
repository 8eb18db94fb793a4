package lexer

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/paratym/idk/internal/position"
)

// LanguageVersion is the grammar revision this tokenizer and the parser
// implement. Project manifests constrain it.
const LanguageVersion = "0.1.0"

// Kind identifies a token. Fixed kinds carry no payload; Comment, Alias,
// CharLit, StrLit and NumLit carry their raw source text.
type Kind int

const (
	// EOF never leaves the Tokenizer; the parser uses it to stand for an
	// exhausted stream.
	EOF Kind = iota

	Comment
	Alias
	CharLit
	StrLit
	NumLit

	Equal
	As
	Let
	Var
	Const
	Asterisk
	Ampersand
	Caret
	Pub
	Mod
	Pkg
	Std
	Ext
	Use
	DoubleColon
	Type
	Infer
	Bool
	True
	False
	Char
	Str
	Isize
	I8
	I16
	I24
	I32
	I64
	Usize
	U8
	U16
	U24
	U32
	U64
	F32
	F64
	LParen
	RParen
	Union
	Key
	Colon
	Comma
	Dot
	Hyphen
	Underscore
	Get
	Set
	LBracket
	RBracket
	Ellipsis
	Semicolon
	Fn
	Arrow
	LBrace
	RBrace
	Return
	Defer
	If
	Else
	While
	Break
	Continue
	Match
	Iface
	Impl
	Bang
	LAngle
	RAngle
)

// lexemes is the fixed half of the vocabulary: every payload-free kind and
// its only spelling.
var lexemes = map[Kind]string{
	Equal:       "=",
	As:          "as",
	Let:         "let",
	Var:         "var",
	Const:       "const",
	Asterisk:    "*",
	Ampersand:   "&",
	Caret:       "^",
	Pub:         "pub",
	Mod:         "mod",
	Pkg:         "pkg",
	Std:         "std",
	Ext:         "ext",
	Use:         "use",
	DoubleColon: "::",
	Type:        "type",
	Infer:       "infer",
	Bool:        "bool",
	True:        "true",
	False:       "false",
	Char:        "char",
	Str:         "str",
	Isize:       "isize",
	I8:          "i8",
	I16:         "i16",
	I24:         "i24",
	I32:         "i32",
	I64:         "i64",
	Usize:       "usize",
	U8:          "u8",
	U16:         "u16",
	U24:         "u24",
	U32:         "u32",
	U64:         "u64",
	F32:         "f32",
	F64:         "f64",
	LParen:      "(",
	RParen:      ")",
	Union:       "union",
	Key:         "key",
	Colon:       ":",
	Comma:       ",",
	Dot:         ".",
	Hyphen:      "-",
	Underscore:  "_",
	Get:         "get",
	Set:         "set",
	LBracket:    "[",
	RBracket:    "]",
	Ellipsis:    "...",
	Semicolon:   ";",
	Fn:          "fn",
	Arrow:       "->",
	LBrace:      "{",
	RBrace:      "}",
	Return:      "return",
	Defer:       "defer",
	If:          "if",
	Else:        "else",
	While:       "while",
	Break:       "break",
	Continue:    "continue",
	Match:       "match",
	Iface:       "iface",
	Impl:        "impl",
	Bang:        "!",
	LAngle:      "<",
	RAngle:      ">",
}

// spellings is the inverse of lexemes; maxLexemeLen bounds the longest
// match scan. Both are computed once at package initialization.
var spellings, maxLexemeLen = invert(lexemes)

func invert(table map[Kind]string) (map[string]Kind, int) {
	inv := make(map[string]Kind, len(table))
	longest := 0
	for k, s := range table {
		if prev, dup := inv[s]; dup {
			panic(fmt.Sprintf("lexer: spelling %q used by both %d and %d", s, prev, k))
		}
		inv[s] = k
		longest = max(longest, len(s))
	}
	return inv, longest
}

var payloadNames = map[Kind]string{
	EOF:     "end of input",
	Comment: "comment",
	Alias:   "alias",
	CharLit: "character literal",
	StrLit:  "string literal",
	NumLit:  "numeric literal",
}

// Lookup returns the fixed kind spelled exactly s.
func Lookup(s string) (Kind, bool) {
	k, ok := spellings[s]
	return k, ok
}

// MaxLexemeLen is the length in bytes of the longest fixed spelling.
func MaxLexemeLen() int { return maxLexemeLen }

// FixedKinds lists every payload-free kind in declaration order.
func FixedKinds() []Kind {
	kinds := make([]Kind, 0, len(lexemes))
	for k := range lexemes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Spelling returns the source text of a fixed kind.
func (k Kind) Spelling() (string, bool) {
	s, ok := lexemes[k]
	return s, ok
}

// IsFixed reports whether k is drawn from the fixed vocabulary.
func (k Kind) IsFixed() bool {
	_, ok := lexemes[k]
	return ok
}

// IsWord reports whether k is a fixed kind spelled like an identifier
// (keywords, primitive type names, `_`).
func (k Kind) IsWord() bool {
	s, ok := lexemes[k]
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func (k Kind) String() string {
	if s, ok := lexemes[k]; ok {
		return "'" + s + "'"
	}
	if name, ok := payloadNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical token. Equality is structural, so a fixed token can be
// compared against Fixed(k) directly.
type Token struct {
	Kind Kind
	Text string
}

// Fixed returns the payload-free token of kind k.
func Fixed(k Kind) Token { return Token{Kind: k} }

// String renders the token back to source text.
func (t Token) String() string {
	switch t.Kind {
	case Comment:
		return "#" + t.Text
	case Alias, NumLit:
		return t.Text
	case CharLit:
		return "'" + t.Text + "'"
	case StrLit:
		return "\"" + t.Text + "\""
	}
	if s, ok := lexemes[t.Kind]; ok {
		return s
	}
	return ""
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case Alias:
		return "alias '" + t.Text + "'"
	case NumLit, CharLit, StrLit, Comment:
		return t.Kind.String() + " " + t.String()
	}
	return t.Kind.String()
}

// SrcToken is a token plus the position of its first character.
type SrcToken struct {
	Tok Token
	Pos position.Position
}

func (t SrcToken) String() string {
	return fmt.Sprintf("%s %s", t.Pos, t.Tok.Describe())
}
