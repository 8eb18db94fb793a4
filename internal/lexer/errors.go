package lexer

import (
	"errors"
	"fmt"

	"github.com/paratym/idk/internal/position"
)

// ErrorKind is the coarse classification of a tokenizing or parsing failure.
type ErrorKind int

const (
	// KindSyntax covers structural mismatches that have no more specific kind:
	// malformed literals, unbalanced delimiters, duplicate qualifiers.
	KindSyntax ErrorKind = iota
	KindIO
	KindUTF8
	KindUnexpectedChar
	KindUnexpectedToken
	// KindExhausted means input ended where another token was required.
	KindExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindIO:
		return "io"
	case KindUTF8:
		return "utf8"
	case KindUnexpectedChar:
		return "unexpected-character"
	case KindUnexpectedToken:
		return "unexpected-token"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ErrStreamExhausted matches, via errors.Is, every Error of KindExhausted.
var ErrStreamExhausted = errors.New("token stream exhausted")

// Error is the structured failure of the tokenizer and the parser.
type Error struct {
	Kind ErrorKind
	Pos  position.Position
	Msg  string
	// Err is the underlying reader error for KindIO.
	Err error
}

// Errorf builds an Error at pos.
func Errorf(kind ErrorKind, pos position.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Kind == KindIO && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Pos, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrStreamExhausted && e.Kind == KindExhausted
}

// IsSyntax reports whether the failure lies in the source text rather than
// in the reader.
func (e *Error) IsSyntax() bool { return e.Kind != KindIO }

// IsExhausted reports whether err signals an exhausted token stream.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrStreamExhausted)
}
