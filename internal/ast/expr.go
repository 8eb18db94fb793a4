package ast

import (
	"strconv"
	"strings"

	"github.com/paratym/idk/internal/position"
)

// Alias is a user-chosen identifier.
type Alias struct {
	At   position.Position
	Name string
}

func (a *Alias) Pos() position.Position { return a.At }
func (a *Alias) String() string         { return a.Name }
func (a *Alias) exprNode()              {}
func (a *Alias) execMember()            {}

// ScopeKind names one of the built-in namespace roots.
type ScopeKind int

const (
	ScopePkg ScopeKind = iota
	ScopeMod
	ScopeStd
	ScopeExt
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePkg:
		return "pkg"
	case ScopeMod:
		return "mod"
	case ScopeStd:
		return "std"
	case ScopeExt:
		return "ext"
	default:
		return "?"
	}
}

// ScopeAlias is one of the `pkg`, `mod`, `std`, `ext` keywords used as a
// path root.
type ScopeAlias struct {
	At    position.Position
	Scope ScopeKind
}

func (s *ScopeAlias) Pos() position.Position { return s.At }
func (s *ScopeAlias) String() string         { return s.Scope.String() }
func (s *ScopeAlias) exprNode()              {}

// Wildcard is `_`.
type Wildcard struct {
	At position.Position
}

func (w *Wildcard) Pos() position.Position { return w.At }
func (w *Wildcard) String() string         { return "_" }
func (w *Wildcard) exprNode()              {}

// EvalPath is `Rcv::Member`, a member resolved at definition time.
type EvalPath struct {
	Rcv    Expr
	Member Expr
}

func (p *EvalPath) Pos() position.Position { return p.Rcv.Pos() }
func (p *EvalPath) String() string         { return p.Rcv.String() + "::" + p.Member.String() }
func (p *EvalPath) exprNode()              {}

// Construct is `Type::(...)`, `Type::[...]` or `Type::{...}`.
type Construct struct {
	Type Expr
	Arg  Expr
}

func (c *Construct) Pos() position.Position { return c.Type.Pos() }
func (c *Construct) String() string         { return c.Type.String() + "::" + c.Arg.String() }
func (c *Construct) exprNode()              {}

// ExecMember is the right-hand side of an exec path: *Alias, *RefOp,
// *Deref or *ExecScope.
type ExecMember interface {
	Node
	execMember()
}

// Deref is the `*` member of an exec path.
type Deref struct {
	At position.Position
}

func (d *Deref) Pos() position.Position { return d.At }
func (d *Deref) String() string         { return "*" }
func (d *Deref) execMember()            {}

// ExecPath is `Rcv.Member`, a member resolved at run time.
type ExecPath struct {
	Rcv    Expr
	Member ExecMember
}

func (p *ExecPath) Pos() position.Position { return p.Rcv.Pos() }
func (p *ExecPath) String() string         { return p.Rcv.String() + "." + p.Member.String() }
func (p *ExecPath) exprNode()              {}

// Call applies Fn to a directly following scope, array or struct.
type Call struct {
	Fn  Expr
	Arg Expr
}

func (c *Call) Pos() position.Position { return c.Fn.Pos() }
func (c *Call) String() string         { return c.Fn.String() + c.Arg.String() }
func (c *Call) exprNode()              {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	At    position.Position
	Value bool
}

func (b *BoolLit) Pos() position.Position { return b.At }
func (b *BoolLit) String() string         { return strconv.FormatBool(b.Value) }
func (b *BoolLit) exprNode()              {}

// NumLit keeps the literal's text together with its sign, radix and the
// magnitudes of its whole and fractional digit runs.
type NumLit struct {
	At         position.Position
	Raw        string
	Negative   bool
	Radix      int
	Whole      uint64
	Frac       uint64
	FracDigits int
}

func (n *NumLit) Pos() position.Position { return n.At }
func (n *NumLit) String() string         { return n.Raw }
func (n *NumLit) exprNode()              {}

// IsFloat reports whether the literal had a fractional part.
func (n *NumLit) IsFloat() bool { return n.FracDigits > 0 }

// CharLit is a single decoded code point.
type CharLit struct {
	At    position.Position
	Raw   string
	Value rune
}

func (c *CharLit) Pos() position.Position { return c.At }
func (c *CharLit) String() string         { return "'" + c.Raw + "'" }
func (c *CharLit) exprNode()              {}

// StrLit is a decoded UTF-8 string.
type StrLit struct {
	At    position.Position
	Raw   string
	Value string
}

func (s *StrLit) Pos() position.Position { return s.At }
func (s *StrLit) String() string         { return "\"" + s.Raw + "\"" }
func (s *StrLit) exprNode()              {}

// Spread is `...X` inside an array literal.
type Spread struct {
	At position.Position
	X  Expr
}

func (s *Spread) Pos() position.Position { return s.At }
func (s *Spread) String() string         { return "..." + s.X.String() }
func (s *Spread) exprNode()              {}

// ArrayLit is `[a, ...b, c]`.
type ArrayLit struct {
	At    position.Position
	Elems []Expr
}

func (a *ArrayLit) Pos() position.Position { return a.At }
func (a *ArrayLit) String() string         { return "[" + joinNodes(a.Elems) + "]" }
func (a *ArrayLit) exprNode()              {}

// StructField is one entry of a struct literal: *FieldDef, *FieldValue,
// *FieldSpread, *FieldInherit or *FieldVisAll.
type StructField interface {
	Node
	fieldNode()
}

// FieldDef is a named field with an optional visibility, type and default.
type FieldDef struct {
	At    position.Position
	Vis   *Visibility
	Name  *Alias
	Type  Expr
	Value Expr
}

func (f *FieldDef) Pos() position.Position { return f.At }
func (f *FieldDef) fieldNode()             {}
func (f *FieldDef) String() string {
	var b strings.Builder
	if f.Vis != nil {
		b.WriteString(f.Vis.String() + " ")
	}
	b.WriteString(f.Name.Name)
	if f.Type != nil {
		b.WriteString(": " + f.Type.String())
	}
	if f.Value != nil {
		b.WriteString(" = " + f.Value.String())
	}
	return b.String()
}

// FieldValue is a positional field.
type FieldValue struct {
	X Expr
}

func (f *FieldValue) Pos() position.Position { return f.X.Pos() }
func (f *FieldValue) String() string         { return f.X.String() }
func (f *FieldValue) fieldNode()             {}

// FieldSpread is `...X`, copying every field of X.
type FieldSpread struct {
	At position.Position
	X  Expr
}

func (f *FieldSpread) Pos() position.Position { return f.At }
func (f *FieldSpread) String() string         { return "..." + f.X.String() }
func (f *FieldSpread) fieldNode()             {}

// FieldInherit is `.name`, a field taken from the enclosing definition.
type FieldInherit struct {
	At   position.Position
	Name *Alias
}

func (f *FieldInherit) Pos() position.Position { return f.At }
func (f *FieldInherit) String() string         { return "." + f.Name.Name }
func (f *FieldInherit) fieldNode()             {}

// FieldVisAll is `pub *`, the default visibility of every field.
type FieldVisAll struct {
	At  position.Position
	Vis Visibility
}

func (f *FieldVisAll) Pos() position.Position { return f.At }
func (f *FieldVisAll) String() string         { return f.Vis.String() + " *" }
func (f *FieldVisAll) fieldNode()             {}

// StructLit is `(field, ...)`. It doubles as a parameter list.
type StructLit struct {
	At     position.Position
	Fields []StructField
}

func (s *StructLit) Pos() position.Position { return s.At }
func (s *StructLit) exprNode()              {}
func (s *StructLit) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// PrimitiveType is a built-in type keyword such as `i32` or `bool`.
type PrimitiveType struct {
	At   position.Position
	Name string
}

func (p *PrimitiveType) Pos() position.Position { return p.At }
func (p *PrimitiveType) String() string         { return p.Name }
func (p *PrimitiveType) exprNode()              {}

// Infer is the `infer` placeholder type.
type Infer struct {
	At position.Position
}

func (i *Infer) Pos() position.Position { return i.At }
func (i *Infer) String() string         { return "infer" }
func (i *Infer) exprNode()              {}

// RefOp is `&`, optionally borrowing from Src (`&^src`) with a binding
// keyword.
type RefOp struct {
	At     position.Position
	Src    *Alias
	Binder EvalKind
}

func (r *RefOp) Pos() position.Position { return r.At }
func (r *RefOp) execMember()            {}
func (r *RefOp) String() string {
	s := "&"
	if r.Src != nil {
		s += "^" + r.Src.Name
		if r.Binder != EvalNone {
			s += " "
		}
	}
	if r.Binder != EvalNone {
		s += r.Binder.String()
	}
	return s
}

// RefType is a reference to Elem.
type RefType struct {
	Ref  *RefOp
	Elem Expr
}

func (r *RefType) Pos() position.Position { return r.Ref.At }
func (r *RefType) exprNode()              {}
func (r *RefType) String() string {
	if r.Ref.Src == nil && r.Ref.Binder == EvalNone {
		return "&" + r.Elem.String()
	}
	return r.Ref.String() + " " + r.Elem.String()
}

// UnionType is `union (...)`.
type UnionType struct {
	At     position.Position
	Fields *StructLit
}

func (u *UnionType) Pos() position.Position { return u.At }
func (u *UnionType) String() string         { return "union " + u.Fields.String() }
func (u *UnionType) exprNode()              {}

// ArrayType is `Elem[Len]`; Len is nil for `Elem[]`.
type ArrayType struct {
	Elem Expr
	Len  Expr
}

func (a *ArrayType) Pos() position.Position { return a.Elem.Pos() }
func (a *ArrayType) exprNode()              {}
func (a *ArrayType) String() string {
	if a.Len == nil {
		return a.Elem.String() + "[]"
	}
	return a.Elem.String() + "[" + a.Len.String() + "]"
}

// FnType is `Arg -> Ret` or, with a receiver, `Rcv -> Arg -> Ret`.
type FnType struct {
	Rcv Expr
	Arg Expr
	Ret Expr
}

func (f *FnType) Pos() position.Position {
	if f.Rcv != nil {
		return f.Rcv.Pos()
	}
	return f.Arg.Pos()
}
func (f *FnType) exprNode() {}
func (f *FnType) String() string {
	if f.Rcv != nil {
		return f.Rcv.String() + " -> " + f.Arg.String() + " -> " + f.Ret.String()
	}
	return f.Arg.String() + " -> " + f.Ret.String()
}

// Cast is `X as Type`.
type Cast struct {
	X    Expr
	Type Expr
}

func (c *Cast) Pos() position.Position { return c.X.Pos() }
func (c *Cast) String() string         { return c.X.String() + " as " + c.Type.String() }
func (c *Cast) exprNode()              {}

func joinNodes[N Node](nodes []N) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
