package ast

import (
	"github.com/paratym/idk/internal/position"
)

// VisDecl wraps a declaration in a visibility prefix.
type VisDecl struct {
	At   position.Position
	Vis  Visibility
	Decl Decl
}

func (d *VisDecl) Pos() position.Position { return d.At }
func (d *VisDecl) String() string         { return d.Vis.String() + " " + d.Decl.String() }
func (d *VisDecl) declNode()              {}

// AliasDecl is `let|var|const|type Name [: Bound] [= Value];`. At least
// one of Bound and Value is set.
type AliasDecl struct {
	At    position.Position
	Eval  EvalKind
	Name  *Alias
	Bound Expr
	Value Expr
}

func (d *AliasDecl) Pos() position.Position { return d.At }
func (d *AliasDecl) declNode()              {}
func (d *AliasDecl) String() string {
	s := d.Eval.String() + " " + d.Name.Name + bound(d.Bound)
	if d.Value != nil {
		s += " = " + d.Value.String()
	}
	return s + ";"
}

// FnDecl is `fn Name [: Sig] { ... }`; Body is nil for a forward
// declaration.
type FnDecl struct {
	At   position.Position
	Name *Alias
	Sig  Expr
	Body *ExecScope
}

func (d *FnDecl) Pos() position.Position { return d.At }
func (d *FnDecl) declNode()              {}
func (d *FnDecl) String() string {
	s := "fn " + d.Name.Name + bound(d.Sig)
	if d.Body == nil {
		return s + ";"
	}
	return s + " " + d.Body.String()
}

// IfaceDecl is `iface Name [: Bound] { ... }`.
type IfaceDecl struct {
	At    position.Position
	Name  *Alias
	Bound Expr
	Body  *ConstScope
}

func (d *IfaceDecl) Pos() position.Position { return d.At }
func (d *IfaceDecl) declNode()              {}
func (d *IfaceDecl) String() string {
	return "iface " + d.Name.Name + bound(d.Bound) + " " + d.Body.String()
}

// ModDecl is `mod Name [: Bound] { ... }`; Body is nil for a forward
// declaration.
type ModDecl struct {
	At    position.Position
	Name  *Alias
	Bound Expr
	Body  *ConstScope
}

func (d *ModDecl) Pos() position.Position { return d.At }
func (d *ModDecl) declNode()              {}
func (d *ModDecl) String() string {
	s := "mod " + d.Name.Name + bound(d.Bound)
	if d.Body == nil {
		return s + ";"
	}
	return s + " " + d.Body.String()
}

// UseDecl is `use Path;`.
type UseDecl struct {
	At   position.Position
	Path Expr
}

func (d *UseDecl) Pos() position.Position { return d.At }
func (d *UseDecl) String() string         { return "use " + d.Path.String() + ";" }
func (d *UseDecl) declNode()              {}

// Annotation is `![Tag] Decl` or `![Tag = Value]`. Exactly one of Decl and
// Value is set.
type Annotation struct {
	At    position.Position
	Tag   *Alias
	Value Expr
	Decl  Decl
}

func (a *Annotation) Pos() position.Position { return a.At }
func (a *Annotation) declNode()              {}
func (a *Annotation) String() string {
	if a.Decl != nil {
		return "![" + a.Tag.Name + "] " + a.Decl.String()
	}
	return "![" + a.Tag.Name + " = " + a.Value.String() + "]"
}

func bound(e Expr) string {
	if e == nil {
		return ""
	}
	return ": " + e.String()
}
