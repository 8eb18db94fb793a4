// Package ast defines the syntax tree produced by the idk parser.
//
// Expressions, statements and declarations are closed families: the marker
// methods are unexported, so every variant lives in this package. Nodes are
// immutable once the parser returns them.
package ast

import (
	"strings"

	"github.com/paratym/idk/internal/position"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() position.Position
	// String renders the node back to idk source.
	String() string
}

// Expr is a value, type or path expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is an item of an executable scope.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is an item of a constant scope or a file.
type Decl interface {
	Node
	declNode()
}

// EvalKind is the binding keyword of an alias declaration or reference.
type EvalKind int

const (
	EvalNone EvalKind = iota
	EvalLet
	EvalVar
	EvalConst
	EvalType
)

func (k EvalKind) String() string {
	switch k {
	case EvalLet:
		return "let"
	case EvalVar:
		return "var"
	case EvalConst:
		return "const"
	case EvalType:
		return "type"
	default:
		return ""
	}
}

// VisScope restricts a public declaration to its package or module.
type VisScope int

const (
	VisScopeNone VisScope = iota
	VisScopePkg
	VisScopeMod
)

func (s VisScope) String() string {
	switch s {
	case VisScopePkg:
		return "pkg"
	case VisScopeMod:
		return "mod"
	default:
		return ""
	}
}

// Access restricts a public declaration to reads or writes.
type Access int

const (
	AccessNone Access = iota
	AccessGet
	AccessSet
)

func (a Access) String() string {
	switch a {
	case AccessGet:
		return "get"
	case AccessSet:
		return "set"
	default:
		return ""
	}
}

// Visibility is the `pub[:scope][:access]` prefix.
type Visibility struct {
	Scope  VisScope
	Access Access
}

func (v Visibility) String() string {
	var b strings.Builder
	b.WriteString("pub")
	if v.Scope != VisScopeNone {
		b.WriteString(":" + v.Scope.String())
	}
	if v.Access != AccessNone {
		b.WriteString(":" + v.Access.String())
	}
	return b.String()
}

// File is the declaration list of one source file.
type File struct {
	Name  string
	Decls []Decl
}

func (f *File) Pos() position.Position {
	if len(f.Decls) == 0 {
		return position.Position{}
	}
	return f.Decls[0].Pos()
}

func (f *File) String() string {
	parts := make([]string, len(f.Decls))
	for i, d := range f.Decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n")
}

// ConstScope is a braced list of declarations: module and interface bodies.
type ConstScope struct {
	At    position.Position
	Decls []Decl
}

func (s *ConstScope) Pos() position.Position { return s.At }
func (s *ConstScope) String() string {
	parts := make([]string, len(s.Decls))
	for i, d := range s.Decls {
		parts[i] = d.String()
	}
	return braced(parts)
}

// ExecScope is a braced list of statements. It is also an expression.
type ExecScope struct {
	At    position.Position
	Stmts []Stmt
}

func (s *ExecScope) Pos() position.Position { return s.At }
func (s *ExecScope) exprNode()              {}
func (s *ExecScope) elseNode()              {}
func (s *ExecScope) execMember()            {}
func (s *ExecScope) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return braced(parts)
}

func braced(items []string) string {
	if len(items) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(items, " ") + " }"
}

// GlobalScope collects the declarations of every file of a package.
type GlobalScope struct {
	Files []*File
}

// Add appends the declarations of f.
func (g *GlobalScope) Add(f *File) {
	g.Files = append(g.Files, f)
}

// Merge moves every file of other into g.
func (g *GlobalScope) Merge(other *GlobalScope) {
	if other == nil {
		return
	}
	g.Files = append(g.Files, other.Files...)
}

// Decls returns all declarations in file order.
func (g *GlobalScope) Decls() []Decl {
	var decls []Decl
	for _, f := range g.Files {
		decls = append(decls, f.Decls...)
	}
	return decls
}
