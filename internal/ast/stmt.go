package ast

import (
	"strings"

	"github.com/paratym/idk/internal/position"
)

// DeclStmt is a declaration inside an executable scope.
type DeclStmt struct {
	Decl Decl
}

func (s *DeclStmt) Pos() position.Position { return s.Decl.Pos() }
func (s *DeclStmt) String() string         { return s.Decl.String() }
func (s *DeclStmt) stmtNode()              {}

// AssignStmt is `Target = Value;`.
type AssignStmt struct {
	Target Expr
	Value  Expr
}

func (s *AssignStmt) Pos() position.Position { return s.Target.Pos() }
func (s *AssignStmt) String() string         { return s.Target.String() + " = " + s.Value.String() + ";" }
func (s *AssignStmt) stmtNode()              {}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() position.Position { return s.X.Pos() }
func (s *ExprStmt) stmtNode()              {}
func (s *ExprStmt) String() string {
	if _, ok := s.X.(*ExecScope); ok {
		return s.X.String()
	}
	return s.X.String() + ";"
}

// CtrlOp is the keyword of a control statement.
type CtrlOp int

const (
	CtrlReturn CtrlOp = iota
	CtrlDefer
	CtrlContinue
	CtrlBreak
)

func (op CtrlOp) String() string {
	switch op {
	case CtrlReturn:
		return "return"
	case CtrlDefer:
		return "defer"
	case CtrlContinue:
		return "continue"
	case CtrlBreak:
		return "break"
	default:
		return "?"
	}
}

// CtrlStmt is `return [X];`, `defer X;`, `continue;` or `break;`.
type CtrlStmt struct {
	At    position.Position
	Op    CtrlOp
	Value Expr
}

func (s *CtrlStmt) Pos() position.Position { return s.At }
func (s *CtrlStmt) stmtNode()              {}
func (s *CtrlStmt) String() string {
	if s.Value == nil {
		return s.Op.String() + ";"
	}
	return s.Op.String() + " " + s.Value.String() + ";"
}

// ElseBranch is the tail of an if statement: *IfStmt or *ExecScope.
type ElseBranch interface {
	Node
	elseNode()
}

// IfStmt is `if Cond { ... } [else ...]`.
type IfStmt struct {
	At   position.Position
	Cond Expr
	Body *ExecScope
	Else ElseBranch
}

func (s *IfStmt) Pos() position.Position { return s.At }
func (s *IfStmt) stmtNode()              {}
func (s *IfStmt) elseNode()              {}
func (s *IfStmt) String() string {
	out := "if " + s.Cond.String() + " " + s.Body.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is `while Cond { ... }`.
type WhileStmt struct {
	At   position.Position
	Cond Expr
	Body *ExecScope
}

func (s *WhileStmt) Pos() position.Position { return s.At }
func (s *WhileStmt) String() string         { return "while " + s.Cond.String() + " " + s.Body.String() }
func (s *WhileStmt) stmtNode()              {}

// MatchBranch is `Pattern -> Result`.
type MatchBranch struct {
	Pattern Expr
	Result  Expr
}

func (b *MatchBranch) Pos() position.Position { return b.Pattern.Pos() }
func (b *MatchBranch) String() string         { return b.Pattern.String() + " -> " + b.Result.String() }

// MatchStmt is `match Value { pattern -> result, ... }`.
type MatchStmt struct {
	At       position.Position
	Value    Expr
	Branches []*MatchBranch
}

func (s *MatchStmt) Pos() position.Position { return s.At }
func (s *MatchStmt) stmtNode()              {}
func (s *MatchStmt) String() string {
	parts := make([]string, len(s.Branches))
	for i, b := range s.Branches {
		parts[i] = b.String()
	}
	if len(parts) == 0 {
		return "match " + s.Value.String() + " {}"
	}
	return "match " + s.Value.String() + " { " + strings.Join(parts, ", ") + " }"
}
