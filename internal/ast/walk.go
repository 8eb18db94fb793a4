package ast

// Visitor's Visit is called for each node reached by Walk. If the returned
// visitor w is not nil, Walk visits the children of node with w and then
// calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		walkList(v, n.Decls)
	case *ConstScope:
		walkList(v, n.Decls)
	case *ExecScope:
		walkList(v, n.Stmts)

	// Expressions.
	case *Alias, *ScopeAlias, *Wildcard, *BoolLit, *NumLit, *CharLit, *StrLit,
		*PrimitiveType, *Infer, *Deref:
	case *EvalPath:
		Walk(v, n.Rcv)
		Walk(v, n.Member)
	case *Construct:
		Walk(v, n.Type)
		Walk(v, n.Arg)
	case *ExecPath:
		Walk(v, n.Rcv)
		Walk(v, n.Member)
	case *Call:
		Walk(v, n.Fn)
		Walk(v, n.Arg)
	case *Spread:
		Walk(v, n.X)
	case *ArrayLit:
		walkList(v, n.Elems)
	case *StructLit:
		walkList(v, n.Fields)
	case *FieldDef:
		Walk(v, n.Name)
		walkOpt(v, n.Type)
		walkOpt(v, n.Value)
	case *FieldValue:
		Walk(v, n.X)
	case *FieldSpread:
		Walk(v, n.X)
	case *FieldInherit:
		Walk(v, n.Name)
	case *FieldVisAll:
	case *RefOp:
		if n.Src != nil {
			Walk(v, n.Src)
		}
	case *RefType:
		Walk(v, n.Ref)
		Walk(v, n.Elem)
	case *UnionType:
		Walk(v, n.Fields)
	case *ArrayType:
		Walk(v, n.Elem)
		walkOpt(v, n.Len)
	case *FnType:
		walkOpt(v, n.Rcv)
		Walk(v, n.Arg)
		Walk(v, n.Ret)
	case *Cast:
		Walk(v, n.X)
		Walk(v, n.Type)

	// Statements.
	case *DeclStmt:
		Walk(v, n.Decl)
	case *AssignStmt:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *ExprStmt:
		Walk(v, n.X)
	case *CtrlStmt:
		walkOpt(v, n.Value)
	case *IfStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *MatchStmt:
		Walk(v, n.Value)
		walkList(v, n.Branches)
	case *MatchBranch:
		Walk(v, n.Pattern)
		Walk(v, n.Result)

	// Declarations.
	case *VisDecl:
		Walk(v, n.Decl)
	case *AliasDecl:
		Walk(v, n.Name)
		walkOpt(v, n.Bound)
		walkOpt(v, n.Value)
	case *FnDecl:
		Walk(v, n.Name)
		walkOpt(v, n.Sig)
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *IfaceDecl:
		Walk(v, n.Name)
		walkOpt(v, n.Bound)
		Walk(v, n.Body)
	case *ModDecl:
		Walk(v, n.Name)
		walkOpt(v, n.Bound)
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *UseDecl:
		Walk(v, n.Path)
	case *Annotation:
		Walk(v, n.Tag)
		walkOpt(v, n.Value)
		if n.Decl != nil {
			Walk(v, n.Decl)
		}
	}

	v.Visit(nil)
}

func walkList[N Node](v Visitor, nodes []N) {
	for _, n := range nodes {
		Walk(v, n)
	}
}

func walkOpt(v Visitor, e Expr) {
	if e != nil {
		Walk(v, e)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for every node of the tree rooted at node, in depth-first
// order, descending into children while f returns true. After the children
// of a node it calls f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
