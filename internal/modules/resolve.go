package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/position"
)

// PathError reports a `use` path that does not name a source directory.
type PathError struct {
	Pos  position.Position
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %s: %s", e.Pos, e.Path, e.Msg)
}

// ResolvePath maps the path of a `use` declaration found in directory from
// to the source directory it names. `pkg` roots the path at the package
// source root, `std` and `ext` at the configured library roots, and `mod`
// or a bare alias at from. When the full path is not a directory but its
// parent is, the last segment names a declaration and the parent is
// returned.
func (i *FsImporter) ResolvePath(from string, use ast.Expr) (string, error) {
	segs, err := flattenPath(use)
	if err != nil {
		return "", err
	}

	fail := func(format string, args ...any) error {
		return &PathError{Pos: use.Pos(), Path: use.String(), Msg: fmt.Sprintf(format, args...)}
	}

	var dir string
	names := segs
	if root, ok := segs[0].(*ast.ScopeAlias); ok {
		names = segs[1:]
		switch root.Scope {
		case ast.ScopePkg:
			dir = i.cfg.RootDir()
		case ast.ScopeMod:
			dir = from
		case ast.ScopeStd:
			if dir = i.cfg.StdDir(); dir == "" {
				return "", fail("source.std is not configured")
			}
		case ast.ScopeExt:
			if dir = i.cfg.ExtDir(); dir == "" {
				return "", fail("source.ext is not configured")
			}
		}
	} else {
		dir = from
	}

	parent := dir
	for _, n := range names {
		parent = dir
		dir = filepath.Join(dir, n.(*ast.Alias).Name)
	}
	switch {
	case isDir(dir):
	case len(names) > 0 && isDir(parent):
		dir = parent
	default:
		return "", fail("no source directory %s", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fail("%v", err)
	}
	return abs, nil
}

// flattenPath turns `a::b::c` into its segments. Only the first segment may
// be a scope alias.
func flattenPath(e ast.Expr) ([]ast.Expr, error) {
	switch n := e.(type) {
	case *ast.Alias, *ast.ScopeAlias:
		return []ast.Expr{n}, nil
	case *ast.EvalPath:
		head, err := flattenPath(n.Rcv)
		if err != nil {
			return nil, err
		}
		if _, ok := n.Member.(*ast.Alias); !ok {
			return nil, &PathError{Pos: n.Member.Pos(), Path: e.String(), Msg: fmt.Sprintf("unexpected segment %s", n.Member)}
		}
		return append(head, n.Member), nil
	default:
		return nil, &PathError{Pos: e.Pos(), Path: e.String(), Msg: "expected a path of aliases"}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
