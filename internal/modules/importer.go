// Package modules imports idk source directories from the file system and
// follows the `use` declarations between them.
package modules

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/config"
	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/parser"
)

// FileError attributes a failure to the source file it occurred in.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	var lexErr *lexer.Error
	var pathErr *PathError
	if errors.As(e.Err, &lexErr) || errors.As(e.Err, &pathErr) {
		return e.Path + ":" + e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

// Option configures an FsImporter.
type Option func(*FsImporter)

// WithLogger sets the logger for import progress. Parsers started by the
// importer log through it as well.
func WithLogger(logger *slog.Logger) Option {
	return func(i *FsImporter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// FsImporter reads source directories laid out by a package manifest. It
// holds no state between calls and may be used concurrently.
type FsImporter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewFsImporter creates an importer for the package described by cfg.
func NewFsImporter(cfg *config.Config, opts ...Option) *FsImporter {
	if cfg == nil {
		cfg = config.Default()
	}
	i := &FsImporter{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Package is one imported source directory.
type Package struct {
	Dir   string
	Scope *ast.GlobalScope
	// Uses lists the directories named by the package's `use` declarations.
	Uses []string
}

// Program is the transitive closure of packages reachable from a root.
type Program struct {
	Root     string
	Packages map[string]*Package
	// Order lists package directories with dependencies first.
	Order []string

	graph *graph
}

// Dependents returns the packages that use dir directly, in Order. When a
// use cycle left Order empty they come in import order instead.
func (p *Program) Dependents(dir string) []string {
	order := p.Order
	if len(order) == 0 {
		order = p.graph.nodes
	}
	return p.graph.dependents(dir, order)
}

// ImportDir parses every source file directly inside dir and merges them
// into one scope, ordered by file name. Files are parsed concurrently; a
// failing file does not stop its siblings. The returned scope holds the
// files that parsed, and the error joins one FileError per failure.
func (i *FsImporter) ImportDir(ctx context.Context, dir string) (*ast.GlobalScope, error) {
	return i.importDir(ctx, i.session(), dir)
}

// ImportAll imports dir and every directory reachable through `use`
// declarations. Each directory is imported once. Resolution failures are
// attributed to the file holding the declaration; a use cycle leaves
// Order empty.
func (i *FsImporter) ImportAll(ctx context.Context, dir string) (*Program, error) {
	log := i.session()
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	prog := &Program{Root: root, Packages: make(map[string]*Package), graph: newGraph()}
	prog.graph.add(root)

	var errs []error
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, done := prog.Packages[cur]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scope, err := i.importDir(ctx, log, cur)
		if err != nil {
			errs = append(errs, err)
		}
		if scope == nil {
			continue
		}
		pkg := &Package{Dir: cur, Scope: scope}
		prog.Packages[cur] = pkg

		for _, f := range scope.Files {
			for _, use := range uses(f) {
				target, err := i.ResolvePath(cur, use.Path)
				if err != nil {
					errs = append(errs, &FileError{Path: f.Name, Err: err})
					continue
				}
				if !containsDir(pkg.Uses, target) {
					pkg.Uses = append(pkg.Uses, target)
				}
				prog.graph.edge(cur, target)
				if _, done := prog.Packages[target]; !done {
					queue = append(queue, target)
				}
			}
		}
	}

	order, err := prog.graph.order()
	if err != nil {
		errs = append(errs, err)
	}
	for _, d := range order {
		if _, ok := prog.Packages[d]; ok {
			prog.Order = append(prog.Order, d)
		}
	}
	log.Info("imported program",
		slog.String("root", root),
		slog.Int("packages", len(prog.Packages)),
		slog.Int("errors", len(errs)))
	return prog, errors.Join(errs...)
}

func (i *FsImporter) session() *slog.Logger {
	return i.logger.With(slog.String("session", uuid.NewString()))
}

func (i *FsImporter) importDir(ctx context.Context, log *slog.Logger, dir string) (*ast.GlobalScope, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), i.cfg.Source.Extension) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	files := make([]*ast.File, len(paths))
	errs := make([]error, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(i.cfg.Jobs())
	for n, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := i.parseFile(log, path)
			if err != nil {
				errs[n] = &FileError{Path: path, Err: err}
				return nil
			}
			files[n] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scope := &ast.GlobalScope{}
	for _, f := range files {
		if f != nil {
			scope.Add(f)
		}
	}
	log.Info("imported directory",
		slog.String("dir", dir),
		slog.Int("files", len(paths)),
		slog.Int("decls", len(scope.Decls())))
	return scope, errors.Join(errs...)
}

func (i *FsImporter) parseFile(log *slog.Logger, path string) (*ast.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := parser.ParseFile(path, fh, parser.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Debug("parsed file", slog.String("path", path), slog.Int("decls", len(f.Decls)))
	return f, nil
}

// uses collects the `use` declarations of f at any depth.
func uses(f *ast.File) []*ast.UseDecl {
	var out []*ast.UseDecl
	ast.Inspect(f, func(n ast.Node) bool {
		if u, ok := n.(*ast.UseDecl); ok {
			out = append(out, u)
			return false
		}
		return true
	})
	return out
}

func containsDir(dirs []string, dir string) bool {
	for _, d := range dirs {
		if d == dir {
			return true
		}
	}
	return false
}
