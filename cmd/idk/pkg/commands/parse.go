package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paratym/idk/internal/ast"
	"github.com/paratym/idk/internal/parser"
)

func newParseCommand(o *options) *cobra.Command {
	var (
		format string
		node   string
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree of a file",
		Long: `Parse a file, or standard input, and print the result.

--node selects what the input holds: a whole file (default), or a single
declaration, statement or expression. --format text prints the tree back
as source; json and yaml print its structure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.load(cmd, ".")
			if err != nil {
				return err
			}
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			n, perr := parseNode(node, name, src, parser.WithLogger(e.logger))
			if perr != nil {
				r := newRenderer(cmd)
				r.AddSource(name, src)
				return report(cmd, r, fileError(name, perr))
			}
			return writeNode(cmd.OutOrStdout(), format, n)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&node, "node", "file", "input kind: file, decl, stmt or expr")
	return cmd
}

func parseNode(kind, name, src string, opts ...parser.Option) (ast.Node, error) {
	r := strings.NewReader(src)
	switch kind {
	case "file":
		return parser.ParseFile(name, r, opts...)
	case "decl":
		return parser.ParseDecl(r, opts...)
	case "stmt":
		return parser.ParseStmt(r, opts...)
	case "expr":
		return parser.ParseExpr(r, opts...)
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func writeNode(w io.Writer, format string, n ast.Node) error {
	switch format {
	case "text":
		if f, ok := n.(*ast.File); ok {
			for _, d := range f.Decls {
				if _, err := fmt.Fprintln(w, d); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := fmt.Fprintln(w, n)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.Dump(n))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.Dump(n)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
