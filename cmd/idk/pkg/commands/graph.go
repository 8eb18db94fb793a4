package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/modules"
)

func newGraphCommand(o *options) *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Print the use graph of a package",
		Long: `Print one "package -> used package" edge per line, packages listed with
their dependencies first. Paths are relative to the package root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			e, err := o.load(cmd, dir)
			if err != nil {
				return err
			}
			imp := modules.NewFsImporter(e.cfg, modules.WithLogger(e.logger))
			prog, err := imp.ImportAll(cmd.Context(), dir)
			if prog == nil {
				return err
			}

			rel := func(d string) string {
				if r, err := filepath.Rel(prog.Root, d); err == nil {
					return filepath.ToSlash(r)
				}
				return d
			}
			order := prog.Order
			if len(order) == 0 {
				for d := range prog.Packages {
					order = append(order, d)
				}
				sort.Strings(order)
			}

			var out strings.Builder
			if dot {
				out.WriteString("digraph uses {\n")
			}
			for _, d := range order {
				for _, u := range prog.Packages[d].Uses {
					if u == d {
						continue
					}
					if dot {
						fmt.Fprintf(&out, "  %q -> %q;\n", rel(d), rel(u))
					} else {
						fmt.Fprintf(&out, "%s -> %s\n", rel(d), rel(u))
					}
				}
			}
			if dot {
				out.WriteString("}\n")
			}
			if _, werr := fmt.Fprint(cmd.OutOrStdout(), out.String()); werr != nil {
				return werr
			}
			return report(cmd, newRenderer(cmd), err)
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "print Graphviz DOT instead of edges")
	return cmd
}
