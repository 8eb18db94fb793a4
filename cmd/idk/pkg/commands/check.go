package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/modules"
)

func newCheckCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Import a package and every package it uses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			e, err := o.load(cmd, dir)
			if err != nil {
				return err
			}
			imp := modules.NewFsImporter(e.cfg, modules.WithLogger(e.logger))
			prog, err := imp.ImportAll(cmd.Context(), dir)
			if prog != nil {
				summarize(cmd.OutOrStdout(), prog)
			}
			return report(cmd, newRenderer(cmd), err)
		},
	}
}

func summarize(w io.Writer, prog *modules.Program) {
	var files, decls int
	for _, pkg := range prog.Packages {
		files += len(pkg.Scope.Files)
		decls += len(pkg.Scope.Decls())
	}
	fmt.Fprintf(w, "%d packages, %d files, %d declarations\n", len(prog.Packages), files, decls)
}
