package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/lexer"
	"github.com/paratym/idk/internal/modules"
)

func newTokensCommand(o *options) *cobra.Command {
	var comments bool
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := o.load(cmd, "."); err != nil {
				return err
			}
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			var opts []lexer.Option
			if comments {
				opts = append(opts, lexer.WithComments())
			}
			toks, lexErr := lexer.NewString(src, opts...).Tokens()

			out := cmd.OutOrStdout()
			for _, t := range toks {
				fmt.Fprintf(out, "%s\t%s\n", t.Pos, t.Tok.Describe())
			}

			r := newRenderer(cmd)
			r.AddSource(name, src)
			return report(cmd, r, fileError(name, lexErr))
		},
	}
	cmd.Flags().BoolVar(&comments, "comments", false, "include comment tokens")
	return cmd
}

// fileError attributes err to name for diagnostics.
func fileError(name string, err error) error {
	if err == nil {
		return nil
	}
	return &modules.FileError{Path: name, Err: err}
}
