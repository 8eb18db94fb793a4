package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/modules"
)

func newWatchCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check a package again whenever its sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			e, err := o.load(cmd, dir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, cmd, e, dir)
		},
	}
}

func watch(ctx context.Context, cmd *cobra.Command, e *env, dir string) error {
	imp := modules.NewFsImporter(e.cfg, modules.WithLogger(e.logger))
	r := newRenderer(cmd)
	return imp.Watch(ctx, dir, func(prog *modules.Program, err error) {
		if prog != nil {
			summarize(cmd.OutOrStdout(), prog)
		}
		if _, werr := r.Render(cmd.ErrOrStderr(), err); werr != nil {
			e.logger.Warn("cannot print diagnostics", "error", werr)
		}
	})
}
