// Package commands implements the idk subcommands, one file per command.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/cli"
	"github.com/paratym/idk/internal/config"
	"github.com/paratym/idk/internal/diagnostics"
)

// ErrReported is returned after diagnostics have already been printed.
var ErrReported = errors.New("errors reported")

// options carries the persistent flags.
type options struct {
	configPath string
	verbose    bool
}

// env is what a command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// load reads the manifest named by --config, or the nearest one above dir.
func (o *options) load(cmd *cobra.Command, dir string) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadDir(dir)
	}
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(cmd.ErrOrStderr(), cfg.Log, o.verbose)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "idk",
		Short: "Tokenizer, parser and import checker for idk sources",
		Long: `idk reads .idk source files and reports their structure.

Commands:
  tokens   print the token stream of a file
  parse    print the syntax tree of a file
  check    import a package and everything it uses
  graph    print the use graph of a package
  watch    check a package again whenever its sources change
  init     create an idk.toml manifest`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "manifest file (default: nearest idk.toml or idk.yaml)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newTokensCommand(o),
		newParseCommand(o),
		newCheckCommand(o),
		newGraphCommand(o),
		newWatchCommand(o),
		newInitCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line of the current process.
func Execute() error {
	return NewRootCommand().Execute()
}

// report renders err as diagnostics on the command's error stream and
// returns ErrReported, or nil when err is nil.
func report(cmd *cobra.Command, r *diagnostics.Renderer, err error) error {
	if err == nil {
		return nil
	}
	if _, werr := r.Render(cmd.ErrOrStderr(), err); werr != nil {
		return werr
	}
	return ErrReported
}

func newRenderer(cmd *cobra.Command) *diagnostics.Renderer {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		return diagnostics.NewRenderer(f)
	}
	return &diagnostics.Renderer{Context: 1}
}

// readSource reads the file named by args, or standard input when args is
// empty or "-".
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return "<stdin>", string(data), err
	}
	data, err := os.ReadFile(args[0])
	return args[0], string(data), err
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
