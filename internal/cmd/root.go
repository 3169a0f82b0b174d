// Package cmd defines the planscope CLI commands.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/planscope/planscope/internal/cache"
	"github.com/planscope/planscope/internal/config"
	"github.com/planscope/planscope/internal/discovery"
	"github.com/planscope/planscope/internal/loader"
	"github.com/planscope/planscope/internal/log"
	"github.com/planscope/planscope/internal/style"
)

// rootOptions carries persistent flag state into subcommands.
type rootOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the planscope command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "planscope",
		Short:         "Discover and track markdown checklist plans",
		Long:          "planscope finds markdown checklist files in a project, parses their heading/task structure, and tracks completion.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				style.DisableColors()
			} else {
				style.AutoProfile()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a planscope config file (default: .planscope.toml at the root)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newWatchCmd(opts),
		newExportCmd(opts),
		newInitCmd(opts),
	)

	return root
}

// logger builds the CLI logger honoring --verbose.
func (o *rootOptions) logger() *log.Logger {
	level := log.LevelInfo
	if o.verbose {
		level = log.LevelDebug
	}
	return log.New(os.Stderr, level)
}

// loadConfig resolves configuration for a discovery root, preferring an
// explicit --config path.
func (o *rootOptions) loadConfig(root string) (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.LoadFromDir(root)
}

// discoverPlans runs discovery with the configured patterns and exclusions.
func discoverPlans(ctx context.Context, root string, cfg *config.Config) ([]string, error) {
	return discovery.Discover(ctx, root, discovery.Options{
		Patterns: cfg.GetPatterns(),
		Exclude:  cfg.GetExclude(),
		MaxDepth: cfg.GetMaxDepth(),
	})
}

// newLoader wires a fresh cache and loader for one command invocation.
func newLoader(lg *log.Logger) (*cache.Cache, *loader.Loader) {
	c := cache.New(cache.WithLogger(lg))
	return c, loader.New(c, lg)
}

// rootArg returns the directory argument or the current directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
