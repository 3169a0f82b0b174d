package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planscope/planscope/internal/ui"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch checklist plans and live-update the parsed view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			lg := opts.logger()

			cfg, err := opts.loadConfig(root)
			if err != nil {
				return err
			}

			paths, err := discoverPlans(cmd.Context(), root, cfg)
			if err != nil {
				return fmt.Errorf("discovering plans in %s: %w", root, err)
			}
			if len(paths) == 0 {
				return fmt.Errorf("no checklist plans found under %s", root)
			}

			c, ld := newLoader(lg)
			return ui.Run(paths, ld, c, cfg.GetDebounce(), lg)
		},
	}
}
