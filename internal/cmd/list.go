package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planscope/planscope/internal/style"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List checklist plans under a directory",
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
				fmt.Println("No checklist plans found.")
				return nil
			}

			_, ld := newLoader(lg)
			plans, err := ld.LoadAll(cmd.Context(), paths)
			if err != nil {
				return err
			}

			for _, p := range plans {
				done, total := p.Progress()
				fmt.Printf("%s  %s  %s %s\n",
					style.Progress(done, total),
					p.Path,
					style.Bold.Render(p.Title),
					style.StatusBadge(p.OverallStatus()))
			}
			return nil
		},
	}
}
