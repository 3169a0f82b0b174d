package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planscope/planscope/internal/templates"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var templatePath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter checklist file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "PLAN.md"
			if len(args) > 0 {
				target = args[0]
			}

			tpl := templates.Default()
			if templatePath != "" {
				loaded, err := templates.LoadTemplate(templatePath)
				if err != nil {
					return err
				}
				tpl = loaded
			}

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}

			if err := os.WriteFile(target, []byte(tpl.Markdown()), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}

			fmt.Printf("Created %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "YAML plan template to instantiate")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
