package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/planscope/planscope/internal/style"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	var render bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show the parsed task tree of a checklist file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			lg := opts.logger()

			_, ld := newLoader(lg)
			p, err := ld.Load(cmd.Context(), path)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding plan: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if render {
				source, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading plan %s: %w", path, err)
				}
				out, err := glamour.Render(string(source), "auto")
				if err != nil {
					return fmt.Errorf("rendering plan %s: %w", path, err)
				}
				fmt.Print(out)
				return nil
			}

			done, total := p.Progress()
			fmt.Printf("%s %s %s\n\n",
				style.Title.Render(p.Title),
				style.Progress(done, total),
				style.StatusBadge(p.OverallStatus()))

			lines := style.TreeLines(p.Items)
			if len(lines) == 0 {
				fmt.Println(style.Dim.Render("(no checklist items)"))
				return nil
			}
			fmt.Println(strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed plan as JSON")
	cmd.Flags().BoolVar(&render, "render", false, "render the raw markdown instead of the parsed tree")
	return cmd
}
