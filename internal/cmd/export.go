package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planscope/planscope/internal/plan"
)

// exportDoc is the plain-data record written by `planscope export`.
type exportDoc struct {
	Plans []*plan.Plan `json:"plans" yaml:"plans"`
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Export all parsed plans as JSON or YAML",
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

			_, ld := newLoader(lg)
			plans, err := ld.LoadAll(cmd.Context(), paths)
			if err != nil {
				return err
			}

			doc := exportDoc{Plans: plans}
			out, err := marshalExport(doc, format)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func marshalExport(doc exportDoc, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (must be json or yaml)", format)
	}
}
