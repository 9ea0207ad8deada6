package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"casebook/internal/casedata"
	"casebook/internal/suite"
	"casebook/internal/template"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render DIR",
		Short: "Print every case of a suite with templates applied",
		Long: `Collect a suite and render the template strings of every case.

Variables come from context.yaml, overlaid by each case's own context
(which includes the ddts row). Strings use Go template syntax with the
sprig functions, e.g. "{{ .base_url }}/login" or '{{ file "body.json" }}'.

Examples:
  casebook render ./cases -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.collector().Collect(args[0])
			if err != nil {
				return err
			}

			rendered, err := renderSuite(s)
			if err != nil {
				return err
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			return f.FormatSuites(cmd.OutOrStdout(), []*suite.Suite{rendered})
		},
	}
}

// renderSuite returns a copy of s whose cases are rendered.
func renderSuite(s *suite.Suite) (*suite.Suite, error) {
	view := *s
	view.Cases = make([]*casedata.Map, len(s.Cases))
	for i, c := range s.Cases {
		rendered, err := template.RenderCase(c, s.Context)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", s.Names[i], err)
		}
		view.Cases[i] = rendered
	}
	return &view, nil
}
