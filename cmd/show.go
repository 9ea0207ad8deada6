package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"casebook/internal/template"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show DIR CASE",
		Short: "Print a single expanded case",
		Long: `Print one expanded case of a suite. CASE is the case name as listed by
collect, or its 1-based position.

Examples:
  casebook show ./cases Login-admin
  casebook show ./cases 2 --render -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.collector().Collect(args[0])
			if err != nil {
				return err
			}

			c, name, err := s.Find(args[1])
			if err != nil {
				return err
			}

			if render {
				if c, err = template.RenderCase(c, s.Context); err != nil {
					return fmt.Errorf("case %q: %w", name, err)
				}
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			return f.FormatCase(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Apply templates using the suite and case variables")
	return cmd
}
