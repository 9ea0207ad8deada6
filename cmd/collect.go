package cmd

import (
	"github.com/spf13/cobra"

	"casebook/internal/suite"
)

func newCollectCmd(opts *rootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "collect DIR...",
		Short: "List the expanded cases of one or more suites",
		Long: `Load every numbered case file of each directory, expand ddts rows
and print the resulting cases in execution order.

Each directory is loaded with its own variables, so context.yaml files of
different suites never mix. Directories are read concurrently.

Examples:
  casebook collect ./cases
  casebook collect ./cases --filter 'Login-*'
  casebook collect ./api ./ui -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suites, err := opts.collector().CollectAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			if filter != "" {
				for i, s := range suites {
					suites[i] = filtered(s, filter)
				}
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			return f.FormatSuites(cmd.OutOrStdout(), suites)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only list cases whose name matches (glob or substring)")
	return cmd
}

// filtered returns a shallow copy of s holding only the cases matching pattern.
func filtered(s *suite.Suite, pattern string) *suite.Suite {
	view := *s
	view.Cases, view.Names = s.Filter(pattern)
	return &view
}
