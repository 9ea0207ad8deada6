package cmd

import (
	"github.com/spf13/cobra"

	"casebook/internal/caseload"
	"casebook/internal/globalctx"
)

func newContextCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "context DIR",
		Short: "Print the suite variables after loading",
		Long: `Load a suite and print its variables: the entries of context.yaml plus
_cases_dir, the absolute path of the suite directory.

Examples:
  casebook context ./cases
  casebook context ./cases -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := globalctx.New()
			if _, err := caseload.NewLoader(store).LoadCaseFiles(args[0]); err != nil {
				return err
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			return f.FormatContext(cmd.OutOrStdout(), store.Snapshot())
		},
	}
}
