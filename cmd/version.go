package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"casebook/internal/casedata"
	"casebook/internal/formatting"
)

// buildInfo is replaced in tests.
var buildInfo = debug.ReadBuildInfo

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the casebook version and build details",
		Long: `Print the casebook version together with the Go toolchain and platform it
was built for. Binaries installed with "go install" report the module version
when no release version was set at link time.

Examples:
  casebook version
  casebook version --short
  casebook version -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := resolveVersion(cmd.Root().Version)
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
				return err
			}

			details := casedata.NewMap()
			details.Set("version", version)
			details.Set("go", runtime.Version())
			details.Set("platform", runtime.GOOS+"/"+runtime.GOARCH)

			format, err := formatting.ParseFormat(opts.settings.Output)
			if err != nil {
				return err
			}
			if format == formatting.FormatTable {
				fmt.Fprintf(cmd.OutOrStdout(), "casebook version %s\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s\n", details.Get("go"))
				fmt.Fprintf(cmd.OutOrStdout(), "  platform: %s\n", details.Get("platform"))
				return nil
			}

			f, err := opts.formatter()
			if err != nil {
				return err
			}
			return f.FormatContext(cmd.OutOrStdout(), details)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// resolveVersion falls back to the main module version recorded by the Go
// toolchain when no version was set at link time.
func resolveVersion(linked string) string {
	if linked != "" && linked != "dev" {
		return linked
	}
	if info, ok := buildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if linked != "" {
		return linked
	}
	return "unknown"
}
