package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"casebook/internal/caseload"
	"casebook/internal/config"
	"casebook/internal/expand"
	"casebook/internal/formatting"
	"casebook/internal/suite"
	"casebook/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCaseDirectory indicates a case directory is missing or unreadable.
	ExitCodeCaseDirectory = 2
	// ExitCodeCaseFile indicates a case file or its ddts data is invalid.
	ExitCodeCaseFile = 3
)

// rootOptions holds the persistent flags and the settings resolved from
// them before any subcommand runs.
type rootOptions struct {
	configPath string
	logLevel   string
	debug      bool
	output     string

	settings config.CasebookConfig
}

// rootCmd represents the base command for the casebook application.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{settings: config.GetDefaultConfig()}

	cmd := &cobra.Command{
		Use:   "casebook",
		Short: "Load, expand and inspect YAML test case suites",
		Long: `casebook reads a directory of numbered YAML test cases such as
1_login.yaml and 2_search.yaml, merges the shared context.yaml into the
suite variables, and expands data-driven cases (ddts) into one case per
data row.

Examples:
  casebook collect ./cases                 # List the expanded cases
  casebook collect ./api ./ui -o json      # Several suites as JSON
  casebook show ./cases 3 --render         # Third case with templates applied
  casebook context ./cases                 # Variables after loading
  casebook watch ./cases                   # Re-collect on every change`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		// Errors are printed by Execute so they can be colored.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.SetVersionTemplate(`{{printf "casebook version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config-path", "", "Configuration directory (default ~/.config/casebook)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging (same as --log-level=debug)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: table, json or yaml")

	cmd.AddCommand(
		newCollectCmd(opts),
		newShowCmd(opts),
		newRenderCmd(opts),
		newContextCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// resolve layers flags over the configuration and initializes logging.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	configPath := o.configPath
	if configPath == "" {
		var err error
		if configPath, err = config.GetDefaultConfigPath(); err != nil {
			return err
		}
	}

	settings, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if o.output != "" {
		settings.Output = o.output
	}
	if o.logLevel != "" {
		settings.LogLevel = o.logLevel
	}
	if o.debug {
		settings.LogLevel = "debug"
	}

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if _, err := formatting.ParseFormat(settings.Output); err != nil {
		return err
	}

	logging.InitForCLI(level, cmd.ErrOrStderr())
	o.settings = settings
	return nil
}

// formatter creates the formatter for the resolved output settings.
func (o *rootOptions) formatter() (formatting.Formatter, error) {
	format, err := formatting.ParseFormat(o.settings.Output)
	if err != nil {
		return nil, err
	}
	return formatting.New(formatting.Options{
		Format:    format,
		NameWidth: o.settings.NameWidth,
		Color:     !color.NoColor,
	})
}

func (o *rootOptions) collector() *suite.Collector {
	return suite.NewCollector(suite.WithParallelism(o.settings.Parallelism))
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(getExitCode(err))
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("Error: %v", err))
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var dirErr *caseload.CaseDirectoryError
	if errors.As(err, &dirErr) {
		return ExitCodeCaseDirectory
	}

	var fileErr *caseload.CaseFileParseError
	if errors.As(err, &fileErr) {
		return ExitCodeCaseFile
	}

	var ddtsErr *expand.MalformedDdtsError
	if errors.As(err, &ddtsErr) {
		return ExitCodeCaseFile
	}

	// Default to general error
	return ExitCodeError
}
