package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"casebook/internal/suite"
	"casebook/internal/watch"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-collect a suite whenever its files change",
		Long: `Collect a suite, then watch its directory and collect it again after
every burst of changes to its YAML files. Each run prints a one-line
summary, so broken case files show up as soon as they are saved.

Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = opts.settings.Watch.Debounce
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, opts.collector(), args[0], debounce, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-collecting (default from config, 300ms)")
	return cmd
}

// runWatch prints a summary for the initial collection and for every change
// burst until ctx is done. status receives the idle spinner.
func runWatch(ctx context.Context, collector *suite.Collector, dir string, debounce time.Duration, out, status io.Writer) error {
	detector := watch.NewDetector(dir, debounce)
	events := make(chan watch.Event, 16)
	if err := detector.Start(ctx, events); err != nil {
		return err
	}
	defer detector.Stop()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(status))
	s.Suffix = fmt.Sprintf(" Watching %s for changes...", dir)

	printSummary(out, collector, dir)
	s.Start()
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			s.Stop()
			fmt.Fprintf(out, "%s changed: %s\n", event.Timestamp.Format("15:04:05"), strings.Join(event.Files(), ", "))
			printSummary(out, collector, dir)
			s.Start()
		}
	}
}

func printSummary(out io.Writer, collector *suite.Collector, dir string) {
	s, err := collector.Collect(dir)
	if err != nil {
		fmt.Fprintln(out, color.RedString("✗ %v", err))
		return
	}
	fmt.Fprintln(out, color.GreenString("✓ %d cases from %d files", s.Len(), len(s.Files)))
}
