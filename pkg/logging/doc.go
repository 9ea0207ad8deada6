// Package logging provides subsystem-tagged structured logging for casebook.
//
// It is a thin layer over Go's standard slog package: every entry carries a
// level, a message and a "subsystem" attribute naming the component that
// emitted it, plus an optional error attribute.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("CaseLoader", "Loaded %d cases from %s", n, dir)
//	logging.Debug("CaseExpander", "Expanded %q into %d rows", name, rows)
//	logging.WarnErr("CaseLoader", err, "Ignoring unreadable context file %s", path)
//	logging.Error("Watch", err, "Watcher stopped")
//
// # Subsystems
//
//   - CaseLoader: directory scanning, case files and context.yaml
//   - CaseExpander: data-driven expansion
//   - Collector: suite collection pipeline
//   - Config: configuration loading
//   - Watch: filesystem change detection
//
// Before InitForCLI is called, warnings and errors are still written to
// stderr; debug and info messages are dropped.
//
// # Thread Safety
//
// Logging functions are safe for concurrent use, and InitForCLI may be
// called again to swap the output or level.
package logging
