package suite

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"casebook/internal/casedata"
	"casebook/internal/caseload"
	"casebook/internal/expand"
	"casebook/internal/globalctx"
	"casebook/pkg/logging"
)

const subsystem = "Collector"

// Suite is the collected content of one case directory.
type Suite struct {
	// Dir is the directory as given by the caller.
	Dir string
	// Context holds the variables of this suite only.
	Context *globalctx.Store
	// Files are the loaded case files in execution order.
	Files []caseload.CaseFile
	// Cases are the expanded cases; Names[i] is the name of Cases[i].
	Cases []*casedata.Map
	Names []string
}

// Len returns the number of expanded cases.
func (s *Suite) Len() int {
	return len(s.Cases)
}

// Option configures a Collector.
type Option func(*Collector)

// WithExpanderOptions passes options to the expander of every suite.
func WithExpanderOptions(opts ...expand.Option) Option {
	return func(c *Collector) {
		c.expanderOpts = append(c.expanderOpts, opts...)
	}
}

// WithParallelism bounds how many directories CollectAll reads at once.
// Values below 1 mean no limit.
func WithParallelism(n int) Option {
	return func(c *Collector) {
		c.parallelism = n
	}
}

// Collector collects suites.
type Collector struct {
	expanderOpts []expand.Option
	parallelism  int
}

// NewCollector creates a Collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect loads and expands the cases of dir into a new Suite.
func (c *Collector) Collect(dir string) (*Suite, error) {
	return c.CollectWithStore(dir, globalctx.New())
}

// CollectWithStore is Collect with a caller-provided store, for callers that
// seed variables before loading.
func (c *Collector) CollectWithStore(dir string, store *globalctx.Store) (*Suite, error) {
	loader := caseload.NewLoader(store)

	files, err := loader.LoadCaseFiles(dir)
	if err != nil {
		return nil, err
	}

	raw := make([]*casedata.Map, len(files))
	for i, f := range files {
		raw[i] = f.Data
	}

	result, err := expand.New(c.expanderOpts...).Expand(raw)
	if err != nil {
		var malformed *expand.MalformedDdtsError
		if errors.As(err, &malformed) && malformed.CaseIndex < len(files) {
			return nil, fmt.Errorf("%s: %w", files[malformed.CaseIndex].Path, err)
		}
		return nil, fmt.Errorf("failed to expand cases in %s: %w", dir, err)
	}

	logging.Debug(subsystem, "Collected %d cases from %d files in %s", result.Len(), len(files), dir)

	return &Suite{
		Dir:     dir,
		Context: store,
		Files:   files,
		Cases:   result.CaseInfos,
		Names:   result.CaseNames,
	}, nil
}

// CollectAll collects several directories concurrently. Every directory gets
// its own store. Suites are returned in the order of dirs. The first error
// stops the remaining work and is returned.
func (c *Collector) CollectAll(ctx context.Context, dirs []string) ([]*Suite, error) {
	suites := make([]*Suite, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	if c.parallelism > 0 {
		g.SetLimit(c.parallelism)
	}

	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := c.Collect(dir)
			if err != nil {
				return err
			}
			suites[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Info(subsystem, "Collected %d suites", len(suites))
	return suites, nil
}
