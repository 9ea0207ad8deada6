// Package suite runs the collection pipeline for case directories.
//
// For every directory a fresh globalctx.Store is created, context.yaml is
// merged into it, the numbered case files are loaded in order and the cases
// are expanded. The resulting Suite is what a runner turns into test items.
//
//	suites, err := suite.NewCollector().CollectAll(ctx, []string{"api", "web"})
//
// Any hard error (missing directory, unparsable case file, malformed ddts)
// aborts collection of that directory; a partially collected Suite is never
// returned.
package suite
