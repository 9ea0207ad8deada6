// Package globalctx holds the variables shared by every case of one run.
//
// A Store is filled from a suite's context.yaml and from runtime values such
// as the resolved case directory, and is read by the template engine when
// cases are rendered. Stores are created explicitly, one per run, and passed
// to whoever needs them; there is no package-level instance, so several
// suites can be collected side by side in one process without clobbering
// each other's variables.
//
// Writes overwrite, reads never fail, and Clear is the only way to remove
// entries. All methods are safe for concurrent use.
package globalctx
