// Package caseload discovers and reads the YAML case files of one suite
// directory.
//
// A suite directory looks like this:
//
//	cases/
//	  context.yaml        optional, merged into the run's globalctx.Store
//	  1_login.yaml        one case per file
//	  2_create_user.yaml
//	  10_cleanup.yaml
//
// Only direct children named "<digits>_<anything>.yaml" are cases. They are
// loaded in ascending numeric order of the prefix, so 2_x.yaml comes before
// 10_x.yaml. Authors rely on that order to sequence workflows, so nothing
// else (full name, modification time) is ever used to order cases.
//
// Loading context.yaml is best effort: a missing or broken file is logged and
// reported as false. Loading cases is not: a missing directory or a case file
// that cannot be read or parsed is returned as a *CaseDirectoryError or
// *CaseFileParseError and no partial list is produced.
package caseload
