package caseload

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is wrapped by CaseDirectoryError when the path exists but
// is a regular file.
var ErrNotDirectory = errors.New("not a directory")

// CaseDirectoryError reports that a suite directory is missing, is not a
// directory or cannot be listed.
type CaseDirectoryError struct {
	// Path is the directory as given by the caller.
	Path string
	Err  error
}

func (e *CaseDirectoryError) Error() string {
	return fmt.Sprintf("case directory %s: %v", e.Path, e.Err)
}

func (e *CaseDirectoryError) Unwrap() error {
	return e.Err
}

// CaseFileParseError reports a numbered case file that could not be read,
// is not valid YAML, is not a mapping, or has an unusable prefix.
type CaseFileParseError struct {
	// Path is the full path of the offending file.
	Path string
	Err  error
}

func (e *CaseFileParseError) Error() string {
	return fmt.Sprintf("case file %s: %v", e.Path, e.Err)
}

func (e *CaseFileParseError) Unwrap() error {
	return e.Err
}

// ContextLoadError describes why a context.yaml was ignored. It is only ever
// logged; LoadContext never returns it.
type ContextLoadError struct {
	Path string
	Err  error
}

func (e *ContextLoadError) Error() string {
	return fmt.Sprintf("context file %s: %v", e.Path, e.Err)
}

func (e *ContextLoadError) Unwrap() error {
	return e.Err
}
