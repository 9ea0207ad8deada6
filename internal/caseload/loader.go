package caseload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"casebook/internal/casedata"
	"casebook/internal/globalctx"
	"casebook/pkg/logging"
)

// ContextFileName is the shared context file looked up in a suite directory.
const ContextFileName = "context.yaml"

const subsystem = "CaseLoader"

// CaseFile is one loaded case together with where it came from.
type CaseFile struct {
	// Path is the full path of the file.
	Path string
	// Order is the numeric prefix of the file name.
	Order int
	// Data is the parsed case mapping.
	Data *casedata.Map
}

// Loader reads suite directories into a globalctx.Store and a case list.
type Loader struct {
	store *globalctx.Store
}

// NewLoader creates a Loader that records context values in store.
func NewLoader(store *globalctx.Store) *Loader {
	return &Loader{store: store}
}

// LoadContext merges dir/context.yaml into the store.
//
// It returns false when the file does not exist or could not be used, and
// true when it was read and parsed, including when it is empty. Problems are
// logged, never returned.
func (l *Loader) LoadContext(dir string) bool {
	path := filepath.Join(dir, ContextFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug(subsystem, "No %s in %s", ContextFileName, dir)
			return false
		}
		logging.WarnErr(subsystem, &ContextLoadError{Path: path, Err: err}, "Ignoring unreadable context file %s", path)
		return false
	}

	values, err := casedata.ParseYAMLMap(data)
	if err != nil {
		logging.WarnErr(subsystem, &ContextLoadError{Path: path, Err: err}, "Ignoring malformed context file %s", path)
		return false
	}

	if values.Len() > 0 {
		l.store.Merge(values)
		logging.Debug(subsystem, "Merged %d context values from %s", values.Len(), path)
	}
	return true
}

// LoadCases returns the case mappings of dir in numeric file order.
func (l *Loader) LoadCases(dir string) ([]*casedata.Map, error) {
	files, err := l.LoadCaseFiles(dir)
	if err != nil {
		return nil, err
	}

	cases := make([]*casedata.Map, len(files))
	for i, f := range files {
		cases[i] = f.Data
	}
	return cases, nil
}

// LoadCaseFiles loads context.yaml, records the absolute directory under
// globalctx.CasesDirKey and reads every numbered case file in order.
// Files whose document is empty are skipped.
func (l *Loader) LoadCaseFiles(dir string) ([]CaseFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &CaseDirectoryError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &CaseDirectoryError{Path: dir, Err: ErrNotDirectory}
	}

	l.LoadContext(dir)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &CaseDirectoryError{Path: dir, Err: fmt.Errorf("failed to resolve absolute path: %w", err)}
	}
	l.store.Set(globalctx.CasesDirKey, absDir)

	candidates, err := discover(dir)
	if err != nil {
		return nil, err
	}

	files := make([]CaseFile, 0, len(candidates))
	for _, c := range candidates {
		logging.Debug(subsystem, "Loading case file %s", c.Path)

		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, &CaseFileParseError{Path: c.Path, Err: err}
		}

		m, err := casedata.ParseYAMLMap(data)
		if err != nil {
			return nil, &CaseFileParseError{Path: c.Path, Err: err}
		}
		if m == nil {
			logging.Debug(subsystem, "Skipping empty case file %s", c.Path)
			continue
		}

		c.Data = m
		files = append(files, c)
	}

	logging.Info(subsystem, "Loaded %d cases from %s", len(files), absDir)
	return files, nil
}

// discover lists the numbered case files directly inside dir, sorted by
// prefix. Equal prefixes fall back to the file name so the order is total.
func discover(dir string) ([]CaseFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &CaseDirectoryError{Path: dir, Err: err}
	}

	var files []CaseFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		order, ok, err := ParseOrder(entry.Name())
		if err != nil {
			return nil, &CaseFileParseError{Path: path, Err: err}
		}
		if !ok {
			continue
		}
		files = append(files, CaseFile{Path: path, Order: order})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Order != files[j].Order {
			return files[i].Order < files[j].Order
		}
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})

	return files, nil
}
