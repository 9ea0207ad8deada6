// Package formatting renders suites, cases and contexts for the CLI.
//
// Three output formats are supported: a rounded go-pretty table for people,
// and JSON or YAML for tools. JSON and YAML keep the key order of the
// original case files.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"casebook/internal/casedata"
	"casebook/internal/suite"
	pkgstrings "casebook/pkg/strings"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Formats lists the accepted output formats.
var Formats = []OutputFormat{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (OutputFormat, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected table, json or yaml)", name)
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	// NameWidth truncates long names and values in tables.
	NameWidth int
	// Color enables colored table headers.
	Color bool
}

// Formatter writes casebook data in one output format.
type Formatter interface {
	// FormatSuites lists the cases of one or more suites.
	FormatSuites(w io.Writer, suites []*suite.Suite) error
	// FormatCase writes a single case.
	FormatCase(w io.Writer, c *casedata.Map) error
	// FormatContext writes the variables of a suite.
	FormatContext(w io.Writer, values *casedata.Map) error
}

// New creates the formatter for options.Format.
func New(options Options) (Formatter, error) {
	if options.NameWidth <= 0 {
		options.NameWidth = pkgstrings.DefaultMaxLen
	}

	switch options.Format {
	case FormatTable, "":
		return NewTableFormatter(options), nil
	case FormatJSON:
		return NewJSONFormatter(options), nil
	case FormatYAML:
		return NewYAMLFormatter(options), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", options.Format)
	}
}

// suiteDocument is the JSON and YAML shape of a suite.
type suiteDocument struct {
	Dir   string          `json:"dir" yaml:"dir"`
	Cases []*casedata.Map `json:"cases" yaml:"cases"`
}

func suiteDocuments(suites []*suite.Suite) []suiteDocument {
	docs := make([]suiteDocument, len(suites))
	for i, s := range suites {
		cases := s.Cases
		if cases == nil {
			cases = []*casedata.Map{}
		}
		docs[i] = suiteDocument{Dir: s.Dir, Cases: cases}
	}
	return docs
}
