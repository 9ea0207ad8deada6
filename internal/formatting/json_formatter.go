package formatting

import (
	"encoding/json"
	"io"

	"casebook/internal/casedata"
	"casebook/internal/suite"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) *JSONFormatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatSuites writes an array of {"dir", "cases"} objects.
func (f *JSONFormatter) FormatSuites(w io.Writer, suites []*suite.Suite) error {
	return f.encode(w, suiteDocuments(suites))
}

// FormatCase writes the case as a JSON object.
func (f *JSONFormatter) FormatCase(w io.Writer, c *casedata.Map) error {
	return f.encode(w, c)
}

// FormatContext writes the variables as a JSON object.
func (f *JSONFormatter) FormatContext(w io.Writer, values *casedata.Map) error {
	if values == nil {
		values = casedata.NewMap()
	}
	return f.encode(w, values)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
