package formatting

import (
	"io"

	"gopkg.in/yaml.v3"

	"casebook/internal/casedata"
	"casebook/internal/suite"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) *YAMLFormatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatSuites writes a YAML list of suites.
func (f *YAMLFormatter) FormatSuites(w io.Writer, suites []*suite.Suite) error {
	return f.encode(w, suiteDocuments(suites))
}

// FormatCase writes the case as a YAML mapping.
func (f *YAMLFormatter) FormatCase(w io.Writer, c *casedata.Map) error {
	return f.encode(w, c)
}

// FormatContext writes the variables as a YAML mapping.
func (f *YAMLFormatter) FormatContext(w io.Writer, values *casedata.Map) error {
	if values.Len() == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}
	return f.encode(w, values)
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
