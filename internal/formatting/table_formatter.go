package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"casebook/internal/casedata"
	"casebook/internal/expand"
	"casebook/internal/suite"
	pkgstrings "casebook/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) *TableFormatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatSuites renders one table per suite with the case names and the keys
// of each case's context.
func (f *TableFormatter) FormatSuites(w io.Writer, suites []*suite.Suite) error {
	for i, s := range suites {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if s.Len() == 0 {
			fmt.Fprintf(w, "%s: no cases found\n", s.Dir)
			continue
		}

		t := f.createTable(w)
		t.SetTitle("%s", pkgstrings.TruncateMiddle(s.Dir, f.options.NameWidth))
		t.AppendHeader(table.Row{"#", "NAME", "CONTEXT"})

		for n, c := range s.Cases {
			t.AppendRow(table.Row{
				n + 1,
				pkgstrings.Truncate(s.Names[n], f.options.NameWidth),
				pkgstrings.Truncate(contextKeys(c), f.options.NameWidth),
			})
		}

		t.AppendFooter(table.Row{"", fmt.Sprintf("%d cases from %d files", s.Len(), len(s.Files)), ""})
		t.Render()
	}
	return nil
}

// FormatCase renders the top-level entries of a case as key/value rows.
func (f *TableFormatter) FormatCase(w io.Writer, c *casedata.Map) error {
	return f.formatMap(w, c, "no entries")
}

// FormatContext renders suite variables as key/value rows.
func (f *TableFormatter) FormatContext(w io.Writer, values *casedata.Map) error {
	return f.formatMap(w, values, "context is empty")
}

func (f *TableFormatter) formatMap(w io.Writer, m *casedata.Map, emptyMessage string) error {
	if m.Len() == 0 {
		fmt.Fprintln(w, emptyMessage)
		return nil
	}

	t := f.createTable(w)
	t.AppendHeader(table.Row{"KEY", "VALUE"})
	m.Range(func(key string, value any) bool {
		t.AppendRow(table.Row{key, pkgstrings.Truncate(summarize(value), f.options.NameWidth)})
		return true
	})
	t.Render()
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	if f.options.Color {
		t.Style().Color.Header = text.Colors{text.FgHiCyan}
		t.Style().Color.Footer = text.Colors{text.FgHiBlue}
	}
	return t
}

// contextKeys lists the keys of a case's context mapping.
func contextKeys(c *casedata.Map) string {
	ctx, ok := c.Get(expand.ContextKey).(*casedata.Map)
	if !ok {
		return ""
	}
	return strings.Join(ctx.Keys(), ", ")
}
