package expand

import (
	"fmt"

	"github.com/google/uuid"

	"casebook/internal/casedata"
	"casebook/pkg/logging"
)

// Reserved case keys.
const (
	// NameKey is attached to every expanded case and holds its name.
	NameKey = "_case_name"
	// DdtsKey holds the data rows of a data-driven case.
	DdtsKey = "ddts"
	// DescKey holds the human-readable description of a case or row.
	DescKey = "desc"
	// ContextKey holds the variables used when rendering a case.
	ContextKey = "context"
)

const subsystem = "CaseExpander"

// Result is the output of Expand. CaseNames[i] is the NameKey value of
// CaseInfos[i].
type Result struct {
	CaseInfos []*casedata.Map
	CaseNames []string
}

// Len returns the number of expanded cases.
func (r *Result) Len() int {
	return len(r.CaseInfos)
}

// Option configures an Expander.
type Option func(*Expander)

// WithIDFunc replaces the generator used for missing descriptions.
func WithIDFunc(fn func() string) Option {
	return func(e *Expander) {
		e.newID = fn
	}
}

// Expander expands data-driven cases.
type Expander struct {
	newID func() string
}

// New creates an Expander. Missing descriptions are replaced with random
// UUIDs unless WithIDFunc is given.
func New(opts ...Option) *Expander {
	e := &Expander{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand expands raw in order. Raw cases are not modified.
func (e *Expander) Expand(raw []*casedata.Map) (*Result, error) {
	result := &Result{
		CaseInfos: make([]*casedata.Map, 0, len(raw)),
		CaseNames: make([]string, 0, len(raw)),
	}

	for i, c := range raw {
		if c == nil {
			return nil, fmt.Errorf("case %d is nil", i+1)
		}

		rows, err := ddtRows(i, c)
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			out := c.Clone()
			out.Delete(DdtsKey)
			name := e.nameOr(describe(c))
			out.Set(NameKey, name)
			result.add(out, name)
			continue
		}

		expanded, err := e.expandRows(i, c, rows)
		if err != nil {
			return nil, err
		}
		for _, out := range expanded {
			result.add(out, out.Get(NameKey).(string))
		}
		logging.Debug(subsystem, "Expanded case %d into %d rows", i+1, len(expanded))
	}

	logging.Debug(subsystem, "Expanded %d cases into %d executable cases", len(raw), result.Len())
	return result, nil
}

func (e *Expander) expandRows(index int, c *casedata.Map, rows []*casedata.Map) ([]*casedata.Map, error) {
	baseContext, err := contextOf(index, c)
	if err != nil {
		return nil, err
	}
	caseDesc := describe(c)

	out := make([]*casedata.Map, 0, len(rows))
	for _, row := range rows {
		expanded := c.Clone()
		expanded.Delete(DdtsKey)

		merged := casedata.NewMap()
		merged.Merge(baseContext)
		merged.Merge(row)
		expanded.Set(ContextKey, merged)

		name := fmt.Sprintf("%s-%s", e.nameOr(caseDesc), e.nameOr(describe(row)))
		expanded.Set(NameKey, name)

		out = append(out, expanded)
	}
	return out, nil
}

func (e *Expander) nameOr(desc string) string {
	if desc != "" {
		return desc
	}
	return e.newID()
}

func (r *Result) add(c *casedata.Map, name string) {
	r.CaseInfos = append(r.CaseInfos, c)
	r.CaseNames = append(r.CaseNames, name)
}

// ddtRows returns the rows of c, or nil when c is not data-driven.
// A null or empty "ddts" counts as not data-driven.
func ddtRows(index int, c *casedata.Map) ([]*casedata.Map, error) {
	value, ok := c.Lookup(DdtsKey)
	if !ok || value == nil {
		return nil, nil
	}

	list, ok := value.([]any)
	if !ok {
		return nil, &MalformedDdtsError{
			CaseIndex: index,
			Case:      describe(c),
			Row:       -1,
			Reason:    fmt.Sprintf("expected a sequence of mappings, got a %s", casedata.TypeName(value)),
		}
	}

	rows := make([]*casedata.Map, 0, len(list))
	for j, item := range list {
		row, ok := item.(*casedata.Map)
		if !ok {
			return nil, &MalformedDdtsError{
				CaseIndex: index,
				Case:      describe(c),
				Row:       j,
				Reason:    fmt.Sprintf("expected a mapping, got a %s", casedata.TypeName(item)),
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func contextOf(index int, c *casedata.Map) (*casedata.Map, error) {
	value := c.Get(ContextKey)
	switch v := value.(type) {
	case nil:
		return casedata.NewMap(), nil
	case *casedata.Map:
		return v, nil
	default:
		return nil, &MalformedDdtsError{
			CaseIndex: index,
			Case:      describe(c),
			Row:       -1,
			Reason:    fmt.Sprintf("context must be a mapping to merge rows into, got a %s", casedata.TypeName(value)),
		}
	}
}

// describe returns the "desc" of m as text, or "" when it is missing,
// empty or not a scalar.
func describe(m *casedata.Map) string {
	switch v := m.Get(DescKey).(type) {
	case nil:
		return ""
	case string:
		return v
	case *casedata.Map, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
