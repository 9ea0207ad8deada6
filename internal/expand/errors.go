package expand

import "fmt"

// MalformedDdtsError reports a case whose "ddts" data cannot be expanded.
type MalformedDdtsError struct {
	// CaseIndex is the position of the case in the input list.
	CaseIndex int
	// Case is the case description, empty when it has none.
	Case string
	// Row is the offending row index, or -1 when the problem is not a
	// single row.
	Row int
	// Reason describes what is wrong.
	Reason string
}

func (e *MalformedDdtsError) Error() string {
	where := fmt.Sprintf("case %d", e.CaseIndex+1)
	if e.Case != "" {
		where = fmt.Sprintf("%s (%q)", where, e.Case)
	}
	if e.Row >= 0 {
		where = fmt.Sprintf("%s, ddts row %d", where, e.Row+1)
	}
	return fmt.Sprintf("%s: malformed ddts: %s", where, e.Reason)
}
