package formatting

import (
	"encoding/json"
	"fmt"

	"casebook/internal/casedata"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It handles marshaling errors gracefully by falling back to fmt.Sprintf.
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// summarize renders a case value on one line for a table cell.
func summarize(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case *casedata.Map, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
