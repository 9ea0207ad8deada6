package strings

import (
	"strings"
)

// DefaultMaxLen is the default width of truncated cells in table output.
const DefaultMaxLen = 60

// MinTruncateLen is the smallest maxLen honoured by the truncate functions.
// Anything shorter leaves no room for content next to "...".
const MinTruncateLen = 4

const ellipsis = "..."

// Truncate collapses s onto a single line and shortens it to at most maxLen
// runes, ending in "..." when something was cut. All runs of whitespace,
// newlines included, become a single space.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncateMiddle shortens s to at most maxLen runes by replacing its middle
// with "...", keeping both ends. It suits paths, whose file name is the
// interesting part.
func TruncateMiddle(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	keep := maxLen - len(ellipsis)
	tail := (keep + 1) / 2
	head := keep - tail
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
