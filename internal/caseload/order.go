package caseload

import (
	"fmt"
	"strconv"
	"strings"
)

// caseFileExt is the only extension considered for case files.
const caseFileExt = ".yaml"

// ParseOrder extracts the numeric ordering prefix of a case file name.
//
// It returns ok=false for names that are not case files: no ".yaml"
// extension, no underscore, or a prefix that is not made only of ASCII
// digits. A prefix made of digits that does not fit in an int is an error
// rather than a silent skip, because the author clearly meant it as a case.
func ParseOrder(fileName string) (order int, ok bool, err error) {
	if !strings.HasSuffix(fileName, caseFileExt) {
		return 0, false, nil
	}

	prefix, _, found := strings.Cut(fileName, "_")
	if !found || prefix == "" {
		return 0, false, nil
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return 0, false, nil
		}
	}

	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false, fmt.Errorf("numeric prefix %q of %s is out of range: %w", prefix, fileName, err)
	}
	return n, true, nil
}
