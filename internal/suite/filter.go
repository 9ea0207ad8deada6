package suite

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"casebook/internal/casedata"
)

// Filter returns the cases whose name matches pattern, in suite order.
//
// A pattern containing glob characters (*, ?, [) is matched with
// filepath.Match against the whole name; any other pattern, or a malformed
// glob such as "[abc", matches names that contain it. An empty pattern matches
// everything.
func (s *Suite) Filter(pattern string) ([]*casedata.Map, []string) {
	if pattern == "" {
		return s.Cases, s.Names
	}

	isGlob := strings.ContainsAny(pattern, "*?[")
	if isGlob {
		if _, err := filepath.Match(pattern, ""); err != nil {
			isGlob = false
		}
	}

	var cases []*casedata.Map
	var names []string
	for i, name := range s.Names {
		var matched bool
		if isGlob {
			matched, _ = filepath.Match(pattern, name)
		} else {
			matched = strings.Contains(name, pattern)
		}
		if matched {
			cases = append(cases, s.Cases[i])
			names = append(names, name)
		}
	}
	return cases, names
}

// Find returns the case named ref. If no case has that exact name and ref is
// a number, it is used as a 1-based position.
func (s *Suite) Find(ref string) (*casedata.Map, string, error) {
	for i, name := range s.Names {
		if name == ref {
			return s.Cases[i], name, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.Cases) {
			return nil, "", fmt.Errorf("case index %d out of range (suite has %d cases)", n, len(s.Cases))
		}
		return s.Cases[n-1], s.Names[n-1], nil
	}

	return nil, "", fmt.Errorf("no case named %q in %s", ref, s.Dir)
}
