package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casebook/internal/casedata"
)

func testSuite(names ...string) *Suite {
	s := &Suite{Dir: "cases"}
	for _, n := range names {
		m := casedata.NewMap()
		m.Set("_case_name", n)
		s.Cases = append(s.Cases, m)
		s.Names = append(s.Names, n)
	}
	return s
}

func TestSuite_Filter(t *testing.T) {
	s := testSuite("Login works", "Create user-admin", "Create user-guest", "Cleanup", "Parse [abc] list")

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "empty pattern", pattern: "", want: s.Names},
		{name: "substring", pattern: "user", want: []string{"Create user-admin", "Create user-guest"}},
		{name: "glob suffix", pattern: "*-guest", want: []string{"Create user-guest"}},
		{name: "glob whole name", pattern: "Log*", want: []string{"Login works"}},
		{name: "glob must match whole name", pattern: "user*", want: nil},
		{name: "no match", pattern: "payment", want: nil},
		{name: "malformed glob falls back to substring", pattern: "[abc", want: []string{"Parse [abc] list"}},
		{name: "malformed glob without substring match", pattern: "user[", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, names := s.Filter(tt.pattern)
			assert.Equal(t, tt.want, names)
			require.Len(t, cases, len(names))
			for i, c := range cases {
				assert.Equal(t, names[i], c.Get("_case_name"))
			}
		})
	}
}

func TestSuite_Find(t *testing.T) {
	s := testSuite("Login works", "2", "Cleanup")

	c, name, err := s.Find("Cleanup")
	require.NoError(t, err)
	assert.Equal(t, "Cleanup", name)
	assert.Equal(t, "Cleanup", c.Get("_case_name"))

	// Exact names win over positions.
	_, name, err = s.Find("2")
	require.NoError(t, err)
	assert.Equal(t, "2", name)

	_, name, err = s.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "Login works", name)

	_, _, err = s.Find("4")
	assert.ErrorContains(t, err, "out of range")
	_, _, err = s.Find("0")
	assert.ErrorContains(t, err, "out of range")
	_, _, err = s.Find("missing")
	assert.ErrorContains(t, err, "no case named")
}
