package caseload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casebook/internal/casedata"
	"casebook/internal/globalctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func descs(cases []*casedata.Map) []any {
	out := make([]any, len(cases))
	for i, c := range cases {
		out[i] = c.Get("desc")
	}
	return out
}

// aliasBomb returns a mapping whose last key expands to 10^levels leaves.
func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("desc: bomb\nl0: &l0 [lol]\n")
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestLoadCases_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "3_a.yaml", "desc: a\n")
	writeFile(t, dir, "1_b.yaml", "desc: b\n")
	writeFile(t, dir, "10_c.yaml", "desc: c\n")
	writeFile(t, dir, "2_d.yaml", "desc: d\n")

	loader := NewLoader(globalctx.New())
	cases, err := loader.LoadCases(dir)
	require.NoError(t, err)

	assert.Equal(t, []any{"b", "d", "a", "c"}, descs(cases))
}

func TestLoadCases_EqualPrefixesFallBackToName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01_zeta.yaml", "desc: zeta\n")
	writeFile(t, dir, "1_alpha.yaml", "desc: alpha\n")
	writeFile(t, dir, "0_first.yaml", "desc: first\n")

	cases, err := NewLoader(globalctx.New()).LoadCases(dir)
	require.NoError(t, err)

	assert.Equal(t, []any{"first", "zeta", "alpha"}, descs(cases))
}

func TestLoadCases_IgnoresNonCaseEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "context.yaml", "host: example.org\n")
	writeFile(t, dir, "1_case.yaml", "desc: only\n")
	writeFile(t, dir, "README.md", "# docs\n")
	writeFile(t, dir, "helper.yaml", "desc: helper\n")
	writeFile(t, dir, "2_other.yml", "desc: yml\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "3_nested.yaml"), 0755))
	writeFile(t, filepath.Join(dir, "3_nested.yaml"), "4_deep.yaml", "desc: deep\n")

	cases, err := NewLoader(globalctx.New()).LoadCases(dir)
	require.NoError(t, err)

	assert.Equal(t, []any{"only"}, descs(cases))
}

func TestLoadCases_SkipsEmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1_empty.yaml", "")
	writeFile(t, dir, "2_null.yaml", "~\n")
	writeFile(t, dir, "3_real.yaml", "desc: real\n")

	cases, err := NewLoader(globalctx.New()).LoadCases(dir)
	require.NoError(t, err)

	assert.Equal(t, []any{"real"}, descs(cases))
}

func TestLoadCases_RecordsAbsoluteCasesDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1_case.yaml", "desc: x\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	store := globalctx.New()
	_, err = NewLoader(store).LoadCases(rel)
	require.NoError(t, err)

	got, ok := store.GetString(globalctx.CasesDirKey)
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, filepath.Clean(dir), got)
}

func TestLoadCases_MergesContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "context.yaml", "host: example.org\nretries: 2\n")
	writeFile(t, dir, "1_case.yaml", "desc: x\n")

	store := globalctx.New()
	store.Set("retries", 1)
	store.Set("keep", true)

	_, err := NewLoader(store).LoadCases(dir)
	require.NoError(t, err)

	assert.Equal(t, "example.org", store.Get("host"))
	assert.Equal(t, 2, store.Get("retries"))
	assert.Equal(t, true, store.Get("keep"))
}

func TestLoadCases_DirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewLoader(globalctx.New()).LoadCases(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)

		var dirErr *CaseDirectoryError
		require.True(t, errors.As(err, &dirErr))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("regular file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "1_case.yaml", "desc: x\n")

		_, err := NewLoader(globalctx.New()).LoadCases(filepath.Join(dir, "1_case.yaml"))
		require.Error(t, err)

		var dirErr *CaseDirectoryError
		require.True(t, errors.As(err, &dirErr))
		assert.ErrorIs(t, err, ErrNotDirectory)
	})
}

func TestLoadCases_FileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: "desc: [unclosed\n"},
		{name: "sequence document", content: "- a\n- b\n"},
		{name: "scalar document", content: "hello\n"},
		{name: "recursive alias", content: "desc: x\nloop: &x [*x]\n"},
		{name: "recursive merge", content: "desc: x\nbase: &b\n  <<: *b\n"},
		{name: "excessive aliasing", content: aliasBomb(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "1_good.yaml", "desc: good\n")
			writeFile(t, dir, "2_bad.yaml", tt.content)

			cases, err := NewLoader(globalctx.New()).LoadCases(dir)
			require.Error(t, err)
			assert.Nil(t, cases, "no partial list on hard errors")

			var fileErr *CaseFileParseError
			require.True(t, errors.As(err, &fileErr))
			assert.Equal(t, filepath.Join(dir, "2_bad.yaml"), fileErr.Path)
		})
	}
}

func TestLoadCases_OverflowingPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "99999999999999999999999_huge.yaml", "desc: huge\n")

	_, err := NewLoader(globalctx.New()).LoadCases(dir)

	var fileErr *CaseFileParseError
	require.True(t, errors.As(err, &fileErr))
}

func TestLoadCaseFiles_Provenance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20_b.yaml", "desc: b\n")
	writeFile(t, dir, "5_a.yaml", "desc: a\n")

	files, err := NewLoader(globalctx.New()).LoadCaseFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, 5, files[0].Order)
	assert.Equal(t, filepath.Join(dir, "5_a.yaml"), files[0].Path)
	assert.Equal(t, 20, files[1].Order)
	assert.Equal(t, "b", files[1].Data.Get("desc"))
}

func TestLoadContext(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := globalctx.New()
		assert.False(t, NewLoader(store).LoadContext(t.TempDir()))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.False(t, NewLoader(globalctx.New()).LoadContext(filepath.Join(t.TempDir(), "absent")))
	})

	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "")

		store := globalctx.New()
		assert.True(t, NewLoader(store).LoadContext(dir))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("null document", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "null\n")
		assert.True(t, NewLoader(globalctx.New()).LoadContext(dir))
	})

	t.Run("mapping is merged", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "base_url: http://localhost\nuser:\n  name: admin\n")

		store := globalctx.New()
		assert.True(t, NewLoader(store).LoadContext(dir))
		assert.Equal(t, "http://localhost", store.Get("base_url"))
		assert.Equal(t, "admin", store.Get("user").(*casedata.Map).Get("name"))
	})

	t.Run("malformed file is soft", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "a: [broken\n")

		store := globalctx.New()
		store.Set("kept", 1)
		assert.False(t, NewLoader(store).LoadContext(dir))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("recursive alias is soft", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "desc: x\nloop: &x [*x]\n")

		store := globalctx.New()
		assert.False(t, NewLoader(store).LoadContext(dir))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("excessive aliasing is soft", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, aliasBomb(7))

		store := globalctx.New()
		assert.False(t, NewLoader(store).LoadContext(dir))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("non-mapping file is soft", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "- a\n")
		assert.False(t, NewLoader(globalctx.New()).LoadContext(dir))
	})

	t.Run("malformed context does not abort case loading", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ContextFileName, "a: [broken\n")
		writeFile(t, dir, "1_case.yaml", "desc: still loads\n")

		cases, err := NewLoader(globalctx.New()).LoadCases(dir)
		require.NoError(t, err)
		assert.Equal(t, []any{"still loads"}, descs(cases))
	})
}
