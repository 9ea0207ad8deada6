package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"casebook/internal/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// writeSuite creates a suite with one data-driven case and one plain case.
func writeSuite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "context.yaml", "base_url: http://localhost:8080\n")
	writeFile(t, dir, "1_login.yaml", `desc: Login
context:
  path: /login
request:
  url: "{{ .base_url }}{{ .path }}"
  user: "{{ .user }}"
ddts:
  - desc: admin
    user: admin
  - desc: guest
    user: guest
`)
	writeFile(t, dir, "2_search.yaml", `desc: Search
request:
  url: "{{ .base_url }}/search"
`)
	return dir
}

// executeCommand runs a fresh command tree with an empty config directory.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--config-path", t.TempDir()))

	err := root.Execute()
	return out.String(), err
}

type suiteJSON struct {
	Dir   string           `json:"dir"`
	Cases []map[string]any `json:"cases"`
}

func TestCollect_Table(t *testing.T) {
	dir := writeSuite(t)

	out, err := executeCommand(t, "collect", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Login-admin")
	assert.Contains(t, out, "Login-guest")
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "3 cases from 2 files")
}

func TestCollect_JSONSeveralSuites(t *testing.T) {
	first := writeSuite(t)
	second := t.TempDir()
	writeFile(t, second, "1_only.yaml", "desc: Only\n")

	out, err := executeCommand(t, "collect", first, second, "-o", "json")
	require.NoError(t, err)

	var suites []suiteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &suites))
	require.Len(t, suites, 2)

	assert.Equal(t, first, suites[0].Dir)
	require.Len(t, suites[0].Cases, 3)
	assert.Equal(t, "Login-admin", suites[0].Cases[0]["_case_name"])
	assert.NotContains(t, suites[0].Cases[0], "ddts")

	assert.Equal(t, second, suites[1].Dir)
	require.Len(t, suites[1].Cases, 1)
	assert.Equal(t, "Only", suites[1].Cases[0]["_case_name"])
}

func TestCollect_Filter(t *testing.T) {
	dir := writeSuite(t)

	out, err := executeCommand(t, "collect", dir, "--filter", "Login-*", "-o", "json")
	require.NoError(t, err)

	var suites []suiteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &suites))
	require.Len(t, suites, 1)
	require.Len(t, suites[0].Cases, 2)
	assert.Equal(t, "Login-guest", suites[0].Cases[1]["_case_name"])
}

func TestCollect_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		exitCode int
	}{
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			exitCode: ExitCodeCaseDirectory,
		},
		{
			name: "invalid case file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "1_bad.yaml", "desc: [unclosed\n")
				return dir
			},
			exitCode: ExitCodeCaseFile,
		},
		{
			name: "malformed ddts",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "1_bad.yaml", "desc: Bad\nddts: not-a-list\n")
				return dir
			},
			exitCode: ExitCodeCaseFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "collect", tt.setup(t))
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, getExitCode(err))
		})
	}
}

func TestCollect_RequiresDirectory(t *testing.T) {
	_, err := executeCommand(t, "collect")
	require.Error(t, err)
	assert.Equal(t, ExitCodeError, getExitCode(err))
}

func TestShow(t *testing.T) {
	dir := writeSuite(t)

	out, err := executeCommand(t, "show", dir, "Login-guest", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "_case_name: Login-guest")
	assert.Contains(t, out, "{{ .base_url }}{{ .path }}")

	out, err = executeCommand(t, "show", dir, "2", "--render", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "url: http://localhost:8080/login")
	assert.Contains(t, out, "user: guest")
}

func TestShow_UnknownCase(t *testing.T) {
	dir := writeSuite(t)

	_, err := executeCommand(t, "show", dir, "Logout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no case named "Logout"`)
	assert.Equal(t, ExitCodeError, getExitCode(err))

	_, err = executeCommand(t, "show", dir, "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRender(t *testing.T) {
	dir := writeSuite(t)

	out, err := executeCommand(t, "render", dir, "-o", "json")
	require.NoError(t, err)

	var suites []suiteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &suites))
	require.Len(t, suites, 1)
	require.Len(t, suites[0].Cases, 3)

	login := suites[0].Cases[0]["request"].(map[string]any)
	assert.Equal(t, "http://localhost:8080/login", login["url"])
	assert.Equal(t, "admin", login["user"])

	search := suites[0].Cases[2]["request"].(map[string]any)
	assert.Equal(t, "http://localhost:8080/search", search["url"])
}

func TestRender_MissingVariable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1_case.yaml", "desc: Broken\nurl: '{{ .nowhere }}'\n")

	_, err := executeCommand(t, "render", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `case "Broken"`)
}

func TestContext(t *testing.T) {
	dir := writeSuite(t)

	out, err := executeCommand(t, "context", dir, "-o", "json")
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &values))

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"base_url":   "http://localhost:8080",
		"_cases_dir": abs,
	}, values)
}

func TestRoot_InvalidSettings(t *testing.T) {
	dir := writeSuite(t)

	_, err := executeCommand(t, "collect", dir, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = executeCommand(t, "collect", dir, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestRoot_ConfigFileOutput(t *testing.T) {
	dir := writeSuite(t)
	configDir := t.TempDir()
	writeFile(t, configDir, "config.yaml", "output: json\n")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"collect", dir, "--config-path", configDir})
	require.NoError(t, root.Execute())

	var suites []suiteJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &suites))
	assert.Len(t, suites, 1)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestRunWatch(t *testing.T) {
	dir := writeSuite(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, suite.NewCollector(), dir, 50*time.Millisecond, &out, io.Discard)
	}()

	time.Sleep(200 * time.Millisecond)
	writeFile(t, dir, "3_logout.yaml", "desc: Logout\n")
	time.Sleep(600 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	output := out.String()
	assert.Contains(t, output, "3 cases from 2 files")
	assert.Contains(t, output, "changed: 3_logout.yaml")
	assert.Contains(t, output, "4 cases from 3 files")
}

func TestRunWatch_MissingDirectory(t *testing.T) {
	err := runWatch(context.Background(), suite.NewCollector(), filepath.Join(t.TempDir(), "absent"), 0, io.Discard, io.Discard)
	require.Error(t, err)
}
