package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"casebook/internal/casedata"
)

// Engine renders template strings nested anywhere inside case values.
type Engine struct {
	// baseDir resolves relative paths passed to the file function.
	baseDir string
}

// New creates a template engine. baseDir may be empty, in which case the
// file function only accepts absolute paths.
func New(baseDir string) *Engine {
	return &Engine{baseDir: baseDir}
}

// Replace renders every template string in value using vars. Maps and lists
// are rebuilt, so value itself is never modified. Non-string scalars are
// returned as is.
func (e *Engine) Replace(value any, vars map[string]any) (any, error) {
	switch v := value.(type) {
	case string:
		return e.replaceString(v, vars)
	case *casedata.Map:
		return e.replaceMap(v, vars)
	case []any:
		return e.replaceSlice(v, vars)
	default:
		return value, nil
	}
}

// replaceString renders a single string. Strings without "{{" are returned
// unchanged without being parsed.
func (e *Engine) replaceString(s string, vars map[string]any) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	tmpl, err := template.New("value").
		Option("missingkey=error").
		Funcs(e.funcs()).
		Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid template %q: %w", s, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render %q: %w", s, err)
	}
	return buf.String(), nil
}

func (e *Engine) replaceMap(m *casedata.Map, vars map[string]any) (*casedata.Map, error) {
	result := casedata.NewMap()

	var firstErr error
	m.Range(func(key string, value any) bool {
		replaced, err := e.Replace(value, vars)
		if err != nil {
			firstErr = fmt.Errorf("error in key '%s': %w", key, err)
			return false
		}
		result.Set(key, replaced)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	return result, nil
}

func (e *Engine) replaceSlice(s []any, vars map[string]any) ([]any, error) {
	result := make([]any, len(s))

	for i, value := range s {
		replaced, err := e.Replace(value, vars)
		if err != nil {
			return nil, fmt.Errorf("error at index %d: %w", i, err)
		}
		result[i] = replaced
	}

	return result, nil
}

func (e *Engine) funcs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["file"] = e.readFile
	return funcs
}

// readFile backs the "file" template function.
func (e *Engine) readFile(path string) (string, error) {
	if !filepath.IsAbs(path) {
		if e.baseDir == "" {
			return "", fmt.Errorf("cannot resolve relative path %q: no case directory known", path)
		}
		path = filepath.Join(e.baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
