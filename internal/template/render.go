package template

import (
	"fmt"

	"casebook/internal/casedata"
	"casebook/internal/expand"
	"casebook/internal/globalctx"
)

// MergeContexts merges multiple contexts into a single context.
// Later contexts override values from earlier contexts; nil contexts are
// skipped.
func MergeContexts(contexts ...map[string]any) map[string]any {
	result := make(map[string]any)

	for _, ctx := range contexts {
		for key, value := range ctx {
			result[key] = value
		}
	}

	return result
}

// Variables returns the variables visible to a case: the store contents
// overlaid by the case's context mapping.
func Variables(c *casedata.Map, store *globalctx.Store) (map[string]any, error) {
	global := store.Snapshot().ToPlain()

	switch ctx := c.Get(expand.ContextKey).(type) {
	case nil:
		return MergeContexts(global), nil
	case *casedata.Map:
		return MergeContexts(global, ctx.ToPlain()), nil
	default:
		return nil, fmt.Errorf("case context must be a mapping, got a %s", casedata.TypeName(ctx))
	}
}

// RenderCase returns a copy of c with every template string rendered. The
// context mapping and the case name are copied verbatim.
func RenderCase(c *casedata.Map, store *globalctx.Store) (*casedata.Map, error) {
	vars, err := Variables(c, store)
	if err != nil {
		return nil, err
	}

	baseDir, _ := store.GetString(globalctx.CasesDirKey)
	engine := New(baseDir)

	rendered := casedata.NewMap()
	var firstErr error
	c.Range(func(key string, value any) bool {
		if key == expand.ContextKey || key == expand.NameKey {
			rendered.Set(key, casedata.DeepCopy(value))
			return true
		}
		out, err := engine.Replace(value, vars)
		if err != nil {
			firstErr = fmt.Errorf("error in key '%s': %w", key, err)
			return false
		}
		rendered.Set(key, out)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rendered, nil
}
