package casedata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// mergeTag is the resolved tag of the "<<" merge key.
const mergeTag = "!!merge"

// ParseYAML parses the first document in data into a value.
// An empty or null document yields (nil, nil).
func ParseYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return Decode(&node)
}

// ParseYAMLMap parses data and requires the document to be a mapping.
// An empty or null document yields (nil, nil).
func ParseYAMLMap(data []byte) (*Map, error) {
	value, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Map:
		return v, nil
	default:
		return nil, fmt.Errorf("document is a %s, expected a mapping", TypeName(v))
	}
}

// Decode converts a yaml.v3 node tree into a value, keeping mapping key order.
// Aliases are expanded into independent copies and "<<" merge keys are
// applied, with explicit keys taking precedence over merged ones.
//
// An alias that refers to a node containing itself is an error, as is a
// document whose aliases expand out of proportion to its size.
func Decode(node *yaml.Node) (any, error) {
	d := &decoder{expanding: make(map[*yaml.Node]bool)}
	return d.decode(node)
}

// decoder holds the alias bookkeeping of a single Decode call.
type decoder struct {
	// expanding holds the alias nodes currently being followed.
	expanding map[*yaml.Node]bool

	aliasDepth  int
	decodeCount int
	aliasCount  int
}

func (d *decoder) decode(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, fmt.Errorf("line %d: document contains excessive aliasing", node.Line)
	}

	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return d.decode(node.Content[0])
	case yaml.AliasNode:
		return d.alias(node, d.decode)
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := d.decode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return d.mapping(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

// alias follows an alias node with fn, refusing to re-enter an alias that
// is already being followed.
func (d *decoder) alias(node *yaml.Node, fn func(*yaml.Node) (any, error)) (any, error) {
	if d.expanding[node] {
		return nil, fmt.Errorf("line %d: recursive alias %q", node.Line, node.Value)
	}
	if node.Alias == nil {
		return nil, fmt.Errorf("line %d: unknown anchor %q", node.Line, node.Value)
	}

	d.expanding[node] = true
	d.aliasDepth++
	defer func() {
		d.aliasDepth--
		delete(d.expanding, node)
	}()

	return fn(node.Alias)
}

func (d *decoder) mapping(node *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			if err := d.merge(m, valueNode); err != nil {
				return nil, err
			}
			continue
		}

		key, err := keyString(keyNode)
		if err != nil {
			return nil, err
		}
		value, err := d.decode(valueNode)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	return m, nil
}

// merge adds the entries of a merge source that m does not have yet.
// In a sequence of sources the earlier source wins.
func (d *decoder) merge(m *Map, source *yaml.Node) error {
	switch source.Kind {
	case yaml.AliasNode:
		_, err := d.alias(source, func(target *yaml.Node) (any, error) {
			return nil, d.merge(m, target)
		})
		return err
	case yaml.MappingNode:
		return d.mergeSource(m, source)
	case yaml.SequenceNode:
		for _, s := range source.Content {
			if err := d.mergeSource(m, s); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge key value must be a mapping or a list of mappings", source.Line)
	}
}

func (d *decoder) mergeSource(m *Map, source *yaml.Node) error {
	value, err := d.decode(source)
	if err != nil {
		return err
	}
	merged, ok := value.(*Map)
	if !ok {
		return fmt.Errorf("line %d: invalid merge source: expected a mapping, got a %s", source.Line, TypeName(value))
	}
	merged.Range(func(k string, v any) bool {
		if !m.Has(k) {
			m.Set(k, v)
		}
		return true
	})
	return nil
}

// allowedAliasRatio mirrors the limit yaml.v3 applies when decoding into Go
// values: small documents may consist almost entirely of aliases, large
// ones may not.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400000:
		return 0.99
	case decodeCount >= 4000000:
		return 0.10
	default:
		return 0.10 + 0.89*(1-float64(decodeCount-400000)/3600000)
	}
}

func keyString(node *yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", node.Line)
	}
	return node.Value, nil
}

// TypeName describes the YAML kind of a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Map, map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
