package casedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered mapping from string keys to YAML values.
//
// Values are nil, bool, int, float64, string, []any or *Map (plus whatever
// other scalar types yaml.v3 resolves explicit tags to). The zero value is an
// empty map ready for use. A nil *Map reads as empty.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key, or nil when absent.
func (m *Map) Get(key string) any {
	v, _ := m.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether it was present.
func (m *Map) Lookup(key string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Set stores value under key. Overwriting an existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil || m.values == nil {
		return false
	}
	if _, exists := m.values[key]; !exists {
		return false
	}
	delete(m.values, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return true
}

// Range calls fn for every entry in order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of m. Nested maps and lists are copied so the
// result shares no mutable state with m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = DeepCopy(v)
	}
	return out
}

// Merge overlays every entry of other onto m; entries of other win.
// Merged values are deep-copied.
func (m *Map) Merge(other *Map) {
	other.Range(func(k string, v any) bool {
		m.Set(k, DeepCopy(v))
		return true
	})
}

// ToPlain converts m into nested map[string]any / []any values, the shape
// text/template and most libraries expect. Key order is lost.
func (m *Map) ToPlain() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = toPlain(m.values[k])
	}
	return out
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToPlain()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

// DeepCopy returns a copy of v in which every *Map, []any and map[string]any
// is duplicated. Scalars are returned as is.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = DeepCopy(item)
		}
		return out
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = DeepCopy(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes m as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes m as a YAML mapping with keys in insertion order.
func (m *Map) MarshalYAML() (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(k)
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// UnmarshalYAML lets a Map be embedded in structs decoded by yaml.v3.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	value, err := Decode(node)
	if err != nil {
		return err
	}
	decoded, ok := value.(*Map)
	if !ok {
		return fmt.Errorf("line %d: expected a mapping, got a %s", node.Line, TypeName(value))
	}
	*m = *decoded
	return nil
}
