package prefs

import (
	"sort"
	"strconv"
)

// MapSource adapts a decoded map tree (JSON, YAML, TOML) to the Source
// interface. Nested maps are sections, everything else is a value.
type MapSource struct {
	data map[string]any
}

// NewMapSource creates a MapSource over data. A nil map yields an empty source.
func NewMapSource(data map[string]any) *MapSource {
	if data == nil {
		data = map[string]any{}
	}
	return &MapSource{data: data}
}

// ChildNames returns the names of nested sections, sorted for log stability.
// Sorting is cosmetic: precedence is only guaranteed across sources, never
// among sibling sections within one source.
func (s *MapSource) ChildNames() ([]string, error) {
	names := make([]string, 0, len(s.data))
	for name, value := range s.data {
		if _, ok := value.(map[string]any); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Section returns the named sub-section, or an empty source if the name is
// absent or does not refer to a nested map.
func (s *MapSource) Section(name string) Source {
	if child, ok := s.data[name].(map[string]any); ok {
		return &MapSource{data: child}
	}
	return NewMapSource(nil)
}

// Get returns the value for key rendered as a string, or def if the key is
// absent or refers to a sub-section.
func (s *MapSource) Get(key, def string) string {
	value, ok := s.data[key]
	if !ok {
		return def
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		// JSON decodes all numbers as float64
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return def
	}
}
