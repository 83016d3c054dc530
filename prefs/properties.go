package prefs

import (
	"bufio"
	"io"
	"strings"

	"github.com/c360/graphdeco/errors"
)

// FromProperties builds a hierarchical Source from flat dotted properties,
// e.g. {"citybikes.type": "bike-rental", "citybikes.url": "..."} becomes a
// "citybikes" section with "type" and "url" keys.
//
// Mixing a scalar and a section under the same prefix is undefined; the last
// key processed wins.
func FromProperties(props map[string]string) *MapSource {
	root := map[string]any{}
	for key, value := range props {
		parts := strings.Split(key, ".")
		node := root
		ok := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := map[string]any{}
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			node = next
		}
		if ok {
			node[parts[len(parts)-1]] = value
		}
	}
	return NewMapSource(root)
}

// ParseProperties reads Java-style properties: one "key=value" (or
// "key: value") per line, '#' and '!' comments, blank lines ignored.
func ParseProperties(r io.Reader) (map[string]string, error) {
	props := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if key == "" {
			continue
		}
		props[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapTransient(err, "prefs", "ParseProperties", "read properties")
	}
	return props, nil
}
