// Package fieldpath resolves dotted paths such as "vehicle.vin" against
// nested map[string]any values.
package fieldpath

import "strings"

// Lookup walks path through root. It reports false as soon as a segment is
// absent, nil, an empty string, or not a map.
func Lookup(root any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}

	cur := root

	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		v, ok := m[key]
		if !ok || isEmpty(v) {
			return nil, false
		}

		cur = v
	}

	return cur, true
}

// Missing returns every path in paths that Lookup cannot resolve, in input order.
func Missing(root any, paths []string) []string {
	var missing []string

	for _, p := range paths {
		if _, ok := Lookup(root, p); !ok {
			missing = append(missing, p)
		}
	}

	return missing
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return t == nil
	}

	return false
}
