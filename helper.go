// FILE: lixenwraith/appconfig/helper.go
package appconfig

import "strings"

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A segment holding a non-map
// value is replaced by a map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// lookupPath finds a value in a nested mapping by dotted path. A flat
// dotted key at the top level takes effect when the nested walk fails,
// whether a segment is missing or an intermediate segment holds a
// non-map value, so override mappings may use either form.
func lookupPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			current, ok = nil, false
		} else {
			current, ok = m[segment]
		}
		if !ok {
			if v, flat := data[path]; flat {
				return v, true
			}
			return nil, false
		}
	}
	return current, true
}

// deepMerge copies src into dst, merging nested maps key by key and
// replacing everything else. Later sources win on collision.
func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			deepMerge(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			copied := make(map[string]any, len(srcMap))
			deepMerge(copied, srcMap)
			dst[key] = copied
			continue
		}
		dst[key] = value
	}
}

// isValidKeySegment checks that a path segment is a bare key: ASCII
// letters, digits, underscores and dashes, with no dots.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
