package keys

import "strings"

// ReservedPrefix marks transport framing entries that never reach extracted data.
const ReservedPrefix = "$ACTION"

// IsReserved reports whether key starts with prefix.
// An empty prefix reserves nothing.
// Examples:
//   - IsReserved("$ACTION_1", "$ACTION") → true
//   - IsReserved("$vasco", "$ACTION") → false
//   - IsReserved("title", "") → false
func IsReserved(key, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(key, prefix)
}

// Visible filters out reserved keys, keeping order and duplicates.
func Visible(all []string, prefix string) []string {
	out := make([]string, 0, len(all))
	for _, k := range all {
		if !IsReserved(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// Count returns how many times key occurs in all.
func Count(all []string, key string) int {
	n := 0
	for _, k := range all {
		if k == key {
			n++
		}
	}
	return n
}

// Contains reports whether key occurs at least once in all.
func Contains(all []string, key string) bool {
	for _, k := range all {
		if k == key {
			return true
		}
	}
	return false
}

// Unique returns the distinct keys of all in first-occurrence order.
// Examples:
//   - Unique([a b a c]) → [a b c]
func Unique(all []string) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, k := range all {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
