package schema

import (
	"strings"
)

// rules holds parsed directives of a `validate` struct tag or a constraint string.
type rules struct {
	min      string   // Minimum constraint (min:N)
	max      string   // Maximum constraint (max:M)
	oneof    []string // Allowed values (oneof:a|b|c)
	required bool     // Field is required (required or required:true)
}

// parseRules parses "directive1:value1,directive2:value2,...".
// Boolean directives can omit `:true` (e.g., "required" == "required:true").
// oneof values are separated by "|" so they never collide with the directive separator.
func parseRules(tag string) rules {
	r := rules{}
	if tag == "" {
		return r
	}

	for _, directive := range strings.Split(tag, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1]
		}

		switch name {
		case "min":
			r.min = value
		case "max":
			r.max = value
		case "oneof":
			if value != "" {
				r.oneof = strings.Split(value, "|")
				for i := range r.oneof {
					r.oneof[i] = strings.TrimSpace(r.oneof[i])
				}
			}
		case "required":
			// Anything but an explicit "false" keeps the field required
			r.required = value != "false"
		}
	}

	return r
}
