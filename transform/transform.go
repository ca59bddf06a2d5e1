package transform

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Azhovan/formbuilder"
)

// Chain applies fns in order, stopping at the first error.
func Chain(fns ...formbuilder.TransformFunc) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		var err error
		for _, fn := range fns {
			if value, err = fn(value); err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}

// Const ignores the input and returns v.
func Const(v any) formbuilder.TransformFunc {
	return func(any) (any, error) { return v, nil }
}

// Each applies fn to every item of a sequence. Results that are all text come back
// as []string, otherwise as []any. Non-sequence values are passed to fn directly.
func Each(fn formbuilder.TransformFunc) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		seq, ok := items(value)
		if !ok {
			return fn(value)
		}

		out := make([]any, len(seq))
		allText := true
		for i, item := range seq {
			v, err := fn(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			if _, isText := v.(string); !isText {
				allText = false
			}
			out[i] = v
		}

		if !allText {
			return out, nil
		}
		texts := make([]string, len(out))
		for i, v := range out {
			texts[i] = v.(string)
		}
		return texts, nil
	}
}

// TrimSpace trims surrounding white space of text and text sequences.
func TrimSpace() formbuilder.TransformFunc {
	return text(strings.TrimSpace)
}

// Lower maps text to lower case using the rules of tag.
func Lower(tag language.Tag) formbuilder.TransformFunc {
	return text(func(s string) string { return cases.Lower(tag).String(s) })
}

// Upper maps text to upper case using the rules of tag.
func Upper(tag language.Tag) formbuilder.TransformFunc {
	return text(func(s string) string { return cases.Upper(tag).String(s) })
}

// Title maps text to title case using the rules of tag.
func Title(tag language.Tag) formbuilder.TransformFunc {
	return text(func(s string) string { return cases.Title(tag).String(s) })
}

// Slug derives a URL slug: diacritics removed, lower case, runs of anything but
// letters and digits collapsed to a single "-".
// Examples:
//   - "modified title" → "modified-title"
//   - "  Crème Brûlée!  " → "creme-brulee"
func Slug() formbuilder.TransformFunc {
	return func(value any) (any, error) {
		return mapText(value, slugify)
	}
}

func slugify(s string) (string, error) {
	stripped, _, err := xtransform.String(
		xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		return "", fmt.Errorf("normalize %q: %w", s, err)
	}
	stripped = cases.Lower(language.Und).String(stripped)

	var b strings.Builder
	dash := false
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String(), nil
}

// Split splits text on sep, trimming items and dropping empty ones.
func Split(sep string) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("split: expected text, got %T", value)
		}
		out := make([]string, 0)
		for _, part := range strings.Split(s, sep) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
}

// Join joins a text sequence with sep. A single text value is returned as is.
func Join(sep string) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok {
			return s, nil
		}
		seq, ok := items(value)
		if !ok {
			return nil, fmt.Errorf("join: expected text sequence, got %T", value)
		}
		parts := make([]string, len(seq))
		for i, item := range seq {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("join: item %d: expected text, got %T", i, item)
			}
			parts[i] = s
		}
		return strings.Join(parts, sep), nil
	}
}

// ParseInt parses base-10 text into int64; sequences become []int64.
func ParseInt() formbuilder.TransformFunc {
	parse := func(s string) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return parseEach("int", parse)
}

// ParseBool parses checkbox and boolean text: "on", "yes", and everything strconv.ParseBool
// accepts. Empty text is false.
func ParseBool() formbuilder.TransformFunc {
	parse := func(s string) (bool, error) {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "":
			return false, nil
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(s))
	}
	return parseEach("bool", parse)
}

func parseEach[T any](kind string, parse func(string) (T, error)) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok {
			v, err := parse(s)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", kind, err)
			}
			return v, nil
		}

		seq, ok := items(value)
		if !ok {
			return nil, fmt.Errorf("parse %s: expected text, got %T", kind, value)
		}
		out := make([]T, len(seq))
		for i, item := range seq {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("parse %s: item %d: expected text, got %T", kind, i, item)
			}
			v, err := parse(s)
			if err != nil {
				return nil, fmt.Errorf("parse %s: item %d: %w", kind, i, err)
			}
			out[i] = v
		}
		return out, nil
	}
}

// text lifts a string mapping to text and text sequences.
func text(fn func(string) string) formbuilder.TransformFunc {
	return func(value any) (any, error) {
		return mapText(value, func(s string) (string, error) { return fn(s), nil })
	}
}

func mapText(value any, fn func(string) (string, error)) (any, error) {
	switch v := value.(type) {
	case string:
		return fn(v)
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			mapped, err := fn(s)
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				out[i] = item
				continue
			}
			mapped, err := fn(s)
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected text, got %T", value)
	}
}

// items returns the elements of the sequence types a Builder produces.
func items(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []formbuilder.Blob:
		out := make([]any, len(v))
		for i, b := range v {
			out[i] = b
		}
		return out, true
	}
	return nil, false
}
