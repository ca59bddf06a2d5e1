package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/Azhovan/formbuilder"
)

// tagName is the struct tag mapping fields to form keys.
const tagName = "form"

// Validator performs custom validation after tag-based validation.
// Use for cross-field or semantic checks.
type Validator[T any] interface {
	// Validate checks the decoded value. Return *ValidationError for field-level errors.
	Validate(v *T) error
}

// ValidatorFunc is a function adapter for Validator interface.
type ValidatorFunc[T any] func(v *T) error

func (f ValidatorFunc[T]) Validate(v *T) error {
	return f(v)
}

// StructSchema decodes a record into *T and validates it.
// Fields map to keys through the `form` tag (lowercased field name otherwise);
// constraints come from the `validate` tag. Text is weakly converted to the
// field type ("42" → int, single value → slice).
type StructSchema[T any] struct {
	strict     bool
	validators []Validator[T]
}

// Struct creates a StructSchema with strict mode disabled.
func Struct[T any]() *StructSchema[T] {
	return &StructSchema[T]{}
}

// Strict controls whether record keys without a matching field cause errors. Default: false.
func (s *StructSchema[T]) Strict(strict bool) *StructSchema[T] {
	s.strict = strict
	return s
}

// WithValidator adds a custom validator (executed after tag-based validation).
func (s *StructSchema[T]) WithValidator(v Validator[T]) *StructSchema[T] {
	s.validators = append(s.validators, v)
	return s
}

// Validate implements formbuilder.Schema. The result is a *T.
func (s *StructSchema[T]) Validate(value any) (any, error) {
	return s.Decode(value)
}

// Decode decodes and validates value, which must be a formbuilder.Record or map[string]any.
// Returns the populated value or *ValidationError with all field errors.
func (s *StructSchema[T]) Decode(value any) (*T, error) {
	var input map[string]any
	switch v := value.(type) {
	case formbuilder.Record:
		input = map[string]any(v)
	case map[string]any:
		input = v
	default:
		return nil, invalidType("record", value)
	}

	out := new(T)
	input = expandDotted(input)

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagName,
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           out,
	})
	if err != nil {
		return nil, fmt.Errorf("schema: create decoder for %T: %w", out, err)
	}

	if err := decoder.Decode(input); err != nil {
		return nil, &ValidationError{FieldErrors: []FieldError{{
			Code:    ErrCodeDecode,
			Message: err.Error(),
		}}}
	}

	var allErrors []FieldError

	if s.strict && len(md.Unused) > 0 {
		unused := append([]string(nil), md.Unused...)
		sort.Strings(unused)
		for _, key := range unused {
			allErrors = append(allErrors, FieldError{
				FieldPath: key,
				Code:      ErrCodeUnknownKey,
				Message:   "unknown form key (strict mode)",
			})
		}
	}

	allErrors = append(allErrors, validateStruct(reflect.ValueOf(out), "")...)

	for i, validator := range s.validators {
		if err := validator.Validate(out); err != nil {
			if valErr, ok := err.(*ValidationError); ok {
				allErrors = append(allErrors, valErr.FieldErrors...)
				continue
			}
			return nil, fmt.Errorf("validator %d failed: %w", i, err)
		}
	}

	if len(allErrors) > 0 {
		return nil, &ValidationError{FieldErrors: allErrors}
	}
	return out, nil
}

// expandDotted nests dotted keys ("author.name") under their prefix so they decode
// into nested structs. A key whose prefix already holds a non-map value stays flat.
func expandDotted(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	keys := make([]string, 0, len(input))
	for k, v := range input {
		if !strings.Contains(k, ".") {
			out[k] = cloneNested(v)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		parts := strings.Split(k, ".")
		node := out
		nested := true
		for _, part := range parts[:len(parts)-1] {
			next, exists := node[part]
			if !exists {
				child := make(map[string]any)
				node[part] = child
				node = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				nested = false
				break
			}
			node = child
		}

		if !nested {
			out[k] = input[k]
			continue
		}
		node[parts[len(parts)-1]] = input[k]
	}
	return out
}

func cloneNested(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = cloneNested(item)
	}
	return out
}
