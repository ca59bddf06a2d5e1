package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Azhovan/formbuilder"
)

type stringSchema struct {
	rules rules
}

// String accepts text values. Constraints use the `validate` tag syntax,
// e.g. String("required", "min:3", "max:80") or String("oneof:draft|published").
func String(constraints ...string) formbuilder.Schema {
	return stringSchema{rules: parseRules(strings.Join(constraints, ","))}
}

func (s stringSchema) Validate(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, invalidType("string", value)
	}
	if errs := validateField(reflect.ValueOf(str), "", s.rules); len(errs) > 0 {
		return nil, &ValidationError{FieldErrors: errs}
	}
	return str, nil
}

type stringsSchema struct {
	rules rules
}

// Strings accepts text sequences ([]string or []any holding only strings) and
// returns them as []string. min/max bound the item count, oneof applies per item.
func Strings(constraints ...string) formbuilder.Schema {
	return stringsSchema{rules: parseRules(strings.Join(constraints, ","))}
}

func (s stringsSchema) Validate(value any) (any, error) {
	var out []string
	switch v := value.(type) {
	case []string:
		out = v
	case []any:
		out = make([]string, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, &ValidationError{FieldErrors: []FieldError{{
					FieldPath: fmt.Sprintf("%d", i),
					Code:      ErrCodeInvalidType,
					Message:   fmt.Sprintf("expected string, got %T", item),
				}}}
			}
			out[i] = str
		}
	default:
		return nil, invalidType("[]string", value)
	}

	if errs := validateField(reflect.ValueOf(out), "", s.rules); len(errs) > 0 {
		return nil, &ValidationError{FieldErrors: errs}
	}
	return out, nil
}

type optionalSchema struct {
	inner formbuilder.Schema
}

// Optional passes nil and "" through unchanged and validates everything else with inner.
func Optional(inner formbuilder.Schema) formbuilder.Schema {
	return optionalSchema{inner: inner}
}

func (s optionalSchema) Validate(value any) (any, error) {
	if value == nil || value == "" {
		return value, nil
	}
	return s.inner.Validate(value)
}

func invalidType(want string, got any) *ValidationError {
	return &ValidationError{FieldErrors: []FieldError{{
		Code:    ErrCodeInvalidType,
		Message: fmt.Sprintf("expected %s, got %T", want, got),
	}}}
}
