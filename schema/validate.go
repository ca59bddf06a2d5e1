package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// validateField validates a single value against parsed rules.
// Pointers are dereferenced; a nil pointer counts as absent.
func validateField(v reflect.Value, fieldPath string, r rules) []FieldError {
	var errors []FieldError

	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			v = reflect.Value{}
			break
		}
		v = v.Elem()
	}

	if !v.IsValid() || isZeroValue(v) {
		if r.required {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeRequired,
				Message:   "field is required but not provided",
			})
		}
		return errors
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		errors = append(errors, validateIntMinMax(v, fieldPath, r)...)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		errors = append(errors, validateUintMinMax(v, fieldPath, r)...)
	case reflect.Float32, reflect.Float64:
		errors = append(errors, validateFloatMinMax(v, fieldPath, r)...)
	case reflect.String:
		errors = append(errors, validateLength(utf8.RuneCountInString(v.String()), "string length", fieldPath, r)...)
	case reflect.Slice, reflect.Array:
		errors = append(errors, validateLength(v.Len(), "item count", fieldPath, r)...)
	}

	if len(r.oneof) > 0 {
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			for i := 0; i < v.Len(); i++ {
				errors = append(errors, validateOneof(v.Index(i), fmt.Sprintf("%s.%d", fieldPath, i), r)...)
			}
		} else {
			errors = append(errors, validateOneof(v, fieldPath, r)...)
		}
	}

	return errors
}

// validateStruct walks a struct and validates all fields according to their tags.
// It recursively validates nested structs.
func validateStruct(v reflect.Value, parentPath string) []FieldError {
	var fieldErrors []FieldError

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fieldErrors
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fieldErrors
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldPath := formKey(field)
		if parentPath != "" {
			fieldPath = parentPath + "." + fieldPath
		}

		fieldValue := v.Field(i)
		r := parseRules(field.Tag.Get("validate"))

		if isNestedStruct(field.Type) {
			if r.required && isZeroValue(fieldValue) {
				fieldErrors = append(fieldErrors, validateField(fieldValue, fieldPath, r)...)
				continue
			}
			fieldErrors = append(fieldErrors, validateStruct(fieldValue, fieldPath)...)
			continue
		}

		fieldErrors = append(fieldErrors, validateField(fieldValue, fieldPath, r)...)
	}

	return fieldErrors
}

// formKey returns the form key a struct field decodes from.
func formKey(field reflect.StructField) string {
	tag := field.Tag.Get(tagName)
	if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
		return name
	}
	return strings.ToLower(field.Name)
}

// isNestedStruct reports struct (or pointer to struct) fields other than time values.
func isNestedStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t.PkgPath() != "time"
}

// isZeroValue checks if a reflect.Value is the zero value for its type.
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// validateIntMinMax validates min/max constraints for signed integer types.
func validateIntMinMax(v reflect.Value, fieldPath string, r rules) []FieldError {
	var errors []FieldError
	value := v.Int()

	if r.min != "" {
		minVal, err := strconv.ParseInt(r.min, 10, 64)
		if err == nil && value < minVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %d is below minimum %d", value, minVal),
			})
		}
	}

	if r.max != "" {
		maxVal, err := strconv.ParseInt(r.max, 10, 64)
		if err == nil && value > maxVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %d exceeds maximum %d", value, maxVal),
			})
		}
	}

	return errors
}

// validateUintMinMax validates min/max constraints for unsigned integer types.
func validateUintMinMax(v reflect.Value, fieldPath string, r rules) []FieldError {
	var errors []FieldError
	value := v.Uint()

	if r.min != "" {
		minVal, err := strconv.ParseUint(r.min, 10, 64)
		if err == nil && value < minVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %d is below minimum %d", value, minVal),
			})
		}
	}

	if r.max != "" {
		maxVal, err := strconv.ParseUint(r.max, 10, 64)
		if err == nil && value > maxVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %d exceeds maximum %d", value, maxVal),
			})
		}
	}

	return errors
}

// validateFloatMinMax validates min/max constraints for floating-point types.
func validateFloatMinMax(v reflect.Value, fieldPath string, r rules) []FieldError {
	var errors []FieldError
	value := v.Float()

	if r.min != "" {
		minVal, err := strconv.ParseFloat(r.min, 64)
		if err == nil && value < minVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %g is below minimum %g", value, minVal),
			})
		}
	}

	if r.max != "" {
		maxVal, err := strconv.ParseFloat(r.max, 64)
		if err == nil && value > maxVal {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %g exceeds maximum %g", value, maxVal),
			})
		}
	}

	return errors
}

// validateLength validates min/max constraints against a length (runes or items).
func validateLength(length int, what, fieldPath string, r rules) []FieldError {
	var errors []FieldError

	if r.min != "" {
		minLen, err := strconv.Atoi(r.min)
		if err == nil && length < minLen {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("%s %d is below minimum %d", what, length, minLen),
			})
		}
	}

	if r.max != "" {
		maxLen, err := strconv.Atoi(r.max)
		if err == nil && length > maxLen {
			errors = append(errors, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("%s %d exceeds maximum %d", what, length, maxLen),
			})
		}
	}

	return errors
}

// validateOneof validates that a value is one of the allowed options.
func validateOneof(v reflect.Value, fieldPath string, r rules) []FieldError {
	var valueStr string
	switch v.Kind() {
	case reflect.String:
		valueStr = v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		valueStr = strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		valueStr = strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		valueStr = strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		valueStr = strconv.FormatBool(v.Bool())
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return validateOneof(v.Elem(), fieldPath, r)
	default:
		return nil
	}

	for _, allowed := range r.oneof {
		if valueStr == allowed {
			return nil
		}
	}

	return []FieldError{{
		FieldPath: fieldPath,
		Code:      ErrCodeOneOf,
		Message:   fmt.Sprintf("value %q must be one of: %s", valueStr, strings.Join(r.oneof, ", ")),
	}}
}
