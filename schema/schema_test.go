package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azhovan/formbuilder"
)

type article struct {
	Title      string   `form:"title" validate:"required,min:3,max:40"`
	Slug       *string  `form:"slug"`
	Categories []string `form:"categories" validate:"min:1,oneof:Web|React|Go"`
	Views      int      `form:"views" validate:"min:0"`
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		schema   formbuilder.Schema
		value    any
		wantCode string
	}{
		{name: "plain string", schema: String(), value: "title"},
		{name: "non string", schema: String(), value: 42, wantCode: ErrCodeInvalidType},
		{name: "nil", schema: String(), value: nil, wantCode: ErrCodeInvalidType},
		{name: "required empty", schema: String("required"), value: "", wantCode: ErrCodeRequired},
		{name: "below min", schema: String("min:3"), value: "ab", wantCode: ErrCodeMin},
		{name: "above max", schema: String("max:3"), value: "abcd", wantCode: ErrCodeMax},
		{name: "multibyte counts runes", schema: String("max:3"), value: "äöü"},
		{name: "oneof match", schema: String("oneof:draft|published"), value: "draft"},
		{name: "oneof miss", schema: String("oneof:draft|published"), value: "archived", wantCode: ErrCodeOneOf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.schema.Validate(tt.value)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.value, got)
				return
			}

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr), "expected *ValidationError, got %v", err)
			require.Len(t, valErr.FieldErrors, 1)
			assert.Equal(t, tt.wantCode, valErr.FieldErrors[0].Code)
		})
	}
}

func TestStrings(t *testing.T) {
	t.Run("string slice", func(t *testing.T) {
		got, err := Strings().Validate([]string{"Web", "React"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Web", "React"}, got)
	})

	t.Run("any slice of strings is narrowed", func(t *testing.T) {
		got, err := Strings().Validate([]any{"Web", "React"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Web", "React"}, got)
	})

	t.Run("mixed slice is rejected", func(t *testing.T) {
		_, err := Strings().Validate([]any{"Web", 3})
		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.True(t, valErr.Has("1", ErrCodeInvalidType))
	})

	t.Run("single string is rejected", func(t *testing.T) {
		_, err := Strings().Validate("Web")
		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, ErrCodeInvalidType, valErr.FieldErrors[0].Code)
	})

	t.Run("item count and oneof", func(t *testing.T) {
		_, err := Strings("max:1", "oneof:Web|Go").Validate([]string{"Web", "React"})
		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.True(t, valErr.Has("", ErrCodeMax))
		assert.True(t, valErr.Has(".1", ErrCodeOneOf))
	})
}

func TestOptional(t *testing.T) {
	s := Optional(String("min:3"))

	for _, v := range []any{nil, ""} {
		got, err := s.Validate(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := s.Validate("ab")
	assert.Error(t, err)
}

func TestStruct_Decode(t *testing.T) {
	rec := formbuilder.Record{
		"title":      "modified title",
		"slug":       "modified-title",
		"categories": []string{"Web", "React"},
		"views":      "12",
	}

	got, err := Struct[article]().Decode(rec)
	require.NoError(t, err)

	assert.Equal(t, "modified title", got.Title)
	require.NotNil(t, got.Slug)
	assert.Equal(t, "modified-title", *got.Slug)
	assert.Equal(t, []string{"Web", "React"}, got.Categories)
	assert.Equal(t, 12, got.Views)
}

func TestStruct_OptionalFieldAbsent(t *testing.T) {
	rec := map[string]any{
		"title":      "title",
		"categories": []string{"Web"},
	}

	got, err := Struct[article]().Decode(rec)
	require.NoError(t, err)
	assert.Nil(t, got.Slug)
}

func TestStruct_SingleValueBecomesSlice(t *testing.T) {
	rec := formbuilder.Record{"title": "title", "categories": "Go"}

	got, err := Struct[article]().Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Categories)
}

func TestStruct_AggregatesFieldErrors(t *testing.T) {
	rec := formbuilder.Record{
		"categories": []string{"Web", "Rust"},
		"views":      "-1",
	}

	_, err := Struct[article]().Decode(rec)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr), "expected *ValidationError, got %v", err)
	assert.True(t, valErr.Has("title", ErrCodeRequired))
	assert.True(t, valErr.Has("categories.1", ErrCodeOneOf))
	assert.True(t, valErr.Has("views", ErrCodeMin))
	assert.Len(t, valErr.FieldErrors, 3)
}

func TestStruct_DecodeError(t *testing.T) {
	rec := formbuilder.Record{"title": "title", "categories": []string{"Web"}, "views": "many"}

	_, err := Struct[article]().Decode(rec)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, ErrCodeDecode, valErr.FieldErrors[0].Code)
}

func TestStruct_Strict(t *testing.T) {
	rec := formbuilder.Record{"title": "title", "categories": []string{"Web"}, "zeta": "x", "alpha": "y"}

	_, err := Struct[article]().Decode(rec)
	require.NoError(t, err)

	_, err = Struct[article]().Strict(true).Decode(rec)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Len(t, valErr.FieldErrors, 2)
	assert.Equal(t, "alpha", valErr.FieldErrors[0].FieldPath)
	assert.Equal(t, "zeta", valErr.FieldErrors[1].FieldPath)
	assert.Equal(t, ErrCodeUnknownKey, valErr.FieldErrors[0].Code)
}

func TestStruct_WithValidator(t *testing.T) {
	noSelfSlug := ValidatorFunc[article](func(a *article) error {
		if a.Slug != nil && *a.Slug == a.Title {
			return &ValidationError{FieldErrors: []FieldError{{
				FieldPath: "slug",
				Code:      "same_as_title",
				Message:   "slug must differ from title",
			}}}
		}
		return nil
	})

	rec := formbuilder.Record{"title": "title", "slug": "title", "categories": []string{"Web"}}
	_, err := Struct[article]().WithValidator(noSelfSlug).Decode(rec)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.True(t, valErr.Has("slug", "same_as_title"))

	broken := ValidatorFunc[article](func(*article) error { return errors.New("boom") })
	_, err = Struct[article]().WithValidator(broken).Decode(formbuilder.Record{"title": "title", "categories": []string{"Web"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator 0 failed: boom")
}

func TestStruct_NestedPaths(t *testing.T) {
	type author struct {
		Name string `form:"name" validate:"required"`
	}
	type post struct {
		Title  string `form:"title"`
		Author author `form:"author"`
	}

	_, err := Struct[post]().Decode(map[string]any{"title": "t", "author": map[string]any{}})

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.True(t, valErr.Has("author.name", ErrCodeRequired))
}

func TestStruct_Validate_RejectsNonRecord(t *testing.T) {
	_, err := Struct[article]().Validate("title")
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, ErrCodeInvalidType, valErr.FieldErrors[0].Code)
}

func TestValidationError_Error(t *testing.T) {
	single := &ValidationError{FieldErrors: []FieldError{
		{FieldPath: "title", Code: ErrCodeRequired, Message: "field is required"},
	}}
	assert.Equal(t, "form validation failed: 1 error\n  - title: required (field is required)", single.Error())

	multi := &ValidationError{FieldErrors: []FieldError{
		{FieldPath: "title", Code: ErrCodeRequired, Message: "field is required"},
		{Code: ErrCodeDecode, Message: "bad input"},
	}}
	got := multi.Error()
	assert.True(t, strings.HasPrefix(got, "form validation failed: 2 errors\n"))
	assert.Contains(t, got, "  - decode (bad input)")

	assert.Equal(t, "form validation failed: no errors", (&ValidationError{}).Error())
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		tag      string
		expected rules
	}{
		{tag: "", expected: rules{}},
		{tag: "required", expected: rules{required: true}},
		{tag: "required:false", expected: rules{}},
		{tag: "min:1,max:5", expected: rules{min: "1", max: "5"}},
		{tag: "oneof:a| b |c,required", expected: rules{oneof: []string{"a", "b", "c"}, required: true}},
		{tag: " , unknown:1", expected: rules{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseRules(tt.tag))
		})
	}
}

func TestStruct_DottedKeys(t *testing.T) {
	type author struct {
		Name  string `form:"name" validate:"required"`
		Email string `form:"email"`
	}
	type post struct {
		Title  string `form:"title"`
		Author author `form:"author"`
	}

	input := formbuilder.Record{
		"title":        "t",
		"author.name":  "Ada",
		"author.email": "ada@example.com",
	}
	p, err := Struct[post]().Decode(input)
	require.NoError(t, err)
	assert.Equal(t, author{Name: "Ada", Email: "ada@example.com"}, p.Author)
	assert.Contains(t, input, "author.name", "input is not modified")

	_, err = Struct[post]().Strict(true).Decode(map[string]any{"title": "t", "author.name": "Ada", "author.age": "3"})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.True(t, valErr.Has("author.age", ErrCodeUnknownKey))
}

func TestExpandDotted_Conflicts(t *testing.T) {
	inner := map[string]any{"name": "Ada"}
	out := expandDotted(map[string]any{
		"author":       inner,
		"author.email": "a@b.c",
		"title":        "t",
		"title.sub":    "x",
	})

	assert.Equal(t, map[string]any{"name": "Ada", "email": "a@b.c"}, out["author"])
	assert.Equal(t, map[string]any{"name": "Ada"}, inner, "nested input maps are copied")
	assert.Equal(t, "t", out["title"])
	assert.Equal(t, "x", out["title.sub"], "keys under a scalar stay flat")
}
