// Package schema provides formbuilder.Schema implementations.
//
// String and Strings check single fields; Struct decodes a whole record into a typed
// struct and validates it:
//
//	type Article struct {
//	    Title      string   `form:"title" validate:"required,min:3"`
//	    Slug       *string  `form:"slug"`
//	    Categories []string `form:"categories" validate:"min:1,oneof:Web|React|Go"`
//	}
//
//	article, err := formbuilder.BuildAs[*Article](b, schema.Struct[Article]())
//
// Tag directives: required, min:N, max:N, oneof:a|b|c
package schema
