// Package sourcefile loads form fixtures from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .json, .toml). Scalars become text
// entries, lists become repeated entries, and maps with a "filename" key become blobs
// ("content" and "content_type" are optional).
//
// Example:
//
//	form, err := sourcefile.New("submission.yaml", sourcefile.Options{Required: true}).Load(ctx)
//	rec, err := formbuilder.New(form).Single("title", formbuilder.Required()).Build()
package sourcefile
