// Package transform provides reusable formbuilder.TransformFunc values for common
// form normalization: trimming, case mapping, slugs, splitting and joining lists,
// and parsing numbers and checkboxes.
//
// Text transforms accept a single string and the sequences a Builder produces
// ([]string, []any), mapping each text item.
package transform
