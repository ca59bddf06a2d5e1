// Package sourcehttp adapts submissions already parsed by net/http to formbuilder forms.
//
// Example:
//
//	if err := r.ParseMultipartForm(32 << 20); err != nil { ... }
//	form := sourcehttp.FromMultipart(r.MultipartForm, sourcehttp.Options{})
//	rec, err := formbuilder.New(form).Single("title", formbuilder.Required()).Build()
package sourcehttp
