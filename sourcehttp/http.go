package sourcehttp

import (
	"io"
	"mime/multipart"
	"net/url"
	"sort"

	"github.com/Azhovan/formbuilder"
)

// Options configures how parsed submissions are mapped to a form.
type Options struct {
	// FilesFirst emits file entries before text entries of the same key.
	// Default: false (text first).
	FilesFirst bool
}

// FileBlob exposes an uploaded multipart file as a formbuilder.Blob.
type FileBlob struct {
	Header *multipart.FileHeader
}

func (b FileBlob) Name() string { return b.Header.Filename }
func (b FileBlob) Size() int64  { return b.Header.Size }

// ContentType returns the part's Content-Type header, or application/octet-stream.
func (b FileBlob) ContentType() string {
	if ct := b.Header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (b FileBlob) Open() (io.ReadCloser, error) {
	return b.Header.Open()
}

// FromMultipart maps an already parsed multipart form to a formbuilder.Form.
// multipart.Form does not keep submission order across keys, so keys are emitted in
// lexical order; values of one key keep their order.
func FromMultipart(mf *multipart.Form, opts Options) *formbuilder.Form {
	form := formbuilder.NewForm()
	if mf == nil {
		return form
	}

	names := make(map[string]struct{}, len(mf.Value)+len(mf.File))
	for k := range mf.Value {
		names[k] = struct{}{}
	}
	for k := range mf.File {
		names[k] = struct{}{}
	}

	for _, key := range sortedKeys(names) {
		if opts.FilesFirst {
			appendFiles(form, key, mf.File[key])
			appendValues(form, key, mf.Value[key])
			continue
		}
		appendValues(form, key, mf.Value[key])
		appendFiles(form, key, mf.File[key])
	}
	return form
}

// FromValues maps url-encoded values (r.PostForm, r.Form) to a formbuilder.Form,
// keys in lexical order.
func FromValues(values url.Values) *formbuilder.Form {
	form := formbuilder.NewForm()

	names := make(map[string]struct{}, len(values))
	for k := range values {
		names[k] = struct{}{}
	}
	for _, key := range sortedKeys(names) {
		appendValues(form, key, values[key])
	}
	return form
}

func appendValues(form *formbuilder.Form, key string, values []string) {
	for _, v := range values {
		form.Append(key, v)
	}
}

func appendFiles(form *formbuilder.Form, key string, files []*multipart.FileHeader) {
	for _, fh := range files {
		form.AppendBlob(key, FileBlob{Header: fh})
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
