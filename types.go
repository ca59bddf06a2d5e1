package formbuilder

import (
	"bytes"
	"io"
	"sort"
)

// Store is a read-only ordered multi-map of submitted form entries.
// Values are either string or Blob.
type Store interface {
	// Keys returns every entry key in submission order, duplicates included.
	Keys() []string

	// Get returns the first value stored under key.
	Get(key string) (any, bool)

	// GetAll returns every value stored under key in submission order.
	GetAll(key string) []any
}

// Blob is a binary form value such as an uploaded file.
type Blob interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// BytesBlob is an in-memory Blob.
type BytesBlob struct {
	Filename string
	Type     string
	Data     []byte
}

func (b *BytesBlob) Name() string        { return b.Filename }
func (b *BytesBlob) Size() int64         { return int64(len(b.Data)) }
func (b *BytesBlob) ContentType() string { return b.Type }

// Open returns a reader over Data.
func (b *BytesBlob) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// Entry is a single key/value pair of a Form.
type Entry struct {
	Key   string
	Value any
}

// Form is the in-memory Store implementation. The zero value is an empty form.
type Form struct {
	entries []Entry
}

// NewForm creates a Form from entries, keeping their order.
func NewForm(entries ...Entry) *Form {
	f := &Form{entries: make([]Entry, 0, len(entries))}
	f.entries = append(f.entries, entries...)
	return f
}

// Append adds a text entry.
func (f *Form) Append(key, value string) *Form {
	f.entries = append(f.entries, Entry{Key: key, Value: value})
	return f
}

// AppendBlob adds a binary entry.
func (f *Form) AppendBlob(key string, blob Blob) *Form {
	f.entries = append(f.entries, Entry{Key: key, Value: blob})
	return f
}

// Entries returns a copy of the form entries.
func (f *Form) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries.
func (f *Form) Len() int { return len(f.entries) }

func (f *Form) Keys() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Key
	}
	return out
}

func (f *Form) Get(key string) (any, bool) {
	for _, e := range f.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (f *Form) GetAll(key string) []any {
	var out []any
	for _, e := range f.entries {
		if e.Key == key {
			out = append(out, e.Value)
		}
	}
	return out
}

// Record is the accumulated output of a Builder.
type Record map[string]any

// String returns the value under key when it is text.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Strings returns the value under key when it is a text sequence.
func (r Record) Strings(key string) ([]string, bool) {
	s, ok := r[key].([]string)
	return s, ok
}

// Blob returns the value under key when it is a single blob.
func (r Record) Blob(key string) (Blob, bool) {
	b, ok := r[key].(Blob)
	return b, ok
}

// Keys returns the record keys in lexical order.
func (r Record) Keys() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy of r. Sequence values ([]string, []Blob, []any) are copied
// too; blobs and other values are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return cloneSlice(val)
	case []Blob:
		return cloneSlice(val)
	case []any:
		return cloneSlice(val)
	default:
		return v
	}
}

// cloneSlice keeps nil and empty slices apart, pruning depends on it.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Schema validates a value, returning the validated (possibly converted) result.
// Errors returned by Validate propagate to the caller unchanged.
type Schema interface {
	Validate(value any) (any, error)
}

// SchemaFunc is a function adapter for Schema interface.
type SchemaFunc func(value any) (any, error)

func (f SchemaFunc) Validate(value any) (any, error) {
	return f(value)
}

// TransformFunc maps an extracted value to the value that gets stored or validated.
type TransformFunc func(value any) (any, error)
