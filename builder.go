package formbuilder

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/Azhovan/formbuilder/internal/keys"
)

// Builder extracts, transforms, and validates entries of a Store into a Record.
// Operations are chained and applied in call order. Not safe for concurrent use.
type Builder struct {
	id     string
	store  Store
	data   Record
	cfg    builderConfig
	logger *slog.Logger
	prov   *provenanceLog
	errs   []error
}

// New creates a Builder over store. A nil store behaves as an empty form.
func New(store Store, opts ...Option) *Builder {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if store == nil {
		store = NewForm()
	}

	id := uuid.NewString()
	return &Builder{
		id:     id,
		store:  store,
		data:   make(Record),
		cfg:    cfg,
		logger: cfg.logger.With(slog.String("builder", id)),
		prov:   newProvenanceLog(),
	}
}

// ID returns the builder's correlation id, also attached to its log records.
func (b *Builder) ID() string { return b.id }

// Single stores the first value of key, after the call's transform and schema.
func (b *Builder) Single(key string, opts ...FieldOption) *Builder {
	cfg := resolveFieldOptions(opts)
	if !b.resolve("single", key, UniverseSource, cfg) {
		return b
	}

	value, _ := b.store.Get(key)
	b.put(key, key, OriginSingle, value, cfg)
	return b
}

// Array stores every value of key as one sequence. The transform and schema see
// the whole sequence.
func (b *Builder) Array(key string, opts ...FieldOption) *Builder {
	cfg := resolveFieldOptions(opts)
	if !b.resolve("array", key, UniverseSource, cfg) {
		return b
	}

	b.put(key, key, OriginArray, collect(b.store.GetAll(key)), cfg)
	return b
}

// Transfer stores the value of the store key from under the record key to.
// Keys that occur more than once are read as a sequence, others as a single value.
func (b *Builder) Transfer(from, to string, opts ...FieldOption) *Builder {
	cfg := resolveFieldOptions(opts)
	if !b.resolve("transfer", from, UniverseSource, cfg) {
		return b
	}

	var value any
	if keys.Count(b.sourceKeys(), from) > 1 {
		value = collect(b.store.GetAll(from))
	} else {
		value, _ = b.store.Get(from)
	}

	b.put(to, from, OriginTransfer, value, cfg)
	return b
}

// InnerTransfer stores a value already accumulated under the record key from under to.
// Only keys written earlier in the chain are visible.
func (b *Builder) InnerTransfer(from, to string, opts ...FieldOption) *Builder {
	cfg := resolveFieldOptions(opts)
	if !b.resolve("inner-transfer", from, UniverseRecord, cfg) {
		return b
	}

	b.put(to, from, OriginInnerTransfer, b.data[from], cfg)
	return b
}

// Build merges untouched store keys, prunes empty values per the prune policy, and
// returns a copy of the record. Errors recorded by earlier calls are returned instead.
// The builder's own record is left as the chain wrote it, so Build can run repeatedly.
func (b *Builder) Build() (Record, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}

	rec, _ := b.finalize(b.logger)
	return rec, nil
}

// BuildWith runs Build and validates the record with schema.
// A nil schema returns the record. Schema errors are returned unchanged.
func (b *Builder) BuildWith(schema Schema) (any, error) {
	rec, err := b.Build()
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return rec, nil
	}
	return schema.Validate(rec)
}

// BuildAs runs BuildWith and asserts the result to T.
func BuildAs[T any](b *Builder, schema Schema) (T, error) {
	var zero T

	out, err := b.BuildWith(schema)
	if err != nil {
		return zero, err
	}

	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("formbuilder: build result is %T, want %T", out, zero)
	}
	return typed, nil
}

// Err returns the joined errors recorded by failed calls, or nil.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Errors returns the errors recorded by failed calls in call order.
func (b *Builder) Errors() []error {
	out := make([]error, len(b.errs))
	copy(out, b.errs)
	return out
}

// DiscardErrors forgets recorded call failures so the chain can be built anyway.
func (b *Builder) DiscardErrors() *Builder {
	b.errs = nil
	return b
}

// Provenance returns origin information for the keys of the record Build would
// return now, catch-all keys included.
func (b *Builder) Provenance() *Provenance {
	rec, prov := b.finalize(discardLogger)
	return prov.snapshot(rec)
}

// finalize runs the catch-all merge and pruning on a copy of the accumulated record.
func (b *Builder) finalize(logger *slog.Logger) (Record, *provenanceLog) {
	rec := b.data.Clone()
	prov := b.prov.clone()

	b.mergeRemaining(rec, prov, logger)
	if b.cfg.prune == PruneEmpty {
		pruneEmpty(rec, logger)
	}
	return rec, prov
}

// resolve reports whether key is present in universe u. A missing required key is
// recorded as a *KeyError.
func (b *Builder) resolve(op, key string, u Universe, cfg fieldConfig) bool {
	var present bool
	switch u {
	case UniverseRecord:
		_, present = b.data[key]
	default:
		present = keys.Contains(b.sourceKeys(), key)
	}
	if present {
		return true
	}

	if cfg.required() {
		b.logger.Debug("required key missing", "op", op, "key", key, "universe", u.String())
		b.errs = append(b.errs, &KeyError{Key: key, Universe: u})
		return false
	}

	b.logger.Debug("skipping absent key", "op", op, "key", key, "universe", u.String())
	return false
}

// put runs the options pipeline and stores the result under to.
func (b *Builder) put(to, from string, origin Origin, value any, cfg fieldConfig) {
	out, err := runOptions(to, value, cfg)
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}

	b.data[to] = out
	b.prov.record(FieldProvenance{
		Key:         to,
		SourceKey:   from,
		Origin:      origin,
		Transformed: cfg.transform != nil,
		Validated:   cfg.schema != nil,
	})
}

func runOptions(key string, value any, cfg fieldConfig) (any, error) {
	if cfg.transform != nil {
		out, err := cfg.transform(value)
		if err != nil {
			return nil, &TransformError{Key: key, Err: err}
		}
		value = out
	}
	if cfg.schema != nil {
		return cfg.schema.Validate(value)
	}
	return value, nil
}

// mergeRemaining copies visible store keys the chain never wrote into rec.
func (b *Builder) mergeRemaining(rec Record, prov *provenanceLog, logger *slog.Logger) {
	visible := b.sourceKeys()

	for _, key := range keys.Unique(visible) {
		if _, ok := rec[key]; ok {
			continue
		}

		if keys.Count(visible, key) > 1 {
			rec[key] = collect(nonEmpty(b.store.GetAll(key)))
		} else {
			rec[key], _ = b.store.Get(key)
		}

		prov.record(FieldProvenance{Key: key, SourceKey: key, Origin: OriginCatchAll})
		logger.Debug("merged untouched key", "key", key)
	}
}

func pruneEmpty(rec Record, logger *slog.Logger) {
	for key, value := range rec {
		if isEmpty(value) {
			delete(rec, key)
			logger.Debug("pruned empty value", "key", key)
		}
	}
}

func (b *Builder) sourceKeys() []string {
	return keys.Visible(b.store.Keys(), b.cfg.reservedPrefix)
}

// collect narrows a value sequence to []string or []Blob when it is homogeneous.
func collect(values []any) any {
	allText, allBlob := true, true
	for _, v := range values {
		if _, ok := v.(string); !ok {
			allText = false
		}
		if _, ok := v.(Blob); !ok {
			allBlob = false
		}
	}

	switch {
	case allText:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.(string)
		}
		return out
	case allBlob:
		out := make([]Blob, len(values))
		for i, v := range values {
			out[i] = v.(Blob)
		}
		return out
	default:
		out := make([]any, len(values))
		copy(out, values)
		return out
	}
}

func nonEmpty(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if !isEmpty(v) {
			out = append(out, v)
		}
	}
	return out
}

// isEmpty reports "", untyped nil, and nil pointers, slices, maps, and interfaces.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
