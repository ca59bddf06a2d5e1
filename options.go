package formbuilder

import (
	"io"
	"log/slog"

	"github.com/Azhovan/formbuilder/internal/keys"
)

// Presence controls what happens when an operation's source key is absent.
type Presence int

const (
	// PresenceDefault behaves like PresenceOptional.
	PresenceDefault Presence = iota
	// PresenceOptional skips the operation when the key is absent.
	PresenceOptional
	// PresenceRequired fails the operation with a *KeyError when the key is absent.
	PresenceRequired
)

func (p Presence) String() string {
	switch p {
	case PresenceOptional:
		return "optional"
	case PresenceRequired:
		return "required"
	default:
		return "default"
	}
}

// PrunePolicy controls how Build treats empty values.
type PrunePolicy int

const (
	// PruneEmpty removes keys holding "", nil, or a nil pointer/slice/map before validation.
	PruneEmpty PrunePolicy = iota
	// PruneNone keeps every key as merged.
	PruneNone
)

// FieldOption configures a single extraction or transfer call.
type FieldOption func(*fieldConfig)

// fieldConfig holds the resolved options of one call.
type fieldConfig struct {
	presence  Presence
	transform TransformFunc
	schema    Schema
}

func (c fieldConfig) required() bool { return c.presence == PresenceRequired }

// WithPresence sets the presence policy explicitly.
func WithPresence(p Presence) FieldOption {
	return func(c *fieldConfig) {
		c.presence = p
	}
}

// Required makes the call fail when its source key is absent.
func Required() FieldOption {
	return WithPresence(PresenceRequired)
}

// Optional makes the call a no-op when its source key is absent.
func Optional() FieldOption {
	return WithPresence(PresenceOptional)
}

// WithTransform applies fn to the extracted value before any schema runs.
func WithTransform(fn TransformFunc) FieldOption {
	return func(c *fieldConfig) {
		c.transform = fn
	}
}

// WithSchema validates the (possibly transformed) value; the schema result is stored.
func WithSchema(s Schema) FieldOption {
	return func(c *fieldConfig) {
		c.schema = s
	}
}

func resolveFieldOptions(opts []FieldOption) fieldConfig {
	cfg := fieldConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Option configures a Builder.
type Option func(*builderConfig)

type builderConfig struct {
	logger         *slog.Logger
	prune          PrunePolicy
	reservedPrefix string
}

// WithLogger sets the logger used for debug diagnostics. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *builderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithPruning sets the finalization prune policy. Default: PruneEmpty.
func WithPruning(p PrunePolicy) Option {
	return func(cfg *builderConfig) {
		cfg.prune = p
	}
}

// WithReservedPrefix changes the prefix of framing keys hidden from the builder.
// Default: "$ACTION". An empty prefix hides nothing.
func WithReservedPrefix(prefix string) Option {
	return func(cfg *builderConfig) {
		cfg.reservedPrefix = prefix
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func defaultBuilderConfig() builderConfig {
	return builderConfig{
		logger:         discardLogger,
		prune:          PruneEmpty,
		reservedPrefix: keys.ReservedPrefix,
	}
}
