package formbuilder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	prov     *Provenance         // Source attribution, nil to omit
	redacted map[string]struct{} // Keys whose values are hidden
	asJSON   bool                // Output as JSON instead of text format
	indent   string              // Indentation for JSON output (default: "  ")
}

// WithProvenance attributes each key to the operation that wrote it.
func WithProvenance(p *Provenance) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.prov = p
	}
}

// WithRedacted hides the values of the given keys.
func WithRedacted(keys ...string) DumpOption {
	return func(cfg *dumpConfig) {
		for _, k := range keys {
			cfg.redacted[k] = struct{}{}
		}
	}
}

// AsJSON outputs the record as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  "). Empty means compact output.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Dump writes a human-readable representation of rec, keys in lexical order.
// Blobs are shown by name, type, and size, never by content.
func Dump(w io.Writer, rec Record, opts ...DumpOption) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	cfg := dumpConfig{
		redacted: make(map[string]struct{}),
		indent:   "  ",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.asJSON {
		return dumpAsJSON(w, rec, cfg)
	}
	return dumpAsText(w, rec, cfg)
}

// dumpAsText outputs the record in text format (key: value).
func dumpAsText(w io.Writer, rec Record, cfg dumpConfig) error {
	for _, key := range rec.Keys() {
		display := redacted
		if _, hide := cfg.redacted[key]; !hide {
			display = formatText(rec[key])
		}

		line := fmt.Sprintf("%s: %s", key, display)
		if fp, ok := cfg.prov.Lookup(key); ok {
			line += fmt.Sprintf(" (source: %s)", describeSource(fp))
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON outputs the record as JSON with redaction.
func dumpAsJSON(w io.Writer, rec Record, cfg dumpConfig) error {
	out := make(map[string]any, len(rec))
	for key, value := range rec {
		if _, hide := cfg.redacted[key]; hide {
			out[key] = redacted
			continue
		}
		out[key] = formatJSON(value)
	}

	var data []byte
	var err error
	if cfg.indent != "" {
		data, err = json.MarshalIndent(out, "", cfg.indent)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func describeSource(fp FieldProvenance) string {
	if fp.SourceKey == fp.Key {
		return string(fp.Origin)
	}
	return fmt.Sprintf("%s:%s", fp.Origin, fp.SourceKey)
}

func describeBlob(b Blob) string {
	return fmt.Sprintf("<blob %s %s %d bytes>", b.Name(), b.ContentType(), b.Size())
}

// formatText formats a record value for text output.
func formatText(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", val)
	case Blob:
		return describeBlob(val)
	case []string:
		return fmt.Sprintf("[%s]", strings.Join(val, ", "))
	case []Blob:
		parts := make([]string, len(val))
		for i, b := range val {
			parts[i] = describeBlob(b)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatText(item)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatJSON replaces blobs with a descriptor object so content never leaks.
func formatJSON(v any) any {
	switch val := v.(type) {
	case Blob:
		return map[string]any{"name": val.Name(), "type": val.ContentType(), "size": val.Size()}
	case []Blob:
		out := make([]any, len(val))
		for i, b := range val {
			out[i] = formatJSON(b)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = formatJSON(item)
		}
		return out
	default:
		return val
	}
}
