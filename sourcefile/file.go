package sourcefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/formbuilder"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns an empty form).
	Required bool
}

// Source reads a form fixture file.
type Source struct {
	path string
	opts Options
}

// New creates a file-based form source.
func New(path string, opts Options) *Source {
	return &Source{
		path: path,
		opts: opts,
	}
}

// Name returns a display label for the source ("file:" plus the base name), used
// when reporting where a submission was loaded from.
func (f *Source) Name() string {
	return "file:" + filepath.Base(f.path)
}

// Load reads and parses the file into a form. Top-level keys are emitted in lexical
// order; nested maps are flattened to dot-separated keys.
func (f *Source) Load(ctx context.Context) (*formbuilder.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required form file not found: %s: %w", f.path, err)
			}
			return formbuilder.NewForm(), nil
		}
		return nil, fmt.Errorf("read form file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", f.path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", f.path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	form := formbuilder.NewForm()
	if err := appendEntries(form, "", raw); err != nil {
		return nil, fmt.Errorf("form file %s: %w", f.path, err)
	}
	return form, nil
}

// appendEntries flattens value into form entries under key.
// Lists become repeated entries; maps holding "filename" become blobs.
func appendEntries(form *formbuilder.Form, key string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		if key != "" && isBlob(v) {
			form.AppendBlob(key, toBlob(v))
			return nil
		}
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child := name
			if key != "" {
				child = key + "." + name
			}
			if err := appendEntries(form, child, v[name]); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if _, nested := item.([]any); nested {
				return fmt.Errorf("key %s: nested lists are not supported", key)
			}
			if err := appendEntries(form, key, item); err != nil {
				return err
			}
		}
	default:
		if key == "" {
			return nil
		}
		form.Append(key, scalarText(v))
	}
	return nil
}

func isBlob(m map[string]any) bool {
	_, ok := m["filename"]
	return ok
}

func toBlob(m map[string]any) *formbuilder.BytesBlob {
	blob := &formbuilder.BytesBlob{
		Filename: scalarText(m["filename"]),
		Type:     scalarText(m["content_type"]),
		Data:     []byte(scalarText(m["content"])),
	}
	if blob.Type == "" {
		blob.Type = "application/octet-stream"
	}
	return blob
}

func scalarText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
