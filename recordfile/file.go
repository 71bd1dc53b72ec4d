package recordfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/hydrate"
)

// Options configures record loading behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns an empty record).
	Required bool
}

// Load reads and parses a record file, returning its contents as a nested
// Record ready for hydration.
func Load(path string, opts Options) (hydrate.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.Required {
				return nil, fmt.Errorf("required record file not found: %s: %w", path, err)
			}
			return hydrate.Record{}, nil
		}
		return nil, fmt.Errorf("read record file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}

	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", path, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported record format: %s (supported: yaml, json, toml)", format)
	}

	return normalizeRecord(raw), nil
}

// normalizeRecord converts decoder output into a Record, rewriting
// map[any]any mappings (legacy YAML) and recursing into sequences.
func normalizeRecord(raw map[string]any) hydrate.Record {
	rec := make(hydrate.Record, len(raw))
	for key, value := range raw {
		rec[key] = normalizeValue(value)
	}
	return rec
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeRecord(v)
	case map[any]any:
		rec := make(hydrate.Record, len(v))
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				continue
			}
			rec[keyStr] = normalizeValue(val)
		}
		return rec
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return value
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
