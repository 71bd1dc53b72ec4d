package hydrate

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/hydrate/internal/normalize"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	format string // "text", "json", "yaml", or "toml"
	indent string // Indentation for JSON output (default: "  ")
}

// AsJSON outputs the instance as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "json"
	}
}

// AsYAML outputs the instance as YAML instead of text format.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "yaml"
	}
}

// AsTOML outputs the instance as TOML instead of text format.
func AsTOML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "toml"
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Dump writes a representation of a hydrated instance, built on
// ToStructuredValue. The default text format prints one "path: value" line
// per leaf with dot-separated paths, sorted for stable output.
// Returns an error if the instance is not serializable or writing fails.
func Dump(w io.Writer, target any, opts ...DumpOption) error {
	cfg := dumpConfig{
		format: "text",
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	structured, err := ToStructuredValue(target)
	if err != nil {
		return err
	}

	switch cfg.format {
	case "json":
		data, err := json.MarshalIndent(structured, "", cfg.indent)
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}
		return write(w, append(data, '\n'))
	case "yaml":
		data, err := yaml.Marshal(structured)
		if err != nil {
			return fmt.Errorf("yaml marshal error: %w", err)
		}
		return write(w, data)
	case "toml":
		data, err := toml.Marshal(structured)
		if err != nil {
			return fmt.Errorf("toml marshal error: %w", err)
		}
		return write(w, data)
	default:
		return dumpAsText(w, structured)
	}
}

// dumpAsText outputs the structured mapping as sorted "path: value" lines.
func dumpAsText(w io.Writer, structured map[string]any) error {
	var lines []string
	collectTextLines("", structured, &lines)
	sort.Strings(lines)

	for _, line := range lines {
		if err := write(w, []byte(line+"\n")); err != nil {
			return err
		}
	}
	return nil
}

// collectTextLines flattens the structured mapping into dotted-path lines.
func collectTextLines(prefix string, value any, lines *[]string) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 && prefix != "" {
			*lines = append(*lines, fmt.Sprintf("%s: {}", prefix))
			return
		}
		for key, val := range v {
			collectTextLines(normalize.ApplyPrefix(prefix, key), val, lines)
		}
	case []any:
		if len(v) == 0 {
			*lines = append(*lines, fmt.Sprintf("%s: []", prefix))
			return
		}
		for i, val := range v {
			collectTextLines(fmt.Sprintf("%s[%d]", prefix, i), val, lines)
		}
	case string:
		*lines = append(*lines, fmt.Sprintf("%s: %q", prefix, v))
	default:
		*lines = append(*lines, fmt.Sprintf("%s: %v", prefix, v))
	}
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}
