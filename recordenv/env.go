package recordenv

import (
	"os"
	"strings"

	"github.com/Azhovan/hydrate"
	"github.com/Azhovan/hydrate/internal/normalize"
)

// Options configures environment record building.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (APP_ matches app_, App_, etc.).
	// When true, prefix must match exactly.
	// Keys are always normalized to lowercase after prefix stripping.
	CaseSensitive bool
}

// Load scans environment variables, filters by prefix, and builds a nested
// record. Double underscores separate nesting levels.
func Load(opts Options) hydrate.Record {
	rec := hydrate.Record{}

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := parts[1]

		if opts.Prefix != "" {
			var hasPrefix bool
			if opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(opts.Prefix):]
		}

		if key == "" {
			continue
		}

		// Normalize: GDPR__EMAIL → gdpr.email, then split into nesting
		insert(rec, normalize.ToLowerDotPath(key), value)
	}

	return rec
}

// insert places value at a dot-separated path, creating nested records
// along the way. Intermediate scalars are replaced by records.
func insert(rec hydrate.Record, path, value string) {
	segments := strings.Split(path, ".")
	for _, segment := range segments[:len(segments)-1] {
		child, ok := rec[segment].(hydrate.Record)
		if !ok {
			child = hydrate.Record{}
			rec[segment] = child
		}
		rec = child
	}
	rec[segments[len(segments)-1]] = value
}
