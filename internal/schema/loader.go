package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Loader resolves the ordered feature list a model expects. Resolution is
// two-tier: read the named JSON artifact if present, otherwise fall back to
// the compiled-in default order. Load never fails; a missing or unreadable
// artifact only degrades to the fallback.
type Loader struct {
	path string
	log  zerolog.Logger
}

// NewLoader returns a Loader reading from path. An empty path skips the
// file tier entirely.
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{path: path, log: log}
}

// Load returns the feature column order, preserving the artifact's order
// verbatim when the file tier succeeds.
func (l *Loader) Load() []string {
	if l.path == "" {
		return DefaultOrder()
	}
	names, err := readFeatureFile(l.path)
	if err != nil {
		l.log.Warn().Err(err).Str("path", l.path).
			Msg("feature schema artifact unavailable, using compiled-in fallback")
		return DefaultOrder()
	}
	return names
}

// readFeatureFile parses a JSON array of feature names.
func readFeatureFile(path string) ([]string, error) {
	p, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, fmt.Errorf("parse feature list: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("feature list is empty")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("feature list contains an empty name")
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("duplicate feature name: %s", n)
		}
		seen[n] = struct{}{}
	}
	return names, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
