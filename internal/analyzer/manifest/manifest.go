// Package manifest parses per-ecosystem build files into a common shape the
// analyzer consumes. Each parser reads one file and reports plain errors;
// the analyzer decides what is fatal.
package manifest

import (
	"sort"
	"strings"

	"codescope/internal/model"
)

// Manifest is the normalized output of parsing one build file.
type Manifest struct {
	Name         string
	Version      string
	Dependencies []model.Dependency
	Metadata     model.ProjectMetadata
}

// sortedKeys returns map keys in ascending order. Manifest formats backed by
// maps (TOML tables, JSON objects) lose their on-disk order during decoding,
// so dependency order for those formats is name order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitRequirement splits a PEP 508-style requirement ("flask>=2.0") into
// name and version specifier.
func splitRequirement(req string) (name, version string) {
	req = strings.TrimSpace(req)
	if i := strings.IndexByte(req, ';'); i >= 0 {
		req = strings.TrimSpace(req[:i])
	}
	idx := strings.IndexAny(req, "=<>!~ [")
	if idx < 0 {
		return req, "*"
	}
	name = strings.TrimSpace(req[:idx])
	version = strings.TrimSpace(req[idx:])
	if version == "" {
		version = "*"
	}
	return name, version
}
