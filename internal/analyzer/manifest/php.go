package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"codescope/internal/model"
)

type composerJSON struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

// ParseComposer reads a composer.json. The "php" entry is a runtime
// constraint, not a dependency, and lands in metadata instead.
func ParseComposer(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c composerJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	m := &Manifest{Name: c.Name, Version: c.Version}
	for _, name := range sortedKeys(c.Require) {
		if name == "php" {
			m.Metadata.Extra = map[string]string{"php_version": c.Require[name]}
			continue
		}
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name: name, Version: c.Require[name],
		})
	}
	for _, name := range sortedKeys(c.RequireDev) {
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name: name, Version: c.RequireDev[name], DevOnly: true,
		})
	}
	return m, nil
}
