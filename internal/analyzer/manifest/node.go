package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"codescope/internal/model"
)

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main"`
	Engines         map[string]string `json:"engines"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ParseNode reads a package.json.
func ParseNode(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	m := &Manifest{
		Name:    pkg.Name,
		Version: pkg.Version,
		Metadata: model.ProjectMetadata{
			NodeVersion: pkg.Engines["node"],
			EntryPoint:  pkg.Main,
		},
	}
	if _, ok := pkg.Scripts["build"]; ok {
		m.Metadata.BuildCommand = "npm run build"
	}
	for _, name := range sortedKeys(pkg.Dependencies) {
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name: name, Version: pkg.Dependencies[name],
		})
	}
	for _, name := range sortedKeys(pkg.DevDependencies) {
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name: name, Version: pkg.DevDependencies[name], DevOnly: true,
		})
	}
	return m, nil
}
