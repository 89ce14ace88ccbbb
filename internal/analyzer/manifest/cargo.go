package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"codescope/internal/model"
)

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Edition string `toml:"edition"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// ParseCargo reads a Cargo.toml.
func ParseCargo(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf cargoFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	m := &Manifest{
		Name:    cf.Package.Name,
		Version: cf.Package.Version,
		Metadata: model.ProjectMetadata{
			RustEdition:  cf.Package.Edition,
			BuildCommand: "cargo build",
		},
	}
	m.Dependencies = append(m.Dependencies, tomlDeps(cf.Dependencies, false)...)
	m.Dependencies = append(m.Dependencies, tomlDeps(cf.DevDependencies, true)...)
	return m, nil
}

// tomlDeps converts a Cargo dependency table. Entries are either a bare
// version string or an inline table with a version key.
func tomlDeps(table map[string]any, dev bool) []model.Dependency {
	var deps []model.Dependency
	for _, name := range sortedKeys(table) {
		version := "*"
		switch v := table[name].(type) {
		case string:
			version = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				version = s
			}
		}
		deps = append(deps, model.Dependency{Name: name, Version: version, DevOnly: dev})
	}
	return deps
}
