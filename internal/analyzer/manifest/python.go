package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"codescope/internal/model"
)

type pyprojectFile struct {
	Project struct {
		Name           string   `toml:"name"`
		Version        string   `toml:"version"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Version      string         `toml:"version"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ParsePyproject reads a pyproject.toml, supporting both PEP 621 [project]
// tables and the legacy [tool.poetry] layout.
func ParsePyproject(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf pyprojectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	m := &Manifest{
		Name:    pf.Project.Name,
		Version: pf.Project.Version,
		Metadata: model.ProjectMetadata{
			PythonVersion: pf.Project.RequiresPython,
		},
	}
	for _, req := range pf.Project.Dependencies {
		name, version := splitRequirement(req)
		m.Dependencies = append(m.Dependencies, model.Dependency{Name: name, Version: version})
	}

	// Poetry fallback when no PEP 621 table is present.
	if m.Name == "" && pf.Tool.Poetry.Name != "" {
		m.Name = pf.Tool.Poetry.Name
		m.Version = pf.Tool.Poetry.Version
		for _, name := range sortedKeys(pf.Tool.Poetry.Dependencies) {
			version := "*"
			switch v := pf.Tool.Poetry.Dependencies[name].(type) {
			case string:
				version = v
			case map[string]any:
				if s, ok := v["version"].(string); ok {
					version = s
				}
			}
			if name == "python" {
				m.Metadata.PythonVersion = version
				continue
			}
			m.Dependencies = append(m.Dependencies, model.Dependency{Name: name, Version: version})
		}
	}
	return m, nil
}

// ParseRequirements reads a requirements.txt, preserving file order.
func ParseRequirements(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{Name: filepath.Base(filepath.Dir(path))}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		m.Dependencies = append(m.Dependencies, model.Dependency{Name: name, Version: version})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return m, nil
}

// ParseSetupPy handles bare setup.py projects. The file is executable Python,
// so only the project name (from the directory) is recoverable structurally.
func ParseSetupPy(path string) (*Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &Manifest{Name: filepath.Base(filepath.Dir(path))}, nil
}
