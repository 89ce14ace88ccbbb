package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"codescope/internal/model"
)

// ParseGoMod reads a go.mod. Only direct requirements are reported; indirect
// ones say nothing about what the project actually uses.
func ParseGoMod(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse modfile: %w", err)
	}

	name := ""
	if mf.Module != nil {
		name = filepath.Base(mf.Module.Mod.Path)
	}

	m := &Manifest{
		Name: name,
		Metadata: model.ProjectMetadata{
			BuildCommand: "go build ./...",
		},
	}
	if mf.Go != nil {
		m.Metadata.Extra = map[string]string{"go_version": mf.Go.Version}
	}
	for _, req := range mf.Require {
		if req.Indirect {
			continue
		}
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name: req.Mod.Path, Version: req.Mod.Version,
		})
	}
	return m, nil
}
