package manifest

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codescope/internal/model"
)

type csprojFile struct {
	XMLName        xml.Name `xml:"Project"`
	PropertyGroups []struct {
		TargetFramework  string `xml:"TargetFramework"`
		TargetFrameworks string `xml:"TargetFrameworks"`
		Version          string `xml:"Version"`
	} `xml:"PropertyGroup"`
	ItemGroups []struct {
		PackageReferences []struct {
			Include string `xml:"Include,attr"`
			Version string `xml:"Version,attr"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// ParseCsproj reads a .csproj project file. PackageReference order follows
// the document.
func ParseCsproj(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cp csprojFile
	if err := xml.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	m := &Manifest{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Metadata: model.ProjectMetadata{
			BuildCommand: "dotnet build",
		},
	}
	for _, pg := range cp.PropertyGroups {
		if m.Metadata.TargetFramework == "" {
			m.Metadata.TargetFramework = pg.TargetFramework
		}
		if m.Metadata.TargetFramework == "" {
			m.Metadata.TargetFramework = pg.TargetFrameworks
		}
		if m.Version == "" {
			m.Version = pg.Version
		}
	}
	for _, ig := range cp.ItemGroups {
		for _, ref := range ig.PackageReferences {
			if ref.Include == "" {
				continue
			}
			version := ref.Version
			if version == "" {
				version = "*"
			}
			m.Dependencies = append(m.Dependencies, model.Dependency{
				Name: ref.Include, Version: version,
			})
		}
	}
	return m, nil
}

// ParseSln resolves a .sln marker by parsing the first .csproj it references,
// falling back to any .csproj next to the solution.
func ParseSln(path string) (*Manifest, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "Project(") {
			continue
		}
		// Project("{...}") = "Name", "rel\path\Name.csproj", "{...}"
		parts := strings.Split(line, "\"")
		for _, p := range parts {
			if strings.HasSuffix(p, ".csproj") {
				csproj := filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(p, `\`, "/")))
				if _, err := os.Stat(csproj); err == nil {
					return ParseCsproj(csproj)
				}
			}
		}
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.csproj"))
	if len(matches) > 0 {
		return ParseCsproj(matches[0])
	}
	return nil, fmt.Errorf("solution references no existing .csproj")
}
