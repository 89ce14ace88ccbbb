package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	"codescope/internal/model"
)

// marker associates an ecosystem with the manifest files that identify it.
// Glob entries (*.csproj, *.sln) are matched against directory entries.
type marker struct {
	projectType model.ProjectType
	files       []string
}

// markers is the detection table. Order matters: the first ecosystem whose
// marker is present wins.
var markers = []marker{
	{model.Rust, []string{"Cargo.toml"}},
	{model.Node, []string{"package.json"}},
	{model.Python, []string{"pyproject.toml", "setup.py", "requirements.txt"}},
	{model.DotNet, []string{"*.csproj", "*.sln"}},
	{model.Go, []string{"go.mod"}},
	{model.Java, []string{"pom.xml", "build.gradle"}},
	{model.Php, []string{"composer.json"}},
}

// Detect scans the project root for ecosystem marker files and returns the
// detected type together with the manifest path that triggered the match.
// Returns NoProjectFileError when nothing matches; Detect never reports
// model.Unknown.
func Detect(root string) (model.ProjectType, string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return model.Unknown, "", &FileReadError{Path: root, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	for _, m := range markers {
		for _, want := range m.files {
			if found := matchEntry(names, want); found != "" {
				return m.projectType, filepath.Join(root, found), nil
			}
		}
	}

	return model.Unknown, "", &NoProjectFileError{Path: root, Expected: expectedMarkers()}
}

func matchEntry(names []string, pattern string) string {
	for _, name := range names {
		if strings.ContainsRune(pattern, '*') {
			if ok, _ := filepath.Match(pattern, name); ok {
				return name
			}
		} else if name == pattern {
			return name
		}
	}
	return ""
}

func expectedMarkers() []string {
	var out []string
	for _, m := range markers {
		out = append(out, m.files...)
	}
	return out
}
