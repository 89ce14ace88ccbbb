package manifest

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"codescope/internal/model"
)

type pomFile struct {
	XMLName      xml.Name `xml:"project"`
	ArtifactID   string   `xml:"artifactId"`
	Version      string   `xml:"version"`
	Dependencies struct {
		Dependency []struct {
			GroupID    string `xml:"groupId"`
			ArtifactID string `xml:"artifactId"`
			Version    string `xml:"version"`
			Scope      string `xml:"scope"`
		} `xml:"dependency"`
	} `xml:"dependencies"`
}

// ParsePom reads a Maven pom.xml. Dependencies keep document order;
// test-scoped entries are flagged dev-only.
func ParsePom(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pom pomFile
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	m := &Manifest{
		Name:    pom.ArtifactID,
		Version: pom.Version,
		Metadata: model.ProjectMetadata{
			BuildCommand: "mvn package",
		},
	}
	for _, d := range pom.Dependencies.Dependency {
		version := d.Version
		if version == "" {
			version = "*"
		}
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name:    d.GroupID + ":" + d.ArtifactID,
			Version: version,
			DevOnly: d.Scope == "test",
		})
	}
	return m, nil
}

// gradleDepRe matches the common single-line dependency notations:
//
//	implementation 'group:artifact:version'
//	testImplementation("group:artifact:version")
var gradleDepRe = regexp.MustCompile(
	`^\s*(implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly)\s*[(\s]['"]([^'":]+):([^'":]+):([^'"]+)['"]`)

// ParseGradle scans a build.gradle line by line. Gradle builds are programs,
// so this only catches literal dependency declarations.
func ParseGradle(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{
		Name: filepath.Base(filepath.Dir(path)),
		Metadata: model.ProjectMetadata{
			BuildCommand: "gradle build",
		},
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		match := gradleDepRe.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		m.Dependencies = append(m.Dependencies, model.Dependency{
			Name:    match[2] + ":" + match[3],
			Version: match[4],
			DevOnly: strings.HasPrefix(match[1], "test"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return m, nil
}
