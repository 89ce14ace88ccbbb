// Package contextfile generates and reads .codescope files: compact,
// persisted project context that an AI session can load at start instead of
// re-deriving project knowledge from scratch.
//
// The persisted record deliberately excludes pattern bodies and dev
// dependencies from rendering; observations hold the bulky one-off outputs
// and are referenced by id.
package contextfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"codescope/internal/fsutil"
	"codescope/internal/model"
)

// Filename is the fixed per-project context filename.
const Filename = ".codescope"

// schemaVersion is bumped when the persisted shape changes.
const schemaVersion = 1

// ProjectContext is the persisted artifact. Created on first analysis of a
// directory, updated in place afterwards (created_at preserved), never
// deleted by this subsystem.
type ProjectContext struct {
	Version         int          `json:"version"`
	Name            string       `json:"name"`
	ProjectType     string       `json:"project_type"`
	Framework       string       `json:"framework,omitempty"`
	Dependencies    []DepSummary `json:"dependencies"`
	Stats           FileStats    `json:"stats"`
	MatchedPatterns []PatternRef `json:"matched_patterns"`
	ObservationID   string       `json:"observation_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// DepSummary is a lightweight dependency reference.
type DepSummary struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dev     bool   `json:"dev,omitempty"`
}

// FileStats is the file count breakdown.
type FileStats struct {
	TotalFiles  int            `json:"total_files"`
	ByExtension map[string]int `json:"by_extension"`
}

// PatternRef references a matched pattern without its code body.
type PatternRef struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// FromAnalysis builds a ProjectContext from an analysis result. Dependency
// order follows the manifest; pattern order follows the matcher's ranking.
func FromAnalysis(result *model.AnalysisResult) *ProjectContext {
	project := &result.Project

	deps := make([]DepSummary, 0, len(project.Dependencies))
	for _, d := range project.Dependencies {
		deps = append(deps, DepSummary{Name: d.Name, Version: d.Version, Dev: d.DevOnly})
	}

	byExt := make(map[string]int)
	for _, f := range project.Files {
		byExt[f.Language]++
	}

	refs := make([]PatternRef, 0, len(result.Patterns))
	for _, p := range result.Patterns {
		refs = append(refs, PatternRef{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Score:    p.RelevanceScore,
		})
	}

	now := time.Now().UTC()
	return &ProjectContext{
		Version:         schemaVersion,
		Name:            project.Name,
		ProjectType:     project.ProjectType.String(),
		Framework:       project.Metadata.FrameworkLabel(),
		Dependencies:    deps,
		Stats:           FileStats{TotalFiles: len(project.Files), ByExtension: byExt},
		MatchedPatterns: refs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Save writes the context to projectDir. If a context already exists there,
// its created_at is carried forward so the first-seen timestamp survives
// repeated analyses. The write is atomic (temp file + rename).
func (c *ProjectContext) Save(projectDir string) (string, error) {
	path := filepath.Join(projectDir, Filename)

	existing, err := Load(projectDir)
	if err != nil {
		return "", err
	}
	if existing != nil {
		c.CreatedAt = existing.CreatedAt
	}
	c.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize project context: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("saved project context")
	return path, nil
}

// Load reads the context from projectDir. A missing file returns (nil, nil):
// "never analyzed" is not an error. A file that exists but cannot be parsed
// is.
func Load(projectDir string) (*ProjectContext, error) {
	path := filepath.Join(projectDir, Filename)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var ctx ProjectContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &ctx, nil
}

// FormatForClaude renders the context as deterministic Markdown. This text
// is injected verbatim into the assistant's working context: dev
// dependencies and pattern bodies are excluded to keep it small, and no
// other truncation is applied.
func (c *ProjectContext) FormatForClaude() string {
	var b strings.Builder
	b.Grow(2048)

	fmt.Fprintf(&b, "# Project: %s\n\n", c.Name)

	framework := c.Framework
	if framework == "" {
		framework = "n/a"
	}
	fmt.Fprintf(&b, "**Type:** %s | **Framework:** %s\n", c.ProjectType, framework)

	fmt.Fprintf(&b, "**Files:** %d total", c.Stats.TotalFiles)
	if len(c.Stats.ByExtension) > 0 {
		parts := make([]string, 0, len(c.Stats.ByExtension))
		for _, ext := range sortedExtensions(c.Stats.ByExtension) {
			parts = append(parts, fmt.Sprintf(".%s: %d", ext, c.Stats.ByExtension[ext]))
		}
		fmt.Fprintf(&b, " (%s)\n", strings.Join(parts, ", "))
	} else {
		b.WriteByte('\n')
	}

	var prod []DepSummary
	for _, d := range c.Dependencies {
		if !d.Dev {
			prod = append(prod, d)
		}
	}
	if len(prod) > 0 {
		fmt.Fprintf(&b, "\n## Dependencies (%d)\n\n", len(prod))
		for _, d := range prod {
			fmt.Fprintf(&b, "- %s (%s)\n", d.Name, d.Version)
		}
	}

	if len(c.MatchedPatterns) > 0 {
		fmt.Fprintf(&b, "\n## Matched Patterns (%d)\n\n", len(c.MatchedPatterns))
		for _, p := range c.MatchedPatterns {
			fmt.Fprintf(&b, "- **%s** [%s] (score: %.2f)\n", p.Title, p.Category, p.Score)
		}
	}

	if c.ObservationID != "" {
		fmt.Fprintf(&b, "\n_Full analysis archived as observation %s_\n", c.ObservationID)
	}

	fmt.Fprintf(&b, "\n---\n_Last updated: %s_\n", c.UpdatedAt.UTC().Format("2006-01-02 15:04 UTC"))

	return b.String()
}

// sortedExtensions orders the histogram by count descending, ties broken by
// extension name ascending, so rendering is stable.
func sortedExtensions(byExt map[string]int) []string {
	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if byExt[exts[i]] != byExt[exts[j]] {
			return byExt[exts[i]] > byExt[exts[j]]
		}
		return exts[i] < exts[j]
	})
	return exts
}
