// Package analyzer turns a directory path into a normalized Project: it
// detects the ecosystem from manifest files, parses the manifest for
// dependencies and metadata, and walks the source tree extracting symbols.
//
// Failure policy is deliberately asymmetric: a manifest that cannot be read
// or parsed fails the whole call, because without it neither the project
// type nor the dependencies can be trusted. A single source file that cannot
// be read or parsed degrades to a Warning suggestion and analysis continues.
package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"codescope/internal/analyzer/manifest"
	"codescope/internal/model"
	"codescope/internal/symbols"
	"codescope/internal/symbols/languages"
)

// ecosystemExts bounds the source walk per detected ecosystem. Extensions
// without a registered grammar are still counted in file statistics; they
// just produce no symbols.
var ecosystemExts = map[model.ProjectType][]string{
	model.Rust:   {"rs"},
	model.Node:   {"js", "jsx", "mjs", "cjs", "ts", "tsx", "vue", "svelte"},
	model.Python: {"py", "pyi"},
	model.DotNet: {"cs", "razor", "cshtml"},
	model.Go:     {"go"},
	model.Java:   {"java", "kt"},
	model.Php:    {"php"},
}

// Analysis is the raw output of one Analyze call, before pattern matching.
type Analysis struct {
	Project     model.Project
	Suggestions []model.Suggestion
	Statistics  model.Statistics
}

// Analyzer detects and extracts projects. Construct one per process; it
// holds only the immutable language registry and is safe for concurrent use.
type Analyzer struct {
	registry  *symbols.Registry
	extractor *symbols.Extractor
}

// New creates an Analyzer with all supported languages registered.
func New() *Analyzer {
	reg := symbols.NewRegistry()
	languages.RegisterAll(reg)
	return &Analyzer{
		registry:  reg,
		extractor: symbols.NewExtractor(reg),
	}
}

// Analyze inspects the directory at root and returns the project model,
// advisory suggestions, and summary statistics.
func (a *Analyzer) Analyze(root string) (*Analysis, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, &PathNotFoundError{Path: root}
	}
	if err != nil {
		return nil, &FileReadError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: root}
	}

	projectType, manifestPath, err := Detect(root)
	if err != nil {
		return nil, err
	}

	mf, err := parseManifest(projectType, manifestPath)
	if err != nil {
		return nil, err
	}

	name := mf.Name
	if name == "" {
		abs, _ := filepath.Abs(root)
		name = filepath.Base(abs)
	}

	analysis := &Analysis{
		Project: model.Project{
			Path:         root,
			Name:         name,
			ProjectType:  projectType,
			Version:      mf.Version,
			Dependencies: mf.Dependencies,
			Metadata:     mf.Metadata,
		},
	}

	totalLines := a.extractFiles(root, projectType, analysis)

	if len(analysis.Project.Dependencies) == 0 {
		analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
			Severity: model.Info,
			Category: "dependencies",
			Message:  "no dependencies declared in " + filepath.Base(manifestPath),
		})
	}

	analysis.Statistics = statistics(&analysis.Project, totalLines)

	log.Debug().
		Str("path", root).
		Stringer("type", projectType).
		Int("files", len(analysis.Project.Files)).
		Int("dependencies", len(analysis.Project.Dependencies)).
		Msg("analyzed project")

	return analysis, nil
}

// extractFiles walks the source tree and fills the project's file list,
// returning the total line count. Per-file failures are reported as Warning
// suggestions, never as errors.
func (a *Analyzer) extractFiles(root string, projectType model.ProjectType, analysis *Analysis) int {
	allowed := make(map[string]bool)
	for _, ext := range ecosystemExts[projectType] {
		allowed[ext] = true
	}

	project := &analysis.Project
	totalLines := 0
	anySymbols := false

	files, errs := walk(root, allowed)
	for f := range files {
		src, err := os.ReadFile(f.Path)
		if err != nil {
			analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
				Severity: model.Warning,
				Category: "extraction",
				Message:  fmt.Sprintf("could not read file: %v", err),
				File:     f.RelPath,
			})
			project.Files = append(project.Files, model.SourceFile{
				Path: f.RelPath, Language: extOf(f.RelPath), SizeBytes: f.Size,
			})
			continue
		}
		totalLines += countLines(src)

		syms, err := a.extractor.Extract(f.RelPath, src)
		if err != nil {
			analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
				Severity: model.Warning,
				Category: "extraction",
				Message:  fmt.Sprintf("could not parse file: %v", err),
				File:     f.RelPath,
			})
			syms = nil
		}
		if len(syms) > 0 {
			anySymbols = true
		}
		project.Files = append(project.Files, model.SourceFile{
			Path:      f.RelPath,
			Language:  extOf(f.RelPath),
			SizeBytes: f.Size,
			Symbols:   syms,
		})
	}
	if err := <-errs; err != nil {
		analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
			Severity: model.Warning,
			Category: "extraction",
			Message:  fmt.Sprintf("source walk incomplete: %v", err),
		})
	}

	if len(project.Files) > 0 && !anySymbols {
		analysis.Suggestions = append(analysis.Suggestions, model.Suggestion{
			Severity: model.Info,
			Category: "extraction",
			Message:  "no symbols extracted from any source file",
		})
	}
	return totalLines
}

// parseManifest dispatches to the right per-ecosystem parser and wraps
// failures as typed errors.
func parseManifest(projectType model.ProjectType, path string) (*manifest.Manifest, error) {
	var (
		mf       *manifest.Manifest
		err      error
		fileType string
	)

	base := filepath.Base(path)
	switch projectType {
	case model.Rust:
		fileType = "Cargo.toml"
		mf, err = manifest.ParseCargo(path)
	case model.Node:
		fileType = "package.json"
		mf, err = manifest.ParseNode(path)
	case model.Python:
		switch base {
		case "pyproject.toml":
			fileType = "pyproject.toml"
			mf, err = manifest.ParsePyproject(path)
		case "setup.py":
			fileType = "setup.py"
			mf, err = manifest.ParseSetupPy(path)
		default:
			fileType = "requirements.txt"
			mf, err = manifest.ParseRequirements(path)
		}
	case model.DotNet:
		if filepath.Ext(path) == ".sln" {
			fileType = "solution"
			mf, err = manifest.ParseSln(path)
		} else {
			fileType = "csproj"
			mf, err = manifest.ParseCsproj(path)
		}
	case model.Go:
		fileType = "go.mod"
		mf, err = manifest.ParseGoMod(path)
	case model.Java:
		if base == "pom.xml" {
			fileType = "pom.xml"
			mf, err = manifest.ParsePom(path)
		} else {
			fileType = "build.gradle"
			mf, err = manifest.ParseGradle(path)
		}
	case model.Php:
		fileType = "composer.json"
		mf, err = manifest.ParseComposer(path)
	default:
		return nil, &UnsupportedTypeError{Type: projectType.String()}
	}

	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, &FileReadError{Path: path, Err: err}
		}
		return nil, &ParseError{FileType: fileType, Path: path, Err: err}
	}
	return mf, nil
}

func statistics(p *model.Project, totalLines int) model.Statistics {
	stats := model.Statistics{
		TotalFiles:       len(p.Files),
		TotalLines:       totalLines,
		FrameworkVersion: p.Metadata.FrameworkLabel(),
		PackageCount:     len(p.Dependencies),
	}
	for _, f := range p.Files {
		countSymbols(f.Symbols, &stats)
	}
	return stats
}

func countSymbols(syms []model.Symbol, stats *model.Statistics) {
	for _, s := range syms {
		switch s.Kind {
		case model.KindClass, model.KindStruct, model.KindInterface,
			model.KindTrait, model.KindEnum:
			stats.TotalClasses++
		case model.KindFunction, model.KindMethod:
			stats.TotalMethods++
		}
		countSymbols(s.Children, stats)
	}
}

func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte("\n"))
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
