// Package model holds the shared value types produced and consumed by the
// analyzer, the pattern store, and the context synthesizer. None of these
// types carry behavior beyond formatting; they are built once per analysis
// call and never mutated afterwards.
package model

import "time"

// ProjectType identifies the ecosystem a project belongs to, detected from
// its manifest file.
type ProjectType string

const (
	DotNet  ProjectType = "dotnet"
	Rust    ProjectType = "rust"
	Node    ProjectType = "node"
	Python  ProjectType = "python"
	Go      ProjectType = "go"
	Java    ProjectType = "java"
	Php     ProjectType = "php"
	Unknown ProjectType = "unknown"
)

func (t ProjectType) String() string {
	if t == "" {
		return string(Unknown)
	}
	return string(t)
}

// Project is the normalized result of analyzing a directory. It is owned by
// the analysis call that built it.
type Project struct {
	Path         string          `json:"path"`
	Name         string          `json:"name"`
	ProjectType  ProjectType     `json:"project_type"`
	Version      string          `json:"version,omitempty"`
	Dependencies []Dependency    `json:"dependencies"`
	Files        []SourceFile    `json:"files"`
	Metadata     ProjectMetadata `json:"metadata"`
}

// Dependency is a single entry from a project manifest. Order follows the
// manifest so rendering stays deterministic.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	DevOnly bool   `json:"dev_only,omitempty"`
}

// SourceFile is one discovered source file with its extracted symbols.
type SourceFile struct {
	Path      string   `json:"path"`
	Language  string   `json:"language"`
	SizeBytes int64    `json:"size_bytes"`
	Symbols   []Symbol `json:"symbols,omitempty"`
}

// Symbol is a structural code element. Children form an owned tree — methods
// under their type, nested definitions under their parent.
type Symbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	Modifiers []string   `json:"modifiers,omitempty"`
	Children  []Symbol   `json:"children,omitempty"`
}

// SymbolKind names what a symbol is. The well-known kinds are listed below;
// any other string is an ecosystem-specific kind passed through as-is.
type SymbolKind string

const (
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindProperty  SymbolKind = "property"
	KindField     SymbolKind = "field"
	KindEnum      SymbolKind = "enum"
	KindStruct    SymbolKind = "struct"
	KindModule    SymbolKind = "module"
	KindTrait     SymbolKind = "trait"
	KindImpl      SymbolKind = "impl"
	KindComponent SymbolKind = "component"
)

func (k SymbolKind) String() string { return string(k) }

// ProjectMetadata carries ecosystem-specific fields. At most one framework
// version concept is authoritative per project type; the synthesizer picks
// one by priority order.
type ProjectMetadata struct {
	TargetFramework string            `json:"target_framework,omitempty"`
	NodeVersion     string            `json:"node_version,omitempty"`
	PythonVersion   string            `json:"python_version,omitempty"`
	RustEdition     string            `json:"rust_edition,omitempty"`
	EntryPoint      string            `json:"entry_point,omitempty"`
	BuildCommand    string            `json:"build_command,omitempty"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// FrameworkLabel resolves the single framework display label. The fields are
// tried in a fixed priority order and the first non-empty one wins; this is
// a priority choice, not a merge.
func (m ProjectMetadata) FrameworkLabel() string {
	for _, candidate := range []string{
		m.TargetFramework,
		m.RustEdition,
		m.NodeVersion,
		m.PythonVersion,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// CodePattern is a stored, reusable code example with ranking metadata.
// Identity is ID; mutation goes through the training store only.
type CodePattern struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Framework      string    `json:"framework"`
	Version        string    `json:"version"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Code           string    `json:"code"`
	Tags           []string  `json:"tags"`
	UsageCount     int       `json:"usage_count"`
	RelevanceScore float64   `json:"relevance_score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AnalysisResult bundles everything one analysis call produced. It feeds the
// context synthesizer and is never persisted directly.
type AnalysisResult struct {
	Project     Project       `json:"project"`
	Patterns    []CodePattern `json:"patterns"`
	Suggestions []Suggestion  `json:"suggestions"`
	Statistics  Statistics    `json:"statistics"`
}

// Suggestion is an advisory finding attached to an analysis.
type Suggestion struct {
	Severity SeverityLevel `json:"severity"`
	Category string        `json:"category"`
	Message  string        `json:"message"`
	File     string        `json:"file,omitempty"`
	Line     int           `json:"line,omitempty"`
}

// SeverityLevel orders suggestions: Info < Warning < Error.
type SeverityLevel int

const (
	Info SeverityLevel = iota
	Warning
	Error
)

func (s SeverityLevel) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// MarshalText makes SeverityLevel render as its name in JSON.
func (s SeverityLevel) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *SeverityLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		*s = Info
	}
	return nil
}

// Statistics summarizes an analyzed project.
type Statistics struct {
	TotalFiles       int    `json:"total_files"`
	TotalClasses     int    `json:"total_classes"`
	TotalMethods     int    `json:"total_methods"`
	TotalLines       int    `json:"total_lines"`
	FrameworkVersion string `json:"framework_version,omitempty"`
	PackageCount     int    `json:"package_count"`
}
