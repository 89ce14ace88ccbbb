// Package symbols extracts a structural symbol tree from source files using
// tree-sitter grammars. Extraction is best-effort: it names what the parse
// tree shows and never resolves types or imports.
package symbols

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"codescope/internal/model"
)

// Spec defines how one language's parse tree maps onto the symbol model.
type Spec struct {
	Language *sitter.Language
	// Kinds maps tree-sitter node types to symbol kinds. Nodes not listed
	// are transparent: extraction descends into them without emitting.
	Kinds map[string]model.SymbolKind
	// Refine optionally adjusts the kind once the node is in hand, e.g. to
	// tell a Go struct type_spec apart from an interface one.
	Refine     func(n *sitter.Node, src []byte, kind model.SymbolKind) model.SymbolKind
	Extensions []string
}

// Registry maps file extensions to language specs.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec // extension (without dot) → spec
	langs map[string]*Spec // language name → spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]*Spec),
		langs: make(map[string]*Spec),
	}
}

// Register adds a language spec under the given name.
func (r *Registry) Register(name string, spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.langs[name] = spec
	for _, ext := range spec.Extensions {
		r.specs[ext] = spec
	}
}

// Lookup returns the spec for a file path based on its extension, or nil.
func (r *Registry) Lookup(path string) *Spec {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.specs[ext]
}

// Extensions returns the set of all registered file extensions (without dot).
func (r *Registry) Extensions() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make(map[string]bool, len(r.specs))
	for ext := range r.specs {
		exts[ext] = true
	}
	return exts
}
