package symbols

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"codescope/internal/model"
)

// Extractor parses source files and builds symbol trees.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an extractor backed by the given registry.
func NewExtractor(r *Registry) *Extractor {
	return &Extractor{registry: r}
}

// Extract parses src and returns the symbol tree. If no grammar is
// registered for the file's extension it returns nil, nil — the file is
// still counted, just without symbols.
func (e *Extractor) Extract(path string, src []byte) ([]model.Symbol, error) {
	spec := e.registry.Lookup(path)
	if spec == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.Language)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	return collect(tree.RootNode(), src, spec, false), nil
}

// containerKinds are symbol kinds whose nested functions become methods.
var containerKinds = map[model.SymbolKind]bool{
	model.KindClass:     true,
	model.KindStruct:    true,
	model.KindInterface: true,
	model.KindTrait:     true,
	model.KindImpl:      true,
	model.KindComponent: true,
}

// collect walks the parse tree, emitting a symbol for every node whose type
// is mapped in the spec and descending through everything else. Definitions
// nested inside a mapped node become its children.
func collect(n *sitter.Node, src []byte, spec *Spec, inContainer bool) []model.Symbol {
	var out []model.Symbol
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		kind, ok := spec.Kinds[child.Type()]
		if !ok {
			out = append(out, collect(child, src, spec, inContainer)...)
			continue
		}
		if spec.Refine != nil {
			kind = spec.Refine(child, src, kind)
		}
		if inContainer && kind == model.KindFunction {
			kind = model.KindMethod
		}

		sym := model.Symbol{
			Name:      nameOf(child, src),
			Kind:      kind,
			Modifiers: modifiersOf(child, src),
		}
		sym.Children = collect(child, src, spec, containerKinds[kind])
		out = append(out, sym)
	}
	return out
}

// nameOf finds the identifier for a definition node. Most grammars expose a
// "name" field; Rust impl blocks use "type". As a last resort the first
// identifier-ish named child is taken.
func nameOf(n *sitter.Node, src []byte) string {
	if f := n.ChildByFieldName("name"); f != nil {
		return f.Content(src)
	}
	if f := n.ChildByFieldName("type"); f != nil {
		return f.Content(src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if strings.Contains(child.Type(), "identifier") {
			return child.Content(src)
		}
	}
	return ""
}

// modifierNodeTypes are node types whose content is treated as modifiers.
var modifierNodeTypes = map[string]bool{
	"visibility_modifier": true, // rust pub, php public/private
	"mutable_specifier":   true,
	"modifiers":           true, // java, c#
	"modifier":            true,
	"accessibility_modifier": true, // typescript
}

func modifiersOf(n *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if modifierNodeTypes[child.Type()] {
			mods = append(mods, strings.Fields(child.Content(src))...)
		}
	}
	// Exported ES definitions sit under an export_statement wrapper.
	if p := n.Parent(); p != nil && p.Type() == "export_statement" {
		mods = append(mods, "export")
	}
	return mods
}
