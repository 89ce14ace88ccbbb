package languages

import (
	"github.com/smacker/go-tree-sitter/python"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterPython(r *symbols.Registry) {
	r.Register("python", &symbols.Spec{
		Language: python.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"function_definition": model.KindFunction,
			"class_definition":    model.KindClass,
		},
		Extensions: []string{"py", "pyi"},
	})
}
