package languages

import (
	"github.com/smacker/go-tree-sitter/javascript"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterJavaScript(r *symbols.Registry) {
	r.Register("javascript", &symbols.Spec{
		Language: javascript.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"function_declaration":           model.KindFunction,
			"generator_function_declaration": model.KindFunction,
			"class_declaration":              model.KindClass,
			"method_definition":              model.KindMethod,
		},
		Extensions: []string{"js", "jsx", "mjs", "cjs"},
	})
}
