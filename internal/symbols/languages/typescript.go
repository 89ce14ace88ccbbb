package languages

import (
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterTypeScript(r *symbols.Registry) {
	r.Register("typescript", &symbols.Spec{
		Language: typescript.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"function_declaration":   model.KindFunction,
			"class_declaration":      model.KindClass,
			"method_definition":      model.KindMethod,
			"interface_declaration":  model.KindInterface,
			"enum_declaration":       model.KindEnum,
			"type_alias_declaration": model.SymbolKind("type"),
			"internal_module":        model.KindModule,
		},
		Extensions: []string{"ts", "tsx"},
	})
}
