package languages

import (
	"github.com/smacker/go-tree-sitter/php"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterPHP(r *symbols.Registry) {
	r.Register("php", &symbols.Spec{
		Language: php.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"class_declaration":     model.KindClass,
			"interface_declaration": model.KindInterface,
			"trait_declaration":     model.KindTrait,
			"enum_declaration":      model.KindEnum,
			"function_definition":   model.KindFunction,
			"method_declaration":    model.KindMethod,
		},
		Extensions: []string{"php"},
	})
}
