package languages

import (
	"github.com/smacker/go-tree-sitter/java"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterJava(r *symbols.Registry) {
	r.Register("java", &symbols.Spec{
		Language: java.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"class_declaration":     model.KindClass,
			"interface_declaration": model.KindInterface,
			"enum_declaration":      model.KindEnum,
			"record_declaration":    model.KindClass,
			"method_declaration":    model.KindMethod,
			"field_declaration":     model.KindField,
		},
		Extensions: []string{"java"},
	})
}
