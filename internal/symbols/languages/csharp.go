package languages

import (
	"github.com/smacker/go-tree-sitter/csharp"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterCSharp(r *symbols.Registry) {
	r.Register("csharp", &symbols.Spec{
		Language: csharp.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"class_declaration":     model.KindClass,
			"record_declaration":    model.KindClass,
			"interface_declaration": model.KindInterface,
			"struct_declaration":    model.KindStruct,
			"enum_declaration":      model.KindEnum,
			"method_declaration":    model.KindMethod,
			"property_declaration":  model.KindProperty,
			"field_declaration":     model.KindField,
			"namespace_declaration": model.KindModule,
		},
		Extensions: []string{"cs"},
	})
}
