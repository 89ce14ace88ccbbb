package languages

import (
	"github.com/smacker/go-tree-sitter/rust"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterRust(r *symbols.Registry) {
	r.Register("rust", &symbols.Spec{
		Language: rust.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"function_item": model.KindFunction,
			"struct_item":   model.KindStruct,
			"enum_item":     model.KindEnum,
			"trait_item":    model.KindTrait,
			"impl_item":     model.KindImpl,
			"mod_item":      model.KindModule,
		},
		Extensions: []string{"rs"},
	})
}
