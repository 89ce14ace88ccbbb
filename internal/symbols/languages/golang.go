package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"codescope/internal/model"
	"codescope/internal/symbols"
)

func RegisterGo(r *symbols.Registry) {
	r.Register("go", &symbols.Spec{
		Language: golang.GetLanguage(),
		Kinds: map[string]model.SymbolKind{
			"function_declaration": model.KindFunction,
			"method_declaration":   model.KindMethod,
			"type_spec":            model.KindStruct,
		},
		// A type_spec covers structs, interfaces, and aliases alike; the
		// underlying type node tells them apart.
		Refine: func(n *sitter.Node, src []byte, kind model.SymbolKind) model.SymbolKind {
			if n.Type() != "type_spec" {
				return kind
			}
			switch t := n.ChildByFieldName("type"); {
			case t == nil:
				return kind
			case t.Type() == "struct_type":
				return model.KindStruct
			case t.Type() == "interface_type":
				return model.KindInterface
			default:
				return model.SymbolKind("type")
			}
		},
		Extensions: []string{"go"},
	})
}
