// Package languages registers tree-sitter grammars for every ecosystem the
// analyzer detects.
package languages

import "codescope/internal/symbols"

// RegisterAll registers every supported language on the registry.
func RegisterAll(r *symbols.Registry) {
	RegisterGo(r)
	RegisterRust(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterPython(r)
	RegisterCSharp(r)
	RegisterJava(r)
	RegisterPHP(r)
}
