package cli

import (
	"fmt"
	"plugin"
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/syntax/treesitter"
)

// loadGrammar opens a Go plugin that exports the tree-sitter grammar as
//
//	func Language() unsafe.Pointer
//
// and wraps it into a parser. Shipping the grammar as a plugin keeps the
// cgo-heavy grammar build out of this binary.
func loadGrammar(path string) (syntax.Parser, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plugin %s: %w", path, err)
	}

	sym, err := plug.Lookup("Language")
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", path, err)
	}
	languageFn, ok := sym.(func() unsafe.Pointer)
	if !ok {
		return nil, fmt.Errorf("plugin %s: Language has type %T, want func() unsafe.Pointer", path, sym)
	}

	language := sitter.NewLanguage(languageFn())
	if language == nil {
		return nil, fmt.Errorf("plugin %s: Language returned nil", path)
	}
	return treesitter.NewParser(language), nil
}
