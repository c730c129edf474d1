// Package diagnose produces document diagnostics: parser errors, call arity
// mismatches, unknown symbols and basic type conflicts. Semantic checks work
// over a document plus its transitive include closure so symbols defined by
// includes never flag.
package diagnose

import "github.com/mvp-joe/abl-cortex/internal/syntax"

// Severity levels follow the LSP numbering; every check here reports errors.
const (
	SeverityError = 1
)

// Diagnostic sources name the producing layer.
const (
	SourceSyntax   = "tree-sitter"
	SourceSemantic = "abl-semantic"
)

// Diagnostic is one finding in a document.
type Diagnostic struct {
	Range    syntax.Range
	Severity int
	Source   string
	Message  string
}
