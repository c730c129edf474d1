package diagnose

import "github.com/mvp-joe/abl-cortex/internal/syntax"

// maxSyntaxDiagnostics caps parser findings per document; a file with a
// broken header can otherwise error on every statement.
const maxSyntaxDiagnostics = 64

// SyntaxDiagnostics reports ERROR and MISSING nodes in pre-order, capped.
func SyntaxDiagnostics(root syntax.Node) []Diagnostic {
	var out []Diagnostic
	syntax.Walk(root, func(n syntax.Node) bool {
		if len(out) >= maxSyntaxDiagnostics {
			return false
		}
		switch {
		case n.IsError():
			out = append(out, Diagnostic{
				Range:    syntax.NodeRange(n),
				Severity: SeverityError,
				Source:   SourceSyntax,
				Message:  "Syntax error",
			})
		case n.IsMissing():
			out = append(out, Diagnostic{
				Range:    syntax.NodeRange(n),
				Severity: SeverityError,
				Source:   SourceSyntax,
				Message:  "Missing token",
			})
		}
		return true
	})
	return out
}
