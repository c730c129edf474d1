package diagnose

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CheckTypes reports type-family conflicts in assignments and call arguments.
// Only bindings declared in the document itself participate; include-declared
// variables have no position in document coordinates.
func CheckTypes(root syntax.Node, src []byte, t *Tables) []Diagnostic {
	bindings := analysis.TypedBindings(root, src)

	var out []Diagnostic
	out = append(out, checkAssignments(root, src, bindings, t)...)
	out = append(out, checkCallArguments(root, src, bindings, t)...)
	return out
}

func checkAssignments(root syntax.Node, src []byte, bindings []analysis.TypedBinding, t *Tables) []Diagnostic {
	var out []Diagnostic
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() != "assignment_statement" {
			return true
		}
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left == nil || right == nil || left.Kind() != "identifier" {
			return true
		}

		leftName := strings.ToUpper(strings.TrimSpace(syntax.Text(left, src)))
		leftType, ok := analysis.ResolveBindingType(bindings, leftName, left.StartByte())
		if !ok {
			return true
		}
		rightType, ok := analysis.InferExprType(right, src, bindings, t.Returns)
		if !ok || rightType == leftType {
			return true
		}

		out = append(out, Diagnostic{
			Range:    syntax.NodeRange(right),
			Severity: SeverityError,
			Source:   SourceSemantic,
			Message: fmt.Sprintf("Type mismatch: cannot assign %s to %s variable '%s'",
				rightType.Label(), leftType.Label(), leftName),
		})
		return true
	})
	return out
}

// checkCallArguments validates each argument against the type every
// same-arity declaration of the callee agrees on. Overloads that disagree on
// a position, or leave it untyped, silence that position.
func checkCallArguments(root syntax.Node, src []byte, bindings []analysis.TypedBinding, t *Tables) []Diagnostic {
	var out []Diagnostic
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() != "function_call" {
			return true
		}
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return true
		}
		displayName := strings.TrimSpace(syntax.Text(fn, src))
		if displayName == "" || strings.ContainsAny(displayName, ".:") {
			return true
		}
		sigs := t.Signatures[analysis.NormalizeFunctionName(displayName)]
		if len(sigs) == 0 {
			return true
		}

		args := analysis.ArgumentExprs(n)
		var sameArity []analysis.TypeSignature
		for _, sig := range sigs {
			if len(sig.ParamTypes) == len(args) {
				sameArity = append(sameArity, sig)
			}
		}
		if len(sameArity) == 0 {
			return true
		}

		for i, arg := range args {
			expected, ok := analysis.UnifyExpectedParamType(sameArity, i)
			if !ok {
				continue
			}
			actual, ok := analysis.InferExprType(arg, src, bindings, t.Returns)
			if !ok || actual == expected {
				continue
			}
			out = append(out, Diagnostic{
				Range:    syntax.NodeRange(arg),
				Severity: SeverityError,
				Source:   SourceSemantic,
				Message: fmt.Sprintf("Function '%s' argument %d expects %s, got %s",
					displayName, i+1, expected.Label(), actual.Label()),
			})
		}
		return true
	})
	return out
}
