package analysis

import (
	"sort"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// IdentifierRef is a value-position identifier considered by the
// unknown-variable check.
type IdentifierRef struct {
	NameUpper   string
	DisplayName string
	Range       syntax.Range
}

// IdentifierRefs collects value references: assignment left sides, assignment
// and return expressions, and bare expression statements. Preprocessor
// references, include references, qualified names and constructor type names
// are not value references and are skipped.
func IdentifierRefs(root syntax.Node, src []byte) []IdentifierRef {
	var out []IdentifierRef
	collectIdentifierRefs(root, src, &out)
	return out
}

func collectIdentifierRefs(node syntax.Node, src []byte, out *[]IdentifierRef) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "assignment_statement":
		if left := node.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
			pushIdentifierRef(left, src, out)
		}
		if right := node.ChildByFieldName("right"); right != nil {
			collectRefsFromExpression(right, src, out)
		}
	case "return_statement":
		value := node.ChildByFieldName("value")
		if value == nil {
			value = node.NamedChild(0)
		}
		if value != nil {
			collectRefsFromExpression(value, src, out)
		}
	case "expression_statement":
		if expr := node.NamedChild(0); expr != nil {
			collectRefsFromExpression(expr, src, out)
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		collectIdentifierRefs(node.Child(i), src, out)
	}
}

func collectRefsFromExpression(expr syntax.Node, src []byte, out *[]IdentifierRef) {
	if expr == nil {
		return
	}
	switch expr.Kind() {
	case "preprocessor_reference", "preprocessor_directive", "macro_concatenated_name",
		"include_file_reference",
		"qualified_name", "widget_qualified_name", "scoped_name", "object_access":
		return
	case "identifier":
		pushIdentifierRef(expr, src, out)
		return
	case "function_call", "new_expression":
		// Only the argument expressions are value references; the callee
		// name is checked by the unknown-function pass and a NEW type name
		// is not a variable.
		if args := syntax.DirectChildByKind(expr, "arguments"); args != nil {
			for _, arg := range argumentExprs(args) {
				collectRefsFromExpression(arg, src, out)
			}
		}
		return
	}

	for i := 0; i < expr.ChildCount(); i++ {
		collectRefsFromExpression(expr.Child(i), src, out)
	}
}

func pushIdentifierRef(node syntax.Node, src []byte, out *[]IdentifierRef) {
	displayName := strings.TrimSpace(syntax.Text(node, src))
	if displayName == "" {
		return
	}
	*out = append(*out, IdentifierRef{
		NameUpper:   strings.ToUpper(displayName),
		DisplayName: displayName,
		Range:       syntax.NodeRange(node),
	})
}

// NormalizeIdentifierRefs sorts refs by position then name and drops
// duplicates at the same position.
func NormalizeIdentifierRefs(refs []IdentifierRef) []IdentifierRef {
	sort.SliceStable(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if a.Range.Start.Row != b.Range.Start.Row {
			return a.Range.Start.Row < b.Range.Start.Row
		}
		if a.Range.Start.Column != b.Range.Start.Column {
			return a.Range.Start.Column < b.Range.Start.Column
		}
		return a.NameUpper < b.NameUpper
	})
	out := refs[:0]
	for _, r := range refs {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.NameUpper == r.NameUpper && prev.Range == r.Range {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
