package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CallSite is a function invocation with its argument count. Nested calls
// inside an argument count as a single argument.
type CallSite struct {
	DisplayName string
	NameUpper   string
	ArgCount    int
	Range       syntax.Range
}

// CallSites collects function_call nodes in pre-order.
func CallSites(root syntax.Node, src []byte) []CallSite {
	var out []CallSite
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() != "function_call" {
			return true
		}
		fn := n.ChildByFieldName("function")
		displayName := strings.TrimSpace(syntax.Text(fn, src))
		if displayName == "" {
			return true
		}
		argCount := 0
		if args := syntax.DirectChildByKind(n, "arguments"); args != nil {
			argCount = countArgumentNodes(args)
		}
		target := fn
		if target == nil {
			target = n
		}
		out = append(out, CallSite{
			DisplayName: displayName,
			NameUpper:   NormalizeFunctionName(displayName),
			ArgCount:    argCount,
			Range:       syntax.NodeRange(target),
		})
		return true
	})
	return out
}

func countArgumentNodes(argumentsNode syntax.Node) int {
	count := 0
	for i := 0; i < argumentsNode.ChildCount(); i++ {
		if ch := argumentsNode.Child(i); ch != nil && ch.Kind() == "argument" {
			count++
		}
	}
	return count
}

// ArgumentExprs returns the argument expression nodes of a function_call.
func ArgumentExprs(callNode syntax.Node) []syntax.Node {
	args := syntax.DirectChildByKind(callNode, "arguments")
	if args == nil {
		return nil
	}
	return argumentExprs(args)
}

// argumentExprs returns the expression node of each argument child.
func argumentExprs(argumentsNode syntax.Node) []syntax.Node {
	var out []syntax.Node
	for i := 0; i < argumentsNode.ChildCount(); i++ {
		ch := argumentsNode.Child(i)
		if ch == nil || ch.Kind() != "argument" {
			continue
		}
		expr := ch.ChildByFieldName("name")
		if expr == nil {
			expr = ch.NamedChild(0)
		}
		if expr != nil {
			out = append(out, expr)
		}
	}
	return out
}

// FunctionArities maps normalized function names to their declared arities,
// merging forward declarations and bodies.
func FunctionArities(root syntax.Node, src []byte, out map[string][]int) {
	collectFunctionArities(root, src, out)
}

func collectFunctionArities(node syntax.Node, src []byte, out map[string][]int) {
	if node == nil {
		return
	}
	if isFunctionDefinitionKind(node.Kind()) {
		if name := node.ChildByFieldName("name"); name != nil {
			nameUpper := NormalizeFunctionName(syntax.Text(name, src))
			if nameUpper != "" {
				out[nameUpper] = append(out[nameUpper], functionParamCount(node))
			}
		}
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectFunctionArities(node.Child(i), src, out)
	}
}

func isFunctionDefinitionKind(kind string) bool {
	return kind == "function_definition" || kind == "function_forward_definition"
}

// isScopeKind marks nodes that bound a callable body; parameter scans refuse
// to descend into them so nested callables do not leak parameters.
func isScopeKind(kind string) bool {
	switch kind {
	case "function_definition", "function_forward_definition", "procedure_definition",
		"method_definition", "constructor_definition", "destructor_definition":
		return true
	}
	return false
}

// functionParamCount prefers the header parameters node; otherwise it counts
// parameter_definition nodes inside the body without entering nested
// callables.
func functionParamCount(functionNode syntax.Node) int {
	if params := syntax.DirectChildByKind(functionNode, "parameters"); params != nil {
		if count := syntax.CountByKind(params, "parameter"); count > 0 {
			return count
		}
	}
	count := 0
	countParameterDefinitions(functionNode, &count, true)
	return count
}

func countParameterDefinitions(node syntax.Node, out *int, isRoot bool) {
	if node == nil {
		return
	}
	if !isRoot && isScopeKind(node.Kind()) {
		return
	}
	if node.Kind() == "parameter_definition" {
		*out++
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		countParameterDefinitions(node.Child(i), out, false)
	}
}
