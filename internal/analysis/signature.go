package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// FunctionSignature is a rendered function declaration for signature help.
type FunctionSignature struct {
	Name       string
	Params     []string
	ReturnType string
	IsForward  bool
}

// Label renders the full signature line.
func (s FunctionSignature) Label() string {
	params := strings.Join(s.Params, ", ")
	if s.ReturnType != "" {
		return "FUNCTION " + s.Name + "(" + params + ") RETURNS " + s.ReturnType
	}
	return "FUNCTION " + s.Name + "(" + params + ")"
}

// FindFunctionSignature returns the richest declaration of symbol: most
// parameters first, then a declared return type, then a non-forward body.
func FindFunctionSignature(root syntax.Node, src []byte, symbol string) (FunctionSignature, bool) {
	var best FunctionSignature
	found := false
	syntax.Walk(root, func(n syntax.Node) bool {
		if !isFunctionDefinitionKind(n.Kind()) {
			return true
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return true
		}
		label := syntax.Text(name, src)
		if !strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(symbol)) {
			return true
		}
		sig := FunctionSignature{
			Name:      strings.TrimSpace(label),
			Params:    collectFunctionParams(n, src),
			IsForward: n.Kind() == "function_forward_definition",
		}
		if typeNode := n.ChildByFieldName("type"); typeNode != nil {
			sig.ReturnType = strings.TrimSpace(syntax.Text(typeNode, src))
		}
		if !found || signatureLess(best, sig) {
			best = sig
			found = true
		}
		return true
	})
	return best, found
}

// signatureLess orders by parameter count, then declared return, then a
// non-forward body.
func signatureLess(a, b FunctionSignature) bool {
	if len(a.Params) != len(b.Params) {
		return len(a.Params) < len(b.Params)
	}
	aRet, bRet := a.ReturnType != "", b.ReturnType != ""
	if aRet != bRet {
		return bRet
	}
	aBody, bBody := !a.IsForward, !b.IsForward
	if aBody != bBody {
		return bBody
	}
	return false
}

func collectFunctionParams(functionNode syntax.Node, src []byte) []string {
	if params := syntax.DirectChildByKind(functionNode, "parameters"); params != nil {
		var headerParams []string
		collectParamsByKind(params, src, "parameter", &headerParams)
		if len(headerParams) > 0 {
			return headerParams
		}
	}
	var out []string
	collectParamsRecursive(functionNode, src, &out, true)
	return out
}

func collectParamsByKind(node syntax.Node, src []byte, targetKind string, out *[]string) {
	if node == nil {
		return
	}
	if node.Kind() == targetKind {
		*out = append(*out, renderParam(node, src))
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectParamsByKind(node.Child(i), src, targetKind, out)
	}
}

func collectParamsRecursive(node syntax.Node, src []byte, out *[]string, isRoot bool) {
	if node == nil {
		return
	}
	if !isRoot && isScopeKind(node.Kind()) {
		return
	}
	if node.Kind() == "parameter" || node.Kind() == "parameter_definition" {
		*out = append(*out, renderParam(node, src))
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectParamsRecursive(node.Child(i), src, out, false)
	}
}

// renderParam formats one parameter as "MODE name: TYPE". Table and dataset
// parameters carry their target instead of a basic type; anything untyped
// renders as ANY.
func renderParam(node syntax.Node, src []byte) string {
	name := "param"
	if n := node.ChildByFieldName("name"); n != nil {
		if s := strings.TrimSpace(syntax.Text(n, src)); s != "" {
			name = s
		}
	}

	ty := ""
	if t := node.ChildByFieldName("type"); t != nil {
		ty = strings.TrimSpace(syntax.Text(t, src))
	}
	if ty == "" {
		if t := node.ChildByFieldName("table"); t != nil {
			ty = "TABLE " + strings.TrimSpace(syntax.Text(t, src))
		}
	}
	if ty == "" {
		if d := node.ChildByFieldName("dataset"); d != nil {
			ty = "DATASET " + strings.TrimSpace(syntax.Text(d, src))
		}
	}
	if ty == "" {
		ty = "ANY"
	}

	raw := strings.ToUpper(strings.TrimSpace(syntax.Text(node, src)))
	mode := ""
	switch {
	case strings.HasPrefix(raw, "INPUT-OUTPUT "):
		mode = "INPUT-OUTPUT"
	case strings.HasPrefix(raw, "INPUT "):
		mode = "INPUT"
	case strings.HasPrefix(raw, "OUTPUT "):
		mode = "OUTPUT"
	}

	if mode != "" {
		return mode + " " + name + ": " + ty
	}
	return name + ": " + ty
}
