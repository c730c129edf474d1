package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// BasicType is the coarse type family used for mismatch checks.
type BasicType int

const (
	TypeCharacter BasicType = iota
	TypeNumeric
	TypeLogical
	TypeDateLike
	TypeHandle
)

// Label returns the canonical diagnostic label.
func (t BasicType) Label() string {
	switch t {
	case TypeCharacter:
		return "CHARACTER"
	case TypeNumeric:
		return "NUMERIC"
	case TypeLogical:
		return "LOGICAL"
	case TypeDateLike:
		return "DATE"
	case TypeHandle:
		return "HANDLE"
	}
	return "UNKNOWN"
}

// BasicTypeFromName maps an ABL type name (first whitespace token only) to a
// type family. Unrecognized names report false.
func BasicTypeFromName(raw string) (BasicType, bool) {
	first := strings.Fields(raw)
	if len(first) == 0 {
		return 0, false
	}
	switch strings.ToUpper(first[0]) {
	case "CHARACTER", "CHAR", "LONGCHAR", "CLOB":
		return TypeCharacter, true
	case "INTEGER", "INT", "INT64", "DECIMAL", "DEC", "NUMERIC", "NUM":
		return TypeNumeric, true
	case "LOGICAL", "LOG", "BOOLEAN":
		return TypeLogical, true
	case "DATE", "DATETIME", "DATETIME-TZ":
		return TypeDateLike, true
	case "HANDLE", "COM-HANDLE", "WIDGET-HANDLE":
		return TypeHandle, true
	}
	return 0, false
}

// TypedBinding is a variable or parameter declared with a recognized basic
// type, anchored at the name node.
type TypedBinding struct {
	NameUpper string
	Type      BasicType
	StartByte int
}

// TypedBindings collects typed variable and parameter declarations.
func TypedBindings(root syntax.Node, src []byte) []TypedBinding {
	var out []TypedBinding
	syntax.Walk(root, func(n syntax.Node) bool {
		kind := n.Kind()
		if kind != "variable_definition" && kind != "parameter_definition" {
			return true
		}
		name := n.ChildByFieldName("name")
		typeNode := n.ChildByFieldName("type")
		if name == nil || typeNode == nil {
			return true
		}
		ty, ok := BasicTypeFromName(syntax.Text(typeNode, src))
		if !ok {
			return true
		}
		out = append(out, TypedBinding{
			NameUpper: strings.ToUpper(strings.TrimSpace(syntax.Text(name, src))),
			Type:      ty,
			StartByte: name.StartByte(),
		})
		return true
	})
	return out
}

// ResolveBindingType returns the type of the latest binding of nameUpper at
// or before atByte.
func ResolveBindingType(bindings []TypedBinding, nameUpper string, atByte int) (BasicType, bool) {
	var best *TypedBinding
	for i := range bindings {
		b := &bindings[i]
		if b.NameUpper != nameUpper || b.StartByte > atByte {
			continue
		}
		if best == nil || b.StartByte > best.StartByte {
			best = b
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Type, true
}

// FunctionReturnTypes maps normalized function names to their declared
// return type families.
func FunctionReturnTypes(root syntax.Node, src []byte, out map[string]BasicType) {
	syntax.Walk(root, func(n syntax.Node) bool {
		if !isFunctionDefinitionKind(n.Kind()) {
			return true
		}
		name := n.ChildByFieldName("name")
		typeNode := n.ChildByFieldName("type")
		if name == nil || typeNode == nil {
			return true
		}
		if ty, ok := BasicTypeFromName(syntax.Text(typeNode, src)); ok {
			out[NormalizeFunctionName(syntax.Text(name, src))] = ty
		}
		return true
	})
}

// InferExprType derives the type family of an expression, or reports false
// when it cannot be determined.
func InferExprType(expr syntax.Node, src []byte, bindings []TypedBinding, returns map[string]BasicType) (BasicType, bool) {
	if expr == nil {
		return 0, false
	}
	switch expr.Kind() {
	case "string_literal":
		return TypeCharacter, true
	case "number_literal":
		return TypeNumeric, true
	case "boolean_literal":
		return TypeLogical, true
	case "identifier":
		name := strings.ToUpper(strings.TrimSpace(syntax.Text(expr, src)))
		return ResolveBindingType(bindings, name, expr.StartByte())
	case "parenthesized_expression":
		return InferExprType(expr.NamedChild(0), src, bindings, returns)
	case "function_call":
		fn := expr.ChildByFieldName("function")
		if fn == nil {
			return 0, false
		}
		ty, ok := returns[NormalizeFunctionName(syntax.Text(fn, src))]
		return ty, ok
	}
	return 0, false
}

// TypeSignature carries per-parameter type families; untyped parameters are
// recorded as unknown so argument positions stay aligned.
type TypeSignature struct {
	ParamTypes []ParamType
}

// ParamType is an optional basic type.
type ParamType struct {
	Type  BasicType
	Known bool
}

// FunctionTypeSignatures maps normalized function names to every declared
// type signature (forward and body declarations both contribute).
func FunctionTypeSignatures(root syntax.Node, src []byte, out map[string][]TypeSignature) {
	syntax.Walk(root, func(n syntax.Node) bool {
		if !isFunctionDefinitionKind(n.Kind()) {
			return true
		}
		name := n.ChildByFieldName("name")
		if name == nil {
			return true
		}
		out[NormalizeFunctionName(syntax.Text(name, src))] = append(
			out[NormalizeFunctionName(syntax.Text(name, src))],
			TypeSignature{ParamTypes: functionParamTypes(n, src)},
		)
		return true
	})
}

func functionParamTypes(functionNode syntax.Node, src []byte) []ParamType {
	if params := syntax.DirectChildByKind(functionNode, "parameters"); params != nil {
		var headerTypes []ParamType
		collectParamTypesByKind(params, src, "parameter", &headerTypes)
		if len(headerTypes) > 0 {
			return headerTypes
		}
	}
	var out []ParamType
	collectParamTypesRecursive(functionNode, src, &out, true)
	return out
}

func collectParamTypesByKind(node syntax.Node, src []byte, targetKind string, out *[]ParamType) {
	if node == nil {
		return
	}
	if node.Kind() == targetKind {
		*out = append(*out, paramTypeOf(node, src))
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectParamTypesByKind(node.Child(i), src, targetKind, out)
	}
}

func collectParamTypesRecursive(node syntax.Node, src []byte, out *[]ParamType, isRoot bool) {
	if node == nil {
		return
	}
	if !isRoot && isScopeKind(node.Kind()) {
		return
	}
	if node.Kind() == "parameter_definition" {
		*out = append(*out, paramTypeOf(node, src))
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		collectParamTypesRecursive(node.Child(i), src, out, false)
	}
}

func paramTypeOf(node syntax.Node, src []byte) ParamType {
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		if ty, ok := BasicTypeFromName(syntax.Text(typeNode, src)); ok {
			return ParamType{Type: ty, Known: true}
		}
	}
	return ParamType{}
}

// UnifyExpectedParamType returns the agreed type of parameter index across
// all signatures, or false when any signature disagrees or leaves it untyped.
func UnifyExpectedParamType(signatures []TypeSignature, index int) (BasicType, bool) {
	var expected BasicType
	have := false
	for _, sig := range signatures {
		if index >= len(sig.ParamTypes) || !sig.ParamTypes[index].Known {
			return 0, false
		}
		ty := sig.ParamTypes[index].Type
		if !have {
			expected, have = ty, true
		} else if expected != ty {
			return 0, false
		}
	}
	return expected, have
}
