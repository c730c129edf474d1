package diagnose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func variableDef(src, stmt, name, typeName string) *syntaxtest.Node {
	start := strings.Index(src, stmt)
	return over(src, "variable_definition", stmt).
		AddField("name", syntaxtest.Ident(src, name, start)).
		AddField("type", syntaxtest.N("primitive_type", start+strings.Index(stmt, typeName), start+strings.Index(stmt, typeName)+len(typeName)))
}

func TestCheckTypesAssignmentMismatch(t *testing.T) {
	text := "DEFINE VARIABLE c AS CHARACTER.\n" +
		"DEFINE VARIABLE i AS INTEGER.\n" +
		"c = i.\n" +
		"i = 42.\n"
	tree := syntaxtest.File(text,
		variableDef(text, "DEFINE VARIABLE c AS CHARACTER.", "c", "CHARACTER"),
		variableDef(text, "DEFINE VARIABLE i AS INTEGER.", "i", "INTEGER"),
		assignStmt(text, "c = i."),
		assignStmt(text, "i = 42."),
	)

	diags := CheckTypes(tree.RootNode(), []byte(text), NewTables())
	require.Len(t, diags, 1)
	assert.Equal(t, "Type mismatch: cannot assign NUMERIC to CHARACTER variable 'C'", diags[0].Message)
	assert.Equal(t, SourceSemantic, diags[0].Source)

	// The range marks the offending right side.
	assert.Equal(t, 2, diags[0].Range.Start.Row)
	assert.Equal(t, strings.Index("c = i.", "i"), diags[0].Range.Start.Column)
}

func TestCheckTypesAssignmentFromFunctionReturn(t *testing.T) {
	text := "DEFINE VARIABLE c AS CHARACTER.\n" +
		"c = calcTotal().\n"
	tree := syntaxtest.File(text,
		variableDef(text, "DEFINE VARIABLE c AS CHARACTER.", "c", "CHARACTER"),
		over(text, "assignment_statement", "c = calcTotal().").
			AddField("left", syntaxtest.Ident(text, "c", strings.Index(text, "c = calc"))).
			AddField("right", callOver(text, "calcTotal()")),
	)

	tables := NewTables()
	tables.Returns["CALCTOTAL"] = analysis.TypeNumeric

	diags := CheckTypes(tree.RootNode(), []byte(text), tables)
	require.Len(t, diags, 1)
	assert.Equal(t, "Type mismatch: cannot assign NUMERIC to CHARACTER variable 'C'", diags[0].Message)
}

func TestCheckTypesCallArgumentMismatch(t *testing.T) {
	text := "f(\"x\").\n"
	arg := over(text, "string_literal", "\"x\"")
	tree := syntaxtest.File(text, callOver(text, "f(\"x\")", arg))

	tables := NewTables()
	tables.Signatures["F"] = []analysis.TypeSignature{
		{ParamTypes: []analysis.ParamType{{Type: analysis.TypeNumeric, Known: true}}},
	}

	diags := CheckTypes(tree.RootNode(), []byte(text), tables)
	require.Len(t, diags, 1)
	assert.Equal(t, "Function 'f' argument 1 expects NUMERIC, got CHARACTER", diags[0].Message)
}

func TestCheckTypesCallArgumentSilences(t *testing.T) {
	text := "f(\"x\").\ng(\"y\").\nh(\"z\", 1).\n"
	argX := over(text, "string_literal", "\"x\"")
	argY := over(text, "string_literal", "\"y\"")
	argZ := over(text, "string_literal", "\"z\"")
	one := over(text, "number_literal", "1")
	tree := syntaxtest.File(text,
		callOver(text, "f(\"x\")", argX),
		callOver(text, "g(\"y\")", argY),
		callOver(text, "h(\"z\", 1)", argZ, one),
	)

	tables := NewTables()
	// f: the only declaration leaves the parameter untyped.
	tables.Signatures["F"] = []analysis.TypeSignature{
		{ParamTypes: []analysis.ParamType{{}}},
	}
	// g: no declaration matches the call's arity.
	tables.Signatures["G"] = []analysis.TypeSignature{
		{ParamTypes: []analysis.ParamType{{Type: analysis.TypeNumeric, Known: true}, {Type: analysis.TypeNumeric, Known: true}}},
	}
	// h: same-arity declarations disagree on the first parameter.
	tables.Signatures["H"] = []analysis.TypeSignature{
		{ParamTypes: []analysis.ParamType{{Type: analysis.TypeNumeric, Known: true}, {Type: analysis.TypeNumeric, Known: true}}},
		{ParamTypes: []analysis.ParamType{{Type: analysis.TypeCharacter, Known: true}, {Type: analysis.TypeNumeric, Known: true}}},
	}

	diags := CheckTypes(tree.RootNode(), []byte(text), tables)
	assert.Empty(t, diags)
}
