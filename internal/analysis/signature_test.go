package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func TestFindFunctionSignaturePicksRichestDeclaration(t *testing.T) {
	src := "FUNCTION calcTotal RETURNS INTEGER (INPUT a AS INTEGER) FORWARD.\n" +
		"FUNCTION calcTotal RETURNS INTEGER (INPUT a AS INTEGER, OUTPUT b AS CHARACTER):\nEND.\n"
	bodyStart := len("FUNCTION calcTotal RETURNS INTEGER (INPUT a AS INTEGER) FORWARD.\n")

	fwd := over(src, "function_forward_definition", "FUNCTION calcTotal RETURNS INTEGER (INPUT a AS INTEGER) FORWARD.").
		AddField("name", syntaxtest.Ident(src, "calcTotal", 0)).
		AddField("type", over(src, "type_name", "INTEGER")).
		Add(over(src, "parameters", "(INPUT a AS INTEGER)").Add(
			over(src, "parameter", "INPUT a AS INTEGER").
				AddField("name", syntaxtest.Ident(src, "a", 0)).
				AddField("type", overAt(src, "type_name", "INTEGER", 20)),
		))
	body := overAt(src, "function_definition", "FUNCTION calcTotal", bodyStart).
		AddField("name", syntaxtest.Ident(src, "calcTotal", bodyStart)).
		AddField("type", overAt(src, "type_name", "INTEGER", bodyStart)).
		Add(overAt(src, "parameters", "(INPUT a AS INTEGER, OUTPUT b AS CHARACTER)", bodyStart).Add(
			overAt(src, "parameter", "INPUT a AS INTEGER", bodyStart).
				AddField("name", syntaxtest.Ident(src, "a", bodyStart)).
				AddField("type", overAt(src, "type_name", "INTEGER", bodyStart+len("FUNCTION calcTotal RETURNS INTEGER (INPUT a AS "))),
			overAt(src, "parameter", "OUTPUT b AS CHARACTER", bodyStart).
				AddField("name", syntaxtest.Ident(src, "b", bodyStart)).
				AddField("type", over(src, "type_name", "CHARACTER")),
		))
	tree := syntaxtest.File(src, fwd, body)

	sig, ok := FindFunctionSignature(tree.RootNode(), []byte(src), "CALCTOTAL")
	require.True(t, ok)
	assert.False(t, sig.IsForward)
	assert.Equal(t, "INTEGER", sig.ReturnType)
	require.Len(t, sig.Params, 2)
	assert.Equal(t, "INPUT a: INTEGER", sig.Params[0])
	assert.Equal(t, "OUTPUT b: CHARACTER", sig.Params[1])
	assert.Equal(t, "FUNCTION calcTotal(INPUT a: INTEGER, OUTPUT b: CHARACTER) RETURNS INTEGER", sig.Label())
}

func TestFindFunctionSignatureMissing(t *testing.T) {
	src := "x.\n"
	tree := syntaxtest.File(src)
	_, ok := FindFunctionSignature(tree.RootNode(), []byte(src), "nothere")
	assert.False(t, ok)
}

func TestSignatureLabelWithoutReturn(t *testing.T) {
	sig := FunctionSignature{Name: "doWork", Params: []string{"p: ANY"}}
	assert.Equal(t, "FUNCTION doWork(p: ANY)", sig.Label())
}

func TestRenderParamFallbacks(t *testing.T) {
	src := "INPUT-OUTPUT TABLE tt-ord\nsomething\n"
	tableParam := over(src, "parameter", "INPUT-OUTPUT TABLE tt-ord").
		AddField("table", syntaxtest.Ident(src, "tt-ord", 0))
	syntaxtest.Build(src, tableParam)
	assert.Equal(t, "INPUT-OUTPUT param: TABLE tt-ord", renderParam(tableParam, []byte(src)))

	bare := over(src, "parameter", "something")
	syntaxtest.Build(src, bare)
	assert.Equal(t, "param: ANY", renderParam(bare, []byte(src)))
}
