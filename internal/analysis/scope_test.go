package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func TestContainingScopeInsideFunction(t *testing.T) {
	src := "DEFINE VARIABLE top AS INTEGER.\n" +
		"FUNCTION f RETURNS INTEGER:\n  RETURN cnt.\nEND.\n"

	fnText := "FUNCTION f RETURNS INTEGER:\n  RETURN cnt.\nEND."
	fn := over(src, "function_definition", fnText).
		AddField("name", syntaxtest.Ident(src, "f", 0)).
		Add(over(src, "return_statement", "RETURN cnt.").
			Add(syntaxtest.Ident(src, "cnt", 0)))
	tree := syntaxtest.File(src, fn)

	scope, ok := ContainingScope(tree.RootNode(), strings.Index(src, "cnt"))
	require.True(t, ok)
	assert.Equal(t, strings.Index(src, fnText), scope.Start)
	assert.Equal(t, strings.Index(src, fnText)+len(fnText), scope.End)
	assert.True(t, scope.Contains(strings.Index(src, "cnt")))
	assert.False(t, scope.Contains(0))
}

func TestContainingScopeTopLevelIsWholeFile(t *testing.T) {
	src := "DEFINE VARIABLE top AS INTEGER.\n"
	varDef := over(src, "variable_definition", "DEFINE VARIABLE top AS INTEGER.").
		AddField("name", syntaxtest.Ident(src, "top", 0))
	tree := syntaxtest.File(src, varDef)

	scope, ok := ContainingScope(tree.RootNode(), strings.Index(src, "top"))
	require.True(t, ok)
	assert.Equal(t, ByteScope{Start: 0, End: len(src)}, scope)
}

func TestContainingScopeOutsideRoot(t *testing.T) {
	src := "x.\n"
	tree := syntaxtest.File(src)
	_, ok := ContainingScope(tree.RootNode(), len(src)+5)
	assert.False(t, ok)
}
