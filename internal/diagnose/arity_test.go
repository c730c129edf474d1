package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func TestCheckAritiesMismatch(t *testing.T) {
	text := "calcTotal().\n"
	tree := syntaxtest.File(text, callOver(text, "calcTotal()"))

	diags := CheckArities(tree.RootNode(), []byte(text), map[string][]int{"CALCTOTAL": {2}})
	require.Len(t, diags, 1)
	assert.Equal(t, "Function 'calcTotal' expects 2 argument(s), got 0", diags[0].Message)
	assert.Equal(t, SourceSemantic, diags[0].Source)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestCheckAritiesFormatsDeclaredSet(t *testing.T) {
	text := "calcTotal(1, 2, 3).\n"
	one := over(text, "number_literal", "1")
	two := over(text, "number_literal", "2")
	three := over(text, "number_literal", "3")
	tree := syntaxtest.File(text, callOver(text, "calcTotal(1, 2, 3)", one, two, three))

	// Duplicates collapse and the set renders sorted.
	diags := CheckArities(tree.RootNode(), []byte(text), map[string][]int{"CALCTOTAL": {2, 1, 2}})
	require.Len(t, diags, 1)
	assert.Equal(t, "Function 'calcTotal' expects 1 or 2 argument(s), got 3", diags[0].Message)
}

func TestCheckAritiesAcceptsDeclaredCount(t *testing.T) {
	text := "calcTotal(1).\n"
	one := over(text, "number_literal", "1")
	tree := syntaxtest.File(text, callOver(text, "calcTotal(1)", one))

	diags := CheckArities(tree.RootNode(), []byte(text), map[string][]int{"CALCTOTAL": {1, 2}})
	assert.Empty(t, diags)
}

func TestCheckAritiesSkipsQualifiedAndUndeclared(t *testing.T) {
	text := "obj:run().\nghost().\n"
	qualified := over(text, "function_call", "obj:run()").
		AddField("function", over(text, "identifier", "obj:run"))
	tree := syntaxtest.File(text, qualified, callOver(text, "ghost()"))

	// obj:run is a method invocation; ghost has no declaration to check.
	diags := CheckArities(tree.RootNode(), []byte(text), map[string][]int{"RUN": {0}})
	assert.Empty(t, diags)
}
