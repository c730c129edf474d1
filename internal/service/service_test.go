package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func over(src, kind, sub string) *syntaxtest.Node {
	start := strings.Index(src, sub)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", sub))
	}
	return syntaxtest.N(kind, start, start+len(sub))
}

func callOver(src, expr string) *syntaxtest.Node {
	start := strings.Index(src, expr)
	paren := strings.IndexByte(expr, '(')
	return syntaxtest.N("function_call", start, start+len(expr)).
		AddField("function", syntaxtest.N("identifier", start, start+paren))
}

// fixtureWorkspace writes main.p including lib.i, which declares tally with
// two parameters; main.p calls tally with none.
func fixtureWorkspace(t *testing.T) (svc *Service, docPath string) {
	t.Helper()
	root := t.TempDir()

	libText := "FUNCTION tally RETURNS INTEGER (INPUT a AS INTEGER, INPUT b AS INTEGER):\nEND.\n"
	writeFile(t, filepath.Join(root, "lib.i"), libText)
	params := syntaxtest.N("parameters", strings.Index(libText, "("), strings.Index(libText, ")")+1,
		over(libText, "parameter", "INPUT a AS INTEGER"),
		over(libText, "parameter", "INPUT b AS INTEGER"),
	)
	fnDef := over(libText, "function_definition", strings.TrimSuffix(libText, "\n")).
		AddField("name", syntaxtest.Ident(libText, "tally", 0)).
		Add(params)

	docPath = filepath.Join(root, "main.p")
	docText := "{lib.i}\ntally().\n"
	writeFile(t, docPath, docText)

	parser := syntaxtest.NewParser()
	parser.Script(libText, syntaxtest.File(libText, fnDef))
	parser.Script(docText, syntaxtest.File(docText, callOver(docText, "tally()")))

	svc, err := Open(root, parser)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc, docPath
}

func TestOffsetAt(t *testing.T) {
	text := "first\nsecond\nthird"

	assert.Equal(t, 0, OffsetAt(text, 1, 1))
	assert.Equal(t, 2, OffsetAt(text, 1, 3))
	assert.Equal(t, 6, OffsetAt(text, 2, 1))
	assert.Equal(t, len(text), OffsetAt(text, 3, 6))

	// Columns clamp to the line end, lines to the text end.
	assert.Equal(t, 5, OffsetAt(text, 1, 99))
	assert.Equal(t, len(text), OffsetAt(text, 99, 1))
	assert.Equal(t, 0, OffsetAt(text, 0, 0))
}

func TestOpenDefaults(t *testing.T) {
	svc, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.True(t, svc.Matchers.Diagnostics)
	assert.True(t, svc.Matchers.Completion)
	assert.Empty(t, svc.Schema.Current().Tables())
}

func TestServiceCheck(t *testing.T) {
	svc, docPath := fixtureWorkspace(t)

	diags, err := svc.Check(context.Background(), docPath)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Function 'tally' expects 2 argument(s), got 0", diags[0].Message)
}

func TestServiceCheckRelativePath(t *testing.T) {
	svc, _ := fixtureWorkspace(t)

	diags, err := svc.Check(context.Background(), "main.p")
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestServiceDefinition(t *testing.T) {
	svc, docPath := fixtureWorkspace(t)

	// On the include directive: the target is the included file.
	def, ok, err := svc.Definition(context.Background(), docPath, 1, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(svc.Root, "lib.i"), def.Path)

	// On the call: the function declared by the include.
	def, ok, err = svc.Definition(context.Background(), docPath, 2, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(svc.Root, "lib.i"), def.Path)
	assert.Equal(t, 0, def.Range.Start.Row)
}

func TestServiceDefinitionMiss(t *testing.T) {
	svc, docPath := fixtureWorkspace(t)

	_, ok, err := svc.Definition(context.Background(), docPath, 2, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServiceSymbols(t *testing.T) {
	svc, docPath := fixtureWorkspace(t)

	items, err := svc.Symbols(context.Background(), docPath, "ta")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "tally", items[0].Label)
	assert.Equal(t, analysis.KindFunction, items[0].Kind)

	items, err = svc.Symbols(context.Background(), docPath, "zz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestServiceCompletionsDisabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "abl.toml"), "[completion]\nenabled = false\n")
	writeFile(t, filepath.Join(root, "main.p"), "x.\n")

	svc, err := Open(root, nil)
	require.NoError(t, err)
	defer svc.Close()

	items, err := svc.Completions(context.Background(), "main.p", 1, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestServiceIncludeTree(t *testing.T) {
	svc, docPath := fixtureWorkspace(t)

	lines, err := svc.IncludeTree(context.Background(), docPath)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, docPath, lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "lib.i"))
}

func TestServiceMissingFile(t *testing.T) {
	svc, _ := fixtureWorkspace(t)

	_, err := svc.Check(context.Background(), "ghost.p")
	assert.Error(t, err)
}
