package diagnose

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/config"
	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// engineFixture opens main.p, which includes lib.i declaring tally with two
// parameters, and calls tally with none.
func engineFixture(t *testing.T) (engine *Engine, docPath string) {
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
	parser := syntaxtest.NewParser()
	parser.Script(libText, syntaxtest.File(libText, fnDef))

	docPath = filepath.Join(root, "main.p")
	docText := "{lib.i}\ntally().\n"
	docTree := syntaxtest.File(docText, callOver(docText, "tally()"))

	store := workspace.NewStore()
	require.True(t, store.Update(docPath, docText, 1))
	require.True(t, store.SetTree(docPath, 1, docTree))

	engine = &Engine{
		Store:         store,
		Resolver:      &workspace.Resolver{Paths: &workspace.PathResolver{Root: root}, Parser: parser},
		Matchers:      config.MustMatchers(config.Default()),
		WorkspaceRoot: root,
	}
	return engine, docPath
}

func TestEngineCheck(t *testing.T) {
	engine, docPath := engineFixture(t)

	diags, err := engine.Check(context.Background(), docPath, 1)
	require.NoError(t, err)

	// tally is known through the include, so only the arity check fires.
	require.Len(t, diags, 1)
	assert.Equal(t, "Function 'tally' expects 2 argument(s), got 0", diags[0].Message)
	assert.Equal(t, SourceSemantic, diags[0].Source)
}

func TestEngineCheckSuperseded(t *testing.T) {
	engine, docPath := engineFixture(t)
	require.True(t, engine.Store.Update(docPath, "changed.\n", 2))

	_, err := engine.Check(context.Background(), docPath, 1)
	assert.ErrorIs(t, err, workspace.ErrSuperseded)
}

func TestEngineCheckUnknownDocument(t *testing.T) {
	engine, _ := engineFixture(t)

	_, err := engine.Check(context.Background(), "/nowhere/else.p", 1)
	assert.Error(t, err)
}

func TestEngineDisabledDiagnostics(t *testing.T) {
	engine, docPath := engineFixture(t)
	cfg := config.Default()
	cfg.Diagnostics.Enabled = false
	engine.Matchers = config.MustMatchers(cfg)

	diags, err := engine.Check(context.Background(), docPath, 1)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestEngineExcludesFileFromCheck(t *testing.T) {
	root := t.TempDir()
	docPath := filepath.Join(root, "legacy.p")
	docText := "ghost().\n"
	docTree := syntaxtest.File(docText, callOver(docText, "ghost()"))

	engine := &Engine{WorkspaceRoot: root, Matchers: config.MustMatchers(config.Default())}

	diags, err := engine.CheckDocument(context.Background(), docPath, docText, docTree.RootNode(), nil)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "Unknown function 'ghost'", diags[0].Message)

	cfg := config.Default()
	cfg.Diagnostics.UnknownFunctions.Exclude = []string{"legacy.p"}
	engine.Matchers = config.MustMatchers(cfg)

	diags, err = engine.CheckDocument(context.Background(), docPath, docText, docTree.RootNode(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestEngineCheckDocumentGuard(t *testing.T) {
	engine, docPath := engineFixture(t)
	snap, ok := engine.Store.Snapshot(docPath)
	require.True(t, ok)

	_, err := engine.CheckDocument(context.Background(), snap.URI, snap.Text, snap.Tree, func() bool { return false })
	assert.ErrorIs(t, err, workspace.ErrSuperseded)
}
