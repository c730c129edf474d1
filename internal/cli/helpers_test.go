package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/service"
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

// fixtureService opens a workspace where main.p includes lib.i and calls the
// two-parameter function tally with no arguments.
func fixtureService(t *testing.T) *service.Service {
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

	docText := "{lib.i}\ntally().\n"
	writeFile(t, filepath.Join(root, "main.p"), docText)

	callStart := strings.Index(docText, "tally()")
	callNode := syntaxtest.N("function_call", callStart, callStart+len("tally()")).
		AddField("function", syntaxtest.Ident(docText, "tally", callStart))

	parser := syntaxtest.NewParser()
	parser.Script(libText, syntaxtest.File(libText, fnDef))
	parser.Script(docText, syntaxtest.File(docText, callNode))

	svc, err := service.Open(root, parser)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}
