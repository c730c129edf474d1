package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
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

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestDefinitionHandler(t *testing.T) {
	svc := fixtureService(t)
	handler := createDefinitionHandler(svc)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file":   "main.p",
		"line":   float64(2),
		"column": float64(2),
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response DefinitionResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	assert.True(t, response.Found)
	assert.Equal(t, filepath.Join(svc.Root, "lib.i"), response.Path)
	assert.Equal(t, 1, response.Line)
	assert.Equal(t, 10, response.Column)
}

func TestDefinitionHandlerNotFound(t *testing.T) {
	svc := fixtureService(t)
	handler := createDefinitionHandler(svc)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file":   "main.p",
		"line":   float64(2),
		"column": float64(8),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response DefinitionResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	assert.False(t, response.Found)
}

func TestDefinitionHandlerMissingFile(t *testing.T) {
	svc := fixtureService(t)
	handler := createDefinitionHandler(svc)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"line":   float64(1),
		"column": float64(1),
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, textContent.Text, "file parameter is required")
}

func TestCheckHandler(t *testing.T) {
	svc := fixtureService(t)
	handler := createCheckHandler(svc)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file": "main.p",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response CheckResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	require.Equal(t, 1, response.Total)
	assert.Equal(t, "Function 'tally' expects 2 argument(s), got 0", response.Diagnostics[0].Message)
	assert.Equal(t, "error", response.Diagnostics[0].Severity)
	assert.Equal(t, 2, response.Diagnostics[0].Line)
}

func TestCheckHandlerUnreadableFile(t *testing.T) {
	svc := fixtureService(t)
	handler := createCheckHandler(svc)

	_, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file": "ghost.p",
	}))
	assert.Error(t, err)
}

func TestSymbolsHandler(t *testing.T) {
	svc := fixtureService(t)
	handler := createSymbolsHandler(svc)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file":   "main.p",
		"prefix": "ta",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var response SymbolsResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	require.Equal(t, 1, response.Total)
	assert.Equal(t, "tally", response.Symbols[0].Label)
	assert.Equal(t, "function", response.Symbols[0].Kind)
}

func TestNewServerRequiresService(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	srv, err := NewServer(fixtureService(t))
	require.NoError(t, err)
	assert.NotNil(t, srv)
}
