package diagnose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/config"
	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func over(src, kind, sub string) *syntaxtest.Node {
	start := strings.Index(src, sub)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", sub))
	}
	return syntaxtest.N(kind, start, start+len(sub))
}

// callOver builds a function_call node over expr, which must look like
// "name(...)". Argument expressions become argument children.
func callOver(src, expr string, argExprs ...*syntaxtest.Node) *syntaxtest.Node {
	start := strings.Index(src, expr)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", expr))
	}
	paren := strings.IndexByte(expr, '(')
	fn := syntaxtest.N("identifier", start, start+paren)
	call := syntaxtest.N("function_call", start, start+len(expr)).
		AddField("function", fn)
	if len(argExprs) > 0 {
		args := syntaxtest.N("arguments", start+paren, start+len(expr))
		for _, e := range argExprs {
			args.Add(syntaxtest.N("argument", e.StartByte(), e.EndByte()).AddField("name", e))
		}
		call.Add(args)
	}
	return call
}

// assignStmt builds an assignment_statement over a "left = right." line.
// Numeric and quoted right sides become literal nodes.
func assignStmt(src, stmt string) *syntaxtest.Node {
	start := strings.Index(src, stmt)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", stmt))
	}
	eq := strings.IndexByte(stmt, '=')
	leftName := strings.TrimSpace(stmt[:eq])
	rightName := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt[eq+1:]), "."))

	left := syntaxtest.Ident(src, leftName, start)
	rightStart := start + strings.Index(stmt, rightName)
	kind := "identifier"
	switch {
	case rightName[0] >= '0' && rightName[0] <= '9':
		kind = "number_literal"
	case rightName[0] == '"':
		kind = "string_literal"
	}
	right := syntaxtest.N(kind, rightStart, rightStart+len(rightName))

	return syntaxtest.N("assignment_statement", start, start+len(stmt)).
		AddField("left", left).
		AddField("right", right)
}

func matcherWith(t *testing.T, ignore ...string) config.FeatureMatcher {
	t.Helper()
	m, err := config.NewFeatureMatcher(config.FeatureConfig{Enabled: true, Ignore: ignore})
	require.NoError(t, err)
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
