package diagnose

import (
	"context"
	"fmt"

	"github.com/mvp-joe/abl-cortex/internal/config"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// Engine runs every diagnostic pass over one document. Store and Schema may
// be nil for one-shot checks over text supplied directly.
type Engine struct {
	Store         *workspace.Store
	Resolver      *workspace.Resolver
	Schema        *schema.Snapshot
	Matchers      *config.Matchers
	WorkspaceRoot string
}

// Check diagnoses the stored document at the given version. It aborts with
// workspace.ErrSuperseded as soon as a newer version lands, including while
// includes are still being read.
func (e *Engine) Check(ctx context.Context, uri string, version int) ([]Diagnostic, error) {
	snap, ok := e.Store.Snapshot(uri)
	if !ok {
		return nil, fmt.Errorf("no document open for %s", uri)
	}
	if snap.Version != version {
		return nil, workspace.ErrSuperseded
	}
	guard := func() bool { return e.Store.IsLatest(uri, version) }
	return e.CheckDocument(ctx, snap.URI, snap.Text, snap.Tree, guard)
}

// CheckDocument diagnoses text with its parse tree. guard may be nil; when
// set it is re-checked at every checkpoint and on failure the run returns
// workspace.ErrSuperseded.
func (e *Engine) CheckDocument(ctx context.Context, docPath, text string, root syntax.Node, guard func() bool) ([]Diagnostic, error) {
	m := e.Matchers
	if m == nil {
		m = config.MustMatchers(config.Default())
	}
	if !m.Diagnostics {
		return nil, nil
	}

	var diags []Diagnostic
	if root != nil {
		diags = SyntaxDiagnostics(root)
	}

	walk := &workspace.IncludeWalk{}
	if e.Resolver != nil {
		w, err := e.Resolver.WalkIncludes(ctx, docPath, text, root, guard)
		if err != nil {
			return nil, err
		}
		walk = w
	}

	idx := e.schemaIndex()
	tables := CollectTables(root, text, walk, idx)
	src := []byte(text)

	if root != nil {
		diags = append(diags, CheckArities(root, src, tables.Arities)...)
		if m.UnknownVariables.Enabled && !m.UnknownVariables.ExcludesFile(e.WorkspaceRoot, docPath) {
			diags = append(diags, CheckUnknownVariables(root, src, tables, idx, m.UnknownVariables)...)
		}
		if m.UnknownFunctions.Enabled && !m.UnknownFunctions.ExcludesFile(e.WorkspaceRoot, docPath) {
			diags = append(diags, CheckUnknownFunctions(root, src, tables, m.UnknownFunctions)...)
		}
		if m.TypeChecks.Enabled && !m.TypeChecks.ExcludesFile(e.WorkspaceRoot, docPath) {
			diags = append(diags, CheckTypes(root, src, tables)...)
		}
	}

	if guard != nil && !guard() {
		return nil, workspace.ErrSuperseded
	}
	return diags, nil
}

func (e *Engine) schemaIndex() *schema.Index {
	if e.Schema == nil {
		return schema.EmptyIndex()
	}
	return e.Schema.Current()
}
