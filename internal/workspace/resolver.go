package workspace

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// IncludeFile is one file of a document's transitive include closure.
type IncludeFile struct {
	Path string
	Text string
	Root syntax.Node

	// StampOffset is the byte offset in the root document of the top-level
	// include site this file was reached through. Nested includes inherit
	// their parent's offset so define ordering stays in root coordinates.
	StampOffset int
}

// IncludeEdge records that From includes To, for the include graph.
type IncludeEdge struct {
	From string
	To   string
}

// IncludeWalk is the result of walking a document's includes.
type IncludeWalk struct {
	// Files is the closure in discovery order; each file appears once even
	// when included from several places.
	Files []IncludeFile
	// Defines holds the document's own defines plus every global define
	// exported by an include, stamped at its include site's offset.
	Defines []analysis.DefineSite
	// Edges lists the include relation for graph rendering.
	Edges []IncludeEdge
}

// Resolver walks transitive includes, reading and parsing each file once.
type Resolver struct {
	Paths  *PathResolver
	Cache  *IncludeCache
	Parser syntax.Parser
}

// WalkIncludes collects the include closure of a document. guard is
// re-checked after every file read and parse; when it reports false the walk
// aborts with ErrSuperseded. A nil tree is allowed: the document's own
// defines are then taken as empty.
func (r *Resolver) WalkIncludes(ctx context.Context, docPath, text string, root syntax.Node, guard func() bool) (*IncludeWalk, error) {
	walk := &IncludeWalk{}
	if root != nil {
		walk.Defines = analysis.DefineSites(root, []byte(text))
	}

	seen := map[string]bool{}
	if err := r.walkFile(ctx, docPath, text, 0, true, seen, walk, guard); err != nil {
		return nil, err
	}
	return walk, nil
}

func (r *Resolver) walkFile(ctx context.Context, filePath, text string, stampOffset int, isRoot bool, seen map[string]bool, walk *IncludeWalk, guard func() bool) error {
	for _, site := range analysis.IncludeSites(text) {
		stamp := stampOffset
		if isRoot {
			stamp = site.StartOffset
		}

		rawPath := r.Paths.ExpandSitePath(site, walk.Defines)
		resolved, ok := r.Paths.ResolveInclude(rawPath, filePath)
		if !ok {
			continue
		}
		walk.Edges = append(walk.Edges, IncludeEdge{From: filePath, To: resolved})
		if seen[resolved] {
			continue
		}
		seen[resolved] = true

		entry, err := r.loadInclude(ctx, resolved)
		if err != nil {
			// Unreadable includes are skipped; diagnostics for the
			// referencing document still cover everything that loaded.
			continue
		}
		if guard != nil && !guard() {
			return ErrSuperseded
		}

		var includeRoot syntax.Node
		if entry.Tree != nil {
			includeRoot = entry.Tree.RootNode()
			for _, def := range analysis.GlobalDefineSites(includeRoot, []byte(entry.Text)) {
				def.StartByte = stamp
				walk.Defines = append(walk.Defines, def)
			}
		}
		walk.Files = append(walk.Files, IncludeFile{
			Path:        resolved,
			Text:        entry.Text,
			Root:        includeRoot,
			StampOffset: stamp,
		})

		if err := r.walkFile(ctx, resolved, entry.Text, stamp, false, seen, walk, guard); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) loadInclude(ctx context.Context, path string) (IncludeEntry, error) {
	if r.Cache != nil {
		if entry, ok := r.Cache.Get(path); ok {
			return entry, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return IncludeEntry{}, fmt.Errorf("reading include %s: %w", path, err)
	}
	entry := IncludeEntry{Path: path, Text: string(data)}

	if r.Parser != nil {
		tree, err := r.Parser.Parse(ctx, data)
		if err != nil {
			return IncludeEntry{}, fmt.Errorf("parsing include %s: %w", path, err)
		}
		entry.Tree = tree
	}

	if r.Cache != nil {
		r.Cache.Put(entry)
	}
	return entry, nil
}
