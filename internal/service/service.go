// Package service wires a workspace together: configuration, schema
// snapshot, include resolution and the diagnostic engine. The CLI commands
// and the MCP server both drive requests through it.
package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mvp-joe/abl-cortex/internal/complete"
	"github.com/mvp-joe/abl-cortex/internal/config"
	"github.com/mvp-joe/abl-cortex/internal/diagnose"
	"github.com/mvp-joe/abl-cortex/internal/resolve"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// includeCacheCapacity bounds the parse-once include cache.
const includeCacheCapacity = 256

// Service owns everything a request needs for one workspace.
type Service struct {
	Root     string
	Config   *config.Config
	Matchers *config.Matchers
	Schema   *schema.Snapshot
	Parser   syntax.Parser
	Store    *workspace.Store
	Cache    *workspace.IncludeCache
	Paths    *workspace.PathResolver
	Resolver *workspace.Resolver
	Engine   *diagnose.Engine

	watcher *schema.Watcher
}

// Open loads the workspace configuration and schema dumps and builds the
// request pipeline. parser may be nil when no grammar is available; features
// that need a syntax tree then return empty results.
func Open(root string, parser syntax.Parser) (*Service, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	cfg, err := config.NewLoader(abs).Load()
	if err != nil {
		return nil, err
	}
	matchers, err := config.NewMatchers(cfg)
	if err != nil {
		return nil, err
	}

	snapshot := &schema.Snapshot{}
	if dumpPaths := cfg.ResolvedDumpfiles(abs); len(dumpPaths) > 0 {
		idx, err := schema.LoadIndex(dumpPaths)
		if err != nil {
			// A broken schema degrades lookups; everything else still works.
			log.Printf("Warning: schema not loaded: %v", err)
		} else {
			snapshot.Replace(idx)
		}
	}

	cache, err := workspace.NewIncludeCache(includeCacheCapacity)
	if err != nil {
		return nil, err
	}
	paths := &workspace.PathResolver{Root: abs, Propath: cfg.ResolvedPropath(abs)}
	resolver := &workspace.Resolver{Paths: paths, Cache: cache, Parser: parser}
	store := workspace.NewStore()

	return &Service{
		Root:     abs,
		Config:   cfg,
		Matchers: matchers,
		Schema:   snapshot,
		Parser:   parser,
		Store:    store,
		Cache:    cache,
		Paths:    paths,
		Resolver: resolver,
		Engine: &diagnose.Engine{
			Store:         store,
			Resolver:      resolver,
			Schema:        snapshot,
			Matchers:      matchers,
			WorkspaceRoot: abs,
		},
	}, nil
}

// WatchSchema reloads the snapshot when a dump file changes. One-shot
// commands skip this; the long-running server calls it once.
func (s *Service) WatchSchema(ctx context.Context) error {
	dumpPaths := s.Config.ResolvedDumpfiles(s.Root)
	if len(dumpPaths) == 0 {
		return nil
	}
	watcher, err := schema.NewWatcher(s.Schema, dumpPaths, nil)
	if err != nil {
		return err
	}
	s.watcher = watcher
	watcher.Start(ctx)
	return nil
}

// Close releases documents, the include cache and the schema watcher.
func (s *Service) Close() {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.Printf("Warning: stopping schema watcher: %v", err)
		}
	}
	s.Store.CloseAll()
	if s.Cache != nil {
		s.Cache.Close()
	}
}

// Check diagnoses a file on disk.
func (s *Service) Check(ctx context.Context, path string) ([]diagnose.Diagnostic, error) {
	abs, text, root, tree, err := s.parseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer closeTree(tree)
	return s.Engine.CheckDocument(ctx, abs, text, root, nil)
}

// Definition resolves the symbol at a 1-based line and column. A target in
// the requesting file itself reports that file's path.
func (s *Service) Definition(ctx context.Context, path string, line, column int) (resolve.Definition, bool, error) {
	doc, err := s.LoadDocument(ctx, path)
	if err != nil {
		return resolve.Definition{}, false, err
	}
	defer doc.Close()

	def, ok := resolve.Resolve(resolve.Params{
		DocPath: doc.Path,
		Text:    doc.Text,
		Root:    doc.Root,
		Offset:  OffsetAt(doc.Text, line, column),
		Walk:    doc.Walk,
		Schema:  s.Schema.Current(),
		Paths:   s.Paths,
	})
	if ok && def.Path == "" {
		def.Path = doc.Path
	}
	return def, ok, nil
}

// Completions lists completion candidates at a 1-based line and column.
func (s *Service) Completions(ctx context.Context, path string, line, column int) ([]complete.Item, error) {
	if !s.Matchers.Completion {
		return nil, nil
	}
	doc, err := s.LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return complete.Items(complete.Params{
		Text:   doc.Text,
		Root:   doc.Root,
		Offset: OffsetAt(doc.Text, line, column),
		Walk:   doc.Walk,
		Schema: s.Schema.Current(),
	}), nil
}

// Symbols lists the file's definition symbols filtered by prefix.
func (s *Service) Symbols(ctx context.Context, path, prefix string) ([]complete.Item, error) {
	doc, err := s.LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return complete.DocumentSymbols(complete.Params{
		Text: doc.Text,
		Root: doc.Root,
		Walk: doc.Walk,
	}, prefix), nil
}

// SignatureHelp describes the call surrounding a 1-based line and column.
func (s *Service) SignatureHelp(ctx context.Context, path string, line, column int) (complete.SignatureHelp, bool, error) {
	doc, err := s.LoadDocument(ctx, path)
	if err != nil {
		return complete.SignatureHelp{}, false, err
	}
	defer doc.Close()

	help, ok := complete.Signature(complete.Params{
		Text:   doc.Text,
		Root:   doc.Root,
		Offset: OffsetAt(doc.Text, line, column),
		Walk:   doc.Walk,
	})
	return help, ok, nil
}

// IncludeTree renders the transitive include tree of a file.
func (s *Service) IncludeTree(ctx context.Context, path string) ([]string, error) {
	doc, err := s.LoadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return workspace.IncludeTreeLines(doc.Path, doc.Walk), nil
}
