package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// Document is an on-disk file loaded for one request: its text, parse tree
// and include walk. Close releases the tree.
type Document struct {
	Path string
	Text string
	Root syntax.Node
	Walk *workspace.IncludeWalk

	tree syntax.Tree
}

// Close releases the document's parse tree.
func (d *Document) Close() {
	closeTree(d.tree)
	d.tree = nil
}

func closeTree(tree syntax.Tree) {
	if tree != nil {
		tree.Close()
	}
}

// LoadDocument reads, parses and include-walks a file.
func (s *Service) LoadDocument(ctx context.Context, path string) (*Document, error) {
	abs, text, root, tree, err := s.parseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	walk, err := s.Resolver.WalkIncludes(ctx, abs, text, root, nil)
	if err != nil {
		closeTree(tree)
		return nil, err
	}
	return &Document{Path: abs, Text: text, Root: root, Walk: walk, tree: tree}, nil
}

func (s *Service) parseFile(ctx context.Context, path string) (abs, text string, root syntax.Node, tree syntax.Tree, err error) {
	abs = path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.Root, path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", "", nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text = string(data)

	if s.Parser != nil {
		tree, err = s.Parser.Parse(ctx, data)
		if err != nil {
			return "", "", nil, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		root = tree.RootNode()
	}
	return abs, text, root, tree, nil
}

// OffsetAt converts a 1-based line and column to a byte offset, clamped to
// the line's end and the text's length.
func OffsetAt(text string, line, column int) int {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}

	offset := 0
	for line > 1 {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
		line--
	}

	lineEnd := len(text)
	if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
		lineEnd = offset + nl
	}
	offset += column - 1
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}
