// Package treesitter adapts tree-sitter trees to the syntax interfaces. The
// grammar is injected by the caller, so this package works with whatever
// language the host application loads.
package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

type parser struct {
	language *sitter.Language
}

// NewParser returns a syntax.Parser backed by the given tree-sitter language.
func NewParser(language *sitter.Language) syntax.Parser {
	return &parser{language: language}
}

func (p *parser) Parse(ctx context.Context, src []byte) (syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	defer tsParser.Close()

	if err := tsParser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	tsTree := tsParser.Parse(src, nil)
	if tsTree == nil {
		return nil, fmt.Errorf("parse failed")
	}
	return &tree{inner: tsTree}, nil
}

type tree struct {
	inner *sitter.Tree
}

func (t *tree) RootNode() syntax.Node {
	return wrap(t.inner.RootNode())
}

func (t *tree) Close() {
	t.inner.Close()
}

type node struct {
	inner *sitter.Node
}

// wrap returns an untyped nil for nil tree-sitter nodes so callers can
// compare against plain nil.
func wrap(n *sitter.Node) syntax.Node {
	if n == nil {
		return nil
	}
	return &node{inner: n}
}

func (n *node) Kind() string { return n.inner.Kind() }

func (n *node) StartByte() int { return int(n.inner.StartByte()) }
func (n *node) EndByte() int   { return int(n.inner.EndByte()) }

func (n *node) StartPosition() syntax.Position {
	p := n.inner.StartPosition()
	return syntax.Position{Row: int(p.Row), Column: int(p.Column)}
}

func (n *node) EndPosition() syntax.Position {
	p := n.inner.EndPosition()
	return syntax.Position{Row: int(p.Row), Column: int(p.Column)}
}

func (n *node) ChildCount() int { return int(n.inner.ChildCount()) }

func (n *node) Child(i int) syntax.Node {
	if i < 0 {
		return nil
	}
	return wrap(n.inner.Child(uint(i)))
}

func (n *node) NamedChildCount() int { return int(n.inner.NamedChildCount()) }

func (n *node) NamedChild(i int) syntax.Node {
	if i < 0 {
		return nil
	}
	return wrap(n.inner.NamedChild(uint(i)))
}

func (n *node) ChildByFieldName(name string) syntax.Node {
	return wrap(n.inner.ChildByFieldName(name))
}

func (n *node) Parent() syntax.Node { return wrap(n.inner.Parent()) }

func (n *node) IsNamed() bool   { return n.inner.IsNamed() }
func (n *node) IsError() bool   { return n.inner.IsError() }
func (n *node) IsMissing() bool { return n.inner.IsMissing() }
