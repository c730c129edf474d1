// Package syntaxtest builds syntax trees by hand for package tests. Tests
// declare the node shapes they care about and attach them to source text;
// byte offsets are supplied explicitly, line/column positions are derived.
package syntaxtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// Node is a hand-built syntax node.
type Node struct {
	kind      string
	start     int
	end       int
	named     bool
	isError   bool
	isMissing bool

	children []*Node
	fields   map[string]*Node
	parent   *Node
	tree     *Tree
}

// N creates a named node spanning [start, end) bytes with the given children.
func N(kind string, start, end int, children ...*Node) *Node {
	n := &Node{kind: kind, start: start, end: end, named: true}
	n.Add(children...)
	return n
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// AddField appends c as a child reachable through the given field name.
func (n *Node) AddField(name string, c *Node) *Node {
	if c == nil {
		return n
	}
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}
	n.fields[name] = c
	return n.Add(c)
}

// Anon marks the node as unnamed (punctuation, keywords).
func (n *Node) Anon() *Node { n.named = false; return n }

// AsError marks the node as an ERROR node.
func (n *Node) AsError() *Node { n.isError = true; return n }

// AsMissing marks the node as a MISSING node.
func (n *Node) AsMissing() *Node { n.isMissing = true; return n }

func (n *Node) Kind() string { return n.kind }

func (n *Node) StartByte() int { return n.start }
func (n *Node) EndByte() int   { return n.end }

func (n *Node) StartPosition() syntax.Position { return n.tree.position(n.start) }
func (n *Node) EndPosition() syntax.Position   { return n.tree.position(n.end) }

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) syntax.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.children {
		if c.named {
			count++
		}
	}
	return count
}

func (n *Node) NamedChild(i int) syntax.Node {
	for _, c := range n.children {
		if !c.named {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

func (n *Node) ChildByFieldName(name string) syntax.Node {
	c, ok := n.fields[name]
	if !ok {
		return nil
	}
	return c
}

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) IsNamed() bool   { return n.named }
func (n *Node) IsError() bool   { return n.isError }
func (n *Node) IsMissing() bool { return n.isMissing }

// Tree is a hand-built syntax tree over source text.
type Tree struct {
	root       *Node
	lineStarts []int
	closed     atomic.Bool
}

// Build attaches root (and all descendants) to src and returns the tree.
func Build(src string, root *Node) *Tree {
	t := &Tree{root: root, lineStarts: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
	var attach func(n *Node)
	attach = func(n *Node) {
		n.tree = t
		for _, c := range n.children {
			attach(c)
		}
	}
	attach(root)
	return t
}

// File builds a source_code root spanning all of src with the given children.
func File(src string, children ...*Node) *Tree {
	return Build(src, N("source_code", 0, len(src), children...))
}

func (t *Tree) RootNode() syntax.Node { return t.root }

func (t *Tree) Close() { t.closed.Store(true) }

// Closed reports whether Close has been called, for cache lifecycle tests.
// Caches may close evicted trees from their own goroutines, so the flag is
// atomic.
func (t *Tree) Closed() bool { return t.closed.Load() }

func (t *Tree) position(offset int) syntax.Position {
	row := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1
	return syntax.Position{Row: row, Column: offset - t.lineStarts[row]}
}

// Ident creates an identifier node over the first occurrence of name in src
// at or after from. It panics when the name is absent, which in a test means
// the fixture is wrong.
func Ident(src, name string, from int) *Node {
	start := strings.Index(src[from:], name)
	if start < 0 {
		panic(fmt.Sprintf("syntaxtest: %q not found in source", name))
	}
	start += from
	return N("identifier", start, start+len(name))
}

// Parser serves pre-built trees by exact source text. Unknown sources fall
// back to an empty source_code tree.
type Parser struct {
	mu    sync.Mutex
	trees map[string]*Tree

	// Parsed records every source handed to Parse, in order.
	Parsed []string
}

// NewParser creates a scripted parser.
func NewParser() *Parser {
	return &Parser{trees: make(map[string]*Tree)}
}

// Script registers the tree returned for the given source text.
func (p *Parser) Script(src string, t *Tree) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trees[src] = t
}

func (p *Parser) Parse(ctx context.Context, src []byte) (syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Parsed = append(p.Parsed, string(src))
	if t, ok := p.trees[string(src)]; ok {
		return t, nil
	}
	return File(string(src)), nil
}
