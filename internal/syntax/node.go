// Package syntax defines the parse-tree seam the rest of the module is
// written against. Concrete trees come from the tree-sitter adapter in the
// treesitter subpackage or from the syntaxtest builder in tests; everything
// above this package sees only Node, Tree and Parser.
package syntax

import "context"

// Node is an opaque handle into a parsed tree.
type Node interface {
	// Kind returns the grammar node type, e.g. "variable_definition".
	Kind() string

	StartByte() int
	EndByte() int
	StartPosition() Position
	EndPosition() Position

	ChildCount() int
	Child(i int) Node
	NamedChildCount() int
	NamedChild(i int) Node
	ChildByFieldName(name string) Node
	Parent() Node

	IsNamed() bool
	IsError() bool
	IsMissing() bool
}

// Tree owns a parsed document. Close releases parser-side resources; using
// nodes from a closed tree is undefined.
type Tree interface {
	RootNode() Node
	Close()
}

// Parser turns source text into a Tree.
type Parser interface {
	Parse(ctx context.Context, src []byte) (Tree, error)
}

// Walk visits n and all of its children in pre-order. Returning false from
// visit skips the node's subtree.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}

// DirectChildByKind returns the first direct child of n with the given kind.
func DirectChildByKind(n Node, kind string) Node {
	if n == nil {
		return nil
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// FirstDescendantByKind returns the first node of the given kind in pre-order,
// including n itself.
func FirstDescendantByKind(n Node, kind string) Node {
	var found Node
	Walk(n, func(c Node) bool {
		if found != nil {
			return false
		}
		if c.Kind() == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// CollectByKind returns every node of the given kind in pre-order.
func CollectByKind(n Node, kind string) []Node {
	var out []Node
	Walk(n, func(c Node) bool {
		if c.Kind() == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// CountByKind counts nodes of the given kind in pre-order.
func CountByKind(n Node, kind string) int {
	count := 0
	Walk(n, func(c Node) bool {
		if c.Kind() == kind {
			count++
		}
		return true
	})
	return count
}

// Text returns the source slice a node spans. Out-of-range spans yield "".
func Text(n Node, src []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

// NodeRange returns the node's position range.
func NodeRange(n Node) Range {
	return Range{Start: n.StartPosition(), End: n.EndPosition()}
}

// NamedDescendantForByteRange returns the smallest named node whose byte span
// covers [start, end], or nil.
func NamedDescendantForByteRange(root Node, start, end int) Node {
	n := DescendantForByteRange(root, start, end)
	for n != nil && !n.IsNamed() {
		n = n.Parent()
	}
	return n
}

// DescendantForByteRange returns the smallest node whose byte span covers
// [start, end], or nil when the range falls outside root.
func DescendantForByteRange(root Node, start, end int) Node {
	if root == nil || start < root.StartByte() || end > root.EndByte() {
		return nil
	}
	n := root
	for {
		var next Node
		for i := 0; i < n.ChildCount(); i++ {
			c := n.Child(i)
			if c != nil && c.StartByte() <= start && end <= c.EndByte() {
				next = c
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}
