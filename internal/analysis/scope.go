package analysis

import "github.com/mvp-joe/abl-cortex/internal/syntax"

// ByteScope is the byte span of the smallest callable body containing an
// offset, or the whole file when the offset is at top level.
type ByteScope struct {
	Start int
	End   int
}

// Contains reports whether the byte offset falls inside the scope.
func (s ByteScope) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// ContainingScope ascends from the smallest named node at offset to the
// nearest callable body.
func ContainingScope(root syntax.Node, offset int) (ByteScope, bool) {
	if root == nil {
		return ByteScope{}, false
	}
	node := syntax.NamedDescendantForByteRange(root, offset, offset)
	if node == nil {
		return ByteScope{}, false
	}
	for node != nil {
		if isScopeKind(node.Kind()) {
			return ByteScope{Start: node.StartByte(), End: node.EndByte()}, true
		}
		node = node.Parent()
	}
	return ByteScope{Start: root.StartByte(), End: root.EndByte()}, true
}
