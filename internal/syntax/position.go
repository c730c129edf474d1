package syntax

import "fmt"

// Position is a zero-based line/column pair. Column counts UTF-8 bytes, the
// convention the rest of the module works in.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Range is a half-open [Start, End) span of positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Before reports whether p comes strictly before q in document order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Column < q.Column
}

// PositionToByteOffset maps a line/column position to a byte offset in text.
// The column clamps to the end of its line; a row past the last line maps to
// len(text).
func PositionToByteOffset(text string, pos Position) int {
	offset := 0
	row := 0
	for row < pos.Row {
		idx := indexByteFrom(text, offset, '\n')
		if idx < 0 {
			return len(text)
		}
		offset = idx + 1
		row++
	}
	lineEnd := indexByteFrom(text, offset, '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	}
	offset += pos.Column
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

func indexByteFrom(s string, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
