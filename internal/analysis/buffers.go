package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// BufferMapping is a DEFINE BUFFER alias FOR table declaration. Table keeps
// only the last dot-separated segment so database qualifiers drop away.
type BufferMapping struct {
	Alias     string
	Table     string
	StartByte int
}

// BufferMappings collects buffer alias declarations in source order.
func BufferMappings(root syntax.Node, src []byte) []BufferMapping {
	var out []BufferMapping
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() != "buffer_definition" {
			return true
		}
		name := n.ChildByFieldName("name")
		table := n.ChildByFieldName("table")
		if name == nil || table == nil {
			return true
		}
		alias := strings.TrimSpace(syntax.Text(name, src))
		tableName := lastDotSegment(syntax.Text(table, src))
		if alias != "" && tableName != "" {
			out = append(out, BufferMapping{
				Alias:     alias,
				Table:     tableName,
				StartByte: name.StartByte(),
			})
		}
		return true
	})
	return out
}

// BestBufferTable returns the normalized table key of the alias declaration
// closest before offset, else closest after.
func BestBufferTable(mappings []BufferMapping, alias string, offset int) (string, bool) {
	var before, after *BufferMapping
	for i := range mappings {
		m := &mappings[i]
		if !strings.EqualFold(m.Alias, alias) {
			continue
		}
		if m.StartByte <= offset {
			if before == nil || m.StartByte > before.StartByte {
				before = m
			}
		} else {
			if after == nil || m.StartByte < after.StartByte {
				after = m
			}
		}
	}
	if before != nil {
		return NormalizeLookupKey(before.Table, false), true
	}
	if after != nil {
		return NormalizeLookupKey(after.Table, false), true
	}
	return "", false
}

func lastDotSegment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if idx := strings.LastIndexByte(trimmed, '.'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.TrimSpace(trimmed)
}
