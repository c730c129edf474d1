package analysis

import (
	"sort"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// TableField describes one field of a local or schema table.
type TableField struct {
	Name        string
	Type        string
	Format      string
	Label       string
	Description string
}

// LocalTable is a temp-table, work-table or workfile definition.
type LocalTable struct {
	NameUpper      string
	Fields         []TableField
	LikeTableUpper string
}

func isLocalTableDefinitionKind(kind string) bool {
	switch kind {
	case "temp_table_definition", "work_table_definition", "workfile_definition":
		return true
	}
	return false
}

// LocalTables collects local table definitions with their fields sorted
// case-insensitively and deduplicated.
func LocalTables(root syntax.Node, src []byte) []LocalTable {
	var out []LocalTable
	syntax.Walk(root, func(n syntax.Node) bool {
		if !isLocalTableDefinitionKind(n.Kind()) {
			return true
		}
		if def, ok := parseLocalTable(n, src); ok {
			out = append(out, def)
		}
		return true
	})
	return out
}

func parseLocalTable(node syntax.Node, src []byte) (LocalTable, bool) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return LocalTable{}, false
	}
	nameUpper := strings.ToUpper(strings.TrimSpace(syntax.Text(name, src)))
	if nameUpper == "" {
		return LocalTable{}, false
	}

	var fields []TableField
	syntax.Walk(node, func(f syntax.Node) bool {
		if f.Kind() != "temp_table_field" && f.Kind() != "field" {
			return true
		}
		fieldName := f.ChildByFieldName("name")
		if fieldName == nil {
			return true
		}
		fn := strings.TrimSpace(syntax.Text(fieldName, src))
		if fn == "" {
			return true
		}
		field := TableField{Name: fn}
		if ty := f.ChildByFieldName("type"); ty != nil {
			field.Type = strings.TrimSpace(syntax.Text(ty, src))
		}
		fields = append(fields, field)
		return true
	})

	sort.SliceStable(fields, func(i, j int) bool {
		iu, ju := strings.ToUpper(fields[i].Name), strings.ToUpper(fields[j].Name)
		if iu != ju {
			return iu < ju
		}
		return fields[i].Name < fields[j].Name
	})
	fields = dedupeFieldsFold(fields)

	return LocalTable{
		NameUpper:      nameUpper,
		Fields:         fields,
		LikeTableUpper: extractLikeTableUpper(node, src),
	}, true
}

func dedupeFieldsFold(fields []TableField) []TableField {
	out := fields[:0]
	for _, f := range fields {
		if len(out) > 0 && strings.EqualFold(out[len(out)-1].Name, f.Name) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// extractLikeTableUpper pulls the LIKE target from a table definition,
// stripping an extent suffix and a database qualifier.
func extractLikeTableUpper(node syntax.Node, src []byte) string {
	for i := 0; i < node.ChildCount(); i++ {
		ch := node.Child(i)
		if ch == nil {
			continue
		}
		if ch.Kind() != "like_phrase" && ch.Kind() != "like_sequential_phrase" {
			continue
		}
		likeNode := ch.ChildByFieldName("like")
		if likeNode == nil {
			continue
		}
		like := strings.TrimSpace(syntax.Text(likeNode, src))
		if idx := strings.IndexByte(like, '['); idx >= 0 {
			like = like[:idx]
		}
		like = lastDotSegment(like)
		if like != "" {
			return strings.ToUpper(like)
		}
	}
	return ""
}
