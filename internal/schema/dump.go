// Package schema indexes database definitions from Progress .df dump files.
// The index is immutable once built; readers always see a complete snapshot
// and reloads swap the whole index atomically.
package schema

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
)

// Location points at a definition inside a dump file. Line and Column are
// zero-based.
type Location struct {
	Path   string
	Line   int
	Column int
}

// less orders locations by path, then line, then column, so lookups across
// several dump files stay deterministic.
func (l Location) less(other Location) bool {
	if l.Path != other.Path {
		return l.Path < other.Path
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// DumpTable is an ADD TABLE record.
type DumpTable struct {
	Name     string
	Location Location
}

// DumpField is an ADD FIELD record with its tuning lines applied.
type DumpField struct {
	Name     string
	Table    string
	Field    analysis.TableField
	Location Location
}

// DumpIndex is an ADD INDEX record with its INDEX-FIELD lines.
type DumpIndex struct {
	Name     string
	Table    string
	Fields   []string
	Location Location
}

// Dump is the parsed content of one .df file.
type Dump struct {
	Path    string
	Tables  []DumpTable
	Fields  []DumpField
	Indexes []DumpIndex
}

// ParseDump scans a .df dump line by line. The dump format is line-oriented:
// ADD statements open a record and indented tuning lines amend the most
// recent one. Records with unbalanced quoting are skipped.
func ParseDump(path string, data []byte) *Dump {
	dump := &Dump{Path: path}

	var lastField *DumpField
	var lastIndex *DumpIndex

	lines := strings.Split(string(data), "\n")
	for row, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "ADD TABLE "):
			lastField, lastIndex = nil, nil
			name, col, ok := firstQuoted(line)
			if !ok {
				continue
			}
			dump.Tables = append(dump.Tables, DumpTable{
				Name:     name,
				Location: Location{Path: path, Line: row, Column: col},
			})

		case strings.HasPrefix(trimmed, "ADD FIELD "):
			lastField, lastIndex = nil, nil
			name, col, ok := firstQuoted(line)
			if !ok {
				continue
			}
			table, ok := quotedAfterKeyword(trimmed, ` OF `)
			if !ok {
				continue
			}
			field := DumpField{
				Name:     name,
				Table:    table,
				Field:    analysis.TableField{Name: name, Type: typeAfterAs(trimmed)},
				Location: Location{Path: path, Line: row, Column: col},
			}
			dump.Fields = append(dump.Fields, field)
			lastField = &dump.Fields[len(dump.Fields)-1]

		case strings.HasPrefix(trimmed, "ADD INDEX "):
			lastField, lastIndex = nil, nil
			name, col, ok := firstQuoted(line)
			if !ok {
				continue
			}
			table, ok := quotedAfterKeyword(trimmed, ` ON `)
			if !ok {
				continue
			}
			dump.Indexes = append(dump.Indexes, DumpIndex{
				Name:     name,
				Table:    table,
				Location: Location{Path: path, Line: row, Column: col},
			})
			lastIndex = &dump.Indexes[len(dump.Indexes)-1]

		case lastIndex != nil && strings.HasPrefix(trimmed, "INDEX-FIELD "):
			if fieldName, _, ok := firstQuoted(trimmed); ok {
				lastIndex.Fields = append(lastIndex.Fields, fieldName)
			}

		case lastField != nil && strings.HasPrefix(trimmed, "FORMAT "):
			if v, _, ok := firstQuoted(trimmed); ok {
				lastField.Field.Format = v
			}

		case lastField != nil && strings.HasPrefix(trimmed, "LABEL "):
			if v, _, ok := firstQuoted(trimmed); ok {
				lastField.Field.Label = v
			}

		case lastField != nil && strings.HasPrefix(trimmed, "DESCRIPTION "):
			if v, _, ok := firstQuoted(trimmed); ok {
				lastField.Field.Description = v
			}

		case trimmed == "":
			// Blank lines end the current record block.
			lastField, lastIndex = nil, nil
		}
	}

	return dump
}

// firstQuoted extracts the first quoted string in line and returns its
// column. The closing quote must match the opening one.
func firstQuoted(line string) (string, int, bool) {
	idx := strings.IndexAny(line, `"'`)
	if idx < 0 {
		return "", 0, false
	}
	quote := line[idx]
	rest := line[idx+1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return "", 0, false
	}
	value := rest[:end]
	if value == "" {
		return "", 0, false
	}
	return value, idx + 1, true
}

// quotedAfterKeyword finds keyword in line and extracts the quoted string
// that follows it.
func quotedAfterKeyword(line, keyword string) (string, bool) {
	idx := strings.Index(line, keyword)
	if idx < 0 {
		return "", false
	}
	value, _, ok := firstQuoted(line[idx+len(keyword):])
	return value, ok
}

// typeAfterAs returns the bare word after " AS ", the field's data type.
func typeAfterAs(line string) string {
	idx := strings.Index(line, " AS ")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(line[idx+len(" AS "):])
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
