// Package complete produces completion listings and signature help from a
// document, its include closure and the schema index.
package complete

import (
	"sort"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// Item is one completion candidate.
type Item struct {
	Label         string
	Kind          analysis.SymbolKind
	Detail        string
	Documentation string
}

// Params carries a completion request. Walk and Schema may be nil.
type Params struct {
	Text   string
	Root   syntax.Node
	Offset int

	Walk   *workspace.IncludeWalk
	Schema *schema.Index
}

// Items lists candidates at the cursor. After "table." only that table's
// fields are offered; otherwise document symbols, include symbols and schema
// table names, filtered by the identifier prefix being typed.
func Items(p Params) []Item {
	prefix := analysis.IdentPrefix(p.Text, p.Offset)
	prefixStart := p.Offset - len(prefix)

	var items []Item
	if analysis.HasDotBeforeCursor(p.Text, prefixStart) {
		items = qualifiedItems(p, prefix, prefixStart)
	} else {
		items = unqualifiedItems(p)
	}
	return finishItems(items, prefix)
}

// qualifiedItems completes fields of the table named before the dot. Buffer
// aliases map to their target table first.
func qualifiedItems(p Params, prefix string, prefixStart int) []Item {
	qualifier, ok := analysis.QualifierBeforeDot(p.Text, prefixStart+len(prefix), prefix)
	if !ok {
		return nil
	}

	src := []byte(p.Text)
	table := qualifier
	if p.Root != nil {
		if mapped, ok := analysis.BestBufferTable(analysis.BufferMappings(p.Root, src), qualifier, p.Offset); ok {
			table = mapped
		}
	}
	tableUpper := strings.ToUpper(strings.TrimSpace(table))

	var items []Item
	for _, def := range localTablesInClosure(p) {
		if def.NameUpper != tableUpper {
			continue
		}
		for _, field := range def.Fields {
			items = append(items, fieldItem(field))
		}
	}
	if p.Schema != nil {
		for _, field := range p.Schema.TableFields(tableUpper) {
			items = append(items, fieldItem(field))
		}
	}
	return items
}

func localTablesInClosure(p Params) []analysis.LocalTable {
	var out []analysis.LocalTable
	if p.Root != nil {
		out = append(out, analysis.LocalTables(p.Root, []byte(p.Text))...)
	}
	if p.Walk != nil {
		for _, file := range p.Walk.Files {
			if file.Root != nil {
				out = append(out, analysis.LocalTables(file.Root, []byte(file.Text))...)
			}
		}
	}
	return out
}

func fieldItem(field analysis.TableField) Item {
	detail := field.Type
	if detail == "" {
		detail = "Field"
	}
	return Item{
		Label:         field.Name,
		Kind:          analysis.KindField,
		Detail:        detail,
		Documentation: fieldDocumentation(field),
	}
}

// fieldDocumentation renders the dump tuning lines a field carries.
func fieldDocumentation(field analysis.TableField) string {
	var lines []string
	if field.Format != "" {
		lines = append(lines, "Format: "+field.Format)
	}
	if field.Label != "" {
		lines = append(lines, "Label: "+field.Label)
	}
	if field.Description != "" {
		lines = append(lines, field.Description)
	}
	return strings.Join(lines, "\n")
}

func unqualifiedItems(p Params) []Item {
	var items []Item
	if p.Root != nil {
		for _, sym := range analysis.DefinitionSymbols(p.Root, []byte(p.Text)) {
			items = append(items, Item{Label: sym.Label, Kind: sym.Kind, Detail: sym.Detail})
		}
	}
	if p.Walk != nil {
		for _, file := range p.Walk.Files {
			if file.Root == nil {
				continue
			}
			for _, sym := range analysis.DefinitionSymbols(file.Root, []byte(file.Text)) {
				items = append(items, Item{Label: sym.Label, Kind: sym.Kind, Detail: sym.Detail})
			}
		}
	}
	if p.Schema != nil {
		for _, table := range p.Schema.Tables() {
			items = append(items, Item{Label: table, Kind: analysis.KindStruct, Detail: "Table"})
		}
	}
	return items
}

// DocumentSymbols lists the definition symbols of the document and its
// includes, filtered by prefix. Schema tables are not part of a document
// listing.
func DocumentSymbols(p Params, prefix string) []Item {
	p.Schema = nil
	return finishItems(unqualifiedItems(p), prefix)
}

// finishItems filters by prefix, deduplicates case-insensitively keeping the
// first occurrence, and sorts.
func finishItems(items []Item, prefix string) []Item {
	prefixUpper := strings.ToUpper(prefix)
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		upper := strings.ToUpper(item.Label)
		if prefixUpper != "" && !strings.HasPrefix(upper, prefixUpper) {
			continue
		}
		if seen[upper] {
			continue
		}
		seen[upper] = true
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		iu, ju := strings.ToUpper(out[i].Label), strings.ToUpper(out[j].Label)
		if iu != ju {
			return iu < ju
		}
		return out[i].Label < out[j].Label
	})
	return out
}
