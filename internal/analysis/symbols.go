// Package analysis extracts typed records from ABL syntax trees: definitions,
// preprocessor defines, buffer aliases, local tables, call sites, typed
// bindings and identifier references. All extractors are pure functions over
// syntax.Node; nodes that do not match the expected shape are skipped.
package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// SymbolKind classifies a definition symbol for completion and for the
// known-variable/known-function split in diagnostics.
type SymbolKind int

const (
	KindVariable SymbolKind = iota
	KindFunction
	KindMethod
	KindConstructor
	KindClass
	KindInterface
	KindProperty
	KindEvent
	KindStruct
	KindField
)

// IsCallable reports whether the kind names something invoked with arguments.
func (k SymbolKind) IsCallable() bool {
	return k == KindFunction || k == KindMethod || k == KindConstructor
}

func (k SymbolKind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	case KindStruct:
		return "struct"
	case KindField:
		return "field"
	}
	return "symbol"
}

// Symbol is a definition extracted for completion listings.
type Symbol struct {
	Label  string
	Kind   SymbolKind
	Detail string
}

// DefinitionSite is a definition anchored at its name occurrence.
type DefinitionSite struct {
	Label     string
	Range     syntax.Range
	StartByte int
}

type kindEntry struct {
	kind   SymbolKind
	detail string
}

var definitionKinds = map[string]kindEntry{
	"variable_definition":           {KindVariable, "ABL variable"},
	"parameter_definition":          {KindVariable, "ABL variable"},
	"function_definition":           {KindFunction, "ABL function"},
	"function_forward_definition":   {KindFunction, "ABL function"},
	"procedure_definition":          {KindFunction, "ABL procedure"},
	"procedure_forward_definition":  {KindFunction, "ABL procedure"},
	"method_definition":             {KindMethod, "ABL method"},
	"constructor_definition":        {KindConstructor, "ABL constructor"},
	"destructor_definition":         {KindMethod, "ABL destructor"},
	"class_definition":              {KindClass, "ABL class"},
	"interface_definition":          {KindInterface, "ABL interface"},
	"property_definition":           {KindProperty, "ABL property"},
	"event_definition":              {KindEvent, "ABL event"},
	"buffer_definition":             {KindVariable, "ABL buffer"},
	"dataset_definition":            {KindStruct, "ABL data definition"},
	"temp_table_definition":         {KindStruct, "ABL data definition"},
	"work_table_definition":         {KindStruct, "ABL data definition"},
	"workfile_definition":           {KindStruct, "ABL data definition"},
	"query_definition":              {KindStruct, "ABL data definition"},
	"data_source_definition":        {KindStruct, "ABL data definition"},
	"stream_definition":             {KindVariable, "ABL stream"},
	"browse_definition":             {KindVariable, "ABL UI definition"},
	"button_definition":             {KindVariable, "ABL UI definition"},
	"frame_definition":              {KindVariable, "ABL UI definition"},
	"image_definition":              {KindVariable, "ABL UI definition"},
	"menu_definition":               {KindVariable, "ABL UI definition"},
	"submenu_definition":            {KindVariable, "ABL UI definition"},
	"rectangle_definition":          {KindVariable, "ABL UI definition"},
}

// definitionKindFor maps a node kind to its symbol classification. Unknown
// *_definition kinds fall into a generic variable bucket so grammar additions
// still surface their names.
func definitionKindFor(nodeKind string) (kindEntry, bool) {
	if entry, ok := definitionKinds[nodeKind]; ok {
		return entry, true
	}
	if strings.HasSuffix(nodeKind, "_definition") || strings.HasSuffix(nodeKind, "_forward_definition") {
		return kindEntry{KindVariable, "ABL definition"}, true
	}
	return kindEntry{}, false
}

// DefinitionSymbols collects every definition symbol in the tree.
func DefinitionSymbols(root syntax.Node, src []byte) []Symbol {
	var out []Symbol
	collectDefinitionSymbols(root, src, &out)
	return out
}

func collectDefinitionSymbols(node syntax.Node, src []byte, out *[]Symbol) {
	if node == nil {
		return
	}
	if entry, ok := definitionKindFor(node.Kind()); ok {
		detail := symbolDetail(node, src, entry.detail)
		if name := node.ChildByFieldName("name"); name != nil {
			pushSymbol(name, src, entry.kind, detail, out)
		} else if ident := syntax.FirstDescendantByKind(node, "identifier"); ident != nil {
			// Older grammar revisions omit the name field.
			pushSymbol(ident, src, entry.kind, detail, out)
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		collectDefinitionSymbols(node.Child(i), src, out)
	}
}

func pushSymbol(nameNode syntax.Node, src []byte, kind SymbolKind, detail string, out *[]Symbol) {
	label := strings.TrimSpace(syntax.Text(nameNode, src))
	if label == "" {
		return
	}
	*out = append(*out, Symbol{Label: label, Kind: kind, Detail: detail})
}

func symbolDetail(node syntax.Node, src []byte, defaultDetail string) string {
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		if ty := strings.TrimSpace(syntax.Text(typeNode, src)); ty != "" {
			return ty
		}
	}
	return defaultDetail
}

// DefinitionSites collects every definition site, anchored at the name node.
func DefinitionSites(root syntax.Node, src []byte) []DefinitionSite {
	var out []DefinitionSite
	collectDefinitionSites(root, src, func(string) bool { return true }, &out)
	return out
}

// FunctionDefinitionSites collects only callable definition sites.
func FunctionDefinitionSites(root syntax.Node, src []byte) []DefinitionSite {
	callable := func(nodeKind string) bool {
		entry, ok := definitionKindFor(nodeKind)
		return ok && entry.kind.IsCallable()
	}
	var out []DefinitionSite
	collectDefinitionSites(root, src, callable, &out)
	return out
}

func collectDefinitionSites(node syntax.Node, src []byte, accept func(string) bool, out *[]DefinitionSite) {
	if node == nil {
		return
	}
	if _, ok := definitionKindFor(node.Kind()); ok && accept(node.Kind()) {
		name := node.ChildByFieldName("name")
		if name == nil {
			name = syntax.FirstDescendantByKind(node, "identifier")
		}
		if name != nil {
			label := strings.TrimSpace(syntax.Text(name, src))
			if label != "" {
				*out = append(*out, DefinitionSite{
					Label:     label,
					Range:     syntax.NodeRange(name),
					StartByte: name.StartByte(),
				})
			}
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		collectDefinitionSites(node.Child(i), src, accept, out)
	}
}

// LocalTableFieldSites collects field name sites of temp-table, work-table
// and workfile definitions so field references resolve like plain symbols.
func LocalTableFieldSites(root syntax.Node, src []byte) []DefinitionSite {
	var out []DefinitionSite
	syntax.Walk(root, func(n syntax.Node) bool {
		if !isLocalTableDefinitionKind(n.Kind()) {
			return true
		}
		syntax.Walk(n, func(f syntax.Node) bool {
			if f.Kind() != "temp_table_field" && f.Kind() != "field" {
				return true
			}
			name := f.ChildByFieldName("name")
			if name == nil {
				return true
			}
			label := strings.TrimSpace(syntax.Text(name, src))
			if label != "" {
				out = append(out, DefinitionSite{
					Label:     label,
					Range:     syntax.NodeRange(name),
					StartByte: name.StartByte(),
				})
			}
			return true
		})
		return true
	})
	return out
}
