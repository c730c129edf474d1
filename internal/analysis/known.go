package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CollectKnownSymbols splits a file's definition symbols into variable-like
// and callable name sets, uppercased.
func CollectKnownSymbols(root syntax.Node, src []byte, knownVariables, knownFunctions map[string]struct{}) {
	for _, sym := range DefinitionSymbols(root, src) {
		upper := strings.ToUpper(strings.TrimSpace(sym.Label))
		if upper == "" {
			continue
		}
		if sym.Kind.IsCallable() {
			knownFunctions[NormalizeFunctionName(upper)] = struct{}{}
		} else {
			knownVariables[upper] = struct{}{}
		}
	}
}

// CollectLocalTableFieldSymbols adds local table field names to the known
// variable set. schemaFields supplies the fields of a LIKE target table; it
// may be nil when no schema is loaded.
func CollectLocalTableFieldSymbols(root syntax.Node, src []byte, schemaFields func(tableUpper string) []TableField, knownVariables map[string]struct{}) {
	for _, def := range LocalTables(root, src) {
		for _, field := range def.Fields {
			if upper := strings.ToUpper(strings.TrimSpace(field.Name)); upper != "" {
				knownVariables[upper] = struct{}{}
			}
		}
		if def.LikeTableUpper != "" && schemaFields != nil {
			for _, field := range schemaFields(def.LikeTableUpper) {
				if upper := strings.ToUpper(strings.TrimSpace(field.Name)); upper != "" {
					knownVariables[upper] = struct{}{}
				}
			}
		}
	}
}

// CollectActiveBufferLikeNames gathers the table-like names active in a
// file: buffer aliases and their targets, local table names, and any plain
// identifier naming a schema table. isSchemaTable may be nil.
func CollectActiveBufferLikeNames(root syntax.Node, src []byte, isSchemaTable func(nameUpper string) bool) map[string]struct{} {
	out := make(map[string]struct{})

	for _, mapping := range BufferMappings(root, src) {
		if upper := strings.ToUpper(strings.TrimSpace(mapping.Alias)); upper != "" {
			out[upper] = struct{}{}
		}
		if upper := strings.ToUpper(strings.TrimSpace(mapping.Table)); upper != "" {
			out[upper] = struct{}{}
		}
	}

	for _, def := range LocalTables(root, src) {
		if def.NameUpper != "" {
			out[def.NameUpper] = struct{}{}
		}
	}

	if isSchemaTable != nil {
		for _, ident := range syntax.CollectByKind(root, "identifier") {
			upper := strings.ToUpper(strings.TrimSpace(syntax.Text(ident, src)))
			if upper != "" && isSchemaTable(upper) {
				out[upper] = struct{}{}
			}
		}
	}

	return out
}

// LooksLikeTableFieldReference reports whether a name plausibly references a
// field of an active table-like name: either the full table name or the
// segment before its first '_' or '-' plus '_' prefixes it, followed by an
// alphabetic or underscore character. Deliberately tolerant of false
// negatives; unknown-variable checks suppress anything that matches.
func LooksLikeTableFieldReference(nameUpper string, activeBuffers map[string]struct{}) bool {
	if nameUpper == "" || len(activeBuffers) == 0 {
		return false
	}
	for buffer := range activeBuffers {
		if looksLikePrefixedField(nameUpper, buffer) {
			return true
		}
		if prefix, ok := tableFieldPrefix(buffer); ok && looksLikePrefixedField(nameUpper, prefix) {
			return true
		}
	}
	return false
}

func tableFieldPrefix(nameUpper string) (string, bool) {
	trimmed := strings.TrimSpace(nameUpper)
	if trimmed == "" {
		return "", false
	}
	for _, sep := range []byte{'_', '-'} {
		if idx := strings.IndexByte(trimmed, sep); idx > 0 {
			return trimmed[:idx] + "_", true
		}
	}
	return "", false
}

func looksLikePrefixedField(nameUpper, prefixUpper string) bool {
	if !strings.HasPrefix(nameUpper, prefixUpper) || len(nameUpper) <= len(prefixUpper) {
		return false
	}
	first := nameUpper[len(prefixUpper)]
	return first >= 'A' && first <= 'Z' || first == '_'
}
