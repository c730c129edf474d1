// Package resolve implements go-to-definition over a document, its include
// closure and the schema index. Candidate sources are consulted in a fixed
// order; the first hit wins.
package resolve

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// Definition is a resolved target. Path is empty when the target lies in
// the requesting document itself.
type Definition struct {
	Path  string
	Range syntax.Range
}

// Params carries everything a resolution needs. Walk and Schema may be nil;
// the corresponding steps are then skipped.
type Params struct {
	DocPath string
	Text    string
	Root    syntax.Node
	Offset  int

	Walk   *workspace.IncludeWalk
	Schema *schema.Index
	Paths  *workspace.PathResolver
}

// Resolve finds the definition for the position. Order: include directive
// target, preprocessor define, buffer alias target, local definition,
// functions from scope-reachable includes, then the schema.
func Resolve(p Params) (Definition, bool) {
	if def, ok := resolveIncludeTarget(p); ok {
		return def, true
	}

	symbol, ok := analysis.IdentOrDashAtOrBefore(p.Text, p.Offset)
	if !ok {
		return Definition{}, false
	}

	if def, ok := resolveMacroDefine(p, symbol); ok {
		return def, true
	}
	if def, ok := resolveBufferAlias(p, symbol); ok {
		return def, true
	}
	if def, ok := resolveLocalDefinition(p, symbol); ok {
		return def, true
	}
	if def, ok := resolveIncludeFunction(p, symbol); ok {
		return def, true
	}
	return resolveSchema(p, symbol)
}

// resolveIncludeTarget handles a cursor on an include directive: the target
// is the included file itself.
func resolveIncludeTarget(p Params) (Definition, bool) {
	if p.Paths == nil {
		return Definition{}, false
	}
	var defines []analysis.DefineSite
	if p.Walk != nil {
		defines = p.Walk.Defines
	}
	for _, site := range analysis.IncludeSites(p.Text) {
		if !site.SiteContains(p.Offset) {
			continue
		}
		raw := p.Paths.ExpandSitePath(site, defines)
		resolved, ok := p.Paths.ResolveInclude(raw, p.DocPath)
		if !ok {
			return Definition{}, false
		}
		return Definition{Path: resolved}, true
	}
	return Definition{}, false
}

// resolveMacroDefine navigates a {&NAME} reference to its define, preferring
// the document's own defines over the include closure.
func resolveMacroDefine(p Params, symbol string) (Definition, bool) {
	if !isMacroReference(p.Text, p.Offset, symbol) {
		return Definition{}, false
	}

	if p.Root != nil {
		local := analysis.DefineSites(p.Root, []byte(p.Text))
		if site, ok := analysis.BestDefineSite(local, symbol, p.Offset); ok {
			return Definition{Range: site.Range}, true
		}
	}
	if p.Walk == nil {
		return Definition{}, false
	}

	// Includes export only their global defines, and only includes visible
	// from the cursor's scope qualify. Among several the include site
	// nearest before the cursor wins, else the nearest after.
	scope := analysis.ByteScope{Start: 0, End: len(p.Text)}
	if p.Root != nil {
		if s, ok := analysis.ContainingScope(p.Root, p.Offset); ok {
			scope = s
		}
	}

	type candidate struct {
		def         Definition
		stampOffset int
	}
	var before, after *candidate
	for _, file := range p.Walk.Files {
		if file.Root == nil || !scope.Contains(file.StampOffset) {
			continue
		}
		for _, site := range analysis.GlobalDefineSites(file.Root, []byte(file.Text)) {
			if !strings.EqualFold(site.Label, symbol) {
				continue
			}
			c := candidate{
				def:         Definition{Path: file.Path, Range: site.Range},
				stampOffset: file.StampOffset,
			}
			if file.StampOffset <= p.Offset {
				if before == nil || c.stampOffset > before.stampOffset {
					before = &c
				}
			} else {
				if after == nil || c.stampOffset < after.stampOffset {
					after = &c
				}
			}
			break
		}
	}
	if before != nil {
		return before.def, true
	}
	if after != nil {
		return after.def, true
	}
	return Definition{}, false
}

// isMacroReference reports whether the symbol at the cursor is written as a
// preprocessor reference, i.e. preceded by "{&".
func isMacroReference(text string, offset int, symbol string) bool {
	start := identStartBefore(text, offset)
	return start >= 2 && text[start-2:start] == "{&"
}

func identStartBefore(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	cursor := offset
	if cursor >= len(text) || !isIdentOrDash(text[cursor]) {
		cursor--
	}
	for cursor > 0 && isIdentOrDash(text[cursor-1]) {
		cursor--
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func isIdentOrDash(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '-'
}

// resolveBufferAlias navigates a buffer name to the table it buffers:
// a local table definition when one matches, otherwise the schema table.
func resolveBufferAlias(p Params, symbol string) (Definition, bool) {
	if p.Root == nil {
		return Definition{}, false
	}
	mappings := analysis.BufferMappings(p.Root, []byte(p.Text))
	tableKey, ok := analysis.BestBufferTable(mappings, symbol, p.Offset)
	if !ok {
		return Definition{}, false
	}

	var tableSites []analysis.DefinitionSite
	for _, site := range analysis.DefinitionSites(p.Root, []byte(p.Text)) {
		if strings.EqualFold(analysis.NormalizeLookupKey(site.Label, true), tableKey) {
			tableSites = append(tableSites, site)
		}
	}
	if site, ok := nearestSite(tableSites, p.Offset); ok {
		return Definition{Range: site.Range}, true
	}

	if p.Schema != nil {
		if loc, ok := p.Schema.TableDefinition(tableKey); ok {
			return schemaDefinition(loc), true
		}
	}
	return Definition{}, false
}

// resolveLocalDefinition finds the nearest matching definition or local
// table field site in the document.
func resolveLocalDefinition(p Params, symbol string) (Definition, bool) {
	if p.Root == nil {
		return Definition{}, false
	}
	src := []byte(p.Text)
	var matches []analysis.DefinitionSite
	for _, site := range analysis.DefinitionSites(p.Root, src) {
		if strings.EqualFold(site.Label, symbol) {
			matches = append(matches, site)
		}
	}
	for _, site := range analysis.LocalTableFieldSites(p.Root, src) {
		if strings.EqualFold(site.Label, symbol) {
			matches = append(matches, site)
		}
	}
	if site, ok := nearestSite(matches, p.Offset); ok {
		return Definition{Range: site.Range}, true
	}
	return Definition{}, false
}

// nearestSite picks the site closest before the offset, else closest after.
func nearestSite(sites []analysis.DefinitionSite, offset int) (analysis.DefinitionSite, bool) {
	var before, after *analysis.DefinitionSite
	for i := range sites {
		site := &sites[i]
		if site.StartByte <= offset {
			if before == nil || site.StartByte > before.StartByte {
				before = site
			}
		} else {
			if after == nil || site.StartByte < after.StartByte {
				after = site
			}
		}
	}
	if before != nil {
		return *before, true
	}
	if after != nil {
		return *after, true
	}
	return analysis.DefinitionSite{}, false
}

// resolveIncludeFunction searches functions defined by includes whose
// include site falls inside the cursor's scope. When several includes define
// the symbol, the one whose site is nearest before the cursor wins.
func resolveIncludeFunction(p Params, symbol string) (Definition, bool) {
	if p.Walk == nil || len(p.Walk.Files) == 0 {
		return Definition{}, false
	}

	scope := analysis.ByteScope{Start: 0, End: len(p.Text)}
	if p.Root != nil {
		if s, ok := analysis.ContainingScope(p.Root, p.Offset); ok {
			scope = s
		}
	}

	type candidate struct {
		def         Definition
		stampOffset int
	}
	var before, after *candidate
	for _, file := range p.Walk.Files {
		if file.Root == nil || !scope.Contains(file.StampOffset) {
			continue
		}
		for _, site := range analysis.FunctionDefinitionSites(file.Root, []byte(file.Text)) {
			if !strings.EqualFold(site.Label, symbol) {
				continue
			}
			c := candidate{
				def:         Definition{Path: file.Path, Range: site.Range},
				stampOffset: file.StampOffset,
			}
			if file.StampOffset <= p.Offset {
				if before == nil || c.stampOffset > before.stampOffset {
					before = &c
				}
			} else {
				if after == nil || c.stampOffset < after.stampOffset {
					after = &c
				}
			}
			break
		}
	}
	if before != nil {
		return before.def, true
	}
	if after != nil {
		return after.def, true
	}
	return Definition{}, false
}

// resolveSchema tries the symbol as a schema table, then as a field of the
// qualifying table or any table, then as an index name.
func resolveSchema(p Params, symbol string) (Definition, bool) {
	if p.Schema == nil {
		return Definition{}, false
	}

	if loc, ok := p.Schema.TableDefinition(symbol); ok {
		return schemaDefinition(loc), true
	}

	start := identStartBefore(p.Text, p.Offset)
	if qualifier, ok := analysis.QualifierBeforeDot(p.Text, start+len(symbol), symbol); ok {
		table := qualifier
		if p.Root != nil {
			if mapped, ok := analysis.BestBufferTable(analysis.BufferMappings(p.Root, []byte(p.Text)), qualifier, p.Offset); ok {
				table = mapped
			}
		}
		if loc, ok := p.Schema.FieldDefinition(table, symbol); ok {
			return schemaDefinition(loc), true
		}
	}
	if loc, ok := p.Schema.FieldDefinitionAnyTable(symbol); ok {
		return schemaDefinition(loc), true
	}
	if loc, ok := p.Schema.IndexDefinition(symbol); ok {
		return schemaDefinition(loc), true
	}
	return Definition{}, false
}

func schemaDefinition(loc schema.Location) Definition {
	pos := syntax.Position{Row: loc.Line, Column: loc.Column}
	return Definition{Path: loc.Path, Range: syntax.Range{Start: pos, End: pos}}
}
