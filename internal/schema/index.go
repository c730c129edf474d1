package schema

import (
	"sort"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
)

// Index is an immutable lookup structure over one or more parsed dumps.
// Table, field and index names are keyed by their normalized uppercase form;
// when the same name is defined in several dumps the smallest location wins.
type Index struct {
	tables map[string]*tableEntry
}

type tableEntry struct {
	display   string
	locations []Location

	fields     map[string]*fieldEntry
	fieldOrder []string

	indexes map[string][]Location
}

type fieldEntry struct {
	field     analysis.TableField
	locations []Location
}

// BuildIndex folds parsed dumps into one index. Fields and indexes whose
// table never appears in an ADD TABLE record still index under that table
// name, matching how partial dumps are written.
func BuildIndex(dumps []*Dump) *Index {
	idx := &Index{tables: make(map[string]*tableEntry)}

	for _, dump := range dumps {
		if dump == nil {
			continue
		}
		for _, t := range dump.Tables {
			entry := idx.table(t.Name)
			entry.locations = append(entry.locations, t.Location)
		}
		for _, f := range dump.Fields {
			entry := idx.table(f.Table)
			key := tableKey(f.Name)
			if key == "" {
				continue
			}
			fe, ok := entry.fields[key]
			if !ok {
				fe = &fieldEntry{field: f.Field}
				entry.fields[key] = fe
				entry.fieldOrder = append(entry.fieldOrder, key)
			}
			fe.locations = append(fe.locations, f.Location)
		}
		for _, ix := range dump.Indexes {
			entry := idx.table(ix.Table)
			key := tableKey(ix.Name)
			if key == "" {
				continue
			}
			entry.indexes[key] = append(entry.indexes[key], ix.Location)
		}
	}

	return idx
}

// EmptyIndex is what readers see before the first dump load completes.
func EmptyIndex() *Index {
	return &Index{tables: make(map[string]*tableEntry)}
}

func (idx *Index) table(name string) *tableEntry {
	key := tableKey(name)
	entry, ok := idx.tables[key]
	if !ok {
		entry = &tableEntry{
			display: strings.TrimSpace(name),
			fields:  make(map[string]*fieldEntry),
			indexes: make(map[string][]Location),
		}
		idx.tables[key] = entry
	}
	return entry
}

func tableKey(name string) string {
	return analysis.NormalizeLookupKey(name, true)
}

// Tables returns all table display names, sorted.
func (idx *Index) Tables() []string {
	out := make([]string, 0, len(idx.tables))
	for _, entry := range idx.tables {
		out = append(out, entry.display)
	}
	sort.Strings(out)
	return out
}

// IsTable reports whether name is a known table.
func (idx *Index) IsTable(name string) bool {
	_, ok := idx.tables[tableKey(name)]
	return ok
}

// TableFields returns the fields of a table in dump order.
func (idx *Index) TableFields(table string) []analysis.TableField {
	entry, ok := idx.tables[tableKey(table)]
	if !ok {
		return nil
	}
	out := make([]analysis.TableField, 0, len(entry.fieldOrder))
	for _, key := range entry.fieldOrder {
		out = append(out, entry.fields[key].field)
	}
	return out
}

// TableField returns one field of a table by name.
func (idx *Index) TableField(table, field string) (analysis.TableField, bool) {
	entry, ok := idx.tables[tableKey(table)]
	if !ok {
		return analysis.TableField{}, false
	}
	fe, ok := entry.fields[tableKey(field)]
	if !ok {
		return analysis.TableField{}, false
	}
	return fe.field, true
}

// TableDefinition returns the single best definition location of a table.
func (idx *Index) TableDefinition(table string) (Location, bool) {
	entry, ok := idx.tables[tableKey(table)]
	if !ok {
		return Location{}, false
	}
	return pickLocation(entry.locations)
}

// FieldDefinition returns the definition location of a field of a table.
func (idx *Index) FieldDefinition(table, field string) (Location, bool) {
	entry, ok := idx.tables[tableKey(table)]
	if !ok {
		return Location{}, false
	}
	fe, ok := entry.fields[tableKey(field)]
	if !ok {
		return Location{}, false
	}
	return pickLocation(fe.locations)
}

// FieldDefinitionAnyTable searches every table for a field of that name and
// returns the smallest location, so unqualified field references still
// navigate somewhere deterministic.
func (idx *Index) FieldDefinitionAnyTable(field string) (Location, bool) {
	key := tableKey(field)
	if key == "" {
		return Location{}, false
	}
	var best Location
	found := false
	for _, entry := range idx.tables {
		fe, ok := entry.fields[key]
		if !ok {
			continue
		}
		if loc, ok := pickLocation(fe.locations); ok {
			if !found || loc.less(best) {
				best, found = loc, true
			}
		}
	}
	return best, found
}

// IndexDefinition returns the definition location of a named index, searched
// across every table.
func (idx *Index) IndexDefinition(name string) (Location, bool) {
	key := tableKey(name)
	if key == "" {
		return Location{}, false
	}
	var best Location
	found := false
	for _, entry := range idx.tables {
		if loc, ok := pickLocation(entry.indexes[key]); ok {
			if !found || loc.less(best) {
				best, found = loc, true
			}
		}
	}
	return best, found
}

func pickLocation(locations []Location) (Location, bool) {
	if len(locations) == 0 {
		return Location{}, false
	}
	best := locations[0]
	for _, loc := range locations[1:] {
		if loc.less(best) {
			best = loc
		}
	}
	return best, true
}
