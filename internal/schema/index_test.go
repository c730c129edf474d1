package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
)

func buildSampleIndex(t *testing.T) *Index {
	t.Helper()
	a := ParseDump("b.df", []byte(sampleDump))
	// Duplicate table definition from a second dump with a smaller path.
	b := ParseDump("a.df", []byte("ADD TABLE \"customer\"\n"))
	return BuildIndex([]*Dump{a, b})
}

func TestIndexTableLookup(t *testing.T) {
	idx := buildSampleIndex(t)

	assert.Equal(t, []string{"customer", "order"}, idx.Tables())
	assert.True(t, idx.IsTable("CUSTOMER"))
	assert.True(t, idx.IsTable("customer"))
	assert.False(t, idx.IsTable("invoice"))

	loc, ok := idx.TableDefinition("Customer")
	require.True(t, ok)
	assert.Equal(t, "a.df", loc.Path)
}

func TestIndexFieldLookup(t *testing.T) {
	idx := buildSampleIndex(t)

	fields := idx.TableFields("customer")
	require.Len(t, fields, 2)
	assert.Equal(t, "cust-num", fields[0].Name)
	assert.Equal(t, "name", fields[1].Name)

	field, ok := idx.TableField("CUSTOMER", "CUST-NUM")
	require.True(t, ok)
	assert.Equal(t, ">>>>9", field.Format)

	loc, ok := idx.FieldDefinition("customer", "cust-num")
	require.True(t, ok)
	assert.Equal(t, "b.df", loc.Path)

	_, ok = idx.FieldDefinition("customer", "missing")
	assert.False(t, ok)

	loc, ok = idx.FieldDefinitionAnyTable("name")
	require.True(t, ok)
	assert.Equal(t, "b.df", loc.Path)
}

func TestIndexIndexLookup(t *testing.T) {
	idx := buildSampleIndex(t)

	loc, ok := idx.IndexDefinition("cust-num-idx")
	require.True(t, ok)
	assert.Equal(t, "b.df", loc.Path)

	_, ok = idx.IndexDefinition("no-such-idx")
	assert.False(t, ok)
}

func TestEmptyIndex(t *testing.T) {
	idx := EmptyIndex()
	assert.Empty(t, idx.Tables())
	assert.False(t, idx.IsTable("customer"))
	assert.Nil(t, idx.TableFields("customer"))
}

func TestBuildIndexFieldWithoutTableRecord(t *testing.T) {
	dump := ParseDump("p.df", []byte("ADD FIELD \"qty\" OF \"orderline\" AS integer\n"))
	idx := BuildIndex([]*Dump{dump})

	assert.True(t, idx.IsTable("orderline"))
	assert.Equal(t, []analysis.TableField{{Name: "qty", Type: "integer"}}, idx.TableFields("orderline"))
	_, ok := idx.TableDefinition("orderline")
	assert.False(t, ok)
}
