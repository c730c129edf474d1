package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func TestLocalTablesSortAndDedupe(t *testing.T) {
	src := "DEFINE TEMP-TABLE tt-order\n" +
		"  FIELD qty AS INTEGER\n" +
		"  FIELD Amt AS DECIMAL\n" +
		"  FIELD amt AS DECIMAL.\n"

	amtOff := strings.Index(src, "Amt")
	tableDef := over(src, "temp_table_definition", strings.TrimSuffix(src, "\n")).
		AddField("name", syntaxtest.Ident(src, "tt-order", 0)).
		Add(
			over(src, "temp_table_field", "FIELD qty AS INTEGER").
				AddField("name", syntaxtest.Ident(src, "qty", 0)).
				AddField("type", over(src, "type_name", "INTEGER")),
			over(src, "temp_table_field", "FIELD Amt AS DECIMAL").
				AddField("name", syntaxtest.Ident(src, "Amt", 0)).
				AddField("type", over(src, "type_name", "DECIMAL")),
			over(src, "temp_table_field", "FIELD amt AS DECIMAL").
				AddField("name", syntaxtest.Ident(src, "amt", amtOff+3)).
				AddField("type", overAt(src, "type_name", "DECIMAL", amtOff)),
		)
	tree := syntaxtest.File(src, tableDef)

	tables := LocalTables(tree.RootNode(), []byte(src))
	require.Len(t, tables, 1)
	assert.Equal(t, "TT-ORDER", tables[0].NameUpper)
	require.Len(t, tables[0].Fields, 2)
	assert.Equal(t, "Amt", tables[0].Fields[0].Name)
	assert.Equal(t, "DECIMAL", tables[0].Fields[0].Type)
	assert.Equal(t, "qty", tables[0].Fields[1].Name)
	assert.Empty(t, tables[0].LikeTableUpper)
}

func TestLocalTablesLikeTarget(t *testing.T) {
	src := "DEFINE TEMP-TABLE tt-cust LIKE sports.customer[3].\n"
	tableDef := over(src, "temp_table_definition", strings.TrimSuffix(src, "\n")).
		AddField("name", syntaxtest.Ident(src, "tt-cust", 0)).
		Add(
			over(src, "like_phrase", "LIKE sports.customer[3]").
				AddField("like", over(src, "qualified_name", "sports.customer[3]")),
		)
	tree := syntaxtest.File(src, tableDef)

	tables := LocalTables(tree.RootNode(), []byte(src))
	require.Len(t, tables, 1)
	assert.Equal(t, "CUSTOMER", tables[0].LikeTableUpper)
}

func TestBufferMappingsDropDatabaseQualifier(t *testing.T) {
	src := "DEFINE BUFFER b-cust FOR sports.customer.\n"
	bufDef := over(src, "buffer_definition", strings.TrimSuffix(src, "\n")).
		AddField("name", syntaxtest.Ident(src, "b-cust", 0)).
		AddField("table", over(src, "qualified_name", "sports.customer"))
	tree := syntaxtest.File(src, bufDef)

	mappings := BufferMappings(tree.RootNode(), []byte(src))
	require.Len(t, mappings, 1)
	assert.Equal(t, "b-cust", mappings[0].Alias)
	assert.Equal(t, "customer", mappings[0].Table)
	assert.Equal(t, strings.Index(src, "b-cust"), mappings[0].StartByte)
}

func TestBestBufferTableNearestDeclaration(t *testing.T) {
	mappings := []BufferMapping{
		{Alias: "b-x", Table: "customer", StartByte: 10},
		{Alias: "b-x", Table: "order", StartByte: 60},
	}

	table, ok := BestBufferTable(mappings, "B-X", 40)
	require.True(t, ok)
	assert.Equal(t, "CUSTOMER", table)

	table, ok = BestBufferTable(mappings, "b-x", 80)
	require.True(t, ok)
	assert.Equal(t, "ORDER", table)

	// Before every declaration the first one ahead wins.
	table, ok = BestBufferTable(mappings, "b-x", 0)
	require.True(t, ok)
	assert.Equal(t, "CUSTOMER", table)

	_, ok = BestBufferTable(mappings, "b-y", 40)
	assert.False(t, ok)
}
