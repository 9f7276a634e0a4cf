package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gridedit/internal/models"
)

type testSchema struct {
	Items struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
		Type string `json:"type"`
	} `json:"items"`
	Schema string `json:"$schema"`
	Type   string `json:"type"`
}

func parseSchema(t *testing.T, raw string) testSchema {
	t.Helper()
	var s testSchema
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func createTestPatch(rowID, rowKey string, kv ...string) models.RowPatch {
	changes := models.NewFields()
	for i := 0; i+1 < len(kv); i += 2 {
		changes.Set(kv[i], models.String(kv[i+1]))
	}
	return models.RowPatch{RowID: rowID, RowKey: rowKey, Changes: changes}
}

func TestEncoder_CellsSchema(t *testing.T) {
	enc := NewEncoder()

	raw, err := enc.CellsSchema()
	require.NoError(t, err)

	s := parseSchema(t, raw)
	assert.Equal(t, SchemaDraft, s.Schema)
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, "object", s.Items.Type)
	for _, name := range []string{"rowId", "field", "oldValue", "newValue", "rowKey"} {
		assert.Contains(t, s.Items.Properties, name)
	}
}

func TestEncoder_RowsSchema(t *testing.T) {
	enc := NewEncoder()

	raw, err := enc.RowsSchema([]string{"amount", "name", "rowKey"})
	require.NoError(t, err)

	s := parseSchema(t, raw)
	assert.Len(t, s.Items.Properties, 4)
	for name, prop := range s.Items.Properties {
		assert.Equal(t, "string", prop.Type, "property %s should be string-typed", name)
	}

	// Порядок свойств: rowKey, затем колонки; колонка rowKey получает префикс
	assert.Equal(t,
		`{"$schema":"http://json-schema.org/draft-04/schema#","type":"array","items":{"type":"object","properties":{"rowKey":{"type":"string"},"amount":{"type":"string"},"name":{"type":"string"},"column_rowKey":{"type":"string"}}}}`,
		raw)
}

func TestEncoder_RowKeyColumnKeepsEdits(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		patch   models.RowPatch
		want    string
	}{
		{
			name:    "rowKey column is prefixed",
			columns: []string{"rowKey", "amount"},
			patch:   createTestPatch("r1", "K1", "rowKey", "K9", "amount", "5"),
			want:    `[{"rowKey":"K1","column_rowKey":"K9","amount":"5"}]`,
		},
		{
			name:    "prefixed name already taken",
			columns: []string{"column_rowKey", "rowKey"},
			patch:   createTestPatch("r1", "K1", "rowKey", "a", "column_rowKey", "b"),
			want:    `[{"rowKey":"K1","column_rowKey":"b","column_column_rowKey":"a"}]`,
		},
		{
			name:    "duplicate columns collapse",
			columns: []string{"amount", "amount"},
			patch:   createTestPatch("r1", "K1", "amount", "5"),
			want:    `[{"rowKey":"K1","amount":"5"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder()

			out, err := enc.Encode(nil, []models.RowPatch{tt.patch}, tt.columns, nil)
			require.NoError(t, err)

			data, err := json.Marshal(out.EditedRows)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			s := parseSchema(t, out.EditedRowsSchema)
			for _, name := range out.EditedRows[0].Fields() {
				assert.Contains(t, s.Items.Properties, name)
			}
		})
	}
}

func TestEncoder_RowsSchemaRebuiltOnColumnChange(t *testing.T) {
	enc := NewEncoder()

	first, err := enc.RowsSchema([]string{"a"})
	require.NoError(t, err)
	again, err := enc.RowsSchema([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, first, again)

	changed, err := enc.RowsSchema([]string{"a", "b"})
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
	assert.Contains(t, parseSchema(t, changed).Items.Properties, "b")
}

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder()

	edits := []models.EditRecord{
		{RowID: "r1", Field: "amount", OldValue: models.Number(100), NewValue: models.Number(150), RowKey: "K1"},
		{RowID: "r1", Field: "gone", OldValue: models.String("x"), NewValue: models.String("y"), RowKey: "K1"},
	}
	patches := []models.RowPatch{createTestPatch("r1", "K1", "amount", "150", "gone", "y")}

	out, err := enc.Encode(edits, patches, []string{"amount", "name"}, []string{"K1"})
	require.NoError(t, err)

	require.Len(t, out.EditedCells, 2)
	assert.Equal(t, CellOutput{RowID: "r1", Field: "amount", OldValue: "100", NewValue: "150", RowKey: "K1"}, out.EditedCells[0])

	require.Len(t, out.EditedRows, 1)
	assert.Equal(t, []string{"amount"}, out.EditedRows[0].Fields(), "Fields outside the column set must be dropped")
	assert.Equal(t, []string{"K1"}, out.SelectedRowKeys)

	data, err := json.Marshal(out.EditedRows)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rowKey":"K1","amount":"150"}]`, string(data))
}

func TestEncoder_SchemaAndDataConsistent(t *testing.T) {
	enc := NewEncoder()
	columns := []string{"a", "b"}
	patches := []models.RowPatch{
		createTestPatch("r1", "k1", "a", "1"),
		createTestPatch("r2", "k2", "b", "2", "c", "3"),
	}

	out, err := enc.Encode(nil, patches, columns, nil)
	require.NoError(t, err)

	s := parseSchema(t, out.EditedRowsSchema)
	data, err := json.Marshal(out.EditedRows)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	for _, row := range rows {
		for name := range row {
			assert.Contains(t, s.Items.Properties, name)
		}
	}
}

func TestEncoder_EmptyState(t *testing.T) {
	enc := NewEncoder()

	out, err := enc.Encode(nil, nil, nil, nil)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"EditedCells":[]`)
	assert.Contains(t, string(data), `"EditedRows":[]`)
	assert.Contains(t, string(data), `"SelectedRowKeys":[]`)
}
