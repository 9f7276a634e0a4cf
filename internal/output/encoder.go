package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/iudanet/gridedit/internal/models"
)

// Outputs представляет выходной контракт контрола для хоста.
// Коллекции и схемы строятся из одного состояния и всегда согласованы.
type Outputs struct {
	EditedCells       []CellOutput `json:"EditedCells"`
	EditedRows        []RowOutput  `json:"EditedRows"`
	SelectedRowKeys   []string     `json:"SelectedRowKeys"`
	EditedCellsSchema string       `json:"EditedCellsSchema"`
	EditedRowsSchema  string       `json:"EditedRowsSchema"`
}

// CellOutput запись EditedCells. Значения передаются в каноническом строковом виде.
type CellOutput struct {
	RowID    string `json:"rowId"`
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
	RowKey   string `json:"rowKey"`
}

// RowOutput запись EditedRows: rowKey и измененные поля строки
type RowOutput struct {
	values map[string]string
	RowKey string
	fields []string
}

// Get возвращает значение измененного поля по имени его свойства
func (r RowOutput) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Fields возвращает имена свойств измененных полей в порядке колонок
func (r RowOutput) Fields() []string {
	return append([]string(nil), r.fields...)
}

// MarshalJSON кодирует строку как плоский объект {"rowKey": ..., "<field>": ...}
func (r RowOutput) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	key, err := json.Marshal(r.RowKey)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + RowKeyProperty + `":`)
	buf.Write(key)

	for _, field := range r.fields {
		name, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[field])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encoder сериализует состояние правок в выходной контракт.
// Схема EditedRows кешируется и пересобирается только при смене набора колонок.
type Encoder struct {
	cellsSchema string
	rowsSchema  string
	fingerprint uint64
	built       bool
}

// NewEncoder создает новый Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// CellsSchema возвращает статическую схему EditedCells
func (e *Encoder) CellsSchema() (string, error) {
	if e.cellsSchema != "" {
		return e.cellsSchema, nil
	}
	s, err := arraySchema(cellProperties)
	if err != nil {
		return "", err
	}
	e.cellsSchema = s
	return s, nil
}

// RowsSchema возвращает схему EditedRows для текущего набора колонок
func (e *Encoder) RowsSchema(columns []string) (string, error) {
	fingerprint, err := hashstructure.Hash(columns, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash column set: %w", err)
	}

	if e.built && fingerprint == e.fingerprint {
		return e.rowsSchema, nil
	}

	s, err := arraySchema(rowProperties(columns))
	if err != nil {
		return "", err
	}

	e.rowsSchema = s
	e.fingerprint = fingerprint
	e.built = true
	return s, nil
}

// Encode строит выходной контракт из записей Ledger, патчей строк и текущего набора колонок.
// Поля патчей, которых нет среди текущих колонок, в EditedRows не попадают,
// чтобы данные никогда не содержали свойств, отсутствующих в схеме.
func (e *Encoder) Encode(edits []models.EditRecord, patches []models.RowPatch, columns []string, selectedKeys []string) (*Outputs, error) {
	cellsSchema, err := e.CellsSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build cells schema: %w", err)
	}
	rowsSchema, err := e.RowsSchema(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to build rows schema: %w", err)
	}

	out := &Outputs{
		EditedCells:       make([]CellOutput, 0, len(edits)),
		EditedRows:        make([]RowOutput, 0, len(patches)),
		SelectedRowKeys:   append([]string{}, selectedKeys...),
		EditedCellsSchema: cellsSchema,
		EditedRowsSchema:  rowsSchema,
	}

	for _, rec := range edits {
		out.EditedCells = append(out.EditedCells, CellOutput{
			RowID:    rec.RowID,
			Field:    rec.Field,
			OldValue: rec.OldValue.String(),
			NewValue: rec.NewValue.String(),
			RowKey:   rec.RowKey,
		})
	}

	cols := rowColumns(columns)
	for _, patch := range patches {
		row := RowOutput{
			RowKey: patch.RowKey,
			values: make(map[string]string),
		}
		for _, c := range cols {
			if v, ok := patch.Changes.Get(c.Column); ok {
				row.fields = append(row.fields, c.Property)
				row.values[c.Property] = v.String()
			}
		}
		out.EditedRows = append(out.EditedRows, row)
	}

	return out, nil
}
