package models

// Snapshot хранит исходные значения строки в момент ее первого появления.
// После создания снимок не изменяется до полного сброса состояния контрола.
type Snapshot struct {
	Values *Fields `json:"values"`  // Values копия исходных значений полей
	RowID  string  `json:"row_id"`  // RowID Row Identity строки
	RowKey string  `json:"row_key"` // RowKey Row Key на момент снимка
}

// Get возвращает исходное значение поля
func (s *Snapshot) Get(field string) (Value, bool) {
	return s.Values.Get(field)
}

// EditRecord описывает чистую дельту ячейки относительно снимка.
// OldValue всегда равен значению снимка, а не промежуточному значению.
type EditRecord struct {
	OldValue Value  `json:"oldValue"`
	NewValue Value  `json:"newValue"`
	RowID    string `json:"rowId"`
	Field    string `json:"field"`
	RowKey   string `json:"rowKey"`
}

// Cell возвращает адрес ячейки записи
func (e *EditRecord) Cell() CellRef {
	return CellRef{RowID: e.RowID, Field: e.Field}
}

// RowPatch агрегирует все измененные поля одной строки
type RowPatch struct {
	Changes *Fields `json:"changes"` // Changes измененные поля -> новые значения
	RowID   string  `json:"rowId"`
	RowKey  string  `json:"rowKey"`
}

// CellRef адресует ячейку грида
type CellRef struct {
	RowID string `json:"row_id"`
	Field string `json:"field"`
}
