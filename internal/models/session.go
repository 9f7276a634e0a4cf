package models

import "time"

// SessionState представляет сохраняемое состояние сессии контрола.
// Используется для восстановления контрола между вызовами хоста.
type SessionState struct {
	UpdatedAt      time.Time    `json:"updated_at"`
	Delivered      []Row        `json:"delivered"`        // Delivered значения последней поставки (без наложения правок)
	Snapshots      []Snapshot   `json:"snapshots"`        // Snapshots снимки в порядке появления строк
	Edits          []EditRecord `json:"edits"`            // Edits записи Edit Ledger в порядке вставки
	Columns        []Column     `json:"columns"`          // Columns набор колонок последней поставки
	SelectedRowIDs []string     `json:"selected_row_ids"` // SelectedRowIDs текущее выделение
	ID             string       `json:"id"`
	RowKeyField    string       `json:"row_key_field"`
	SelectedKeys   string       `json:"selected_keys"` // SelectedKeys последний примененный сырой список ключей
	ResetChanges   bool         `json:"reset_changes"`
	ResetSelection bool         `json:"reset_selection"`
	MultiSelect    bool         `json:"multi_select"`
	ReadOnly       bool         `json:"read_only"`
}
