package api

import "github.com/iudanet/gridedit/internal/models"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// Cell адрес ячейки грида
type Cell struct {
	RowID string `json:"row_id"`
	Field string `json:"field"`
}

// RefreshRequest представляет поставку данных хоста: набор данных и флаги конфигурации
type RefreshRequest struct {
	Dataset         string `json:"dataset"`
	RowKeyField     string `json:"row_key_field"`
	SelectedRowKeys string `json:"selected_row_keys"` // SelectedRowKeys JSON массив ключей строкой, как передает хост
	MultiSelect     bool   `json:"multi_select"`
	ReadOnly        bool   `json:"read_only"`
	ShowEdited      bool   `json:"show_edited"`
	ResetChanges    bool   `json:"reset_changes"`
	ResetSelection  bool   `json:"reset_selection"`
}

// RenderResponse план отрисовки грида после поставки
type RenderResponse struct {
	Columns      []models.Column `json:"columns"`
	Rows         []models.Row    `json:"rows"`
	EditedCells  []Cell          `json:"edited_cells"`
	RefreshCells []Cell          `json:"refresh_cells"`
	Selected     []string        `json:"selected"`
	RefreshAll   bool            `json:"refresh_all"`
	MultiSelect  bool            `json:"multi_select"`
	ReadOnly     bool            `json:"read_only"`
}

// EditRequest событие фиксации значения ячейки
type EditRequest struct {
	NewValue models.Value `json:"new_value"`
	OldValue models.Value `json:"old_value"`
	RowID    string       `json:"row_id"`
	Field    string       `json:"field"`
}

// EditResponse результат обработки правки
type EditResponse struct {
	Cell  Cell `json:"cell"`
	Dirty bool `json:"dirty"`
}

// SelectionRequest выделение, о котором сообщил грид
type SelectionRequest struct {
	RowIDs []string `json:"row_ids"`
}

// SelectionResponse примененное выделение
type SelectionResponse struct {
	Selected []string `json:"selected"`
}

// CommitResponse результат записи измененных строк в набор данных
type CommitResponse struct {
	Dataset string `json:"dataset"`
	Updated int    `json:"updated"`
}
