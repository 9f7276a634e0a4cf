package control

import (
	"time"

	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/output"
	"github.com/iudanet/gridedit/internal/tracker"
)

// State представляет состояние одной сессии контрола.
// Передается в каждый обработчик события явно; сервис своего состояния не хранит.
type State struct {
	Tracker *tracker.Tracker
	encoder *output.Encoder

	ID          string
	RowKeyField string
	Columns     []models.Column
	Rows        []models.Row // Rows строки, последними полученные от хоста (без наложения правок)
	Selected    []string     // Selected выделенные Row Identity
	MultiSelect bool
	ReadOnly    bool

	// Предыдущие значения флагов хоста для срабатывания по фронту false -> true
	prevResetChanges   bool
	prevResetSelection bool
	prevSelectedKeys   string
}

// NewState создает пустое состояние сессии
func NewState(id string) *State {
	return &State{
		ID:      id,
		Tracker: tracker.New(),
		encoder: output.NewEncoder(),
	}
}

// ColumnNames возвращает имена колонок последней поставки
func (s *State) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	return names
}

// Export возвращает сохраняемое представление состояния
func (s *State) Export() *models.SessionState {
	return &models.SessionState{
		ID:             s.ID,
		RowKeyField:    s.RowKeyField,
		Columns:        append([]models.Column(nil), s.Columns...),
		Snapshots:      s.Tracker.Snapshots.All(),
		Edits:          s.Tracker.Ledger.All(),
		Delivered:      s.Tracker.Delivered(),
		SelectedRowIDs: append([]string(nil), s.Selected...),
		SelectedKeys:   s.prevSelectedKeys,
		ResetChanges:   s.prevResetChanges,
		ResetSelection: s.prevResetSelection,
		MultiSelect:    s.MultiSelect,
		ReadOnly:       s.ReadOnly,
		UpdatedAt:      time.Now(),
	}
}

// Import восстанавливает состояние сессии из сохраненного представления
func Import(saved *models.SessionState) *State {
	s := NewState(saved.ID)
	s.RowKeyField = saved.RowKeyField
	s.Columns = append([]models.Column(nil), saved.Columns...)
	s.Selected = append([]string(nil), saved.SelectedRowIDs...)
	s.prevSelectedKeys = saved.SelectedKeys
	s.prevResetChanges = saved.ResetChanges
	s.prevResetSelection = saved.ResetSelection
	s.MultiSelect = saved.MultiSelect
	s.ReadOnly = saved.ReadOnly
	s.Tracker.Restore(saved)
	s.Rows = s.Tracker.Delivered()
	return s
}

// SelectedKeysInput возвращает последний примененный сырой список ключей хоста
func (s *State) SelectedKeysInput() string {
	return s.prevSelectedKeys
}
