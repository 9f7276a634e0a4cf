package control

import (
	"fmt"
	"log/slog"

	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/output"
	"github.com/iudanet/gridedit/internal/selection"
	"github.com/iudanet/gridedit/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service определяет обработчики событий контрола.
// Все изменения состояния происходят только через явно переданный *State.
type Service interface {
	// Refresh обрабатывает новую полную поставку данных хоста
	Refresh(st *State, in RefreshInput) *RenderPlan

	// Edit фиксирует новое значение ячейки, пришедшее от грида
	Edit(st *State, ev EditEvent) (*EditResult, error)

	// SelectionChanged фиксирует выделение, о котором сообщил грид
	SelectionChanged(st *State, rowIDs []string) []string

	// ClearSelection очищает выделение в гриде и в выходах для хоста
	ClearSelection(st *State)

	// ResetChanges отбрасывает все правки; снимки сохраняются
	ResetChanges(st *State)

	// Outputs возвращает текущий выходной контракт
	Outputs(st *State) (*output.Outputs, error)

	// Teardown полностью сбрасывает состояние контрола, включая снимки
	Teardown(st *State)
}

// RefreshInput содержит поставку данных и флаги конфигурации хоста
type RefreshInput struct {
	Dataset         *models.Dataset
	RowKeyField     string // RowKeyField поле с бизнес-ключом строки; пусто - Row Identity
	SelectedRowKeys string // SelectedRowKeys JSON массив ключей для выделения
	MultiSelect     bool
	ReadOnly        bool
	ShowEdited      bool // ShowEdited показывать только измененные строки
	ResetChanges    bool // ResetChanges срабатывает по фронту false -> true
	ResetSelection  bool // ResetSelection срабатывает по фронту false -> true
}

// RenderPlan описывает, что грид должен отрисовать после поставки
type RenderPlan struct {
	Columns      []models.Column
	Rows         []models.Row     // Rows строки с наложенными правками
	EditedCells  []models.CellRef // EditedCells ячейки для подсветки
	RefreshCells []models.CellRef // RefreshCells ячейки для точечной перерисовки
	Selected     []string
	RefreshAll   bool
	MultiSelect  bool
	ReadOnly     bool
}

// EditEvent событие фиксации значения ячейки в гриде
type EditEvent struct {
	NewValue models.Value
	OldValue models.Value // OldValue значение до правки по версии грида, используется только без снимка
	RowID    string
	Field    string
}

// EditResult результат обработки правки
type EditResult struct {
	Cell  models.CellRef // Cell ячейка для точечной перерисовки
	Dirty bool           // Dirty ячейка отличается от исходного значения
}

type service struct {
	logger *slog.Logger
}

// NewService creates a new control service
func NewService(logger *slog.Logger) Service {
	return &service{
		logger: logger,
	}
}

// Refresh выполняет сверку поставки и готовит план отрисовки.
// Сверка, включая пересборку патчей, завершается до возврата плана.
func (s *service) Refresh(st *State, in RefreshInput) *RenderPlan {
	ds := in.Dataset
	if ds == nil {
		ds = &models.Dataset{}
	}
	ds.Normalize()

	// Неизвестное поле ключа не фатально: ключом строки служит Row Identity
	if err := validation.ValidateRowKeyField(in.RowKeyField, ds.ColumnNames()); err != nil {
		s.logger.Warn("Falling back to row identity as row key", "session_id", st.ID, "error", err)
	}

	prevRows, prevKeyField := st.Rows, st.RowKeyField

	st.Columns = append([]models.Column(nil), ds.Columns...)
	st.RowKeyField = in.RowKeyField
	st.MultiSelect = in.MultiSelect
	st.ReadOnly = in.ReadOnly

	plan := &RenderPlan{
		Columns:     st.Columns,
		MultiSelect: in.MultiSelect,
		ReadOnly:    in.ReadOnly,
	}

	// Сброс правок по фронту флага
	if in.ResetChanges && !st.prevResetChanges {
		s.logger.Info("Resetting changes", "session_id", st.ID, "edits", st.Tracker.Ledger.Len())
		st.Tracker.Reset()
		plan.RefreshAll = true
	}
	st.prevResetChanges = in.ResetChanges

	result := st.Tracker.Reconcile(ds.Rows, st.RowKeyField)
	st.Rows = ds.Rows
	plan.RefreshCells = result.Pruned

	s.logger.Debug("Dataset reconciled",
		"session_id", st.ID,
		"rows", len(ds.Rows),
		"new_snapshots", result.Created,
		"pruned", len(result.Pruned),
		"edits", st.Tracker.Ledger.Len())

	s.syncSelection(st, in, prevRows, prevKeyField)
	plan.Selected = append([]string(nil), st.Selected...)

	plan.Rows = result.Rows
	if in.ShowEdited {
		plan.Rows = make([]models.Row, 0, st.Tracker.Patches.Len())
		for _, row := range result.Rows {
			if st.Tracker.Patches.Has(row.ID) {
				plan.Rows = append(plan.Rows, row)
			}
		}
	}

	for _, rec := range st.Tracker.Ledger.All() {
		plan.EditedCells = append(plan.EditedCells, rec.Cell())
	}

	return plan
}

// syncSelection применяет флаги и ключи выделения хоста.
// Без новых ключей текущее выделение переносится на строки новой поставки.
func (s *service) syncSelection(st *State, in RefreshInput, prevRows []models.Row, prevKeyField string) {
	defer func() {
		st.prevResetSelection = in.ResetSelection
		st.prevSelectedKeys = in.SelectedRowKeys
		st.Selected = selection.Limit(st.Selected, st.MultiSelect)
	}()

	if in.ResetSelection && !st.prevResetSelection {
		s.logger.Info("Resetting selection", "session_id", st.ID)
		st.Selected = nil
		return
	}

	// Ключи применяются, только если хост передал новый список
	if in.SelectedRowKeys == st.prevSelectedKeys {
		st.Selected = selection.Remap(st.Selected, prevRows, prevKeyField, st.Rows, st.RowKeyField)
		return
	}

	keys, err := selection.ParseKeys(in.SelectedRowKeys)
	if err != nil {
		// Некорректный ввод хоста не фатален: оставляем текущее выделение грида
		s.logger.Warn("Ignoring malformed selected row keys", "session_id", st.ID, "error", err)
		st.Selected = selection.Remap(st.Selected, prevRows, prevKeyField, st.Rows, st.RowKeyField)
		return
	}

	st.Selected = selection.ToRowIDs(keys, st.Rows, st.RowKeyField)
}

// Edit фиксирует правку ячейки и пересобирает патчи строк
func (s *service) Edit(st *State, ev EditEvent) (*EditResult, error) {
	if st.ReadOnly {
		s.logger.Warn("Edit rejected on read-only grid", "session_id", st.ID, "row_id", ev.RowID, "field", ev.Field)
		return nil, ErrReadOnly
	}
	if ev.RowID == "" {
		return nil, ErrEmptyRow
	}
	if ev.Field == "" {
		return nil, fmt.Errorf("row %s: %w", ev.RowID, ErrEmptyField)
	}

	newValue := ev.NewValue
	for _, col := range st.Columns {
		if col.Name == ev.Field {
			newValue = models.ParseValue(col.DataType, newValue)
			break
		}
	}

	dirty := st.Tracker.Record(ev.RowID, ev.Field, newValue, ev.OldValue)

	s.logger.Debug("Cell edited",
		"session_id", st.ID,
		"row_id", ev.RowID,
		"field", ev.Field,
		"dirty", dirty)

	return &EditResult{
		Cell:  models.CellRef{RowID: ev.RowID, Field: ev.Field},
		Dirty: dirty,
	}, nil
}

// SelectionChanged сохраняет выделение грида и возвращает примененный список
func (s *service) SelectionChanged(st *State, rowIDs []string) []string {
	st.Selected = selection.Limit(append([]string(nil), rowIDs...), st.MultiSelect)
	return append([]string(nil), st.Selected...)
}

// ClearSelection очищает выделение
func (s *service) ClearSelection(st *State) {
	st.Selected = nil
}

// ResetChanges отбрасывает все правки
func (s *service) ResetChanges(st *State) {
	s.logger.Info("Resetting changes", "session_id", st.ID, "edits", st.Tracker.Ledger.Len())
	st.Tracker.Reset()
}

// Outputs строит выходной контракт из текущего состояния
func (s *service) Outputs(st *State) (*output.Outputs, error) {
	keys := selection.ToRowKeys(st.Selected, st.Rows, st.RowKeyField)

	out, err := st.encoder.Encode(st.Tracker.Ledger.All(), st.Tracker.Patches.All(), st.ColumnNames(), keys)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outputs: %w", err)
	}
	return out, nil
}

// Teardown сбрасывает все состояние контрола
func (s *service) Teardown(st *State) {
	s.logger.Info("Tearing down control state", "session_id", st.ID)
	st.Tracker.Clear()
	st.Selected = nil
	st.Rows = nil
	st.prevSelectedKeys = ""
	st.prevResetChanges = false
	st.prevResetSelection = false
}
