package tracker

import "github.com/iudanet/gridedit/internal/models"

// Tracker объединяет хранилище снимков, Edit Ledger и агрегатор патчей.
// Не потокобезопасен: все вызовы приходят из одного цикла событий хоста.
type Tracker struct {
	Snapshots *SnapshotStore
	Ledger    *Ledger
	Patches   *Patches

	// delivered хранит последнее значение каждой строки, полученное от хоста
	delivered map[string]*models.Fields
}

// New создает пустой Tracker
func New() *Tracker {
	snapshots := NewSnapshotStore()
	return &Tracker{
		Snapshots: snapshots,
		Ledger:    NewLedger(snapshots),
		Patches:   NewPatches(),
		delivered: make(map[string]*models.Fields),
	}
}

// Record фиксирует правку ячейки и пересобирает патчи строк.
// Возвращает true, если ячейка после правки считается измененной.
func (t *Tracker) Record(rowID, field string, newValue, fallbackOld models.Value) bool {
	dirty := t.Ledger.Record(rowID, field, newValue, fallbackOld, rowID)
	t.Patches.Rebuild(t.Ledger, t.Snapshots)
	return dirty
}

// Reset очищает все правки. Снимки остаются нетронутыми.
// Повторный вызов без правок ничего не меняет.
func (t *Tracker) Reset() {
	t.Ledger.Clear()
	t.Patches.Rebuild(t.Ledger, t.Snapshots)
}

// Clear полностью сбрасывает состояние, включая снимки
func (t *Tracker) Clear() {
	t.Snapshots.Clear()
	t.delivered = make(map[string]*models.Fields)
	t.Reset()
}

// Delivered возвращает последние полученные от хоста строки в порядке снимков
func (t *Tracker) Delivered() []models.Row {
	rows := make([]models.Row, 0, len(t.delivered))
	for _, snap := range t.Snapshots.All() {
		if values, ok := t.delivered[snap.RowID]; ok {
			rows = append(rows, models.Row{ID: snap.RowID, Values: values.Clone()})
		}
	}
	return rows
}

// Restore восстанавливает сохраненное состояние
func (t *Tracker) Restore(state *models.SessionState) {
	t.Clear()
	t.Snapshots.Restore(state.Snapshots)
	for _, row := range state.Delivered {
		t.delivered[row.ID] = row.Values.Clone()
	}
	t.Ledger.Restore(state.Edits)
	t.Patches.Rebuild(t.Ledger, t.Snapshots)
}
