package tracker

import "github.com/iudanet/gridedit/internal/models"

// SnapshotStore хранит исходные значения строк, увиденные впервые.
// Снимок создается один раз на Row Identity и больше не перезаписывается.
type SnapshotStore struct {
	snapshots map[string]*models.Snapshot // map[rowID]snapshot
	order     []string                    // порядок появления строк
}

// NewSnapshotStore создает пустое хранилище снимков
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]*models.Snapshot),
	}
}

// Ensure сохраняет копию строки, если снимка для ее Row Identity еще нет.
// Повторный вызов для того же rowID ничего не меняет.
// Возвращает true, если снимок был создан.
func (s *SnapshotStore) Ensure(row models.Row, rowKey string) bool {
	if _, exists := s.snapshots[row.ID]; exists {
		return false
	}

	s.snapshots[row.ID] = &models.Snapshot{
		RowID:  row.ID,
		RowKey: rowKey,
		Values: row.Values.Clone(),
	}
	s.order = append(s.order, row.ID)
	return true
}

// Get возвращает снимок строки
func (s *SnapshotStore) Get(rowID string) (*models.Snapshot, bool) {
	snap, ok := s.snapshots[rowID]
	return snap, ok
}

// Len возвращает количество снимков
func (s *SnapshotStore) Len() int {
	return len(s.order)
}

// All возвращает копии всех снимков в порядке появления строк
func (s *SnapshotStore) All() []models.Snapshot {
	result := make([]models.Snapshot, 0, len(s.order))
	for _, id := range s.order {
		snap := s.snapshots[id]
		result = append(result, models.Snapshot{
			RowID:  snap.RowID,
			RowKey: snap.RowKey,
			Values: snap.Values.Clone(),
		})
	}
	return result
}

// Restore загружает ранее сохраненные снимки.
// Действует то же правило, что и в Ensure: существующие снимки не перезаписываются.
func (s *SnapshotStore) Restore(snapshots []models.Snapshot) {
	for _, snap := range snapshots {
		s.Ensure(models.Row{ID: snap.RowID, Values: snap.Values}, snap.RowKey)
	}
}

// Clear удаляет все снимки.
// Используется только при полной переинициализации контрола.
func (s *SnapshotStore) Clear() {
	s.snapshots = make(map[string]*models.Snapshot)
	s.order = nil
}
