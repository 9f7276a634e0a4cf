package tracker

import "github.com/iudanet/gridedit/internal/models"

// Ledger представляет Edit Ledger: единственный источник истины о том,
// какие ячейки сейчас изменены. Запись для (rowID, field) существует тогда
// и только тогда, когда текущее значение отличается от значения снимка.
type Ledger struct {
	snapshots *SnapshotStore
	records   map[models.CellRef]*models.EditRecord
	order     []models.CellRef // порядок вставки, нужен для стабильного вывода
}

// NewLedger создает пустой Edit Ledger поверх хранилища снимков
func NewLedger(snapshots *SnapshotStore) *Ledger {
	return &Ledger{
		snapshots: snapshots,
		records:   make(map[models.CellRef]*models.EditRecord),
	}
}

// Record фиксирует новое значение ячейки.
// Базой сравнения служит значение снимка; fallbackOld и fallbackKey используются,
// только если снимка для строки нет.
// Возвращает true, если после вызова ячейка считается измененной.
func (l *Ledger) Record(rowID, field string, newValue, fallbackOld models.Value, fallbackKey string) bool {
	oldValue := fallbackOld
	rowKey := fallbackKey
	if snap, ok := l.snapshots.Get(rowID); ok {
		oldValue, _ = snap.Get(field)
		rowKey = snap.RowKey
	}
	if rowKey == "" {
		rowKey = rowID
	}

	cell := models.CellRef{RowID: rowID, Field: field}

	// Значение вернулось к исходному - ячейка больше не изменена
	if Equal(newValue, oldValue) {
		l.Delete(cell)
		return false
	}

	rec := &models.EditRecord{
		RowID:    rowID,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
		RowKey:   rowKey,
	}
	if _, exists := l.records[cell]; !exists {
		l.order = append(l.order, cell)
	}
	l.records[cell] = rec

	return true
}

// Get возвращает запись по адресу ячейки
func (l *Ledger) Get(cell models.CellRef) (models.EditRecord, bool) {
	rec, ok := l.records[cell]
	if !ok {
		return models.EditRecord{}, false
	}
	return *rec, true
}

// Delete удаляет запись. Возвращает true, если запись существовала.
func (l *Ledger) Delete(cell models.CellRef) bool {
	if _, exists := l.records[cell]; !exists {
		return false
	}
	delete(l.records, cell)
	for i, c := range l.order {
		if c == cell {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// All возвращает копии всех записей в порядке вставки
func (l *Ledger) All() []models.EditRecord {
	result := make([]models.EditRecord, 0, len(l.order))
	for _, cell := range l.order {
		result = append(result, *l.records[cell])
	}
	return result
}

// Len возвращает количество измененных ячеек
func (l *Ledger) Len() int {
	return len(l.order)
}

// Restore загружает ранее сохраненные записи.
// Записи, совпадающие со своим исходным значением, отбрасываются.
func (l *Ledger) Restore(records []models.EditRecord) {
	for _, rec := range records {
		if Equal(rec.NewValue, rec.OldValue) {
			continue
		}
		cell := rec.Cell()
		if _, exists := l.records[cell]; !exists {
			l.order = append(l.order, cell)
		}
		r := rec
		l.records[cell] = &r
	}
}

// Clear удаляет все записи
func (l *Ledger) Clear() {
	l.records = make(map[models.CellRef]*models.EditRecord)
	l.order = nil
}
