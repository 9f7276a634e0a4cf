package tracker

import "github.com/iudanet/gridedit/internal/models"

// ReconcileResult содержит результат сверки новой поставки данных
type ReconcileResult struct {
	Rows    []models.Row     // Rows строки для отрисовки с наложенными правками
	Pruned  []models.CellRef // Pruned ячейки, правки которых были отброшены (нужна перерисовка)
	Created int              // Created количество новых снимков
}

// Reconcile сверяет полную поставку данных хоста с сохраненным состоянием:
//  1. создает снимки для впервые увиденных строк;
//  2. отбрасывает правки ячеек, которые источник вернул к исходному значению;
//  3. накладывает оставшиеся правки на строки для отрисовки;
//  4. пересобирает патчи строк.
//
// Ячейка считается возвращенной источником, если значение в поставке равно
// значению снимка сейчас и отличалось от него в предыдущей поставке.
// Поставка без изменений правку не отбрасывает.
// Правки для строк, отсутствующих в поставке, не трогаются.
func (t *Tracker) Reconcile(rows []models.Row, keyField string) ReconcileResult {
	result := ReconcileResult{}

	incoming := make(map[string]models.Row, len(rows))
	for _, row := range rows {
		if t.Snapshots.Ensure(row, row.Key(keyField)) {
			result.Created++
		}
		incoming[row.ID] = row
	}

	// Первый проход: собираем ячейки, которые нужно удалить
	for _, rec := range t.Ledger.All() {
		row, ok := incoming[rec.RowID]
		if !ok {
			continue
		}
		snap, ok := t.Snapshots.Get(rec.RowID)
		if !ok {
			continue
		}

		current, _ := row.Get(rec.Field)
		original, _ := snap.Get(rec.Field)
		if !Equal(current, original) {
			continue
		}

		previous, seen := t.delivered[rec.RowID].Get(rec.Field)
		if !seen || Equal(previous, original) {
			continue
		}

		result.Pruned = append(result.Pruned, rec.Cell())
	}

	// Второй проход: удаляем
	for _, cell := range result.Pruned {
		t.Ledger.Delete(cell)
	}

	for _, row := range rows {
		t.delivered[row.ID] = row.Values.Clone()
	}

	edits := make(map[string][]models.EditRecord)
	for _, rec := range t.Ledger.All() {
		edits[rec.RowID] = append(edits[rec.RowID], rec)
	}

	result.Rows = make([]models.Row, 0, len(rows))
	for _, row := range rows {
		rendered := row.Clone()
		for _, rec := range edits[row.ID] {
			rendered.Values.Set(rec.Field, rec.NewValue)
		}
		result.Rows = append(result.Rows, rendered)
	}

	t.Patches.Rebuild(t.Ledger, t.Snapshots)

	return result
}
