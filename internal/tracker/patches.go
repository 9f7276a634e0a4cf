package tracker

import "github.com/iudanet/gridedit/internal/models"

// Patches представляет Row Patch Aggregator: по одному патчу на каждую
// строку, у которой есть хотя бы одна запись в Edit Ledger.
// Патчи только вычисляются из Ledger и никогда не изменяются напрямую.
type Patches struct {
	patches map[string]*models.RowPatch // map[rowID]patch
	order   []string
}

// NewPatches создает пустой агрегатор
func NewPatches() *Patches {
	return &Patches{
		patches: make(map[string]*models.RowPatch),
	}
}

// Rebuild пересчитывает все патчи с нуля по текущему содержимому Ledger.
// Полный пересчет гарантирует, что удаленные из Ledger поля не остаются в патче.
func (p *Patches) Rebuild(ledger *Ledger, snapshots *SnapshotStore) {
	p.patches = make(map[string]*models.RowPatch)
	p.order = nil

	for _, rec := range ledger.All() {
		patch, exists := p.patches[rec.RowID]
		if !exists {
			rowKey := rec.RowKey
			if snap, ok := snapshots.Get(rec.RowID); ok && snap.RowKey != "" {
				rowKey = snap.RowKey
			}
			patch = &models.RowPatch{
				RowID:   rec.RowID,
				RowKey:  rowKey,
				Changes: models.NewFields(),
			}
			p.patches[rec.RowID] = patch
			p.order = append(p.order, rec.RowID)
		}
		patch.Changes.Set(rec.Field, rec.NewValue)
	}
}

// Get возвращает патч строки
func (p *Patches) Get(rowID string) (models.RowPatch, bool) {
	patch, ok := p.patches[rowID]
	if !ok {
		return models.RowPatch{}, false
	}
	return clonePatch(patch), true
}

// Has проверяет, есть ли у строки патч
func (p *Patches) Has(rowID string) bool {
	_, ok := p.patches[rowID]
	return ok
}

// All возвращает копии всех патчей в порядке первой правки строки
func (p *Patches) All() []models.RowPatch {
	result := make([]models.RowPatch, 0, len(p.order))
	for _, id := range p.order {
		result = append(result, clonePatch(p.patches[id]))
	}
	return result
}

// Len возвращает количество измененных строк
func (p *Patches) Len() int {
	return len(p.order)
}

func clonePatch(patch *models.RowPatch) models.RowPatch {
	return models.RowPatch{
		RowID:   patch.RowID,
		RowKey:  patch.RowKey,
		Changes: patch.Changes.Clone(),
	}
}
