package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gridedit/internal/models"
)

func TestReconcile_CreatesSnapshots(t *testing.T) {
	tr := New()

	result := tr.Reconcile([]models.Row{
		createTestRow("r1", "a", models.Number(1)),
		createTestRow("r2", "a", models.Number(2)),
	}, "")
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.Rows, 2)

	result = tr.Reconcile([]models.Row{
		createTestRow("r1", "a", models.Number(1)),
		createTestRow("r3", "a", models.Number(3)),
	}, "")
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 3, tr.Snapshots.Len())
}

func TestReconcile_SnapshotImmutability(t *testing.T) {
	tr := New()

	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100))}, "")
	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(500))}, "")

	snap, ok := tr.Snapshots.Get("r1")
	require.True(t, ok)
	v, _ := snap.Get("amount")
	assert.Equal(t, "100", v.String())
}

func TestReconcile_RefreshSurvivability(t *testing.T) {
	tr := New()
	rows := []models.Row{createTestRow("r1", "amount", models.Number(100), "name", models.String("x"))}

	tr.Reconcile(rows, "")
	tr.Record("r1", "amount", models.Number(150), models.Null())

	// Источник по-прежнему сообщает 100
	result := tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100), "name", models.String("x"))}, "")

	assert.Empty(t, result.Pruned)
	require.Len(t, result.Rows, 1)
	v, _ := result.Rows[0].Get("amount")
	assert.Equal(t, "150", v.String(), "Rendered row must show the live edit")

	_, ok := tr.Ledger.Get(models.CellRef{RowID: "r1", Field: "amount"})
	assert.True(t, ok, "Edit must survive the refresh")
	assert.True(t, tr.Patches.Has("r1"))

	// Исходные строки хоста не изменяются наложением
	orig, _ := rows[0].Get("amount")
	assert.Equal(t, "100", orig.String())
}

func TestReconcile_PrunesWhenSourceReverts(t *testing.T) {
	tr := New()
	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100))}, "")
	tr.Record("r1", "amount", models.Number(150), models.Null())

	// Хост принял правку
	result := tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(150))}, "")
	assert.Empty(t, result.Pruned)
	assert.Equal(t, 1, tr.Ledger.Len())

	// Источник откатил значение к исходному
	result = tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100))}, "")
	assert.Equal(t, []models.CellRef{{RowID: "r1", Field: "amount"}}, result.Pruned)
	assert.Equal(t, 0, tr.Ledger.Len())
	assert.False(t, tr.Patches.Has("r1"))

	v, _ := result.Rows[0].Get("amount")
	assert.Equal(t, "100", v.String())
}

func TestReconcile_AbsentRowKeepsEdit(t *testing.T) {
	tr := New()
	tr.Reconcile([]models.Row{
		createTestRow("r1", "amount", models.Number(100)),
		createTestRow("r2", "amount", models.Number(200)),
	}, "")
	tr.Record("r1", "amount", models.Number(150), models.Null())

	result := tr.Reconcile([]models.Row{createTestRow("r2", "amount", models.Number(200))}, "")

	assert.Empty(t, result.Pruned)
	assert.Equal(t, 1, tr.Ledger.Len())
	assert.True(t, tr.Patches.Has("r1"))
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "r2", result.Rows[0].ID)
}

func TestReconcile_ExternalChangeKeepsEdit(t *testing.T) {
	tr := New()
	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100))}, "")
	tr.Record("r1", "amount", models.Number(150), models.Null())

	result := tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(120))}, "")

	assert.Empty(t, result.Pruned)
	v, _ := result.Rows[0].Get("amount")
	assert.Equal(t, "150", v.String())
}

func TestReconcile_StringifiedSourceValue(t *testing.T) {
	tr := New()
	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.Number(100))}, "")
	tr.Record("r1", "amount", models.String("150"), models.Null())
	tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.String("150"))}, "")

	// Строковое "100" равно числу 100 снимка
	result := tr.Reconcile([]models.Row{createTestRow("r1", "amount", models.String("100"))}, "")
	assert.Len(t, result.Pruned, 1)
}
