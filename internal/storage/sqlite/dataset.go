package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/storage"
	"github.com/iudanet/gridedit/internal/validation"
)

// SaveDataset creates or fully replaces a dataset.
// Rows without an ID get a generated one; the ID is written back into ds.
func (s *Storage) SaveDataset(ctx context.Context, ds *models.Dataset) error {
	if err := validation.ValidateDatasetName(ds.Name); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	for _, col := range ds.Columns {
		if err := validation.ValidateFieldName(col.Name); err != nil {
			return fmt.Errorf("invalid column: %w", err)
		}
	}

	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().Unix()

	// Полная замена: старые строки удаляются
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_rows WHERE dataset = ?`, ds.Name); err != nil {
		return fmt.Errorf("failed to delete rows: %w", err)
	}

	query := `
		INSERT INTO datasets (name, columns, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET columns = excluded.columns, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, ds.Name, string(columnsJSON), now, now); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	for i := range ds.Rows {
		row := &ds.Rows[i]
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		if row.Values == nil {
			row.Values = models.NewFields()
		}

		data, err := json.Marshal(row.Values)
		if err != nil {
			return fmt.Errorf("failed to marshal row %s: %w", row.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO dataset_rows (dataset, row_id, position, data, updated_at) VALUES (?, ?, ?, ?, ?)`,
			ds.Name, row.ID, i, string(data), now)
		if err != nil {
			return fmt.Errorf("failed to insert row %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	return nil
}

// GetDataset returns the full dataset with values normalised to column types
func (s *Storage) GetDataset(ctx context.Context, name string) (*models.Dataset, error) {
	var columnsJSON string
	err := s.db.QueryRowContext(ctx, `SELECT columns FROM datasets WHERE name = ?`, name).Scan(&columnsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	ds := &models.Dataset{Name: name}
	if err := json.Unmarshal([]byte(columnsJSON), &ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_id, data FROM dataset_rows WHERE dataset = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := models.NewRow(id)
		if err := json.Unmarshal([]byte(data), row.Values); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row %s: %w", id, err)
		}
		ds.Rows = append(ds.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	ds.Normalize()

	return ds, nil
}

// ApplyPatches writes changed fields back to the rows of a dataset in one transaction.
// A patch for a row missing from the dataset aborts the whole commit.
func (s *Storage) ApplyPatches(ctx context.Context, name string, patches []models.RowPatch) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM datasets WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrDatasetNotFound
		}
		return 0, fmt.Errorf("failed to check dataset: %w", err)
	}

	now := time.Now().Unix()
	updated := 0

	for _, patch := range patches {
		var data string
		err := tx.QueryRowContext(ctx,
			`SELECT data FROM dataset_rows WHERE dataset = ? AND row_id = ?`, name, patch.RowID).Scan(&data)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("row %s: %w", patch.RowID, storage.ErrRowNotFound)
			}
			return 0, fmt.Errorf("failed to get row %s: %w", patch.RowID, err)
		}

		values := models.NewFields()
		if err := json.Unmarshal([]byte(data), values); err != nil {
			return 0, fmt.Errorf("failed to unmarshal row %s: %w", patch.RowID, err)
		}

		for _, field := range patch.Changes.Names() {
			v, _ := patch.Changes.Get(field)
			values.Set(field, v)
		}

		merged, err := json.Marshal(values)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal row %s: %w", patch.RowID, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE dataset_rows SET data = ?, updated_at = ? WHERE dataset = ? AND row_id = ?`,
			string(merged), now, name, patch.RowID)
		if err != nil {
			return 0, fmt.Errorf("failed to update row %s: %w", patch.RowID, err)
		}
		updated++
	}

	if _, err := tx.ExecContext(ctx, `UPDATE datasets SET updated_at = ? WHERE name = ?`, now, name); err != nil {
		return 0, fmt.Errorf("failed to touch dataset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit patches: %w", err)
	}

	return updated, nil
}

// ListDatasets returns names of all datasets
func (s *Storage) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan dataset name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return names, nil
}
