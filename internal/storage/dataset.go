package storage

import (
	"context"

	"github.com/iudanet/gridedit/internal/models"
)

//go:generate moq -out datasetstorage_mock.go . DatasetStorage

// DatasetStorage defines interface for the host data source
type DatasetStorage interface {
	// SaveDataset creates or fully replaces a dataset (columns and rows)
	SaveDataset(ctx context.Context, ds *models.Dataset) error

	// GetDataset returns the full dataset, rows in their stored order
	// Returns ErrDatasetNotFound if dataset doesn't exist
	GetDataset(ctx context.Context, name string) (*models.Dataset, error)

	// ApplyPatches writes changed fields of row patches back to the dataset
	// Returns the number of updated rows
	ApplyPatches(ctx context.Context, name string, patches []models.RowPatch) (int, error)

	// ListDatasets returns names of all datasets
	ListDatasets(ctx context.Context) ([]string, error)
}
