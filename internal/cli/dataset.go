package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iudanet/gridedit/internal/models"
)

func (c *Cli) runImport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing file. Usage: gridedit import <file.json>")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(content, &ds); err != nil {
		return fmt.Errorf("failed to parse dataset: %w", err)
	}
	if ds.Name == "" {
		ds.Name = c.opts.Dataset
	}
	if ds.Name == "" {
		return ErrDatasetRequired
	}
	ds.Normalize()

	if err := c.datasets.SaveDataset(ctx, &ds); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	c.logger.Info("Dataset imported", "dataset", ds.Name, "rows", len(ds.Rows), "columns", len(ds.Columns))
	c.io.Printf("Dataset %s imported: %d columns, %d rows\n", ds.Name, len(ds.Columns), len(ds.Rows))
	return nil
}

func (c *Cli) runDatasets(ctx context.Context) error {
	names, err := c.datasets.ListDatasets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	if len(names) == 0 {
		c.io.Println("No datasets found")
		return nil
	}

	for _, name := range names {
		c.io.Println(name)
	}
	return nil
}
