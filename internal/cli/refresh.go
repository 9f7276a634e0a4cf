package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/models"
)

// runRefresh передает контролу полную поставку данных хоста и печатает план отрисовки
func (c *Cli) runRefresh(ctx context.Context, args []string) error {
	if c.opts.Dataset == "" {
		return ErrDatasetRequired
	}

	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	showEdited := fs.Bool("show-edited", false, "Render only edited rows")
	readOnly := fs.Bool("read-only", false, "Reject edits")
	singleSelect := fs.Bool("single-select", false, "Disable multi-select")
	selectedKeys := fs.String("selected-keys", st.SelectedKeysInput(), "Select rows by business keys (JSON array)")
	resetChanges := fs.Bool("reset-changes", false, "Raise the reset changes flag")
	resetSelection := fs.Bool("reset-selection", false, "Raise the reset selection flag")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid refresh flags: %w", err)
	}

	ds, err := c.datasets.GetDataset(ctx, c.opts.Dataset)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	plan := c.control.Refresh(st, control.RefreshInput{
		Dataset:         ds,
		RowKeyField:     c.opts.RowKey,
		SelectedRowKeys: *selectedKeys,
		MultiSelect:     !*singleSelect,
		ReadOnly:        *readOnly,
		ShowEdited:      *showEdited,
		ResetChanges:    *resetChanges,
		ResetSelection:  *resetSelection,
	})

	if err := c.saveState(ctx, st); err != nil {
		return err
	}

	c.printPlan(ds.Name, plan)
	return nil
}

// printPlan печатает строки грида; измененные ячейки помечены '*', выделенные строки '>'
func (c *Cli) printPlan(name string, plan *control.RenderPlan) {
	edited := make(map[models.CellRef]struct{}, len(plan.EditedCells))
	for _, cell := range plan.EditedCells {
		edited[cell] = struct{}{}
	}
	selected := make(map[string]struct{}, len(plan.Selected))
	for _, id := range plan.Selected {
		selected[id] = struct{}{}
	}

	c.io.Printf("Dataset: %s (%d rows, %d edited cells)\n", name, len(plan.Rows), len(plan.EditedCells))
	if plan.ReadOnly {
		c.io.Println("Mode: read-only")
	}
	if len(plan.RefreshCells) > 0 {
		c.io.Printf("Reverted by source: %d cells\n", len(plan.RefreshCells))
	}
	c.io.Println()

	for _, row := range plan.Rows {
		marker := " "
		if _, ok := selected[row.ID]; ok {
			marker = ">"
		}

		cells := make([]string, 0, len(plan.Columns))
		for _, col := range plan.Columns {
			v, _ := row.Get(col.Name)
			cell := col.Name + "=" + v.String()
			if _, ok := edited[models.CellRef{RowID: row.ID, Field: col.Name}]; ok {
				cell = col.Name + "=*" + v.String()
			}
			cells = append(cells, cell)
		}

		c.io.Printf("%s %s  %s\n", marker, row.ID, strings.Join(cells, " "))
	}
}
