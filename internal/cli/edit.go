package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/gridedit/internal/control"
	"github.com/iudanet/gridedit/internal/models"
)

// runEdit имитирует фиксацию значения ячейки в гриде
func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: gridedit edit <rowId> <field> <value>")
	}
	rowID, field := args[0], args[1]

	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	// Старое значение по версии грида: последнее отрисованное
	oldValue := models.Null()
	for _, row := range st.Rows {
		if row.ID != rowID {
			continue
		}
		if v, ok := row.Get(field); ok {
			oldValue = v
		}
		break
	}
	if rec, ok := st.Tracker.Ledger.Get(models.CellRef{RowID: rowID, Field: field}); ok {
		oldValue = rec.NewValue
	}

	res, err := c.control.Edit(st, control.EditEvent{
		RowID:    rowID,
		Field:    field,
		NewValue: parseValueArg(args[2]),
		OldValue: oldValue,
	})
	if err != nil {
		return fmt.Errorf("edit rejected: %w", err)
	}

	if err := c.saveState(ctx, st); err != nil {
		return err
	}

	if res.Dirty {
		c.io.Printf("Cell %s/%s changed\n", res.Cell.RowID, res.Cell.Field)
	} else {
		c.io.Printf("Cell %s/%s matches original value\n", res.Cell.RowID, res.Cell.Field)
	}
	c.io.Printf("Edited cells: %d, edited rows: %d\n", st.Tracker.Ledger.Len(), st.Tracker.Patches.Len())
	return nil
}

// parseValueArg разбирает значение как JSON литерал, иначе считает его текстом
func parseValueArg(raw string) models.Value {
	var v models.Value
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return models.String(raw)
	}
	return v
}

// runSelect имитирует изменение выделения в гриде
func (c *Cli) runSelect(ctx context.Context, args []string) error {
	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "--clear" {
		c.control.ClearSelection(st)
		c.io.Println("Selection cleared")
	} else {
		applied := c.control.SelectionChanged(st, args)
		c.io.Printf("Selected rows: %d\n", len(applied))
		for _, id := range applied {
			c.io.Println(" ", id)
		}
	}

	return c.saveState(ctx, st)
}
