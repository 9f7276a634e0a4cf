package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

// runReset отбрасывает все правки сессии
func (c *Cli) runReset(ctx context.Context) error {
	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	edits := st.Tracker.Ledger.Len()
	c.control.ResetChanges(st)

	if err := c.saveState(ctx, st); err != nil {
		return err
	}

	c.io.Printf("Discarded %d edited cells\n", edits)
	return nil
}

// runCommit записывает измененные строки в набор данных хоста и сбрасывает контрол
func (c *Cli) runCommit(ctx context.Context, args []string) error {
	if c.opts.Dataset == "" {
		return ErrDatasetRequired
	}

	fs := flag.NewFlagSet("commit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid commit flags: %w", err)
	}

	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	patches := st.Tracker.Patches.All()
	if len(patches) == 0 {
		c.io.Println("No changes to commit")
		return nil
	}

	if !*yes {
		answer, err := c.io.ReadInput(fmt.Sprintf("Apply %d edited rows to %s? (y/N): ", len(patches), c.opts.Dataset))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			c.io.Println("Commit cancelled")
			return nil
		}
	}

	updated, err := c.datasets.ApplyPatches(ctx, c.opts.Dataset, patches)
	if err != nil {
		return fmt.Errorf("failed to apply patches: %w", err)
	}

	// После сохранения хост переинициализирует контрол
	c.control.Teardown(st)
	if err := c.saveState(ctx, st); err != nil {
		return err
	}

	c.logger.Info("Changes committed", "session_id", st.ID, "dataset", c.opts.Dataset, "rows", updated)
	c.io.Printf("Committed %d rows to %s\n", updated, c.opts.Dataset)
	return nil
}

// runTeardown удаляет состояние контрола сессии
func (c *Cli) runTeardown(ctx context.Context) error {
	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	c.control.Teardown(st)
	if err := c.states.DeleteState(ctx, st.ID); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}

	c.io.Printf("Session %s torn down\n", st.ID)
	return nil
}
