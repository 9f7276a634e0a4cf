package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/gridedit/internal/storage"
)

func (c *Cli) runSessions(ctx context.Context) error {
	ids, err := c.states.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	current, err := c.metadata.GetCurrentSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotSet) {
		return fmt.Errorf("failed to get current session: %w", err)
	}

	if len(ids) == 0 {
		c.io.Println("No sessions found")
		return nil
	}

	for _, id := range ids {
		if id == current {
			c.io.Println("*", id)
			continue
		}
		c.io.Println(" ", id)
	}
	return nil
}

func (c *Cli) runNewSession(ctx context.Context) error {
	id := uuid.New().String()
	if err := c.metadata.SaveCurrentSession(ctx, id); err != nil {
		return fmt.Errorf("failed to save current session: %w", err)
	}

	c.io.Printf("Session %s started\n", id)
	return nil
}
