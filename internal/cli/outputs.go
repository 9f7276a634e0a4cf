package cli

import (
	"context"
	"encoding/json"
	"fmt"
)

// runOutputs печатает выходной контракт контрола в JSON
func (c *Cli) runOutputs(ctx context.Context) error {
	st, err := c.loadState(ctx)
	if err != nil {
		return err
	}

	out, err := c.control.Outputs(st)
	if err != nil {
		return err
	}

	var data []byte
	if c.io.IsTerminal() {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	if _, err := c.io.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}
