package main

import (
	"fmt"

	"github.com/fwojciec/wordhunt"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordhunt.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted search %s\n", c.ID)
	return nil
}
