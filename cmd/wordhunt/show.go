package main

import (
	"fmt"

	"github.com/fwojciec/wordhunt"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if wordhunt.ErrorCode(err) == wordhunt.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'wordhunt history' to list searches.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wordhunt.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Search:  %q from %s (max %d pages)\n", run.Word, run.SeedURL, run.MaxPages)
	fmt.Fprintf(deps.Stdout, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "Reason:  %s\n", run.Reason)
	fmt.Fprintln(deps.Stdout)
	for _, v := range run.Trace {
		printVisit(deps.Stdout, v)
	}
	fmt.Fprintln(deps.Stdout, run.Outcome().String())

	return nil
}
