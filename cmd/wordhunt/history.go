package main

import (
	"fmt"

	"github.com/fwojciec/wordhunt"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := wordhunt.RunFilter{Limit: c.Limit}
	if c.Word != "" {
		filter.Word = &c.Word
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordhunt.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No searches recorded. Use 'wordhunt search' to run one.")
		return nil
	}

	for _, r := range runs {
		result := "not found"
		if r.Found {
			result = "found"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %q  %s  %s after %d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Word, r.SeedURL, result, r.Visits)
	}

	return nil
}
