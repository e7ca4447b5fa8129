package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/wordhunt"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	s := wordhunt.Search{
		SeedURL:  c.Seed,
		Word:     c.Word,
		MaxPages: c.MaxPages,
	}

	startedAt := time.Now()
	outcome, err := deps.Searcher.Search(deps.Ctx, s)
	if outcome != nil {
		for _, v := range outcome.Trace {
			printVisit(deps.Stdout, wordhunt.NewRunVisit(v))
		}
		fmt.Fprintln(deps.Stdout, outcome.String())
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(deps.Stderr, "error: search interrupted")
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wordhunt.ErrorMessage(err))
		return err
	}

	if deps.Runs == nil {
		return nil
	}
	run := wordhunt.NewRun(s, outcome, startedAt, time.Now())
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to record search: %s\n", wordhunt.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Recorded as %s\n", run.ID)
	return nil
}

// printVisit writes one trace line.
func printVisit(w io.Writer, v wordhunt.RunVisit) {
	status := v.Status.String()
	if v.StatusCode != 0 {
		status = fmt.Sprintf("%s %d", status, v.StatusCode)
	}
	fmt.Fprintf(w, "%3d  %-15s  %s", v.Seq, status, v.URL)
	switch {
	case v.Error != "" && v.StatusCode == 0:
		fmt.Fprintf(w, "  (%s)", v.Error)
	case v.Status == wordhunt.FetchOK:
		fmt.Fprintf(w, "  (%d %s)", v.Links, pluralize(v.Links, "link"))
	}
	fmt.Fprintln(w)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
