package wordhunt

import (
	"context"
	"time"
)

// Run is a recorded search and its outcome.
type Run struct {
	ID         string     `json:"id"`
	SeedURL    string     `json:"seedUrl"`
	Word       string     `json:"word"`
	MaxPages   int        `json:"maxPages"`
	Found      bool       `json:"found"`
	FoundURL   string     `json:"foundUrl"`
	Visits     int        `json:"visits"`
	Reason     StopReason `json:"reason"`
	Trace      []RunVisit `json:"trace"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// RunVisit is the stored form of a Visit.
type RunVisit struct {
	Seq         int         `json:"seq"`
	URL         string      `json:"url"`
	Status      FetchStatus `json:"status"`
	StatusCode  int         `json:"statusCode"`
	Links       int         `json:"links"`
	ContentHash string      `json:"contentHash"`
	Error       string      `json:"error"`
}

// NewRun builds a Run from a finished search.
func NewRun(s Search, o *Outcome, startedAt, finishedAt time.Time) *Run {
	r := &Run{
		SeedURL:    s.SeedURL,
		Word:       s.Word,
		MaxPages:   s.MaxPages,
		Found:      o.Found,
		FoundURL:   o.URL,
		Visits:     o.Visits,
		Reason:     o.Reason,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	for _, v := range o.Trace {
		r.Trace = append(r.Trace, NewRunVisit(v))
	}
	return r
}

// NewRunVisit converts a Visit to its stored form.
func NewRunVisit(v Visit) RunVisit {
	rv := RunVisit{
		Seq:         v.Seq,
		URL:         v.URL,
		Status:      v.Status,
		StatusCode:  v.StatusCode,
		Links:       v.Links,
		ContentHash: v.ContentHash,
	}
	if v.Err != nil {
		rv.Error = v.Err.Error()
	}
	return rv
}

// Outcome rebuilds the outcome summary of a stored run.
// The trace is not converted back.
func (r *Run) Outcome() *Outcome {
	return &Outcome{
		Found:  r.Found,
		URL:    r.FoundURL,
		Visits: r.Visits,
		Reason: r.Reason,
	}
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.Word == "" {
		return Errorf(EINVALID, "run word required")
	}
	if r.Found && r.FoundURL == "" {
		return Errorf(EINVALID, "found run requires the URL it was found at")
	}
	return nil
}

// RunService represents a service for recording search history.
type RunService interface {
	// CreateRun stores a run and its trace, assigning a new ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its trace.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// The trace is not loaded.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun removes a run and its trace.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Word    *string `json:"word"`
	SeedURL *string `json:"seedUrl"`
	Found   *bool   `json:"found"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
