package mock

import (
	"context"

	"github.com/fwojciec/wordhunt"
)

var _ wordhunt.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of wordhunt.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, s wordhunt.Search) (*wordhunt.Outcome, error)
}

func (s *Searcher) Search(ctx context.Context, search wordhunt.Search) (*wordhunt.Outcome, error) {
	return s.SearchFn(ctx, search)
}

var _ wordhunt.RunService = (*RunService)(nil)

// RunService is a mock implementation of wordhunt.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *wordhunt.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*wordhunt.Run, error)
	FindRunsFn    func(ctx context.Context, filter wordhunt.RunFilter) ([]*wordhunt.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *wordhunt.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*wordhunt.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter wordhunt.RunFilter) ([]*wordhunt.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
