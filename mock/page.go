package mock

import (
	"context"

	"github.com/fwojciec/wikicorpus"
)

var _ wikicorpus.PageService = (*PageService)(nil)

// PageService is a mock implementation of wikicorpus.PageService.
type PageService struct {
	SectionsFn func(ctx context.Context, title string) ([]wikicorpus.Section, error)
	SummaryFn  func(ctx context.Context, title string) (string, error)
}

func (s *PageService) Sections(ctx context.Context, title string) ([]wikicorpus.Section, error) {
	return s.SectionsFn(ctx, title)
}

func (s *PageService) Summary(ctx context.Context, title string) (string, error) {
	return s.SummaryFn(ctx, title)
}
