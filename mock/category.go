package mock

import (
	"context"

	"github.com/fwojciec/wikicorpus"
)

var _ wikicorpus.CategoryService = (*CategoryService)(nil)

// CategoryService is a mock implementation of wikicorpus.CategoryService.
type CategoryService struct {
	CategoryMembersFn func(ctx context.Context, category string) ([]wikicorpus.Page, error)
}

func (s *CategoryService) CategoryMembers(ctx context.Context, category string) ([]wikicorpus.Page, error) {
	return s.CategoryMembersFn(ctx, category)
}
