package mock

import (
	"context"

	"github.com/fwojciec/wikicorpus"
)

var _ wikicorpus.AuthorService = (*AuthorService)(nil)

// AuthorService is a mock implementation of wikicorpus.AuthorService.
type AuthorService struct {
	AuthorsFn func(ctx context.Context, pages []wikicorpus.Page) ([]string, error)
}

func (s *AuthorService) Authors(ctx context.Context, pages []wikicorpus.Page) ([]string, error) {
	return s.AuthorsFn(ctx, pages)
}
