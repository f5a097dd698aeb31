// Package slog provides logging decorators for wikicorpus services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicorpus"
)

// Ensure LoggingCategoryService implements wikicorpus.CategoryService.
var _ wikicorpus.CategoryService = (*LoggingCategoryService)(nil)

// LoggingCategoryService wraps a CategoryService with debug logging.
type LoggingCategoryService struct {
	next   wikicorpus.CategoryService
	logger *slog.Logger
}

// NewLoggingCategoryService creates a new LoggingCategoryService.
func NewLoggingCategoryService(next wikicorpus.CategoryService, logger *slog.Logger) *LoggingCategoryService {
	return &LoggingCategoryService{next: next, logger: logger}
}

// CategoryMembers delegates to the wrapped service and logs the operation.
func (s *LoggingCategoryService) CategoryMembers(ctx context.Context, category string) (pages []wikicorpus.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("category members",
			"category", category,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CategoryMembers(ctx, category)
}
