package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicorpus"
)

// Ensure LoggingPageService implements wikicorpus.PageService.
var _ wikicorpus.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with debug logging.
type LoggingPageService struct {
	next   wikicorpus.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next wikicorpus.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// Sections delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) Sections(ctx context.Context, title string) (sections []wikicorpus.Section, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page sections",
			"title", title,
			"count", wikicorpus.CountSections(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sections(ctx, title)
}

// Summary delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) Summary(ctx context.Context, title string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page summary",
			"title", title,
			"bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summary(ctx, title)
}
