// Package slog provides logging decorators for wordhunt services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wordhunt"
)

// Ensure LoggingFetcher implements wordhunt.Fetcher.
var _ wordhunt.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   wordhunt.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wordhunt.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure LoggingPageFetcher implements wordhunt.PageFetcher.
var _ wordhunt.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher and logs each page result.
type LoggingPageFetcher struct {
	next   wordhunt.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next wordhunt.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the resulting variant.
func (f *LoggingPageFetcher) Fetch(ctx context.Context, url string) (result wordhunt.FetchResult) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"status", result.Status.String(),
			"links", len(result.Links),
			"duration", time.Since(begin),
		}
		if result.StatusCode != 0 {
			attrs = append(attrs, "status_code", result.StatusCode)
		}
		if result.Err != nil {
			f.logger.Warn("page", append(attrs, "err", result.Err)...)
			return
		}
		f.logger.Info("page", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
