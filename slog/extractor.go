package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/postcard"
)

// Ensure LoggingExtractor implements postcard.Extractor.
var _ postcard.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging of how many fields
// each page yielded.
type LoggingExtractor struct {
	next   postcard.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next postcard.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, sourceURL string) (record postcard.DiscussionRecord) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"url", sourceURL,
			"bytes", len(html),
			"resolved", record.Resolved(),
			"topic", record.Topic != "",
			"username", record.Username != "",
			"avatar", record.AvatarURL != "",
			"when", record.WhenText != "",
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(html, sourceURL)
}
