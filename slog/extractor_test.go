package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/postcard"
	"github.com/fwojciec/postcard/mock"
	pcslog "github.com/fwojciec/postcard/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved field count at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Extractor{
			ExtractFn: func(html string, sourceURL string) postcard.DiscussionRecord {
				return postcard.DiscussionRecord{
					SourceURL: sourceURL,
					Topic:     "Site Feedback",
					Username:  "alice",
				}
			},
		}

		extractor := pcslog.NewLoggingExtractor(inner, logger)
		record := extractor.Extract("<html></html>", "https://forum.example/discussion/1")

		assert.Equal(t, "alice", record.Username)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "url=https://forum.example/discussion/1")
		assert.Contains(t, output, "resolved=2")
		assert.Contains(t, output, "avatar=false")
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string, sourceURL string) postcard.DiscussionRecord {
				return postcard.DiscussionRecord{SourceURL: sourceURL}
			},
		}

		pcslog.NewLoggingExtractor(inner, logger).Extract("", "https://forum.example/")

		assert.Empty(t, buf.String())
	})
}
