package postcard

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// DefaultScrapeTimeout bounds a single upstream fetch.
const DefaultScrapeTimeout = 15 * time.Second

// Scraper fetches a forum page and extracts its DiscussionRecord.
// It is the single place where a caller waits on the network.
type Scraper struct {
	Fetcher   Fetcher
	Extractor Extractor

	// Timeout bounds each fetch attempt. Zero means DefaultScrapeTimeout.
	Timeout time.Duration

	// Limiter, if set, paces fetches per host.
	Limiter DomainLimiter

	// RetryDelays are the waits between attempts after an upstream failure.
	// Nil means a single attempt.
	RetryDelays []time.Duration
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Scrape validates rawURL, fetches it under a deadline and extracts the record.
// Returns EINVALID for a malformed URL and EUPSTREAM when every fetch attempt
// fails or the deadline expires.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*DiscussionRecord, error) {
	if err := ValidatePageURL(rawURL); err != nil {
		return nil, err
	}

	var html string
	var err error
	for attempt := 0; ; attempt++ {
		html, err = s.fetch(ctx, rawURL)
		if err == nil || attempt >= len(s.RetryDelays) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, Errorf(EUPSTREAM, "fetching %s: %v", rawURL, ctx.Err())
		case <-time.After(s.RetryDelays[attempt]):
		}
	}
	if err != nil {
		return nil, err
	}

	record := s.Extractor.Extract(html, rawURL)
	return &record, nil
}

// fetch performs one paced, deadline-bound fetch attempt.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.Limiter != nil {
		u, _ := url.Parse(rawURL)
		if err := s.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return "", Errorf(EUPSTREAM, "fetching %s: %v", rawURL, err)
		}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScrapeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if ErrorCode(err) == EUPSTREAM {
			return "", err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", Errorf(EUPSTREAM, "fetching %s: timed out after %s", rawURL, timeout)
		}
		return "", Errorf(EUPSTREAM, "fetching %s: %v", rawURL, err)
	}
	return html, nil
}

// ValidatePageURL returns EINVALID unless rawURL is an absolute http or https
// URL with a host.
func ValidatePageURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "url must use http or https")
	}
	if u.Host == "" {
		return Errorf(EINVALID, "url must include a host")
	}
	return nil
}
