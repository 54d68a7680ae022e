package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/postcard"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var _ postcard.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per forum. Hosts are grouped by registrable
// domain, so community.forum.example and www.forum.example share one token
// bucket while unrelated forums never wait on each other.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst lets up to n requests to one forum go out back to back.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each forum. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(rps),
		burst:   1,
	}
	if rps <= 0 {
		d.limit = rate.Inf
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the forum serving host may be fetched again or ctx is
// done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(ForumKey(host)).Wait(ctx)
}

// Forums returns the number of forums seen so far.
func (d *DomainLimiter) Forums() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buckets)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.buckets[key] = b
	}
	return b
}

// ForumKey reduces a host to the registrable domain that identifies its
// forum. IP addresses and single-label hosts are returned as given, lower
// cased and without a trailing dot.
func ForumKey(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return host
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}
