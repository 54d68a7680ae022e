package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/postcard"
	"golang.org/x/net/publicsuffix"
)

// Upscaler rewrites avatar URLs on size-parameterized image services to
// request a larger rendition. Upscale is pure and idempotent.
type Upscaler struct {
	rules []postcard.UpscaleRule
}

// NewUpscaler creates an Upscaler for the given rules.
func NewUpscaler(rules []postcard.UpscaleRule) *Upscaler {
	return &Upscaler{rules: rules}
}

// Upscale overwrites the size parameter of a matching URL. URLs that fail to
// parse, have no host or match no rule are returned unchanged.
func (u *Upscaler) Upscale(raw string) string {
	if raw == "" {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	rule, ok := u.match(strings.ToLower(parsed.Hostname()))
	if !ok {
		return raw
	}

	q, err := url.ParseQuery(parsed.RawQuery)
	if err != nil {
		return raw
	}
	q.Set(rule.Param, strconv.Itoa(rule.Size))
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// match finds the rule for host, comparing against the host itself and its
// registrable domain.
func (u *Upscaler) match(host string) (postcard.UpscaleRule, bool) {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}
	for _, r := range u.rules {
		d := strings.ToLower(r.Domain)
		if d == domain || hostMatches(host, []string{d}) {
			return r, true
		}
	}
	return postcard.UpscaleRule{}, false
}
