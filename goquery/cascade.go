package goquery

import (
	"strings"
)

// Strategy is one heuristic in a Cascade.
type Strategy struct {
	// Name identifies the strategy in traces and logs.
	Name string

	// Raw marks strategies that scan the raw HTML text instead of the
	// parsed document.
	Raw bool

	// Fn returns a candidate value, or an empty string.
	Fn func(p *Page) string
}

// Cascade is an ordered list of strategies evaluated until one yields a
// non-empty result. Order encodes trust: earlier strategies win.
type Cascade []Strategy

// Resolve returns the first non-empty, trimmed candidate, or an empty string.
func (c Cascade) Resolve(p *Page) string {
	v, _ := c.Trace(p)
	return v
}

// Trace is like Resolve but also returns the name of the winning strategy.
// The name is empty when no strategy succeeds.
func (c Cascade) Trace(p *Page) (value string, strategy string) {
	for _, s := range c {
		if v := strings.TrimSpace(s.Fn(p)); v != "" {
			return v, s.Name
		}
	}
	return "", ""
}

// Structural returns a copy of the cascade without Raw strategies.
func (c Cascade) Structural() Cascade {
	out := make(Cascade, 0, len(c))
	for _, s := range c {
		if !s.Raw {
			out = append(out, s)
		}
	}
	return out
}

// Names returns the strategy names in evaluation order.
func (c Cascade) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// TextOf returns a strategy yielding the trimmed text of the first element
// matching selector.
func TextOf(name, selector string) Strategy {
	return Strategy{
		Name: name,
		Fn: func(p *Page) string {
			return strings.TrimSpace(p.Doc.Find(selector).First().Text())
		},
	}
}

// AttrOf returns a strategy yielding the trimmed attr value of the first
// element matching selector.
func AttrOf(name, selector, attr string) Strategy {
	return Strategy{
		Name: name,
		Fn: func(p *Page) string {
			v, _ := p.Doc.Find(selector).First().Attr(attr)
			return strings.TrimSpace(v)
		},
	}
}

// collapseSpace replaces runs of whitespace with a single space and trims the ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
