package goquery

import (
	"regexp"

	"github.com/fwojciec/postcard"
)

const timeUnits = `(?:seconds?|secs?|minutes?|mins?|hours?|hrs?|days?|weeks?|months?|years?)`

var (
	editedAgoRe   = regexp.MustCompile(`(?i)\bedited\s+\d+\s+` + timeUnits + `\s+ago\b`)
	relativeAgoRe = regexp.MustCompile(`(?i)\b\d+\s+` + timeUnits + `\s+ago\b`)
)

// WhenCascade returns the timestamp strategies in trust order.
func WhenCascade(postcard.Profile) Cascade {
	return Cascade{
		AttrOf("time-datetime", "time", "datetime"),
		TextOf("time-text", "time"),
		{Name: "edited-ago", Raw: true, Fn: func(p *Page) string {
			return editedAgoRe.FindString(p.HTML)
		}},
		{Name: "relative-ago", Raw: true, Fn: func(p *Page) string {
			return relativeAgoRe.FindString(p.HTML)
		}},
		{Name: "structured-data", Fn: func(p *Page) string {
			data, ok := p.StructuredData()
			if !ok {
				return ""
			}
			if data.DateModified != "" {
				return data.DateModified
			}
			return data.DatePublished
		}},
	}
}

// ResolveWhen runs the default timestamp cascade and collapses whitespace in
// the result.
func ResolveWhen(p *Page, profile postcard.Profile) string {
	return collapseSpace(WhenCascade(profile).Resolve(p))
}
