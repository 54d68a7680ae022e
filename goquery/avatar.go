package goquery

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcard"
)

// AvatarCascade returns the avatar strategies in trust order. Candidates are
// raw references; ResolveAvatar normalizes the winner.
func AvatarCascade(profile postcard.Profile) Cascade {
	cdn := cdnMatcher(profile.CDNHosts)
	return Cascade{
		{Name: "avatar-src", Fn: func(p *Page) string {
			return firstImage(p, func(sel *goquery.Selection) string {
				if !avatarHinted(sel) {
					return ""
				}
				return attr(sel, "src")
			})
		}},
		{Name: "cdn-src", Fn: func(p *Page) string {
			return firstImage(p, func(sel *goquery.Selection) string {
				if src := attr(sel, "src"); cdn(src) {
					return src
				}
				return ""
			})
		}},
		{Name: "srcset", Fn: func(p *Page) string {
			return firstImage(p, func(sel *goquery.Selection) string {
				first := firstSrcsetURL(attr(sel, "srcset"))
				if first == "" {
					return ""
				}
				if avatarHinted(sel) || cdn(attr(sel, "src")) || cdn(first) {
					return first
				}
				return ""
			})
		}},
		{Name: "raw-cdn", Raw: true, Fn: rawCDNScan(profile.CDNHosts)},
	}
}

// ResolveAvatar runs the default avatar cascade and normalizes the winning
// reference. It does not upscale.
func ResolveAvatar(p *Page, profile postcard.Profile, origin string) string {
	return NormalizeURL(AvatarCascade(profile).Resolve(p), origin)
}

// firstImage returns the first non-empty candidate fn produces over img
// elements in document order.
func firstImage(p *Page, fn func(sel *goquery.Selection) string) string {
	var out string
	p.Doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		out = fn(sel)
		return out == ""
	})
	return out
}

func avatarHinted(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	alt, _ := sel.Attr("alt")
	return strings.Contains(strings.ToLower(class), "avatar") ||
		strings.Contains(strings.ToLower(alt), "avatar")
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

// firstSrcsetURL returns the URL of the first srcset candidate: the text
// before the first whitespace of the first comma-delimited entry.
func firstSrcsetURL(srcset string) string {
	entry, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// cdnMatcher reports whether a reference points at one of hosts or a
// subdomain of one.
func cdnMatcher(hosts []string) func(ref string) bool {
	return func(ref string) bool {
		if ref == "" || len(hosts) == 0 {
			return false
		}
		u, err := url.Parse(ref)
		if err != nil {
			return false
		}
		return hostMatches(strings.ToLower(u.Hostname()), hosts)
	}
}

func hostMatches(host string, domains []string) bool {
	if host == "" {
		return false
	}
	for _, d := range domains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// rawCDNScan finds the first CDN image URL literal anywhere in the raw HTML,
// such as inside inline scripts. Matches may use JSON-escaped slashes; the
// returned reference has them and HTML entities decoded.
func rawCDNScan(hosts []string) func(p *Page) string {
	if len(hosts) == 0 {
		return func(*Page) string { return "" }
	}
	quoted := make([]string, len(hosts))
	for i, h := range hosts {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(h))
	}
	re := regexp.MustCompile(`(?i)(?:https?:)?\\?/\\?/(?:[a-z0-9-]+\.)*(?:` + strings.Join(quoted, "|") + `)\\?/(?:[^\s"'<>()\\]|\\/)*`)
	return func(p *Page) string {
		m := re.FindString(p.HTML)
		if m == "" {
			return ""
		}
		return html.UnescapeString(strings.ReplaceAll(m, `\/`, "/"))
	}
}
