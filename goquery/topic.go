package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcard"
)

// TopicResolver finds the link naming the discussion's topic or category,
// as distinct from author profile links and post permalinks.
type TopicResolver struct {
	discussionPrefix string
	profilePrefix    string
	root             string
	permalink        *regexp.Regexp
}

// NewTopicResolver creates a TopicResolver for the profile's path layout.
func NewTopicResolver(profile postcard.Profile) *TopicResolver {
	root := strings.TrimSuffix(profile.DiscussionPrefix, "/")
	return &TopicResolver{
		discussionPrefix: profile.DiscussionPrefix,
		profilePrefix:    profile.ProfilePrefix,
		root:             root,
		permalink:        regexp.MustCompile(`^` + regexp.QuoteMeta(root) + `/\d+(?:[/?#]|$)`),
	}
}

// Resolve returns the text and raw href of the first surviving topic link in
// document order, or two empty strings.
func (r *TopicResolver) Resolve(p *Page) (text, href string) {
	p.Doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		h, _ := sel.Attr("href")
		h = strings.TrimSpace(h)
		if !r.IsTopicHref(h) {
			return true
		}
		text, href = strings.TrimSpace(sel.Text()), h
		return false
	})
	return text, href
}

// IsTopicHref reports whether href is a discussion link that is neither a
// profile link, the bare discussion root nor a numeric post permalink. The
// root followed only by a query or fragment still counts as the root.
func (r *TopicResolver) IsTopicHref(href string) bool {
	switch {
	case !strings.HasPrefix(href, r.discussionPrefix):
		return false
	case strings.HasPrefix(href, r.profilePrefix):
		return false
	case r.isRoot(href):
		return false
	case r.permalink.MatchString(href):
		return false
	}
	return true
}

func (r *TopicResolver) isRoot(href string) bool {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return href == r.root || href == r.root+"/"
}

// ResolveTopic resolves the topic link and normalizes its URL against origin.
func ResolveTopic(p *Page, profile postcard.Profile, origin string) (topic, topicURL string) {
	text, href := NewTopicResolver(profile).Resolve(p)
	if href == "" {
		return "", ""
	}
	return text, NormalizeURL(href, origin)
}
