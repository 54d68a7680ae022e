package goquery

import (
	"strings"

	"github.com/fwojciec/postcard"
)

// Ensure Extractor implements postcard.Extractor at compile time.
var _ postcard.Extractor = (*Extractor)(nil)

// Record field names used in traces.
const (
	FieldTopic    = "topic"
	FieldUsername = "username"
	FieldAvatar   = "avatarUrl"
	FieldWhen     = "whenText"
	FieldTitle    = "title"
)

// Extractor runs every field resolver against a parsed page and assembles a
// DiscussionRecord. Cascades are built once; Extractor holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	profile  postcard.Profile
	topic    *TopicResolver
	username Cascade
	avatar   Cascade
	when     Cascade
	upscaler *Upscaler
	titler   postcard.Titler
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTitler sets the Titler consulted when the profile's title policy is
// TitleScrape.
func WithTitler(t postcard.Titler) Option {
	return func(e *Extractor) {
		e.titler = t
	}
}

// NewExtractor creates an Extractor for profile.
func NewExtractor(profile postcard.Profile, opts ...Option) *Extractor {
	e := &Extractor{
		profile:  profile,
		topic:    NewTopicResolver(profile),
		username: UsernameCascade(profile),
		avatar:   AvatarCascade(profile),
		when:     WhenCascade(profile),
		upscaler: NewUpscaler(profile.Upscale),
	}
	if profile.DisableRawScan {
		e.username = e.username.Structural()
		e.avatar = e.avatar.Structural()
		e.when = e.when.Structural()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and resolves every field. It never fails: a page that
// cannot be parsed, or a resolver that panics, leaves fields empty.
func (e *Extractor) Extract(html string, sourceURL string) postcard.DiscussionRecord {
	record, _ := e.Explain(html, sourceURL)
	return record
}

// Trace records which strategy produced each resolved field.
type Trace map[string]string

// Explain is like Extract but also reports the winning strategy per field.
// Unresolved fields are absent from the trace.
func (e *Extractor) Explain(html string, sourceURL string) (postcard.DiscussionRecord, Trace) {
	record := postcard.DiscussionRecord{SourceURL: sourceURL}
	trace := Trace{}

	page, err := NewPage(html)
	if err != nil {
		return record, trace
	}
	origin := e.profile.OriginFor(sourceURL)

	safely(func() {
		text, href := e.topic.Resolve(page)
		if href != "" {
			record.Topic, record.TopicURL = text, NormalizeURL(href, origin)
			trace[FieldTopic] = "topic-link"
		}
	})
	safely(func() {
		v, name := e.username.Trace(page)
		record.Username = v
		trace.add(FieldUsername, name)
	})
	safely(func() {
		v, name := e.avatar.Trace(page)
		record.AvatarURL = e.upscaler.Upscale(NormalizeURL(v, origin))
		trace.add(FieldAvatar, name)
	})
	safely(func() {
		v, name := e.when.Trace(page)
		record.WhenText = collapseSpace(v)
		trace.add(FieldWhen, name)
	})
	if e.profile.TitlePolicy == postcard.TitleScrape && e.titler != nil {
		safely(func() {
			record.Title = strings.TrimSpace(e.titler.Title(html))
			if record.Title != "" {
				trace[FieldTitle] = "titler"
			}
		})
	}

	return record, trace
}

func (t Trace) add(field, strategy string) {
	if strategy != "" {
		t[field] = strategy
	}
}

// safely runs fn, discarding any panic so one misbehaving resolver only
// costs its own field.
func safely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
