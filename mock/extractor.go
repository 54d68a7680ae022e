package mock

import "github.com/fwojciec/postcard"

var _ postcard.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of postcard.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) postcard.DiscussionRecord
}

func (e *Extractor) Extract(html string, sourceURL string) postcard.DiscussionRecord {
	return e.ExtractFn(html, sourceURL)
}

var _ postcard.Titler = (*Titler)(nil)

// Titler is a mock implementation of postcard.Titler.
type Titler struct {
	TitleFn func(html string) string
}

func (t *Titler) Title(html string) string {
	return t.TitleFn(html)
}
