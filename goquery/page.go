// Package goquery implements the heuristic field-extraction engine on top of
// github.com/PuerkitoBio/goquery.
//
// Each record field is resolved by a Cascade: an ordered list of named
// strategies, most specific markup first and regex scans of the raw HTML
// last. The first strategy to produce a non-empty value wins.
package goquery

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed document together with the raw HTML it came from.
// Strategies query Doc; raw-text strategies scan HTML.
type Page struct {
	Doc  *goquery.Document
	HTML string

	once sync.Once
	data StructuredData
	ok   bool
}

// NewPage parses html into a queryable Page.
func NewPage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &Page{Doc: doc, HTML: html}, nil
}

// StructuredData returns the page's embedded structured-data block.
// The block is read once per page. The second return value is false when no
// usable block exists, including when every candidate fails to parse.
func (p *Page) StructuredData() (StructuredData, bool) {
	p.once.Do(func() {
		p.data, p.ok = ReadStructuredData(p.Doc)
	})
	return p.data, p.ok
}
