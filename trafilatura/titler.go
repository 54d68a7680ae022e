// Package trafilatura scrapes page titles with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcard"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Titler implements postcard.Titler at compile time.
var _ postcard.Titler = (*Titler)(nil)

// Titler wraps go-trafilatura metadata extraction to find a page title.
// When trafilatura finds none, the first <title> or <h1> text is used.
type Titler struct{}

// NewTitler creates a new Titler.
func NewTitler() *Titler {
	return &Titler{}
}

// Title returns the page title, or "" when the page has none.
func (t *Titler) Title(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err == nil && result != nil {
		if title := strings.TrimSpace(result.Metadata.Title); title != "" {
			return title
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	if title := firstText(doc, "title"); title != "" {
		return title
	}
	return firstText(doc, "h1")
}

// firstText returns the whitespace-collapsed text of the first element
// matching selector that has any.
func firstText(doc *goquery.Document, selector string) string {
	var text string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text = strings.Join(strings.Fields(sel.Text()), " ")
		return text == ""
	})
	return text
}
