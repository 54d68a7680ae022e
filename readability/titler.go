// Package readability scrapes page titles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/postcard"
	"github.com/go-shiori/go-readability"
)

// Ensure Titler implements postcard.Titler at compile time.
var _ postcard.Titler = (*Titler)(nil)

// Titler reads the article title Mozilla's Readability algorithm derives
// from <title>, Open Graph tags and headings.
type Titler struct{}

// NewTitler creates a new Titler.
func NewTitler() *Titler {
	return &Titler{}
}

// Title returns the page title, or "" when none is found or parsing fails.
func (t *Titler) Title(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Title)
}
