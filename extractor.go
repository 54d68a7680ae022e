package postcard

// DiscussionRecord is the structured summary of a single forum page.
// Unresolved fields are empty strings; no field is ever absent.
type DiscussionRecord struct {
	// SourceURL is the page URL, echoed verbatim.
	SourceURL string `json:"sourceUrl"`

	// Title is governed by the profile's TitlePolicy and is empty by default.
	Title string `json:"title"`

	// Topic is the text of the category or topic link.
	Topic string `json:"topic"`

	// TopicURL is the absolute URL of the topic link.
	TopicURL string `json:"topicUrl"`

	// Username is the author's display name.
	Username string `json:"username"`

	// AvatarURL is the absolute URL of the author's avatar, possibly
	// rewritten to request a larger rendition.
	AvatarURL string `json:"avatarUrl"`

	// WhenText is a timestamp or relative-time phrase with whitespace
	// collapsed.
	WhenText string `json:"whenText"`
}

// Resolved reports how many of the scraped fields are non-empty.
func (r DiscussionRecord) Resolved() int {
	var n int
	for _, v := range []string{r.Topic, r.TopicURL, r.Username, r.AvatarURL, r.WhenText} {
		if v != "" {
			n++
		}
	}
	return n
}

// Extractor turns raw forum HTML into a DiscussionRecord.
type Extractor interface {
	// Extract parses html and resolves every field it can. It never fails:
	// fields that cannot be resolved are left empty. sourceURL is echoed into
	// the record and supplies the origin when none is configured.
	Extract(html string, sourceURL string) DiscussionRecord
}

// Titler scrapes a page title. It is only consulted under TitleScrape.
type Titler interface {
	// Title returns the page title, or an empty string.
	Title(html string) string
}
