package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuredData holds the fields read from an embedded JSON-LD block.
type StructuredData struct {
	Type          string
	AuthorName    string
	DatePublished string
	DateModified  string
}

// structuredTypeRank orders the accepted entity types; lower ranks win when a
// page declares several.
var structuredTypeRank = map[string]int{
	"DiscussionForumPosting": 0,
	"SocialMediaPosting":     1,
	"Comment":                1,
	"Question":               1,
	"Article":                2,
	"BlogPosting":            2,
	"NewsArticle":            2,
	"WebPage":                3,
	"ItemPage":               3,
	"QAPage":                 3,
}

// ReadStructuredData scans the document's application/ld+json scripts and
// returns the best-ranked forum posting, article or web page entity.
// Blocks that fail to parse are skipped; the second return value is false
// when nothing usable was found.
func ReadStructuredData(doc *goquery.Document) (StructuredData, bool) {
	var best map[string]any
	bestRank := len(structuredTypeRank) + 1

	doc.Find("script[type]").Each(func(_ int, sel *goquery.Selection) {
		typ, _ := sel.Attr("type")
		if !isJSONLD(typ) {
			return
		}

		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return
		}

		for _, obj := range entities(payload) {
			rank, ok := entityRank(obj)
			if ok && rank < bestRank {
				best, bestRank = obj, rank
			}
		}
	})

	if best == nil {
		return StructuredData{}, false
	}

	return StructuredData{
		Type:          firstType(best["@type"]),
		AuthorName:    authorName(best["author"]),
		DatePublished: stringField(best, "datePublished"),
		DateModified:  stringField(best, "dateModified"),
	}, true
}

func isJSONLD(typ string) bool {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = strings.TrimSpace(typ[:i])
	}
	return typ == "application/ld+json"
}

// entities flattens a JSON-LD payload into candidate objects: top-level
// objects, array members, @graph members and mainEntity values.
func entities(v any) []map[string]any {
	var out []map[string]any
	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		if depth > 4 {
			return
		}
		switch t := v.(type) {
		case []any:
			for _, item := range t {
				walk(item, depth+1)
			}
		case map[string]any:
			out = append(out, t)
			if graph, ok := t["@graph"]; ok {
				walk(graph, depth+1)
			}
			if main, ok := t["mainEntity"]; ok {
				walk(main, depth+1)
			}
		}
	}
	walk(v, 0)
	return out
}

func entityRank(obj map[string]any) (int, bool) {
	rank, found := 0, false
	for _, typ := range types(obj["@type"]) {
		if r, ok := structuredTypeRank[typ]; ok && (!found || r < rank) {
			rank, found = r, true
		}
	}
	return rank, found
}

func types(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func firstType(v any) string {
	if ts := types(v); len(ts) > 0 {
		return ts[0]
	}
	return ""
}

// authorName reads author.name where author may be an object, a list of
// objects or a bare string.
func authorName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return stringField(t, "name")
	case []any:
		for _, item := range t {
			if name := authorName(item); name != "" {
				return name
			}
		}
	}
	return ""
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}
