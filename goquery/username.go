package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postcard"
)

// userLinkSelectors match profile links by prefix, by substring and by a
// "user link" class on an enclosing element.
func userLinkSelectors(profilePrefix string) string {
	return strings.Join([]string{
		fmt.Sprintf(`a[href^=%q]`, profilePrefix),
		`a[href*="/profile/"]`,
		`[class*="UserLink"] a`,
		`[class*="userlink"] a`,
		`[class*="user-link"] a`,
		`[class*="username"] a`,
	}, ", ")
}

// UsernameCascade returns the author-name strategies in trust order.
func UsernameCascade(profile postcard.Profile) Cascade {
	return Cascade{
		TextOf("profile-link", userLinkSelectors(profile.ProfilePrefix)),
		{Name: "profile-scan", Fn: profileScan(profile.ProfilePrefix)},
		{Name: "byline", Fn: bylineText},
		{Name: "structured-data", Fn: func(p *Page) string {
			data, _ := p.StructuredData()
			return data.AuthorName
		}},
	}
}

// profileScan walks every link and compares the path of its parsed href, so
// absolute links on the forum host are caught too.
func profileScan(profilePrefix string) func(p *Page) string {
	return func(p *Page) string {
		var name string
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			u, err := url.Parse(strings.TrimSpace(href))
			if err != nil || !strings.HasPrefix(u.Path, profilePrefix) {
				return true
			}
			name = strings.TrimSpace(sel.Text())
			return name == ""
		})
		return name
	}
}

// bylineText returns the text of the first element whose class hints at an
// author or byline.
func bylineText(p *Page) string {
	var name string
	p.Doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		class = strings.ToLower(class)
		if !strings.Contains(class, "author") && !strings.Contains(class, "byline") {
			return true
		}
		name = strings.TrimSpace(sel.Text())
		return name == ""
	})
	return name
}

// ResolveUsername runs the default username cascade.
func ResolveUsername(p *Page, profile postcard.Profile) string {
	return UsernameCascade(profile).Resolve(p)
}
