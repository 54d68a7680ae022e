package postcard

import (
	"net/url"
	"strings"
)

// TitlePolicy controls how DiscussionRecord.Title is populated.
type TitlePolicy string

// Supported title policies.
const (
	// TitleBlank always leaves the title empty.
	TitleBlank TitlePolicy = "blank"

	// TitleScrape asks a Titler for the page's title.
	TitleScrape TitlePolicy = "scrape"
)

// DefaultAvatarSize is the rendition size requested from size-parameterized
// avatar services.
const DefaultAvatarSize = 192

// UpscaleRule rewrites avatar URLs served by a size-parameterized image
// service so they request a larger rendition.
type UpscaleRule struct {
	// Domain matches the URL host or its registrable domain (e.g. "gravatar.com"
	// matches "secure.gravatar.com").
	Domain string `json:"domain" yaml:"domain" validate:"required,hostname"`

	// Param is the query parameter that carries the size.
	Param string `json:"param" yaml:"param" validate:"required"`

	// Size is the value written into Param.
	Size int `json:"size" yaml:"size" validate:"min=1"`
}

// Profile describes the forum the extraction engine is pointed at.
type Profile struct {
	// Origin is the host prepended to root-relative references. When empty
	// the host of the page's source URL is used.
	Origin string `json:"origin" yaml:"origin" validate:"omitempty,hostname_port|hostname"`

	// DiscussionPrefix is the path prefix shared by discussion and topic links.
	DiscussionPrefix string `json:"discussionPrefix" yaml:"discussion_prefix" validate:"required,startswith=/"`

	// ProfilePrefix is the path prefix of author profile links.
	ProfilePrefix string `json:"profilePrefix" yaml:"profile_prefix" validate:"required,startswith=/"`

	// CDNHosts are image-delivery hostnames whose images are assumed to be avatars.
	CDNHosts []string `json:"cdnHosts" yaml:"cdn_hosts" validate:"dive,hostname"`

	// Upscale lists the size-parameterized avatar services.
	Upscale []UpscaleRule `json:"upscale" yaml:"upscale" validate:"dive"`

	// DisableRawScan drops the regex-on-raw-HTML strategies from every cascade.
	DisableRawScan bool `json:"disableRawScan" yaml:"disable_raw_scan"`

	// TitlePolicy selects how the record title is filled.
	TitlePolicy TitlePolicy `json:"titlePolicy" yaml:"title_policy" validate:"omitempty,oneof=blank scrape"`
}

// DefaultProfile returns the profile for a stock Vanilla-style forum.
func DefaultProfile() Profile {
	return Profile{
		DiscussionPrefix: "/discussion/",
		ProfilePrefix:    "/discussion/profile/",
		CDNHosts:         []string{"v-cdn.net", "gravatar.com"},
		Upscale: []UpscaleRule{
			{Domain: "gravatar.com", Param: "s", Size: DefaultAvatarSize},
		},
		TitlePolicy: TitleBlank,
	}
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if !strings.HasPrefix(p.DiscussionPrefix, "/") {
		return Errorf(EINVALID, "discussion prefix must start with /")
	}
	if !strings.HasPrefix(p.ProfilePrefix, "/") {
		return Errorf(EINVALID, "profile prefix must start with /")
	}
	switch p.TitlePolicy {
	case "", TitleBlank, TitleScrape:
	default:
		return Errorf(EINVALID, "unknown title policy %q", p.TitlePolicy)
	}
	for _, r := range p.Upscale {
		if r.Domain == "" || r.Param == "" {
			return Errorf(EINVALID, "upscale rule requires domain and param")
		}
		if r.Size <= 0 {
			return Errorf(EINVALID, "upscale rule for %s requires a positive size", r.Domain)
		}
	}
	return nil
}

// OriginFor returns the configured origin, falling back to the host of sourceURL.
func (p *Profile) OriginFor(sourceURL string) string {
	if p.Origin != "" {
		return p.Origin
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return u.Host
}
