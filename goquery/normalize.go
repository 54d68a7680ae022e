package goquery

import "strings"

// NormalizeURL resolves ref into an absolute URL anchored to origin.
//
// Absolute http(s) references are returned unchanged, protocol-relative ones
// get an https scheme, root-relative ones are prefixed with https://origin.
// Anything else, including relative paths and opaque schemes, passes through
// unchanged. Blank input yields an empty string.
func NormalizeURL(ref, origin string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return "https://" + origin + ref
	}
	return ref
}
