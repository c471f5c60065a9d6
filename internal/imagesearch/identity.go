package imagesearch

import "regexp"

var (
	pexelsIDRe   = regexp.MustCompile(`/photos/(\d+)/`)
	unsplashIDRe = regexp.MustCompile(`/photo-([a-zA-Z0-9-]+)`)
)

// ImageID normalises a photo URL so that different renditions of the same
// provider photo compare equal. Unrecognised URLs are their own identity.
func ImageID(url string) string {
	if m := pexelsIDRe.FindStringSubmatch(url); m != nil {
		return "pexels:" + m[1]
	}
	if m := unsplashIDRe.FindStringSubmatch(url); m != nil {
		return "unsplash:" + m[1]
	}
	return url
}

// seenSet tracks accepted image identities for one enrichment call.
type seenSet map[string]struct{}

// add reports whether url is new and records it.
func (s seenSet) add(url string) bool {
	id := ImageID(url)
	if _, dup := s[id]; dup {
		return false
	}
	s[id] = struct{}{}
	return true
}
