package nav

import (
	"net/url"
	"regexp"
)

var albumPathPattern = regexp.MustCompile(`/album/([a-zA-Z0-9]+)`)

// AlbumID extracts the album reference from a host URL. It returns "" when
// the route does not refer to an album.
func AlbumID(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	if m := albumPathPattern.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}
