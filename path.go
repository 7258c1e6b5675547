package wad

import (
	"regexp"
	"strings"
)

// mapMarkerRegexp matches Doom-style episode/map markers: E<digit>M<digit>.
var mapMarkerRegexp = regexp.MustCompile(`^E[0-9]M[0-9]$`)

// tokenizePath splits path on '/' and drops empty tokens, the way
// Wad::tokenizePath does with a stringstream and getline.
func tokenizePath(path string) []string {
	parts := strings.Split(path, "/")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// canonicalDir appends a trailing "/" to p if it doesn't already have one.
func canonicalDir(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
