package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harrison/treegen/internal/models"
)

// forbiddenRegex matches characters that are invalid in file names on Windows
// and awkward everywhere else, including ASCII control characters.
var forbiddenRegex = regexp.MustCompile(`[<>:"\\|?*\x00-\x1f]`)

// SanitizeSegment cleans a single stack element. dirMarker reports whether the
// element ended with "/" before cleaning.
func SanitizeSegment(segment string) (clean string, dirMarker bool) {
	dirMarker = strings.HasSuffix(segment, "/")
	clean = strings.Trim(segment, "/")
	clean = forbiddenRegex.ReplaceAllString(clean, "_")
	clean = strings.TrimSpace(clean)
	if clean == "." {
		clean = ""
	}
	return clean, dirMarker
}

// Sanitize turns a stack of raw names into a filesystem-safe relative path.
// Empty segments are dropped. The target is a directory when the last
// segment carried the "/" marker. ok is false when the last segment cleans
// to nothing, such as "." or "/", since the entry then names no path of its own.
func Sanitize(segments []string) (target models.Target, ok bool) {
	if len(segments) == 0 {
		return models.Target{}, false
	}

	last, lastIsDir := SanitizeSegment(segments[len(segments)-1])
	if last == "" {
		return models.Target{}, false
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments[:len(segments)-1] {
		if clean, _ := SanitizeSegment(seg); clean != "" {
			parts = append(parts, clean)
		}
	}
	parts = append(parts, last)

	return models.Target{
		Path:  filepath.Join(parts...),
		IsDir: lastIsDir,
	}, true
}
