package openapi

import (
	"regexp"
	"strings"
)

var (
	camelBoundary      = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymBoundary    = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	nonWord            = regexp.MustCompile(`[^A-Za-z0-9_]`)
	leadingJunk        = regexp.MustCompile(`^[0-9_]+`)
	underscoreRun      = regexp.MustCompile(`_+`)
	trailingUnderscore = regexp.MustCompile(`_+$`)
)

// Normalize derives a canonical operation name from a raw identifier.
// The rules apply in order: underscore at camelCase boundaries, underscore
// at acronym boundaries (XMLParser -> XML_Parser), replacement of anything
// outside [A-Za-z0-9_], lowercasing, stripping of leading digits and
// underscores, collapsing of underscore runs, and stripping of trailing
// underscores. Normalize is a pure function and idempotent.
func Normalize(name string) string {
	s := camelBoundary.ReplaceAllString(name, "${1}_${2}")
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = nonWord.ReplaceAllString(s, "_")
	s = strings.ToLower(s)
	s = leadingJunk.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = trailingUnderscore.ReplaceAllString(s, "")
	return s
}
