package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowedDirChars = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
	underscoreRuns     = regexp.MustCompile(`_+`)
)

// RemoteDir derives the remote directory for a company display name. The steps
// run in a fixed order: strip diacritics, drop anything outside word
// characters, whitespace and hyphen, turn whitespace runs into "-", collapse
// underscores, trim outer underscores. The result is idempotent and may be
// empty.
func RemoteDir(displayName string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), displayName)
	if err != nil {
		folded = displayName
	}
	name := disallowedDirChars.ReplaceAllString(folded, "")
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
