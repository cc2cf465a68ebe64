// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches characters that are not safe in the local part of a synthesized email.
	unsafeEmailLocal = regexp.MustCompile(`[^a-z0-9._-]+`)
	// Matches runs of whitespace.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Fold lowercases a string and strips diacritics for case-insensitive matching.
// "Renée" and "renee" fold to the same value, so a lookup typed without
// accents still finds the record.
func Fold(s string) string {
	// Decompose accented characters, then drop the combining marks.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(s)
}

// Email normalizes an email address for index lookups: trimmed and lowercased.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocal sanitizes free text into something usable as the local part of a
// placeholder email address. The result is lowercased with whitespace collapsed
// to dots and unsafe characters removed.
//
//	"Mary Anne O'Neil" → "mary.anne.oneil"
func EmailLocal(s string) string {
	s = Fold(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, ".")
	s = unsafeEmailLocal.ReplaceAllString(s, "")
	s = strings.Trim(s, "._-")
	return s
}

// CollapseSpaces trims a string and collapses internal whitespace runs to a
// single space.
func CollapseSpaces(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
