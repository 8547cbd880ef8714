// Package pagetext holds the text cleaning rules applied to every page
// before any other component sees it. The same rules feed the extractor
// and the in-document scanner, so output must be byte-for-byte stable.
package pagetext

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The rules run in a fixed order; later rules see the effect of earlier
// ones. Reordering changes output on edge cases ("Hi.World" relies on
// rule 4 running before rule 5).
var (
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	// Blank lines holding only spaces count as part of a newline run,
	// otherwise rule 3 could manufacture new runs and break idempotence.
	newlineRuns    = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	spaceAfterNL   = regexp.MustCompile(`\n `)
	spaceBeforePun = regexp.MustCompile(`\s+([,.!?;:])`)
	missingGap     = regexp.MustCompile(`([.!?])([A-Z])`)
)

// Clean normalises whitespace and punctuation spacing in page text.
// It is idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	s = spaceAfterNL.ReplaceAllString(s, "\n")
	s = spaceBeforePun.ReplaceAllString(s, "$1")
	s = missingGap.ReplaceAllString(s, "$1 $2")
	return s
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharCount returns the number of characters (runes) in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
