// Package pagesearch scans extracted pages for a literal term and builds
// highlighted occurrence contexts. It is independent of the search
// backend and operates purely on the cleaned page text.
package pagesearch

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docfind/internal/core/domain"
)

const (
	// ContextRadius is the number of bytes kept on each side of a
	// match, clamped to page boundaries and widened to whole runes.
	ContextRadius = 150

	// MaxContextsPerPage bounds how many occurrences are retained per
	// page. PageMatch.Occurrences still reports the true total.
	MaxContextsPerPage = 3

	// Highlight markers wrapped around the matched substring.
	markOpen  = "<em>"
	markClose = "</em>"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Scan finds every occurrence of term across the pages. Matching is
// case-insensitive substring matching with no tokenization. The scan
// resumes one character past each match start, so overlapping matches
// are counted as well; that is deliberate and observable in the counts.
//
// An empty term or page list yields an empty result. Returned pages are
// sorted ascending by page number; pages without occurrences are absent.
func Scan(pages []domain.Page, term string) []domain.PageMatch {
	if term == "" || len(pages) == 0 {
		return []domain.PageMatch{}
	}

	needle := foldCase(term)
	matches := make([]domain.PageMatch, 0)

	for _, page := range pages {
		pm := scanPage(page, needle)
		if pm.Occurrences > 0 {
			matches = append(matches, pm)
		}
	}

	// Pages arrive in document order from the extractor, but callers may
	// pass arbitrary slices.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].PageNumber > matches[j].PageNumber; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}

	return matches
}

// foldCase lowercases s rune by rune, keeping any rune whose lowercase
// form has a different UTF-8 width (such as U+0130). Byte offsets into the
// result are therefore valid offsets into s.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != utf8.RuneLen(r) {
			l = r
		}
		b.WriteRune(l)
	}
	return b.String()
}

// scanPage collects all occurrences of needle on one page.
func scanPage(page domain.Page, needle string) domain.PageMatch {
	haystack := foldCase(page.Text)
	pm := domain.PageMatch{PageNumber: page.Number}

	pos := 0
	for {
		i := strings.Index(haystack[pos:], needle)
		if i < 0 {
			break
		}
		at := pos + i
		pm.Occurrences++
		if len(pm.Contexts) < MaxContextsPerPage {
			pm.Contexts = append(pm.Contexts, domain.Occurrence{
				Position: at,
				Context:  buildContext(page.Text, at, len(needle)),
			})
		}
		pos = at + 1
	}

	return pm
}

// buildContext cuts a window of up to ContextRadius bytes around the
// match, widened so no UTF-8 sequence is split, collapses its internal
// whitespace and wraps the matched text, original casing intact, in
// highlight markers.
func buildContext(text string, at, matchLen int) string {
	start := at - ContextRadius
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	end := at + matchLen + ContextRadius
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	before := innerWhitespace.ReplaceAllString(text[start:at], " ")
	after := innerWhitespace.ReplaceAllString(text[at+matchLen:end], " ")
	matched := text[at : at+matchLen]

	return before + markOpen + matched + markClose + after
}
