package domain

// Page is the normalised text and statistics for one page of a source
// document. Pages are created once per extraction call and are immutable;
// a page only exists when its raw text exceeds the minimal-content
// threshold, so empty pages are never represented.
type Page struct {
	// Number is the 1-indexed page number, unique within a document.
	// Ordering follows document order.
	Number int

	// Text is the cleaned page text.
	Text string

	// RawText is the text before cleaning, retained for diagnostics.
	RawText string

	// WordCount is the number of words in Text.
	WordCount int

	// CharCount is the number of characters in Text.
	CharCount int

	// Width and Height are the page dimensions in page-geometry units.
	// Informational only.
	Width  float64
	Height float64
}

// PageMatch is the set of occurrences of a search term on one page.
// Pages without occurrences are absent from scan results.
type PageMatch struct {
	// PageNumber is the 1-indexed page the matches were found on.
	PageNumber int

	// Occurrences is the true total number of matches on the page,
	// including any beyond the retained contexts.
	Occurrences int

	// Contexts holds at most the first three occurrences by position.
	Contexts []Occurrence
}

// Occurrence is one literal match of a term within a page, with its
// surrounding highlighted context.
type Occurrence struct {
	// Position is the character offset of the match within the page text.
	Position int

	// Context is the surrounding text window with the matched substring
	// wrapped in highlight markers. Original casing of the match is kept.
	Context string
}
