// Package textproc provides pure text transforms applied to raw OCR output.
// All functions are total: they never fail and treat empty input as identity.
package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"snaptex/internal/domain"
)

const maxHeaderLen = 80

var (
	lineBreakRun = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(`[ \t]+`)

	// Whole-line page-number shapes, matched after trimming.
	pagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^page \d+$`),
		regexp.MustCompile(`(?i)^\d+ of \d+$`),
		regexp.MustCompile(`^-\s*\d+\s*-$`),
		regexp.MustCompile(`^\d+$`),
	}

	// List markers that legitimately repeat across a document: bullets,
	// letter-paren and digit-dot enumerations, with or without a trailing
	// space.
	listMarker = regexp.MustCompile(`^(?:[-*•]|[A-Za-z]\)|\d+\.)`)
)

// Characters that open or close a quotation: straight, typographic, and CJK
// corner/angle brackets. Dialogue lines repeat legitimately and must never be
// treated as headers.
const quoteChars = "\"'“”‘’«»「」『』〈〉《》"

// RemoveLineBreaks collapses runs of 3 or more consecutive newlines to
// exactly 2, preserving paragraph breaks while removing OCR blank-line
// storms.
func RemoveLineBreaks(text string) string {
	if text == "" {
		return text
	}
	return lineBreakRun.ReplaceAllString(text, "\n\n")
}

// MergeSpaces collapses runs of spaces and tabs to a single space.
func MergeSpaces(text string) string {
	if text == "" {
		return text
	}
	return spaceRun.ReplaceAllString(text, " ")
}

// RemovePageNumbers drops lines that consist solely of a page-number shape
// ("Page 5", "3 of 12", "- 7 -", bare "42"). Inline occurrences inside a
// longer line are preserved; blank lines always pass through.
func RemovePageNumbers(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && isPageNumberLine(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isPageNumberLine(trimmed string) bool {
	for _, p := range pagePatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// RemoveHeaders drops repeated header/footer lines: a line whose
// whitespace-normalized form is at most 80 characters and occurs 3 or more
// times in the document. List items and dialogue/quotation lines are exempt
// even when they repeat, and lines longer than 80 characters are never
// treated as headers. Normalization makes detection insensitive to
// inconsistent spacing across pages.
func RemoveHeaders(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")

	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		if key := normalizeLine(line); key != "" {
			counts[key]++
		}
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		key := normalizeLine(line)
		if key != "" && utf8.RuneCountInString(key) <= maxHeaderLen &&
			counts[key] >= 3 && !isStructuredLine(key) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// normalizeLine collapses internal whitespace runs to single spaces and
// trims, yielding the repeat-detection key for a line.
func normalizeLine(line string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
}

// isStructuredLine reports whether a normalized line is semantically
// structured content that legitimately repeats: a list item or a
// dialogue/quotation line.
func isStructuredLine(key string) bool {
	if listMarker.MatchString(key) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(key)
	return strings.ContainsRune(quoteChars, first)
}

// RemoveHeaderFooter strips repeated headers first, then residual standalone
// page numbers.
func RemoveHeaderFooter(text string) string {
	return RemovePageNumbers(RemoveHeaders(text))
}

// Process applies the enabled cleanup transforms in a fixed order:
// header/footer stripping, then line-break collapsing, then space merging.
// The header/footer toggle is also surfaced to the recognition prompt by the
// orchestrator; applying it here as well keeps all cleanup behind one options
// record.
func Process(text string, opts domain.CleanupOptions) string {
	if text == "" {
		return text
	}
	if opts.RemoveHeaderFooter {
		text = RemoveHeaderFooter(text)
	}
	if opts.RemoveLineBreaks {
		text = RemoveLineBreaks(text)
	}
	if opts.MergeSpaces {
		text = MergeSpaces(text)
	}
	return text
}
