// Package notion converts recognized text into the ordered block structure
// Notion expects on its rich-paste clipboard channel.
package notion

import (
	"regexp"
	"strings"
)

// ItemType tags one parsed unit of recognized text.
type ItemType string

const (
	ItemText           ItemType = "text"
	ItemInlineEquation ItemType = "inline-equation"
	ItemBlockEquation  ItemType = "block-equation"
)

// ContentItem is one typed span of recognized text, in document order.
type ContentItem struct {
	Type    ItemType
	Content string
}

// ParseOptions controls how marker-less input is classified.
type ParseOptions struct {
	// PlainTextFallback emits marker-less input as text paragraphs instead
	// of a single block equation. Off by default: a capture with no $$
	// markers is assumed to be a bare equation.
	PlainTextFallback bool
}

// blockMath matches a $$...$$ pair, possibly spanning lines.
var blockMath = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)

// paragraphSplit separates prose into paragraphs on newline boundaries.
var paragraphSplit = regexp.MustCompile(`\n+`)

// ParseContent splits recognized text into an ordered sequence of typed
// content items. $$-delimited spans become block equations; prose between
// them is split into paragraphs. Input containing no block-math markers at
// all is emitted as one block equation.
func ParseContent(text string) []ContentItem {
	return ParseContentOpts(text, ParseOptions{})
}

// ParseContentOpts is ParseContent with explicit options.
func ParseContentOpts(text string, opts ParseOptions) []ContentItem {
	matches := blockMath.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		if opts.PlainTextFallback {
			return appendParagraphs(nil, text)
		}
		return []ContentItem{{Type: ItemBlockEquation, Content: trimmed}}
	}

	var items []ContentItem
	prev := 0
	for _, m := range matches {
		items = appendParagraphs(items, text[prev:m[0]])
		if eq := strings.TrimSpace(text[m[2]:m[3]]); eq != "" {
			items = append(items, ContentItem{Type: ItemBlockEquation, Content: eq})
		}
		prev = m[1]
	}
	return appendParagraphs(items, text[prev:])
}

func appendParagraphs(items []ContentItem, prose string) []ContentItem {
	for _, p := range paragraphSplit.Split(prose, -1) {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, ContentItem{Type: ItemText, Content: p})
		}
	}
	return items
}
