package chatlog

import (
	"strings"
	"unicode"

	"github.com/gempir/loggy/internal/seventv"
)

// PartKind discriminates tokenized message segments.
type PartKind int

const (
	PartText PartKind = iota
	PartEmote
)

// Part is one segment of a tokenized message. Text parts carry raw text
// (whitespace included); emote parts carry the literal matched token and the
// emote it resolved to.
type Part struct {
	Kind    PartKind
	Content string
	Emote   *seventv.Emote
}

// Tokenize splits message text into an ordered sequence of text and emote
// parts by matching whitespace-delimited words against the dictionary.
// Pure and total: same inputs always yield the same sequence, and the
// concatenation of all Content fields reproduces text exactly. Adjacent
// non-emote segments coalesce, so no two text parts are ever adjacent.
func Tokenize(text string, dict seventv.Dictionary) []Part {
	if len(dict) == 0 {
		return []Part{{Kind: PartText, Content: text}}
	}

	var parts []Part
	appendText := func(segment string) {
		if len(parts) > 0 && parts[len(parts)-1].Kind == PartText {
			parts[len(parts)-1].Content += segment
			return
		}
		parts = append(parts, Part{Kind: PartText, Content: segment})
	}

	for _, segment := range splitKeepingWhitespace(text) {
		if isWhitespace(segment) {
			appendText(segment)
			continue
		}
		if emote, ok := dict.Lookup(segment); ok {
			parts = append(parts, Part{Kind: PartEmote, Content: segment, Emote: &emote})
			continue
		}
		appendText(segment)
	}

	if len(parts) == 0 {
		return []Part{{Kind: PartText, Content: text}}
	}
	return parts
}

// splitKeepingWhitespace splits text into alternating non-whitespace and
// whitespace runs, preserving both so reconstruction is lossless.
func splitKeepingWhitespace(text string) []string {
	var segments []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			segments = append(segments, text[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(text) {
		segments = append(segments, text[start:])
	}
	return segments
}

func isWhitespace(segment string) bool {
	return strings.TrimSpace(segment) == ""
}

// EmoteOnly reports whether a message consists solely of emote tokens.
// Invisible formatting runes are stripped before matching so emote spam
// padded with zero-width characters still counts. Empty or whitespace-only
// text counts as emote-only; with no dictionary nothing can match.
func EmoteOnly(text string, dict seventv.Dictionary) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, text)

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return true
	}
	if len(dict) == 0 {
		return false
	}
	for _, field := range fields {
		if _, ok := dict.Lookup(field); !ok {
			return false
		}
	}
	return true
}
