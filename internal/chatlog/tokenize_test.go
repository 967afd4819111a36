package chatlog

import (
	"strings"
	"testing"
	"time"

	"github.com/gempir/loggy/internal/seventv"
)

func testDict(names ...string) seventv.Dictionary {
	dict := seventv.Dictionary{}
	for i, name := range names {
		dict[name] = seventv.Emote{
			ID:   name + "-id",
			Name: name,
			ImageURLs: []seventv.ImageURL{
				{Format: "WEBP", SizeTier: "1x", URL: "https://cdn.7tv.app/emote/" + name + "-id/1x.webp"},
			},
			Animated: i%2 == 0,
		}
	}
	return dict
}

func TestTokenizeEmptyDictionaryShortCircuits(t *testing.T) {
	t.Parallel()
	parts := Tokenize("abc def", seventv.Dictionary{})
	if len(parts) != 1 {
		t.Fatalf("parts=%d want 1", len(parts))
	}
	if parts[0].Kind != PartText || parts[0].Content != "abc def" {
		t.Fatalf("part=%+v", parts[0])
	}
}

func TestTokenizeNoMatchesYieldsSingleTextPart(t *testing.T) {
	t.Parallel()
	dict := testDict("Kappa", "PogChamp")
	for _, text := range []string{
		"",
		"hello world",
		"  leading and trailing  ",
		"kappa pogchamp nothing matches here",
	} {
		parts := Tokenize(text, dict)
		if len(parts) != 1 {
			t.Fatalf("Tokenize(%q): parts=%d want 1", text, len(parts))
		}
		if parts[0].Kind != PartText || parts[0].Content != text {
			t.Fatalf("Tokenize(%q): part=%+v", text, parts[0])
		}
	}
}

func TestTokenizeLosslessReconstruction(t *testing.T) {
	t.Parallel()
	dict := testDict("Kappa", "PogChamp", "LUL")
	texts := []string{
		"",
		"Kappa",
		" Kappa ",
		"Kappa Kappa",
		"hello Kappa world PogChamp",
		"LUL\tLUL  LUL",
		"no emotes at all",
		"trailing Kappa",
	}
	for _, text := range texts {
		parts := Tokenize(text, dict)
		var rebuilt strings.Builder
		for _, part := range parts {
			rebuilt.WriteString(part.Content)
		}
		if rebuilt.String() != text {
			t.Fatalf("Tokenize(%q) reconstructs to %q", text, rebuilt.String())
		}
	}
}

func TestTokenizeCaseSensitive(t *testing.T) {
	t.Parallel()
	dict := testDict("PogChamp")
	parts := Tokenize("pogchamp hello", dict)
	if len(parts) != 1 {
		t.Fatalf("parts=%d want 1", len(parts))
	}
	if parts[0].Kind != PartText || parts[0].Content != "pogchamp hello" {
		t.Fatalf("part=%+v", parts[0])
	}
}

func TestTokenizeMultiOccurrence(t *testing.T) {
	t.Parallel()
	dict := testDict("Kappa")
	parts := Tokenize("Kappa Kappa", dict)
	if len(parts) != 3 {
		t.Fatalf("parts=%d want 3: %+v", len(parts), parts)
	}
	if parts[0].Kind != PartEmote || parts[0].Content != "Kappa" {
		t.Fatalf("parts[0]=%+v", parts[0])
	}
	if parts[1].Kind != PartText || parts[1].Content != " " {
		t.Fatalf("parts[1]=%+v", parts[1])
	}
	if parts[2].Kind != PartEmote || parts[2].Content != "Kappa" {
		t.Fatalf("parts[2]=%+v", parts[2])
	}
	if parts[0].Emote == nil || parts[2].Emote == nil {
		t.Fatal("emote parts missing emote")
	}
}

func TestTokenizeCoalescesAdjacentText(t *testing.T) {
	t.Parallel()
	dict := testDict("Kappa")
	parts := Tokenize("a b Kappa c d", dict)
	want := []struct {
		kind    PartKind
		content string
	}{
		{PartText, "a b "},
		{PartEmote, "Kappa"},
		{PartText, " c d"},
	}
	if len(parts) != len(want) {
		t.Fatalf("parts=%d want %d: %+v", len(parts), len(want), parts)
	}
	for i, w := range want {
		if parts[i].Kind != w.kind || parts[i].Content != w.content {
			t.Fatalf("parts[%d]=%+v want %+v", i, parts[i], w)
		}
	}
	for i := 1; i < len(parts); i++ {
		if parts[i].Kind == PartText && parts[i-1].Kind == PartText {
			t.Fatalf("adjacent text parts at %d", i)
		}
	}
}

func TestEmoteOnly(t *testing.T) {
	t.Parallel()
	dict := testDict("Kappa", "LUL")
	tests := []struct {
		name string
		text string
		dict seventv.Dictionary
		want bool
	}{
		{"empty text", "", dict, true},
		{"whitespace only", "   \t ", dict, true},
		{"single emote", "Kappa", dict, true},
		{"multiple emotes", "Kappa LUL Kappa", dict, true},
		{"mixed", "Kappa nice", dict, false},
		{"plain capitalized word", "Hello", dict, false},
		{"zero width padding", "Kappa\u200b LUL\ufeff", dict, true},
		{"empty dictionary", "Kappa", seventv.Dictionary{}, false},
		{"empty text empty dictionary", "", seventv.Dictionary{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmoteOnly(tt.text, tt.dict); got != tt.want {
				t.Errorf("EmoteOnly(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractRoomID(t *testing.T) {
	t.Parallel()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		msgs []Message
		want string
	}{
		{"empty", nil, ""},
		{
			"first message",
			[]Message{{Timestamp: ts, Tags: map[string]string{"room-id": "123"}}},
			"123",
		},
		{
			"later message",
			[]Message{
				{Timestamp: ts},
				{Timestamp: ts, Tags: map[string]string{}},
				{Timestamp: ts, Tags: map[string]string{"room-id": "456"}},
			},
			"456",
		},
		{
			"beyond scan limit",
			append(make([]Message, 11), Message{Tags: map[string]string{"room-id": "999"}}),
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRoomID(tt.msgs); got != tt.want {
				t.Errorf("ExtractRoomID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageNameAndColor(t *testing.T) {
	t.Parallel()
	msg := Message{Username: "forsen", DisplayName: "Forsen", Tags: map[string]string{"color": "#00FF7F"}}
	if msg.Name() != "Forsen" {
		t.Fatalf("Name()=%q", msg.Name())
	}
	if msg.Color() != "#00FF7F" {
		t.Fatalf("Color()=%q", msg.Color())
	}

	bare := Message{Username: "forsen"}
	if bare.Name() != "forsen" {
		t.Fatalf("Name()=%q", bare.Name())
	}
	if bare.Color() != DefaultUserColor {
		t.Fatalf("Color()=%q", bare.Color())
	}
}
