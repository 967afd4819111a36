// Package seventv fetches and caches per-channel 7TV emote dictionaries.
package seventv

import "strings"

// ImageURL is one delivery variant of an emote image.
type ImageURL struct {
	Format   string // "WEBP", "AVIF", "GIF", "PNG"
	SizeTier string // "1x", "2x", "3x", "4x"
	URL      string
}

// Emote is one active channel emote. Immutable once constructed.
type Emote struct {
	ID               string
	Name             string // literal chat token
	ImageURLs        []ImageURL
	OwnerDisplayName string
	Animated         bool
}

// URL returns the smallest delivery URL. There is always at least one entry
// for emotes built by this package.
func (e Emote) URL() string {
	if len(e.ImageURLs) == 0 {
		return ""
	}
	return e.ImageURLs[0].URL
}

// PreviewURL returns the enlarged preview URL by substituting the size tier
// of the primary delivery file.
func (e Emote) PreviewURL() string {
	if len(e.ImageURLs) == 0 {
		return ""
	}
	primary := e.ImageURLs[0]
	return strings.Replace(primary.URL, "/"+primary.SizeTier+".", "/3x.", 1)
}

// Dictionary maps the literal chat token to its emote, scoped to one channel.
// Published dictionaries are never mutated; a refetch publishes a new value.
type Dictionary map[string]Emote

// Lookup matches a whitespace-delimited token verbatim. Case-sensitive,
// exact match only.
func (d Dictionary) Lookup(token string) (Emote, bool) {
	emote, ok := d[token]
	return emote, ok
}
