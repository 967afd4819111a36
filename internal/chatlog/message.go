// Package chatlog defines the archived chat message model and the pure
// functions that turn message text into renderable segments.
package chatlog

import (
	"strings"
	"time"
)

// DefaultUserColor is used when a message carries no color tag.
const DefaultUserColor = "#9147ff"

// roomIDScanLimit bounds how many messages ExtractRoomID inspects.
const roomIDScanLimit = 10

// Message is one archived chat line as handed over by the log server.
// Immutable once received; the rendering pipeline treats message slices as
// read-only ordered sequences.
type Message struct {
	ID          string
	Timestamp   time.Time
	Channel     string
	Username    string
	DisplayName string
	Text        string
	Tags        map[string]string
}

// Name returns the display name, falling back to the login username.
func (m Message) Name() string {
	if strings.TrimSpace(m.DisplayName) != "" {
		return m.DisplayName
	}
	return m.Username
}

// Color returns the tag-supplied username color or the fixed default.
func (m Message) Color() string {
	if c := strings.TrimSpace(m.Tags["color"]); c != "" {
		return c
	}
	return DefaultUserColor
}

// ExtractRoomID pulls the Twitch room ID out of message tags. The first
// message usually carries it; a handful more are scanned in case it does not.
func ExtractRoomID(msgs []Message) string {
	for i, msg := range msgs {
		if i >= roomIDScanLimit {
			break
		}
		if id := strings.TrimSpace(msg.Tags["room-id"]); id != "" {
			return id
		}
	}
	return ""
}
