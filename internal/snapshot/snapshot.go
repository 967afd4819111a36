// Package snapshot captures a rolling window of chat messages, filters them
// and formats the result as plain text for the clipboard.
package snapshot

import (
	"strings"
	"time"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/seventv"
)

// Config controls snapshot filtering and formatting.
type Config struct {
	RemoveEmoteOnly bool
	ShowTimestamps  bool
	ShowUsernames   bool
	MinCharacters   int
}

// DefaultConfig matches the viewer's initial snapshot settings.
func DefaultConfig() Config {
	return Config{
		RemoveEmoteOnly: true,
		ShowTimestamps:  true,
		ShowUsernames:   true,
	}
}

// Capture is the snapshot state machine: either idle, actively tracking new
// messages since a start instant, or holding a finished window.
type Capture struct {
	active    bool
	startTime time.Time
	messages  []chatlog.Message
	config    Config
}

func NewCapture() *Capture {
	return &Capture{config: DefaultConfig()}
}

func (c *Capture) Active() bool            { return c.active }
func (c *Capture) StartTime() time.Time    { return c.startTime }
func (c *Capture) Count() int              { return len(c.messages) }
func (c *Capture) Config() Config          { return c.config }
func (c *Capture) SetConfig(cfg Config)    { c.config = cfg }
func (c *Capture) Messages() []chatlog.Message {
	return append([]chatlog.Message(nil), c.messages...)
}

// Start begins tracking messages whose timestamp is at or after now.
func (c *Capture) Start(now time.Time) {
	c.active = true
	c.startTime = now
	c.messages = nil
}

// Stop freezes the capture, keeping the collected window.
func (c *Capture) Stop() {
	c.active = false
}

// Reset returns the capture to idle and drops the window.
func (c *Capture) Reset() {
	c.active = false
	c.startTime = time.Time{}
	c.messages = nil
}

// FromPast fills the window with all messages from the trailing duration,
// without entering the active state.
func (c *Capture) FromPast(window time.Duration, now time.Time, all []chatlog.Message) {
	cutoff := now.Add(-window)
	c.active = false
	c.startTime = cutoff
	c.messages = nil
	for _, msg := range all {
		if !msg.Timestamp.Before(cutoff) && !msg.Timestamp.After(now) {
			c.messages = append(c.messages, msg)
		}
	}
}

// Observe updates an active capture with the latest full message list.
// Idempotent: the window is recomputed from the start instant each time.
func (c *Capture) Observe(all []chatlog.Message) {
	if !c.active || c.startTime.IsZero() {
		return
	}
	c.messages = nil
	for _, msg := range all {
		if !msg.Timestamp.Before(c.startTime) {
			c.messages = append(c.messages, msg)
		}
	}
}

// Format filters the messages per config and renders one line per message.
// The emote dictionary drives emote-only detection; with a nil or empty
// dictionary that filter keeps everything non-empty.
func Format(msgs []chatlog.Message, cfg Config, dict seventv.Dictionary) string {
	var lines []string
	for _, msg := range msgs {
		if cfg.MinCharacters > 0 && len(msg.Text) < cfg.MinCharacters {
			continue
		}
		if cfg.RemoveEmoteOnly && chatlog.EmoteOnly(msg.Text, dict) {
			continue
		}

		var parts []string
		if cfg.ShowTimestamps {
			parts = append(parts, "["+msg.Timestamp.Local().Format("15:04:05")+"]")
		}
		if cfg.ShowUsernames {
			parts = append(parts, msg.Name()+":")
		}
		parts = append(parts, msg.Text)
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// FilteredCount reports how many messages survive the config's filters.
func FilteredCount(msgs []chatlog.Message, cfg Config, dict seventv.Dictionary) int {
	count := 0
	for _, msg := range msgs {
		if cfg.MinCharacters > 0 && len(msg.Text) < cfg.MinCharacters {
			continue
		}
		if cfg.RemoveEmoteOnly && chatlog.EmoteOnly(msg.Text, dict) {
			continue
		}
		count++
	}
	return count
}
