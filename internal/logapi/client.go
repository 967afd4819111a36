// Package logapi is a typed client for justlog-compatible chat log servers.
package logapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logging"
)

// DefaultBaseURL is the log server used when no override is configured.
const DefaultBaseURL = "https://logs.zonian.dev"

const defaultTimeout = 15 * time.Second

// Client talks to one log server. Rebuild the client when the base URL
// setting changes; instances are immutable.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, 0)
}

// NewWithTimeout bounds each request to timeout. Non-positive values fall
// back to the default.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: trimmed,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     logging.Component("logapi"),
	}
}

// BaseURL returns the normalized server base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// WithBaseURL returns a client pointed at a different server, keeping the
// configured timeout.
func (c *Client) WithBaseURL(baseURL string) *Client {
	return NewWithTimeout(baseURL, c.timeout)
}

// Channel is one logged channel known to the server.
type Channel struct {
	Name   string `json:"name"`
	UserID string `json:"userID"`
}

type channelsResponse struct {
	Channels []Channel `json:"channels"`
}

// Channels lists all channels the server keeps logs for.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var decoded channelsResponse
	if err := c.getJSON(ctx, c.baseURL+"/channels", &decoded); err != nil {
		return nil, err
	}
	return decoded.Channels, nil
}

type wireMessage struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Channel     string            `json:"channel"`
	Username    string            `json:"username"`
	DisplayName string            `json:"displayName"`
	Text        string            `json:"text"`
	Tags        map[string]string `json:"tags"`
}

type logsResponse struct {
	Messages []wireMessage `json:"messages"`
}

// ChannelLogs fetches one channel day. A 404 means the day has no logs and
// yields an empty slice, not an error.
func (c *Client) ChannelLogs(ctx context.Context, channel string, day time.Time) ([]chatlog.Message, error) {
	endpoint := fmt.Sprintf("%s/channel/%s/%d/%02d/%02d?json=true",
		c.baseURL, url.PathEscape(channel), day.Year(), int(day.Month()), day.Day())
	return c.fetchLogs(ctx, endpoint)
}

// UserLogs fetches one user's messages in a channel for one month.
func (c *Client) UserLogs(ctx context.Context, channel, user string, month time.Time) ([]chatlog.Message, error) {
	endpoint := fmt.Sprintf("%s/channel/%s/user/%s/%d/%02d?json=true",
		c.baseURL, url.PathEscape(channel), url.PathEscape(user), month.Year(), int(month.Month()))
	return c.fetchLogs(ctx, endpoint)
}

// SearchUserLogs runs a full-text search over a user's logged messages.
func (c *Client) SearchUserLogs(ctx context.Context, channel, user, query string) ([]chatlog.Message, error) {
	endpoint := fmt.Sprintf("%s/channel/%s/user/%s/search?q=%s&json=true",
		c.baseURL, url.PathEscape(channel), url.PathEscape(user), url.QueryEscape(query))
	return c.fetchLogs(ctx, endpoint)
}

// Chatter is one entry in a channel's top-chatter ranking.
type Chatter struct {
	UserID       string `json:"userId"`
	UserLogin    string `json:"userLogin"`
	MessageCount int    `json:"messageCount"`
}

// ChannelStats summarizes a channel's logged activity.
type ChannelStats struct {
	MessageCount int       `json:"messageCount"`
	TopChatters  []Chatter `json:"topChatters"`
}

// UserStats summarizes one user's logged activity in a channel.
type UserStats struct {
	UserID       string `json:"userId"`
	UserLogin    string `json:"userLogin"`
	MessageCount int    `json:"messageCount"`
}

// ChannelStats fetches message counts and top chatters for a channel.
func (c *Client) ChannelStats(ctx context.Context, channel string) (ChannelStats, error) {
	var stats ChannelStats
	endpoint := fmt.Sprintf("%s/channel/%s/stats", c.baseURL, url.PathEscape(channel))
	err := c.getJSON(ctx, endpoint, &stats)
	return stats, err
}

// UserStats fetches one user's message count in a channel.
func (c *Client) UserStats(ctx context.Context, channel, user string) (UserStats, error) {
	var stats UserStats
	endpoint := fmt.Sprintf("%s/channel/%s/user/%s/stats", c.baseURL, url.PathEscape(channel), url.PathEscape(user))
	err := c.getJSON(ctx, endpoint, &stats)
	return stats, err
}

func (c *Client) fetchLogs(ctx context.Context, endpoint string) ([]chatlog.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("logapi: create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logapi: fetch logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("logapi: fetch logs: status %d", resp.StatusCode)
	}

	var decoded logsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("logapi: decode logs: %w", err)
	}

	messages := make([]chatlog.Message, 0, len(decoded.Messages))
	for _, wire := range decoded.Messages {
		messages = append(messages, wire.toMessage())
	}
	return messages, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("logapi: create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logapi: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logapi: request %s: status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("logapi: decode response: %w", err)
	}
	return nil
}

func (w wireMessage) toMessage() chatlog.Message {
	id := strings.TrimSpace(w.ID)
	if id == "" {
		// Some servers omit ids on historical lines; rows still need a
		// stable identity for memoization.
		id = uuid.NewString()
	}
	return chatlog.Message{
		ID:          id,
		Timestamp:   w.Timestamp,
		Channel:     w.Channel,
		Username:    w.Username,
		DisplayName: w.DisplayName,
		Text:        w.Text,
		Tags:        w.Tags,
	}
}
