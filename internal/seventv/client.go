package seventv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gempir/loggy/internal/logging"
)

const (
	// DefaultBaseURL is the public 7TV API endpoint.
	DefaultBaseURL = "https://7tv.io"

	fallbackCDN    = "//cdn.7tv.app/emote/"
	requestTimeout = 10 * time.Second
)

// preferredFiles is the delivery file priority for inline rendering.
var preferredFiles = []string{"1x.webp", "1x.avif", "1x.gif", "1x.png"}

// Client resolves a channel's active 7TV emote set by its Twitch user ID.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	return &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: requestTimeout},
		log:     logging.Component("seventv"),
	}
}

type userConnectionResponse struct {
	ID          string            `json:"id"`
	Platform    string            `json:"platform"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	EmoteSet    *emoteSetResponse `json:"emote_set"`
}

type emoteSetResponse struct {
	ID     string        `json:"id"`
	Emotes []activeEmote `json:"emotes"`
}

type activeEmote struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Data *emoteData `json:"data"`
}

type emoteData struct {
	Host     *emoteHost  `json:"host"`
	Animated bool        `json:"animated"`
	Owner    *emoteOwner `json:"owner"`
}

type emoteHost struct {
	URL   string      `json:"url"`
	Files []emoteFile `json:"files"`
}

type emoteFile struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

type emoteOwner struct {
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

// FetchEmoteSet resolves the active emote set for a Twitch channel ID.
// Non-2xx responses and malformed shapes mean "no emotes" and yield an empty
// dictionary with a nil error; only transport failures surface as errors.
func (c *Client) FetchEmoteSet(ctx context.Context, channelID string) (Dictionary, error) {
	dict := Dictionary{}
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return dict, nil
	}

	url := fmt.Sprintf("%s/v3/users/twitch/%s", c.baseURL, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dict, fmt.Errorf("seventv: create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dict, fmt.Errorf("seventv: fetch emote set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug().Str("channel_id", channelID).Int("status", resp.StatusCode).Msg("emote set unavailable")
		return dict, nil
	}

	var connection userConnectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&connection); err != nil {
		c.log.Debug().Str("channel_id", channelID).Err(err).Msg("malformed emote set response")
		return dict, nil
	}
	if connection.EmoteSet == nil {
		return dict, nil
	}

	for _, entry := range connection.EmoteSet.Emotes {
		if entry.Data == nil || strings.TrimSpace(entry.Name) == "" {
			continue
		}
		dict[entry.Name] = buildEmote(entry)
	}

	c.log.Debug().Str("channel_id", channelID).Int("emotes", len(dict)).Msg("loaded emote set")
	return dict, nil
}

func buildEmote(entry activeEmote) Emote {
	data := entry.Data

	baseURL := fallbackCDN + entry.ID
	var files []emoteFile
	if data.Host != nil {
		if strings.TrimSpace(data.Host.URL) != "" {
			baseURL = data.Host.URL
		}
		files = data.Host.Files
	}

	file := pickFile(files)
	urls := []ImageURL{{
		Format:   formatOf(file),
		SizeTier: tierOf(file.Name),
		URL:      "https:" + baseURL + "/" + file.Name,
	}}

	owner := ""
	if data.Owner != nil {
		owner = data.Owner.DisplayName
		if owner == "" {
			owner = data.Owner.Username
		}
	}

	return Emote{
		ID:               entry.ID,
		Name:             entry.Name,
		ImageURLs:        urls,
		OwnerDisplayName: owner,
		Animated:         data.Animated,
	}
}

// pickFile selects the preferred delivery file, falling back to the first
// listed file, and to a literal 1x.webp when the host supplies none.
func pickFile(files []emoteFile) emoteFile {
	for _, want := range preferredFiles {
		for _, f := range files {
			if f.Name == want {
				return f
			}
		}
	}
	if len(files) > 0 {
		return files[0]
	}
	return emoteFile{Name: "1x.webp", Format: "WEBP"}
}

func formatOf(f emoteFile) string {
	if f.Format != "" {
		return f.Format
	}
	if idx := strings.LastIndex(f.Name, "."); idx >= 0 {
		return strings.ToUpper(f.Name[idx+1:])
	}
	return ""
}

func tierOf(name string) string {
	if idx := strings.Index(name, "."); idx > 0 {
		return name[:idx]
	}
	return "1x"
}
