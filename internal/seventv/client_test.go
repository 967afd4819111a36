package seventv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientFetchEmoteSet(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/users/twitch/22484632", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "conn-1",
			"platform": "TWITCH",
			"username": "forsen",
			"display_name": "Forsen",
			"emote_set": {
				"id": "set-1",
				"emotes": [
					{
						"id": "em1",
						"name": "forsenE",
						"data": {
							"animated": false,
							"host": {
								"url": "//cdn.7tv.app/emote/em1",
								"files": [
									{"name": "1x.avif", "format": "AVIF"},
									{"name": "1x.webp", "format": "WEBP"},
									{"name": "4x.webp", "format": "WEBP"}
								]
							},
							"owner": {"display_name": "", "username": "zulul"}
						}
					},
					{
						"id": "em2",
						"name": "OMEGALUL",
						"data": {
							"animated": true,
							"host": {"url": "", "files": []},
							"owner": {"display_name": "Owner"}
						}
					},
					{"id": "em3", "name": "NoData"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dict, err := client.FetchEmoteSet(context.Background(), "22484632")
	require.NoError(t, err)
	require.Len(t, dict, 2)

	forsenE, ok := dict.Lookup("forsenE")
	require.True(t, ok)
	require.Equal(t, "em1", forsenE.ID)
	require.Equal(t, "https://cdn.7tv.app/emote/em1/1x.webp", forsenE.URL())
	require.Equal(t, "https://cdn.7tv.app/emote/em1/3x.webp", forsenE.PreviewURL())
	require.Equal(t, "zulul", forsenE.OwnerDisplayName)
	require.False(t, forsenE.Animated)

	// Empty host URL falls back to the CDN path template; empty file list
	// falls back to the 1x.webp name.
	omega, ok := dict.Lookup("OMEGALUL")
	require.True(t, ok)
	require.Equal(t, "https://cdn.7tv.app/emote/em2/1x.webp", omega.URL())
	require.Equal(t, "Owner", omega.OwnerDisplayName)
	require.True(t, omega.Animated)

	_, ok = dict.Lookup("NoData")
	require.False(t, ok)
}

func TestClientFetchEmoteSetNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown User", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dict, err := client.FetchEmoteSet(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, dict)
}

func TestClientFetchEmoteSetMalformed(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"emote_set": "not an object"`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dict, err := client.FetchEmoteSet(context.Background(), "123")
	require.NoError(t, err)
	require.Empty(t, dict)
}

func TestClientFetchEmoteSetMissingSet(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "conn-1", "username": "nobody"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	dict, err := client.FetchEmoteSet(context.Background(), "123")
	require.NoError(t, err)
	require.Empty(t, dict)
}

func TestClientEmptyChannelID(t *testing.T) {
	t.Parallel()
	client := NewClient("http://127.0.0.1:0")
	dict, err := client.FetchEmoteSet(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, dict)
}

func TestPickFilePreference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		files []emoteFile
		want  string
	}{
		{"webp preferred", []emoteFile{{Name: "1x.gif"}, {Name: "1x.webp"}}, "1x.webp"},
		{"avif next", []emoteFile{{Name: "1x.png"}, {Name: "1x.avif"}}, "1x.avif"},
		{"first available fallback", []emoteFile{{Name: "2x.webp"}, {Name: "4x.gif"}}, "2x.webp"},
		{"no files", nil, "1x.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickFile(tt.files); got.Name != tt.want {
				t.Errorf("pickFile() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}
