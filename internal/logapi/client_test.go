package logapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChannels(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channels", r.URL.Path)
		_, _ = w.Write([]byte(`{"channels": [{"name": "forsen", "userID": "22484632"}, {"name": "nymn", "userID": "62300805"}]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	channels, err := client.Channels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 2)
	require.Equal(t, "forsen", channels[0].Name)
	require.Equal(t, "22484632", channels[0].UserID)
}

func TestChannelLogs(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channel/forsen/2025/06/01", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("json"))
		_, _ = w.Write([]byte(`{"messages": [
			{
				"id": "msg-1",
				"timestamp": "2025-06-01T12:00:00Z",
				"channel": "forsen",
				"username": "chatter",
				"displayName": "Chatter",
				"text": "forsenE hello",
				"tags": {"room-id": "22484632", "color": "#FF0000"}
			},
			{
				"id": "",
				"timestamp": "2025-06-01T12:00:01Z",
				"channel": "forsen",
				"username": "other",
				"text": "no id here"
			}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	msgs, err := client.ChannelLogs(context.Background(), "forsen", day)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	require.Equal(t, "msg-1", msgs[0].ID)
	require.Equal(t, "Chatter", msgs[0].Name())
	require.Equal(t, "22484632", msgs[0].Tags["room-id"])

	// Missing id gets synthesized so rows keep a stable identity.
	require.NotEmpty(t, msgs[1].ID)
}

func TestChannelLogsNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL)
	msgs, err := client.ChannelLogs(context.Background(), "forsen", time.Now())
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestChannelLogsServerError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ChannelLogs(context.Background(), "forsen", time.Now())
	require.Error(t, err)
}

func TestUserLogsAndSearchPaths(t *testing.T) {
	t.Parallel()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.RequestURI())
		_, _ = w.Write([]byte(`{"messages": []}`))
	}))
	defer server.Close()

	client := New(server.URL)
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.UserLogs(context.Background(), "forsen", "nymn", month)
	require.NoError(t, err)
	_, err = client.SearchUserLogs(context.Background(), "forsen", "nymn", "gachiGASM live")
	require.NoError(t, err)

	require.Equal(t, []string{
		"/channel/forsen/user/nymn/2025/03?json=true",
		"/channel/forsen/user/nymn/search?q=gachiGASM+live&json=true",
	}, paths)
}

func TestChannelStats(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channel/forsen/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"messageCount": 123456,
			"topChatters": [
				{"userId": "1", "userLogin": "alpha", "messageCount": 500},
				{"userId": "2", "userLogin": "beta", "messageCount": 300}
			]
		}`))
	}))
	defer server.Close()

	client := New(server.URL)
	stats, err := client.ChannelStats(context.Background(), "forsen")
	require.NoError(t, err)
	require.Equal(t, 123456, stats.MessageCount)
	require.Len(t, stats.TopChatters, 2)
	require.Equal(t, "alpha", stats.TopChatters[0].UserLogin)
}

func TestNewNormalizesBaseURL(t *testing.T) {
	t.Parallel()
	require.Equal(t, DefaultBaseURL, New("").BaseURL())
	require.Equal(t, DefaultBaseURL, New("   ").BaseURL())
	require.Equal(t, "https://logs.example.com", New("https://logs.example.com///").BaseURL())
}

func TestTimeoutConfigured(t *testing.T) {
	t.Parallel()
	client := NewWithTimeout("https://logs.example.com", 3*time.Second)
	require.Equal(t, 3*time.Second, client.http.Timeout)

	// Rebuilding for a new base URL keeps the configured timeout.
	rebuilt := client.WithBaseURL("https://other.example.com")
	require.Equal(t, 3*time.Second, rebuilt.http.Timeout)

	require.Equal(t, defaultTimeout, New("https://logs.example.com").http.Timeout)
	require.Equal(t, defaultTimeout, NewWithTimeout("https://logs.example.com", -1).http.Timeout)
}
