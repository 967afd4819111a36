package seventv

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gempir/loggy/internal/logging"
)

const (
	freshTTL  = 5 * time.Minute
	idleEvict = 30 * time.Minute
)

type fetcher interface {
	FetchEmoteSet(ctx context.Context, channelID string) (Dictionary, error)
}

type cacheEntry struct {
	dict     Dictionary
	fetched  time.Time
	lastUsed time.Time
}

type inflightFetch struct {
	done chan struct{}
	dict Dictionary
}

// Resolver caches per-channel dictionaries with a freshness window and an
// idle eviction window. Concurrent fetches for the same channel share one
// request, and the last-requested channel wins regardless of completion order.
type Resolver struct {
	client fetcher
	log    zerolog.Logger

	mu       sync.Mutex
	entries  map[string]*cacheEntry
	inflight map[string]*inflightFetch
	want     string

	now func() time.Time
}

func NewResolver(client *Client) *Resolver {
	return newResolver(client)
}

func newResolver(client fetcher) *Resolver {
	return &Resolver{
		client:   client,
		log:      logging.Component("seventv"),
		entries:  make(map[string]*cacheEntry),
		inflight: make(map[string]*inflightFetch),
		now:      time.Now,
	}
}

// Fetch returns the dictionary for a channel ID, fetching and caching it on
// first use. An empty channel ID means no dictionary was requested: the empty
// dictionary is returned synchronously and no network access happens. All
// failure modes degrade to an empty dictionary.
func (r *Resolver) Fetch(ctx context.Context, channelID string) Dictionary {
	r.mu.Lock()
	r.want = channelID
	if channelID == "" {
		r.mu.Unlock()
		return Dictionary{}
	}
	r.evictIdleLocked()

	now := r.now()
	if entry, ok := r.entries[channelID]; ok && now.Sub(entry.fetched) < freshTTL {
		entry.lastUsed = now
		dict := entry.dict
		r.mu.Unlock()
		return dict
	}

	if pending, ok := r.inflight[channelID]; ok {
		r.mu.Unlock()
		select {
		case <-pending.done:
			return pending.dict
		case <-ctx.Done():
			return Dictionary{}
		}
	}

	pending := &inflightFetch{done: make(chan struct{})}
	r.inflight[channelID] = pending
	r.mu.Unlock()

	dict, err := r.client.FetchEmoteSet(ctx, channelID)
	if err != nil {
		r.log.Debug().Str("channel_id", channelID).Err(err).Msg("emote fetch failed, rendering plain text")
		dict = Dictionary{}
	}
	pending.dict = dict
	close(pending.done)

	r.mu.Lock()
	delete(r.inflight, channelID)
	completed := r.now()
	r.entries[channelID] = &cacheEntry{dict: dict, fetched: completed, lastUsed: completed}
	r.mu.Unlock()
	return dict
}

// Current returns the cached dictionary for the last-requested channel.
// A fetch that completes for a previously requested channel still lands in
// the cache but is never visible here.
func (r *Resolver) Current() (string, Dictionary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.want == "" {
		return "", Dictionary{}, true
	}
	entry, ok := r.entries[r.want]
	if !ok {
		return r.want, nil, false
	}
	entry.lastUsed = r.now()
	return r.want, entry.dict, true
}

// Want records the channel the consumer is interested in without fetching.
func (r *Resolver) Want(channelID string) {
	r.mu.Lock()
	r.want = channelID
	r.mu.Unlock()
}

func (r *Resolver) evictIdleLocked() {
	now := r.now()
	for id, entry := range r.entries {
		if now.Sub(entry.lastUsed) > idleEvict {
			delete(r.entries, id)
		}
	}
}
