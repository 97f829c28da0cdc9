package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gocache "github.com/patrickmn/go-cache"
)

const snapshotKey = "snapshot"

// Client fetches the remote dataset catalog once, caches the snapshot, and
// answers keyword searches against it. A fetch or decode failure falls back
// to the built-in sample set so the pipeline degrades instead of halting.
type Client struct {
	url  string
	http *http.Client

	// snap holds the catalog snapshot; no expiry unless a TTL was given.
	snap *gocache.Cache
	mu   sync.Mutex
	gen  uint64

	results *lru.Cache[string, []Descriptor]
	now     func() time.Time
}

// NewClient builds a catalog client. ttl <= 0 means the snapshot never
// expires (invalidated only by process restart).
func NewClient(url string, ttl time.Duration) *Client {
	expiry := gocache.NoExpiration
	purge := time.Duration(0)
	if ttl > 0 {
		expiry = ttl
		purge = ttl
	}
	results, _ := lru.New[string, []Descriptor](256)
	return &Client{
		url:     url,
		http:    &http.Client{Timeout: 15 * time.Second},
		snap:    gocache.New(expiry, purge),
		results: results,
		now:     time.Now,
	}
}

// SetClock replaces the client's notion of "now". Intended for tests, where
// recency ranking must be deterministic.
func (c *Client) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// Search returns descriptors matching term, ranked per the optional
// timeframe. Results for identical queries are memoized, so repeated
// searches never trigger a second fetch while the snapshot is cached.
func (c *Client) Search(ctx context.Context, term string, tf Timeframe) ([]Descriptor, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	snap, gen, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d|%s|%s", gen, term, tf.key())
	if hit, ok := c.results.Get(key); ok {
		return append([]Descriptor(nil), hit...), nil
	}

	var matched []Descriptor
	for _, d := range snap {
		if matches(d, term) {
			matched = append(matched, d)
		}
	}
	ranked := rank(matched, tf, c.now())
	c.results.Add(key, ranked)
	return append([]Descriptor(nil), ranked...), nil
}

// ByID resolves catalog ids against the cached snapshot, preserving the
// order of ids. Unknown ids are skipped.
func (c *Client) ByID(ctx context.Context, ids []string) ([]Descriptor, error) {
	snap, _, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Descriptor, len(snap))
	for _, d := range snap {
		byID[d.ID] = d
	}
	var out []Descriptor
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// snapshot returns the cached catalog, fetching it on first use. Concurrent
// callers serialize on the mutex; only the first performs the network call.
func (c *Client) snapshot(ctx context.Context) ([]Descriptor, uint64, error) {
	if v, ok := c.snap.Get(snapshotKey); ok {
		return v.([]Descriptor), c.generation(), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.snap.Get(snapshotKey); ok {
		return v.([]Descriptor), c.gen, nil
	}

	ds, err := c.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		log.Printf("catalog: fetch failed, using built-in sample: %v", err)
		ds = sampleDescriptors()
	}
	c.gen++
	c.snap.Set(snapshotKey, ds, gocache.DefaultExpiration)
	return ds, c.gen, nil
}

func (c *Client) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Client) fetch(ctx context.Context) ([]Descriptor, error) {
	if strings.TrimSpace(c.url) == "" {
		return nil, fmt.Errorf("catalog: no source URL configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %s", resp.Status)
	}
	var ds []Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("catalog: empty snapshot")
	}
	return ds, nil
}

func matches(d Descriptor, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{d.ID, d.Title, d.Description, string(d.Type)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
