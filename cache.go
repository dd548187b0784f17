package mindtile

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/mindtile/api"
)

// postCache is an in-memory cache of the published post listing and its tag
// set, with TTL. It exists so every page view does not turn into a round
// trip to the content API. Post detail pages are never cached here; they
// need fresh blocks (vote tallies move between requests).
type postCache struct {
	mu      sync.RWMutex
	posts   []api.Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	client  *api.Client
}

func newPostCache(client *api.Client, ttl time.Duration) *postCache {
	return &postCache{client: client, ttl: ttl}
}

func (c *postCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *postCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts and tags after ensuring the cache is
// fresh. A failed API fetch yields nil and is not cached, so the next
// request retries.
func (c *postCache) ensureLoaded(ctx context.Context) ([]api.Post, []string) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, c.tags
	}

	posts := c.client.Posts(ctx)
	if posts == nil {
		return nil, nil
	}
	c.posts = posts
	c.tags = api.AllTags(posts)
	c.fetched = time.Now()
	return c.posts, c.tags
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *postCache) ListPosts(ctx context.Context, tag string) []api.Post {
	posts, _ := c.ensureLoaded(ctx)
	return api.FilterByTag(posts, tag)
}

// ListTags returns all distinct tags across published posts.
func (c *postCache) ListTags(ctx context.Context) []string {
	_, tags := c.ensureLoaded(ctx)
	return tags
}
