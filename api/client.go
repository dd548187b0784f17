// Package api is the HTTP client for the remote mindtile content API, the
// only persistence this application has. Every method converts transport and
// decoding failures into a benign zero value (nil, empty, false) and logs the
// diagnostic instead of surfacing it; callers branch on the result, never on
// an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eringen/mindtile/block"
	log "github.com/sirupsen/logrus"
)

// Client talks to the content API. Safe for concurrent use.
type Client struct {
	baseURL    string
	uploadHost string
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUploadHost overrides the asset host uploads are posted to.
func WithUploadHost(host string) Option {
	return func(c *Client) { c.uploadHost = strings.TrimRight(host, "/") }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadHost: "https://api.cloudinary.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Posts returns the published post listing, newest wire order preserved.
// Future-dated posts are held back; the admin dashboard uses AllPosts.
// Listing posts carry no blocks.
func (c *Client) Posts(ctx context.Context) []Post {
	return published(c.fetchPosts(ctx), c.now())
}

// AllPosts returns every post including future-dated drafts.
func (c *Client) AllPosts(ctx context.Context) []Post {
	return c.fetchPosts(ctx)
}

func (c *Client) fetchPosts(ctx context.Context) []Post {
	resp, err := c.do(ctx, http.MethodGet, "/post", nil)
	if err != nil {
		log.Errorf("api: list posts: %s", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("api: list posts: status %d", resp.StatusCode)
		return nil
	}

	var wire []wirePost
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		log.Errorf("api: decode post list: %s", err)
		return nil
	}

	posts := make([]Post, 0, len(wire))
	for _, w := range wire {
		posts = append(posts, w.normalize())
	}
	return posts
}

// Post returns a single post with its blocks, or nil when it does not exist
// or the API is unreachable. Future-dated posts are returned as-is so direct
// links and the builder keep working before publication.
func (c *Client) Post(ctx context.Context, id string) *Post {
	resp, err := c.do(ctx, http.MethodGet, "/post/"+id, nil)
	if err != nil {
		log.Errorf("api: get post %s: %s", id, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		log.Errorf("api: get post %s: status %d", id, resp.StatusCode)
		return nil
	}

	var wire wirePost
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		log.Errorf("api: decode post %s: %s", id, err)
		return nil
	}

	post := wire.normalize()
	return &post
}

// CreatePost creates a post and returns its id. The id may be empty on APIs
// that only acknowledge success.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (string, bool) {
	body := map[string]any{
		"title":   in.Title,
		"content": in.Content,
		"theme":   in.Theme,
	}
	if in.Date != "" {
		body["date"] = in.Date
	}

	resp, err := c.do(ctx, http.MethodPost, "/post/", body)
	if err != nil {
		log.Errorf("api: create post: %s", err)
		return "", false
	}
	defer resp.Body.Close()

	if !ok2xx(resp) {
		log.Errorf("api: create post: status %d", resp.StatusCode)
		return "", false
	}

	var created struct {
		ID any `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Debugf("api: create post: no id in response: %s", err)
		return "", true
	}
	return idString(created.ID), true
}

// UpdatePost rewrites a post's settings. Tags go over the wire comma-joined
// and props JSON-encoded, matching what the API hands back on reads.
func (c *Client) UpdatePost(ctx context.Context, id string, in PostInput) bool {
	body := map[string]any{
		"title":   in.Title,
		"content": in.Content,
		"tags":    strings.Join(in.Tags, ","),
	}
	if in.Date != "" {
		body["date"] = in.Date
	}
	if in.Props != nil {
		encoded, err := json.Marshal(in.Props)
		if err != nil {
			log.Errorf("api: update post %s: encode props: %s", id, err)
			return false
		}
		body["props"] = string(encoded)
	}

	return c.expectOK(ctx, http.MethodPut, "/post/"+id, body, "update post "+id)
}

// DeletePost removes a post and its blocks.
func (c *Client) DeletePost(ctx context.Context, id string) bool {
	return c.expectOK(ctx, http.MethodDelete, "/post/"+id, nil, "delete post "+id)
}

type LikeAction string

const (
	LikeAdd    LikeAction = "add"
	LikeRemove LikeAction = "remove"
)

// Like asks the API to increment or decrement a post's like counter. The
// increment happens server-side so concurrent readers cannot clobber it.
func (c *Client) Like(ctx context.Context, id string, action LikeAction) bool {
	body := map[string]any{"action": string(action)}
	return c.expectOK(ctx, http.MethodPatch, "/post/"+id+"/like", body, "like post "+id)
}

// SaveBlocks replaces a post's entire block list in one request. Positions
// must already be dense and 1-based; block.Document.Blocks produces that.
func (c *Client) SaveBlocks(ctx context.Context, postID string, blocks []block.Block) bool {
	body := map[string]any{"blocks": blocks}
	return c.expectOK(ctx, http.MethodPut, "/block/"+postID, body, "save blocks of post "+postID)
}

// VoteOnBlock records one vote for an option of a voting block: fetch the
// post, bump the option's tally in the block's votes map, push the props
// back. Concurrent voters may lose increments; an accepted trade for a
// low-stakes feature.
func (c *Client) VoteOnBlock(ctx context.Context, postID, blockID, optionID string) bool {
	post := c.Post(ctx, postID)
	if post == nil {
		return false
	}

	var target *block.Block
	for i := range post.Blocks {
		if post.Blocks[i].ID == blockID {
			target = &post.Blocks[i]
			break
		}
	}
	if target == nil {
		log.Errorf("api: vote: block %s not found on post %s", blockID, postID)
		return false
	}

	props := target.Props
	if props == nil {
		props = map[string]any{}
	}
	votes := block.Votes(props)
	if votes == nil {
		votes = map[string]int{}
	}
	votes[optionID]++
	props["votes"] = votes

	encoded, err := json.Marshal(props)
	if err != nil {
		log.Errorf("api: vote: encode props of block %s: %s", blockID, err)
		return false
	}

	body := map[string]any{"props": string(encoded)}
	return c.expectOK(ctx, http.MethodPatch, "/block/"+blockID, body, "vote on block "+blockID)
}

func (c *Client) expectOK(ctx context.Context, method, path string, body any, what string) bool {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		log.Errorf("api: %s: %s", what, err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !ok2xx(resp) {
		log.Errorf("api: %s: status %d", what, resp.StatusCode)
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	return resp, nil
}

func ok2xx(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
