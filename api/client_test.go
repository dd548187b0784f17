package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/mindtile/block"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL)
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestPostsNormalizesAndFiltersFuture(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post", r.URL.Path)
		io.WriteString(w, `[
			{"id": 1, "title": "live", "tags": "web, go", "date": "2026-02-01", "likes": 3},
			{"id": "2", "title": "draft", "date": "2026-04-01"},
			{"id": 3, "title": "undated", "props": "{\"theme\":\"dark\"}"}
		]`)
	}))

	posts := c.Posts(context.Background())
	require.Len(t, posts, 2, "future-dated posts stay out of the listing")

	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, []string{"go", "web"}, posts[0].Tags)
	assert.Equal(t, 3, posts[0].Likes)

	assert.Equal(t, "3", posts[1].ID)
	assert.Equal(t, "dark", posts[1].Theme())
}

func TestAllPostsKeepsFutureDrafts(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "date": "2030-01-01"}, {"id": 2}]`)
	}))
	assert.Len(t, c.AllPosts(context.Background()), 2)
}

func TestPostNormalizesBlocks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post/7", r.URL.Path)
		io.WriteString(w, `{
			"id": 7, "title": "hello", "date": "2030-01-01",
			"blocks": [
				{"id": "b1", "post_id": 7, "position": 1, "type": "code",
				 "content": "x := 1", "props": "{\"language\":\"go\"}"},
				{"id": "b2", "post_id": 7, "position": 2, "type": "text",
				 "content": "body", "props": "{broken"}
			]
		}`)
	}))

	post := c.Post(context.Background(), "7")
	require.NotNil(t, post, "detail fetch ignores future dates")
	require.Len(t, post.Blocks, 2)

	assert.Equal(t, "7", post.Blocks[0].PostID)
	assert.Equal(t, block.Code, post.Blocks[0].Type)
	assert.Equal(t, "go", post.Blocks[0].Props["language"])
	assert.Equal(t, map[string]any{}, post.Blocks[1].Props, "malformed props decode to empty")
}

func TestPostNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	assert.Nil(t, c.Post(context.Background(), "missing"))
}

func TestCreatePost(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/post/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"id": 42}`)
	}))

	id, ok := c.CreatePost(context.Background(), PostInput{Title: "t", Content: "c", Theme: "dark"})
	require.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Equal(t, "dark", got["theme"])
	_, hasDate := got["date"]
	assert.False(t, hasDate, "empty date is omitted")
}

func TestUpdatePostWireShapes(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/post/9", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))

	ok := c.UpdatePost(context.Background(), "9", PostInput{
		Title:   "t",
		Content: "c",
		Tags:    []string{"go", "web"},
		Props:   map[string]any{"theme": "dark"},
	})
	require.True(t, ok)

	assert.Equal(t, "go,web", got["tags"], "tags travel comma-joined")
	props, isString := got["props"].(string)
	require.True(t, isString, "props travel JSON-encoded")
	assert.JSONEq(t, `{"theme":"dark"}`, props)
}

func TestDeletePost(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/post/3", r.URL.Path)
	}))
	assert.True(t, c.DeletePost(context.Background(), "3"))
}

func TestLikeSendsAction(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/post/5/like", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"message": "liked"}`)
	}))

	assert.True(t, c.Like(context.Background(), "5", LikeAdd))
	assert.Equal(t, "add", got["action"])

	assert.True(t, c.Like(context.Background(), "5", LikeRemove))
	assert.Equal(t, "remove", got["action"])
}

func TestSaveBlocksFullReplace(t *testing.T) {
	var got struct {
		Blocks []wireBlock `json:"blocks"`
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/block/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))

	doc := block.NewDocument(
		block.Element{ID: "a", Type: block.Title, Content: "hi"},
		block.Element{ID: "b", Type: block.Text, Content: "body"},
	)
	require.True(t, c.SaveBlocks(context.Background(), "7", doc.Blocks("7")))

	require.Len(t, got.Blocks, 2)
	assert.Equal(t, 1, got.Blocks[0].Position)
	assert.Equal(t, 2, got.Blocks[1].Position)
	assert.Equal(t, "title", got.Blocks[0].Type)
}

func TestVoteOnBlockReadModifyWrite(t *testing.T) {
	var patched map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/post/p1":
			io.WriteString(w, `{"id": "p1", "blocks": [
				{"id": "b1", "post_id": "p1", "position": 1, "type": "voting",
				 "content": "Ship it?",
				 "props": {"options": [{"id": "yes", "text": "Yes"}], "votes": {"yes": 2}}}
			]}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/block/b1":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	require.True(t, c.VoteOnBlock(context.Background(), "p1", "b1", "yes"))

	encoded, isString := patched["props"].(string)
	require.True(t, isString, "patched props travel JSON-encoded")
	props := block.DecodeProps(encoded)
	assert.Equal(t, 3, block.Votes(props)["yes"])

	// First vote for an option the tally has never seen.
	require.True(t, c.VoteOnBlock(context.Background(), "p1", "b1", "no"))
	props = block.DecodeProps(patched["props"].(string))
	assert.Equal(t, 1, block.Votes(props)["no"])
}

func TestVoteOnUnknownBlockFails(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			t.Error("no patch may be sent for an unknown block")
		}
		io.WriteString(w, `{"id": "p1", "blocks": []}`)
	}))
	assert.False(t, c.VoteOnBlock(context.Background(), "p1", "ghost", "yes"))
}

func TestUploadImage(t *testing.T) {
	assets := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "sig", r.FormValue("signature"))
		assert.Equal(t, "1234", r.FormValue("timestamp"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "blog", r.FormValue("folder"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.jpg", header.Filename)

		io.WriteString(w, `{"secure_url": "https://assets.test/photo.jpg"}`)
	}))
	t.Cleanup(assets.Close)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/signature", r.URL.Path)
		io.WriteString(w, `{"signature": "sig", "timestamp": 1234, "cloud_name": "demo", "api_key": "key", "folder": "blog"}`)
	}))
	WithUploadHost(assets.URL)(c)

	url := c.UploadImage(context.Background(), "photo.jpg", []byte("jpeg bytes"))
	assert.Equal(t, "https://assets.test/photo.jpg", url)
}

func TestUnreachableAPIYieldsZeroValues(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
	ctx := context.Background()

	assert.Empty(t, c.Posts(ctx))
	assert.Nil(t, c.Post(ctx, "1"))
	_, ok := c.CreatePost(ctx, PostInput{})
	assert.False(t, ok)
	assert.False(t, c.UpdatePost(ctx, "1", PostInput{}))
	assert.False(t, c.DeletePost(ctx, "1"))
	assert.False(t, c.Like(ctx, "1", LikeAdd))
	assert.False(t, c.SaveBlocks(ctx, "1", nil))
	assert.False(t, c.VoteOnBlock(ctx, "1", "b", "o"))
	assert.Empty(t, c.UploadImage(ctx, "x.jpg", nil))
}

func TestAllTagsAndFilterByTag(t *testing.T) {
	posts := []Post{
		{ID: "1", Tags: []string{"go", "web"}},
		{ID: "2", Tags: []string{"go"}},
		{ID: "3"},
	}
	assert.Equal(t, []string{"go", "web"}, AllTags(posts))
	assert.Len(t, FilterByTag(posts, "go"), 2)
	assert.Len(t, FilterByTag(posts, "Web"), 1, "tag match is case-insensitive")
	assert.Len(t, FilterByTag(posts, ""), 3)
}
