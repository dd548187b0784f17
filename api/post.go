package api

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/mindtile/block"
)

// Post is a normalized post as the rest of the application sees it. The wire
// representation is looser (numeric or string ids, tags as a comma string or
// an array, props as a JSON string or an object); normalization happens once,
// here, so nothing downstream has to care.
type Post struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	Blocks    []block.Block
	Likes     int
	Date      string
	CreatedAt string
	Props     map[string]any
}

// PublishedAt parses the post's date. The bool is false when the post carries
// no usable date, in which case the post counts as already published.
func (p Post) PublishedAt() (time.Time, bool) {
	return parseDate(p.Date)
}

// Theme returns the post's theme prop, defaulting to "default".
func (p Post) Theme() string {
	return block.PropString(p.Props, "theme", "default")
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title   string
	Content string
	Theme   string
	Tags    []string
	Date    string
	Props   map[string]any
}

type wirePost struct {
	ID        any         `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Tags      any         `json:"tags"`
	Blocks    []wireBlock `json:"blocks"`
	Likes     int         `json:"likes"`
	Date      string      `json:"date"`
	CreatedAt string      `json:"created_at"`
	Props     any         `json:"props"`
}

type wireBlock struct {
	ID       any    `json:"id"`
	PostID   any    `json:"post_id"`
	Position int    `json:"position"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Props    any    `json:"props"`
}

func (w wirePost) normalize() Post {
	p := Post{
		ID:        idString(w.ID),
		Title:     w.Title,
		Content:   w.Content,
		Tags:      block.DecodeTags(w.Tags),
		Likes:     w.Likes,
		Date:      w.Date,
		CreatedAt: w.CreatedAt,
		Props:     block.DecodeProps(w.Props),
	}
	for _, wb := range w.Blocks {
		p.Blocks = append(p.Blocks, block.Block{
			ID:       idString(wb.ID),
			PostID:   idString(wb.PostID),
			Position: wb.Position,
			Type:     block.Type(wb.Type),
			Content:  wb.Content,
			Props:    block.DecodeProps(wb.Props),
		})
	}
	return p
}

// idString folds the API's string-or-number ids into strings.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// published drops future-dated posts. A post with no parseable date is live.
func published(posts []Post, now time.Time) []Post {
	// nil means the fetch failed; keep that distinct from an empty listing.
	if posts == nil {
		return nil
	}
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if at, ok := p.PublishedAt(); ok && at.After(now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AllTags collects the distinct tags across posts, sorted.
func AllTags(posts []Post) []string {
	seen := map[string]bool{}
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// FilterByTag returns the posts carrying the given tag, or all posts when the
// tag is empty.
func FilterByTag(posts []Post, tag string) []Post {
	if tag == "" {
		return posts
	}
	var out []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
