package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/mindtile/api"
)

// component wraps a buffer-writing function as a templ.Component.
func component(fn func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// formatDate renders a post's date for readers, falling back to the raw
// string when it does not parse.
func formatDate(p api.Post) string {
	if at, ok := p.PublishedAt(); ok {
		return at.Format("Jan 2, 2006")
	}
	return p.Date
}

// tagClass returns CSS classes for a tag pill, with active variant.
func tagClass(active bool) string {
	base := "tag-pill"
	if active {
		base += " tag-pill-active"
	}
	return base
}
