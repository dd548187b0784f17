package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/eringen/mindtile/api"
)

// Home is the full listing page.
func Home(cfg SiteConfig, posts []api.Post, activeTag string, tags []string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, cfg.Name)
		writeHome(buf, cfg, posts, activeTag, tags)
		writeLayoutClose(buf, cfg)
	})
}

// HomePartial is the listing without the page shell, for HTMX swaps.
func HomePartial(cfg SiteConfig, posts []api.Post, activeTag string, tags []string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeHome(buf, cfg, posts, activeTag, tags)
	})
}

// BlogSection is just the filterable post list, for tag-pill swaps.
func BlogSection(posts []api.Post, activeTag string, tags []string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeBlogSection(buf, posts, activeTag, tags)
	})
}

func writeHome(buf *bytes.Buffer, cfg SiteConfig, posts []api.Post, activeTag string, tags []string) {
	buf.WriteString(`<section class="hero"><h1>` + esc(cfg.Name) + `</h1>`)
	if cfg.Description != "" {
		buf.WriteString(`<p>` + esc(cfg.Description) + `</p>`)
	}
	buf.WriteString(`</section>`)
	writeBlogSection(buf, posts, activeTag, tags)
}

func writeBlogSection(buf *bytes.Buffer, posts []api.Post, activeTag string, tags []string) {
	buf.WriteString(`<section id="blog-section">`)

	if len(tags) > 0 {
		buf.WriteString(`<div class="tag-filter">`)
		writeTagPill(buf, "All", "/", activeTag == "")
		for _, tag := range tags {
			writeTagPill(buf, tag, "/?tag="+PathEscape(tag), tag == activeTag)
		}
		buf.WriteString(`</div>`)
	}

	if len(posts) == 0 {
		buf.WriteString(`<p class="empty-state">No posts yet.</p>`)
	}
	for _, p := range posts {
		writePostCard(buf, p)
	}
	buf.WriteString(`</section>`)
}

func writeTagPill(buf *bytes.Buffer, label, href string, active bool) {
	buf.WriteString(`<a class="` + tagClass(active) + `" href="` + esc(href) + `"`)
	buf.WriteString(` hx-get="` + esc(href+partialSeparator(href)+"partial=blog") + `"`)
	buf.WriteString(` hx-target="#blog-section" hx-swap="outerHTML" hx-push-url="` + esc(href) + `">`)
	buf.WriteString(esc(label))
	buf.WriteString(`</a>`)
}

func partialSeparator(href string) string {
	for _, r := range href {
		if r == '?' {
			return "&"
		}
	}
	return "?"
}

func writePostCard(buf *bytes.Buffer, p api.Post) {
	href := "/blog/" + PathEscape(p.ID) + "/"
	buf.WriteString(`<article class="post-card">`)
	buf.WriteString(`<a href="` + esc(href) + `"><h2>` + esc(p.Title) + `</h2></a>`)
	buf.WriteString(`<div class="post-meta">`)
	if p.Date != "" {
		buf.WriteString(`<time datetime="` + esc(p.Date) + `">` + esc(formatDate(p)) + `</time>`)
	}
	if p.Likes > 0 {
		buf.WriteString(`<span class="like-count">&hearts; ` + itoa(p.Likes) + `</span>`)
	}
	buf.WriteString(`</div>`)
	if p.Content != "" {
		buf.WriteString(`<p class="post-summary">` + esc(p.Content) + `</p>`)
	}
	if len(p.Tags) > 0 {
		buf.WriteString(`<div class="post-tags">`)
		for _, tag := range p.Tags {
			buf.WriteString(`<span class="tag">` + esc(tag) + `</span>`)
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</article>`)
}
