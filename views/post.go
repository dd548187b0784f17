package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/eringen/mindtile/api"
	"github.com/eringen/mindtile/block"
)

// Post is the reader-facing detail page. The post's blocks render in view
// mode; voting blocks post back to the vote endpoint, the like button to
// the like endpoint.
func Post(cfg SiteConfig, post api.Post, liked bool) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, post.Title+" | "+cfg.Name)
		writePost(buf, post, liked)
		writeLayoutClose(buf, cfg)
	})
}

// PostPartial is the article without the page shell, for HTMX swaps.
func PostPartial(cfg SiteConfig, post api.Post, liked bool) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writePost(buf, post, liked)
	})
}

func writePost(buf *bytes.Buffer, post api.Post, liked bool) {
	buf.WriteString(`<article class="post theme-` + esc(post.Theme()) + `">`)
	buf.WriteString(`<header><h1>` + esc(post.Title) + `</h1>`)
	buf.WriteString(`<div class="post-meta">`)
	if post.Date != "" {
		buf.WriteString(`<time datetime="` + esc(post.Date) + `">` + esc(formatDate(post)) + `</time>`)
	}
	for _, tag := range post.Tags {
		buf.WriteString(`<span class="tag">` + esc(tag) + `</span>`)
	}
	buf.WriteString(`</div></header>`)

	buf.WriteString(`<div class="post-body">`)
	for _, el := range block.FromBlocks(post.Blocks).Elements() {
		var body bytes.Buffer
		block.RenderHTML(&body, el, block.ModeView)
		if body.Len() == 0 {
			continue
		}
		buf.WriteString(`<div class="block" id="block-` + esc(el.ID) + `">`)
		buf.Write(body.Bytes())
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</div>`)

	writeLikeButton(buf, post, liked)
	buf.WriteString(`</article>`)
}

func writeLikeButton(buf *bytes.Buffer, post api.Post, liked bool) {
	action := "add"
	label := `&hearts; Like`
	if liked {
		action = "remove"
		label = `&hearts; Liked`
	}
	buf.WriteString(`<form class="like-form" method="post" action="like/">`)
	buf.WriteString(`<input type="hidden" name="action" value="` + action + `"/>`)
	buf.WriteString(`<button type="submit" class="like-button`)
	if liked {
		buf.WriteString(` like-button-active`)
	}
	buf.WriteString(`">` + label)
	if post.Likes > 0 {
		buf.WriteString(` <span class="like-count">` + itoa(post.Likes) + `</span>`)
	}
	buf.WriteString(`</button></form>`)
}
