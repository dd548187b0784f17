package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// NotFound is the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Not found | "+cfg.Name)
		buf.WriteString(`<section class="error-page"><h1>404</h1>`)
		buf.WriteString(`<p>This page does not exist.</p>`)
		buf.WriteString(`<a href="/">Back to the blog</a></section>`)
		writeLayoutClose(buf, cfg)
	})
}

// ServerError is the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Something went wrong | "+cfg.Name)
		buf.WriteString(`<section class="error-page"><h1>500</h1>`)
		buf.WriteString(`<p>Something went wrong. Try again in a moment.</p>`)
		buf.WriteString(`<a href="/">Back to the blog</a></section>`)
		writeLayoutClose(buf, cfg)
	})
}
