package views

import "bytes"

// writeLayoutOpen emits the shared page shell up to the opening of <main>.
func writeLayoutOpen(buf *bytes.Buffer, cfg SiteConfig, title string) {
	buf.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	buf.WriteString(`<meta charset="utf-8"/>`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>`)
	buf.WriteString(esc(title))
	buf.WriteString(`</title>`)
	if cfg.Description != "" {
		buf.WriteString(`<meta name="description" content="` + esc(cfg.Description) + `"/>`)
	}
	buf.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
	buf.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
	buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(cfg.Name) + `" href="/feed.xml"/>`)
	buf.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js" defer></script>`)
	buf.WriteString(`</head><body>`)
	buf.WriteString(`<header class="site-header"><nav>`)
	buf.WriteString(`<a class="site-name" href="/">` + esc(cfg.Name) + `</a>`)
	buf.WriteString(`<a class="nav-link" href="/feed.xml">RSS</a>`)
	buf.WriteString(`</nav></header><main>`)
}

// writeLayoutClose closes the shell opened by writeLayoutOpen.
func writeLayoutClose(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString(`</main><footer class="site-footer">`)
	if cfg.Author != "" {
		buf.WriteString(`<span>` + esc(cfg.Author) + `</span>`)
	}
	buf.WriteString(`</footer></body></html>`)
}
