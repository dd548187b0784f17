package block

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
)

// View renderers produce the read-only markup for the public post page.
// Empty-content suppression happens in renderTo before these run, so each
// renderer can assume its primary content is present.

func viewTitle(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<h1 class="block-title">`)
	buf.WriteString(html.EscapeString(el.Content))
	buf.WriteString(`</h1>`)
}

func viewSubtitle(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<h2 class="block-subtitle">`)
	buf.WriteString(html.EscapeString(el.Content))
	buf.WriteString(`</h2>`)
}

func viewText(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<div class="block-text">`)
	writeParagraphs(buf, el.Content)
	buf.WriteString(`</div>`)
}

func viewSeparator(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<hr class="block-separator"/>`)
}

func viewSpacer(buf *bytes.Buffer, el Element) {
	height := PropInt(el.Props, "height", 24)
	if height < 0 {
		height = 0
	}
	fmt.Fprintf(buf, `<div class="block-spacer" style="height:%dpx" aria-hidden="true"></div>`, height)
}

func viewImage(buf *bytes.Buffer, el Element) {
	src := safeURL(el.Content)
	if src == "" {
		return
	}
	width := PropString(el.Props, "width", "full")
	if width != "half" {
		width = "full"
	}
	alt := html.EscapeString(PropString(el.Props, "alt", ""))
	buf.WriteString(`<figure class="block-image block-image-` + width + `">`)
	buf.WriteString(`<img src="` + src + `" alt="` + alt + `" loading="lazy" decoding="async"/>`)
	buf.WriteString(`</figure>`)
}

func viewCode(buf *bytes.Buffer, el Element) {
	lang := html.EscapeString(PropString(el.Props, "language", "javascript"))
	buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
	buf.WriteString(`<pre class="code-block"><code class="language-` + lang + `">`)
	buf.WriteString(html.EscapeString(el.Content))
	buf.WriteString(`</code></pre></div>`)
}

func viewCallout(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<aside class="block-callout"><span class="callout-icon" data-lucide="lightbulb"></span><p>`)
	buf.WriteString(html.EscapeString(el.Content))
	buf.WriteString(`</p></aside>`)
}

func viewEmbed(buf *bytes.Buffer, el Element) {
	src := safeURL(el.Content)
	if src == "" {
		return
	}
	buf.WriteString(`<div class="block-embed"><iframe src="` + src + `" loading="lazy" allowfullscreen referrerpolicy="no-referrer"></iframe></div>`)
}

func viewBlockquote(buf *bytes.Buffer, el Element) {
	color := safeColor(PropString(el.Props, "borderColor", ""), "#6366f1")
	buf.WriteString(`<blockquote class="block-quote" style="border-left-color:` + color + `"><p>`)
	buf.WriteString(html.EscapeString(el.Content))
	buf.WriteString(`</p>`)
	if author := PropString(el.Props, "author", ""); author != "" {
		buf.WriteString(`<cite>` + html.EscapeString(author) + `</cite>`)
	}
	buf.WriteString(`</blockquote>`)
}

func viewButton(buf *bytes.Buffer, el Element) {
	href := safeURL(PropString(el.Props, "url", ""))
	if href == "" {
		return
	}
	align := PropString(el.Props, "align", "start")
	switch align {
	case "center", "end":
	default:
		align = "start"
	}
	variant := PropString(el.Props, "variant", "default")
	buf.WriteString(`<div class="block-button align-` + align + `">`)
	buf.WriteString(`<a class="btn btn-` + html.EscapeString(variant) + `" href="` + href + `"`)
	if color := safeColor(PropString(el.Props, "color", ""), ""); color != "" {
		buf.WriteString(` style="background-color:` + color + `"`)
	}
	buf.WriteString(`>` + html.EscapeString(el.Content) + `</a></div>`)
}

func viewAccordion(buf *bytes.Buffer, el Element) {
	color := safeColor(PropString(el.Props, "color", ""), "#fafafa")
	buf.WriteString(`<div class="block-accordion" style="--accent:` + color + `">`)
	for _, item := range AccordionItems(el.Props) {
		buf.WriteString(`<details><summary>` + html.EscapeString(item.Title) + `</summary><div class="accordion-body">`)
		writeParagraphs(buf, item.Content)
		buf.WriteString(`</div></details>`)
	}
	buf.WriteString(`</div>`)
}

func viewChecklist(buf *bytes.Buffer, el Element) {
	color := safeColor(PropString(el.Props, "color", ""), "#6366f1")
	buf.WriteString(`<ul class="block-checklist" style="--accent:` + color + `">`)
	for _, item := range ChecklistItems(el.Props) {
		buf.WriteString(`<li class="checklist-item`)
		if item.Checked {
			buf.WriteString(` checked`)
		}
		buf.WriteString(`"><input type="checkbox" disabled`)
		if item.Checked {
			buf.WriteString(` checked`)
		}
		buf.WriteString(`/><span>` + html.EscapeString(item.Text) + `</span></li>`)
	}
	buf.WriteString(`</ul>`)
}

func viewTimeline(buf *bytes.Buffer, el Element) {
	color := safeColor(PropString(el.Props, "color", ""), "#6366f1")
	buf.WriteString(`<ol class="block-timeline" style="--accent:` + color + `">`)
	for _, ev := range TimelineEvents(el.Props) {
		buf.WriteString(`<li class="timeline-event"><time>` + html.EscapeString(ev.Date) + `</time>`)
		buf.WriteString(`<h4>` + html.EscapeString(ev.Title) + `</h4>`)
		if ev.Description != "" {
			buf.WriteString(`<p>` + formatInline(ev.Description) + `</p>`)
		}
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ol>`)
}

func viewTabs(buf *bytes.Buffer, el Element) {
	color := safeColor(PropString(el.Props, "color", ""), "#6366f1")
	buf.WriteString(`<div class="block-tabs" style="--accent:` + color + `">`)
	for i, tab := range TabItems(el.Props) {
		buf.WriteString(`<details class="tab-pane"`)
		if i == 0 {
			buf.WriteString(` open`)
		}
		buf.WriteString(`><summary>` + html.EscapeString(tab.Label) + `</summary><div class="tab-body">`)
		writeParagraphs(buf, tab.Content)
		buf.WriteString(`</div></details>`)
	}
	buf.WriteString(`</div>`)
}

func viewPoll(buf *bytes.Buffer, el Element) {
	correct := PropString(el.Props, "correctOptionId", "")
	buf.WriteString(`<div class="block-poll" data-correct="` + html.EscapeString(correct) + `">`)
	buf.WriteString(`<h3 class="poll-question">` + html.EscapeString(el.Content) + `</h3><div class="poll-options">`)
	for _, opt := range Options(el.Props) {
		buf.WriteString(`<button type="button" class="poll-option" data-option="` + html.EscapeString(opt.ID) + `">`)
		buf.WriteString(html.EscapeString(opt.Text))
		buf.WriteString(`</button>`)
	}
	buf.WriteString(`</div>`)
	if expl := PropString(el.Props, "explanation", ""); expl != "" {
		buf.WriteString(`<div class="poll-explanation" hidden><p>` + html.EscapeString(expl) + `</p></div>`)
	}
	buf.WriteString(`</div>`)
}

func viewVoting(buf *bytes.Buffer, el Element) {
	votes := Votes(el.Props)
	total := 0
	for _, n := range votes {
		total += n
	}
	buf.WriteString(`<div class="block-voting" data-block="` + html.EscapeString(el.ID) + `">`)
	buf.WriteString(`<h3 class="voting-question">` + html.EscapeString(el.Content) + `</h3>`)
	for _, opt := range Options(el.Props) {
		count := votes[opt.ID]
		pct := 0
		if total > 0 {
			pct = int(float64(count)/float64(total)*100 + 0.5)
		}
		buf.WriteString(`<form method="post" action="vote/" class="voting-option">`)
		buf.WriteString(`<input type="hidden" name="block" value="` + html.EscapeString(el.ID) + `"/>`)
		buf.WriteString(`<input type="hidden" name="option" value="` + html.EscapeString(opt.ID) + `"/>`)
		buf.WriteString(`<div class="voting-label"><span>` + html.EscapeString(opt.Text) + `</span><span>` + strconv.Itoa(pct) + `%</span></div>`)
		buf.WriteString(`<button type="submit" class="voting-bar"><span class="voting-fill" style="width:` + strconv.Itoa(pct) + `%"></span></button>`)
		buf.WriteString(`</form>`)
	}
	fmt.Fprintf(buf, `<p class="voting-total">%d votes</p>`, total)
	buf.WriteString(`</div>`)
}
