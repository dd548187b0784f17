package block

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Edit renderers produce the builder's form controls for a block. They only
// emit named inputs; the enclosing form (posting the change back to the
// editor session) is supplied by the page wrapping each canvas element.
// Content posts as "content", scalar props as "prop.<key>", and list props
// as one-entry-per-line textareas that ApplyForm parses back.

func writeField(buf *bytes.Buffer, label, inner string) {
	buf.WriteString(`<label class="field"><span class="field-label">` + label + `</span>`)
	buf.WriteString(inner)
	buf.WriteString(`</label>`)
}

func textInput(name, value, placeholder string) string {
	return `<input type="text" name="` + name + `" value="` + html.EscapeString(value) + `" placeholder="` + html.EscapeString(placeholder) + `"/>`
}

func textArea(name, value, placeholder string, rows int) string {
	return `<textarea name="` + name + `" rows="` + strconv.Itoa(rows) + `" placeholder="` + html.EscapeString(placeholder) + `">` +
		html.EscapeString(value) + `</textarea>`
}

func selectInput(name, value string, options []string) string {
	var b strings.Builder
	b.WriteString(`<select name="` + name + `">`)
	for _, opt := range options {
		b.WriteString(`<option value="` + opt + `"`)
		if opt == value {
			b.WriteString(` selected`)
		}
		b.WriteString(`>` + opt + `</option>`)
	}
	b.WriteString(`</select>`)
	return b.String()
}

func editTitle(buf *bytes.Buffer, el Element) {
	writeField(buf, "Title", textInput("content", el.Content, "Post title..."))
}

func editSubtitle(buf *bytes.Buffer, el Element) {
	writeField(buf, "Subtitle", textInput("content", el.Content, "Section subtitle..."))
}

func editText(buf *bytes.Buffer, el Element) {
	writeField(buf, "Text", textArea("content", el.Content, "Write something...", 4))
}

func editSeparator(buf *bytes.Buffer, el Element) {
	buf.WriteString(`<hr class="block-separator"/>`)
}

func editSpacer(buf *bytes.Buffer, el Element) {
	height := PropInt(el.Props, "height", 24)
	inner := fmt.Sprintf(`<input type="range" name="prop.height" min="8" max="160" step="8" value="%d"/>`, height)
	writeField(buf, "Spacer height", inner)
}

func editImage(buf *bytes.Buffer, el Element) {
	writeField(buf, "Image URL", textInput("content", el.Content, "https://..."))
	writeField(buf, "Alt text", textInput("prop.alt", PropString(el.Props, "alt", ""), "Describe the image"))
	writeField(buf, "Width", selectInput("prop.width", PropString(el.Props, "width", "full"), []string{"full", "half"}))
	if src := safeURL(el.Content); src != "" {
		buf.WriteString(`<img class="edit-preview" src="` + src + `" alt=""/>`)
	}
}

func editCode(buf *bytes.Buffer, el Element) {
	writeField(buf, "Language", textInput("prop.language", PropString(el.Props, "language", "javascript"), "javascript"))
	writeField(buf, "Code", textArea("content", el.Content, "// paste code here", 8))
}

func editCallout(buf *bytes.Buffer, el Element) {
	writeField(buf, "Callout", textArea("content", el.Content, "An idea, tip, or note...", 2))
}

func editEmbed(buf *bytes.Buffer, el Element) {
	writeField(buf, "Embed URL", textInput("content", el.Content, "https://..."))
}

func editBlockquote(buf *bytes.Buffer, el Element) {
	writeField(buf, "Quote", textArea("content", el.Content, "Quote text...", 3))
	writeField(buf, "Author", textInput("prop.author", PropString(el.Props, "author", ""), "Who said it"))
	writeField(buf, "Border color", colorInput("prop.borderColor", PropString(el.Props, "borderColor", "#6366f1")))
}

func editButton(buf *bytes.Buffer, el Element) {
	writeField(buf, "Label", textInput("content", el.Content, "Click me"))
	writeField(buf, "URL", textInput("prop.url", PropString(el.Props, "url", ""), "https://..."))
	writeField(buf, "Variant", selectInput("prop.variant", PropString(el.Props, "variant", "default"), []string{"default", "outline", "ghost"}))
	writeField(buf, "Align", selectInput("prop.align", PropString(el.Props, "align", "start"), []string{"start", "center", "end"}))
	writeField(buf, "Color", colorInput("prop.color", PropString(el.Props, "color", "#6366f1")))
}

func editAccordion(buf *bytes.Buffer, el Element) {
	lines := make([]string, 0)
	for _, item := range AccordionItems(el.Props) {
		lines = append(lines, item.Title+" | "+item.Content)
	}
	writeField(buf, "Sections (one per line: Title | Content)",
		textArea("prop.items", strings.Join(lines, "\n"), "Getting started | First steps...", 4))
	writeField(buf, "Accent color", colorInput("prop.color", PropString(el.Props, "color", "#fafafa")))
}

func editChecklist(buf *bytes.Buffer, el Element) {
	lines := make([]string, 0)
	for _, item := range ChecklistItems(el.Props) {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		lines = append(lines, mark+" "+item.Text)
	}
	writeField(buf, "Items (one per line, [x] marks done)",
		textArea("prop.items", strings.Join(lines, "\n"), "[ ] First task", 4))
	writeField(buf, "Accent color", colorInput("prop.color", PropString(el.Props, "color", "#6366f1")))
}

func editTimeline(buf *bytes.Buffer, el Element) {
	lines := make([]string, 0)
	for _, ev := range TimelineEvents(el.Props) {
		lines = append(lines, ev.Date+" | "+ev.Title+" | "+ev.Description)
	}
	writeField(buf, "Events (one per line: Date | Title | Description)",
		textArea("prop.events", strings.Join(lines, "\n"), "2024 | Launched | The first release", 4))
	writeField(buf, "Accent color", colorInput("prop.color", PropString(el.Props, "color", "#6366f1")))
}

func editTabs(buf *bytes.Buffer, el Element) {
	lines := make([]string, 0)
	for _, tab := range TabItems(el.Props) {
		lines = append(lines, tab.Label+" | "+tab.Content)
	}
	writeField(buf, "Tabs (one per line: Label | Content)",
		textArea("prop.tabs", strings.Join(lines, "\n"), "Overview | What this is about", 4))
	writeField(buf, "Accent color", colorInput("prop.color", PropString(el.Props, "color", "#6366f1")))
}

func editPoll(buf *bytes.Buffer, el Element) {
	writeField(buf, "Question", textInput("content", el.Content, "What is your question?"))
	opts := Options(el.Props)
	lines := make([]string, 0, len(opts))
	for _, opt := range opts {
		lines = append(lines, opt.Text)
	}
	writeField(buf, "Options (one per line, minimum two)",
		textArea("prop.options", strings.Join(lines, "\n"), "Option 1\nOption 2", 4))
	correct := PropString(el.Props, "correctOptionId", "")
	var b strings.Builder
	b.WriteString(`<select name="prop.correctOptionId"><option value="">none</option>`)
	for _, opt := range opts {
		b.WriteString(`<option value="` + html.EscapeString(opt.ID) + `"`)
		if opt.ID == correct {
			b.WriteString(` selected`)
		}
		b.WriteString(`>` + html.EscapeString(opt.Text) + `</option>`)
	}
	b.WriteString(`</select>`)
	writeField(buf, "Correct answer", b.String())
	writeField(buf, "Explanation (optional)", textInput("prop.explanation", PropString(el.Props, "explanation", ""), "Why the answer is right..."))
}

func editVoting(buf *bytes.Buffer, el Element) {
	writeField(buf, "Voting question", textInput("content", el.Content, "What should people vote on?"))
	opts := Options(el.Props)
	lines := make([]string, 0, len(opts))
	for _, opt := range opts {
		lines = append(lines, opt.Text)
	}
	writeField(buf, "Options (one per line, minimum two)",
		textArea("prop.options", strings.Join(lines, "\n"), "Yes\nNo", 4))
	votes := Votes(el.Props)
	total := 0
	for _, n := range votes {
		total += n
	}
	fmt.Fprintf(buf, `<p class="edit-hint">%d votes recorded so far. Percentages are computed from responses.</p>`, total)
}

func colorInput(name, value string) string {
	return `<input type="color" name="` + name + `" value="` + safeColor(value, "#6366f1") + `"/>`
}
