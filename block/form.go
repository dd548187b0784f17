package block

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ApplyForm converts the posted form values of a builder control into a
// partial Update for el. Only the owning variant's fields are honored, so a
// forged field name can never write into another variant's props. The switch
// is deliberately spelled out over every variant: adding a Type without
// extending it fails the registry coverage test.
func ApplyForm(el Element, form url.Values) Update {
	var upd Update
	if form.Has("content") {
		content := form.Get("content")
		upd.Content = &content
	}

	props := map[string]any{}

	switch el.Type {
	case Title, Subtitle, Text, Callout, Embed, Separator:
		// Content only.

	case Spacer:
		if form.Has("prop.height") {
			if n, err := strconv.Atoi(form.Get("prop.height")); err == nil {
				props["height"] = n
			}
		}

	case Image:
		setString(props, form, "alt")
		if form.Has("prop.width") {
			w := form.Get("prop.width")
			if w != "half" {
				w = "full"
			}
			props["width"] = w
		}

	case Code:
		setString(props, form, "language")

	case Blockquote:
		setString(props, form, "author")
		setColor(props, form, "borderColor")

	case Button:
		setString(props, form, "url")
		setString(props, form, "variant")
		setString(props, form, "align")
		setColor(props, form, "color")

	case Accordion:
		if form.Has("prop.items") {
			prev := AccordionItems(el.Props)
			var items []any
			for i, line := range propLines(form.Get("prop.items")) {
				title, content := splitPipe2(line)
				items = append(items, map[string]any{
					"id":      lineID(idOf(prev, i, func(it AccordionItem) string { return it.ID })),
					"title":   title,
					"content": content,
				})
			}
			props["items"] = items
		}
		setColor(props, form, "color")

	case Checklist:
		if form.Has("prop.items") {
			prev := ChecklistItems(el.Props)
			var items []any
			for i, line := range propLines(form.Get("prop.items")) {
				checked := false
				text := line
				switch {
				case strings.HasPrefix(line, "[x] "), strings.HasPrefix(line, "[X] "):
					checked = true
					text = line[4:]
				case strings.HasPrefix(line, "[ ] "):
					text = line[4:]
				}
				items = append(items, map[string]any{
					"id":      lineID(idOf(prev, i, func(it ChecklistItem) string { return it.ID })),
					"text":    strings.TrimSpace(text),
					"checked": checked,
				})
			}
			props["items"] = items
		}
		setColor(props, form, "color")

	case Timeline:
		if form.Has("prop.events") {
			prev := TimelineEvents(el.Props)
			var events []any
			for i, line := range propLines(form.Get("prop.events")) {
				date, title, desc := splitPipe3(line)
				events = append(events, map[string]any{
					"id":          lineID(idOf(prev, i, func(ev TimelineEvent) string { return ev.ID })),
					"date":        date,
					"title":       title,
					"description": desc,
				})
			}
			props["events"] = events
		}
		setColor(props, form, "color")

	case Tabs:
		if form.Has("prop.tabs") {
			prev := TabItems(el.Props)
			var tabs []any
			for i, line := range propLines(form.Get("prop.tabs")) {
				label, content := splitPipe2(line)
				tabs = append(tabs, map[string]any{
					"id":      lineID(idOf(prev, i, func(t TabItem) string { return t.ID })),
					"label":   label,
					"content": content,
				})
			}
			props["tabs"] = tabs
		}
		setColor(props, form, "color")

	case Poll:
		ids := applyOptions(el, form, props)
		setString(props, form, "explanation")
		if form.Has("prop.correctOptionId") {
			correct := form.Get("prop.correctOptionId")
			if correct != "" && ids != nil && !ids[correct] {
				correct = ""
			}
			props["correctOptionId"] = correct
		}

	case Voting:
		if ids := applyOptions(el, form, props); ids != nil {
			// Tallies of removed options go with them.
			pruned := map[string]any{}
			for id, n := range Votes(el.Props) {
				if ids[id] {
					pruned[id] = n
				}
			}
			props["votes"] = pruned
		}
	}

	if len(props) > 0 {
		upd.Props = props
	}
	return upd
}

// applyOptions rebuilds the options list from a one-per-line textarea,
// reusing existing option ids by position so recorded votes and the correct
// answer survive text edits. Returns the surviving id set, or nil when the
// form did not post options.
func applyOptions(el Element, form url.Values, props map[string]any) map[string]bool {
	if !form.Has("prop.options") {
		return nil
	}
	prev := Options(el.Props)
	ids := map[string]bool{}
	var options []any
	for i, line := range propLines(form.Get("prop.options")) {
		id := lineID(idOf(prev, i, func(o Option) string { return o.ID }))
		ids[id] = true
		options = append(options, map[string]any{"id": id, "text": line})
	}
	props["options"] = options
	return ids
}

func setString(props map[string]any, form url.Values, key string) {
	if form.Has("prop." + key) {
		props[key] = form.Get("prop." + key)
	}
}

func setColor(props map[string]any, form url.Values, key string) {
	if form.Has("prop." + key) {
		props[key] = safeColor(form.Get("prop."+key), "#6366f1")
	}
}

func propLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(strings.TrimRight(line, "\r")); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitPipe2(line string) (string, string) {
	parts := strings.SplitN(line, "|", 2)
	first := strings.TrimSpace(parts[0])
	second := ""
	if len(parts) > 1 {
		second = strings.TrimSpace(parts[1])
	}
	return first, second
}

func splitPipe3(line string) (string, string, string) {
	parts := strings.SplitN(line, "|", 3)
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return get(0), get(1), get(2)
}

func idOf[T any](prev []T, i int, id func(T) string) string {
	if i < len(prev) {
		return id(prev[i])
	}
	return ""
}

func lineID(existing string) string {
	if existing != "" {
		return existing
	}
	return uuid.NewString()[:8]
}
