package block

import (
	"encoding/json"
	"sort"
	"strings"
)

// DecodeProps normalizes a props value crossing the API boundary. The remote
// API sometimes stores props as a JSON object and sometimes as a JSON-encoded
// string; callers get a map either way. Malformed JSON degrades to an empty
// map rather than an error, so a bad row can never take a page down.
func DecodeProps(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return map[string]any{}
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil || m == nil {
			return map[string]any{}
		}
		return m
	case json.RawMessage:
		return decodeRawProps(v)
	case []byte:
		return decodeRawProps(v)
	default:
		return map[string]any{}
	}
}

func decodeRawProps(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil && m != nil {
		return m
	}
	// A JSON string holding an encoded object, e.g. `"{\"votes\":{}}"`.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return DecodeProps(s)
	}
	return map[string]any{}
}

// DecodeTags normalizes a tags value that may arrive as a comma-joined
// string or an array. The result is trimmed, empty entries dropped, and
// sorted alphabetically so every consumer sees the same order.
func DecodeTags(raw any) []string {
	var tags []string
	switch v := raw.(type) {
	case string:
		tags = splitTags(v)
	case []string:
		tags = append(tags, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			tags = splitTags(s)
			break
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			tags = list
		}
	}
	out := tags[:0]
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Option is one entry of a poll or voting block.
type Option struct {
	ID   string
	Text string
}

// Options reads the "options" prop. Shapes that do not look like an option
// list are ignored entry by entry.
func Options(props map[string]any) []Option {
	items, ok := props["options"].([]any)
	if !ok {
		return nil
	}
	var out []Option
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Option{
			ID:   asString(m["id"]),
			Text: asString(m["text"]),
		})
	}
	return out
}

// Votes reads the "votes" prop: a map of option id to tally.
func Votes(props map[string]any) map[string]int {
	raw, ok := props["votes"].(map[string]any)
	if !ok {
		return map[string]int{}
	}
	out := make(map[string]int, len(raw))
	for id, v := range raw {
		out[id] = asInt(v, 0)
	}
	return out
}

// AccordionItem is one collapsible section of an accordion block.
type AccordionItem struct {
	ID      string
	Title   string
	Content string
}

// AccordionItems reads the "items" prop of an accordion block.
func AccordionItems(props map[string]any) []AccordionItem {
	items, ok := props["items"].([]any)
	if !ok {
		return nil
	}
	var out []AccordionItem
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, AccordionItem{
			ID:      asString(m["id"]),
			Title:   asString(m["title"]),
			Content: asString(m["content"]),
		})
	}
	return out
}

// ChecklistItem is one entry of a checklist block.
type ChecklistItem struct {
	ID      string
	Text    string
	Checked bool
}

// ChecklistItems reads the "items" prop of a checklist block.
func ChecklistItems(props map[string]any) []ChecklistItem {
	items, ok := props["items"].([]any)
	if !ok {
		return nil
	}
	var out []ChecklistItem
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		checked, _ := m["checked"].(bool)
		out = append(out, ChecklistItem{
			ID:      asString(m["id"]),
			Text:    asString(m["text"]),
			Checked: checked,
		})
	}
	return out
}

// TimelineEvent is one entry of a timeline block.
type TimelineEvent struct {
	ID          string
	Date        string
	Title       string
	Description string
}

// TimelineEvents reads the "events" prop of a timeline block.
func TimelineEvents(props map[string]any) []TimelineEvent {
	items, ok := props["events"].([]any)
	if !ok {
		return nil
	}
	var out []TimelineEvent
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, TimelineEvent{
			ID:          asString(m["id"]),
			Date:        asString(m["date"]),
			Title:       asString(m["title"]),
			Description: asString(m["description"]),
		})
	}
	return out
}

// TabItem is one pane of a tabs block.
type TabItem struct {
	ID      string
	Label   string
	Content string
}

// TabItems reads the "tabs" prop of a tabs block.
func TabItems(props map[string]any) []TabItem {
	items, ok := props["tabs"].([]any)
	if !ok {
		return nil
	}
	var out []TabItem
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, TabItem{
			ID:      asString(m["id"]),
			Label:   asString(m["label"]),
			Content: asString(m["content"]),
		})
	}
	return out
}

// PropString reads a string prop, falling back to def.
func PropString(props map[string]any, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}

// PropInt reads a numeric prop, falling back to def. JSON numbers decode as
// float64, so both forms are accepted.
func PropInt(props map[string]any, key string, def int) int {
	v, ok := props[key]
	if !ok {
		return def
	}
	return asInt(v, def)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return def
}
