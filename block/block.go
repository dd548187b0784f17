// Package block implements the block-based content model behind mindtile:
// the closed set of block variants, the ordered canvas document they compose
// into, the drag-and-drop controller that mutates it, and the dual-mode
// (edit/view) renderer that projects it to HTML.
package block

import (
	"strings"

	"github.com/google/uuid"
)

// Type identifies one block variant.
type Type string

const (
	Title      Type = "title"
	Subtitle   Type = "subtitle"
	Text       Type = "text"
	Separator  Type = "separator"
	Image      Type = "image"
	Code       Type = "code"
	Callout    Type = "callout"
	Embed      Type = "embed"
	Poll       Type = "poll"
	Voting     Type = "voting"
	Blockquote Type = "blockquote"
	Button     Type = "button"
	Accordion  Type = "accordion"
	Checklist  Type = "checklist"
	Timeline   Type = "timeline"
	Tabs       Type = "tabs"
	Spacer     Type = "spacer"
)

// Types lists every variant in palette order.
var Types = []Type{
	Title, Subtitle, Text, Accordion, Checklist, Timeline, Tabs,
	Blockquote, Button, Image, Poll, Voting, Code, Callout, Embed,
	Separator, Spacer,
}

// ParseType returns the variant for s, or false if s is not a known tag.
func ParseType(s string) (Type, bool) {
	t := Type(strings.TrimSpace(s))
	_, ok := registry[t]
	return t, ok
}

// Element is one live block on the canvas. The ID is generated client-side,
// stays stable for the editing session, and is the drag/sort identity.
type Element struct {
	ID      string
	Type    Type
	Content string
	Props   map[string]any
}

// Block is the persisted form of an element. Position is the sole source of
// display order once saved; consumers must re-sort by it before rendering.
type Block struct {
	ID        string         `json:"id,omitempty"`
	PostID    string         `json:"post_id,omitempty"`
	Position  int            `json:"position"`
	Type      Type           `json:"type"`
	Content   string         `json:"content"`
	Props     map[string]any `json:"props"`
	CreatedAt string         `json:"created_at,omitempty"`
}

// NewID builds a fresh element id in the type_suffix form the builder uses.
func NewID(t Type) string {
	return string(t) + "_" + uuid.NewString()[:8]
}
