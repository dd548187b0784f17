package block

import "bytes"

type renderFunc func(buf *bytes.Buffer, el Element)

// Definition describes one palette entry: a display label, an icon name for
// the palette chip, and the pair of render strategies for the two modes.
// Every variant in Types has exactly one definition here; dispatching on a
// tag with no definition renders nothing, so posts containing block types
// from a newer schema degrade gracefully instead of erroring.
type Definition struct {
	Type  Type
	Label string
	Icon  string

	edit renderFunc
	view renderFunc
}

var registry = map[Type]Definition{
	Title:      {Type: Title, Label: "Title", Icon: "heading-1", edit: editTitle, view: viewTitle},
	Subtitle:   {Type: Subtitle, Label: "Subtitle", Icon: "heading-2", edit: editSubtitle, view: viewSubtitle},
	Text:       {Type: Text, Label: "Text", Icon: "type", edit: editText, view: viewText},
	Accordion:  {Type: Accordion, Label: "Accordion", Icon: "list-collapse", edit: editAccordion, view: viewAccordion},
	Checklist:  {Type: Checklist, Label: "Checklist", Icon: "check-square", edit: editChecklist, view: viewChecklist},
	Timeline:   {Type: Timeline, Label: "Timeline", Icon: "calendar-days", edit: editTimeline, view: viewTimeline},
	Tabs:       {Type: Tabs, Label: "Tabs", Icon: "layout-template", edit: editTabs, view: viewTabs},
	Blockquote: {Type: Blockquote, Label: "Quote", Icon: "quote", edit: editBlockquote, view: viewBlockquote},
	Button:     {Type: Button, Label: "Button", Icon: "mouse-pointer-click", edit: editButton, view: viewButton},
	Image:      {Type: Image, Label: "Image", Icon: "image", edit: editImage, view: viewImage},
	Poll:       {Type: Poll, Label: "Poll", Icon: "list-checks", edit: editPoll, view: viewPoll},
	Voting:     {Type: Voting, Label: "Voting", Icon: "percent", edit: editVoting, view: viewVoting},
	Code:       {Type: Code, Label: "Code", Icon: "code", edit: editCode, view: viewCode},
	Callout:    {Type: Callout, Label: "Callout", Icon: "lightbulb", edit: editCallout, view: viewCallout},
	Embed:      {Type: Embed, Label: "Embed", Icon: "globe", edit: editEmbed, view: viewEmbed},
	Separator:  {Type: Separator, Label: "Divider", Icon: "square-split-vertical", edit: editSeparator, view: viewSeparator},
	Spacer:     {Type: Spacer, Label: "Spacer", Icon: "move-vertical", edit: editSpacer, view: viewSpacer},
}

// Lookup returns the definition registered for t.
func Lookup(t Type) (Definition, bool) {
	def, ok := registry[t]
	return def, ok
}

// All returns the palette in display order.
func All() []Definition {
	out := make([]Definition, 0, len(Types))
	for _, t := range Types {
		out = append(out, registry[t])
	}
	return out
}
