package block

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Mode selects which render strategy a variant uses.
type Mode int

const (
	// ModeEdit renders the builder form for a block.
	ModeEdit Mode = iota
	// ModeView renders the read-only public markup. View mode never emits
	// editing controls, whatever context it is rendered in.
	ModeView
)

// Render projects an element to HTML for the given mode. An element whose
// type is not in the registry renders as nothing in both modes. The same
// dispatch serves the builder and the public post page, which is what
// guarantees a block edited in one renders identically in the other.
func Render(el Element, mode Mode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderTo(&buf, el, mode)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderHTML is Render without the component wrapper, for callers that
// assemble larger pages in a single buffer.
func RenderHTML(buf *bytes.Buffer, el Element, mode Mode) {
	renderTo(buf, el, mode)
}

func renderTo(buf *bytes.Buffer, el Element, mode Mode) {
	def, ok := registry[el.Type]
	if !ok {
		return
	}
	if mode == ModeView {
		if suppressed(el) {
			return
		}
		def.view(buf, el)
		return
	}
	def.edit(buf, el)
}

// suppressed reports whether a view-mode render should emit nothing.
// An author can leave half-filled placeholder blocks on the canvas without
// them polluting the public page: content-bearing variants disappear while
// their primary content is empty. Structural variants always render.
func suppressed(el Element) bool {
	switch el.Type {
	case Separator, Spacer, Callout:
		return false
	case Poll, Voting:
		return el.Content == "" || len(Options(el.Props)) < 2
	case Accordion:
		return len(AccordionItems(el.Props)) == 0
	case Checklist:
		return len(ChecklistItems(el.Props)) == 0
	case Timeline:
		return len(TimelineEvents(el.Props)) == 0
	case Tabs:
		return len(TabItems(el.Props)) == 0
	default:
		return el.Content == ""
	}
}
