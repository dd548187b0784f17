package block

// Controller turns end-of-gesture drop events into document mutations.
// It is an explicit state machine owned by an editing session: the browser
// only reports which id was picked up and which target it was released over,
// and every transition here is synchronous over the document.
//
// Drop targets fall into four classes: a palette tag (creates), an existing
// canvas member (inserts after / moves), the CanvasTarget append zone, and
// the TrashTarget delete zone. Whether the source is a palette tag and
// whether the target is the trash fully determine the behavior.
type Controller struct {
	doc      *Document
	activeID string
	newID    func(Type) string
}

// NewController creates a controller over the given document.
func NewController(doc *Document) *Controller {
	return &Controller{doc: doc, newID: NewID}
}

// Document returns the document this controller mutates.
func (c *Controller) Document() *Document {
	return c.doc
}

// DragStart records the dragged id. It drives the floating preview: a
// palette icon and label for palette tags, a live render for canvas members.
func (c *Controller) DragStart(id string) {
	c.activeID = id
}

// ActiveID returns the id currently being dragged, or "" when idle.
func (c *Controller) ActiveID() string {
	return c.activeID
}

// DragCancel clears the transient drag state without mutating the document.
func (c *Controller) DragCancel() {
	c.activeID = ""
}

// DragEnd dispatches a completed gesture. Releasing outside any recognized
// target (empty target), over the source's own id, or in any combination not
// listed below leaves the document untouched. There is no partial-commit
// state: the drag is resolved in full here and activeID is always cleared.
func (c *Controller) DragEnd(source, target string) {
	defer func() { c.activeID = "" }()

	if source == "" || target == "" {
		return
	}

	paletteType, fromPalette := ParseType(source)

	if target == TrashTarget {
		// Palette tags are templates, not members; nothing to delete.
		if !fromPalette {
			c.doc.Remove(source)
		}
		return
	}

	if fromPalette {
		if target == source {
			return
		}
		c.doc.InsertAfter(target, Element{
			ID:    c.newID(paletteType),
			Type:  paletteType,
			Props: map[string]any{},
		})
		return
	}

	// Canvas member dropped on another member: relocate. Dropping a member
	// on the append zone or on itself is a no-op.
	if target != CanvasTarget && target != source {
		c.doc.Move(source, target)
	}
}
