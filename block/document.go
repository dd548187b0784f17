package block

import "sort"

// Target sentinels understood by the document and the drag controller.
const (
	// CanvasTarget is the append zone at the end of the canvas.
	CanvasTarget = "canvas"
	// TrashTarget is the delete zone.
	TrashTarget = "trash"
)

// Document is the ordered, uniquely keyed collection of elements being
// authored. All mutations happen synchronously on the owning editor session;
// the document itself carries no locking.
type Document struct {
	elements []Element
}

// NewDocument creates a document from the given elements, in order.
func NewDocument(elements ...Element) *Document {
	d := &Document{elements: make([]Element, len(elements))}
	copy(d.elements, elements)
	return d
}

// FromBlocks materializes a document from persisted blocks. Blocks are
// ordered by Position ascending with a stable sort, so storage order never
// leaks into display order. Blocks without an id get a synthesized one.
func FromBlocks(blocks []Block) *Document {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	elements := make([]Element, 0, len(sorted))
	for _, b := range sorted {
		id := b.ID
		if id == "" {
			id = NewID(b.Type)
		}
		props := b.Props
		if props == nil {
			props = map[string]any{}
		}
		elements = append(elements, Element{
			ID:      id,
			Type:    b.Type,
			Content: b.Content,
			Props:   props,
		})
	}
	return &Document{elements: elements}
}

// Elements returns a copy of the current element order.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Len returns the number of elements on the canvas.
func (d *Document) Len() int {
	return len(d.elements)
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (Element, bool) {
	if i := d.index(id); i >= 0 {
		return d.elements[i], true
	}
	return Element{}, false
}

// Update describes a partial element update. A nil Content leaves the
// content untouched; Props entries are shallow-merged key by key onto the
// element's existing props.
type Update struct {
	Content *string
	Props   map[string]any
}

// Update applies a partial update to the element with the given id.
// Unknown ids are a no-op.
func (d *Document) Update(id string, upd Update) {
	i := d.index(id)
	if i < 0 {
		return
	}
	el := d.elements[i]
	if upd.Content != nil {
		el.Content = *upd.Content
	}
	if len(upd.Props) > 0 {
		merged := make(map[string]any, len(el.Props)+len(upd.Props))
		for k, v := range el.Props {
			merged[k] = v
		}
		for k, v := range upd.Props {
			merged[k] = v
		}
		el.Props = merged
	}
	d.elements[i] = el
}

// InsertAfter splices el immediately after the element with the target id.
// The CanvasTarget sentinel, or a target id that no longer exists, appends
// instead; a new element is never dropped.
func (d *Document) InsertAfter(target string, el Element) {
	if el.Props == nil {
		el.Props = map[string]any{}
	}
	if target != CanvasTarget {
		if i := d.index(target); i >= 0 {
			d.elements = append(d.elements, Element{})
			copy(d.elements[i+2:], d.elements[i+1:])
			d.elements[i+1] = el
			return
		}
	}
	d.elements = append(d.elements, el)
}

// Remove deletes the element with the given id. Palette tags are not canvas
// members, so an id that names a variant is never removed.
func (d *Document) Remove(id string) {
	if _, isPalette := ParseType(id); isPalette {
		return
	}
	i := d.index(id)
	if i < 0 {
		return
	}
	d.elements = append(d.elements[:i], d.elements[i+1:]...)
}

// Move relocates the element fromID to the position currently held by toID,
// preserving the relative order of everything else. Missing ids and
// fromID == toID are no-ops; the id set is never changed by a move.
func (d *Document) Move(fromID, toID string) {
	if fromID == toID {
		return
	}
	from := d.index(fromID)
	to := d.index(toID)
	if from < 0 || to < 0 {
		return
	}
	el := d.elements[from]
	d.elements = append(d.elements[:from], d.elements[from+1:]...)
	d.elements = append(d.elements[:to], append([]Element{el}, d.elements[to:]...)...)
}

// Blocks flattens the document to its persisted form. Positions are always
// recomputed densely from the current order (1-based), discarding whatever
// numbering the blocks carried before; a save is a full-document overwrite.
func (d *Document) Blocks(postID string) []Block {
	blocks := make([]Block, 0, len(d.elements))
	for i, el := range d.elements {
		props := el.Props
		if props == nil {
			props = map[string]any{}
		}
		blocks = append(blocks, Block{
			ID:       el.ID,
			PostID:   postID,
			Position: i + 1,
			Type:     el.Type,
			Content:  el.Content,
			Props:    props,
		})
	}
	return blocks
}

func (d *Document) index(id string) int {
	for i, el := range d.elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
