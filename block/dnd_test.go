package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(elements ...Element) *Controller {
	c := NewController(NewDocument(elements...))
	n := 0
	c.newID = func(t Type) string {
		n++
		return string(t) + "_new"
	}
	return c
}

func TestDragStartRecordsActiveID(t *testing.T) {
	c := newTestController()
	c.DragStart("text")
	assert.Equal(t, "text", c.ActiveID())
	c.DragCancel()
	assert.Empty(t, c.ActiveID())
}

func TestDragEndAlwaysClearsActiveID(t *testing.T) {
	c := newTestController(Element{ID: "a", Type: Text})
	for _, target := range []string{"", TrashTarget, CanvasTarget, "a", "nope"} {
		c.DragStart("a")
		c.DragEnd("a", target)
		assert.Empty(t, c.ActiveID(), "target %q", target)
	}
}

func TestPaletteDropOnCanvasAppends(t *testing.T) {
	c := newTestController(Element{ID: "a", Type: Text})
	c.DragEnd(string(Code), CanvasTarget)

	els := c.Document().Elements()
	require.Len(t, els, 2)
	assert.Equal(t, Code, els[1].Type)
	assert.Equal(t, "code_new", els[1].ID)
	assert.NotNil(t, els[1].Props)
	assert.Empty(t, els[1].Content)
}

func TestPaletteDropOnMemberInsertsAfterIt(t *testing.T) {
	// [A(text), B(image)] + palette "code" dropped on B -> [A, B, NewCode].
	c := newTestController(
		Element{ID: "A", Type: Text},
		Element{ID: "B", Type: Image},
	)
	c.DragEnd(string(Code), "B")

	els := c.Document().Elements()
	require.Len(t, els, 3)
	assert.Equal(t, "A", els[0].ID)
	assert.Equal(t, "B", els[1].ID)
	assert.Equal(t, Code, els[2].Type)
}

func TestPaletteDropOnTrashIsNoop(t *testing.T) {
	c := newTestController(Element{ID: "a", Type: Text})
	c.DragEnd(string(Image), TrashTarget)
	assert.Equal(t, 1, c.Document().Len())
}

func TestMemberDropOnTrashRemovesExactlyThatElement(t *testing.T) {
	c := newTestController(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
		Element{ID: "c", Type: Code},
	)
	c.DragEnd("b", TrashTarget)
	assert.Equal(t, []string{"a", "c"}, ids(c.Document()))
}

func TestMemberDropOnMemberMoves(t *testing.T) {
	c := newTestController(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
		Element{ID: "c", Type: Code},
	)
	c.DragEnd("c", "a")
	assert.Equal(t, []string{"c", "a", "b"}, ids(c.Document()))
}

func TestMemberDropOnItselfIsNoop(t *testing.T) {
	c := newTestController(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
	)
	c.DragEnd("a", "a")
	assert.Equal(t, []string{"a", "b"}, ids(c.Document()))
}

func TestMemberDropOnCanvasSentinelIsNoop(t *testing.T) {
	c := newTestController(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
	)
	c.DragEnd("a", CanvasTarget)
	assert.Equal(t, []string{"a", "b"}, ids(c.Document()))
}

func TestDropWithoutTargetIsCancel(t *testing.T) {
	c := newTestController(Element{ID: "a", Type: Text})
	c.DragStart("a")
	c.DragEnd("a", "")
	assert.Equal(t, 1, c.Document().Len())
	assert.Empty(t, c.ActiveID())
}

func TestPaletteDropOnItsOwnTagIsNoop(t *testing.T) {
	c := newTestController()
	c.DragEnd(string(Text), string(Text))
	assert.Equal(t, 0, c.Document().Len())
}
