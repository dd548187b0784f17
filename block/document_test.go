package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(d *Document) []string {
	els := d.Elements()
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID
	}
	return out
}

func TestFromBlocksSortsByPosition(t *testing.T) {
	doc := FromBlocks([]Block{
		{ID: "c", Type: Text, Position: 3},
		{ID: "a", Type: Title, Position: 1},
		{ID: "b", Type: Image, Position: 2},
	})
	assert.Equal(t, []string{"a", "b", "c"}, ids(doc))
}

func TestFromBlocksStableOnEqualPositions(t *testing.T) {
	doc := FromBlocks([]Block{
		{ID: "first", Type: Text, Position: 1},
		{ID: "second", Type: Text, Position: 1},
		{ID: "third", Type: Text, Position: 1},
	})
	assert.Equal(t, []string{"first", "second", "third"}, ids(doc))
}

func TestFromBlocksSynthesizesMissingIDs(t *testing.T) {
	doc := FromBlocks([]Block{
		{Type: Text, Position: 1},
		{Type: Image, Position: 2},
	})
	els := doc.Elements()
	require.Len(t, els, 2)
	assert.NotEmpty(t, els[0].ID)
	assert.NotEmpty(t, els[1].ID)
	assert.NotEqual(t, els[0].ID, els[1].ID)
	assert.NotNil(t, els[0].Props)
}

func TestBlocksRecomputesDensePositions(t *testing.T) {
	doc := FromBlocks([]Block{
		{ID: "a", Type: Title, Position: 10},
		{ID: "b", Type: Text, Position: 40},
		{ID: "c", Type: Image, Position: 25},
	})
	blocks := doc.Blocks("post-1")
	require.Len(t, blocks, 3)
	for i, b := range blocks {
		assert.Equal(t, i+1, b.Position)
		assert.Equal(t, "post-1", b.PostID)
		assert.NotNil(t, b.Props)
	}
	assert.Equal(t, "a", blocks[0].ID)
	assert.Equal(t, "c", blocks[1].ID)
	assert.Equal(t, "b", blocks[2].ID)
}

func TestSaveLoadRoundTripPreservesOrder(t *testing.T) {
	doc := NewDocument(
		Element{ID: "x", Type: Title, Content: "hello"},
		Element{ID: "y", Type: Text, Content: "body"},
		Element{ID: "z", Type: Separator},
	)
	saved := doc.Blocks("p")
	reloaded := FromBlocks(saved)
	assert.Equal(t, ids(doc), ids(reloaded))

	// Saving the unchanged document again assigns identical positions.
	assert.Equal(t, saved, reloaded.Blocks("p"))
}

func TestUpdateMergesContentAndProps(t *testing.T) {
	doc := NewDocument(Element{ID: "a", Type: Button, Content: "old", Props: map[string]any{"url": "https://x", "align": "start"}})

	content := "new"
	doc.Update("a", Update{Content: &content, Props: map[string]any{"align": "center"}})

	el, ok := doc.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "new", el.Content)
	assert.Equal(t, "center", el.Props["align"])
	assert.Equal(t, "https://x", el.Props["url"])
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	doc := NewDocument(Element{ID: "a", Type: Text, Content: "keep"})
	content := "changed"
	doc.Update("missing", Update{Content: &content})

	el, _ := doc.ByID("a")
	assert.Equal(t, "keep", el.Content)
	assert.Equal(t, 1, doc.Len())
}

func TestUpdateNilContentLeavesContent(t *testing.T) {
	doc := NewDocument(Element{ID: "a", Type: Text, Content: "keep"})
	doc.Update("a", Update{Props: map[string]any{"k": "v"}})
	el, _ := doc.ByID("a")
	assert.Equal(t, "keep", el.Content)
	assert.Equal(t, "v", el.Props["k"])
}

func TestInsertAfterMember(t *testing.T) {
	doc := NewDocument(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
	)
	doc.InsertAfter("a", Element{ID: "n", Type: Code})
	assert.Equal(t, []string{"a", "n", "b"}, ids(doc))
}

func TestInsertAfterCanvasSentinelAppends(t *testing.T) {
	doc := NewDocument(Element{ID: "a", Type: Text})
	doc.InsertAfter(CanvasTarget, Element{ID: "n", Type: Code})
	assert.Equal(t, []string{"a", "n"}, ids(doc))
}

func TestInsertAfterMissingTargetAppends(t *testing.T) {
	doc := NewDocument(Element{ID: "a", Type: Text})
	doc.InsertAfter("gone", Element{ID: "n", Type: Code})
	assert.Equal(t, []string{"a", "n"}, ids(doc), "a new element is never dropped")
}

func TestRemove(t *testing.T) {
	doc := NewDocument(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
	)
	doc.Remove("a")
	assert.Equal(t, []string{"b"}, ids(doc))

	doc.Remove("missing")
	assert.Equal(t, []string{"b"}, ids(doc))
}

func TestRemoveNeverDeletesPaletteTags(t *testing.T) {
	// An element that happens to carry a palette tag as its id is not a
	// canvas member and must survive a remove call for that tag.
	doc := NewDocument(Element{ID: string(Text), Type: Text})
	doc.Remove(string(Text))
	assert.Equal(t, 1, doc.Len())
}

func TestMovePlacesElementAtTargetIndex(t *testing.T) {
	doc := NewDocument(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
		Element{ID: "c", Type: Code},
		Element{ID: "d", Type: Embed},
	)

	doc.Move("a", "c")
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(doc))

	doc.Move("d", "b")
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(doc))
}

func TestMovePreservesIDSet(t *testing.T) {
	all := []string{"a", "b", "c", "d", "e"}
	for _, from := range all {
		for _, to := range all {
			doc := NewDocument(
				Element{ID: "a", Type: Text},
				Element{ID: "b", Type: Text},
				Element{ID: "c", Type: Text},
				Element{ID: "d", Type: Text},
				Element{ID: "e", Type: Text},
			)
			doc.Move(from, to)

			assert.Equal(t, len(all), doc.Len(), "move %s->%s lost or duplicated elements", from, to)
			seen := map[string]bool{}
			for _, id := range ids(doc) {
				assert.False(t, seen[id], "duplicate id %s after move %s->%s", id, from, to)
				seen[id] = true
			}
		}
	}
}

func TestMoveMissingIDsIsNoop(t *testing.T) {
	doc := NewDocument(
		Element{ID: "a", Type: Text},
		Element{ID: "b", Type: Image},
	)
	doc.Move("ghost", "a")
	assert.Equal(t, []string{"a", "b"}, ids(doc))
	doc.Move("a", "ghost")
	assert.Equal(t, []string{"a", "b"}, ids(doc))
	doc.Move("a", "a")
	assert.Equal(t, []string{"a", "b"}, ids(doc))
}
