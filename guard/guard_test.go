package guard

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "guard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkFirstAndRepeat(t *testing.T) {
	s := setupTestStore(t)
	v := s.Visitor("203.0.113.7", "Mozilla/5.0")
	key := VoteKey("post-1", "block-1")

	assert.True(t, s.Mark(v, key), "first action is recorded")
	assert.False(t, s.Mark(v, key), "repeat is rejected")
	assert.True(t, s.Seen(v, key))
}

func TestUnmarkAllowsActionAgain(t *testing.T) {
	s := setupTestStore(t)
	v := s.Visitor("203.0.113.7", "Mozilla/5.0")
	key := LikeKey("post-1")

	require.True(t, s.Mark(v, key))
	assert.True(t, s.Unmark(v, key))
	assert.False(t, s.Seen(v, key))
	assert.True(t, s.Mark(v, key), "unliked post can be liked again")

	assert.False(t, s.Unmark(v, "never-recorded"))
}

func TestVisitorsAreIndependent(t *testing.T) {
	s := setupTestStore(t)
	key := LikeKey("post-1")

	a := s.Visitor("203.0.113.7", "Mozilla/5.0")
	b := s.Visitor("203.0.113.8", "Mozilla/5.0")
	require.NotEqual(t, a, b)

	assert.True(t, s.Mark(a, key))
	assert.True(t, s.Mark(b, key), "other visitors are not affected")
}

func TestVisitorIsStableAndAnonymous(t *testing.T) {
	s := setupTestStore(t)

	v1 := s.Visitor("203.0.113.7", "Mozilla/5.0")
	v2 := s.Visitor("203.0.113.7", "Mozilla/5.0")
	assert.Equal(t, v1, v2)
	assert.Len(t, v1, 16)
	assert.NotContains(t, v1, "203.0.113.7")
}

func TestSaltSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guard.db")

	s1, err := NewStore(path)
	require.NoError(t, err)
	v1 := s1.Visitor("203.0.113.7", "Mozilla/5.0")
	require.True(t, s1.Mark(v1, LikeKey("p")))
	require.NoError(t, s1.Close())

	s2, err := NewStore(path)
	require.NoError(t, err)
	defer s2.Close()

	v2 := s2.Visitor("203.0.113.7", "Mozilla/5.0")
	assert.Equal(t, v1, v2, "salt persists across restarts")
	assert.False(t, s2.Mark(v2, LikeKey("p")), "recorded actions persist")
}

func TestKeyShapes(t *testing.T) {
	assert.Equal(t, "storage:7:likes", LikeKey("7"))
	assert.Equal(t, "voting:7:b1", VoteKey("7", "b1"))
}
