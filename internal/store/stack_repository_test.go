package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushListClear(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	stack := NewStackRepository(db)

	a := insertClip(t, clips, 1, "first")
	b := insertClip(t, clips, 2, "second")

	require.NoError(t, stack.Push(a.ID))
	require.NoError(t, stack.Push(b.ID))
	require.NoError(t, stack.Push(a.ID))

	entries, err := stack.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first, joined with the clip's type and preview.
	require.Equal(t, a.ID, entries[0].ClipID)
	require.Equal(t, b.ID, entries[1].ClipID)
	require.Equal(t, a.ID, entries[2].ClipID)
	require.Equal(t, TypeText, entries[0].ContentType)
	require.Equal(t, "first", entries[0].PreviewText)

	require.NoError(t, stack.Clear())
	entries, err = stack.List(0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStackList_Limit(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	stack := NewStackRepository(db)

	c := insertClip(t, clips, 1, "repeat")
	for range 5 {
		require.NoError(t, stack.Push(c.ID))
	}

	entries, err := stack.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestStackPush_UnknownClip(t *testing.T) {
	db := openTestDB(t)
	stack := NewStackRepository(db)

	require.Error(t, stack.Push(999))
}

func TestClipDelete_CascadesStackEntries(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	stack := NewStackRepository(db)

	c := insertClip(t, clips, 1, "gone")
	require.NoError(t, stack.Push(c.ID))
	require.NoError(t, clips.Delete(c.ID))

	entries, err := stack.List(0)
	require.NoError(t, err)
	require.Empty(t, entries)
}
