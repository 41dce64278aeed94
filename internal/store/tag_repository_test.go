package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagClip_CreatesAndAttaches(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	tags := NewTagRepository(db)

	c := insertClip(t, clips, 1, "tagged")

	urgent, err := tags.TagClip(c.ID, "urgent")
	require.NoError(t, err)
	require.Positive(t, urgent.ID)
	require.Equal(t, "urgent", urgent.Name)

	// Same tag again reuses the row and the link.
	again, err := tags.TagClip(c.ID, "urgent")
	require.NoError(t, err)
	require.Equal(t, urgent.ID, again.ID)

	attached, err := tags.ForClip(c.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
}

func TestTagList_OrderedByName(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	tags := NewTagRepository(db)

	c := insertClip(t, clips, 1, "x")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := tags.TagClip(c.ID, name)
		require.NoError(t, err)
	}

	all, err := tags.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alpha", all[0].Name)
	require.Equal(t, "mid", all[1].Name)
	require.Equal(t, "zeta", all[2].Name)
}

func TestUntagClip_KeepsTagRow(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	tags := NewTagRepository(db)

	c := insertClip(t, clips, 1, "x")
	tag, err := tags.TagClip(c.ID, "keep")
	require.NoError(t, err)

	require.NoError(t, tags.UntagClip(c.ID, tag.ID))

	attached, err := tags.ForClip(c.ID)
	require.NoError(t, err)
	require.Empty(t, attached)

	all, err := tags.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestClipDelete_CascadesTagLinks(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	tags := NewTagRepository(db)

	c := insertClip(t, clips, 1, "x")
	_, err := tags.TagClip(c.ID, "orphaned-link")
	require.NoError(t, err)

	require.NoError(t, clips.Delete(c.ID))

	var links int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM clip_tags`).Scan(&links))
	require.Zero(t, links)
}
