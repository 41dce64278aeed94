package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "clipstash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// insertClip stores a text clip with a distinct created_at so listing
// order is deterministic.
func insertClip(t *testing.T, r *ClipRepository, seq int, data string) *Clip {
	t.Helper()
	c, err := r.Insert(NewClip{
		ContentType: TypeText,
		Data:        data,
		PreviewText: data,
		Title:       data,
		SourceApp:   "test",
		CreatedAt:   fmt.Sprintf("2026-08-31T12:00:%02dZ", seq),
		Metadata:    "{}",
	})
	require.NoError(t, err)
	return c
}

func TestClipInsertAndGet(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	saved, err := clips.Insert(NewClip{
		ContentType: TypeLink,
		Data:        "https://example.com",
		PreviewText: "https://example.com",
		Title:       "https://example.com",
		SourceApp:   "Browser",
		CreatedAt:   "2026-08-31T12:00:00Z",
		Metadata:    `{"url":"https://example.com"}`,
	})
	require.NoError(t, err)
	require.Positive(t, saved.ID)

	got, err := clips.Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, TypeLink, got.ContentType)
	require.Equal(t, "https://example.com", got.Data)
	require.Equal(t, "Browser", got.SourceApp)
	require.Equal(t, "2026-08-31T12:00:00Z", got.CreatedAt)
	require.Nil(t, got.FolderID)
	require.Nil(t, got.LastPastedAt)
	require.Zero(t, got.TimesPasted)
	require.False(t, got.IsPinned)
}

func TestClipInsert_DefaultsCreatedAt(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	saved, err := clips.Insert(NewClip{ContentType: TypeText, Data: "x", PreviewText: "x", Title: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.CreatedAt)
	require.True(t, strings.HasSuffix(saved.CreatedAt, "Z"))
}

func TestClipInsert_RejectsUnknownType(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	_, err := clips.Insert(NewClip{ContentType: "video", Data: "x"})
	require.Error(t, err)
}

func TestClipInsert_TruncatesPreviewAndTitle(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	long := strings.Repeat("é", 300)
	saved, err := clips.Insert(NewClip{
		ContentType: TypeText,
		Data:        long,
		PreviewText: long,
		Title:       long,
	})
	require.NoError(t, err)
	require.Len(t, []rune(saved.PreviewText), 255)
	require.Len(t, []rune(saved.Title), 255)
	require.Equal(t, long, saved.Data)

	got, err := clips.Get(saved.ID)
	require.NoError(t, err)
	require.Len(t, []rune(got.Title), 255)
	require.Equal(t, long, got.Data)
}

func TestClipGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	_, err := clips.Get(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClipList_ScopingAndOrder(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	folders := NewFolderRepository(db)

	work, err := folders.Add("work")
	require.NoError(t, err)

	a := insertClip(t, clips, 1, "oldest")
	b := insertClip(t, clips, 2, "middle")
	c := insertClip(t, clips, 3, "newest")
	require.NoError(t, clips.SetFolder(b.ID, &work.ID))

	inbox, err := clips.List(FolderFilter{})
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	require.Equal(t, c.ID, inbox[0].ID)
	require.Equal(t, a.ID, inbox[1].ID)

	scoped, err := clips.List(FolderFilter{ID: work.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, b.ID, scoped[0].ID)

	all, err := clips.List(FolderFilter{All: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, c.ID, all[0].ID)
}

func TestClipList_OmitsData(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	insertClip(t, clips, 1, "payload")

	listed, err := clips.List(FolderFilter{All: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Empty(t, listed[0].Data)
	require.Equal(t, "payload", listed[0].PreviewText)
}

func TestClipSearch(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	insertClip(t, clips, 1, "meeting notes for Monday")
	insertClip(t, clips, 2, "grocery list")
	insertClip(t, clips, 3, "notes on the meeting")

	found, err := clips.Search("meeting", FolderFilter{All: true})
	require.NoError(t, err)
	require.Len(t, found, 2)

	none, err := clips.Search("nonexistent", FolderFilter{All: true})
	require.NoError(t, err)
	require.Empty(t, none)

	// Empty term degrades to a plain list in the same scope.
	all, err := clips.Search("", FolderFilter{All: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestClipSearch_RespectsFolderScope(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	folders := NewFolderRepository(db)

	work, err := folders.Add("work")
	require.NoError(t, err)

	in := insertClip(t, clips, 1, "report draft")
	insertClip(t, clips, 2, "report final")
	require.NoError(t, clips.SetFolder(in.ID, &work.ID))

	found, err := clips.Search("report", FolderFilter{ID: work.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, in.ID, found[0].ID)
}

func TestClipDelete(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	c := insertClip(t, clips, 1, "ephemeral")
	require.NoError(t, clips.Delete(c.ID))

	_, err := clips.Get(c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, clips.Delete(c.ID), ErrNotFound)
}

func TestClipSetFolder_AndBackToInbox(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	folders := NewFolderRepository(db)

	f, err := folders.Add("stash")
	require.NoError(t, err)
	c := insertClip(t, clips, 1, "mobile")

	require.NoError(t, clips.SetFolder(c.ID, &f.ID))
	got, err := clips.Get(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FolderID)
	require.Equal(t, f.ID, *got.FolderID)

	require.NoError(t, clips.SetFolder(c.ID, nil))
	got, err = clips.Get(c.ID)
	require.NoError(t, err)
	require.Nil(t, got.FolderID)
}

func TestClipSetTitle(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	c := insertClip(t, clips, 1, "untitled")
	require.NoError(t, clips.SetTitle(c.ID, "named at last"))

	got, err := clips.Get(c.ID)
	require.NoError(t, err)
	require.Equal(t, "named at last", got.Title)
	require.NotNil(t, got.LastEditedAt)

	require.ErrorIs(t, clips.SetTitle(999, "nope"), ErrNotFound)
}

func TestClipTogglePin(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	c := insertClip(t, clips, 1, "pin me")

	pinned, err := clips.TogglePin(c.ID)
	require.NoError(t, err)
	require.True(t, pinned)

	pinned, err = clips.TogglePin(c.ID)
	require.NoError(t, err)
	require.False(t, pinned)

	_, err = clips.TogglePin(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClipMarkPasted(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	c := insertClip(t, clips, 1, "paste me")
	require.NoError(t, clips.MarkPasted(c.ID))
	require.NoError(t, clips.MarkPasted(c.ID))

	got, err := clips.Get(c.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.TimesPasted)
	require.NotNil(t, got.LastPastedAt)
}

func TestClipCount(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)

	n, err := clips.Count()
	require.NoError(t, err)
	require.Zero(t, n)

	insertClip(t, clips, 1, "one")
	insertClip(t, clips, 2, "two")

	n, err = clips.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestFolderDelete_SetsClipsNull(t *testing.T) {
	db := openTestDB(t)
	clips := NewClipRepository(db)
	folders := NewFolderRepository(db)

	f, err := folders.Add("doomed")
	require.NoError(t, err)
	c := insertClip(t, clips, 1, "survivor")
	require.NoError(t, clips.SetFolder(c.ID, &f.ID))

	_, err = db.Exec(`DELETE FROM folders WHERE id = ?`, f.ID)
	require.NoError(t, err)

	got, err := clips.Get(c.ID)
	require.NoError(t, err)
	require.Nil(t, got.FolderID)
}
