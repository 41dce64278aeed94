package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "clipstash.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipstash.db")

	db, err := Open(path)
	require.NoError(t, err)
	clips := NewClipRepository(db)
	saved, err := clips.Insert(NewClip{ContentType: TypeText, Data: "persisted", PreviewText: "persisted", Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewClipRepository(db).Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, "persisted", got.Data)
}

func TestContentTypeValid(t *testing.T) {
	for _, ct := range []ContentType{TypeText, TypeImage, TypeLink, TypeFile, TypeColor} {
		require.True(t, ct.Valid(), "type %q", ct)
	}
	require.False(t, ContentType("video").Valid())
	require.False(t, ContentType("").Valid())
}

func TestTruncate_RuneAware(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "abcde", truncate("abcdefg", 5))
	require.Equal(t, strings.Repeat("é", 3), truncate(strings.Repeat("é", 10), 3))
}

func TestNow_RFC3339UTC(t *testing.T) {
	ts := now()
	require.True(t, strings.HasSuffix(ts, "Z"), "timestamp %q not UTC", ts)
	require.Len(t, ts, len("2006-01-02T15:04:05Z"))
}
