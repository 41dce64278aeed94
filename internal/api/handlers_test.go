package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipstash/internal/store"
)

type fixture struct {
	router *gin.Engine
	clips  *store.ClipRepository
	tags   *store.TagRepository
	stack  *store.StackRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "clipstash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clips := store.NewClipRepository(db)
	folders := store.NewFolderRepository(db)
	tags := store.NewTagRepository(db)
	snippets := store.NewSnippetRepository(db)
	stack := store.NewStackRepository(db)

	h := NewHandler(clips, folders, tags, snippets, stack)
	return &fixture{router: NewServer(h), clips: clips, tags: tags, stack: stack}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) seedClip(t *testing.T, seq int, text string) *store.Clip {
	t.Helper()
	c, err := f.clips.Insert(store.NewClip{
		ContentType: store.TypeText,
		Data:        text,
		PreviewText: text,
		Title:       text,
		SourceApp:   "test",
		CreatedAt:   fmt.Sprintf("2026-08-31T12:00:%02dZ", seq),
		Metadata:    "{}",
	})
	require.NoError(t, err)
	return c
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 0, body["clips"])
}

func TestListClips(t *testing.T) {
	f := newFixture(t)
	f.seedClip(t, 1, "older")
	f.seedClip(t, 2, "newer")

	rec := f.get(t, "/api/clips?folder=all")
	require.Equal(t, http.StatusOK, rec.Code)

	var clips []store.Clip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clips))
	require.Len(t, clips, 2)
	require.Equal(t, "newer", clips[0].PreviewText)
	require.Empty(t, clips[0].Data)
}

func TestListClips_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/api/clips")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListClips_InvalidFolder(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/api/clips?folder=bogus")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchClips(t *testing.T) {
	f := newFixture(t)
	f.seedClip(t, 1, "standup notes")
	f.seedClip(t, 2, "unrelated")

	rec := f.get(t, "/api/clips/search?q=standup&folder=all")
	require.Equal(t, http.StatusOK, rec.Code)

	var clips []store.Clip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clips))
	require.Len(t, clips, 1)
	require.Equal(t, "standup notes", clips[0].PreviewText)
}

func TestGetClip(t *testing.T) {
	f := newFixture(t)
	c := f.seedClip(t, 1, "full payload")

	rec := f.get(t, fmt.Sprintf("/api/clips/%d", c.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got store.Clip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, "full payload", got.Data)
}

func TestGetClip_NotFound(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusNotFound, f.get(t, "/api/clips/999").Code)
}

func TestGetClip_BadID(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusBadRequest, f.get(t, "/api/clips/abc").Code)
}

func TestClipTags(t *testing.T) {
	f := newFixture(t)
	c := f.seedClip(t, 1, "tagged")
	_, err := f.tags.TagClip(c.ID, "work")
	require.NoError(t, err)

	rec := f.get(t, fmt.Sprintf("/api/clips/%d/tags", c.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var tags []store.Tag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tags))
	require.Len(t, tags, 1)
	require.Equal(t, "work", tags[0].Name)
}

func TestListStack(t *testing.T) {
	f := newFixture(t)
	c := f.seedClip(t, 1, "pasted")
	require.NoError(t, f.stack.Push(c.ID))

	rec := f.get(t, "/api/stack")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []store.StackEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, c.ID, entries[0].ClipID)
}

func TestEmptyCollectionsAreArrays(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/folders", "/api/tags", "/api/snippets", "/api/snippet-folders", "/api/stack"} {
		rec := f.get(t, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.JSONEq(t, "[]", rec.Body.String(), path)
	}
}
