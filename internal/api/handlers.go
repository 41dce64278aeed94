package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.klb.dev/clipstash/internal/message"
	"go.klb.dev/clipstash/internal/store"
)

// Handler serves the read-only query endpoints.
type Handler struct {
	clips    *store.ClipRepository
	folders  *store.FolderRepository
	tags     *store.TagRepository
	snippets *store.SnippetRepository
	stack    *store.StackRepository
}

// NewHandler creates a handler over the given repositories.
func NewHandler(clips *store.ClipRepository, folders *store.FolderRepository,
	tags *store.TagRepository, snippets *store.SnippetRepository,
	stack *store.StackRepository) *Handler {
	return &Handler{
		clips:    clips,
		folders:  folders,
		tags:     tags,
		snippets: snippets,
		stack:    stack,
	}
}

func (h *Handler) Health(c *gin.Context) {
	count, err := h.clips.Count()
	if err != nil {
		slog.Error("health check query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"clips":     count,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListClips returns clips in a folder scope (?folder=all|inbox|<id>,
// default inbox), newest first, without data payloads.
func (h *Handler) ListClips(c *gin.Context) {
	filter, err := message.FolderFilterOf(c.Query("folder"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clips, err := h.clips.List(filter)
	if err != nil {
		h.fail(c, "list_clips", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(clips))
}

// SearchClips returns clips matching ?q= on title or preview, scoped by
// ?folder= like ListClips.
func (h *Handler) SearchClips(c *gin.Context) {
	filter, err := message.FolderFilterOf(c.Query("folder"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clips, err := h.clips.Search(c.Query("q"), filter)
	if err != nil {
		h.fail(c, "search_clips", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(clips))
}

// GetClip returns one clip including its data payload.
func (h *Handler) GetClip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clip id"})
		return
	}
	clip, err := h.clips.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "clip not found"})
		return
	}
	if err != nil {
		h.fail(c, "get_clip", err)
		return
	}
	c.JSON(http.StatusOK, clip)
}

// ClipTags returns the tags attached to one clip.
func (h *Handler) ClipTags(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clip id"})
		return
	}
	tags, err := h.tags.ForClip(id)
	if err != nil {
		h.fail(c, "clip_tags", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(tags))
}

func (h *Handler) ListFolders(c *gin.Context) {
	folders, err := h.folders.List()
	if err != nil {
		h.fail(c, "list_folders", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(folders))
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.List()
	if err != nil {
		h.fail(c, "list_tags", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(tags))
}

func (h *Handler) ListSnippets(c *gin.Context) {
	snippets, err := h.snippets.List()
	if err != nil {
		h.fail(c, "list_snippets", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(snippets))
}

func (h *Handler) ListSnippetFolders(c *gin.Context) {
	folders, err := h.snippets.ListFolders()
	if err != nil {
		h.fail(c, "list_snippet_folders", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(folders))
}

// ListStack returns recent paste-stack entries (?limit=, default 50).
func (h *Handler) ListStack(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.stack.List(limit)
	if err != nil {
		h.fail(c, "list_stack", err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(entries))
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	slog.Error("database error", "operation", op, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// orEmpty keeps empty result sets as [] instead of null in JSON.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
