// Package api exposes a read-only local HTTP surface over the store, so UI
// layers notified of a data change can re-query without linking against the
// daemon. Mutations go through the IPC channel instead.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP engine with all routes configured.
func NewServer(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/clips", h.ListClips)
		api.GET("/clips/search", h.SearchClips)
		api.GET("/clips/:id", h.GetClip)
		api.GET("/clips/:id/tags", h.ClipTags)
		api.GET("/folders", h.ListFolders)
		api.GET("/tags", h.ListTags)
		api.GET("/snippets", h.ListSnippets)
		api.GET("/snippet-folders", h.ListSnippetFolders)
		api.GET("/stack", h.ListStack)
	}

	return r
}

// requestLogger logs each request at DEBUG via slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
