package store

// ContentType classifies what a clip holds. The capture path only ever
// produces text, link and image; file and color exist for manual entry.
type ContentType string

const (
	TypeText  ContentType = "text"
	TypeImage ContentType = "image"
	TypeLink  ContentType = "link"
	TypeFile  ContentType = "file"
	TypeColor ContentType = "color"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeLink, TypeFile, TypeColor:
		return true
	}
	return false
}

// Clip is one persisted clipboard capture. Timestamps are RFC 3339 UTC
// strings. Data is omitted from list queries and only populated by Get.
type Clip struct {
	ID           int64       `json:"id"`
	ContentType  ContentType `json:"content_type"`
	Data         string      `json:"data,omitempty"`
	PreviewText  string      `json:"preview_text"`
	Title        string      `json:"title"`
	SourceApp    string      `json:"source_app_name"`
	FolderID     *int64      `json:"folder_id"`
	CreatedAt    string      `json:"created_at"`
	LastPastedAt *string     `json:"last_pasted_at"`
	LastEditedAt *string     `json:"last_edited_at"`
	TimesPasted  int         `json:"times_pasted"`
	IsPinned     bool        `json:"is_pinned"`
	Metadata     string      `json:"metadata"`
}

// NewClip is the insert payload for a capture. Metadata arrives already
// serialized; preview and title are truncated to 255 runes on insert.
type NewClip struct {
	ContentType ContentType
	Data        string
	PreviewText string
	Title       string
	SourceApp   string
	FolderID    *int64
	CreatedAt   string
	Metadata    string
}

// Folder groups clips. Clips without a folder form the inbox.
type Folder struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Tag is a user label attachable to any number of clips.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Snippet is a reusable piece of text managed by the user, independent of
// the capture path.
type Snippet struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FolderID  *int64 `json:"folder_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SnippetFolder groups snippets.
type SnippetFolder struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// StackEntry records one paste of a clip, newest first in listings.
type StackEntry struct {
	ID          int64       `json:"id"`
	ClipID      int64       `json:"clip_id"`
	PastedAt    string      `json:"pasted_at"`
	ContentType ContentType `json:"content_type"`
	PreviewText string      `json:"preview_text"`
}

// FolderFilter selects which clips List and Search consider.
// All wins over ID; ID > 0 selects one folder; otherwise the inbox
// (clips with no folder).
type FolderFilter struct {
	All bool
	ID  int64
}
