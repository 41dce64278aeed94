// Package message defines the clipstash IPC protocol between the CLI
// sub-commands and the running daemon.
//
// All messages are newline-delimited JSON: one request line in, one
// response line out. Image payloads travel as base64 data URIs, matching
// their stored form, so binary content is safe to embed in JSON strings.
package message

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.klb.dev/clipstash/internal/store"
)

// Op identifies the requested operation.
type Op string

const (
	OpListClips          Op = "LIST_CLIPS"
	OpSearchClips        Op = "SEARCH_CLIPS"
	OpGetClip            Op = "GET_CLIP"
	OpAddClip            Op = "ADD_CLIP"
	OpDeleteClip         Op = "DELETE_CLIP"
	OpMoveClip           Op = "MOVE_CLIP"
	OpRetitleClip        Op = "RETITLE_CLIP"
	OpTogglePin          Op = "TOGGLE_PIN"
	OpPasteClip          Op = "PASTE_CLIP"
	OpListFolders        Op = "LIST_FOLDERS"
	OpAddFolder          Op = "ADD_FOLDER"
	OpListTags           Op = "LIST_TAGS"
	OpClipTags           Op = "CLIP_TAGS"
	OpTagClip            Op = "TAG_CLIP"
	OpUntagClip          Op = "UNTAG_CLIP"
	OpListSnippets       Op = "LIST_SNIPPETS"
	OpAddSnippet         Op = "ADD_SNIPPET"
	OpDeleteSnippet      Op = "DELETE_SNIPPET"
	OpListSnippetFolders Op = "LIST_SNIPPET_FOLDERS"
	OpAddSnippetFolder   Op = "ADD_SNIPPET_FOLDER"
	OpListStack          Op = "LIST_STACK"
	OpClearStack         Op = "CLEAR_STACK"
	OpStatus             Op = "STATUS"
)

// Folder scope values accepted in Request.Folder; anything else is a
// decimal folder id.
const (
	ScopeAll   = "all"
	ScopeInbox = "inbox"
)

// Request is the client-to-daemon envelope. Fields are op-specific; unused
// fields stay zero.
type Request struct {
	Op Op `json:"op"`

	ID    int64 `json:"id,omitempty"`     // clip / snippet target
	TagID int64 `json:"tag_id,omitempty"` // UNTAG_CLIP

	Name   string `json:"name,omitempty"`   // folder / tag name
	Term   string `json:"term,omitempty"`   // SEARCH_CLIPS
	Folder string `json:"folder,omitempty"` // "all" | "inbox" | "<id>"
	Title  string `json:"title,omitempty"`  // RETITLE_CLIP, ADD_CLIP, ADD_SNIPPET
	Body   string `json:"body,omitempty"`   // ADD_SNIPPET

	// ADD_CLIP: content type ("text", "link", "image") and raw payload
	// (text, URL, or base64 PNG data URI).
	ContentType string `json:"content_type,omitempty"`
	Data        string `json:"data,omitempty"`

	Limit int `json:"limit,omitempty"` // LIST_STACK
}

// Status is the daemon-state payload of a STATUS response.
type Status struct {
	Version    string `json:"version"`
	Monitoring bool   `json:"monitoring"`
	IntervalMS int    `json:"interval_ms"`
	ClipCount  int    `json:"clip_count"`
	StartedAt  string `json:"started_at"`
	Backend    string `json:"backend"`
}

// Response is the daemon-to-client envelope. OK false carries Error; the
// remaining fields are populated per op.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Clip           *store.Clip           `json:"clip,omitempty"`
	Clips          []store.Clip          `json:"clips,omitempty"`
	Folders        []store.Folder        `json:"folders,omitempty"`
	Tags           []store.Tag           `json:"tags,omitempty"`
	Snippets       []store.Snippet       `json:"snippets,omitempty"`
	SnippetFolders []store.SnippetFolder `json:"snippet_folders,omitempty"`
	Stack          []store.StackEntry    `json:"stack,omitempty"`
	Pinned         *bool                 `json:"pinned,omitempty"`
	Status         *Status               `json:"status,omitempty"`
}

// Encode serialises the request to JSON without a trailing newline.
func (r *Request) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest deserialises a request from raw JSON bytes.
func DecodeRequest(b []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("request decode: %w", err)
	}
	return &r, nil
}

// Encode serialises the response to JSON without a trailing newline.
func (r *Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeResponse deserialises a response from raw JSON bytes.
func DecodeResponse(b []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("response decode: %w", err)
	}
	return &r, nil
}

// Errorf builds a failed response.
func Errorf(format string, args ...any) *Response {
	return &Response{Error: fmt.Sprintf(format, args...)}
}

// FolderFilterOf maps a Request.Folder value to a store filter:
// "all" selects everything, "" and "inbox" the inbox, and a decimal id one
// folder.
func FolderFilterOf(s string) (store.FolderFilter, error) {
	switch s {
	case ScopeAll:
		return store.FolderFilter{All: true}, nil
	case "", ScopeInbox:
		return store.FolderFilter{}, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return store.FolderFilter{}, fmt.Errorf("invalid folder %q", s)
	}
	return store.FolderFilter{ID: id}, nil
}

// FolderIDOf maps a Request.Folder value to a move target: nil for the
// inbox ("", "inbox", "none"), otherwise a folder id.
func FolderIDOf(s string) (*int64, error) {
	switch s {
	case "", ScopeInbox, "none":
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid folder %q", s)
	}
	return &id, nil
}
