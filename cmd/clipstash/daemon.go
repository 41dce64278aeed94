package main

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/message"
	"go.klb.dev/clipstash/internal/monitor"
	"go.klb.dev/clipstash/internal/notify"
	"go.klb.dev/clipstash/internal/store"
	"go.klb.dev/clipstash/internal/wire"
)

const manualSource = "clipstash (manual)"

// daemon owns the long-lived serve state and dispatches IPC requests.
type daemon struct {
	startedAt time.Time

	clips    *store.ClipRepository
	folders  *store.FolderRepository
	tags     *store.TagRepository
	snippets *store.SnippetRepository
	stack    *store.StackRepository

	hub     *notify.Hub
	backend clip.Backend
	mon     *monitor.Monitor
}

func (d *daemon) serveIPC(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go d.handleConn(conn)
	}
}

// handleConn serves one request/response exchange per connection.
func (d *daemon) handleConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)

	req, err := wc.ReadRequest()
	if err != nil {
		return
	}

	resp := d.handle(req)
	if err := wc.WriteResponse(resp); err != nil {
		slog.Debug("ipc response write failed", "op", req.Op, "err", err)
	}
}

func (d *daemon) handle(req *message.Request) *message.Response {
	resp, err := d.dispatch(req)
	if err != nil {
		slog.Warn("ipc request failed", "op", req.Op, "err", err)
		return &message.Response{Error: err.Error()}
	}
	resp.OK = true
	return resp
}

func (d *daemon) dispatch(req *message.Request) (*message.Response, error) {
	switch req.Op {
	case message.OpListClips:
		filter, err := message.FolderFilterOf(req.Folder)
		if err != nil {
			return nil, err
		}
		clips, err := d.clips.List(filter)
		if err != nil {
			return nil, err
		}
		return &message.Response{Clips: clips}, nil

	case message.OpSearchClips:
		filter, err := message.FolderFilterOf(req.Folder)
		if err != nil {
			return nil, err
		}
		clips, err := d.clips.Search(req.Term, filter)
		if err != nil {
			return nil, err
		}
		return &message.Response{Clips: clips}, nil

	case message.OpGetClip:
		c, err := d.clips.Get(req.ID)
		if err != nil {
			return nil, err
		}
		return &message.Response{Clip: c}, nil

	case message.OpAddClip:
		return d.addManualClip(req)

	case message.OpDeleteClip:
		if err := d.clips.Delete(req.ID); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpMoveClip:
		folderID, err := message.FolderIDOf(req.Folder)
		if err != nil {
			return nil, err
		}
		if err := d.clips.SetFolder(req.ID, folderID); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpRetitleClip:
		if err := d.clips.SetTitle(req.ID, req.Title); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpTogglePin:
		pinned, err := d.clips.TogglePin(req.ID)
		if err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{Pinned: &pinned}, nil

	case message.OpPasteClip:
		return d.pasteClip(req.ID)

	case message.OpListFolders:
		folders, err := d.folders.List()
		if err != nil {
			return nil, err
		}
		return &message.Response{Folders: folders}, nil

	case message.OpAddFolder:
		f, err := d.folders.Add(req.Name)
		if err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{Folders: []store.Folder{*f}}, nil

	case message.OpListTags:
		tags, err := d.tags.List()
		if err != nil {
			return nil, err
		}
		return &message.Response{Tags: tags}, nil

	case message.OpClipTags:
		tags, err := d.tags.ForClip(req.ID)
		if err != nil {
			return nil, err
		}
		return &message.Response{Tags: tags}, nil

	case message.OpTagClip:
		t, err := d.tags.TagClip(req.ID, req.Name)
		if err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{Tags: []store.Tag{*t}}, nil

	case message.OpUntagClip:
		if err := d.tags.UntagClip(req.ID, req.TagID); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpListSnippets:
		snippets, err := d.snippets.List()
		if err != nil {
			return nil, err
		}
		return &message.Response{Snippets: snippets}, nil

	case message.OpAddSnippet:
		folderID, err := message.FolderIDOf(req.Folder)
		if err != nil {
			return nil, err
		}
		s, err := d.snippets.Add(req.Title, req.Body, folderID)
		if err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{Snippets: []store.Snippet{*s}}, nil

	case message.OpDeleteSnippet:
		if err := d.snippets.Delete(req.ID); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpListSnippetFolders:
		folders, err := d.snippets.ListFolders()
		if err != nil {
			return nil, err
		}
		return &message.Response{SnippetFolders: folders}, nil

	case message.OpAddSnippetFolder:
		f, err := d.snippets.AddFolder(req.Name)
		if err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{SnippetFolders: []store.SnippetFolder{*f}}, nil

	case message.OpListStack:
		entries, err := d.stack.List(req.Limit)
		if err != nil {
			return nil, err
		}
		return &message.Response{Stack: entries}, nil

	case message.OpClearStack:
		if err := d.stack.Clear(); err != nil {
			return nil, err
		}
		d.hub.DataChanged()
		return &message.Response{}, nil

	case message.OpStatus:
		count, err := d.clips.Count()
		if err != nil {
			return nil, err
		}
		return &message.Response{Status: &message.Status{
			Version:    Version,
			Monitoring: d.mon.Running(),
			IntervalMS: int(d.mon.Interval() / time.Millisecond),
			ClipCount:  count,
			StartedAt:  d.startedAt.Format(time.RFC3339),
			Backend:    d.backend.Name(),
		}}, nil
	}

	return nil, errors.New("unknown operation " + string(req.Op))
}

// addManualClip inserts a user-provided clip, applying the same derivation
// rules as the capture path, with an optional title override and folder.
func (d *daemon) addManualClip(req *message.Request) (*message.Response, error) {
	folderID, err := message.FolderIDOf(req.Folder)
	if err != nil {
		return nil, err
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var n store.NewClip
	var meta any
	switch store.ContentType(req.ContentType) {
	case store.TypeText, store.TypeLink:
		if req.Data == "" {
			return nil, errors.New("empty clip data")
		}
		n, meta = monitor.ComposeText(req.Data, manualSource, createdAt)
	case store.TypeImage:
		png, err := decodeImagePayload(req.Data)
		if err != nil {
			return nil, err
		}
		n, meta = monitor.ComposeImage(png, manualSource, createdAt)
	default:
		return nil, errors.New("unsupported content type " + req.ContentType)
	}

	if req.Title != "" {
		n.Title = req.Title
	}
	n.FolderID = folderID

	saved, err := d.clips.Insert(n)
	if err != nil {
		return nil, err
	}
	d.hub.ClipAdded(saved, meta)
	d.hub.DataChanged()
	return &message.Response{Clip: saved}, nil
}

// pasteClip writes a clip back to the system clipboard and records the
// paste in the clip's counters and the paste stack.
func (d *daemon) pasteClip(id int64) (*message.Response, error) {
	c, err := d.clips.Get(id)
	if err != nil {
		return nil, err
	}

	switch c.ContentType {
	case store.TypeText, store.TypeLink:
		if err := d.backend.WriteText(c.Data); err != nil {
			return nil, err
		}
	case store.TypeImage:
		png, err := decodeImagePayload(c.Data)
		if err != nil {
			return nil, err
		}
		if err := d.backend.WriteImage(png); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported clip type for pasting")
	}

	if err := d.clips.MarkPasted(id); err != nil {
		return nil, err
	}
	if err := d.stack.Push(id); err != nil {
		slog.Warn("paste stack entry failed", "clip", id, "err", err)
	}
	d.hub.DataChanged()

	slog.Debug("clip pasted", "id", id, "type", c.ContentType)
	return &message.Response{}, nil
}

// decodeImagePayload accepts the stored data-URI form or bare base64 and
// returns raw PNG bytes.
func decodeImagePayload(data string) ([]byte, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 {
		data = data[i+len(";base64,"):]
	}
	png, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.New("invalid image payload")
	}
	return png, nil
}
