// Package monitor implements the clipboard capture core: a polling loop
// that detects clipboard changes against an in-memory snapshot, classifies
// new content (text, link, image), persists one immutable clip row per
// change and notifies in-process listeners.
//
// Text and image tracking are mutually exclusive: a text change clears the
// image snapshot and vice versa, so a single clipboard write is observed as
// one logical event. Text is checked first on every tick and suppresses the
// image check for that tick.
package monitor

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/notify"
	"go.klb.dev/clipstash/internal/sourceapp"
	"go.klb.dev/clipstash/internal/store"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = time.Second

// ClipWriter is the slice of the store the capture path needs.
type ClipWriter interface {
	Insert(n store.NewClip) (*store.Clip, error)
}

// Monitor polls the system clipboard and persists detected changes.
// Stopped until Start is called; Start and Stop are idempotent.
type Monitor struct {
	backend  clip.Backend
	sources  sourceapp.Detector
	clips    ClipWriter
	hub      *notify.Hub
	interval time.Duration

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup

	// Snapshot of the last observed clipboard state. Written by Start
	// before the poll goroutine exists, then owned by that goroutine.
	lastText  string
	lastImage []byte
}

// New creates a stopped Monitor. interval <= 0 selects DefaultInterval.
func New(backend clip.Backend, sources sourceapp.Detector, clips ClipWriter, hub *notify.Hub, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		backend:  backend,
		sources:  sources,
		clips:    clips,
		hub:      hub,
		interval: interval,
	}
}

// Start snapshots the current clipboard contents (so pre-existing content
// is not treated as new) and begins polling. Calling Start while running is
// a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		slog.Debug("clipboard monitor already running")
		return
	}

	m.lastText = m.backend.ReadText()
	m.lastImage = snapshotImage(m.backend.ReadImage())

	m.running = true
	m.done = make(chan struct{})
	m.wg.Add(1)
	go m.run(m.done)

	slog.Info("clipboard monitor started", "backend", m.backend.Name(), "interval", m.interval)
}

// Stop cancels polling. A tick already in progress completes; Stop returns
// once it has. Calling Stop while stopped is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		slog.Debug("clipboard monitor not running")
		return
	}
	close(m.done)
	m.running = false
	m.mu.Unlock()

	m.wg.Wait()
	slog.Info("clipboard monitor stopped")
}

// Running reports whether the monitor is polling.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Interval returns the configured poll interval.
func (m *Monitor) Interval() time.Duration { return m.interval }

func (m *Monitor) run(done <-chan struct{}) {
	defer m.wg.Done()

	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			m.safeScan()
		}
	}
}

// safeScan guards the tick body so one failing tick never stops polling.
func (m *Monitor) safeScan() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("clipboard scan panicked", "panic", r)
		}
	}()
	m.scan()
}

// scan is one tick: detect a change against the snapshot, classify it and
// persist the capture. Text changes win over image changes on the same tick.
func (m *Monitor) scan() {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	text := m.backend.ReadText()
	if text != "" && text != m.lastText {
		m.lastText = text
		m.lastImage = nil

		n, meta := ComposeText(text, m.sources.Current(), createdAt)
		m.persist(n, meta)
		return
	}

	img := m.backend.ReadImage()
	if len(img) > 0 && (len(m.lastImage) == 0 || !bytes.Equal(img, m.lastImage)) {
		m.lastImage = snapshotImage(img)
		m.lastText = ""

		n, meta := ComposeImage(img, m.sources.Current(), createdAt)
		m.persist(n, meta)
	}
}

// persist writes one capture row and emits both notification signals.
// A failed insert drops the capture: monitoring is best-effort and the next
// clipboard change supersedes anything missed.
func (m *Monitor) persist(n store.NewClip, meta any) {
	if m.clips == nil {
		slog.Error("clip store unavailable, dropping capture", "type", n.ContentType)
		return
	}

	saved, err := m.clips.Insert(n)
	if err != nil {
		slog.Error("failed to save clip", "type", n.ContentType, "err", err)
		return
	}

	slog.Info("clip captured", "id", saved.ID, "type", saved.ContentType, "source", saved.SourceApp)
	logPreview(saved)

	if m.hub != nil {
		m.hub.ClipAdded(saved, meta)
		m.hub.DataChanged()
	}
}

// logPreview logs capture content at DEBUG: a bounded text preview, or the
// payload size for images.
func logPreview(c *store.Clip) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if c.ContentType == store.TypeImage {
		slog.Debug("clip content", "size_bytes", len(c.Data))
		return
	}
	preview := c.PreviewText
	if len(preview) > 80 {
		preview = preview[:80] + "…"
	}
	slog.Debug("clip content", "preview", preview)
}

// snapshotImage copies encoded image bytes so the snapshot never aliases a
// buffer the backend may reuse.
func snapshotImage(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
