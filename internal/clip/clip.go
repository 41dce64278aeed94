// Package clip provides a unified interface to the system clipboard.
// Build constraints select the implementation:
//
//	clip_desktop.go — Linux / macOS / Windows via golang.design/x/clipboard
//	clip_stub.go    — any other platform
//
// A headless no-op backend is returned at runtime when no display
// environment is available, so the daemon can still serve its store.
package clip

// Backend is the interface all clipboard implementations satisfy.
// Reads are non-blocking and never fail: an empty result means the
// clipboard currently holds nothing of that kind.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current plain-text clipboard contents, or "".
	ReadText() string

	// ReadImage returns the current clipboard image as PNG bytes, or nil.
	ReadImage() []byte

	// WriteText replaces the clipboard contents with plain text.
	WriteText(text string) error

	// WriteImage replaces the clipboard contents with a PNG image.
	WriteImage(png []byte) error

	// Close releases any resources held by the backend.
	Close()
}

// headlessBackend is a no-op backend for environments without a display
// server (headless Linux servers, containers, CI). Reads are always empty
// and writes are silently discarded.
type headlessBackend struct{}

func (headlessBackend) Name() string { return "headless (no-op)" }

func (headlessBackend) ReadText() string { return "" }

func (headlessBackend) ReadImage() []byte { return nil }

func (headlessBackend) WriteText(string) error { return nil }

func (headlessBackend) WriteImage([]byte) error { return nil }

func (headlessBackend) Close() {}
