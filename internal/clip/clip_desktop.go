//go:build linux || darwin || windows

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type desktopBackend struct{}

// New returns the system clipboard backend, or a headless no-op backend if
// the display environment is unavailable (e.g. a server without X11 or
// Wayland). clipboard.Init is called here rather than in init() so that CLI
// sub-commands that never touch the clipboard don't trigger the warning.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return desktopBackend{}
}

func (desktopBackend) Name() string { return "system clipboard" }

func (desktopBackend) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (desktopBackend) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

func (desktopBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (desktopBackend) WriteImage(png []byte) error {
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}

func (desktopBackend) Close() {}
