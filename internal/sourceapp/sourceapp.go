// Package sourceapp resolves a best-effort label for the application that
// most recently wrote the clipboard. Detection is inherently unreliable and
// platform-specific, so each platform file provides a Detector that degrades
// to a sentinel "N/A" label rather than failing.
package sourceapp

// Detector reports the likely origin of the current clipboard contents.
type Detector interface {
	// Current returns a human-readable application label. It never fails:
	// when detection is impossible it returns a platform sentinel.
	Current() string
}
