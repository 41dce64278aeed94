//go:build windows

package sourceapp

const sentinel = "N/A (Windows)"

type windowsDetector struct{}

// New returns the Windows detector. Resolving the clipboard owner would
// need GetClipboardOwner + process lookup; until then it reports a sentinel.
func New() Detector { return windowsDetector{} }

func (windowsDetector) Current() string { return sentinel }
