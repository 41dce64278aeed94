//go:build darwin

package sourceapp

import (
	"os/exec"
	"strings"
)

const sentinel = "N/A (macOS)"

type darwinDetector struct{}

// New returns the macOS detector. It asks System Events for the frontmost
// process name, which is usually (not always) the app that wrote the
// clipboard a moment ago.
func New() Detector { return darwinDetector{} }

func (darwinDetector) Current() string {
	out, err := exec.Command("osascript", "-e",
		`tell application "System Events" to get name of first process whose frontmost is true`,
	).Output()
	if err != nil {
		return sentinel
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return sentinel
	}
	return name
}
