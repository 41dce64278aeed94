//go:build !darwin && !windows

package sourceapp

const sentinel = "N/A (Linux)"

type stubDetector struct{}

// New returns the stub detector. X11/Wayland expose no portable way to map
// a selection to its owning application.
func New() Detector { return stubDetector{} }

func (stubDetector) Current() string { return sentinel }
