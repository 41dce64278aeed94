// Package ipc provides the local socket channel used by CLI sub-commands
// (list, search, paste, …) to talk to a running clipstash daemon: a Unix
// domain socket on Linux/macOS, a named pipe on Windows.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate path for the IPC socket.
// $CLIPSTASH_SOCKET overrides it on every platform.
func SocketPath() string {
	if s := os.Getenv("CLIPSTASH_SOCKET"); s != "" {
		return s
	}
	return defaultSocketPath()
}

// IsRunning reports whether a clipstash daemon appears to be listening on
// the IPC socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the IPC socket path,
// removing any stale socket file from a previous (crashed) run first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return listenIPC(path)
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}
