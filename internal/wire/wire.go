// Package wire handles reading and writing newline-delimited JSON messages
// over a net.Conn. Every line is exactly one message: <json>\n.
package wire

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"go.klb.dev/clipstash/internal/message"
)

const (
	// MaxMessageSize is the largest message we will read (64 MiB — image
	// payloads travel base64-encoded inside requests and responses).
	MaxMessageSize = 64 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// Conn wraps a net.Conn with buffered newline-delimited JSON framing.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// WriteRequest serialises req and writes it followed by a newline.
func (c *Conn) WriteRequest(req *message.Request) error {
	raw, err := req.Encode()
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.writeLine(raw)
}

// ReadRequest reads one line and deserialises it into a Request.
func (c *Conn) ReadRequest() (*message.Request, error) {
	raw, err := c.readLine()
	if err != nil {
		return nil, err
	}
	return message.DecodeRequest(raw)
}

// WriteResponse serialises resp and writes it followed by a newline.
func (c *Conn) WriteResponse(resp *message.Response) error {
	raw, err := resp.Encode()
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return c.writeLine(raw)
}

// ReadResponse reads one line and deserialises it into a Response.
func (c *Conn) ReadResponse() (*message.Response, error) {
	raw, err := c.readLine()
	if err != nil {
		return nil, err
	}
	return message.DecodeResponse(raw)
}

func (c *Conn) writeLine(raw []byte) error {
	line := append(raw, '\n')
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	_, err := c.conn.Write(line)
	_ = c.conn.SetWriteDeadline(time.Time{})
	return err
}

func (c *Conn) readLine() ([]byte, error) {
	line, err := c.br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) > MaxMessageSize {
		return nil, fmt.Errorf("message too large (%d bytes)", len(line))
	}
	return line[:len(line)-1], nil
}
