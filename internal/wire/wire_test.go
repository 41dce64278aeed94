package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"go.klb.dev/clipstash/internal/message"
	"go.klb.dev/clipstash/internal/store"
)

func TestRequestRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	cc, sc := New(client), New(server)
	defer cc.Close()
	defer sc.Close()

	go func() {
		_ = cc.WriteRequest(&message.Request{
			Op:     message.OpSearchClips,
			Term:   "meeting",
			Folder: "all",
		})
	}()

	req, err := sc.ReadRequest()
	require.NoError(t, err)
	require.Equal(t, message.OpSearchClips, req.Op)
	require.Equal(t, "meeting", req.Term)
	require.Equal(t, "all", req.Folder)
}

func TestResponseRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	cc, sc := New(client), New(server)
	defer cc.Close()
	defer sc.Close()

	go func() {
		_ = sc.WriteResponse(&message.Response{
			OK: true,
			Clips: []store.Clip{
				{ID: 1, ContentType: store.TypeText, PreviewText: "hello"},
				{ID: 2, ContentType: store.TypeLink, PreviewText: "https://example.com"},
			},
		})
	}()

	resp, err := cc.ReadResponse()
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Len(t, resp.Clips, 2)
	require.Equal(t, store.TypeLink, resp.Clips[1].ContentType)
}

func TestErrorResponseRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	cc, sc := New(client), New(server)
	defer cc.Close()
	defer sc.Close()

	go func() {
		_ = sc.WriteResponse(message.Errorf("clip %d not found", 42))
	}()

	resp, err := cc.ReadResponse()
	require.NoError(t, err)
	require.False(t, resp.OK)
	require.Equal(t, "clip 42 not found", resp.Error)
}

func TestSequentialMessagesOneConn(t *testing.T) {
	client, server := net.Pipe()
	cc, sc := New(client), New(server)
	defer cc.Close()
	defer sc.Close()

	go func() {
		_ = cc.WriteRequest(&message.Request{Op: message.OpListClips})
		_ = cc.WriteRequest(&message.Request{Op: message.OpStatus})
	}()

	first, err := sc.ReadRequest()
	require.NoError(t, err)
	require.Equal(t, message.OpListClips, first.Op)

	second, err := sc.ReadRequest()
	require.NoError(t, err)
	require.Equal(t, message.OpStatus, second.Op)
}

func TestReadRequest_MalformedLine(t *testing.T) {
	client, server := net.Pipe()
	sc := New(server)
	defer client.Close()
	defer sc.Close()

	go func() {
		_, _ = client.Write([]byte("{not json}\n"))
	}()

	_, err := sc.ReadRequest()
	require.Error(t, err)
}
