package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"go.klb.dev/clipstash/internal/ipc"
	"go.klb.dev/clipstash/internal/message"
	"go.klb.dev/clipstash/internal/store"
	"go.klb.dev/clipstash/internal/wire"
)

// roundTrip sends one request to the running daemon and returns its
// response. A failed dial means no daemon is listening.
func roundTrip(req *message.Request) (*message.Response, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf(`no running clipstash daemon (start one with "clipstash serve"): %w`, err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.WriteRequest(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	resp, err := wc.ReadResponse()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !resp.OK {
		return nil, errors.New(resp.Error)
	}
	return resp, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printClips(clips []store.Clip) {
	if len(clips) == 0 {
		fmt.Println("no clips")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPIN\tCREATED\tTITLE")
	for _, c := range clips {
		pin := ""
		if c.IsPinned {
			pin = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.ContentType, pin, c.CreatedAt, c.Title)
	}
	_ = w.Flush()
}

func printTags(tags []store.Tag) {
	if len(tags) == 0 {
		fmt.Println("no tags")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, t := range tags {
		fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Name)
	}
	_ = w.Flush()
}
