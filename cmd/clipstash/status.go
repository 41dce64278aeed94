package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			resp, err := roundTrip(&message.Request{Op: message.OpStatus})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Status)
			}
			s := resp.Status
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "version:\t%s\n", s.Version)
			fmt.Fprintf(w, "monitoring:\t%t\n", s.Monitoring)
			fmt.Fprintf(w, "interval:\t%dms\n", s.IntervalMS)
			fmt.Fprintf(w, "clips:\t%d\n", s.ClipCount)
			fmt.Fprintf(w, "backend:\t%s\n", s.Backend)
			fmt.Fprintf(w, "started:\t%s\n", s.StartedAt)
			return w.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}
