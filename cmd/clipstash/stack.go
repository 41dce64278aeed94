package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Show or clear the paste stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			resp, err := roundTrip(&message.Request{Op: message.OpListStack, Limit: limit})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Stack)
			}
			if len(resp.Stack) == 0 {
				fmt.Println("paste stack is empty")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLIP\tTYPE\tPASTED\tPREVIEW")
			for _, e := range resp.Stack {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ClipID, e.ContentType, e.PastedAt, e.PreviewText)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("limit", 0, "maximum entries to show (0 = server default)")
	cmd.Flags().Bool("json", false, "output raw JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the paste stack",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := roundTrip(&message.Request{Op: message.OpClearStack}); err != nil {
				return err
			}
			fmt.Println("paste stack cleared")
			return nil
		},
	})

	return cmd
}
