package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List and manage clip folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			resp, err := roundTrip(&message.Request{Op: message.OpListFolders})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Folders)
			}
			if len(resp.Folders) == 0 {
				fmt.Println("no folders")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, f := range resp.Folders {
				fmt.Fprintf(w, "%d\t%s\t%s\n", f.ID, f.Name, f.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			resp, err := roundTrip(&message.Request{Op: message.OpAddFolder, Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Printf("folder %d (%s) created\n", resp.Folders[0].ID, resp.Folders[0].Name)
			return nil
		},
	})

	return cmd
}
