package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newSnippetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "List and manage saved snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			resp, err := roundTrip(&message.Request{Op: message.OpListSnippets})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Snippets)
			}
			if len(resp.Snippets) == 0 {
				fmt.Println("no snippets")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUPDATED\tTITLE")
			for _, s := range resp.Snippets {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.UpdatedAt, s.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")

	add := &cobra.Command{
		Use:   "add <title> [content...]",
		Short: "Save a snippet; content is read from stdin when omitted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, _ := cmd.Flags().GetString("folder")
			body := strings.Join(args[1:], " ")
			if body == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				body = string(data)
			}
			resp, err := roundTrip(&message.Request{
				Op:     message.OpAddSnippet,
				Title:  args[0],
				Body:   body,
				Folder: folder,
			})
			if err != nil {
				return err
			}
			fmt.Printf("snippet %d (%s) saved\n", resp.Snippets[0].ID, resp.Snippets[0].Title)
			return nil
		},
	}
	add.Flags().String("folder", "", "snippet folder id to file into")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <snippet-id>",
		Short: "Delete a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := roundTrip(&message.Request{Op: message.OpDeleteSnippet, ID: id}); err != nil {
				return err
			}
			fmt.Printf("snippet %d deleted\n", id)
			return nil
		},
	})

	folders := &cobra.Command{
		Use:   "folders",
		Short: "List snippet folders",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := roundTrip(&message.Request{Op: message.OpListSnippetFolders})
			if err != nil {
				return err
			}
			if len(resp.SnippetFolders) == 0 {
				fmt.Println("no snippet folders")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, f := range resp.SnippetFolders {
				fmt.Fprintf(w, "%d\t%s\t%s\n", f.ID, f.Name, f.CreatedAt)
			}
			return w.Flush()
		},
	}
	folders.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a snippet folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			resp, err := roundTrip(&message.Request{Op: message.OpAddSnippetFolder, Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Printf("snippet folder %d (%s) created\n", resp.SnippetFolders[0].ID, resp.SnippetFolders[0].Name)
			return nil
		},
	})
	cmd.AddCommand(folders)

	return cmd
}
