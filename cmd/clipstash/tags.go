package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List and manage clip tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			resp, err := roundTrip(&message.Request{Op: message.OpListTags})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Tags)
			}
			printTags(resp.Tags)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "of <clip-id>",
		Short: "Show the tags attached to a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := roundTrip(&message.Request{Op: message.OpClipTags, ID: id})
			if err != nil {
				return err
			}
			printTags(resp.Tags)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <clip-id> <name>",
		Short: "Attach a tag to a clip, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := roundTrip(&message.Request{Op: message.OpTagClip, ID: id, Name: args[1]})
			if err != nil {
				return err
			}
			fmt.Printf("clip %d tagged %q\n", id, resp.Tags[0].Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <clip-id> <tag-id>",
		Short: "Detach a tag from a clip",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tagID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if _, err := roundTrip(&message.Request{Op: message.OpUntagClip, ID: id, TagID: tagID}); err != nil {
				return err
			}
			fmt.Printf("tag %d removed from clip %d\n", tagID, id)
			return nil
		},
	})

	return cmd
}
