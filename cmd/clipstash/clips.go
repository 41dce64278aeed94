package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/message"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured clips",
		Long: `Lists clips newest first. By default only the inbox (clips not filed
into a folder) is shown; use --folder all or --folder <id> to widen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			folder, _ := cmd.Flags().GetString("folder")
			asJSON, _ := cmd.Flags().GetBool("json")

			resp, err := roundTrip(&message.Request{Op: message.OpListClips, Folder: folder})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Clips)
			}
			printClips(resp.Clips)
			return nil
		},
	}
	cmd.Flags().String("folder", message.ScopeInbox, `folder scope: "inbox", "all" or a folder id`)
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search clips by title or preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, _ := cmd.Flags().GetString("folder")
			asJSON, _ := cmd.Flags().GetBool("json")

			resp, err := roundTrip(&message.Request{
				Op:     message.OpSearchClips,
				Term:   args[0],
				Folder: folder,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(resp.Clips)
			}
			printClips(resp.Clips)
			return nil
		},
	}
	cmd.Flags().String("folder", message.ScopeAll, `folder scope: "all", "inbox" or a folder id`)
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one clip including its content",
		Long: `Prints a clip's fields and content. For image clips the payload is a
base64 data URI; use --raw to write just the payload to stdout, e.g.

  clipstash show 42 --raw > clip.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			raw, _ := cmd.Flags().GetBool("raw")

			resp, err := roundTrip(&message.Request{Op: message.OpGetClip, ID: id})
			if err != nil {
				return err
			}
			c := resp.Clip
			if raw {
				_, err := os.Stdout.WriteString(c.Data)
				return err
			}
			if asJSON {
				return printJSON(c)
			}

			fmt.Printf("id:        %d\n", c.ID)
			fmt.Printf("type:      %s\n", c.ContentType)
			fmt.Printf("title:     %s\n", c.Title)
			fmt.Printf("source:    %s\n", c.SourceApp)
			fmt.Printf("created:   %s\n", c.CreatedAt)
			fmt.Printf("pinned:    %v\n", c.IsPinned)
			fmt.Printf("pasted:    %d times\n", c.TimesPasted)
			fmt.Printf("metadata:  %s\n", c.Metadata)
			fmt.Println("---")
			fmt.Println(c.Data)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")
	cmd.Flags().Bool("raw", false, "write only the payload to stdout")
	return cmd
}

func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste <id>",
		Short: "Put a clip back on the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := roundTrip(&message.Request{Op: message.OpPasteClip, ID: id}); err != nil {
				return err
			}
			fmt.Printf("clip %d copied to clipboard\n", id)
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = roundTrip(&message.Request{Op: message.OpDeleteClip, ID: id})
			return err
		},
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <folder>",
		Short: "Move a clip into a folder",
		Long:  `Moves a clip into a folder by id. Use "inbox" to move it back out.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = roundTrip(&message.Request{Op: message.OpMoveClip, ID: id, Folder: args[1]})
			return err
		},
	}
}

func newTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <id> <title>",
		Short: "Rename a clip",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			_, err = roundTrip(&message.Request{Op: message.OpRetitleClip, ID: id, Title: title})
			return err
		},
	}
}

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle a clip's pinned state",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := roundTrip(&message.Request{Op: message.OpTogglePin, ID: id})
			if err != nil {
				return err
			}
			if resp.Pinned != nil && *resp.Pinned {
				fmt.Printf("clip %d pinned\n", id)
			} else {
				fmt.Printf("clip %d unpinned\n", id)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a clip manually",
		Long: `Adds a clip without going through the clipboard. Text is taken from the
arguments, or from stdin when none are given:

  clipstash add "some text"
  cat notes.txt | clipstash add
  clipstash add --type image < image.png (base64 or data URI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, _ := cmd.Flags().GetString("type")
			title, _ := cmd.Flags().GetString("title")
			folder, _ := cmd.Flags().GetString("folder")

			var data string
			if len(args) > 0 {
				data = strings.Join(args, " ")
			} else {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				data = strings.TrimRight(string(b), "\n")
			}

			resp, err := roundTrip(&message.Request{
				Op:          message.OpAddClip,
				ContentType: contentType,
				Data:        data,
				Title:       title,
				Folder:      folder,
			})
			if err != nil {
				return err
			}
			fmt.Printf("clip %d added\n", resp.Clip.ID)
			return nil
		},
	}
	cmd.Flags().String("type", "text", "content type: text|link|image")
	cmd.Flags().String("title", "", "display title (derived when empty)")
	cmd.Flags().String("folder", "", "folder id to file the clip into")
	return cmd
}
