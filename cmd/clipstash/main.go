// clipstash: clipboard history daemon with a local SQLite store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clipstash/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipstash",
		Short: "Clipboard history daemon",
		Long: `clipstash watches the system clipboard and keeps every copied text,
link and image in a local SQLite history you can browse, search, tag,
organise into folders and paste again.

Run "clipstash serve" in the background. All other sub-commands talk to the
running daemon over a local socket.

Config file search order (first found wins):
  /etc/clipstash/clipstash.toml
  $HOME/.config/clipstash/clipstash.toml
  path supplied via --config

All flags can be set via CLIPSTASH_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newPasteCmd(),
		newRmCmd(),
		newMoveCmd(),
		newTitleCmd(),
		newPinCmd(),
		newAddCmd(),
		newFoldersCmd(),
		newTagsCmd(),
		newSnippetsCmd(),
		newStackCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipstash %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
